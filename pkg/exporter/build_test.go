package exporter

import (
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/promhippie/teamcity_exporter/pkg/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBuildTypeRepo(t *testing.T) *storage.BuildTypeRepo {
	t.Helper()

	logger := slog.Default()

	db, err := storage.NewSQLite(filepath.Join(t.TempDir(), "exporter.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})

	return storage.NewBuildTypeRepo(db, logger)
}

func TestBuildCollector(t *testing.T) {
	client, target := testTarget(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		switch r.URL.Path {
		case "/httpAuth/app/rest/buildTypes":
			_, _ = w.Write([]byte(`{
				"count": 1,
				"buildType": [
					{"id": "bt1", "name": "main", "projectId": "project1"}
				]
			}`))
		case "/httpAuth/app/rest/buildTypes/id:bt1/builds/":
			require.Equal(t, "0", r.URL.Query().Get("start"))
			require.Equal(t, "1", r.URL.Query().Get("count"))

			_, _ = w.Write([]byte(`{
				"count": 1,
				"build": [
					{"id": 4711, "buildTypeId": "bt1", "number": "17", "status": "SUCCESS", "state": "finished"}
				]
			}`))
		default:
			t.Errorf("unexpected request path %s", r.URL.Path)
		}
	})

	repo := testBuildTypeRepo(t)

	failures, duration := testVectors()
	collector := NewBuildCollector(slog.Default(), client, repo, failures, duration, target)

	expected := `
		# HELP teamcity_build_last_id ID of the latest build per build configuration
		# TYPE teamcity_build_last_id gauge
		teamcity_build_last_id{build_type="bt1"} 4711
		# HELP teamcity_build_status 1 for the current status of the latest build, the status label carries the actual state
		# TYPE teamcity_build_status gauge
		teamcity_build_status{build_type="bt1",number="17",status="success"} 1
	`

	require.NoError(t, testutil.CollectAndCompare(
		collector,
		strings.NewReader(expected),
		"teamcity_build_status",
		"teamcity_build_last_id",
	))

	// The sync has registered the build type and recorded the newest
	// build id, so a restart would pick up from there.
	tracked, err := repo.ListEnabled()
	require.NoError(t, err)
	require.Len(t, tracked, 1)
	assert.Equal(t, "bt1", tracked[0].ID)
	assert.Equal(t, int64(4711), tracked[0].LastSeenBuild)
}

func TestBuildCollectorEmptyHistory(t *testing.T) {
	client, target := testTarget(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		switch r.URL.Path {
		case "/httpAuth/app/rest/buildTypes":
			_, _ = w.Write([]byte(`{"count": 1, "buildType": [{"id": "bt1", "name": "main"}]}`))
		default:
			_, _ = w.Write([]byte(`{"count": 0}`))
		}
	})

	repo := testBuildTypeRepo(t)

	failures, duration := testVectors()
	collector := NewBuildCollector(slog.Default(), client, repo, failures, duration, target)

	// No builds yet, so no metrics, but the build type is tracked.
	assert.Equal(t, 0, testutil.CollectAndCount(collector, "teamcity_build_status"))

	tracked, err := repo.ListEnabled()
	require.NoError(t, err)
	require.Len(t, tracked, 1)
	assert.Equal(t, int64(0), tracked[0].LastSeenBuild)
}
