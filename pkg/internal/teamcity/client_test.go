package teamcity

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testClient returns a client wired to a mock server.
func testClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	parsed, err := url.Parse(server.URL)
	require.NoError(t, err)

	port, err := strconv.Atoi(parsed.Port())
	require.NoError(t, err)

	client, err := NewClient(
		WithHost(parsed.Hostname()),
		WithPort(port),
		WithUsername("admin"),
		WithPassword("secret"),
	)

	require.NoError(t, err)
	return client, server
}

func TestNewClientBaseURL(t *testing.T) {
	client, err := NewClient(
		WithHost("teamcity.example.com"),
		WithPort(8111),
	)

	require.NoError(t, err)
	assert.Equal(t, "http://teamcity.example.com:8111/httpAuth/app/rest", client.BaseURL())
}

func TestNewClientDefaultPort(t *testing.T) {
	client, err := NewClient(
		WithHost("teamcity.example.com"),
	)

	require.NoError(t, err)
	assert.Equal(t, "http://teamcity.example.com:80/httpAuth/app/rest", client.BaseURL())
}

func TestNewClientMissingHost(t *testing.T) {
	_, err := NewClient()

	assert.Error(t, err)
}

func TestNewRequestHeaders(t *testing.T) {
	client, err := NewClient(
		WithHost("teamcity.example.com"),
		WithUsername("admin"),
		WithPassword("secret"),
	)

	require.NoError(t, err)

	req, err := client.NewRequest(context.Background(), http.MethodGet, client.buildURL("server"), nil)
	require.NoError(t, err)

	username, password, ok := req.BasicAuth()
	assert.True(t, ok)
	assert.Equal(t, "admin", username)
	assert.Equal(t, "secret", password)
	assert.Equal(t, "application/json", req.Header.Get("Accept"))
}

func TestBuildByID(t *testing.T) {
	var gotPath, gotQuery string

	client, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": 123, "buildTypeId": "bt2", "status": "SUCCESS"}`))
	})

	build, err := client.Builds.ByID(context.Background(), BuildID(123))
	require.NoError(t, err)

	assert.Equal(t, "/httpAuth/app/rest/builds/id:123", gotPath)
	assert.Equal(t, "", gotQuery)
	assert.Equal(t, int64(123), build.ID)
	assert.Equal(t, "SUCCESS", build.Status)
}

func TestAllBuildsPagination(t *testing.T) {
	var gotPath string
	var gotQuery url.Values

	client, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"count": 2, "build": [{"id": 1}, {"id": 2}]}`))
	})

	builds, err := client.Builds.All(context.Background(), nil, 10, 50)
	require.NoError(t, err)

	assert.Equal(t, "/httpAuth/app/rest/builds/", gotPath)
	assert.Equal(t, "10", gotQuery.Get("start"))
	assert.Equal(t, "50", gotQuery.Get("count"))
	assert.Equal(t, 2, builds.Count)
}

func TestAllBuildsWithLocator(t *testing.T) {
	var gotPath string

	client, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"count": 0}`))
	})

	loc := client.NewLocator().
		Status("SUCCESS").
		Branch("master")

	_, err := client.Builds.All(context.Background(), loc, 0, 100)
	require.NoError(t, err)

	assert.Equal(t, "/httpAuth/app/rest/builds/status:SUCCESS,branch:master", gotPath)
}

func TestBuildsByBuildType(t *testing.T) {
	var gotPath string
	var gotQuery url.Values

	client, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"count": 0}`))
	})

	id, err := ParseBuildTypeID("bt2")
	require.NoError(t, err)

	_, err = client.Builds.ByBuildType(context.Background(), id, nil, 0, 100)
	require.NoError(t, err)

	assert.Equal(t, "/httpAuth/app/rest/buildTypes/id:bt2/builds/", gotPath)
	assert.Equal(t, "0", gotQuery.Get("start"))
	assert.Equal(t, "100", gotQuery.Get("count"))
}

func TestChangesByBuild(t *testing.T) {
	var gotPath string
	var gotQuery url.Values

	client, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"count": 0}`))
	})

	_, err := client.Changes.ByBuild(context.Background(), BuildID(42))
	require.NoError(t, err)

	assert.Equal(t, "/httpAuth/app/rest/changes", gotPath)
	assert.Equal(t, "id:42", gotQuery.Get("build"))
}

func TestServerInfoRequest(t *testing.T) {
	client, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		username, password, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "admin", username)
		assert.Equal(t, "secret", password)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.Equal(t, "/httpAuth/app/rest/server", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"version": "9.1.6 (build 37459)",
			"versionMajor": 9,
			"versionMinor": 1,
			"buildNumber": "37459",
			"internalId": "id_of_server",
			"currentTime": "20160811T100858-0500",
			"startTime": "20160811T081522-0500",
			"buildDate": "20151110T000000-0500"
		}`))
	})

	info, err := client.Server.Info(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "9.1.6 (build 37459)", info.Version)
	assert.Equal(t, 9, info.VersionMajor)
	assert.Equal(t, 1, info.VersionMinor)
	assert.Equal(t, "37459", info.BuildNumber)
	assert.Equal(t, "id_of_server", info.InternalID)
}

func TestErrorPageFailsDecoding(t *testing.T) {
	client, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("<html><body>Not Found</body></html>"))
	})

	_, err := client.Server.Info(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid character")
}

func TestServerPlugins(t *testing.T) {
	var gotPath string

	client, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"count": 1, "plugin": [{"name": "commit-status-publisher", "version": "1.0"}]}`))
	})

	plugins, err := client.Server.Plugins(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "/httpAuth/app/rest/server/plugins", gotPath)
	require.Len(t, plugins.Plugin, 1)
	assert.Equal(t, "commit-status-publisher", plugins.Plugin[0].Name)
}

func TestSingleResourcePaths(t *testing.T) {
	var gotPath string

	client, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	})

	ctx := context.Background()

	btID, err := ParseBuildTypeID("bt100")
	require.NoError(t, err)

	pID, err := ParseProjectID("project7")
	require.NoError(t, err)

	vrID, err := ParseVCSRootID("15")
	require.NoError(t, err)

	for _, tc := range []struct {
		call func() error
		path string
	}{
		{
			call: func() error { _, err := client.BuildTypes.ByID(ctx, btID); return err },
			path: "/httpAuth/app/rest/buildTypes/id:bt100",
		},
		{
			call: func() error { _, err := client.Projects.ByID(ctx, pID); return err },
			path: "/httpAuth/app/rest/projects/id:project7",
		},
		{
			call: func() error { _, err := client.Agents.ByID(ctx, AgentID(3)); return err },
			path: "/httpAuth/app/rest/agents/id:3",
		},
		{
			call: func() error { _, err := client.Changes.ByID(ctx, ChangeID(16884)); return err },
			path: "/httpAuth/app/rest/changes/id:16884",
		},
		{
			call: func() error { _, err := client.VCSRoots.ByID(ctx, vrID); return err },
			path: "/httpAuth/app/rest/vcs-roots/id:15",
		},
		{
			call: func() error { _, err := client.Users.ByUsername(ctx, "jdoe"); return err },
			path: "/httpAuth/app/rest/users/username:jdoe",
		},
		{
			call: func() error { _, err := client.Builds.Statistics(ctx, BuildID(9)); return err },
			path: "/httpAuth/app/rest/builds/id:9/statistics",
		},
		{
			call: func() error { _, err := client.Builds.Tags(ctx, BuildID(9)); return err },
			path: "/httpAuth/app/rest/builds/id:9/tags",
		},
	} {
		require.NoError(t, tc.call())
		assert.Equal(t, tc.path, gotPath)
	}
}
