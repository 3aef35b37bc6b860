package teamcity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseBuildTypeID(t *testing.T) {
	for _, tc := range []struct {
		raw   string
		valid bool
	}{
		{raw: "bt2", valid: true},
		{raw: "bt123456", valid: true},
		{raw: "bt", valid: false},
		{raw: "BT2", valid: false},
		{raw: "project2", valid: false},
		{raw: "bt2x", valid: false},
		{raw: "", valid: false},
	} {
		id, err := ParseBuildTypeID(tc.raw)

		if tc.valid {
			assert.NoError(t, err, tc.raw)
			assert.Equal(t, BuildTypeID(tc.raw), id)
		} else {
			assert.Error(t, err, tc.raw)
		}
	}
}

func TestParseProjectID(t *testing.T) {
	for _, tc := range []struct {
		raw   string
		valid bool
	}{
		{raw: "project7", valid: true},
		{raw: "project", valid: false},
		{raw: "bt7", valid: false},
		{raw: "", valid: false},
	} {
		id, err := ParseProjectID(tc.raw)

		if tc.valid {
			assert.NoError(t, err, tc.raw)
			assert.Equal(t, ProjectID(tc.raw), id)
		} else {
			assert.Error(t, err, tc.raw)
		}
	}
}

func TestParseVCSRootID(t *testing.T) {
	id, err := ParseVCSRootID("15")
	assert.NoError(t, err)
	assert.Equal(t, VCSRootID("15"), id)

	_, err = ParseVCSRootID("")
	assert.Error(t, err)
}

func TestNumericIDStrings(t *testing.T) {
	assert.Equal(t, "123", BuildID(123).String())
	assert.Equal(t, "16884", ChangeID(16884).String())
	assert.Equal(t, "3", AgentID(3).String())
}
