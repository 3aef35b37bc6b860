package teamcity

import (
	"fmt"
	"regexp"
	"strconv"
)

// Resource identifiers are typed so that malformed values are rejected
// when an identifier is constructed from untrusted input instead of
// producing a broken request URL.

var (
	buildTypeIDPattern = regexp.MustCompile(`^bt[0-9]+$`)
	projectIDPattern   = regexp.MustCompile(`^project[0-9]+$`)
)

// BuildID identifies a single build.
type BuildID int64

// String implements fmt.Stringer.
func (id BuildID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// ChangeID identifies a single VCS change.
type ChangeID int64

// String implements fmt.Stringer.
func (id ChangeID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// AgentID identifies a single build agent.
type AgentID int64

// String implements fmt.Stringer.
func (id AgentID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// BuildTypeID identifies a build configuration, in the format bt<number>.
type BuildTypeID string

// ParseBuildTypeID validates a raw build type identifier.
func ParseBuildTypeID(raw string) (BuildTypeID, error) {
	if !buildTypeIDPattern.MatchString(raw) {
		return "", fmt.Errorf("invalid build type id %q: expected format bt<number>", raw)
	}

	return BuildTypeID(raw), nil
}

// ProjectID identifies a project, in the format project<number>.
type ProjectID string

// ParseProjectID validates a raw project identifier.
func ParseProjectID(raw string) (ProjectID, error) {
	if !projectIDPattern.MatchString(raw) {
		return "", fmt.Errorf("invalid project id %q: expected format project<number>", raw)
	}

	return ProjectID(raw), nil
}

// VCSRootID identifies a VCS root. The server accepts both numeric and
// symbolic forms, so no format is enforced beyond being non-empty.
type VCSRootID string

// ParseVCSRootID validates a raw VCS root identifier.
func ParseVCSRootID(raw string) (VCSRootID, error) {
	if raw == "" {
		return "", fmt.Errorf("empty vcs root id")
	}

	return VCSRootID(raw), nil
}
