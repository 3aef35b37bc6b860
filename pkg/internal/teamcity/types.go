// Package teamcity provides types and clients for the TeamCity REST API.
package teamcity

import (
	"encoding/json"
	"time"
)

// timeLayout is the timestamp format used by the TeamCity REST API,
// e.g. 20160811T100858+0300.
const timeLayout = "20060102T150405-0700"

// Time wraps time.Time to decode the timestamp strings returned by the
// API, falling back to RFC 3339 for proxies that rewrite them.
type Time struct {
	time.Time
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Time) UnmarshalJSON(data []byte) error {
	var raw string

	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	parsed, err := time.Parse(timeLayout, raw)

	if err != nil {
		parsed, err = time.Parse(time.RFC3339, raw)

		if err != nil {
			return err
		}
	}

	t.Time = parsed
	return nil
}

// MarshalJSON implements json.Marshaler.
func (t Time) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Format(timeLayout))
}

// ServerInfo defines the response from the server endpoint.
type ServerInfo struct {
	Version      string `json:"version"`
	VersionMajor int    `json:"versionMajor"`
	VersionMinor int    `json:"versionMinor"`
	BuildNumber  string `json:"buildNumber"`
	InternalID   string `json:"internalId"`
	CurrentTime  Time   `json:"currentTime"`
	StartTime    Time   `json:"startTime"`
	BuildDate    Time   `json:"buildDate"`
}

// Plugin defines a single server plugin.
type Plugin struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
	Version     string `json:"version"`
}

// Plugins defines the response from the plugins endpoint.
type Plugins struct {
	Count  int      `json:"count"`
	Plugin []Plugin `json:"plugin"`
}

// BuildSummary defines a single entry of a build listing.
type BuildSummary struct {
	ID          int64  `json:"id"`
	BuildTypeID string `json:"buildTypeId"`
	Number      string `json:"number"`
	Status      string `json:"status"` // SUCCESS, FAILURE, ERROR, UNKNOWN
	State       string `json:"state"`  // queued, running, finished
	BranchName  string `json:"branchName"`
	Href        string `json:"href"`
	WebURL      string `json:"webUrl"`
}

// Builds defines the response from the build listing endpoints.
type Builds struct {
	Count int            `json:"count"`
	Build []BuildSummary `json:"build"`
}

// Build defines the response from a single build fetch.
type Build struct {
	BuildSummary

	StatusText string `json:"statusText"`
	QueuedDate Time   `json:"queuedDate"`
	StartDate  Time   `json:"startDate"`
	FinishDate Time   `json:"finishDate"`
	Personal   bool   `json:"personal"`
	Pinned     bool   `json:"pinned"`
}

// Change defines a single VCS change.
type Change struct {
	ID       int64  `json:"id"`
	Version  string `json:"version"`
	Username string `json:"username"`
	Date     Time   `json:"date"`
	Comment  string `json:"comment"`
	Href     string `json:"href"`
	WebURL   string `json:"webUrl"`
}

// Changes defines the response from the change listing endpoints.
type Changes struct {
	Count  int      `json:"count"`
	Change []Change `json:"change"`
}

// BuildType defines a single build configuration.
type BuildType struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	ProjectID   string `json:"projectId"`
	ProjectName string `json:"projectName"`
	Paused      bool   `json:"paused"`
	Href        string `json:"href"`
	WebURL      string `json:"webUrl"`
}

// BuildTypes defines the response from the build type listing endpoint.
type BuildTypes struct {
	Count     int         `json:"count"`
	BuildType []BuildType `json:"buildType"`
}

// Project defines a single project.
type Project struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Description     string `json:"description"`
	ParentProjectID string `json:"parentProjectId"`
	Archived        bool   `json:"archived"`
	Href            string `json:"href"`
	WebURL          string `json:"webUrl"`
}

// Projects defines the response from the project listing endpoint.
type Projects struct {
	Count   int       `json:"count"`
	Project []Project `json:"project"`
}

// Agent defines a single build agent.
type Agent struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	TypeID     int64  `json:"typeId"`
	Connected  bool   `json:"connected"`
	Enabled    bool   `json:"enabled"`
	Authorized bool   `json:"authorized"`
	UpToDate   bool   `json:"uptodate"`
	Href       string `json:"href"`
}

// Agents defines the response from the agent listing endpoint.
type Agents struct {
	Count int     `json:"count"`
	Agent []Agent `json:"agent"`
}

// Property defines a single name/value pair as used by the statistics
// endpoint.
type Property struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Properties defines the response from the build statistics endpoint.
type Properties struct {
	Count    int        `json:"count"`
	Property []Property `json:"property"`
}

// Tag defines a single build tag.
type Tag struct {
	Name string `json:"name"`
}

// Tags defines the response from the build tags endpoint.
type Tags struct {
	Count int   `json:"count"`
	Tag   []Tag `json:"tag"`
}

// VCSRoot defines a single VCS root.
type VCSRoot struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	VCSName string `json:"vcsName"`
	Status  string `json:"status"`
	Href    string `json:"href"`
}

// VCSRoots defines the response from the VCS root listing endpoint.
type VCSRoots struct {
	Count   int       `json:"count"`
	VCSRoot []VCSRoot `json:"vcs-root"`
}

// User defines a single user.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Href     string `json:"href"`
}

// Users defines the response from the user listing endpoint.
type Users struct {
	Count int    `json:"count"`
	User  []User `json:"user"`
}
