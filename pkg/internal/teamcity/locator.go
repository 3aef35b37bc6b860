package teamcity

import (
	"strconv"
	"strings"
	"time"

	"github.com/benbjohnson/clock"
)

// sinceDateZone is the fixed offset embedded into sinceDate locators. The
// server compares these values against its own wall clock, so the offset
// is part of the wire format and independent of the process timezone.
var sinceDateZone = time.FixedZone("UTC-5", -5*60*60)

// sinceDateLayout is the timestamp format the server expects in locators.
const sinceDateLayout = "20060102T150405-0700"

// Locator accumulates filter criteria for build and change listings into
// a single comma-joined key:value expression, e.g.
// "status:SUCCESS,branch:master". Criteria are kept in the order they
// were first set, setting a key again only replaces its value. A Locator
// is meant to be built fresh per request; it is never reused or mutated
// by the client.
//
// Values are passed through verbatim, the server is authoritative about
// what constitutes a valid expression.
type Locator struct {
	clock  clock.Clock
	keys   []string
	values map[string]string
}

// NewLocator returns an empty locator.
func NewLocator() *Locator {
	return &Locator{
		clock:  clock.New(),
		values: make(map[string]string),
	}
}

// NewLocator returns an empty locator bound to the client clock, so
// time-based criteria stay consistent with the client configuration.
func (c *Client) NewLocator() *Locator {
	return &Locator{
		clock:  c.clock,
		values: make(map[string]string),
	}
}

func (l *Locator) set(key, value string) *Locator {
	if _, ok := l.values[key]; !ok {
		l.keys = append(l.keys, key)
	}

	l.values[key] = value
	return l
}

// Running limits builds by their running flag, one of true, false or any.
func (l *Locator) Running(state string) *Locator {
	return l.set("running", state)
}

// BuildType limits builds to the given build configuration.
func (l *Locator) BuildType(bt string) *Locator {
	return l.set("buildType", bt)
}

// Tags limits builds to those carrying all of the comma-delimited tags.
func (l *Locator) Tags(tags string) *Locator {
	return l.set("tags", tags)
}

// Status limits builds by status, one of SUCCESS, FAILURE or ERROR.
func (l *Locator) Status(status string) *Locator {
	return l.set("status", status)
}

// User limits builds to those triggered by the given user.
func (l *Locator) User(user string) *Locator {
	return l.set("user", user)
}

// Personal limits builds by their personal flag, one of true, false or any.
func (l *Locator) Personal(state string) *Locator {
	return l.set("personal", state)
}

// Canceled limits builds by their canceled flag, one of true, false or any.
func (l *Locator) Canceled(state string) *Locator {
	return l.set("canceled", state)
}

// Pinned limits builds by their pinned flag, one of true, false or any.
func (l *Locator) Pinned(state string) *Locator {
	return l.set("pinned", state)
}

// Branch limits builds by a branch locator expression.
func (l *Locator) Branch(branch string) *Locator {
	return l.set("branch", branch)
}

// AgentName limits builds to those that ran on the named agent.
func (l *Locator) AgentName(name string) *Locator {
	return l.set("agentName", name)
}

// SinceBuild limits the listing to builds after the one matched by the
// given build locator.
func (l *Locator) SinceBuild(build string) *Locator {
	return l.set("sinceBuild", build)
}

// SinceDate limits the listing to builds started within the last given
// number of minutes, serialized in the server timestamp format with the
// fixed UTC-5 offset.
func (l *Locator) SinceDate(minutes int) *Locator {
	cutoff := l.clock.Now().Add(-time.Duration(minutes) * time.Minute)
	return l.set("sinceDate", cutoff.In(sinceDateZone).Format(sinceDateLayout))
}

// LookupLimit restricts server-side processing to the latest N builds.
func (l *Locator) LookupLimit(limit int) *Locator {
	return l.set("lookupLimit", strconv.Itoa(limit))
}

// Empty reports whether any criteria have been set.
func (l *Locator) Empty() bool {
	return l == nil || len(l.keys) == 0
}

// String serializes the accumulated criteria into the comma-joined
// key:value form embedded into resource paths.
func (l *Locator) String() string {
	if l.Empty() {
		return ""
	}

	parts := make([]string, 0, len(l.keys))

	for _, key := range l.keys {
		parts = append(parts, key+":"+l.values[key])
	}

	return strings.Join(parts, ",")
}
