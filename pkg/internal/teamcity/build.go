package teamcity

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// BuildClient is a client for the builds API.
type BuildClient struct {
	client *Client
}

// listPath appends the locator expression as an extra path segment. The
// server embeds filter criteria in the path, only pagination travels in
// the query string.
func listPath(base string, loc *Locator) string {
	if loc.Empty() {
		return base
	}

	if !strings.HasSuffix(base, "/") {
		base += "/"
	}

	return base + loc.String()
}

func pagination(start, count int) url.Values {
	params := url.Values{}
	params.Set("start", strconv.Itoa(start))
	params.Set("count", strconv.Itoa(count))
	return params
}

// All returns a window of the build history across all build
// configurations. The history can be very large, so the window is
// bounded by start and count. Additional criteria can be supplied
// through a locator.
func (c *BuildClient) All(ctx context.Context, loc *Locator, start, count int) (Builds, error) {
	result := Builds{}
	req, err := c.client.NewRequest(
		ctx,
		http.MethodGet,
		c.client.buildURL(listPath("builds/", loc)),
		pagination(start, count),
	)

	if err != nil {
		return result, err
	}

	if _, err := c.client.Do(req, &result); err != nil {
		return result, err
	}

	return result, nil
}

// ByBuildType returns a window of the build history of one build
// configuration.
func (c *BuildClient) ByBuildType(ctx context.Context, id BuildTypeID, loc *Locator, start, count int) (Builds, error) {
	result := Builds{}
	req, err := c.client.NewRequest(
		ctx,
		http.MethodGet,
		c.client.buildURL("buildTypes", "id:"+string(id), listPath("builds/", loc)),
		pagination(start, count),
	)

	if err != nil {
		return result, err
	}

	if _, err := c.client.Do(req, &result); err != nil {
		return result, err
	}

	return result, nil
}

// ByID returns a single build.
func (c *BuildClient) ByID(ctx context.Context, id BuildID) (Build, error) {
	result := Build{}
	req, err := c.client.NewRequest(
		ctx,
		http.MethodGet,
		c.client.buildURL("builds", "id:"+id.String()),
		nil,
	)

	if err != nil {
		return result, err
	}

	if _, err := c.client.Do(req, &result); err != nil {
		return result, err
	}

	return result, nil
}

// Statistics returns the recorded statistic values of a build, like
// BuildDuration, FailedTestCount or TimeSpentInQueue.
func (c *BuildClient) Statistics(ctx context.Context, id BuildID) (Properties, error) {
	result := Properties{}
	req, err := c.client.NewRequest(
		ctx,
		http.MethodGet,
		c.client.buildURL("builds", "id:"+id.String(), "statistics"),
		nil,
	)

	if err != nil {
		return result, err
	}

	if _, err := c.client.Do(req, &result); err != nil {
		return result, err
	}

	return result, nil
}

// Tags returns the tags of a build.
func (c *BuildClient) Tags(ctx context.Context, id BuildID) (Tags, error) {
	result := Tags{}
	req, err := c.client.NewRequest(
		ctx,
		http.MethodGet,
		c.client.buildURL("builds", "id:"+id.String(), "tags"),
		nil,
	)

	if err != nil {
		return result, err
	}

	if _, err := c.client.Do(req, &result); err != nil {
		return result, err
	}

	return result, nil
}
