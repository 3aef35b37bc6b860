package teamcity

import (
	"context"
	"net/http"
)

// BuildTypeClient is a client for the build configurations API.
type BuildTypeClient struct {
	client *Client
}

// All returns all build configurations.
func (c *BuildTypeClient) All(ctx context.Context) (BuildTypes, error) {
	result := BuildTypes{}
	req, err := c.client.NewRequest(ctx, http.MethodGet, c.client.buildURL("buildTypes"), nil)

	if err != nil {
		return result, err
	}

	if _, err := c.client.Do(req, &result); err != nil {
		return result, err
	}

	return result, nil
}

// ByID returns a single build configuration.
func (c *BuildTypeClient) ByID(ctx context.Context, id BuildTypeID) (BuildType, error) {
	result := BuildType{}
	req, err := c.client.NewRequest(
		ctx,
		http.MethodGet,
		c.client.buildURL("buildTypes", "id:"+string(id)),
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
