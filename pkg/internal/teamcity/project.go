package teamcity

import (
	"context"
	"net/http"
)

// ProjectClient is a client for the projects API.
type ProjectClient struct {
	client *Client
}

// All returns all projects.
func (c *ProjectClient) All(ctx context.Context) (Projects, error) {
	result := Projects{}
	req, err := c.client.NewRequest(ctx, http.MethodGet, c.client.buildURL("projects"), nil)

	if err != nil {
		return result, err
	}

	if _, err := c.client.Do(req, &result); err != nil {
		return result, err
	}

	return result, nil
}

// ByID returns a single project.
func (c *ProjectClient) ByID(ctx context.Context, id ProjectID) (Project, error) {
	result := Project{}
	req, err := c.client.NewRequest(
		ctx,
		http.MethodGet,
		c.client.buildURL("projects", "id:"+string(id)),
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
