package teamcity

import (
	"context"
	"net/http"
)

// AgentClient is a client for the build agents API.
type AgentClient struct {
	client *Client
}

// All returns all build agents.
func (c *AgentClient) All(ctx context.Context) (Agents, error) {
	result := Agents{}
	req, err := c.client.NewRequest(ctx, http.MethodGet, c.client.buildURL("agents"), nil)

	if err != nil {
		return result, err
	}

	if _, err := c.client.Do(req, &result); err != nil {
		return result, err
	}

	return result, nil
}

// ByID returns a single build agent.
func (c *AgentClient) ByID(ctx context.Context, id AgentID) (Agent, error) {
	result := Agent{}
	req, err := c.client.NewRequest(
		ctx,
		http.MethodGet,
		c.client.buildURL("agents", "id:"+id.String()),
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
