package teamcity

import (
	"context"
	"net/http"
)

// ServerClient is a client for the server API.
type ServerClient struct {
	client *Client
}

// Info returns version and uptime metadata about the server.
func (c *ServerClient) Info(ctx context.Context) (ServerInfo, error) {
	result := ServerInfo{}
	req, err := c.client.NewRequest(ctx, http.MethodGet, c.client.buildURL("server"), nil)

	if err != nil {
		return result, err
	}

	if _, err := c.client.Do(req, &result); err != nil {
		return result, err
	}

	return result, nil
}

// Plugins returns all plugins installed on the server.
func (c *ServerClient) Plugins(ctx context.Context) (Plugins, error) {
	result := Plugins{}
	req, err := c.client.NewRequest(ctx, http.MethodGet, c.client.buildURL("server", "plugins"), nil)

	if err != nil {
		return result, err
	}

	if _, err := c.client.Do(req, &result); err != nil {
		return result, err
	}

	return result, nil
}
