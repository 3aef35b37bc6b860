package teamcity

import (
	"context"
	"net/http"
)

// UserClient is a client for the users API.
type UserClient struct {
	client *Client
}

// All returns all users.
func (c *UserClient) All(ctx context.Context) (Users, error) {
	result := Users{}
	req, err := c.client.NewRequest(ctx, http.MethodGet, c.client.buildURL("users"), nil)

	if err != nil {
		return result, err
	}

	if _, err := c.client.Do(req, &result); err != nil {
		return result, err
	}

	return result, nil
}

// ByUsername returns a single user.
func (c *UserClient) ByUsername(ctx context.Context, username string) (User, error) {
	result := User{}
	req, err := c.client.NewRequest(
		ctx,
		http.MethodGet,
		c.client.buildURL("users", "username:"+username),
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
