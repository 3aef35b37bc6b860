package teamcity

import (
	"context"
	"net/http"
	"net/url"
)

// ChangeClient is a client for the changes API.
type ChangeClient struct {
	client *Client
}

// All returns all changes known to the server. Additional criteria can
// be supplied through a locator.
func (c *ChangeClient) All(ctx context.Context, loc *Locator) (Changes, error) {
	result := Changes{}
	req, err := c.client.NewRequest(
		ctx,
		http.MethodGet,
		c.client.buildURL(listPath("changes", loc)),
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

// ByID returns a single change.
func (c *ChangeClient) ByID(ctx context.Context, id ChangeID) (Change, error) {
	result := Change{}
	req, err := c.client.NewRequest(
		ctx,
		http.MethodGet,
		c.client.buildURL("changes", "id:"+id.String()),
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

// ByBuild returns the changes that went into a single build.
func (c *ChangeClient) ByBuild(ctx context.Context, id BuildID) (Changes, error) {
	result := Changes{}
	params := url.Values{}
	params.Set("build", "id:"+id.String())

	req, err := c.client.NewRequest(
		ctx,
		http.MethodGet,
		c.client.buildURL("changes"),
		params,
	)

	if err != nil {
		return result, err
	}

	if _, err := c.client.Do(req, &result); err != nil {
		return result, err
	}

	return result, nil
}
