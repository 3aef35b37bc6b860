package teamcity

import (
	"context"
	"net/http"
)

// VCSRootClient is a client for the VCS roots API.
type VCSRootClient struct {
	client *Client
}

// All returns all VCS roots.
func (c *VCSRootClient) All(ctx context.Context) (VCSRoots, error) {
	result := VCSRoots{}
	req, err := c.client.NewRequest(ctx, http.MethodGet, c.client.buildURL("vcs-roots"), nil)

	if err != nil {
		return result, err
	}

	if _, err := c.client.Do(req, &result); err != nil {
		return result, err
	}

	return result, nil
}

// ByID returns a single VCS root.
func (c *VCSRootClient) ByID(ctx context.Context, id VCSRootID) (VCSRoot, error) {
	result := VCSRoot{}
	req, err := c.client.NewRequest(
		ctx,
		http.MethodGet,
		c.client.buildURL("vcs-roots", "id:"+string(id)),
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
