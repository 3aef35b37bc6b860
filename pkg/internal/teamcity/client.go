package teamcity

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/benbjohnson/clock"
)

// Client manages communication with the TeamCity REST API.
type Client struct {
	httpClient *http.Client
	clock      clock.Clock

	host     string
	port     int
	username string
	password string
	base     string

	Server     *ServerClient
	Builds     *BuildClient
	Changes    *ChangeClient
	BuildTypes *BuildTypeClient
	Projects   *ProjectClient
	Agents     *AgentClient
	VCSRoots   *VCSRootClient
	Users      *UserClient
}

// Option defines a single option function.
type Option func(c *Client)

// WithHost initializes the host of the TeamCity server.
func WithHost(host string) Option {
	return func(c *Client) {
		c.host = host
	}
}

// WithPort initializes the port of the TeamCity server.
func WithPort(port int) Option {
	return func(c *Client) {
		c.port = port
	}
}

// WithUsername initializes the username for basic authentication.
func WithUsername(username string) Option {
	return func(c *Client) {
		c.username = username
	}
}

// WithPassword initializes the password for basic authentication.
func WithPassword(password string) Option {
	return func(c *Client) {
		c.password = password
	}
}

// WithTimeout initializes the timeout on the internal HTTP client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithTransport replaces the transport on the internal HTTP client.
func WithTransport(transport http.RoundTripper) Option {
	return func(c *Client) {
		c.httpClient.Transport = transport
	}
}

// WithClock replaces the clock used for time-based locators.
func WithClock(cl clock.Clock) Option {
	return func(c *Client) {
		c.clock = cl
	}
}

// NewClient initializes a new TeamCity client. The client carries no
// request state of its own, filters are supplied per request through a
// Locator, so a single instance is safe to reuse.
func NewClient(opts ...Option) (*Client, error) {
	client := &Client{
		httpClient: &http.Client{},
		clock:      clock.New(),
		port:       80,
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.host == "" {
		return nil, fmt.Errorf("missing host for teamcity client")
	}

	client.base = fmt.Sprintf(
		"http://%s:%d/httpAuth/app/rest",
		client.host,
		client.port,
	)

	client.Server = &ServerClient{client: client}
	client.Builds = &BuildClient{client: client}
	client.Changes = &ChangeClient{client: client}
	client.BuildTypes = &BuildTypeClient{client: client}
	client.Projects = &ProjectClient{client: client}
	client.Agents = &AgentClient{client: client}
	client.VCSRoots = &VCSRootClient{client: client}
	client.Users = &UserClient{client: client}

	return client, nil
}

// BaseURL returns the root of the authenticated REST API.
func (c *Client) BaseURL() string {
	return c.base
}

// buildURL joins the base URL with the given path segments.
func (c *Client) buildURL(segments ...string) string {
	parts := append([]string{c.base}, segments...)
	return strings.Join(parts, "/")
}

// NewRequest creates an API request with basic authentication and the
// JSON accept header already applied.
func (c *Client) NewRequest(ctx context.Context, method, url string, params url.Values) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)

	if err != nil {
		return nil, err
	}

	if len(params) > 0 {
		req.URL.RawQuery = params.Encode()
	}

	req.SetBasicAuth(c.username, c.password)
	req.Header.Set("Accept", "application/json")

	return req, nil
}

// Do sends an API request and decodes the JSON response into v. Transport
// errors and decode errors are returned unchanged, the status code is not
// interpreted: a non-JSON error page from the server simply fails to
// decode. Retry policy, if any, is up to the caller.
func (c *Client) Do(req *http.Request, v interface{}) (*http.Response, error) {
	resp, err := c.httpClient.Do(req)

	if err != nil {
		return nil, err
	}

	defer resp.Body.Close()

	if v != nil {
		if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
			return resp, err
		}
	}

	return resp, nil
}
