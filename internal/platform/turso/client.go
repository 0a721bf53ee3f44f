package turso

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

// DefaultBaseURL is the production platform API endpoint.
const DefaultBaseURL = "https://api.turso.tech"

// Client is a Turso platform API client bound to one bearer token.
type Client struct {
	baseURL string
	token   string

	// GETs go through a retrying client; mutating calls (token mint/revoke,
	// database create/delete) use a plain client so a flaky response can
	// never duplicate a paid resource or a credential.
	retrying *http.Client
	plain    *http.Client
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithBaseURL overrides the platform API endpoint.
func WithBaseURL(u string) ClientOption {
	return func(c *Client) {
		c.baseURL = u
	}
}

// WithHTTPClient replaces both underlying HTTP clients. Used in tests.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.retrying = hc
		c.plain = hc
	}
}

// NewClient creates a platform API client using the given bearer token.
func NewClient(token string, opts ...ClientOption) *Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = 3
	rc.RetryWaitMin = 500 * time.Millisecond
	rc.RetryWaitMax = 5 * time.Second
	rc.Logger = nil

	retrying := rc.StandardClient()
	retrying.Timeout = 30 * time.Second

	c := &Client{
		baseURL:  DefaultBaseURL,
		token:    token,
		retrying: retrying,
		plain:    &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// APIToken describes an existing platform API token.
type APIToken struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

// CreatedToken is the result of minting a new platform API token.
// Token is the bearer value, returned only at creation time.
type CreatedToken struct {
	Name  string `json:"name"`
	ID    string `json:"id"`
	Token string `json:"token"`
}

// Database describes a created database instance.
type Database struct {
	ID       string `json:"DbId"`
	Name     string `json:"Name"`
	Hostname string `json:"Hostname"`
}

// ValidateToken checks whether the client's token is still accepted by the
// control plane. A nil return means valid; a 401/404 APIError means
// definitively invalid; anything else is a transient failure.
func (c *Client) ValidateToken(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/v1/auth/validate", nil, nil)
}

// ListTokens lists all platform API tokens owned by the current user.
func (c *Client) ListTokens(ctx context.Context) ([]APIToken, error) {
	var out struct {
		Tokens []APIToken `json:"tokens"`
	}
	if err := c.do(ctx, http.MethodGet, "/v1/auth/api-tokens", nil, &out); err != nil {
		return nil, err
	}
	return out.Tokens, nil
}

// CreateToken mints a new platform API token under the given name.
func (c *Client) CreateToken(ctx context.Context, name string) (*CreatedToken, error) {
	var out CreatedToken
	path := fmt.Sprintf("/v1/auth/api-tokens/%s", name)
	if err := c.do(ctx, http.MethodPost, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RevokeToken revokes the platform API token with the given name.
func (c *Client) RevokeToken(ctx context.Context, name string) error {
	path := fmt.Sprintf("/v1/auth/api-tokens/%s", name)
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

// CreateDatabase creates a database in the organization's group.
func (c *Client) CreateDatabase(ctx context.Context, org, name, group string) (*Database, error) {
	body := map[string]string{"name": name, "group": group}
	var out struct {
		Database Database `json:"database"`
	}
	path := fmt.Sprintf("/v1/organizations/%s/databases", org)
	if err := c.do(ctx, http.MethodPost, path, body, &out); err != nil {
		return nil, err
	}
	return &out.Database, nil
}

// DeleteDatabase deletes a database by name.
func (c *Client) DeleteDatabase(ctx context.Context, org, name string) error {
	path := fmt.Sprintf("/v1/organizations/%s/databases/%s", org, name)
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

// CreateDatabaseToken mints a connection token for one database.
func (c *Client) CreateDatabaseToken(ctx context.Context, org, name string) (string, error) {
	var out struct {
		JWT string `json:"jwt"`
	}
	path := fmt.Sprintf("/v1/organizations/%s/databases/%s/auth/tokens", org, name)
	if err := c.do(ctx, http.MethodPost, path, nil, &out); err != nil {
		return "", err
	}
	return out.JWT, nil
}

// do performs one API call, decoding a JSON response into out when non-nil.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	client := c.plain
	if method == http.MethodGet {
		client = c.retrying
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("turso api request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    readAPIMessage(resp.Body),
		}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// readAPIMessage extracts the error message from an API error body.
func readAPIMessage(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil {
		return ""
	}
	var body struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(data, &body) == nil && body.Error != "" {
		return body.Error
	}
	return ""
}
