// Package qiita is a minimal client for the Qiita REST API v2, covering
// the calls the translation pipeline needs: listing the authenticated
// user's items and creating or updating an item. The create call carries
// the platform's gist and tweet toggles, so snippet publishing and the
// social post happen server-side.
package qiita

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"time"
)

// DefaultBaseURL is the production API endpoint.
const DefaultBaseURL = "https://qiita.com/api/v2"

var (
	// ErrMissingToken means no access token was found in the --token flag
	// or the QIITA_ACCESS_TOKEN environment variable.
	ErrMissingToken = errors.New("no Qiita access token configured")

	// ErrInvalidToken means the configured token does not look like a
	// Qiita personal access token.
	ErrInvalidToken = errors.New("access token is not a 40-digit hex string")
)

var tokenShape = regexp.MustCompile(`^[0-9a-f]{40}$`)

// ValidateToken rejects missing or malformed tokens before any network
// call is made.
func ValidateToken(token string) error {
	if token == "" {
		return ErrMissingToken
	}
	if !tokenShape.MatchString(token) {
		return ErrInvalidToken
	}
	return nil
}

// APIError is a non-2xx response from the API. Op is "fetch", "create" or
// "update".
type APIError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("qiita: %s failed: status %d: %s", e.Op, e.StatusCode, e.Body)
}

// Tag is one article tag.
type Tag struct {
	Name     string   `json:"name"`
	Versions []string `json:"versions"`
}

// User is the owner of an item.
type User struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Item is an article as returned by the API.
type Item struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Body         string    `json:"body"`
	RenderedBody string    `json:"rendered_body"`
	URL          string    `json:"url"`
	Private      bool      `json:"private"`
	Tags         []Tag     `json:"tags"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	User         User      `json:"user"`
}

// CreateItemRequest is the payload for POST /items. GroupURLName is
// serialized as null when unset, which the API requires for personal
// accounts.
type CreateItemRequest struct {
	Title        string  `json:"title"`
	Body         string  `json:"body"`
	Tags         []Tag   `json:"tags"`
	Private      bool    `json:"private"`
	Coediting    bool    `json:"coediting"`
	Gist         bool    `json:"gist"`
	Tweet        bool    `json:"tweet"`
	GroupURLName *string `json:"group_url_name"`
}

// UpdateItemRequest is the payload for PATCH /items/:id.
type UpdateItemRequest struct {
	Title        string  `json:"title"`
	Body         string  `json:"body"`
	Tags         []Tag   `json:"tags"`
	Private      bool    `json:"private"`
	Coediting    bool    `json:"coediting"`
	GroupURLName *string `json:"group_url_name"`
}

// Config configures a Client.
type Config struct {
	// Token is the personal access token; sent as a bearer token.
	Token string
	// BaseURL overrides DefaultBaseURL, mainly for tests.
	BaseURL string
	// HTTPClient overrides the default client. The default honors the
	// standard HTTP(S)_PROXY environment variables.
	HTTPClient *http.Client
}

// Client talks to the Qiita API. Safe for sequential use; the pipeline
// never issues concurrent requests.
type Client struct {
	token   string
	baseURL string
	client  *http.Client
}

func New(cfg Config) *Client {
	c := &Client{
		token:   cfg.Token,
		baseURL: cfg.BaseURL,
		client:  cfg.HTTPClient,
	}
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	if c.client == nil {
		c.client = &http.Client{Timeout: 30 * time.Second}
	}
	return c
}

// ListAuthenticatedItems fetches one page of the authenticated user's
// articles, newest first.
func (c *Client) ListAuthenticatedItems(ctx context.Context, page, perPage int) ([]Item, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("per_page", strconv.Itoa(perPage))

	var items []Item
	if err := c.do(ctx, "fetch", http.MethodGet, "/authenticated_user/items?"+q.Encode(), nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// CreateItem publishes a new article.
func (c *Client) CreateItem(ctx context.Context, req CreateItemRequest) (*Item, error) {
	var item Item
	if err := c.do(ctx, "create", http.MethodPost, "/items", req, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateItem overwrites an existing article.
func (c *Client) UpdateItem(ctx context.Context, id string, req UpdateItemRequest) (*Item, error) {
	var item Item
	if err := c.do(ctx, "update", http.MethodPatch, "/items/"+id, req, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *Client) do(ctx context.Context, op, method, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("qiita: encoding %s request: %w", op, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("qiita: building %s request: %w", op, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json; charset=utf-8")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("qiita: %s request: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return &APIError{Op: op, StatusCode: resp.StatusCode, Body: string(bytes.TrimSpace(data))}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("qiita: decoding %s response: %w", op, err)
		}
	}
	return nil
}
