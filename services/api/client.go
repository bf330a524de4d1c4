package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"portfolio_site_go/models"
)

const (
	blogPath     = "/api/v1/blog/"
	projectsPath = "/api/v1/projects/"
	loginPath    = "/api/v1/login/token"

	// TurnstileHeader carries a Cloudflare Turnstile token to the login endpoint.
	TurnstileHeader = "X-Turnstile-Token"

	// maxSitemapPages bounds AllPosts so a misbehaving backend cannot loop forever.
	maxSitemapPages = 1000
)

// Client is an HTTP client for the backend API.
// Public read endpoints need no credentials; create, update and delete
// calls need a client built with NewAuthClient.
type Client struct {
	baseURL    string
	username   string
	password   string
	httpClient *http.Client
}

// NewClient creates a client for the public (read-only) endpoints.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// NewAuthClient creates a client that sends HTTP Basic auth on every request.
//
// Example:
//
//	c := api.NewAuthClient(baseURL, username, password, 30*time.Second)
//	post, err := c.CreatePost(ctx, &models.Post{Title: "Hello"})
func NewAuthClient(baseURL, username, password string, timeout time.Duration) *Client {
	c := NewClient(baseURL, timeout)
	c.username = username
	c.password = password
	return c
}

// BaseURL returns the backend root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// HasCredentials reports whether the client sends Basic auth.
func (c *Client) HasCredentials() bool {
	return c.username != "" || c.password != ""
}

// doRequest performs an HTTP request with a JSON body and returns the response.
func (c *Client) doRequest(ctx context.Context, method, path string, body interface{}) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.send(req)
}

func (c *Client) send(req *http.Request) (*http.Response, error) {
	if c.HasCredentials() {
		req.SetBasicAuth(c.username, c.password)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	return resp, nil
}

// do sends the request and decodes a 2xx JSON response into out (if non-nil).
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	resp, err := c.doRequest(ctx, method, path, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return decodeResponse(resp, out)
}

func decodeResponse(resp *http.Response, out interface{}) error {
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		return newAPIError(resp.StatusCode, data)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// APIStatus is the backend root response.
type APIStatus struct {
	Message string `json:"message"`
}

// Ping checks that the backend is reachable.
func (c *Client) Ping(ctx context.Context) (*APIStatus, error) {
	var status APIStatus
	if err := c.do(ctx, http.MethodGet, "/", nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// ListPosts returns one page of posts, newest first.
func (c *Client) ListPosts(ctx context.Context, page, size int) (*models.PostPage, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("size", strconv.Itoa(size))

	var result models.PostPage
	if err := c.do(ctx, http.MethodGet, blogPath+"?"+query.Encode(), nil, &result); err != nil {
		return nil, err
	}
	if result.Page == 0 {
		result.Page = page
	}
	if result.Size == 0 {
		result.Size = size
	}
	return &result, nil
}

// AllPosts pages through the whole post list.
func (c *Client) AllPosts(ctx context.Context, size int) ([]models.Post, error) {
	var posts []models.Post
	for page := 1; page <= maxSitemapPages; page++ {
		result, err := c.ListPosts(ctx, page, size)
		if err != nil {
			return posts, err
		}
		posts = append(posts, result.Items...)
		if len(result.Items) == 0 || !result.HasNext() {
			break
		}
	}
	return posts, nil
}

// GetPost returns a published post.
func (c *Client) GetPost(ctx context.Context, id int) (*models.Post, error) {
	var post models.Post
	if err := c.do(ctx, http.MethodGet, blogPath+strconv.Itoa(id), nil, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// CreatePost creates a post. Requires credentials.
func (c *Client) CreatePost(ctx context.Context, post *models.Post) (*models.Post, error) {
	var created models.Post
	if err := c.do(ctx, http.MethodPost, blogPath, post, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdatePost applies a partial update to a post. Requires credentials.
func (c *Client) UpdatePost(ctx context.Context, id int, patch *models.PostPatch) (*models.Post, error) {
	var updated models.Post
	if err := c.do(ctx, http.MethodPatch, blogPath+strconv.Itoa(id), patch, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeletePost deletes a post. Requires credentials.
func (c *Client) DeletePost(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, blogPath+strconv.Itoa(id), nil, nil)
}

// ListProjects returns all projects in display order.
func (c *Client) ListProjects(ctx context.Context) ([]models.Project, error) {
	var projects []models.Project
	if err := c.do(ctx, http.MethodGet, projectsPath, nil, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// CreateProject creates a project. Requires credentials.
func (c *Client) CreateProject(ctx context.Context, project *models.Project) (*models.Project, error) {
	var created models.Project
	if err := c.do(ctx, http.MethodPost, projectsPath, project, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateProject applies a partial update to a project. Requires credentials.
func (c *Client) UpdateProject(ctx context.Context, id int, patch *models.ProjectPatch) (*models.Project, error) {
	var updated models.Project
	if err := c.do(ctx, http.MethodPatch, projectsPath+strconv.Itoa(id), patch, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteProject deletes a project. Requires credentials.
func (c *Client) DeleteProject(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, projectsPath+strconv.Itoa(id), nil, nil)
}

// Login exchanges a username and password for a bearer token.
// turnstileToken is forwarded when non-empty; the backend skips the
// challenge check when the header is absent.
func (c *Client) Login(ctx context.Context, username, password, turnstileToken string) (*models.Token, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+loginPath, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	if token := strings.TrimSpace(turnstileToken); token != "" {
		req.Header.Set(TurnstileHeader, token)
	}

	resp, err := c.send(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var token models.Token
	if err := decodeResponse(resp, &token); err != nil {
		return nil, err
	}
	return &token, nil
}
