// Package client is a Go client for the UGRecover HTTP API. It manages
// the access/refresh token pair transparently: on a 401 it refreshes the
// pair once and retries the request, and surfaces ErrSessionExpired when
// the refresh itself is rejected.
package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/kwamena/ugrecover/internal/model"
	"github.com/kwamena/ugrecover/internal/query"
)

// ErrSessionExpired is returned when the refresh token is no longer
// accepted and the caller must log in again.
var ErrSessionExpired = errors.New("session expired, log in again")

// APIError is a non-2xx response from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %s (status %d)", e.Message, e.Status)
}

// Client talks to a UGRecover server.
type Client struct {
	http *resty.Client

	mu      sync.Mutex
	access  string
	refresh string
}

// New creates a client for the API at baseURL.
func New(baseURL string) *Client {
	return &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(30*time.Second).
			SetHeader("Content-Type", "application/json").
			SetHeader("Accept", "application/json"),
	}
}

type tokenPair struct {
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
	User         *model.User `json:"user,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Login authenticates and stores the issued token pair.
func (c *Client) Login(ctx context.Context, username, password string) (*model.User, error) {
	var pair tokenPair
	var apiErr errorResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]string{"username": username, "password": password}).
		SetResult(&pair).
		SetError(&apiErr).
		Post("/api/auth/login")
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	if resp.IsError() {
		return nil, &APIError{Status: resp.StatusCode(), Message: apiErr.Error}
	}

	c.mu.Lock()
	c.access = pair.AccessToken
	c.refresh = pair.RefreshToken
	c.mu.Unlock()
	return pair.User, nil
}

// Logout revokes the current tokens and forgets them locally.
func (c *Client) Logout(ctx context.Context) error {
	err := c.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil)

	c.mu.Lock()
	c.access = ""
	c.refresh = ""
	c.mu.Unlock()
	return err
}

// ChangePassword updates the authenticated user's password.
func (c *Client) ChangePassword(ctx context.Context, current, updated string) error {
	body := map[string]string{"current_password": current, "new_password": updated}
	return c.do(ctx, http.MethodPut, "/api/auth/password", body, nil)
}

// ListOptions mirror the server's shared listing parameters.
type ListOptions struct {
	Search   string
	Status   string
	Category string
	From     string
	To       string
	Page     int
	PageSize int
}

func (o ListOptions) queryParams() map[string]string {
	params := map[string]string{}
	set := func(key, value string) {
		if value != "" {
			params[key] = value
		}
	}
	set("q", o.Search)
	set("status", o.Status)
	set("category", o.Category)
	set("from", o.From)
	set("to", o.To)
	if o.Page > 0 {
		params["page"] = fmt.Sprint(o.Page)
	}
	if o.PageSize > 0 {
		params["page_size"] = fmt.Sprint(o.PageSize)
	}
	return params
}

// ListItems returns a page of lost items.
func (c *Client) ListItems(ctx context.Context, opts ListOptions) (query.Page[model.LostItem], error) {
	var page query.Page[model.LostItem]
	err := c.doQuery(ctx, "/api/items", opts, &page)
	return page, err
}

// GetItem returns one lost item.
func (c *Client) GetItem(ctx context.Context, id int64) (model.LostItem, error) {
	var item model.LostItem
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/items/%d", id), nil, &item)
	return item, err
}

// LogItem records a found item.
func (c *Client) LogItem(ctx context.Context, item model.LostItem) (model.LostItem, error) {
	var created model.LostItem
	err := c.do(ctx, http.MethodPost, "/api/items", item, &created)
	return created, err
}

// SetItemStatus transitions a lost item to status.
func (c *Client) SetItemStatus(ctx context.Context, id int64, status string) (model.LostItem, error) {
	var item model.LostItem
	body := map[string]string{"status": status}
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/items/%d/status", id), body, &item)
	return item, err
}

// ListPoints returns a page of collection points.
func (c *Client) ListPoints(ctx context.Context, opts ListOptions) (query.Page[model.CollectionPoint], error) {
	var page query.Page[model.CollectionPoint]
	err := c.doQuery(ctx, "/api/points", opts, &page)
	return page, err
}

// ListClaims returns a page of claim requests.
func (c *Client) ListClaims(ctx context.Context, opts ListOptions) (query.Page[model.ClaimRequest], error) {
	var page query.Page[model.ClaimRequest]
	err := c.doQuery(ctx, "/api/claims", opts, &page)
	return page, err
}

// SubmitClaim files a claim on a lost item.
func (c *Client) SubmitClaim(ctx context.Context, claim model.ClaimRequest) (model.ClaimRequest, error) {
	var created model.ClaimRequest
	err := c.do(ctx, http.MethodPost, "/api/claims", claim, &created)
	return created, err
}

// ReviewClaim moves a claim through its review cycle.
func (c *Client) ReviewClaim(ctx context.Context, id int64, status, notes string, appointment *time.Time) (model.ClaimRequest, error) {
	var reviewed model.ClaimRequest
	body := map[string]any{"status": status, "notes": notes}
	if appointment != nil {
		body["appointment_date"] = appointment
	}
	err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/claims/%d/review", id), body, &reviewed)
	return reviewed, err
}

// doQuery issues a GET with listing parameters.
func (c *Client) doQuery(ctx context.Context, path string, opts ListOptions, result any) error {
	return c.request(ctx, func() (*resty.Response, *errorResponse, error) {
		var apiErr errorResponse
		resp, err := c.authedRequest(ctx).
			SetQueryParams(opts.queryParams()).
			SetResult(result).
			SetError(&apiErr).
			Get(path)
		return resp, &apiErr, err
	})
}

// do issues one authenticated request.
func (c *Client) do(ctx context.Context, method, path string, body, result any) error {
	return c.request(ctx, func() (*resty.Response, *errorResponse, error) {
		var apiErr errorResponse
		req := c.authedRequest(ctx).SetError(&apiErr)
		if body != nil {
			req.SetBody(body)
		}
		if result != nil {
			req.SetResult(result)
		}
		resp, err := req.Execute(method, path)
		return resp, &apiErr, err
	})
}

// request runs send, refreshing the token pair exactly once if the server
// answers 401 and retrying the request with the new access token.
func (c *Client) request(ctx context.Context, send func() (*resty.Response, *errorResponse, error)) error {
	resp, apiErr, err := send()
	if err != nil {
		return err
	}
	if resp.StatusCode() == http.StatusUnauthorized {
		if err := c.refreshTokens(ctx); err != nil {
			return err
		}
		resp, apiErr, err = send()
		if err != nil {
			return err
		}
	}
	if resp.IsError() {
		return &APIError{Status: resp.StatusCode(), Message: apiErr.Error}
	}
	return nil
}

func (c *Client) authedRequest(ctx context.Context) *resty.Request {
	c.mu.Lock()
	access := c.access
	c.mu.Unlock()
	return c.http.R().SetContext(ctx).SetAuthToken(access)
}

// refreshTokens exchanges the stored refresh token for a new pair.
func (c *Client) refreshTokens(ctx context.Context) error {
	c.mu.Lock()
	refresh := c.refresh
	c.mu.Unlock()
	if refresh == "" {
		return ErrSessionExpired
	}

	var pair tokenPair
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]string{"refresh_token": refresh}).
		SetResult(&pair).
		Post("/api/auth/refresh")
	if err != nil {
		return fmt.Errorf("refreshing token: %w", err)
	}
	if resp.IsError() {
		return ErrSessionExpired
	}

	c.mu.Lock()
	c.access = pair.AccessToken
	c.refresh = pair.RefreshToken
	c.mu.Unlock()
	return nil
}
