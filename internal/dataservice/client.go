package dataservice

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

	"github.com/rs/zerolog/log"

	apperrors "github.com/trevor93/Aigency/internal/errors"
)

// Client talks to the hosted data service: the identity API under /auth/v1
// and the tabular query API under /rest/v1.
type Client struct {
	baseURL    string
	anonKey    string
	httpClient *http.Client
}

// ClientConfig holds configuration for the data service client.
type ClientConfig struct {
	URL     string // service base URL
	AnonKey string // public API key sent with every request
	Timeout time.Duration
}

// NewClient creates a data service client.
func NewClient(cfg ClientConfig) (*Client, error) {
	host := strings.TrimSpace(cfg.URL)
	if host == "" {
		return nil, fmt.Errorf("data service URL is required")
	}
	if !strings.HasPrefix(host, "http://") && !strings.HasPrefix(host, "https://") {
		host = "https://" + host
		log.Debug().Str("url", host).Msg("No scheme in data service URL, defaulting to HTTPS")
	}
	if strings.TrimSpace(cfg.AnonKey) == "" {
		return nil, fmt.Errorf("data service API key is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		baseURL:    strings.TrimSuffix(host, "/"),
		anonKey:    strings.TrimSpace(cfg.AnonKey),
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// SelectQuery describes one tabular read: projection, ordering, optional
// row cap, and equality/range filters. The backend enforces the limit at
// the query boundary; rows are never fetched and discarded locally.
type SelectQuery struct {
	Select  string // projection, defaults to "*"
	OrderBy string // column name
	Desc    bool
	Limit   int // 0 means unlimited
	Filters []Filter
}

// Filter is a single column predicate.
type Filter struct {
	Column string
	Op     string // "eq", "gte", ...
	Value  string
}

func (q SelectQuery) encode() url.Values {
	v := url.Values{}
	sel := q.Select
	if sel == "" {
		sel = "*"
	}
	v.Set("select", sel)
	if q.OrderBy != "" {
		dir := "asc"
		if q.Desc {
			dir = "desc"
		}
		v.Set("order", q.OrderBy+"."+dir)
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	for _, f := range q.Filters {
		v.Set(f.Column, f.Op+"."+f.Value)
	}
	return v
}

// Select runs a tabular query against the named collection and decodes the
// row array into dest (a pointer to a slice).
func (c *Client) Select(ctx context.Context, collection string, q SelectQuery, dest any) error {
	endpoint := c.baseURL + "/rest/v1/" + url.PathEscape(collection) + "?" + q.encode().Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return apperrors.NewFetchError("select", collection, 0, err)
	}
	c.setAuthHeaders(req, "")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apperrors.NewFetchError("select", collection, 0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return apperrors.NewFetchError("select", collection, resp.StatusCode, errFromBody(resp))
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return apperrors.NewFetchError("select", collection, resp.StatusCode, fmt.Errorf("decode rows: %w", err))
	}
	return nil
}

// Insert writes one row into a collection. Used only for the write-only
// marketing collections (contact submissions, newsletter subscribers).
func (c *Client) Insert(ctx context.Context, collection string, row any) error {
	body, err := json.Marshal(row)
	if err != nil {
		return apperrors.NewFetchError("insert", collection, 0, err)
	}

	endpoint := c.baseURL + "/rest/v1/" + url.PathEscape(collection)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return apperrors.NewFetchError("insert", collection, 0, err)
	}
	c.setAuthHeaders(req, "")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "return=minimal")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apperrors.NewFetchError("insert", collection, 0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusNoContent {
		return apperrors.NewFetchError("insert", collection, resp.StatusCode, errFromBody(resp))
	}
	return nil
}

// SignInWithPassword exchanges credentials for a session.
func (c *Client) SignInWithPassword(ctx context.Context, email, password string) (*Session, error) {
	payload := map[string]string{"email": email, "password": password}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, apperrors.NewAuthError("sign_in", err)
	}

	endpoint := c.baseURL + "/auth/v1/token?grant_type=password"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, apperrors.NewAuthError("sign_in", err)
	}
	c.setAuthHeaders(req, "")
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.NewFetchError("sign_in", "", 0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.NewAuthError("sign_in", errFromBody(resp))
	}

	var session Session
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return nil, apperrors.NewAuthError("sign_in", fmt.Errorf("decode session: %w", err))
	}
	if session.AccessToken == "" {
		return nil, apperrors.NewAuthError("sign_in", fmt.Errorf("empty access token in response"))
	}
	return &session, nil
}

// GetUser resolves the user behind an access token. A nil user with a nil
// error is never returned: an invalid or expired token is an auth error.
func (c *Client) GetUser(ctx context.Context, accessToken string) (*User, error) {
	if strings.TrimSpace(accessToken) == "" {
		return nil, apperrors.NewAuthError("get_user", apperrors.ErrAuthRequired)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/auth/v1/user", nil)
	if err != nil {
		return nil, apperrors.NewAuthError("get_user", err)
	}
	c.setAuthHeaders(req, accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.NewFetchError("get_user", "", 0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, apperrors.NewAuthError("get_user", apperrors.ErrAuthRequired)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.NewFetchError("get_user", "", resp.StatusCode, errFromBody(resp))
	}

	var user User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, apperrors.NewAuthError("get_user", fmt.Errorf("decode user: %w", err))
	}
	return &user, nil
}

// SignOut invalidates the session behind an access token. The caller may
// proceed without awaiting success, but must have issued the call first.
func (c *Client) SignOut(ctx context.Context, accessToken string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/v1/logout", nil)
	if err != nil {
		return apperrors.NewAuthError("sign_out", err)
	}
	c.setAuthHeaders(req, accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apperrors.NewFetchError("sign_out", "", 0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusOK {
		return apperrors.NewFetchError("sign_out", "", resp.StatusCode, errFromBody(resp))
	}
	return nil
}

func (c *Client) setAuthHeaders(req *http.Request, accessToken string) {
	req.Header.Set("apikey", c.anonKey)
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	} else {
		req.Header.Set("Authorization", "Bearer "+c.anonKey)
	}
}

// errFromBody surfaces the backend's error payload without losing it, while
// keeping the portal's own message generic.
func errFromBody(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	msg := strings.TrimSpace(string(body))
	if msg == "" {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, msg)
}
