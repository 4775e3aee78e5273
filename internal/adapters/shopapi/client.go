// Package shopapi is the HTTP adapter for the remote Sweet Shop REST API.
package shopapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	domainauth "github.com/DimpleKundu/incubyte-sweet-shop/internal/domain/auth"
	"github.com/DimpleKundu/incubyte-sweet-shop/internal/domain/model"
	apperrors "github.com/DimpleKundu/incubyte-sweet-shop/internal/errors"
	"golang.org/x/oauth2"
)

const maxErrorBody = 64 << 10

// Options configures a Client.
type Options struct {
	// BaseURL is the API root including any path prefix, e.g. "http://127.0.0.1:8000/api".
	BaseURL string
	// Timeout bounds each call when HTTPClient is nil.
	Timeout time.Duration
	// HTTPClient overrides the underlying client (tests, custom transports).
	HTTPClient *http.Client
	// ErrorDetailPath is the JMESPath expression locating the message in error bodies.
	ErrorDetailPath string
	Logger          *slog.Logger
}

// Client talks to the Shop API. Authenticated calls attach the caller's bearer
// token through an oauth2 transport; the Client itself holds no credentials.
type Client struct {
	base    *url.URL
	http    *http.Client
	details *detailExtractor
	logger  *slog.Logger
}

// NewClient builds a Client. BaseURL must be an absolute http(s) URL.
func NewClient(opts Options) (*Client, error) {
	raw := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if raw == "" {
		return nil, errors.New("shop api base url is required")
	}
	base, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse shop api base url: %w", err)
	}
	if (base.Scheme != "http" && base.Scheme != "https") || base.Host == "" {
		return nil, fmt.Errorf("invalid shop api base url: %q", raw)
	}

	details, err := newDetailExtractor(opts.ErrorDetailPath)
	if err != nil {
		return nil, err
	}

	hc := opts.HTTPClient
	if hc == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		hc = &http.Client{Timeout: timeout}
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		base:    base,
		http:    hc,
		details: details,
		logger:  logger.With("component", "shopapi"),
	}, nil
}

// Register creates an account.
func (c *Client) Register(ctx context.Context, creds domainauth.Credentials) error {
	return c.do(ctx, call{method: http.MethodPost, path: "/auth/register", body: creds})
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, creds domainauth.Credentials) (string, error) {
	var tok oauth2.Token
	if err := c.do(ctx, call{method: http.MethodPost, path: "/auth/login", body: creds, out: &tok}); err != nil {
		return "", err
	}
	if tok.AccessToken == "" {
		return "", errors.New("shop api: login response carried no access_token")
	}
	if tok.TokenType != "" && !strings.EqualFold(tok.TokenType, "bearer") {
		return "", fmt.Errorf("shop api: unsupported token type %q", tok.TokenType)
	}
	return tok.AccessToken, nil
}

// Me returns the user the token belongs to.
func (c *Client) Me(ctx context.Context, token string) (domainauth.User, error) {
	var u domainauth.User
	err := c.do(ctx, call{method: http.MethodGet, path: "/users/me", token: token, out: &u})
	return u, err
}

// ListSweets returns the full catalog.
func (c *Client) ListSweets(ctx context.Context, token string) ([]model.Sweet, error) {
	var sweets []model.Sweet
	if err := c.do(ctx, call{method: http.MethodGet, path: "/sweets", token: token, out: &sweets}); err != nil {
		return nil, err
	}
	if sweets == nil {
		sweets = []model.Sweet{}
	}
	return sweets, nil
}

// CreateSweet adds a sweet and returns it with its assigned ID.
func (c *Client) CreateSweet(ctx context.Context, token string, in model.SweetInput) (model.Sweet, error) {
	var s model.Sweet
	err := c.do(ctx, call{method: http.MethodPost, path: "/sweets", token: token, body: in, out: &s})
	return s, err
}

// CreateSweets adds several sweets in one request.
func (c *Client) CreateSweets(ctx context.Context, token string, in []model.SweetInput) ([]model.Sweet, error) {
	var out []model.Sweet
	err := c.do(ctx, call{method: http.MethodPost, path: "/sweets/bulk", token: token, body: in, out: &out})
	return out, err
}

// UpdateSweet replaces the editable fields of a sweet and returns the stored record.
func (c *Client) UpdateSweet(ctx context.Context, token, id string, in model.SweetInput) (model.Sweet, error) {
	var s model.Sweet
	err := c.do(ctx, call{method: http.MethodPut, path: "/sweets/" + url.PathEscape(id), token: token, body: in, out: &s})
	return s, err
}

// DeleteSweet removes a sweet.
func (c *Client) DeleteSweet(ctx context.Context, token, id string) error {
	return c.do(ctx, call{method: http.MethodDelete, path: "/sweets/" + url.PathEscape(id), token: token})
}

// Purchase buys one unit.
func (c *Client) Purchase(ctx context.Context, token, id string) error {
	return c.do(ctx, call{method: http.MethodPost, path: "/inventory/" + url.PathEscape(id) + "/purchase", token: token})
}

// Restock adds amount units.
func (c *Client) Restock(ctx context.Context, token, id string, amount int) error {
	q := url.Values{"amount": []string{strconv.Itoa(amount)}}
	return c.do(ctx, call{
		method: http.MethodPost,
		path:   "/inventory/" + url.PathEscape(id) + "/restock",
		query:  q,
		token:  token,
	})
}

type call struct {
	method string
	path   string
	query  url.Values
	token  string
	body   any
	out    any
}

func (c *Client) endpoint(path string, q url.Values) string {
	u := *c.base
	u.Path = strings.TrimRight(c.base.Path, "/") + path
	u.RawPath = ""
	if len(q) > 0 {
		u.RawQuery = q.Encode()
	}
	return u.String()
}

// clientFor returns an http.Client that authenticates with token, or the
// plain client when token is empty.
func (c *Client) clientFor(token string) *http.Client {
	if token == "" {
		return c.http
	}
	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"})
	return &http.Client{
		Transport:     &oauth2.Transport{Source: src, Base: c.http.Transport},
		CheckRedirect: c.http.CheckRedirect,
		Jar:           c.http.Jar,
		Timeout:       c.http.Timeout,
	}
}

func (c *Client) do(ctx context.Context, in call) error {
	var body io.Reader
	if in.body != nil {
		b, err := json.Marshal(in.body)
		if err != nil {
			return fmt.Errorf("encode %s %s request: %w", in.method, in.path, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, in.method, c.endpoint(in.path, in.query), body)
	if err != nil {
		return fmt.Errorf("create %s %s request: %w", in.method, in.path, err)
	}
	req.Header.Set("Accept", "application/json")
	if in.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.clientFor(in.token).Do(req)
	if err != nil {
		c.logger.WarnContext(ctx, "shop api request failed",
			"method", in.method, "path", in.path, "error", err)
		return apperrors.MapTransportError(fmt.Errorf("%s %s: %w", in.method, in.path, err))
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.logger.DebugContext(ctx, "close shop api response body", "error", cerr)
		}
	}()

	c.logger.DebugContext(ctx, "shop api request",
		"method", in.method, "path", in.path, "status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds())

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.errorFrom(resp)
	}

	if in.out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(in.out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", in.method, in.path, err)
	}
	return nil
}

// errorFrom maps a non-2xx response to an AppError whose cause is the *APIError.
func (c *Client) errorFrom(resp *http.Response) error {
	b, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		cause := errors.Join(&APIError{Status: resp.StatusCode}, fmt.Errorf("read error response: %w", err))
		return apperrors.MapStatus(resp.StatusCode, "", cause)
	}
	apiErr := &APIError{Status: resp.StatusCode, Detail: c.details.Extract(b)}
	return apperrors.MapStatus(resp.StatusCode, apiErr.Detail, apiErr)
}
