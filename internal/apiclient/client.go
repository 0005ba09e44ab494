// Package apiclient talks to the remote wallet service over REST.
package apiclient

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
	"strings"
	"time"

	"wallet_client/internal/custom_err"
)

const (
	DefaultTimeout = 15 * time.Second
	maxBodyBytes   = 10 << 20

	RequestIDHeader = "X-Request-ID"
)

// TokenStore supplies the bearer token and forgets it when the server rejects it.
type TokenStore interface {
	Token(ctx context.Context) (string, error)
	ClearToken(ctx context.Context) error
}

type authMode int

const (
	authNone authMode = iota
	authOptional
	authRequired
)

type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenStore
	log     *slog.Logger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

func New(baseURL string, tokens TokenStore, log *slog.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: DefaultTimeout},
		tokens:  tokens,
		log:     log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type call struct {
	op        string
	method    string
	path      string
	query     url.Values
	body      any
	auth      authMode
	requestID string
	accept    string
}

// do performs the call and returns the raw body of a 2xx response.
func (c *Client) do(ctx context.Context, cl call) ([]byte, error) {
	var body io.Reader
	if cl.body != nil {
		data, err := json.Marshal(cl.body)
		if err != nil {
			return nil, fmt.Errorf("%s: encode request: %w", cl.op, err)
		}
		body = bytes.NewReader(data)
	}

	target := c.baseURL + cl.path
	if len(cl.query) > 0 {
		target += "?" + cl.query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, cl.method, target, body)
	if err != nil {
		return nil, fmt.Errorf("%s: build request: %w", cl.op, err)
	}
	accept := cl.accept
	if accept == "" {
		accept = "application/json"
	}
	req.Header.Set("Accept", accept)
	if cl.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cl.requestID != "" {
		req.Header.Set(RequestIDHeader, cl.requestID)
	}

	if cl.auth != authNone {
		token, err := c.tokens.Token(ctx)
		switch {
		case err == nil:
			req.Header.Set("Authorization", "Bearer "+token)
		case cl.auth == authRequired:
			return nil, &custom_err.APIError{Op: cl.op, Kind: custom_err.KindUnauthenticated, Err: err}
		}
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("wallet service unreachable",
			slog.String("op", cl.op), slog.String("path", cl.path), slog.String("error", err.Error()))
		return nil, &custom_err.APIError{Op: cl.op, Kind: custom_err.KindNetwork, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &custom_err.APIError{Op: cl.op, Kind: custom_err.KindNetwork, StatusCode: resp.StatusCode, Err: err}
	}
	c.log.Debug("wallet service call",
		slog.String("op", cl.op),
		slog.String("method", cl.method),
		slog.String("path", cl.path),
		slog.Int("status", resp.StatusCode),
		slog.Duration("took", time.Since(start)))

	if resp.StatusCode >= 400 {
		return nil, c.statusError(ctx, cl.op, resp.StatusCode, data)
	}
	return data, nil
}

func (c *Client) statusError(ctx context.Context, op string, status int, body []byte) error {
	apiErr := &custom_err.APIError{
		Op:         op,
		Kind:       custom_err.KindForStatus(status),
		StatusCode: status,
		Message:    errorMessage(body),
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(status)
	}
	if apiErr.Kind == custom_err.KindUnauthenticated {
		if err := c.tokens.ClearToken(ctx); err != nil {
			c.log.Error("failed to clear rejected token", slog.String("op", op), slog.String("error", err.Error()))
		}
	}
	return apiErr
}

// decode unwraps the response envelope and decodes the payload into dest.
func (c *Client) decode(op string, body []byte, dest any) error {
	payload, err := unwrap(body)
	if err != nil {
		return withOp(op, err)
	}
	if len(payload) == 0 {
		return &custom_err.APIError{Op: op, Kind: custom_err.KindServer, Message: "empty response"}
	}
	if err := json.Unmarshal(payload, dest); err != nil {
		return &custom_err.APIError{Op: op, Kind: custom_err.KindServer, Message: "malformed response", Err: err}
	}
	return nil
}

func withOp(op string, err error) error {
	var apiErr *custom_err.APIError
	if errors.As(err, &apiErr) {
		apiErr.Op = op
		return apiErr
	}
	return fmt.Errorf("%s: %w", op, err)
}
