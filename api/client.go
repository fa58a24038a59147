// Package api provides the platform HTTP API proxy collaborator. The core
// consumes it through the narrow Requester interface; transport-level retry
// and backoff policy is deliberately out of scope here.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/voximplant/kit-functions-sdk-sub000/logging"
	"github.com/voximplant/kit-functions-sdk-sub000/observability"
)

// Requester is the narrow contract the core consumes.
type Requester interface {
	// Request POSTs data to the platform API path and returns the decoded
	// response body.
	Request(ctx context.Context, path string, data map[string]any) (map[string]any, error)
}

// Error is a rejected API call that carried a response body. Callers receive
// the unwrapped response data, not the transport-level failure.
type Error struct {
	StatusCode int
	Data       map[string]any
}

func (e *Error) Error() string {
	return fmt.Sprintf("api request failed with status %d", e.StatusCode)
}

// NewError creates a new Error.
func NewError(statusCode int, data map[string]any) *Error {
	return &Error{StatusCode: statusCode, Data: data}
}

// Client is the HTTP implementation of Requester.
type Client struct {
	baseURL     string
	domain      string
	accessToken string
	httpClient  *http.Client
	logger      logging.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) { cl.httpClient = c }
}

// WithLogger sets the client logger.
func WithLogger(l logging.Logger) Option {
	return func(cl *Client) { cl.logger = l }
}

// NewClient creates a Client bound to the invocation's platform coordinates
// taken from the classified envelope headers.
func NewClient(baseURL, domain, accessToken string, opts ...Option) *Client {
	c := &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		domain:      domain,
		accessToken: accessToken,
		httpClient:  &http.Client{Timeout: 30 * time.Second},
		logger:      logging.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Request POSTs data as JSON to path. A non-2xx response with a decodable
// JSON body is returned as *Error carrying that body; anything else is
// returned as-is.
func (c *Client) Request(ctx context.Context, path string, data map[string]any) (map[string]any, error) {
	tracer := otel.Tracer(observability.TracerName)
	ctx, span := tracer.Start(ctx, "api.request")
	defer span.End()
	span.SetAttributes(attribute.String("api.path", path))

	start := time.Now()
	result, err := c.do(ctx, path, data)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		observability.RecordAPIRequest(path, "error", time.Since(start).Seconds())
		c.logger.Error("api_request_failed", "path", path, "error", err)
		return nil, err
	}
	observability.RecordAPIRequest(path, "success", time.Since(start).Seconds())
	return result, nil
}

func (c *Client) do(ctx context.Context, path string, data map[string]any) (map[string]any, error) {
	if data == nil {
		data = map[string]any{}
	}
	encoded, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request data: %w", err)
	}

	endpoint := c.baseURL + "/" + strings.TrimLeft(path, "/")
	query := url.Values{}
	query.Set("domain", c.domain)
	query.Set("access_token", c.accessToken)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		endpoint+"?"+query.Encode(), bytes.NewReader(encoded))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", uuid.New().String())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var decoded map[string]any
	if len(body) > 0 {
		// A non-JSON body on an error status still yields the bare Error.
		_ = json.Unmarshal(body, &decoded)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, NewError(resp.StatusCode, decoded)
	}
	if decoded == nil {
		decoded = map[string]any{}
	}
	return decoded, nil
}
