// Package avatar provides the avatar-session HTTP collaborator: login for a
// bearer token, expiry-aware token reuse, and message posting back into the
// avatar conversation.
package avatar

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"

	"github.com/voximplant/kit-functions-sdk-sub000/logging"
	"github.com/voximplant/kit-functions-sdk-sub000/observability"
)

// expirySkew is subtracted from the token expiry so a token about to lapse
// mid-request is refreshed up front.
const expirySkew = 15 * time.Second

// Credentials identifies the avatar account.
type Credentials struct {
	AccountID string
	Login     string
	Password  string
}

// Client is the avatar-session HTTP client. The bearer token obtained at
// login is cached and reused while its exp claim is unexpired; an expired
// token triggers a transparent re-login on the next call.
type Client struct {
	baseURL    string
	creds      Credentials
	httpClient *http.Client
	logger     logging.Logger
	now        func() time.Time

	token       string
	tokenExpiry time.Time
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

// withClock overrides the time source. Test hook.
func withClock(now func() time.Time) Option {
	return func(cl *Client) { cl.now = now }
}

// NewClient creates a Client for the avatar API at baseURL.
func NewClient(baseURL string, creds Credentials, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		creds:      creds,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logging.Nop(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetBaseURL points the client at a different avatar API endpoint.
func (c *Client) SetBaseURL(baseURL string) {
	c.baseURL = strings.TrimRight(baseURL, "/")
}

// Login authenticates and caches the bearer token. It is called
// transparently by SendMessage when no valid token is held.
func (c *Client) Login(ctx context.Context) error {
	tracer := otel.Tracer(observability.TracerName)
	ctx, span := tracer.Start(ctx, "avatar.login")
	defer span.End()

	body := map[string]any{
		"account_id": c.creds.AccountID,
		"login":      c.creds.Login,
		"password":   c.creds.Password,
	}
	resp, err := c.post(ctx, "/api/v1/login", "", body)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		c.logger.Error("avatar_login_failed", "error", err)
		return err
	}

	token, _ := resp["token"].(string)
	if token == "" {
		err := fmt.Errorf("avatar login response carried no token")
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	c.token = token
	c.tokenExpiry = decodeExpiry(token)
	return nil
}

// SendMessage posts a message into the avatar conversation, logging in
// first when needed.
func (c *Client) SendMessage(ctx context.Context, conversationID string, message map[string]any) error {
	if err := c.ensureToken(ctx); err != nil {
		return err
	}
	tracer := otel.Tracer(observability.TracerName)
	ctx, span := tracer.Start(ctx, "avatar.send_message")
	defer span.End()

	path := "/api/v1/conversations/" + conversationID + "/messages"
	if _, err := c.post(ctx, path, c.token, message); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		c.logger.Error("avatar_send_failed", "conversation_id", conversationID, "error", err)
		return err
	}
	return nil
}

// ensureToken reuses the cached token while unexpired, otherwise re-logs in.
func (c *Client) ensureToken(ctx context.Context) error {
	if c.token != "" && c.now().Before(c.tokenExpiry.Add(-expirySkew)) {
		return nil
	}
	return c.Login(ctx)
}

func (c *Client) post(ctx context.Context, path, bearer string, data map[string]any) (map[string]any, error) {
	encoded, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request data: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(encoded))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("avatar request %s failed with status %d", path, resp.StatusCode)
	}
	var decoded map[string]any
	if len(body) > 0 {
		if err := json.Unmarshal(body, &decoded); err != nil {
			return nil, fmt.Errorf("failed to decode response: %w", err)
		}
	}
	if decoded == nil {
		decoded = map[string]any{}
	}
	return decoded, nil
}

// decodeExpiry extracts the exp claim without verifying the signature; the
// token is opaque to the SDK and only its lifetime matters here. A token
// without a readable exp claim is treated as already expired, forcing a
// fresh login per call.
func decodeExpiry(token string) time.Time {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}
