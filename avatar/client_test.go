package avatar

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// makeToken builds an unsigned JWT with the given exp claim.
func makeToken(exp time.Time) string {
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`))
	payload, _ := json.Marshal(map[string]any{"exp": exp.Unix()})
	return header + "." + base64.RawURLEncoding.EncodeToString(payload) + ".sig"
}

// avatarServer counts logins and sends, handing out the given token.
type avatarServer struct {
	*httptest.Server
	logins int
	sends  int
	token  string
}

func newAvatarServer(t *testing.T, token string) *avatarServer {
	t.Helper()
	s := &avatarServer{token: token}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/api/v1/login":
			s.logins++
			_ = json.NewEncoder(w).Encode(map[string]any{"token": s.token})
		case strings.HasSuffix(r.URL.Path, "/messages"):
			s.sends++
			assert.Equal(t, "Bearer "+s.token, r.Header.Get("Authorization"))
			_, _ = w.Write([]byte("{}"))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	return s
}

func TestLoginCachesToken(t *testing.T) {
	// A valid token is reused across sends; login happens once.
	server := newAvatarServer(t, makeToken(time.Now().Add(time.Hour)))
	defer server.Close()

	c := NewClient(server.URL, Credentials{AccountID: "a", Login: "l", Password: "p"})
	require.NoError(t, c.SendMessage(context.Background(), "conv-1", map[string]any{"text": "hi"}))
	require.NoError(t, c.SendMessage(context.Background(), "conv-1", map[string]any{"text": "again"}))

	assert.Equal(t, 1, server.logins)
	assert.Equal(t, 2, server.sends)
}

func TestExpiredTokenTriggersRelogin(t *testing.T) {
	// Once the exp claim lapses, the next send logs in again.
	server := newAvatarServer(t, makeToken(time.Now().Add(time.Hour)))
	defer server.Close()

	now := time.Now()
	clock := &now
	c := NewClient(server.URL,
		Credentials{AccountID: "a", Login: "l", Password: "p"},
		withClock(func() time.Time { return *clock }))

	require.NoError(t, c.SendMessage(context.Background(), "conv-1", map[string]any{}))
	require.Equal(t, 1, server.logins)

	later := now.Add(2 * time.Hour)
	clock = &later
	require.NoError(t, c.SendMessage(context.Background(), "conv-1", map[string]any{}))
	assert.Equal(t, 2, server.logins)
}

func TestTokenWithoutExpiryForcesLoginPerSend(t *testing.T) {
	// An opaque token with no readable exp claim is treated as expired.
	server := newAvatarServer(t, "opaque-token")
	defer server.Close()

	c := NewClient(server.URL, Credentials{AccountID: "a", Login: "l", Password: "p"})
	require.NoError(t, c.SendMessage(context.Background(), "conv-1", map[string]any{}))
	require.NoError(t, c.SendMessage(context.Background(), "conv-1", map[string]any{}))

	assert.Equal(t, 2, server.logins)
}

func TestLoginWithoutTokenFails(t *testing.T) {
	// A login response with no token is an error.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("{}"))
	}))
	defer server.Close()

	c := NewClient(server.URL, Credentials{})
	assert.Error(t, c.Login(context.Background()))
}

func TestSendFailureSurfaces(t *testing.T) {
	// A non-2xx send is returned to the caller.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/v1/login" {
			_ = json.NewEncoder(w).Encode(map[string]any{"token": makeToken(time.Now().Add(time.Hour))})
			return
		}
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	c := NewClient(server.URL, Credentials{})
	err := c.SendMessage(context.Background(), "conv-1", map[string]any{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), fmt.Sprint(http.StatusBadGateway))
}
