package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"membership-app/internal/domain/users"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"
)

// AuthError is a failure reported by the hosted identity provider, either
// an explicit rejection (bad credentials, duplicate email) or a transport
// failure. Callers treat any AuthError from a passive session check as
// "not authenticated".
type AuthError struct {
	Status  int
	Code    string
	Message string
}

func (e *AuthError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("identity: %s (%s)", e.Message, e.Code)
	}
	return "identity: " + e.Message
}

// Session is an authenticated round-trip result from the provider.
type Session struct {
	Token     string     `json:"token"`
	ExpiresAt time.Time  `json:"expires_at"`
	User      users.User `json:"user"`
}

// Config points the client at a hosted provider.
type Config struct {
	Issuer       string
	ClientID     string
	ClientSecret string
}

// Client wraps the hosted identity provider. Credential verification and
// token issuance happen entirely on the provider's side; this client only
// relays calls and verifies the ID tokens that come back.
type Client struct {
	cfg      Config
	oauth    *oauth2.Config
	verifier *oidc.IDTokenVerifier
	http     *http.Client
}

// New discovers the provider's endpoints and builds a client. The discovery
// round-trip fails fast when the issuer is unreachable or misconfigured.
func New(ctx context.Context, cfg Config) (*Client, error) {
	provider, err := oidc.NewProvider(ctx, cfg.Issuer)
	if err != nil {
		return nil, fmt.Errorf("identity: provider discovery: %w", err)
	}

	return &Client{
		cfg: cfg,
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Endpoint:     provider.Endpoint(),
			Scopes:       []string{oidc.ScopeOpenID, "email", "profile"},
		},
		verifier: provider.Verifier(&oidc.Config{ClientID: cfg.ClientID}),
		http:     &http.Client{Timeout: 10 * time.Second},
	}, nil
}

// SignUp registers a new account with the provider and returns the created
// profile. The provider owns password policy and duplicate detection; its
// rejections come back as *AuthError.
func (c *Client) SignUp(ctx context.Context, email, password, name string) (users.User, error) {
	payload, _ := json.Marshal(map[string]string{
		"email":    email,
		"password": password,
		"name":     name,
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Issuer+"/signup", bytes.NewReader(payload))
	if err != nil {
		return users.Anonymous, &AuthError{Message: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return users.Anonymous, &AuthError{Code: "network", Message: "identity provider unreachable"}
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return users.Anonymous, errorFromResponse(resp.StatusCode, body)
	}

	return users.FromJSON(body), nil
}

// SignIn exchanges credentials for a session via the provider's password
// grant, then verifies the returned ID token.
func (c *Client) SignIn(ctx context.Context, email, password string) (*Session, error) {
	tok, err := c.oauth.PasswordCredentialsToken(ctx, email, password)
	if err != nil {
		var rErr *oauth2.RetrieveError
		if errors.As(err, &rErr) && rErr.Response != nil {
			return nil, errorFromResponse(rErr.Response.StatusCode, rErr.Body)
		}
		return nil, &AuthError{Code: "network", Message: "identity provider unreachable"}
	}

	rawIDToken, ok := tok.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		return nil, &AuthError{Code: "protocol", Message: "provider returned no id_token"}
	}

	return c.sessionFromToken(ctx, rawIDToken)
}

// GetSession validates a previously issued token. A missing token is simply
// "no session"; a token that fails verification for any reason (expired,
// tampered, provider keys unreachable) is an *AuthError, which callers must
// treat as not authenticated, never as success.
func (c *Client) GetSession(ctx context.Context, rawToken string) (*Session, error) {
	if rawToken == "" {
		return nil, nil
	}
	return c.sessionFromToken(ctx, rawToken)
}

func (c *Client) sessionFromToken(ctx context.Context, rawToken string) (*Session, error) {
	idToken, err := c.verifier.Verify(ctx, rawToken)
	if err != nil {
		return nil, &AuthError{Code: "invalid_token", Message: err.Error()}
	}

	// The one place raw provider claims become a normalized User.
	var claims json.RawMessage
	if err := idToken.Claims(&claims); err != nil {
		return nil, &AuthError{Code: "invalid_token", Message: err.Error()}
	}

	return &Session{
		Token:     rawToken,
		ExpiresAt: idToken.Expiry,
		User:      users.FromJSON(claims),
	}, nil
}

// errorFromResponse maps a provider error body onto an AuthError. Bodies are
// JSON like {"error": "...", "error_description": "..."} but malformed ones
// still produce a usable message.
func errorFromResponse(status int, body []byte) *AuthError {
	var parsed struct {
		Error       string `json:"error"`
		Description string `json:"error_description"`
		Message     string `json:"msg"`
	}
	_ = json.Unmarshal(body, &parsed)

	msg := parsed.Description
	if msg == "" {
		msg = parsed.Message
	}
	if msg == "" {
		msg = http.StatusText(status)
	}

	return &AuthError{Status: status, Code: parsed.Error, Message: msg}
}
