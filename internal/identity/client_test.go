package identity

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"errors"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"membership-app/internal/domain/tiers"
	"membership-app/internal/domain/users"

	"github.com/golang-jwt/jwt/v5"
)

// fakeIssuer is a minimal hosted provider: discovery document, JWKS, a
// password-grant token endpoint, and a JSON signup endpoint.
type fakeIssuer struct {
	server *httptest.Server
	key    *rsa.PrivateKey

	signupStatus int
	signupBody   string
	tokenStatus  int
	tokenBody    string
}

func newFakeIssuer(t *testing.T) *fakeIssuer {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}

	fi := &fakeIssuer{key: key, signupStatus: http.StatusOK, tokenStatus: http.StatusOK}

	mux := http.NewServeMux()
	mux.HandleFunc("/.well-known/openid-configuration", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"issuer":                 fi.server.URL,
			"authorization_endpoint": fi.server.URL + "/authorize",
			"token_endpoint":         fi.server.URL + "/token",
			"jwks_uri":               fi.server.URL + "/keys",
		})
	})
	mux.HandleFunc("/keys", func(w http.ResponseWriter, r *http.Request) {
		pub := &fi.key.PublicKey
		json.NewEncoder(w).Encode(map[string]any{
			"keys": []map[string]string{{
				"kty": "RSA",
				"kid": "test-key-1",
				"use": "sig",
				"alg": "RS256",
				"n":   base64.RawURLEncoding.EncodeToString(pub.N.Bytes()),
				"e":   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(pub.E)).Bytes()),
			}},
		})
	})
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(fi.tokenStatus)
		w.Write([]byte(fi.tokenBody))
	})
	mux.HandleFunc("/signup", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(fi.signupStatus)
		w.Write([]byte(fi.signupBody))
	})

	fi.server = httptest.NewServer(mux)
	t.Cleanup(fi.server.Close)
	return fi
}

func (fi *fakeIssuer) idToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	base := jwt.MapClaims{
		"iss": fi.server.URL,
		"aud": "test-client",
		"exp": time.Now().Add(time.Hour).Unix(),
		"iat": time.Now().Unix(),
	}
	for k, v := range claims {
		base[k] = v
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodRS256, base)
	tok.Header["kid"] = "test-key-1"
	s, err := tok.SignedString(fi.key)
	if err != nil {
		t.Fatalf("sign id token: %v", err)
	}
	return s
}

func (fi *fakeIssuer) client(t *testing.T) *Client {
	t.Helper()
	c, err := New(context.Background(), Config{
		Issuer:   fi.server.URL,
		ClientID: "test-client",
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func TestSignUpReturnsNormalizedProfile(t *testing.T) {
	fi := newFakeIssuer(t)
	fi.signupBody = `{"id":"u1","email":"a@b.com","name":"Ada","planTier":"premium"}`
	c := fi.client(t)

	u, err := c.SignUp(context.Background(), "a@b.com", "pw123456", "Ada")
	if err != nil {
		t.Fatalf("SignUp: %v", err)
	}
	if u.ID != "u1" || u.Email != "a@b.com" {
		t.Errorf("profile = %+v", u)
	}
	// legacy planTier spelling normalizes at the boundary
	if got := users.TierOf(u); got != tiers.TierEdge {
		t.Errorf("tier = %q, want edge", got)
	}
}

func TestSignUpProviderRejection(t *testing.T) {
	fi := newFakeIssuer(t)
	fi.signupStatus = http.StatusConflict
	fi.signupBody = `{"error":"email_exists","error_description":"Email already registered"}`
	c := fi.client(t)

	_, err := c.SignUp(context.Background(), "a@b.com", "pw123456", "")
	var ae *AuthError
	if !errors.As(err, &ae) {
		t.Fatalf("err = %v, want *AuthError", err)
	}
	if ae.Status != http.StatusConflict || ae.Code != "email_exists" {
		t.Errorf("AuthError = %+v", ae)
	}
	if ae.Message != "Email already registered" {
		t.Errorf("Message = %q", ae.Message)
	}
}

func TestSignInVerifiesIDToken(t *testing.T) {
	fi := newFakeIssuer(t)
	c := fi.client(t)

	idToken := fi.idToken(t, jwt.MapClaims{
		"sub":   "u1",
		"email": "a@b.com",
		"tier":  "core",
	})
	body, _ := json.Marshal(map[string]any{
		"access_token": "at-1",
		"token_type":   "bearer",
		"expires_in":   3600,
		"id_token":     idToken,
	})
	fi.tokenBody = string(body)

	sess, err := c.SignIn(context.Background(), "a@b.com", "pw")
	if err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	if sess.Token != idToken {
		t.Error("session token should be the verified id_token")
	}
	if sess.User.ID != "u1" || users.TierOf(sess.User) != tiers.TierCore {
		t.Errorf("session user = %+v", sess.User)
	}
	if sess.ExpiresAt.Before(time.Now()) {
		t.Errorf("ExpiresAt = %v, should be in the future", sess.ExpiresAt)
	}
}

func TestSignInBadCredentials(t *testing.T) {
	fi := newFakeIssuer(t)
	fi.tokenStatus = http.StatusBadRequest
	fi.tokenBody = `{"error":"invalid_grant","error_description":"Invalid credentials"}`
	c := fi.client(t)

	_, err := c.SignIn(context.Background(), "a@b.com", "wrong")
	var ae *AuthError
	if !errors.As(err, &ae) {
		t.Fatalf("err = %v, want *AuthError", err)
	}
	if ae.Code != "invalid_grant" {
		t.Errorf("Code = %q", ae.Code)
	}
}

func TestSignInMissingIDToken(t *testing.T) {
	fi := newFakeIssuer(t)
	fi.tokenBody = `{"access_token":"at-1","token_type":"bearer"}`
	c := fi.client(t)

	_, err := c.SignIn(context.Background(), "a@b.com", "pw")
	var ae *AuthError
	if !errors.As(err, &ae) || ae.Code != "protocol" {
		t.Fatalf("err = %v, want protocol AuthError", err)
	}
}

func TestGetSession(t *testing.T) {
	fi := newFakeIssuer(t)
	c := fi.client(t)

	// no token: no session, no error
	sess, err := c.GetSession(context.Background(), "")
	if sess != nil || err != nil {
		t.Errorf("empty token: sess = %v, err = %v", sess, err)
	}

	// garbage token: AuthError, never success
	_, err = c.GetSession(context.Background(), "garbage")
	var ae *AuthError
	if !errors.As(err, &ae) || ae.Code != "invalid_token" {
		t.Errorf("garbage token err = %v", err)
	}

	// expired token: AuthError
	expired := fi.idToken(t, jwt.MapClaims{
		"sub": "u1",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})
	if _, err = c.GetSession(context.Background(), expired); err == nil {
		t.Error("expired token should not verify")
	}

	// valid token round-trips the user
	valid := fi.idToken(t, jwt.MapClaims{"sub": "u1", "email": "a@b.com", "tier": "edge"})
	sess, err = c.GetSession(context.Background(), valid)
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if sess.User.ID != "u1" || users.TierOf(sess.User) != tiers.TierEdge {
		t.Errorf("session user = %+v", sess.User)
	}
}
