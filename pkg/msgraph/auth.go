// pkg/msgraph/auth.go

package msgraph

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/CodeMonkeyCybersecurity/metis/pkg/httpclient"
	"github.com/CodeMonkeyCybersecurity/metis/pkg/metis_err"
	cerr "github.com/cockroachdb/errors"
)

const defaultLoginBase = "https://login.microsoftonline.com"

// Token is a bearer token with its expiry.
type Token struct {
	AccessToken string
	ExpiresAt   time.Time
}

// TokenSource supplies bearer tokens for Graph requests. A total failure to
// obtain a token is the one condition that aborts a whole snapshot fetch.
type TokenSource interface {
	Token(ctx context.Context) (Token, error)
}

// StaticTokenSource returns a fixed token. Used in tests and pipelines where
// a token is minted externally.
type StaticTokenSource struct {
	Value string
}

func (s StaticTokenSource) Token(ctx context.Context) (Token, error) {
	if s.Value == "" {
		return Token{}, metis_err.NewAuthenticationError(
			cerr.New("static token source has no token"), "provide a token")
	}
	return Token{AccessToken: s.Value, ExpiresAt: time.Now().Add(time.Hour)}, nil
}

// ClientCredentialsSource implements the OAuth2 client-credentials flow
// against Azure AD, caching the token until shortly before expiry.
type ClientCredentialsSource struct {
	TenantID     string
	ClientID     string
	ClientSecret string

	// LoginBase overrides the Azure AD endpoint in tests.
	LoginBase string
	HTTP      *http.Client

	mu     sync.Mutex
	cached Token
}

func (s *ClientCredentialsSource) Token(ctx context.Context) (Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Refresh 5 minutes early so in-flight requests never carry a token that
	// expires mid-call.
	if s.cached.AccessToken != "" && time.Until(s.cached.ExpiresAt) > 5*time.Minute {
		return s.cached, nil
	}

	base := s.LoginBase
	if base == "" {
		base = defaultLoginBase
	}
	httpc := s.HTTP
	if httpc == nil {
		httpc = httpclient.DefaultClient()
	}

	form := url.Values{
		"grant_type":    {"client_credentials"},
		"client_id":     {s.ClientID},
		"client_secret": {s.ClientSecret},
		"scope":         {"https://graph.microsoft.com/.default"},
	}

	endpoint := fmt.Sprintf("%s/%s/oauth2/v2.0/token", base, s.TenantID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint,
		strings.NewReader(form.Encode()))
	if err != nil {
		return Token{}, metis_err.NewAuthenticationError(err, "building token request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := httpc.Do(req)
	if err != nil {
		return Token{}, metis_err.NewAuthenticationError(err, "check network connectivity to login.microsoftonline.com")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return Token{}, metis_err.NewAuthenticationError(err, "reading token response")
	}

	if resp.StatusCode != http.StatusOK {
		return Token{}, metis_err.NewAuthenticationError(
			cerr.Newf("token endpoint returned %d: %s", resp.StatusCode, string(body)),
			"verify tenant_id, client_id, and the client secret")
	}

	var payload struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return Token{}, metis_err.NewAuthenticationError(err, "decoding token response")
	}
	if payload.AccessToken == "" {
		return Token{}, metis_err.NewAuthenticationError(
			cerr.New("token endpoint returned no access_token"), "verify API permissions")
	}

	s.cached = Token{
		AccessToken: payload.AccessToken,
		ExpiresAt:   time.Now().Add(time.Duration(payload.ExpiresIn) * time.Second),
	}
	return s.cached, nil
}
