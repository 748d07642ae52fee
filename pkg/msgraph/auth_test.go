package msgraph_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/CodeMonkeyCybersecurity/metis/pkg/metis_err"
	"github.com/CodeMonkeyCybersecurity/metis/pkg/msgraph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientCredentials_RequestsAndCachesToken(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)

		assert.Equal(t, "/tenant-1/oauth2/v2.0/token", r.URL.Path)
		assert.Equal(t, "client_credentials", r.FormValue("grant_type"))
		assert.Equal(t, "app-1", r.FormValue("client_id"))
		assert.Equal(t, "s3cret", r.FormValue("client_secret"))
		assert.Equal(t, "https://graph.microsoft.com/.default", r.FormValue("scope"))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"access_token": "tok-abc", "expires_in": 3600}`)
	}))
	defer server.Close()

	source := &msgraph.ClientCredentialsSource{
		TenantID:     "tenant-1",
		ClientID:     "app-1",
		ClientSecret: "s3cret",
		LoginBase:    server.URL,
		HTTP:         server.Client(),
	}

	tok, err := source.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok-abc", tok.AccessToken)

	// A fresh token is served from cache, not re-requested.
	again, err := source.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, tok.AccessToken, again.AccessToken)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestClientCredentials_RejectionIsAnAuthenticationError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"error": "invalid_client"}`)
	}))
	defer server.Close()

	source := &msgraph.ClientCredentialsSource{
		TenantID:     "tenant-1",
		ClientID:     "app-1",
		ClientSecret: "wrong",
		LoginBase:    server.URL,
		HTTP:         server.Client(),
	}

	_, err := source.Token(context.Background())
	require.Error(t, err)
	assert.True(t, metis_err.IsAuthenticationError(err))
}

func TestClientCredentials_EmptyTokenRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"expires_in": 3600}`)
	}))
	defer server.Close()

	source := &msgraph.ClientCredentialsSource{
		TenantID:  "tenant-1",
		ClientID:  "app-1",
		LoginBase: server.URL,
		HTTP:      server.Client(),
	}

	_, err := source.Token(context.Background())
	require.Error(t, err)
	assert.True(t, metis_err.IsAuthenticationError(err))
}

func TestStaticTokenSource(t *testing.T) {
	tok, err := msgraph.StaticTokenSource{Value: "fixed"}.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "fixed", tok.AccessToken)
}
