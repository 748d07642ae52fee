// pkg/httpclient/httpclient.go

package httpclient

import (
	"crypto/tls"
	"net/http"
	"os"
	"time"
)

// Every request in this program goes to a small set of Microsoft hosts
// (graph.microsoft.com, login.microsoftonline.com), so the transport keeps a
// generous per-host idle pool and forces HTTP/2. The overall timeout covers
// a single paged collection response, not a whole paging loop; callers own
// loop-level deadlines through their context.
var defaultClient = newClient()

func newClient() *http.Client {
	transport := &http.Transport{
		ForceAttemptHTTP2:   true,
		MaxIdleConns:        32,
		MaxIdleConnsPerHost: 16,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
		TLSClientConfig:     tlsConfig(),
		Proxy:               http.ProxyFromEnvironment,
	}
	return &http.Client{
		Timeout:   60 * time.Second,
		Transport: transport,
	}
}

func tlsConfig() *tls.Config {
	cfg := &tls.Config{MinVersion: tls.VersionTLS12}
	// Only for local test rigs with self-signed endpoints.
	if os.Getenv("METIS_INSECURE_TLS") == "true" {
		cfg.InsecureSkipVerify = true
	}
	return cfg
}

// DefaultClient returns the shared HTTP client used across Metis.
func DefaultClient() *http.Client {
	return defaultClient
}

// SetDefaultClient replaces the shared client, for tests.
func SetDefaultClient(client *http.Client) {
	defaultClient = client
}
