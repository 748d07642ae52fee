// pkg/msgraph/client.go
//
// Explicitly constructed Graph client: no package-level singleton, every
// consumer receives its own instance so tests run in parallel without
// hidden shared state.

package msgraph

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/CodeMonkeyCybersecurity/metis/pkg/httpclient"
	"github.com/CodeMonkeyCybersecurity/metis/pkg/metis_err"
	cerr "github.com/cockroachdb/errors"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"
)

const DefaultBaseURL = "https://graph.microsoft.com/v1.0"

// Config assembles a Client.
type Config struct {
	BaseURL string
	Tokens  TokenSource
	HTTP    *http.Client
}

type Client struct {
	base    string
	http    *http.Client
	tokens  TokenSource
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker
}

// New builds a Graph client with throttling protection: Graph allows roughly
// ten requests per second per app before returning 429s, and a tripped
// breaker short-circuits a tenant-wide outage instead of hammering it.
func New(cfg Config) *Client {
	base := cfg.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	httpc := cfg.HTTP
	if httpc == nil {
		httpc = httpclient.DefaultClient()
	}

	return &Client{
		base:    strings.TrimRight(base, "/"),
		http:    httpc,
		tokens:  cfg.Tokens,
		limiter: rate.NewLimiter(rate.Limit(10), 20),
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    "msgraph",
			Timeout: 30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
		}),
	}
}

// ListOptions maps onto Graph's OData query parameters.
type ListOptions struct {
	Select  []string
	Top     int
	Filter  string
	OrderBy string
}

func (o ListOptions) query() url.Values {
	q := url.Values{}
	if len(o.Select) > 0 {
		q.Set("$select", strings.Join(o.Select, ","))
	}
	if o.Top > 0 {
		q.Set("$top", strconv.Itoa(o.Top))
	}
	if o.Filter != "" {
		q.Set("$filter", o.Filter)
	}
	if o.OrderBy != "" {
		q.Set("$orderby", o.OrderBy)
	}
	return q
}

// do executes one authenticated request and returns the response body.
// Authentication failures (401/403) are classified distinctly from other
// remote errors so callers can abort instead of treating them as data gaps.
func (c *Client) do(ctx context.Context, method, rawURL string, body interface{}) ([]byte, error) {
	tok, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, metis_err.WrapRemoteServiceError(err, method+" "+rawURL)
	}

	result, err := c.breaker.Execute(func() (interface{}, error) {
		var reader io.Reader
		if body != nil {
			payload, err := json.Marshal(body)
			if err != nil {
				return nil, cerr.Wrap(err, "marshalling request body")
			}
			reader = bytes.NewReader(payload)
		}

		req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", "Bearer "+tok.AccessToken)
		req.Header.Set("Accept", "application/json")
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(io.LimitReader(resp.Body, 32<<20))
		if err != nil {
			return nil, err
		}

		if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
			return nil, metis_err.NewAuthenticationError(
				cerr.Newf("graph returned %d: %s", resp.StatusCode, truncate(data, 512)),
				"token rejected: re-authenticate or check API permissions")
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, cerr.Newf("graph returned %d: %s", resp.StatusCode, truncate(data, 512))
		}
		return data, nil
	})
	if err != nil {
		if metis_err.IsAuthenticationError(err) {
			return nil, err
		}
		return nil, metis_err.WrapRemoteServiceError(err, method+" "+rawURL)
	}
	return result.([]byte), nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}

// GetList fetches a Graph collection, following @odata.nextLink paging and
// flattening the {value: [...]} envelope.
func (c *Client) GetList(ctx context.Context, path string, opts ListOptions) ([]map[string]interface{}, error) {
	next := c.base + path
	if q := opts.query(); len(q) > 0 {
		next += "?" + q.Encode()
	}

	var all []map[string]interface{}
	for next != "" {
		data, err := c.do(ctx, http.MethodGet, next, nil)
		if err != nil {
			return nil, err
		}

		var envelope struct {
			Value    []map[string]interface{} `json:"value"`
			NextLink string                   `json:"@odata.nextLink"`
		}
		if err := json.Unmarshal(data, &envelope); err != nil {
			return nil, metis_err.WrapRemoteServiceError(err, "decoding collection "+path)
		}

		all = append(all, envelope.Value...)
		next = envelope.NextLink
	}
	return all, nil
}

// GetObject fetches a single Graph resource into out.
func (c *Client) GetObject(ctx context.Context, path string, opts ListOptions, out interface{}) error {
	u := c.base + path
	if q := opts.query(); len(q) > 0 {
		u += "?" + q.Encode()
	}
	data, err := c.do(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return metis_err.WrapRemoteServiceError(err, "decoding "+path)
	}
	return nil
}

// Post creates a resource and returns the service's representation of it.
func (c *Client) Post(ctx context.Context, path string, body interface{}) (map[string]interface{}, error) {
	data, err := c.do(ctx, http.MethodPost, c.base+path, body)
	if err != nil {
		return nil, err
	}

	created := map[string]interface{}{}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &created); err != nil {
			return nil, metis_err.WrapRemoteServiceError(err, "decoding create response "+path)
		}
	}
	return created, nil
}
