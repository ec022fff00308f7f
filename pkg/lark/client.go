// Package lark is a thin client for the Lark open platform pieces this tool
// touches: tenant auth, Bitable record reads and batched writes, and Drive
// media uploads.
package lark

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// DefaultBaseURL is the Lark open API host.
const DefaultBaseURL = "https://open.larksuite.com"

// MaxBatchSize is the record cap Lark enforces per list page and per
// batch_create/batch_update call.
const MaxBatchSize = 500

// ErrAuth marks token acquisition failures. Callers abort the run on it.
var ErrAuth = errors.New("lark: authentication failed")

// APIError is a backend-reported application error (code != 0).
type APIError struct {
	Code int
	Msg  string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("lark api error code=%d msg=%q", e.Code, e.Msg)
}

// Record is one Bitable row. RecordID is assigned by Lark and is absent on
// rows that have not been persisted yet.
type Record struct {
	RecordID string         `json:"record_id,omitempty"`
	Fields   map[string]any `json:"fields"`
}

// Config configures a Client.
type Config struct {
	// BaseURL overrides the API host, used by tests. Default DefaultBaseURL.
	BaseURL string

	// AppToken is the Bitable app (base) token. It scopes record operations
	// and is the parent node for media uploads.
	AppToken string

	// HTTPClient overrides the transport. Default: http.Client with a 30s
	// timeout.
	HTTPClient *http.Client

	// RequestsPerSecond paces outgoing requests; Lark throttles per app.
	// Default 10.
	RequestsPerSecond float64

	Log zerolog.Logger
}

// Client talks to the Lark open API. Safe for concurrent use.
type Client struct {
	base     string
	appToken string
	http     *http.Client
	limiter  *rate.Limiter
	log      zerolog.Logger
}

// New creates a Client from cfg, filling in defaults.
func New(cfg Config) *Client {
	base := cfg.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: 30 * time.Second}
	}
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 10
	}

	return &Client{
		base:     base,
		appToken: cfg.AppToken,
		http:     hc,
		limiter:  rate.NewLimiter(rate.Limit(rps), 1),
		log:      cfg.Log,
	}
}

// AppToken returns the configured Bitable app token.
func (c *Client) AppToken() string {
	return c.appToken
}

// envelope is the common Lark response wrapper.
type envelope struct {
	Code int             `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data"`
}

// doJSON issues a request with a JSON body (nil for GET), checks transport
// and envelope codes, and returns the data payload.
func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, token string, body any) (json.RawMessage, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	u := c.base + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request for %s: %w", path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%s %s: unexpected status %d", method, path, resp.StatusCode)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("decode response from %s: %w", path, err)
	}
	if env.Code != 0 {
		return nil, &APIError{Code: env.Code, Msg: env.Msg}
	}
	return env.Data, nil
}
