package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/aquamarinepk/aqm"
)

const (
	requestTimeout  = 10 * time.Second
	maxResponseSize = 4 << 20
)

// Client is the HTTP client for the ECOEATS backend. All seller-console
// traffic goes through it: it attaches the session bearer token, enforces a
// request timeout, and normalizes every failure into a typed *Error.
//
// The backend reports failures in two layers: the HTTP status line and a
// body-level status field. Client handles the HTTP layer here; the
// data-access wrappers check the body-level field per endpoint, since the
// success shape differs between them.
type Client struct {
	baseURL string
	httpc   *http.Client
	logger  aqm.Logger
}

func NewClient(baseURL string, logger aqm.Logger) *Client {
	if logger == nil {
		logger = aqm.NewNoopLogger()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: requestTimeout},
		logger:  logger,
	}
}

// envelope is the body-level status layer shared by most backend responses.
type envelope struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// do performs a backend request and decodes the response body into out.
// A non-empty token is sent as a bearer credential. out may be nil when the
// caller only cares about the body-level status, which it can re-decode from
// the returned raw body.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, token string, payload, out interface{}) ([]byte, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, &Error{Kind: KindDecode, Err: err}
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Err: err}
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		c.logger.Error("backend request failed", "method", method, "path", path, "error", err)
		return nil, &Error{Kind: KindTransport, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, &Error{Kind: KindTransport, Err: err}
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		var env envelope
		_ = json.Unmarshal(raw, &env)
		c.logger.Info("backend rejected request", "method", method, "path", path, "status", resp.StatusCode)
		return nil, &Error{Kind: KindBackend, Status: resp.StatusCode, Message: env.Message}
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return nil, &Error{Kind: KindDecode, Err: err}
		}
	}
	return raw, nil
}

// checkEnvelope turns a body-level failure into a typed error. The backend
// keeps the HTTP layer at 200 for some rejections and reports them only
// here.
func checkEnvelope(env envelope) error {
	if env.Status != 0 && env.Status != http.StatusOK {
		return &Error{Kind: KindBackend, Status: env.Status, Message: env.Message}
	}
	return nil
}
