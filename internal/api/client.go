// Package api wraps outbound calls to the BarberPro REST backend. Every
// request reads the current session token at call time and attaches it as
// a bearer credential; error responses are normalized to *APIError.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/barberpro/barberpro-client/internal/observability/metrics"
	"github.com/barberpro/barberpro-client/pkg/logging"
)

const defaultTimeout = 15 * time.Second

// TokenSource supplies the current bearer token. The session store
// satisfies this; reading at call time means a login mid-session takes
// effect on the next request without rebuilding the client.
type TokenSource interface {
	Token() string
}

// AnonymousTokens is a TokenSource for unauthenticated clients.
type AnonymousTokens struct{}

func (AnonymousTokens) Token() string { return "" }

// Client is the API gateway. Timeouts are hard failures; retry policy
// belongs to the caller.
type Client struct {
	httpClient *http.Client
	baseURL    string
	tokens     TokenSource
	logger     *logging.Logger
	metrics    *metrics.APIMetrics
}

// NewClient constructs a gateway client against baseURL.
func NewClient(baseURL string, tokens TokenSource, logger *logging.Logger) *Client {
	if tokens == nil {
		tokens = AnonymousTokens{}
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		tokens:     tokens,
		logger:     logger,
	}
}

// WithTimeout overrides the fixed request timeout.
func (c *Client) WithTimeout(d time.Duration) *Client {
	if d > 0 {
		c.httpClient.Timeout = d
	}
	return c
}

// WithMetrics attaches request metrics.
func (c *Client) WithMetrics(m *metrics.APIMetrics) *Client {
	c.metrics = m
	return c
}

// Get issues a GET and decodes the JSON response into out.
func (c *Client) Get(ctx context.Context, path string, out interface{}) error {
	return c.doJSON(ctx, http.MethodGet, path, nil, out)
}

// Post issues a POST with a JSON body and decodes the response into out.
func (c *Client) Post(ctx context.Context, path string, body, out interface{}) error {
	return c.doJSON(ctx, http.MethodPost, path, body, out)
}

// Put issues a PUT with a JSON body and decodes the response into out.
func (c *Client) Put(ctx context.Context, path string, body, out interface{}) error {
	return c.doJSON(ctx, http.MethodPut, path, body, out)
}

// Delete issues a DELETE.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.doJSON(ctx, http.MethodDelete, path, nil, nil)
}

// PostMultipart uploads a file plus form fields, used for payment
// receipts (comprobantes).
func (c *Client) PostMultipart(ctx context.Context, path string, fields map[string]string, fileField, fileName string, file io.Reader, out interface{}) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return fmt.Errorf("api: write field %s: %w", k, err)
		}
	}
	part, err := w.CreateFormFile(fileField, fileName)
	if err != nil {
		return fmt.Errorf("api: create form file: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return fmt.Errorf("api: copy file: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("api: close multipart writer: %w", err)
	}
	return c.do(ctx, http.MethodPost, path, &buf, w.FormDataContentType(), out)
}

func (c *Client) doJSON(ctx context.Context, method, path string, body, out interface{}) error {
	var bodyReader io.Reader
	contentType := ""
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("api: marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(payload)
		contentType = "application/json"
	}
	return c.do(ctx, method, path, bodyReader, contentType, out)
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, out interface{}) error {
	endpoint := c.baseURL + path

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("api: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token := strings.TrimSpace(c.tokens.Token()); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.ObserveRequest(method, "error", time.Since(start).Seconds())
		return fmt.Errorf("api: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()
	c.metrics.ObserveRequest(method, strconv.Itoa(resp.StatusCode), time.Since(start).Seconds())

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("api: read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := newAPIError(resp.StatusCode, endpoint, respBody)
		// A 401 is surfaced to the caller; the session is never torn
		// down here, which keeps an intermittently failing backend from
		// logging the user out in a loop.
		if resp.StatusCode == http.StatusUnauthorized {
			c.logger.Warn("API request unauthorized", "method", method, "path", path)
		} else {
			c.logger.Warn("API request failed", "method", method, "path", path, "status", resp.StatusCode)
		}
		return apiErr
	}

	c.logger.Debug("API request ok", "method", method, "path", path, "status", resp.StatusCode)

	if len(respBody) == 0 || out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("api: decode response: %w", err)
	}
	return nil
}
