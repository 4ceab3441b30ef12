// Package api implements the validating HTTP client for the CRM backend.
// Every request body is checked against its schema contract before
// transmission and every response body before it is handed back to the
// caller, so nothing enters application state without passing the contract
// layer. The client is a pure gate: it never retries and never mutates
// payload content.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"reflect"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/meridiancrm/salescycle/internal/config"
	"github.com/meridiancrm/salescycle/internal/contract"
	"github.com/meridiancrm/salescycle/internal/domain"
)

// maxErrorBody caps how much of an error response is kept as detail
const maxErrorBody = 2048

// Client wraps the HTTP transport with schema validation on both sides of
// the wire. It is safe to use concurrently for independent requests.
type Client struct {
	baseURL string
	http    *http.Client
	token   string
	logger  *zap.Logger
}

// NewClient creates a validating client for the given API configuration
func NewClient(cfg *config.APIConfig, logger *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http: &http.Client{
			Timeout: cfg.TimeoutDuration(),
		},
		token:  cfg.Token,
		logger: logger,
	}
}

// SetToken replaces the bearer token used for subsequent requests
func (c *Client) SetToken(token string) {
	c.token = token
}

// Get performs a GET and decodes the validated response into out
func (c *Client) Get(ctx context.Context, path string, params url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out, params)
}

// Post performs a POST with an optional validated body. A nil out skips
// response validation and discards the body (void endpoints).
func (c *Client) Post(ctx context.Context, path string, body, out any, params url.Values) error {
	return c.do(ctx, http.MethodPost, path, body, out, params)
}

// Put performs a PUT with an optional validated body
func (c *Client) Put(ctx context.Context, path string, body, out any, params url.Values) error {
	return c.do(ctx, http.MethodPut, path, body, out, params)
}

// Delete performs a DELETE and discards any response body
func (c *Client) Delete(ctx context.Context, path string, params url.Values) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, params)
}

// do runs one request through the gate. Ordering is fixed: request
// validation, then transmission, then response validation. A request that
// fails its contract never reaches the network.
func (c *Client) do(ctx context.Context, method, path string, body, out any, params url.Values) error {
	var buf io.Reader
	if body != nil {
		if err := contract.Check(body, domain.PhaseRequest); err != nil {
			c.logger.Warn("request payload rejected by contract",
				zap.String("method", method),
				zap.String("path", path),
				zap.Error(err),
			)
			return err
		}
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		buf = bytes.NewReader(raw)
	}

	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, buf)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	c.logger.Debug("api call completed",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return domain.NewAPIError(resp.StatusCode, errorDetail(detail))
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		// A body we cannot even decode is a contract breach, not a
		// transport failure.
		return &domain.ValidationError{
			Phase:  domain.PhaseResponse,
			Fields: []domain.FieldError{{Field: "", Message: "malformed response body: " + err.Error()}},
		}
	}

	return validateResponse(out)
}

// validateResponse checks a decoded response against its contract. Slices
// arrive from direct-array endpoints and are validated element-wise since
// the validator only accepts structs at the top level.
func validateResponse(out any) error {
	v := reflect.ValueOf(out)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}

	if v.Kind() == reflect.Slice {
		for i := 0; i < v.Len(); i++ {
			elem := v.Index(i)
			if elem.Kind() != reflect.Struct {
				continue
			}
			if err := contract.Check(elem.Interface(), domain.PhaseResponse); err != nil {
				return err
			}
		}
		return nil
	}

	if v.Kind() != reflect.Struct {
		return nil
	}
	return contract.Check(v.Interface(), domain.PhaseResponse)
}

// errorDetail extracts a backend-supplied message from an error body when one
// is present, otherwise returns the raw (truncated) body.
func errorDetail(body []byte) string {
	var problem struct {
		Message string `json:"message"`
		Detail  string `json:"detail"`
		Title   string `json:"title"`
	}
	if err := json.Unmarshal(body, &problem); err == nil {
		switch {
		case problem.Message != "":
			return problem.Message
		case problem.Detail != "":
			return problem.Detail
		case problem.Title != "":
			return problem.Title
		}
	}
	return strings.TrimSpace(string(body))
}

// joinParams builds url.Values from pairs, skipping empty values
func joinParams(pairs ...string) url.Values {
	params := url.Values{}
	for i := 0; i+1 < len(pairs); i += 2 {
		if pairs[i+1] != "" {
			params.Set(pairs[i], pairs[i+1])
		}
	}
	return params
}
