// Package client calls a running gateway over HTTP.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/alphabetz/alphabetz/internal/convertgen"
	"github.com/alphabetz/alphabetz/internal/llm"
	"github.com/alphabetz/alphabetz/internal/questiongen"
)

// APIError is a non-2xx, non-429 gateway response.
type APIError struct {
	Status  int
	Message string
	Detail  string
}

func (e *APIError) Error() string {
	switch {
	case e.Detail != "":
		return e.Detail
	case e.Message != "":
		return e.Message
	}
	return fmt.Sprintf("HTTP error! Status: %d", e.Status)
}

// Client implements questiongen.Generator and convertgen.Converter against
// a gateway.
type Client struct {
	baseURL string
	http    *http.Client
}

// New returns a client for the gateway at baseURL, e.g.
// "http://localhost:3000" or "https://example.com/api".
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 90 * time.Second}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

var (
	_ questiongen.Generator = (*Client)(nil)
	_ convertgen.Converter  = (*Client)(nil)
)

// Generate requests a question batch. Malformed items in the response are
// dropped the same way the gateway drops them.
func (c *Client) Generate(ctx context.Context, s questiongen.Settings) ([]questiongen.Question, error) {
	var qs questiongen.Batch
	body := map[string]questiongen.Settings{"settings": s}
	if err := c.post(ctx, "/generate", body, &qs); err != nil {
		return nil, err
	}
	return qs, nil
}

// Convert requests one conversion. The result is checked against the
// conversion schema before it is returned.
func (c *Client) Convert(ctx context.Context, req convertgen.Request) (*convertgen.Result, error) {
	var raw json.RawMessage
	if err := c.post(ctx, "/convert", req, &raw); err != nil {
		return nil, err
	}
	if err := llm.Validate(convertgen.ConversionSchema, raw); err != nil {
		return nil, err
	}
	return convertgen.ParseResult(raw)
}

func (c *Client) post(ctx context.Context, path string, in, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if id := llm.RequestIDFrom(ctx); id != "" {
		req.Header.Set("X-Request-ID", id)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("POST %s: %w", path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return fmt.Errorf("read %s response: %w", path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return responseError(resp, data)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

func responseError(resp *http.Response, data []byte) error {
	var body struct {
		Error  string `json:"error"`
		Detail string `json:"detail"`
	}
	_ = json.Unmarshal(data, &body)

	apiErr := &APIError{Status: resp.StatusCode, Message: body.Error, Detail: body.Detail}
	if resp.StatusCode == http.StatusTooManyRequests {
		return &llm.ErrRateLimit{
			RetryAfter: llm.ParseRetryAfter(resp.Header.Get("Retry-After")),
			Err:        apiErr,
		}
	}
	return apiErr
}
