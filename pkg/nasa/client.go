package nasa

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/cosmoview-hq/cosmoview-gateway/pkg/httpclient"
	"github.com/cosmoview-hq/cosmoview-gateway/pkg/sources"
)

// Package nasa implements one adapter per upstream source: each operation
// validates its input, builds the request, issues the call, and normalizes
// the response envelope into internal/domain shapes. Failures are classified
// through the Error type in errors.go.

const isoDateLayout = "2006-01-02"

// Client carries the shared pieces every adapter needs: the HTTP transport,
// the source endpoint registry, and the read-only API credential.
type Client struct {
	httpc  httpclient.Client
	reg    *sources.Registry
	apiKey string
}

// NewClient builds an adapter client. A nil httpClient falls back to the
// default resty transport; a nil registry falls back to production endpoints.
func NewClient(httpClient httpclient.Client, reg *sources.Registry, apiKey string) *Client {
	if httpClient == nil {
		httpClient = httpclient.NewRestyClient(15 * time.Second)
	}
	if reg == nil {
		reg = sources.DefaultRegistry()
	}
	return &Client{
		httpc:  httpClient,
		reg:    reg,
		apiKey: strings.TrimSpace(apiKey),
	}
}

// endpoint resolves the base URL for a source kind, checking the credential
// requirement before any request is built.
func (c *Client) endpoint(kind sources.Kind, source string) (string, error) {
	if c.reg.RequiresKey(kind) && c.apiKey == "" {
		return "", missingCredential(source)
	}
	base, err := c.reg.Endpoint(kind)
	if err != nil {
		return "", fmt.Errorf("%s: %w", source, err)
	}
	return base, nil
}

// buildURL appends query parameters (plus api_key where the source wants one)
// to the base endpoint.
func (c *Client) buildURL(kind sources.Kind, base string, params url.Values) string {
	if params == nil {
		params = url.Values{}
	}
	if c.reg.RequiresKey(kind) {
		params.Set("api_key", c.apiKey)
	}
	if len(params) == 0 {
		return base
	}
	return base + "?" + params.Encode()
}

// errorEnvelope matches the embedded error object some sources return with a
// 2xx status.
type errorEnvelope struct {
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
	ErrorMessage string `json:"error_message"`
}

// embeddedError extracts an upstream error message hidden inside a JSON body,
// if any.
func embeddedError(body []byte) string {
	var env errorEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return ""
	}
	if env.Error != nil && env.Error.Message != "" {
		return env.Error.Message
	}
	return env.ErrorMessage
}

// getJSON issues a GET and decodes the body into out, classifying transport
// failures, embedded error objects, and undecodable envelopes.
func (c *Client) getJSON(ctx context.Context, source, rawURL string, out any) error {
	resp, err := c.httpc.Get(ctx, rawURL, nil)
	if err != nil {
		return fmt.Errorf("%s: fetch: %w", source, err)
	}

	body := resp.Body()
	if status := resp.StatusCode(); status < 200 || status > 299 {
		if msg := embeddedError(body); msg != "" {
			return transportError(source, status, []byte(msg))
		}
		return transportError(source, status, body)
	}

	if msg := embeddedError(body); msg != "" {
		return upstreamError(source, msg)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return malformedEnvelope(source, "decode response: %v (body: %s)", err, responseSnippet(body))
	}
	return nil
}

func responseSnippet(body []byte) string {
	const maxLen = 512
	s := strings.TrimSpace(string(body))
	if len(s) > maxLen {
		return s[:maxLen] + "..."
	}
	if s == "" {
		return "<empty>"
	}
	return s
}
