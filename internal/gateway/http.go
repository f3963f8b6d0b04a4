package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// HTTPClient talks to the remote gateway over JSON/HTTP. Every POST carries
// an action/token envelope; the health check is a GET with query parameters
// (the remote redirects POSTs on that path).
type HTTPClient struct {
	endpoint string
	token    string
	device   string
	hc       *http.Client
}

// NewHTTPClient builds a client for the given endpoint. The device id is
// attached to push requests so server logs can attribute uploads.
func NewHTTPClient(endpoint, token, device string, timeout time.Duration) (*HTTPClient, error) {
	if endpoint == "" || token == "" {
		return nil, ErrNotConfigured
	}
	if _, err := url.Parse(endpoint); err != nil {
		return nil, fmt.Errorf("invalid endpoint %q: %w", endpoint, err)
	}
	return &HTTPClient{
		endpoint: endpoint,
		token:    token,
		device:   device,
		hc:       &http.Client{Timeout: timeout},
	}, nil
}

func (c *HTTPClient) Close() error { return nil }

// bodyError maps the remote's body-level error field onto the sentinel
// taxonomy. The remote answers auth failures with HTTP 200 and an error
// string, so the transport status alone is not enough.
func bodyError(msg string) error {
	if msg == "" {
		return nil
	}
	if strings.Contains(strings.ToLower(msg), "access denied") {
		return fmt.Errorf("%w: %s", ErrUnauthorized, msg)
	}
	return fmt.Errorf("%w: %s", ErrRejected, msg)
}

func (c *HTTPClient) do(req *http.Request) ([]byte, error) {
	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", ErrUnavailable, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: http status %s", ErrUnavailable, resp.Status)
	}
	return body, nil
}

func (c *HTTPClient) post(ctx context.Context, env envelope, out any) error {
	raw, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	// The remote expects text/plain to avoid a CORS preflight; it parses
	// the body as JSON regardless.
	req.Header.Set("Content-Type", "text/plain;charset=utf-8")

	body, err := c.do(req)
	if err != nil {
		return err
	}
	return decodeBody(body, out)
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return fmt.Errorf("invalid endpoint: %w", err)
	}
	q := u.Query()
	q.Set("action", "health")
	q.Set("token", c.token)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	body, err := c.do(req)
	if err != nil {
		return err
	}

	var hr healthResponse
	if err := decodeBody(body, &hr); err != nil {
		return err
	}
	if err := bodyError(hr.Error); err != nil {
		return err
	}
	if hr.Status != "ok" {
		return fmt.Errorf("%w: health status %q", ErrRejected, hr.Status)
	}
	return nil
}

func (c *HTTPClient) FetchData(ctx context.Context) (*Snapshot, error) {
	var dr dataResponse
	if err := c.post(ctx, envelope{Action: "GET_DATA", Token: c.token}, &dr); err != nil {
		return nil, err
	}
	if err := bodyError(dr.Error); err != nil {
		return nil, err
	}

	snap := &Snapshot{}
	for _, w := range dr.Entities {
		snap.Entities = append(snap.Entities, fromWireEntity(w))
	}
	for _, w := range dr.Collections {
		snap.Collections = append(snap.Collections, fromWireCollection(w))
	}
	for _, w := range dr.Details {
		snap.Details = append(snap.Details, fromWireDetail(w))
	}
	snap.Metrics.QuarterlyTarget = dr.Metrics.QuarterlyTarget
	snap.Metrics.TotalCollected = dr.Metrics.TotalCollected
	snap.Metrics.PercentComplete = dr.Metrics.PercentComplete
	return snap, nil
}

func (c *HTTPClient) Push(ctx context.Context, batch Batch) (*PushResult, error) {
	env := envelope{
		Action:  "sync",
		Token:   c.token,
		Device:  c.device,
		Payload: toWirePayload(batch),
	}

	var sr syncResponse
	if err := c.post(ctx, env, &sr); err != nil {
		return nil, err
	}
	if err := bodyError(sr.Error); err != nil {
		return nil, err
	}
	if !sr.Success {
		return nil, fmt.Errorf("%w: success flag not set", ErrRejected)
	}

	return &PushResult{
		Entities:    sr.Added.Entities,
		Collections: sr.Added.Collections,
		Details:     sr.Added.Details,
		Logs:        sr.Logs,
	}, nil
}
