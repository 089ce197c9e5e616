// Package transport holds the three backend collaborators: the cold-start
// session transport and the stateless recommendation and search clients.
// Each operation is a single round trip; there is no retry and no caching.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Config carries the shared client settings.
type Config struct {
	BaseURL string
	Timeout time.Duration
	Logger  *zap.Logger
}

// client is the shared HTTP plumbing under the three collaborators.
type client struct {
	hc   *http.Client
	base string
	log  *zap.Logger
}

func newClient(cfg Config) client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return client{
		hc:   &http.Client{Timeout: timeout},
		base: strings.TrimRight(cfg.BaseURL, "/"),
		log:  log,
	}
}

// do issues one request and maps every failure mode to a *Error. A non-nil
// response is returned only for 2xx statuses.
func (c client) do(ctx context.Context, op, method, path string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return nil, &Error{Kind: KindUnreachable, Op: op, Err: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		kind := KindUnreachable
		var nerr net.Error
		if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &nerr) && nerr.Timeout()) {
			kind = KindTimeout
		}
		c.log.Warn("request failed", zap.String("op", op), zap.Error(err))
		return nil, &Error{Kind: kind, Op: op, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		resp.Body.Close()
		c.log.Warn("non-success status",
			zap.String("op", op), zap.Int("status", resp.StatusCode))
		return nil, &Error{
			Kind:   KindStatus,
			Op:     op,
			Status: resp.StatusCode,
			Err:    fmt.Errorf("%s", strings.TrimSpace(string(b))),
		}
	}
	return resp, nil
}

// getJSON performs a GET and decodes the body into out.
func (c client) getJSON(ctx context.Context, op, path string, out any) error {
	resp, err := c.do(ctx, op, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &Error{Kind: KindMalformed, Op: op, Err: err}
	}
	return nil
}

// postJSON performs a POST with an optional JSON payload and decodes the
// response into out.
func (c client) postJSON(ctx context.Context, op, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return &Error{Kind: KindMalformed, Op: op, Err: err}
		}
		body = bytes.NewReader(raw)
	}
	resp, err := c.do(ctx, op, http.MethodPost, path, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &Error{Kind: KindMalformed, Op: op, Err: err}
	}
	return nil
}
