/**
 * Copyright 2025-present Coinbase Global, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"banglapay-wallet-go/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/net/http2"
)

// maxResponseBytes bounds how much of a response body is read.
const maxResponseBytes = 4 << 20

// Credentials supplies the bearer token for outgoing requests. The
// generation identifies the session the token belongs to.
type Credentials interface {
	Credential() (token string, generation uint64)
	Invalidate(generation uint64) bool
}

// Client issues typed requests against the wallet backend. Reads are cached
// per session and tagged; successful mutations invalidate the tags they
// affect. Nothing is retried automatically.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	creds      Credentials
	cache      *queryCache
}

func NewClient(cfg models.ApiConfig, creds Credentials) (*Client, error) {
	baseURL, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base url %q: %w", cfg.BaseURL, err)
	}
	if baseURL.Scheme == "" || baseURL.Host == "" {
		return nil, fmt.Errorf("invalid base url %q: scheme and host are required", cfg.BaseURL)
	}

	httpClient, err := createCustomHttpClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("unable to create custom http client: %w", err)
	}

	return newClient(baseURL, httpClient, creds), nil
}

func newClient(baseURL *url.URL, httpClient *http.Client, creds Credentials) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		creds:      creds,
		cache:      newQueryCache(),
	}
}

func createCustomHttpClient(cfg models.ApiConfig) (*http.Client, error) {
	tr := &http.Transport{
		ResponseHeaderTimeout: cfg.ResponseHeaderTimeout,
		Proxy:                 http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			KeepAlive: 30 * time.Second,
			Timeout:   cfg.DialTimeout,
		}).DialContext,
		MaxIdleConns:          10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   cfg.TLSHandshakeTimeout,
		MaxIdleConnsPerHost:   5,
		ExpectContinueTimeout: 5 * time.Second,
	}

	if err := http2.ConfigureTransport(tr); err != nil {
		return nil, err
	}

	return &http.Client{
		Transport: tr,
		Timeout:   cfg.RequestTimeout,
	}, nil
}

// Invalidate drops cached reads carrying any of the tags so the next call refetches.
func (c *Client) Invalidate(tags ...Tag) {
	n := c.cache.invalidate(tags...)
	zap.L().Debug("Invalidated cached queries", zap.Int("count", n))
}

type request struct {
	method string
	path   string
	query  url.Values
	body   any
	// token overrides the session credential when non-nil; "" sends none.
	token *string
}

func explicitToken(token string) *string {
	return &token
}

// do sends req and stores the raw response body in out when out is non-nil.
func (c *Client) do(ctx context.Context, req request, out *json.RawMessage) error {
	endpoint := c.baseURL.JoinPath(req.path)
	if len(req.query) > 0 {
		endpoint.RawQuery = req.query.Encode()
	}

	var body io.Reader
	if req.body != nil {
		payload, err := json.Marshal(req.body)
		if err != nil {
			return fmt.Errorf("unable to encode %s %s request: %w", req.method, req.path, err)
		}
		body = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, endpoint.String(), body)
	if err != nil {
		return fmt.Errorf("unable to build %s %s request: %w", req.method, req.path, err)
	}

	requestId := uuid.New().String()
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("X-Request-Id", requestId)
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	token, generation := c.creds.Credential()
	fromSession := true
	if req.token != nil {
		token = *req.token
		fromSession = false
	}
	if token != "" {
		httpReq.Header.Set("authorization", token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		zap.L().Warn("API request failed",
			zap.String("method", req.method),
			zap.String("path", req.path),
			zap.String("request_id", requestId),
			zap.Error(err))
		return &APIError{Message: "unable to reach the wallet service", Err: err}
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			zap.L().Warn("Failed to close response body", zap.Error(err))
		}
	}()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return &APIError{Status: resp.StatusCode, Message: "unable to read response", Err: err}
	}

	zap.L().Debug("API request completed",
		zap.String("method", req.method),
		zap.String("path", req.path),
		zap.String("request_id", requestId),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))

	if resp.StatusCode == http.StatusUnauthorized && fromSession && token != "" {
		c.creds.Invalidate(generation)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newAPIError(resp.StatusCode, raw)
	}

	if out != nil {
		*out = append((*out)[:0], raw...)
	}
	return nil
}

// mutate sends a state-changing request exactly once and invalidates the
// given tags on success.
func (c *Client) mutate(ctx context.Context, req request, out *json.RawMessage, invalidates ...Tag) error {
	if err := c.do(ctx, req, out); err != nil {
		zap.L().Info("Mutation rejected",
			zap.String("method", req.method),
			zap.String("path", req.path),
			zap.Error(err))
		return err
	}
	if len(invalidates) > 0 {
		c.Invalidate(invalidates...)
	}
	return nil
}

// unparsedResult logs a 2xx mutation body that could not be parsed. The
// write has already happened, so callers return a nil result and no error.
func unparsedResult(path string, err error) {
	zap.L().Warn("Mutation accepted with unrecognized response body",
		zap.String("path", path),
		zap.Error(err))
}

// cached serves a read from the per-session cache or fetches it. fetch
// returns the tags the result provides.
func cached[T any](ctx context.Context, c *Client, key string, fetch func(context.Context) (T, []Tag, error)) (T, error) {
	_, generation := c.creds.Credential()
	if v, ok := c.cache.get(key, generation); ok {
		if typed, ok := v.(T); ok {
			return typed, nil
		}
	}

	value, tags, err := fetch(ctx)
	if err != nil {
		var zero T
		return zero, err
	}
	c.cache.put(key, generation, value, tags)
	return value, nil
}

// decode unmarshals raw into v, reporting which endpoint produced bad JSON.
func decode(raw json.RawMessage, path string, v any) error {
	if len(bytes.TrimSpace(raw)) == 0 {
		return fmt.Errorf("empty response from %s", path)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("unable to decode %s response: %w", path, err)
	}
	return nil
}

var errMissingField = errors.New("missing required field")
