package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/julianstephens/sustainlog/internal/constants"
	"github.com/julianstephens/sustainlog/internal/logger"
	"github.com/julianstephens/sustainlog/internal/models"
)

// Provider is the set of operations the collection resource supports.
type Provider interface {
	List(ctx context.Context) ([]models.Action, error)
	Create(ctx context.Context, in models.ActionInput) error
	Update(ctx context.Context, id int64, patch models.ActionPatch) error
	Remove(ctx context.Context, id int64) error
}

// Client talks to the actions collection over HTTP. It performs no retries
// and sets no timeouts of its own; every failure is returned to the caller.
type Client struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
	registry   *prometheus.Registry
	metrics    *metrics
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sends requests through hc. Its transport is wrapped for
// metrics; hc itself is not modified.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithRegistry records request metrics into reg instead of a private registry.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(c *Client) {
		c.registry = reg
	}
}

var _ Provider = (*Client)(nil)

// New creates a client for the collection rooted at baseURL,
// e.g. "http://localhost:8000/api".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: http.DefaultClient,
		userAgent:  constants.AppName + "/" + constants.Version,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.registry == nil {
		c.registry = prometheus.NewRegistry()
	}
	c.metrics = newMetrics(c.registry)

	hc := *c.httpClient
	hc.Transport = c.metrics.instrument(c.httpClient.Transport)
	c.httpClient = &hc

	return c
}

// List fetches the full collection.
func (c *Client) List(ctx context.Context) ([]models.Action, error) {
	const op = "list actions"

	body, status, err := c.do(ctx, op, http.MethodGet, constants.ActionsPath, nil)
	if err != nil {
		return nil, err
	}

	var actions []models.Action
	if err := json.Unmarshal(body, &actions); err != nil {
		return nil, &ServerError{Op: op, StatusCode: status, Body: body, Err: fmt.Errorf("decode response: %w", err)}
	}
	if actions == nil {
		actions = []models.Action{}
	}
	return actions, nil
}

// Create submits a new record. The server assigns its id.
func (c *Client) Create(ctx context.Context, in models.ActionInput) error {
	_, _, err := c.do(ctx, "create action", http.MethodPost, constants.ActionsPath, in)
	return err
}

// Update applies a partial change to the record with the given id.
func (c *Client) Update(ctx context.Context, id int64, patch models.ActionPatch) error {
	_, _, err := c.do(ctx, fmt.Sprintf("update action %d", id), http.MethodPatch, itemPath(id), patch)
	return err
}

// Remove deletes the record with the given id.
func (c *Client) Remove(ctx context.Context, id int64) error {
	_, _, err := c.do(ctx, fmt.Sprintf("delete action %d", id), http.MethodDelete, itemPath(id), nil)
	return err
}

func itemPath(id int64) string {
	return constants.ActionsPath + strconv.FormatInt(id, 10) + "/"
}

func (c *Client) do(ctx context.Context, op, method, path string, payload any) ([]byte, int, error) {
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, 0, fmt.Errorf("%s: encode request: %w", op, err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: build request: %w", op, err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set(constants.RequestIDHeader, requestID)
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	res, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.failures.WithLabelValues(opLabel(method)).Inc()
		logger.Warn("Request failed", "op", op, "method", method, "path", path, "request_id", requestID, "error", err)
		return nil, 0, &TransportError{Op: op, Err: err}
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		c.metrics.failures.WithLabelValues(opLabel(method)).Inc()
		return nil, res.StatusCode, &TransportError{Op: op, Err: fmt.Errorf("read response: %w", err)}
	}

	logger.Debug("API request",
		"method", method,
		"path", path,
		"status", res.StatusCode,
		"request_id", requestID,
		"duration", time.Since(start),
	)

	if res.StatusCode >= 200 && res.StatusCode < 300 {
		return body, res.StatusCode, nil
	}

	if res.StatusCode >= 400 && res.StatusCode < 500 {
		if fields := parseFieldErrors(body); fields != nil {
			verr := &ValidationError{Op: op, StatusCode: res.StatusCode, Fields: fields}
			logger.Warn("Request rejected", "op", op, "status", res.StatusCode, "fields", verr.FieldNames())
			return nil, res.StatusCode, verr
		}
	}

	logger.Warn("Request failed", "op", op, "status", res.StatusCode, "request_id", requestID)
	return nil, res.StatusCode, &ServerError{Op: op, StatusCode: res.StatusCode, Body: body}
}
