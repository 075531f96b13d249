// Package client is the HTTP lifecycle client for the safety request
// backend. It covers the full REST surface: employee login and lookup plus
// create/read/update/list/delete of safety requests.
//
// Failures are split into two kinds the callers must distinguish: transport
// errors (the request never produced a server verdict; retry-eligible,
// surfaced with code ETRANSPORT) and domain errors (the server rejected the
// request; surfaced with the server-supplied message verbatim, falling back
// to a generic "HTTP {status}" text). No call is retried automatically.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/firelane/safecover/internal/domain"
)

// Client talks to the backend REST API.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// New creates a client for the given base URL (e.g. "http://localhost:8080").
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// =============================================================================
// Employees
// =============================================================================

// Login authenticates an employee and returns their profile.
func (c *Client) Login(ctx context.Context, params domain.LoginParams) (*domain.EmployeeProfile, error) {
	const op = "client.login"
	var profile domain.EmployeeProfile
	if err := c.do(ctx, op, http.MethodPost, "/api/v1/employees/login", params, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// ListEmployees returns all employees, for Activity-Incharge selection.
func (c *Client) ListEmployees(ctx context.Context) ([]domain.EmployeeProfile, error) {
	const op = "client.listEmployees"
	var out []domain.EmployeeProfile
	if err := c.do(ctx, op, http.MethodGet, "/api/v1/employees", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetEmployee fetches one employee by personnel number.
func (c *Client) GetEmployee(ctx context.Context, personnelNo string) (*domain.EmployeeProfile, error) {
	const op = "client.getEmployee"
	var profile domain.EmployeeProfile
	path := "/api/v1/employees/" + url.PathEscape(personnelNo)
	if err := c.do(ctx, op, http.MethodGet, path, nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// =============================================================================
// Safety Requests
// =============================================================================

// createResponse is the create acknowledgement carrying the store-assigned id.
type createResponse struct {
	UniqueID string `json:"uniqueId"`
}

// Create persists a new record and returns the generated unique id.
func (c *Client) Create(ctx context.Context, rec *domain.SafetyRequestRecord) (string, error) {
	const op = "client.create"
	var resp createResponse
	if err := c.do(ctx, op, http.MethodPost, "/api/v1/safety-requests", rec, &resp); err != nil {
		return "", err
	}
	return resp.UniqueID, nil
}

// Get fetches a persisted record by id.
func (c *Client) Get(ctx context.Context, id string) (*domain.SafetyRequestRecord, error) {
	const op = "client.get"
	var rec domain.SafetyRequestRecord
	path := "/api/v1/safety-requests/" + url.PathEscape(id)
	if err := c.do(ctx, op, http.MethodGet, path, nil, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// Update replaces a persisted record.
func (c *Client) Update(ctx context.Context, id string, rec *domain.SafetyRequestRecord) error {
	const op = "client.update"
	path := "/api/v1/safety-requests/" + url.PathEscape(id)
	return c.do(ctx, op, http.MethodPut, path, rec, nil)
}

// Delete removes a persisted record.
func (c *Client) Delete(ctx context.Context, id string) error {
	const op = "client.delete"
	path := "/api/v1/safety-requests/" + url.PathEscape(id)
	return c.do(ctx, op, http.MethodDelete, path, nil, nil)
}

// List returns summaries of all requests.
func (c *Client) List(ctx context.Context) ([]domain.RequestSummary, error) {
	const op = "client.list"
	var out []domain.RequestSummary
	if err := c.do(ctx, op, http.MethodGet, "/api/v1/safety-requests", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListByCoverage returns summaries of requests with the given coverage type.
func (c *Client) ListByCoverage(ctx context.Context, coverage domain.CoverageType) ([]domain.RequestSummary, error) {
	const op = "client.listByCoverage"
	var out []domain.RequestSummary
	path := "/api/v1/safety-requests/coverage/" + url.PathEscape(string(coverage))
	if err := c.do(ctx, op, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListByPersonnel returns summaries of requests raised by one employee.
func (c *Client) ListByPersonnel(ctx context.Context, personnelNumber string) ([]domain.RequestSummary, error) {
	const op = "client.listByPersonnel"
	var out []domain.RequestSummary
	path := "/api/v1/safety-requests/personnel/" + url.PathEscape(personnelNumber)
	if err := c.do(ctx, op, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// =============================================================================
// Request Plumbing
// =============================================================================

// errorBody is the JSON error envelope the backend sends on non-2xx.
type errorBody struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

// do executes one request. body (if non-nil) is sent as JSON; out (if
// non-nil) receives the decoded 2xx response body.
func (c *Client) do(ctx context.Context, op, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return domain.Internal(err, op, "failed to encode request body")
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return domain.Internal(err, op, "failed to build request")
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		// The server never produced a verdict: retry-eligible.
		return domain.Transport(err, op, "request failed; check the network and try again")
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.Transport(err, op, "failed to read response")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.domainError(op, resp.StatusCode, data)
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return domain.Internal(err, op, "failed to decode response body")
		}
	}
	return nil
}

// domainError maps a non-2xx response to a domain error, using the
// server-supplied message verbatim when present. Statuses without a
// specific code map to EREMOTE, not EINTERNAL: ErrorMessage masks
// EINTERNAL, and the caller must still see the server's message or the
// "HTTP {status}" fallback.
func (c *Client) domainError(op string, status int, data []byte) error {
	message := fmt.Sprintf("HTTP %d", status)
	var body errorBody
	if err := json.Unmarshal(data, &body); err == nil && body.Message != "" {
		message = body.Message
	}

	code := domain.EREMOTE
	switch status {
	case http.StatusBadRequest:
		code = domain.EINVALID
	case http.StatusUnauthorized:
		code = domain.EUNAUTHORIZED
	case http.StatusForbidden:
		code = domain.EFORBIDDEN
	case http.StatusNotFound:
		code = domain.ENOTFOUND
	case http.StatusConflict:
		code = domain.ECONFLICT
	case http.StatusRequestEntityTooLarge:
		code = domain.ETOOLARGE
	}

	c.logger.Debug("backend rejected request", "op", op, "status", status, "message", message)
	return &domain.Error{Code: code, Op: op, Message: message}
}
