// Package upstream is the HTTP client for the job roles backend API.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/job-portal/internal/domain"
)

const maxResponseBytes = 8 << 20

// Observer receives one sample per backend call.
type Observer interface {
	RecordUpstream(operation string, status int, duration time.Duration)
}

// Client forwards front-end requests to the backend API. It is safe for
// concurrent use; per-request state travels in the context only.
type Client struct {
	baseURL  string
	http     *http.Client
	logger   *zap.Logger
	observer Observer
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client. A zero Timeout keeps
// the per-call timeout passed to NewClient.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		clone := *hc
		if clone.Timeout == 0 {
			clone.Timeout = c.http.Timeout
		}
		c.http = &clone
	}
}

// WithObserver records call outcomes.
func WithObserver(o Observer) Option {
	return func(c *Client) { c.observer = o }
}

// NewClient builds a client for baseURL with a bounded per-call timeout.
func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger, opts ...Option) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// Login exchanges credentials for a session token.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	body, err := json.Marshal(loginRequest{Email: email, Password: password})
	if err != nil {
		return "", err
	}
	var out loginResponse
	if err := c.do(ctx, "login", http.MethodPost, "/api/auth/login", bytes.NewReader(body), "application/json", &out); err != nil {
		return "", err
	}
	return out.Token, nil
}

// ListJobRoles fetches all job roles. Both the bare array and the
// {canDelete, jobRoles} envelope are accepted.
func (c *Client) ListJobRoles(ctx context.Context) (*domain.JobRoleList, error) {
	var raw json.RawMessage
	if err := c.do(ctx, "list_job_roles", http.MethodGet, "/api/job-roles", nil, "", &raw); err != nil {
		return nil, err
	}
	return decodeJobRoleList(raw)
}

// GetJobRole fetches one job role. Both the bare object and the
// {canDelete, jobRole} envelope are accepted.
func (c *Client) GetJobRole(ctx context.Context, id int) (*domain.JobRoleDetail, error) {
	var raw json.RawMessage
	if err := c.do(ctx, "get_job_role", http.MethodGet, "/api/job-roles/"+strconv.Itoa(id), nil, "", &raw); err != nil {
		return nil, err
	}
	return decodeJobRoleDetail(raw)
}

// CreateJobRole submits a new job role.
func (c *Client) CreateJobRole(ctx context.Context, req domain.CreateJobRoleRequest) (*domain.JobRole, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	var out domain.JobRole
	if err := c.do(ctx, "create_job_role", http.MethodPost, "/api/job-roles", bytes.NewReader(body), "application/json", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteJobRole removes a job role.
func (c *Client) DeleteJobRole(ctx context.Context, id int) error {
	return c.do(ctx, "delete_job_role", http.MethodDelete, "/api/job-roles/"+strconv.Itoa(id), nil, "", nil)
}

// ListBands fetches the band reference list.
func (c *Client) ListBands(ctx context.Context) ([]domain.Band, error) {
	var out []domain.Band
	if err := c.do(ctx, "list_bands", http.MethodGet, "/api/bands", nil, "", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListCapabilities fetches the capability reference list.
func (c *Client) ListCapabilities(ctx context.Context) ([]domain.Capability, error) {
	var out []domain.Capability
	if err := c.do(ctx, "list_capabilities", http.MethodGet, "/api/capabilities", nil, "", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListLocations fetches the location reference list.
func (c *Client) ListLocations(ctx context.Context) ([]domain.Location, error) {
	var out []domain.Location
	if err := c.do(ctx, "list_locations", http.MethodGet, "/api/locations", nil, "", &out); err != nil {
		return nil, err
	}
	return out, nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// SubmitApplication streams the CV and job role id to the backend as a new
// multipart body.
func (c *Client) SubmitApplication(ctx context.Context, jobRoleID int, cv domain.CVUpload) (*domain.ApplicationReceipt, error) {
	if cv.Open == nil {
		return nil, errors.New("upstream: cv upload has no content")
	}

	pr, pw := io.Pipe()
	defer pr.Close()
	mw := multipart.NewWriter(pw)

	go func() {
		err := writeApplication(mw, jobRoleID, cv)
		if err == nil {
			err = mw.Close()
		}
		_ = pw.CloseWithError(err)
	}()

	var out domain.ApplicationReceipt
	if err := c.do(ctx, "submit_application", http.MethodPost, "/api/applications", pr, mw.FormDataContentType(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func writeApplication(mw *multipart.Writer, jobRoleID int, cv domain.CVUpload) error {
	if err := mw.WriteField("jobRoleId", strconv.Itoa(jobRoleID)); err != nil {
		return err
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="cv"; filename="%s"`, quoteEscaper.Replace(cv.FileName)))
	header.Set("Content-Type", cv.ContentType)
	part, err := mw.CreatePart(header)
	if err != nil {
		return err
	}

	file, err := cv.Open()
	if err != nil {
		return err
	}
	defer file.Close()

	_, err = io.Copy(part, file)
	return err
}

type errorBody struct {
	Error string `json:"error"`
}

func (c *Client) do(ctx context.Context, op, method, path string, body io.Reader, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return &Error{Op: op, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token, ok := BearerFromContext(ctx); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if id := RequestIDFromContext(ctx); id != "" {
		req.Header.Set("X-Request-ID", id)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.observe(op, 0, start)
		c.logger.Warn("upstream call failed", zap.String("op", op), zap.Error(err))
		return &Error{Op: op, Err: err}
	}
	defer resp.Body.Close()
	c.observe(op, resp.StatusCode, start)

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return &Error{Op: op, Status: resp.StatusCode, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var eb errorBody
		_ = json.Unmarshal(payload, &eb)
		c.logger.Info("upstream returned error status",
			zap.String("op", op),
			zap.Int("status", resp.StatusCode))
		return &Error{Op: op, Status: resp.StatusCode, Message: strings.TrimSpace(eb.Error)}
	}

	if out == nil || len(bytes.TrimSpace(payload)) == 0 {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return &Error{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

func (c *Client) observe(op string, status int, start time.Time) {
	if c.observer != nil {
		c.observer.RecordUpstream(op, status, time.Since(start))
	}
}
