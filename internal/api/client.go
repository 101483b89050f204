package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// TokenSource supplies the bearer credential attached to requests. An
// empty token means unauthenticated; the session package implements this
// and tests substitute a fake.
type TokenSource interface {
	Token() string
}

// PortfolioAPI defines the operations the screens consume. Implemented
// by *Client and fakeable in tests.
type PortfolioAPI interface {
	ListPhotos(ctx context.Context) ([]Photo, error)
	ListWorks(ctx context.Context) ([]Work, error)
	ListWorkPhotos(ctx context.Context, workID int64) ([]Photo, error)
	ListCategories(ctx context.Context) ([]Category, error)
	CreatePhoto(ctx context.Context, up PhotoUploadRequest) (Photo, error)
	UpdatePhoto(ctx context.Context, update PhotoUpdate) (Photo, error)
	DeletePhoto(ctx context.Context, id int64) error
	CreateWork(ctx context.Context, update WorkUpdate) (Work, error)
	DeleteWork(ctx context.Context, id int64) error
	Login(ctx context.Context, username, password string) (LoginResponse, error)
	Verify(ctx context.Context) (User, error)
	SendContact(ctx context.Context, msg ContactMessage) (ContactResponse, error)
	FetchHealth(ctx context.Context) (*Health, error)
}

// Ensure Client implements PortfolioAPI at compile time.
var _ PortfolioAPI = (*Client)(nil)

// Client talks to the portfolio HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	tokens    TokenSource
	userAgent string
}

const (
	defaultUserAgent = "darkroom/0.1"
	requestTimeout   = 15 * time.Second
	maxErrorBody     = 8 << 10
)

// Error is a non-2xx response translated into the server's own message
// when one was provided.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// IsNotFound reports whether err is an API error with HTTP status 404.
// Deletes of already-deleted resources are reconciled as successes.
func IsNotFound(err error) bool {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.Status == http.StatusNotFound
}

// IsUnauthorized reports whether err is an API error with HTTP status 401,
// which means the stored token is missing, expired, or rejected.
func IsUnauthorized(err error) bool {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.Status == http.StatusUnauthorized
}

// NewClient builds a Client for the given base URL. The timeout covers
// everything except uploads, which rely on the caller's context instead.
func NewClient(rawURL string, tokens TokenSource) (*Client, error) {
	base, err := parseBaseURL(rawURL)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		tokens:    tokens,
		userAgent: defaultUserAgent,
	}, nil
}

// ListPhotos retrieves the full photo collection.
func (c *Client) ListPhotos(ctx context.Context) ([]Photo, error) {
	var payload []Photo
	if err := c.do(ctx, http.MethodGet, "/api/photos", nil, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// ListWorks retrieves the full works collection.
func (c *Client) ListWorks(ctx context.Context) ([]Work, error) {
	var payload []Work
	if err := c.do(ctx, http.MethodGet, "/api/works", nil, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// ListWorkPhotos retrieves the photos attached to one work.
func (c *Client) ListWorkPhotos(ctx context.Context, workID int64) ([]Photo, error) {
	if workID <= 0 {
		return nil, fmt.Errorf("work id required")
	}
	var payload []Photo
	path := "/api/works/" + strconv.FormatInt(workID, 10) + "/photos"
	if err := c.do(ctx, http.MethodGet, path, nil, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// ListCategories retrieves the category lookup list.
func (c *Client) ListCategories(ctx context.Context) ([]Category, error) {
	var payload []Category
	if err := c.do(ctx, http.MethodGet, "/api/categories", nil, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// PhotoUploadRequest carries one photo create. The file is streamed from
// Path as the multipart "photo" part; zero category or work ids are sent
// as empty fields, matching what the server expects for "none".
type PhotoUploadRequest struct {
	Path        string
	Title       string
	Description string
	CategoryID  int64
	WorkID      int64
	IsFeatured  bool
}

// CreatePhoto uploads a single photo as multipart form data. The request
// carries no explicit Content-Type header beyond the multipart writer's
// own boundary type.
func (c *Client) CreatePhoto(ctx context.Context, up PhotoUploadRequest) (Photo, error) {
	file, err := os.Open(up.Path)
	if err != nil {
		return Photo{}, fmt.Errorf("open photo: %w", err)
	}
	defer func() { _ = file.Close() }()

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	part, err := form.CreateFormFile("photo", filepath.Base(up.Path))
	if err != nil {
		return Photo{}, fmt.Errorf("build form: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return Photo{}, fmt.Errorf("read photo: %w", err)
	}
	fields := map[string]string{
		"title":       up.Title,
		"description": up.Description,
		"category_id": idField(up.CategoryID),
		"work_id":     idField(up.WorkID),
		"is_featured": strconv.FormatBool(up.IsFeatured),
	}
	for name, value := range fields {
		if err := form.WriteField(name, value); err != nil {
			return Photo{}, fmt.Errorf("build form: %w", err)
		}
	}
	if err := form.Close(); err != nil {
		return Photo{}, fmt.Errorf("build form: %w", err)
	}

	reqURL := c.baseURL.ResolveReference(&url.URL{Path: "/api/photos"})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL.String(), &body)
	if err != nil {
		return Photo{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", form.FormDataContentType())
	req.Header.Set("User-Agent", c.userAgent)
	c.attachAuth(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return Photo{}, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return Photo{}, decodeError(resp)
	}
	var created Photo
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return Photo{}, fmt.Errorf("decode response: %w", err)
	}
	return created, nil
}

// UpdatePhoto applies field-level edits to one photo.
func (c *Client) UpdatePhoto(ctx context.Context, update PhotoUpdate) (Photo, error) {
	if update.ID <= 0 {
		return Photo{}, fmt.Errorf("photo id required")
	}
	var payload Photo
	path := "/api/photos/" + strconv.FormatInt(update.ID, 10)
	if err := c.do(ctx, http.MethodPut, path, update, &payload); err != nil {
		return Photo{}, err
	}
	if payload.ID == 0 {
		// Some deployments answer updates with a bare acknowledgement.
		payload = Photo{
			ID:          update.ID,
			Title:       update.Title,
			Description: update.Description,
			CategoryID:  update.CategoryID,
			WorkID:      update.WorkID,
			IsFeatured:  update.IsFeatured,
		}
	}
	return payload, nil
}

// DeletePhoto removes one photo.
func (c *Client) DeletePhoto(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("photo id required")
	}
	return c.do(ctx, http.MethodDelete, "/api/photos/"+strconv.FormatInt(id, 10), nil, nil)
}

// CreateWork creates a work. The server assigns the id and cover photo.
func (c *Client) CreateWork(ctx context.Context, update WorkUpdate) (Work, error) {
	var payload Work
	if err := c.do(ctx, http.MethodPost, "/api/works", update, &payload); err != nil {
		return Work{}, err
	}
	return payload, nil
}

// DeleteWork removes one work. Its photos are detached server-side, so
// callers must reload the photo collection afterwards.
func (c *Client) DeleteWork(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("work id required")
	}
	return c.do(ctx, http.MethodDelete, "/api/works/"+strconv.FormatInt(id, 10), nil, nil)
}

// Login exchanges credentials for a bearer token. A rejected login is not
// an error at this level: the response carries Success=false plus the
// server's message, and the caller decides what to surface.
func (c *Client) Login(ctx context.Context, username, password string) (LoginResponse, error) {
	body := map[string]string{"username": username, "password": password}
	reqURL := c.baseURL.ResolveReference(&url.URL{Path: "/api/auth/login"})
	raw, err := json.Marshal(body)
	if err != nil {
		return LoginResponse{}, fmt.Errorf("encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL.String(), bytes.NewReader(raw))
	if err != nil {
		return LoginResponse{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return LoginResponse{}, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	var payload LoginResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxErrorBody)).Decode(&payload); err != nil {
		if resp.StatusCode >= 400 {
			return LoginResponse{}, &Error{Status: resp.StatusCode, Message: genericStatusMessage(resp.StatusCode)}
		}
		return LoginResponse{}, fmt.Errorf("decode response: %w", err)
	}
	if !payload.Success && payload.Error == "" {
		payload.Error = genericStatusMessage(resp.StatusCode)
	}
	return payload, nil
}

// Verify validates the stored bearer token against /api/auth/verify.
func (c *Client) Verify(ctx context.Context) (User, error) {
	var payload VerifyResponse
	if err := c.do(ctx, http.MethodGet, "/api/auth/verify", nil, &payload); err != nil {
		return User{}, err
	}
	return payload.User, nil
}

// SendContact submits a contact form message.
func (c *Client) SendContact(ctx context.Context, msg ContactMessage) (ContactResponse, error) {
	var payload ContactResponse
	if err := c.do(ctx, http.MethodPost, "/api/contact", msg, &payload); err != nil {
		return ContactResponse{}, err
	}
	return payload, nil
}

// FetchHealth probes /api/health.
func (c *Client) FetchHealth(ctx context.Context) (*Health, error) {
	var payload Health
	if err := c.do(ctx, http.MethodGet, "/api/health", nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, dest any) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	reqURL := c.baseURL.ResolveReference(&url.URL{Path: path})
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("User-Agent", c.userAgent)
	c.attachAuth(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return decodeError(resp)
	}
	if dest == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) attachAuth(req *http.Request) {
	if c.tokens == nil {
		return
	}
	if token := strings.TrimSpace(c.tokens.Token()); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

// decodeError turns a non-2xx response into an *Error. JSON error bodies
// are surfaced verbatim; HTML bodies from intermediaries are detected by
// sniffing so markup never leaks into the UI.
func decodeError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	message := genericStatusMessage(resp.StatusCode)

	trimmed := strings.TrimSpace(string(raw))
	switch {
	case trimmed == "":
	case looksLikeHTML(trimmed):
		message = "server returned an unexpected response"
	default:
		var body struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}
		if err := json.Unmarshal(raw, &body); err == nil {
			if body.Error != "" {
				message = body.Error
			} else if body.Message != "" {
				message = body.Message
			}
		}
	}
	return &Error{Status: resp.StatusCode, Message: message}
}

func looksLikeHTML(body string) bool {
	lower := strings.ToLower(body)
	return strings.HasPrefix(lower, "<") || strings.Contains(lower, "<!doctype")
}

func genericStatusMessage(status int) string {
	return fmt.Sprintf("HTTP %d", status)
}

func idField(id int64) string {
	if id <= 0 {
		return ""
	}
	return strconv.FormatInt(id, 10)
}

func parseBaseURL(rawURL string) (*url.URL, error) {
	trimmed := strings.TrimSpace(rawURL)
	if trimmed == "" {
		return nil, fmt.Errorf("api url is empty")
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api url %q: %w", rawURL, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
