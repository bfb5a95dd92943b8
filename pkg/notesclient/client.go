// Package notesclient is the Go counterpart of the browser data-access module:
// one method per notes API route, returning decoded notes or an *APIError.
package notesclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// DefaultBaseURL matches the API server's default listen address
const DefaultBaseURL = "http://localhost:3001/api"

// Note mirrors the server's note payload
type Note struct {
	ID        int64     `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	NoteTitle string    `json:"note_title"`
	NoteText  string    `json:"note_text"`
}

// NoteInput is the create/update body
type NoteInput struct {
	NoteTitle string `json:"note_title"`
	NoteText  string `json:"note_text"`
}

// APIError is a non-2xx API response
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("notes api: status %d", e.StatusCode)
	}
	return fmt.Sprintf("notes api: status %d: %s", e.StatusCode, e.Message)
}

// IsNotFound reports whether err is a 404 from the API
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// IsBadRequest reports whether err is a 400 from the API
func IsBadRequest(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusBadRequest
}

// DefaultTimeout bounds each request unless WithHTTPClient supplies its own client
const DefaultTimeout = 30 * time.Second

// Client talks to the notes API
type Client struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
	rest       *resty.Client
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets a per-request timeout
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// New creates a Client for baseURL (for example http://localhost:3001/api)
func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{baseURL: strings.TrimRight(baseURL, "/")}
	for _, opt := range opts {
		opt(c)
	}

	if c.httpClient != nil {
		c.rest = resty.NewWithClient(c.httpClient)
	} else {
		c.rest = resty.New()
		if c.timeout == 0 {
			c.timeout = DefaultTimeout
		}
	}
	if c.timeout > 0 {
		c.rest.SetTimeout(c.timeout)
	}
	c.rest.SetBaseURL(c.baseURL).
		SetHeader("Accept", "application/json")
	return c
}

// ListNotes fetches all notes, newest first
func (c *Client) ListNotes(ctx context.Context) ([]Note, error) {
	var notes []Note
	resp, err := c.rest.R().SetContext(ctx).Get("/notes")
	if err := decode(resp, err, http.StatusOK, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

// GetNote fetches a single note
func (c *Client) GetNote(ctx context.Context, id int64) (*Note, error) {
	var note Note
	resp, err := c.noteRequest(ctx, id).Get("/notes/{id}")
	if err := decode(resp, err, http.StatusOK, &note); err != nil {
		return nil, err
	}
	return &note, nil
}

// SearchNotes fetches notes whose title or text contains query
func (c *Client) SearchNotes(ctx context.Context, query string) ([]Note, error) {
	var notes []Note
	resp, err := c.rest.R().
		SetContext(ctx).
		SetQueryParam("q", query).
		Get("/notes/search")
	if err := decode(resp, err, http.StatusOK, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

// CreateNote creates a note and returns it with its assigned id
func (c *Client) CreateNote(ctx context.Context, in NoteInput) (*Note, error) {
	var note Note
	resp, err := c.rest.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(in).
		Post("/notes")
	if err := decode(resp, err, http.StatusCreated, &note); err != nil {
		return nil, err
	}
	return &note, nil
}

// UpdateNote replaces the title and text of a note
func (c *Client) UpdateNote(ctx context.Context, id int64, in NoteInput) (*Note, error) {
	var note Note
	resp, err := c.noteRequest(ctx, id).
		SetHeader("Content-Type", "application/json").
		SetBody(in).
		Put("/notes/{id}")
	if err := decode(resp, err, http.StatusOK, &note); err != nil {
		return nil, err
	}
	return &note, nil
}

// DeleteNote removes a note
func (c *Client) DeleteNote(ctx context.Context, id int64) error {
	resp, err := c.noteRequest(ctx, id).Delete("/notes/{id}")
	return decode(resp, err, http.StatusNoContent, nil)
}

func (c *Client) noteRequest(ctx context.Context, id int64) *resty.Request {
	return c.rest.R().
		SetContext(ctx).
		SetPathParam("id", strconv.FormatInt(id, 10))
}

// decode checks the status and unmarshals the body into out.
// Bodies are decoded here rather than by resty so error payloads that are not JSON still surface.
func decode(resp *resty.Response, err error, want int, out interface{}) error {
	if err != nil {
		return err
	}
	if resp.StatusCode() != want {
		return newAPIError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func newAPIError(resp *resty.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode()}

	var payload struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(resp.Body(), &payload) == nil && payload.Error != "" {
		apiErr.Message = payload.Error
	} else {
		apiErr.Message = strings.TrimSpace(string(resp.Body()))
	}
	return apiErr
}
