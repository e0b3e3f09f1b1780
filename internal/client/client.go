// Package client talks to the portfolio REST API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	apiPrefix      = "/api"
	defaultTimeout = 30 * time.Second
)

// Collections are the ordered content collections, by route name.
var Collections = []string{"skills", "projects", "certifications", "education", "interests"}

// Client calls the API with the token held by its Session.
type Client struct {
	base    string
	http    *http.Client
	session *Session
}

type Option func(*Client)

// WithHTTPClient replaces the default client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// New returns a client for baseURL, e.g. "http://localhost:5000".
// A nil session gets a fresh in-memory one.
func New(baseURL string, session *Session, opts ...Option) *Client {
	if session == nil {
		session = NewSession()
	}
	c := &Client{
		base:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		http:    &http.Client{Timeout: defaultTimeout},
		session: session,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Session() *Session { return c.session }

// Form is a write request body. It is sent as multipart when it carries
// files, urlencoded otherwise.
type Form struct {
	values url.Values
	files  []formFile
}

type formFile struct {
	field string
	path  string
}

func NewForm() *Form { return &Form{values: url.Values{}} }

// Set replaces key.
func (f *Form) Set(key, value string) *Form {
	f.values.Set(key, value)
	return f
}

// Add appends a repeated key.
func (f *Form) Add(key, value string) *Form {
	f.values.Add(key, value)
	return f
}

// Attach adds the local file at path under field.
func (f *Form) Attach(field, path string) *Form {
	f.files = append(f.files, formFile{field: field, path: path})
	return f
}

func (f *Form) encode() (io.Reader, string, error) {
	if len(f.files) == 0 {
		return strings.NewReader(f.values.Encode()), "application/x-www-form-urlencoded", nil
	}
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for key, vals := range f.values {
		for _, v := range vals {
			if err := w.WriteField(key, v); err != nil {
				return nil, "", err
			}
		}
	}
	for _, file := range f.files {
		if err := attachFile(w, file); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

func attachFile(w *multipart.Writer, file formFile) error {
	src, err := os.Open(file.path)
	if err != nil {
		return err
	}
	defer src.Close()
	name := filepath.Base(file.path)
	contentType := mime.TypeByExtension(strings.ToLower(filepath.Ext(name)))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, file.field, name))
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	if err != nil {
		return err
	}
	_, err = io.Copy(part, src)
	return err
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader, contentType string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.base+apiPrefix+path, body)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	if token := c.session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

// do sends req and decodes a 2xx JSON body into out when out is non-nil.
func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode, Message: errorMessage(body)}
		if resp.StatusCode == http.StatusUnauthorized {
			_ = c.session.Clear()
		}
		return apiErr
	}
	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s %s: %w", req.Method, req.URL.Path, err)
	}
	return nil
}

func errorMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		return payload.Error
	}
	return strings.TrimSpace(string(body))
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := c.newRequest(ctx, http.MethodGet, path, nil, "")
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) sendJSON(ctx context.Context, method, path string, in, out any) error {
	b, err := json.Marshal(in)
	if err != nil {
		return err
	}
	req, err := c.newRequest(ctx, method, path, bytes.NewReader(b), "application/json")
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) sendForm(ctx context.Context, method, path string, form *Form, out any) error {
	if form == nil {
		form = NewForm()
	}
	body, contentType, err := form.encode()
	if err != nil {
		return err
	}
	req, err := c.newRequest(ctx, method, path, body, contentType)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) delete(ctx context.Context, path string) (string, error) {
	req, err := c.newRequest(ctx, http.MethodDelete, path, nil, "")
	if err != nil {
		return "", err
	}
	var out struct {
		Message string `json:"message"`
	}
	if err := c.do(req, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}
