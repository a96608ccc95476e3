// Package backend is the hub's client for the external REST API that owns
// all program data. One shared client carries the base URL and injects the
// session bearer token into every outgoing request.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/migeprof/fehub/core"
	"github.com/migeprof/fehub/core/resource"
)

type ctxKey int

const tokenKey ctxKey = iota

// ContextWithToken binds the session token to a request context; every call
// made with that context carries `Authorization: Bearer <token>`.
func ContextWithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey, token)
}

func TokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey).(string)
	return token
}

// bearerTransport mirrors the request interceptor of the original client:
// the token is read from the session on every outgoing request.
type bearerTransport struct {
	next http.RoundTripper
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if token := TokenFromContext(req.Context()); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("X-Request-ID", uuid.New().String())
	return t.next.RoundTrip(req)
}

type Client struct {
	base *url.URL
	http *http.Client

	Auth       AuthGateway
	Users      UsersAPI
	Programs   ProgramsAPI
	Families   FamiliesAPI
	Contents   ContentsAPI
	Attendance AttendanceAPI
	Feedback   FeedbackAPI
	Dashboard  DashboardAPI
	Reports    ReportsAPI
}

func NewClient(conf *core.Config) (*Client, error) {
	base, err := url.Parse(conf.Backend.BaseURL)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing backend base URL %q", conf.Backend.BaseURL)
	}
	c := &Client{
		base: base,
		http: &http.Client{
			Timeout:   conf.Backend.Timeout,
			Transport: &bearerTransport{next: http.DefaultTransport},
		},
	}
	c.Auth = AuthGateway{c}
	c.Users = UsersAPI{c}
	c.Programs = ProgramsAPI{c}
	c.Families = FamiliesAPI{c}
	c.Contents = ContentsAPI{c}
	c.Attendance = AttendanceAPI{c}
	c.Feedback = FeedbackAPI{c}
	c.Dashboard = DashboardAPI{c}
	c.Reports = ReportsAPI{c}
	return c, nil
}

func (c *Client) url(path string) string {
	return strings.TrimRight(c.base.String(), "/") + path
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, c.url(path), body)
	if err != nil {
		return errors.Wrapf(err, "building %s %s", method, path)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrapf(err, "%s %s", method, path)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newStatusError(resp)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return errors.Wrapf(err, "decoding %s %s response", method, path)
		}
	}
	return nil
}

// GetJSON fetches path and decodes the JSON response into out.
func (c *Client) GetJSON(ctx context.Context, path string, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, nil, "", out)
}

// PostJSON posts body as JSON; out may be nil.
func (c *Client) PostJSON(ctx context.Context, path string, body, out interface{}) error {
	buf, err := encodeJSON(body)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, path, buf, "application/json", out)
}

// PutJSON puts body as JSON; out may be nil.
func (c *Client) PutJSON(ctx context.Context, path string, body, out interface{}) error {
	var buf io.Reader
	if body != nil {
		b, err := encodeJSON(body)
		if err != nil {
			return err
		}
		buf = b
	}
	return c.do(ctx, http.MethodPut, path, buf, "application/json", out)
}

// Delete issues a DELETE; the response body is discarded.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, "", nil)
}

// Upload is a named file part for multipart submissions.
type Upload = resource.Upload

// SendMultipart posts fields and files as a multipart form; used for binary
// attachments too large to inline as base64.
func (c *Client) SendMultipart(ctx context.Context, method, path string, fields map[string]string, files []Upload, out interface{}) error {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for name, val := range fields {
		if err := w.WriteField(name, val); err != nil {
			return errors.Wrapf(err, "writing multipart field %q", name)
		}
	}
	for _, f := range files {
		part, err := w.CreateFormFile(f.FieldName, f.Filename)
		if err != nil {
			return errors.Wrapf(err, "creating multipart file %q", f.FieldName)
		}
		if _, err := part.Write(f.Content); err != nil {
			return errors.Wrapf(err, "writing multipart file %q", f.FieldName)
		}
	}
	if err := w.Close(); err != nil {
		return errors.Wrap(err, "closing multipart writer")
	}
	return c.do(ctx, method, path, &body, w.FormDataContentType(), out)
}

func encodeJSON(body interface{}) (*bytes.Buffer, error) {
	buf := new(bytes.Buffer)
	if err := json.NewEncoder(buf).Encode(body); err != nil {
		return nil, errors.Wrap(err, "encoding request body")
	}
	return buf, nil
}

func itemPath(pattern, id string) string {
	return fmt.Sprintf(pattern, url.PathEscape(id))
}
