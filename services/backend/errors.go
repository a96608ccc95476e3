package backend

import (
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"

	"github.com/pkg/errors"
)

var (
	// ErrInvalidCredentials deliberately never distinguishes a wrong email
	// from a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDisabled    = errors.New("account disabled")
	ErrForbidden          = errors.New("permission denied")
	ErrNotFound           = errors.New("not found")
)

// APIError is any non-2xx backend response outside the auth taxonomy.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend returned %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("backend returned %d", e.StatusCode)
}

func newStatusError(resp *http.Response) error {
	switch resp.StatusCode {
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	}
	return &APIError{StatusCode: resp.StatusCode, Message: readErrorMessage(resp.Body)}
}

// readErrorMessage best-effort extracts {"error": "..."} or {"message": "..."}
// from an error body.
func readErrorMessage(r io.Reader) string {
	data, err := ioutil.ReadAll(io.LimitReader(r, 4<<10))
	if err != nil {
		return ""
	}
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return ""
	}
	if body.Error != "" {
		return body.Error
	}
	return body.Message
}

// IsStatus reports whether err is an APIError with the given status code.
func IsStatus(err error, code int) bool {
	apiErr, ok := errors.Cause(err).(*APIError)
	return ok && apiErr.StatusCode == code
}
