package backend

import (
	"context"
	"net/http"

	"github.com/pkg/errors"

	"github.com/migeprof/fehub/core"
)

// AuthGateway validates credentials against the backend and performs the
// first-login forced password reset.
type AuthGateway struct {
	c *Client
}

// Credentials is the backend's answer to a successful login.
type Credentials struct {
	Token             string `json:"token"`
	Role              string `json:"role"`
	UserID            string `json:"userId"`
	MustResetPassword bool   `json:"mustResetPassword"`
}

type loginRequest struct {
	Email    string `json:"Email"`
	Password string `json:"Password"`
}

// Login exchanges credentials for a token and role. A wrong email and a
// wrong password are indistinguishable to the caller; a disabled account
// surfaces as its own error. Nothing is persisted here.
func (a AuthGateway) Login(ctx context.Context, email, password string) (Credentials, error) {
	var creds Credentials
	err := a.c.PostJSON(ctx, "/users/login", loginRequest{
		Email:    core.CleanString(email, true /* lower */),
		Password: password,
	}, &creds)
	if err != nil {
		switch {
		case IsStatus(err, http.StatusUnauthorized):
			return Credentials{}, ErrInvalidCredentials
		case errors.Cause(err) == ErrForbidden:
			return Credentials{}, ErrAccountDisabled
		}
		return Credentials{}, errors.Wrap(err, "logging in")
	}
	return creds, nil
}

// PasswordReset carries the first-login forced reset form.
type PasswordReset struct {
	UserID             string `json:"UserID"`
	OldPassword        string `json:"oldPassword"`
	NewPassword        string `json:"newPassword"`
	ConfirmNewPassword string `json:"-"`
}

// ResetPassword checks the confirmation locally before any network call,
// then submits the reset. On success the user returns to the login form.
func (a AuthGateway) ResetPassword(ctx context.Context, reset PasswordReset) error {
	if reset.NewPassword == "" {
		return core.NewValidationError(nil, core.FieldError{Field: "newPassword", Error: "this field is required"})
	}
	if reset.NewPassword != reset.ConfirmNewPassword {
		return core.NewValidationError(nil, core.FieldError{Field: "confirmNewPassword", Error: "passwords do not match"})
	}
	if err := a.c.PostJSON(ctx, "/users/reset-password", reset, nil); err != nil {
		return errors.Wrap(err, "resetting password")
	}
	return nil
}
