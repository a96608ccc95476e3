package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/migeprof/fehub/core"
)

func TestAuthGateway_Login(t *testing.T) {
	var gotReq loginRequest
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "POST", r.Method)
		require.Equal(t, "/users/login", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		switch gotReq.Email {
		case "admin@hub.org":
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"token":             "jwt-abc",
				"role":              "admin",
				"userId":            "1",
				"mustResetPassword": false,
			})
		case "fresh@hub.org":
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"token":             "jwt-def",
				"role":              "field-agent",
				"userId":            "9",
				"mustResetPassword": true,
			})
		case "disabled@hub.org":
			w.WriteHeader(http.StatusForbidden)
		default:
			w.WriteHeader(http.StatusUnauthorized)
		}
	}))

	t.Run("ok", func(t *testing.T) {
		creds, err := client.Auth.Login(context.Background(), "Admin@Hub.org ", "pass")
		require.NoError(t, err)
		assert.Equal(t, "jwt-abc", creds.Token)
		assert.Equal(t, "admin", creds.Role)
		assert.Equal(t, "1", creds.UserID)
		assert.False(t, creds.MustResetPassword)

		// email is cleaned before it goes on the wire
		assert.Equal(t, "admin@hub.org", gotReq.Email)
	})

	t.Run("forced reset", func(t *testing.T) {
		creds, err := client.Auth.Login(context.Background(), "fresh@hub.org", "pass")
		require.NoError(t, err)
		assert.True(t, creds.MustResetPassword)
	})

	t.Run("bad credentials", func(t *testing.T) {
		_, err := client.Auth.Login(context.Background(), "nobody@hub.org", "nope")
		assert.Equal(t, ErrInvalidCredentials, errors.Cause(err))
	})

	t.Run("disabled account", func(t *testing.T) {
		_, err := client.Auth.Login(context.Background(), "disabled@hub.org", "pass")
		assert.Equal(t, ErrAccountDisabled, errors.Cause(err))
	})
}

func TestAuthGateway_ResetPassword(t *testing.T) {
	var calls int
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		require.Equal(t, "/users/reset-password", r.URL.Path)

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "42", body["UserID"])
		assert.NotContains(t, body, "ConfirmNewPassword")
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("mismatch stays local", func(t *testing.T) {
		err := client.Auth.ResetPassword(context.Background(), PasswordReset{
			UserID:             "42",
			OldPassword:        "old",
			NewPassword:        "new1",
			ConfirmNewPassword: "new2",
		})
		require.Error(t, err)
		vErr, ok := errors.Cause(err).(*core.ValidationError)
		require.True(t, ok)
		assert.Contains(t, vErr.FieldMap(), "confirmNewPassword")
		assert.Zero(t, calls)
	})

	t.Run("empty new password stays local", func(t *testing.T) {
		err := client.Auth.ResetPassword(context.Background(), PasswordReset{UserID: "42", OldPassword: "old"})
		require.Error(t, err)
		assert.True(t, core.IsValidationError(err))
		assert.Zero(t, calls)
	})

	t.Run("ok", func(t *testing.T) {
		err := client.Auth.ResetPassword(context.Background(), PasswordReset{
			UserID:             "42",
			OldPassword:        "old",
			NewPassword:        "brand-new",
			ConfirmNewPassword: "brand-new",
		})
		require.NoError(t, err)
		assert.Equal(t, 1, calls)
	})
}
