package backend

import (
	"context"

	"github.com/pkg/errors"

	"github.com/migeprof/fehub/core"
)

// User is a hub account; in practice every account an admin manages through
// this group is a field agent. The password is write-only: the backend never
// round-trips it back.
type User struct {
	UserID            string `json:"UserID"`
	Username          string `json:"Username"`
	Email             string `json:"Email"`
	Role              string `json:"Role"`
	IsActive          bool   `json:"IsActive"`
	MustResetPassword bool   `json:"MustResetPassword"`
}

// NewUser carries the create-field-agent form. Field error keys follow the
// JSON tags so they line up with the resource page field names.
type NewUser struct {
	Username string `json:"Username" validate:"required"`
	Email    string `json:"Email" validate:"required,email"`
	Password string `json:"Password" validate:"required"`
	Role     string `json:"Role"`
}

// UpdateUser carries the edit form; an empty Password leaves it unchanged.
type UpdateUser struct {
	Username string `json:"Username,omitempty"`
	Email    string `json:"Email,omitempty"`
	Password string `json:"Password,omitempty"`
}

type UsersAPI struct {
	c *Client
}

func (api UsersAPI) List(ctx context.Context) ([]User, error) {
	var users []User
	if err := api.c.GetJSON(ctx, "/users", &users); err != nil {
		return nil, errors.Wrap(err, "fetching users")
	}
	return users, nil
}

// Create validates the form locally before any network call; validator
// errors come back flattened as a ValidationError.
func (api UsersAPI) Create(ctx context.Context, nu NewUser) error {
	if err := core.Validate.Struct(nu); err != nil {
		return core.TranslateErrors(err)
	}
	return errors.Wrap(api.c.PostJSON(ctx, "/users/create-field-agent", nu, nil), "creating user")
}

func (api UsersAPI) Update(ctx context.Context, id string, uu UpdateUser) error {
	return errors.Wrap(api.c.PutJSON(ctx, itemPath("/users/%s", id), uu, nil), "updating user")
}

func (api UsersAPI) Delete(ctx context.Context, id string) error {
	return errors.Wrap(api.c.Delete(ctx, itemPath("/users/%s", id)), "deleting user")
}

// ToggleActivation flips the account's IsActive flag server-side.
func (api UsersAPI) ToggleActivation(ctx context.Context, id string) error {
	return errors.Wrap(api.c.PutJSON(ctx, itemPath("/users/%s/toggle-activation", id), nil, nil), "toggling user activation")
}
