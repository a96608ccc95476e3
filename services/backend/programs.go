package backend

import (
	"context"

	"github.com/pkg/errors"
)

// Program is a service/initiative families enroll in. The thumbnail travels
// as a base64-encoded string inside the JSON body, both ways.
type Program struct {
	ProgramID   string `json:"ProgramID"`
	ProgramName string `json:"ProgramName"`
	Description string `json:"Description"`
	Thumbnail   string `json:"Thumbnail,omitempty"` // base64
	IsActive    bool   `json:"IsActive"`
}

type ProgramsAPI struct {
	c *Client
}

func (api ProgramsAPI) List(ctx context.Context) ([]Program, error) {
	var programs []Program
	if err := api.c.GetJSON(ctx, "/programs", &programs); err != nil {
		return nil, errors.Wrap(err, "fetching programs")
	}
	return programs, nil
}

func (api ProgramsAPI) Create(ctx context.Context, p Program) error {
	return errors.Wrap(api.c.PostJSON(ctx, "/programs", p, nil), "creating program")
}

func (api ProgramsAPI) Update(ctx context.Context, id string, p Program) error {
	return errors.Wrap(api.c.PutJSON(ctx, itemPath("/programs/%s", id), p, nil), "updating program")
}

func (api ProgramsAPI) Delete(ctx context.Context, id string) error {
	return errors.Wrap(api.c.Delete(ctx, itemPath("/programs/%s", id)), "deleting program")
}

// ToggleStatus flips the program's IsActive flag server-side.
func (api ProgramsAPI) ToggleStatus(ctx context.Context, id string) error {
	return errors.Wrap(api.c.PutJSON(ctx, itemPath("/programs/toggle-status/%s", id), nil, nil), "toggling program status")
}
