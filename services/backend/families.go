package backend

import (
	"context"
	"net/url"

	"github.com/pkg/errors"
)

// Family is registered by field agents in the field. The five location
// fields form a strict hierarchy resolved through core/location.
type Family struct {
	FamilyID        string    `json:"FamilyID"`
	FamilyHeadName  string    `json:"FamilyHeadName"`
	Address         string    `json:"Address"`
	Status          string    `json:"Status"`
	NumberOfMembers int       `json:"NumberOfMembers"`
	IncomeLevel     string    `json:"IncomeLevel"`
	EducationLevel  string    `json:"EducationLevel"`
	Province        string    `json:"Province"`
	District        string    `json:"District"`
	Sector          string    `json:"Sector"`
	Cell            string    `json:"Cell"`
	Village         string    `json:"Village"`
	Programs        []Program `json:"Programs,omitempty"` // linked programs (many-to-many)
}

type FamiliesAPI struct {
	c *Client
}

func (api FamiliesAPI) List(ctx context.Context) ([]Family, error) {
	var families []Family
	if err := api.c.GetJSON(ctx, "/families", &families); err != nil {
		return nil, errors.Wrap(err, "fetching families")
	}
	return families, nil
}

// ListByProgram filters on the linked program.
func (api FamiliesAPI) ListByProgram(ctx context.Context, programID string) ([]Family, error) {
	var families []Family
	path := "/families?programId=" + url.QueryEscape(programID)
	if err := api.c.GetJSON(ctx, path, &families); err != nil {
		return nil, errors.Wrapf(err, "fetching families for program %s", programID)
	}
	return families, nil
}

func (api FamiliesAPI) Register(ctx context.Context, f Family) error {
	return errors.Wrap(api.c.PostJSON(ctx, "/families/register", f, nil), "registering family")
}

func (api FamiliesAPI) Update(ctx context.Context, id string, f Family) error {
	return errors.Wrap(api.c.PutJSON(ctx, itemPath("/families/update/%s", id), f, nil), "updating family")
}

func (api FamiliesAPI) Delete(ctx context.Context, id string) error {
	return errors.Wrap(api.c.Delete(ctx, itemPath("/families/delete/%s", id)), "deleting family")
}
