package backend

import (
	"context"

	"github.com/pkg/errors"
)

// Attendance statuses.
const (
	StatusPresent = "Present"
	StatusAbsent  = "Absent"
)

// Attendance records one family's presence at one program session. The
// backend keeps at most one row per (ProgramID, FamilyID); a later
// submission supersedes the earlier one.
type Attendance struct {
	AttendanceID string `json:"AttendanceID,omitempty"`
	ProgramID    string `json:"ProgramID"`
	FamilyID     string `json:"FamilyID"`
	Status       string `json:"Status"`
	UserID       string `json:"UserID,omitempty"`

	Program *Program `json:"Program,omitempty"`
	Family  *Family  `json:"Family,omitempty"`
}

type AttendanceAPI struct {
	c *Client
}

func (api AttendanceAPI) List(ctx context.Context) ([]Attendance, error) {
	var attendances []Attendance
	if err := api.c.GetJSON(ctx, "/attendances", &attendances); err != nil {
		return nil, errors.Wrap(err, "fetching attendances")
	}
	return attendances, nil
}

// Upsert creates or replaces the attendance row keyed by (ProgramID, FamilyID).
func (api AttendanceAPI) Upsert(ctx context.Context, a Attendance) error {
	return errors.Wrap(api.c.PostJSON(ctx, "/attendances", a, nil), "upserting attendance")
}
