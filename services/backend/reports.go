package backend

import (
	"context"

	"github.com/pkg/errors"
)

// AdminReport is the precomputed aggregate bundle behind the reports page.
// Sub-reports may be empty; consumers must omit, not fail.
type AdminReport struct {
	TotalPrograms         int                   `json:"totalPrograms"`
	TotalContents         int                   `json:"totalContents"`
	TotalFamilies         int                   `json:"totalFamilies"`
	TotalAttendances      int                   `json:"totalAttendances"`
	AverageFeedbackRating float64               `json:"averageFeedbackRating"`
	AttendanceByProgram   []ProgramAttendance   `json:"attendanceByProgram"`
	FeedbackByRating      []RatingCount         `json:"feedbackByRating"`
	FieldAgents           []FieldAgentSummary   `json:"fieldAgents,omitempty"`
	ProgramFamilies       []ProgramFamilyCount  `json:"programFamilies,omitempty"`
	Contents              []ContentRatingReport `json:"contents,omitempty"`
}

type ProgramAttendance struct {
	ProgramName     string `json:"Program.ProgramName"`
	AttendanceCount int    `json:"AttendanceCount"`
}

type RatingCount struct {
	Rating int `json:"Rating"`
	Count  int `json:"Count"`
}

type FieldAgentSummary struct {
	Username           string `json:"Username"`
	Email              string `json:"Email"`
	IsActive           bool   `json:"IsActive"`
	FamiliesRegistered int    `json:"FamiliesRegistered"`
}

type ProgramFamilyCount struct {
	ProgramName string `json:"ProgramName"`
	FamilyCount int    `json:"FamilyCount"`
}

type ContentRatingReport struct {
	Title         string  `json:"Title"`
	AverageRating float64 `json:"AverageRating"`
	RatingCount   int     `json:"RatingCount"`
}

type ReportsAPI struct {
	c *Client
}

func (api ReportsAPI) Stats(ctx context.Context) (AdminReport, error) {
	var report AdminReport
	if err := api.c.GetJSON(ctx, "/reports/stats", &report); err != nil {
		return AdminReport{}, errors.Wrap(err, "fetching report stats")
	}
	return report, nil
}

func (api ReportsAPI) FieldAgents(ctx context.Context) ([]FieldAgentSummary, error) {
	var agents []FieldAgentSummary
	if err := api.c.GetJSON(ctx, "/reports/field-agents", &agents); err != nil {
		return nil, errors.Wrap(err, "fetching field agent report")
	}
	return agents, nil
}

func (api ReportsAPI) ProgramsFamilies(ctx context.Context) ([]ProgramFamilyCount, error) {
	var counts []ProgramFamilyCount
	if err := api.c.GetJSON(ctx, "/reports/programs-families", &counts); err != nil {
		return nil, errors.Wrap(err, "fetching programs/families report")
	}
	return counts, nil
}

func (api ReportsAPI) Contents(ctx context.Context) ([]ContentRatingReport, error) {
	var contents []ContentRatingReport
	if err := api.c.GetJSON(ctx, "/reports/contents", &contents); err != nil {
		return nil, errors.Wrap(err, "fetching contents report")
	}
	return contents, nil
}

func (api ReportsAPI) Feedback(ctx context.Context) ([]SessionFeedback, error) {
	var feedbacks []SessionFeedback
	if err := api.c.GetJSON(ctx, "/reports/feedback", &feedbacks); err != nil {
		return nil, errors.Wrap(err, "fetching feedback report")
	}
	return feedbacks, nil
}

func (api ReportsAPI) FeedbackByID(ctx context.Context, id string) (SessionFeedback, error) {
	var feedback SessionFeedback
	if err := api.c.GetJSON(ctx, itemPath("/reports/feedback/%s", id), &feedback); err != nil {
		return SessionFeedback{}, errors.Wrapf(err, "fetching feedback %s", id)
	}
	return feedback, nil
}
