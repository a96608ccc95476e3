package backend

import (
	"context"

	"github.com/pkg/errors"
)

// DashboardStats are the precomputed totals behind the admin dashboard.
type DashboardStats struct {
	TotalPrograms    int `json:"totalPrograms"`
	TotalFamilies    int `json:"totalFamilies"`
	TotalFieldAgents int `json:"totalFieldAgents"`
	TotalContents    int `json:"totalContents"`
	TotalAttendances int `json:"totalAttendances"`
	TotalFeedbacks   int `json:"totalFeedbacks"`
}

// FieldAgentStats are the field agent's own dashboard numbers.
type FieldAgentStats struct {
	RegisteredFamilies  int `json:"registeredFamilies"`
	AttendancesRecorded int `json:"attendancesRecorded"`
	FeedbackSubmitted   int `json:"feedbackSubmitted"`
	ActivePrograms      int `json:"activePrograms"`
}

type DashboardAPI struct {
	c *Client
}

func (api DashboardAPI) Stats(ctx context.Context) (DashboardStats, error) {
	var stats DashboardStats
	if err := api.c.GetJSON(ctx, "/dashboard/stats", &stats); err != nil {
		return DashboardStats{}, errors.Wrap(err, "fetching dashboard stats")
	}
	return stats, nil
}

func (api DashboardAPI) FieldAgentStats(ctx context.Context) (FieldAgentStats, error) {
	var stats FieldAgentStats
	if err := api.c.GetJSON(ctx, "/dashboard/field-agent/stats", &stats); err != nil {
		return FieldAgentStats{}, errors.Wrap(err, "fetching field agent stats")
	}
	return stats, nil
}
