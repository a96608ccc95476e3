package backend

import (
	"context"

	"github.com/pkg/errors"
)

// SessionFeedback is submitted by field agents after a program session.
// Its field set diverges from ContentRating below; the two shapes were never
// unified upstream and stay distinct here.
type SessionFeedback struct {
	FeedbackID           string `json:"FeedbackID,omitempty"`
	FullName             string `json:"fullName"`
	Email                string `json:"email"`
	ServiceName          string `json:"serviceName"`
	ProgramID            string `json:"programId"`
	SessionDate          string `json:"sessionDate"`
	ConstructiveFeedback string `json:"constructiveFeedback"`
	Uncertainties        string `json:"uncertainties"`
	Recommend            bool   `json:"recommend"`
	AdditionalComments   string `json:"additionalComments"`
	Rating               int    `json:"rating"` // 1-5
	AttendanceCount      int    `json:"attendanceCount"`

	Program *Program `json:"Program,omitempty"`
}

// ContentRating is submitted on behalf of a family member for one content
// item, on a 1-10 scale.
type ContentRating struct {
	ContentID string `json:"ContentID"`
	FamilyID  string `json:"FamilyID"`
	Rating    int    `json:"Rating"` // 1-10
}

type FeedbackAPI struct {
	c *Client
}

func (api FeedbackAPI) List(ctx context.Context) ([]SessionFeedback, error) {
	var feedbacks []SessionFeedback
	if err := api.c.GetJSON(ctx, "/feedback", &feedbacks); err != nil {
		return nil, errors.Wrap(err, "fetching feedback")
	}
	return feedbacks, nil
}

func (api FeedbackAPI) Submit(ctx context.Context, fb SessionFeedback) error {
	return errors.Wrap(api.c.PostJSON(ctx, "/feedback", fb, nil), "submitting feedback")
}

// TodayAttendance returns the same-day attendance count snapshot attached to
// session feedback at submission time.
func (api FeedbackAPI) TodayAttendance(ctx context.Context, programID string) (int, error) {
	var resp struct {
		Count int `json:"count"`
	}
	path := itemPath("/feedback/today-attendance/%s", programID)
	if err := api.c.GetJSON(ctx, path, &resp); err != nil {
		return 0, errors.Wrapf(err, "fetching today's attendance for program %s", programID)
	}
	return resp.Count, nil
}

func (api FeedbackAPI) SubmitContentRating(ctx context.Context, cr ContentRating) error {
	return errors.Wrap(api.c.PostJSON(ctx, "/feedback/submit", cr, nil), "submitting content rating")
}

// ListRatedIDs returns the identifiers of content items already rated.
func (api FeedbackAPI) ListRatedIDs(ctx context.Context) ([]string, error) {
	var ids []string
	if err := api.c.GetJSON(ctx, "/feedback/ids", &ids); err != nil {
		return nil, errors.Wrap(err, "fetching rated content ids")
	}
	return ids, nil
}
