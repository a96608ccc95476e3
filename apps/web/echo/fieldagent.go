package echoweb

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/migeprof/fehub/core"
	"github.com/migeprof/fehub/core/resource"
	"github.com/migeprof/fehub/core/session"
	"github.com/migeprof/fehub/services/backend"
)

func (s *server) registerFieldAgent() {
	g := s.app.Group("", requireRole(session.RoleFieldAgent))

	g.GET("/dashboard/field-agent", s.fieldAgentDashboard)

	g.GET("/access-materials", s.accessMaterials)
	g.POST("/access-materials/rate", s.rateContent)

	s.registerResource(g, &resourcePage{
		path:    "/register-families",
		title:   "Register Families",
		manager: resource.NewManager(resource.Families(), s.opts.Client, s.opts.Logger),
		options: locationOptions,
	})

	g.GET("/track-attendance", s.trackAttendance)
	g.POST("/track-attendance", s.recordAttendance)

	g.GET("/submit-feedback", s.submitFeedbackPage)
	g.POST("/submit-feedback", s.submitFeedback)
}

func (s *server) fieldAgentDashboard(ctx echo.Context) error {
	stats, err := s.opts.Client.Dashboard.FieldAgentStats(reqCtx(ctx))
	if err != nil {
		return err
	}
	return renderPage(ctx, http.StatusOK, "dashboard-field-agent", "Dashboard", stats)
}

// Access Materials

type materialsData struct {
	Contents []backend.Content
	Families []backend.Family
	RatedIDs map[string]bool
}

func (s *server) accessMaterials(ctx echo.Context) error {
	rctx := reqCtx(ctx)

	contents, err := s.opts.Client.Contents.List(rctx)
	if err != nil {
		return err
	}
	families, err := s.opts.Client.Families.List(rctx)
	if err != nil {
		return err
	}

	// already-rated contents render without the rating control
	rated := map[string]bool{}
	if ids, err := s.opts.Client.Feedback.ListRatedIDs(rctx); err == nil {
		for _, id := range ids {
			rated[id] = true
		}
	}

	return renderPage(ctx, http.StatusOK, "access-materials", "Access Materials", materialsData{
		Contents: contents,
		Families: families,
		RatedIDs: rated,
	})
}

func (s *server) rateContent(ctx echo.Context) error {
	mgr := resource.NewManager(resource.ContentRatings(), s.opts.Client, s.opts.Logger)
	vals := resource.Values{
		"ContentID": ctx.FormValue("content_id"),
		"FamilyID":  ctx.FormValue("family_id"),
		"Rating":    ctx.FormValue("rating"),
	}
	if err := mgr.Create(reqCtx(ctx), vals, nil); err != nil {
		if core.IsValidationError(err) {
			setFlash(ctx, "Select a content and a family, and rate between 1 and 10.")
			return ctx.Redirect(http.StatusSeeOther, "/access-materials")
		}
		return err
	}
	setFlash(ctx, "Rating submitted")
	return ctx.Redirect(http.StatusSeeOther, "/access-materials")
}

// Track Attendance

type attendanceData struct {
	Programs    []backend.Program
	Families    []backend.Family
	Attendances []backend.Attendance
	ProgramID   string
}

func (s *server) trackAttendance(ctx echo.Context) error {
	rctx := reqCtx(ctx)

	programs, err := s.opts.Client.Programs.List(rctx)
	if err != nil {
		return err
	}

	data := attendanceData{
		Programs:  programs,
		ProgramID: ctx.QueryParam("program"),
	}
	if data.ProgramID == "" && len(programs) > 0 {
		data.ProgramID = programs[0].ProgramID
	}

	if data.ProgramID != "" {
		if data.Families, err = s.opts.Client.Families.ListByProgram(rctx, data.ProgramID); err != nil {
			return err
		}
	}
	if data.Attendances, err = s.opts.Client.Attendance.List(rctx); err != nil {
		return err
	}

	return renderPage(ctx, http.StatusOK, "track-attendance", "Track Attendance", data)
}

func (s *server) recordAttendance(ctx echo.Context) error {
	vals := resource.Values{
		"ProgramID": ctx.FormValue("program_id"),
		"FamilyID":  ctx.FormValue("family_id"),
		"Status":    ctx.FormValue("status"),
	}
	if vals["Status"] != backend.StatusPresent && vals["Status"] != backend.StatusAbsent {
		setFlash(ctx, "Select a program, family and status.")
		return ctx.Redirect(http.StatusSeeOther, "/track-attendance")
	}

	// the manager routes the upsert back to the collection endpoint; the
	// backend replaces any existing (program, family) row
	mgr := resource.NewManager(resource.Attendances(), s.opts.Client, s.opts.Logger)
	if err := mgr.Update(reqCtx(ctx), "", vals, nil); err != nil {
		if core.IsValidationError(err) {
			setFlash(ctx, "Select a program, family and status.")
			return ctx.Redirect(http.StatusSeeOther, "/track-attendance")
		}
		return err
	}
	setFlash(ctx, "Attendance recorded")
	return ctx.Redirect(http.StatusSeeOther, "/track-attendance?program="+vals["ProgramID"])
}

// Submit Feedback

type feedbackPageData struct {
	Programs        []backend.Program
	Form            resource.Values
	AttendanceCount int
	ProgramID       string
	Errors          map[string]string
	Error           string
}

func (s *server) submitFeedbackPage(ctx echo.Context) error {
	rctx := reqCtx(ctx)

	programs, err := s.opts.Client.Programs.List(rctx)
	if err != nil {
		return err
	}

	data := feedbackPageData{
		Programs:  programs,
		ProgramID: ctx.QueryParam("program"),
		Form:      resource.Values{"sessionDate": time.Now().Format("2006-01-02")},
	}
	// selecting a program pre-fills today's headcount for that session
	if data.ProgramID != "" {
		if count, err := s.opts.Client.Feedback.TodayAttendance(rctx, data.ProgramID); err == nil {
			data.AttendanceCount = count
			data.Form["attendanceCount"] = strconv.Itoa(count)
		}
		data.Form["programId"] = data.ProgramID
	}

	return renderPage(ctx, http.StatusOK, "submit-feedback", "Submit Feedback", data)
}

func (s *server) submitFeedback(ctx echo.Context) error {
	mgr := resource.NewManager(resource.SessionFeedbacks(), s.opts.Client, s.opts.Logger)

	vals := resource.Values{}
	for _, f := range mgr.Schema.Fields {
		vals[f.Name] = ctx.FormValue(f.Name)
	}

	if err := mgr.Create(reqCtx(ctx), vals, nil); err != nil {
		if vErr, ok := errors.Cause(err).(*core.ValidationError); ok {
			programs, lErr := s.opts.Client.Programs.List(reqCtx(ctx))
			if lErr != nil {
				return lErr
			}
			return renderPage(ctx, http.StatusOK, "submit-feedback", "Submit Feedback", feedbackPageData{
				Programs:  programs,
				Form:      vals,
				ProgramID: vals["programId"],
				Errors:    vErr.FieldMap(),
				Error:     vErr.Error(),
			})
		}
		return err
	}

	setFlash(ctx, "Feedback submitted. Thank you!")
	return ctx.Redirect(http.StatusSeeOther, "/submit-feedback")
}
