package echoweb

import (
	"net/http"
	"net/mail"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/migeprof/fehub/core/report"
	"github.com/migeprof/fehub/core/resource"
	"github.com/migeprof/fehub/core/session"
)

func (s *server) registerAdmin() {
	g := s.app.Group("", requireRole(session.RoleAdmin))

	g.GET("/dashboard/admin", s.adminDashboard)

	s.registerResource(g, &resourcePage{
		path:    "/manage-field-agents",
		title:   "Manage Field Agents",
		manager: resource.NewManager(resource.FieldAgents(), s.opts.Client, s.opts.Logger),
	})
	s.registerResource(g, &resourcePage{
		path:    "/manage-programs",
		title:   "Manage Programs",
		manager: resource.NewManager(resource.Programs(), s.opts.Client, s.opts.Logger),
	})
	s.registerResource(g, &resourcePage{
		path:    "/manage-families",
		title:   "Manage Families",
		manager: resource.NewManager(resource.Families(), s.opts.Client, s.opts.Logger),
		options: locationOptions,
	})
	s.registerResource(g, &resourcePage{
		path:    "/update-content",
		title:   "Update Content",
		manager: resource.NewManager(resource.Contents(), s.opts.Client, s.opts.Logger),
		options: s.programOptions,
	})
	s.registerResource(g, &resourcePage{
		path:     "/manage-feedback",
		title:    "Manage Feedback",
		manager:  resource.NewManager(resource.SessionFeedbacks(), s.opts.Client, s.opts.Logger),
		readOnly: true,
	})

	g.GET("/manage-attendance", s.manageAttendance)

	g.GET("/view-reports", s.viewReports)
	g.GET("/view-reports/pdf", s.downloadReportPDF)
	g.POST("/view-reports/email", s.emailReport)
}

func (s *server) adminDashboard(ctx echo.Context) error {
	stats, err := s.opts.Client.Dashboard.Stats(reqCtx(ctx))
	if err != nil {
		return err
	}
	return renderPage(ctx, http.StatusOK, "dashboard-admin", "Dashboard", stats)
}

func (s *server) manageAttendance(ctx echo.Context) error {
	records, err := s.opts.Client.Attendance.List(reqCtx(ctx))
	if err != nil {
		return err
	}
	return renderPage(ctx, http.StatusOK, "manage-attendance", "Manage Attendance", records)
}

func (s *server) viewReports(ctx echo.Context) error {
	rpt, err := report.Assemble(reqCtx(ctx), s.opts.Client.Reports)
	if err != nil {
		return err
	}
	return renderPage(ctx, http.StatusOK, "view-reports", "View Reports", rpt)
}

func (s *server) downloadReportPDF(ctx echo.Context) error {
	rpt, err := report.Assemble(reqCtx(ctx), s.opts.Client.Reports)
	if err != nil {
		return err
	}
	doc, err := report.BuildPDF(rpt, time.Now())
	if err != nil {
		return err
	}
	filename := "report-" + time.Now().Format("2006-01-02") + ".pdf"
	ctx.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return ctx.Blob(http.StatusOK, "application/pdf", doc)
}

func (s *server) emailReport(ctx echo.Context) error {
	addr, err := mail.ParseAddress(ctx.FormValue("recipient"))
	if err != nil {
		setFlash(ctx, "Please enter a valid email address.")
		return ctx.Redirect(http.StatusSeeOther, "/view-reports")
	}

	rpt, err := report.Assemble(reqCtx(ctx), s.opts.Client.Reports)
	if err != nil {
		return err
	}
	if err := report.EmailPDF(s.opts.Mail, rpt, *addr); err != nil {
		return errors.Wrap(err, "emailing report")
	}

	setFlash(ctx, "Report sent to "+addr.Address)
	return ctx.Redirect(http.StatusSeeOther, "/view-reports")
}

// programOptions fills the ProgramID select from the live program list.
func (s *server) programOptions(ctx echo.Context, _ resource.Values) (map[string][]string, error) {
	programs, err := s.opts.Client.Programs.List(reqCtx(ctx))
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(programs))
	for _, p := range programs {
		ids = append(ids, p.ProgramID)
	}
	return map[string][]string{"ProgramID": ids}, nil
}
