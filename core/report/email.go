package report

import (
	"bytes"
	"net/mail"
	"time"

	"github.com/pkg/errors"

	"github.com/migeprof/fehub/core"
	"github.com/migeprof/fehub/services/backend"
)

// EmailPDF builds the report document and mails it to the given recipients.
func EmailPDF(svc core.EmailService, rpt backend.AdminReport, to ...mail.Address) error {
	if len(to) == 0 {
		return errors.New("no recipients")
	}

	now := time.Now()
	doc, err := BuildPDF(rpt, now)
	if err != nil {
		return err
	}

	msg := &core.EmailMessage{
		To:           to,
		Subject:      core.Conf.AppName + " - Administrative Report",
		TemplateName: "report-export",
		TemplateData: struct{ GeneratedAt string }{now.Format("2 Jan 2006 15:04")},
	}
	filename := "report-" + now.Format("2006-01-02") + ".pdf"
	if err := msg.Attach(bytes.NewReader(doc), filename, "application/pdf"); err != nil {
		return errors.Wrap(err, "attaching report pdf")
	}

	svc.SendMessages(msg)
	return nil
}
