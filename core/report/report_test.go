package report

import (
	"context"
	"net/mail"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/migeprof/fehub/core"
	"github.com/migeprof/fehub/services/backend"
)

type fakeSource struct {
	stats    backend.AdminReport
	statsErr error
	agents   []backend.FieldAgentSummary
	families []backend.ProgramFamilyCount
	contents []backend.ContentRatingReport
	subErr   error
}

func (f fakeSource) Stats(context.Context) (backend.AdminReport, error) { return f.stats, f.statsErr }
func (f fakeSource) FieldAgents(context.Context) ([]backend.FieldAgentSummary, error) {
	return f.agents, f.subErr
}
func (f fakeSource) ProgramsFamilies(context.Context) ([]backend.ProgramFamilyCount, error) {
	return f.families, f.subErr
}
func (f fakeSource) Contents(context.Context) ([]backend.ContentRatingReport, error) {
	return f.contents, f.subErr
}

func TestAssemble(t *testing.T) {
	src := fakeSource{
		stats:  backend.AdminReport{TotalPrograms: 2},
		agents: []backend.FieldAgentSummary{{Username: "aline"}},
	}

	rpt, err := Assemble(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, 2, rpt.TotalPrograms)
	require.Len(t, rpt.FieldAgents, 1)
	assert.Equal(t, "aline", rpt.FieldAgents[0].Username)
}

func TestAssemble_statsFailureIsFatal(t *testing.T) {
	src := fakeSource{statsErr: errors.New("backend down")}
	_, err := Assemble(context.Background(), src)
	assert.Error(t, err)
}

func TestAssemble_subReportFailureIsNot(t *testing.T) {
	src := fakeSource{
		stats:  backend.AdminReport{TotalFamilies: 5},
		subErr: errors.New("not implemented upstream"),
	}

	rpt, err := Assemble(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, 5, rpt.TotalFamilies)
	assert.Empty(t, rpt.FieldAgents)
	assert.Empty(t, rpt.ProgramFamilies)
	assert.Empty(t, rpt.Contents)
}

func TestBuildPDF(t *testing.T) {
	rpt := backend.AdminReport{
		TotalPrograms:         3,
		TotalFamilies:         20,
		AverageFeedbackRating: 4.5,
		AttendanceByProgram: []backend.ProgramAttendance{
			{ProgramName: "Nutrition", AttendanceCount: 14},
		},
	}

	doc, err := BuildPDF(rpt, time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, len(doc) > 0)
	assert.Equal(t, "%PDF", string(doc[:4]))
}

func TestBuildPDF_emptySubReports(t *testing.T) {
	// a report with only the overall metrics still renders
	doc, err := BuildPDF(backend.AdminReport{}, time.Now())
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(doc[:4]))
}

func mailAddr(addr string) mail.Address { return mail.Address{Address: addr} }

type captureMail struct {
	sent []*core.EmailMessage
}

func (m *captureMail) SendMessages(messages ...*core.EmailMessage) {
	m.sent = append(m.sent, messages...)
}

func TestEmailPDF(t *testing.T) {
	svc := &captureMail{}
	err := EmailPDF(svc, backend.AdminReport{TotalPrograms: 1}, mailAddr("ops@hub.org"))
	require.NoError(t, err)

	require.Len(t, svc.sent, 1)
	msg := svc.sent[0]
	assert.Contains(t, msg.Subject, "Report")
	require.Len(t, msg.Attachments, 1)
	assert.Equal(t, "application/pdf", msg.Attachments[0].ContentType)
	assert.Contains(t, msg.Attachments[0].Filename, ".pdf")
}

func TestEmailPDF_noRecipients(t *testing.T) {
	svc := &captureMail{}
	assert.Error(t, EmailPDF(svc, backend.AdminReport{}))
	assert.Empty(t, svc.sent)
}
