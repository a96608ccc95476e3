package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/pkg/errors"

	"github.com/migeprof/fehub/core"
	"github.com/migeprof/fehub/services/backend"
)

// BuildPDF renders the report as a portable document for download or email.
// Empty sub-reports are omitted; the overall metrics table is always present.
func BuildPDF(rpt backend.AdminReport, generatedAt time.Time) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(core.Conf.AppName+" Report", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, core.Conf.AppName+" - Administrative Report", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 6, "Generated "+generatedAt.Format("2 Jan 2006 15:04"), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	writeSection(pdf, "Overall Metrics")
	metricsTable(pdf, [][2]string{
		{"Total Programs", fmt.Sprintf("%d", rpt.TotalPrograms)},
		{"Total Contents", fmt.Sprintf("%d", rpt.TotalContents)},
		{"Total Families", fmt.Sprintf("%d", rpt.TotalFamilies)},
		{"Total Attendances", fmt.Sprintf("%d", rpt.TotalAttendances)},
		{"Average Feedback Rating", fmt.Sprintf("%.2f / 5", rpt.AverageFeedbackRating)},
	})

	if len(rpt.AttendanceByProgram) > 0 {
		writeSection(pdf, "Attendance by Program")
		rows := make([][]string, 0, len(rpt.AttendanceByProgram))
		for _, pa := range rpt.AttendanceByProgram {
			rows = append(rows, []string{pa.ProgramName, fmt.Sprintf("%d", pa.AttendanceCount)})
		}
		dataTable(pdf, []string{"Program", "Attendances"}, []float64{120, 50}, rows)
	}

	if len(rpt.FeedbackByRating) > 0 {
		writeSection(pdf, "Feedback by Rating")
		rows := make([][]string, 0, len(rpt.FeedbackByRating))
		for _, rc := range rpt.FeedbackByRating {
			rows = append(rows, []string{fmt.Sprintf("%d star(s)", rc.Rating), fmt.Sprintf("%d", rc.Count)})
		}
		dataTable(pdf, []string{"Rating", "Submissions"}, []float64{120, 50}, rows)
	}

	if len(rpt.FieldAgents) > 0 {
		writeSection(pdf, "Field Agents")
		rows := make([][]string, 0, len(rpt.FieldAgents))
		for _, fa := range rpt.FieldAgents {
			status := "Active"
			if !fa.IsActive {
				status = "Disabled"
			}
			rows = append(rows, []string{fa.Username, fa.Email, status, fmt.Sprintf("%d", fa.FamiliesRegistered)})
		}
		dataTable(pdf, []string{"Username", "Email", "Status", "Families"}, []float64{40, 70, 30, 30}, rows)
	}

	if len(rpt.ProgramFamilies) > 0 {
		writeSection(pdf, "Families by Program")
		rows := make([][]string, 0, len(rpt.ProgramFamilies))
		for _, pf := range rpt.ProgramFamilies {
			rows = append(rows, []string{pf.ProgramName, fmt.Sprintf("%d", pf.FamilyCount)})
		}
		dataTable(pdf, []string{"Program", "Families"}, []float64{120, 50}, rows)
	}

	if len(rpt.Contents) > 0 {
		writeSection(pdf, "Content Ratings")
		rows := make([][]string, 0, len(rpt.Contents))
		for _, cr := range rpt.Contents {
			rows = append(rows, []string{cr.Title, fmt.Sprintf("%.1f / 10", cr.AverageRating), fmt.Sprintf("%d", cr.RatingCount)})
		}
		dataTable(pdf, []string{"Title", "Average Rating", "Ratings"}, []float64{100, 40, 30}, rows)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, errors.Wrap(err, "rendering report pdf")
	}
	return buf.Bytes(), nil
}

func writeSection(pdf *gofpdf.Fpdf, title string) {
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, title, "", 1, "L", false, 0, "")
}

func metricsTable(pdf *gofpdf.Fpdf, rows [][2]string) {
	pdf.SetFont("Helvetica", "", 10)
	for _, row := range rows {
		pdf.CellFormat(90, 7, row[0], "1", 0, "L", false, 0, "")
		pdf.CellFormat(80, 7, row[1], "1", 1, "R", false, 0, "")
	}
}

func dataTable(pdf *gofpdf.Fpdf, headers []string, widths []float64, rows [][]string) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Helvetica", "", 10)
	for _, row := range rows {
		for i, cell := range row {
			pdf.CellFormat(widths[i], 7, cell, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}
}
