// Package reports builds spreadsheet exports for administrators.
package reports

import (
	"bytes"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"fieldops-backend/internal/models"
)

const (
	CompletedSheet = "Completed Jobs"
	SummarySheet   = "Summary"

	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	contactNotOnSiteLabel = "Contact Not On Site"
)

var completedHeaders = []interface{}{
	"Job Number", "Customer", "Location", "Operator", "Completed At", "Signed By", "Quoted Amount",
}

// CompletedJobs is the export input: completed jobs in display order plus
// operator names keyed by operator id.
type CompletedJobs struct {
	Jobs      []models.Job
	Operators map[uuid.UUID]string
	// GeneratedAt is printed on the summary sheet.
	GeneratedAt time.Time
}

// ContactNotOnSiteCount counts jobs closed without a customer signature.
func ContactNotOnSiteCount(jobs []models.Job) int {
	n := 0
	for _, j := range jobs {
		if j.Status == models.JobStatusCompleted && j.ContactNotOnSite {
			n++
		}
	}
	return n
}

// BuildCompletedWorkbook renders the completed-jobs export as XLSX bytes.
func BuildCompletedWorkbook(in CompletedJobs) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", CompletedSheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}
	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	if err := f.SetSheetRow(CompletedSheet, "A1", &completedHeaders); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}
	if err := f.SetCellStyle(CompletedSheet, "A1", "G1", header); err != nil {
		return nil, fmt.Errorf("failed to style header: %w", err)
	}

	total := 0.0
	row := 2
	for _, job := range in.Jobs {
		if job.Status != models.JobStatusCompleted {
			continue
		}
		operator := ""
		if job.OperatorID.Valid {
			operator = in.Operators[job.OperatorID.UUID]
		}
		completedAt := ""
		if job.CompletedAt.Valid {
			completedAt = job.CompletedAt.Time.UTC().Format("2006-01-02 15:04")
		}
		signedBy := job.CompletionSignerName.String
		if job.ContactNotOnSite && !job.CompletionSignedAt.Valid {
			signedBy = contactNotOnSiteLabel
		}
		quoted := job.QuotedAmount.Round(2).InexactFloat64()
		total += quoted

		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return nil, err
		}
		values := []interface{}{job.JobNumber, job.CustomerName, job.Location, operator, completedAt, signedBy, quoted}
		if err := f.SetSheetRow(CompletedSheet, cell, &values); err != nil {
			return nil, fmt.Errorf("failed to write job %s: %w", job.JobNumber, err)
		}
		row++
	}
	if err := f.SetColWidth(CompletedSheet, "A", "G", 20); err != nil {
		return nil, fmt.Errorf("failed to size columns: %w", err)
	}

	if _, err := f.NewSheet(SummarySheet); err != nil {
		return nil, fmt.Errorf("failed to add summary sheet: %w", err)
	}
	summary := [][]interface{}{
		{"Generated At", in.GeneratedAt.UTC().Format(time.RFC3339)},
		{"Completed Jobs", row - 2},
		{contactNotOnSiteLabel, ContactNotOnSiteCount(in.Jobs)},
		{"Total Quoted", total},
	}
	for i, values := range summary {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(SummarySheet, cell, &values); err != nil {
			return nil, fmt.Errorf("failed to write summary: %w", err)
		}
	}
	if err := f.SetCellStyle(SummarySheet, "A1", fmt.Sprintf("A%d", len(summary)), header); err != nil {
		return nil, fmt.Errorf("failed to style summary: %w", err)
	}
	if err := f.SetColWidth(SummarySheet, "A", "B", 24); err != nil {
		return nil, fmt.Errorf("failed to size summary columns: %w", err)
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
