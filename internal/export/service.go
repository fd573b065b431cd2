package export

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/candidatehq/docparse/internal/repository"
)

// Service is a tiny façade over repositories that produces XLSX bytes for exports.
type Service struct {
	jobsRepo repository.ParseJobRepository
	logger   *slog.Logger
}

func NewService(jobsRepo repository.ParseJobRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{jobsRepo: jobsRepo, logger: logger}
}

// ExportJobsXLSX returns an XLSX workbook (as bytes) covering finished parse
// jobs in the given date window.
// If only from is provided -> from..today (inclusive).
// If only to is provided   -> beginning..to (inclusive).
// If neither is provided   -> all finished jobs.
func (s *Service) ExportJobsXLSX(ctx context.Context, from, to *time.Time) ([]byte, error) {
	start := time.Now()

	// Normalize dates (date-only, UTC)
	var fromDate, toDate *time.Time
	if from != nil {
		f := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
		fromDate = &f
	}
	if to != nil {
		t := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
		toDate = &t
	}
	if fromDate != nil && toDate == nil {
		today := time.Now().UTC()
		t := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
		toDate = &t
	}

	rows, err := s.jobsRepo.ListFinished(ctx, fromDate, toDate)
	if err != nil {
		return nil, fmt.Errorf("query jobs: %w", err)
	}

	f := excelize.NewFile()
	const sheet = "Documents"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		_, err := f.NewSheet(sheet)
		if err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)

	headers := []string{
		"Filename",
		"Document Type",
		"Candidate",
		"Email",
		"Status",
		"Confidence",
		"Errors",
		"Warnings",
		"Finished At",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	rowIdx := 2
	for _, jd := range rows {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, rowIdx)
			_ = f.SetCellValue(sheet, cell, v)
		}

		candidate, email := candidateIdentity(jd.Job.ExtractedJSON)
		errCount, warnCount := issueCounts(jd.Job.ValidationJSON)

		write(1, jd.Document.Filename)
		if jd.Job.DocumentType != nil {
			write(2, *jd.Job.DocumentType)
		}
		write(3, truncate(candidate, 60))
		write(4, email)
		if jd.Job.Status != nil {
			write(5, *jd.Job.Status)
		}
		if jd.Job.Confidence != nil {
			write(6, fmt.Sprintf("%.2f", *jd.Job.Confidence))
		}
		write(7, errCount)
		write(8, warnCount)
		if jd.Job.FinishedAt != nil {
			write(9, jd.Job.FinishedAt.UTC().Format("2006-01-02 15:04"))
		}

		rowIdx++
	}

	// Widen a few columns
	_ = f.SetColWidth(sheet, "A", "A", 32) // filename
	_ = f.SetColWidth(sheet, "B", "B", 18) // type
	_ = f.SetColWidth(sheet, "C", "C", 28) // candidate
	_ = f.SetColWidth(sheet, "D", "D", 30) // email
	_ = f.SetColWidth(sheet, "E", "F", 14) // status, confidence
	_ = f.SetColWidth(sheet, "I", "I", 18) // timestamp

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"rows", len(rows),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

// candidateIdentity pulls a display name and email out of extracted data.
// The shape differs per document type, so all lookups are best effort.
func candidateIdentity(raw json.RawMessage) (name, email string) {
	if len(raw) == 0 {
		return "", ""
	}
	var data map[string]any
	if err := json.Unmarshal(raw, &data); err != nil {
		return "", ""
	}
	for _, key := range []string{"full_name", "candidate_name"} {
		if v, ok := data[key].(string); ok && v != "" {
			name = v
			break
		}
	}
	if v, ok := data["email"].(string); ok {
		email = v
	}
	return name, email
}

func issueCounts(raw json.RawMessage) (errs, warns int) {
	if len(raw) == 0 {
		return 0, 0
	}
	var v struct {
		Errors   []json.RawMessage `json:"errors"`
		Warnings []json.RawMessage `json:"warnings"`
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0, 0
	}
	return len(v.Errors), len(v.Warnings)
}

func truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	if n <= 1 {
		return s[:n]
	}
	return s[:n-1] + "…"
}
