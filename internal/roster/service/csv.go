package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"ballotbox/internal/roster/models"
	id "ballotbox/pkg/domain"
	dErrors "ballotbox/pkg/domain-errors"
	audit "ballotbox/pkg/platform/audit"
	"ballotbox/pkg/platform/sentinel"
	"ballotbox/pkg/requestcontext"
)

var (
	importHeader = []string{"Name", "Student ID", "Email", "Department", "Year"}
	exportHeader = []string{"Name", "Student ID", "Email", "Department", "Year", "Registration Date", "Voting Status"}
)

// MaxImportRows bounds a single upload.
const MaxImportRows = 5000

// ImportCSV registers every valid row. Invalid or duplicate rows are reported
// and skipped; a storage failure aborts the import.
func (s *Service) ImportCSV(ctx context.Context, r io.Reader) (*models.ImportReport, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	report := &models.ImportReport{Errors: []models.RowError{}}
	now := requestcontext.Now(ctx)
	line := 0
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeBadRequest, fmt.Sprintf("malformed CSV at row %d", line))
		}
		if line == 1 && isImportHeader(record) {
			continue
		}
		if report.Imported+report.Failed >= MaxImportRows {
			return nil, dErrors.New(dErrors.CodeValidation, fmt.Sprintf("import is limited to %d rows", MaxImportRows))
		}

		student, rowErr := studentFromRecord(record)
		if rowErr == nil {
			student.RegisteredAt = now
			if err := s.store.Create(ctx, student); err != nil {
				if !errors.Is(err, sentinel.ErrConflict) {
					return nil, translate(err, "failed to import students")
				}
				rowErr = translate(err, "")
			}
		}
		if rowErr != nil {
			report.Failed++
			report.Errors = append(report.Errors, models.RowError{
				Row:       line,
				StudentID: string(student.ID),
				Message:   rowMessage(line, student, rowErr),
			})
			continue
		}
		report.Imported++
	}

	s.logger.InfoContext(ctx, "students imported",
		"imported", report.Imported,
		"failed", report.Failed,
		"request_id", requestcontext.RequestID(ctx),
	)
	s.emit(ctx, audit.ActionStudentsImported, "roster",
		fmt.Sprintf("%d imported, %d failed", report.Imported, report.Failed))
	return report, nil
}

// ExportCSV writes the selected students, or every student when ids is
// empty, with their voting status.
func (s *Service) ExportCSV(ctx context.Context, w io.Writer, ids []string) error {
	views, err := s.views(ctx)
	if err != nil {
		return err
	}
	if len(ids) > 0 {
		wanted := make(map[id.VoterID]struct{}, len(ids))
		for _, raw := range ids {
			wanted[id.VoterID(strings.ToUpper(strings.TrimSpace(raw)))] = struct{}{}
		}
		selected := views[:0]
		for _, v := range views {
			if _, ok := wanted[v.ID]; ok {
				selected = append(selected, v)
			}
		}
		views = selected
	}
	sortViews(views, models.SortByName, false)

	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return err
	}
	for _, v := range views {
		record := []string{
			v.Name,
			string(v.ID),
			v.Email,
			v.Department,
			v.Year,
			v.RegisteredAt.Format("2006-01-02"),
			string(v.VotingStatus),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}

	s.emit(ctx, audit.ActionExportPerformed, "roster", fmt.Sprintf("students csv, %d rows", len(views)))
	return nil
}

func isImportHeader(record []string) bool {
	return len(record) > 0 && strings.EqualFold(strings.TrimSpace(record[0]), importHeader[0])
}

func studentFromRecord(record []string) (models.Student, error) {
	if len(record) != len(importHeader) {
		return models.Student{}, dErrors.New(dErrors.CodeValidation,
			fmt.Sprintf("expected %d columns, got %d", len(importHeader), len(record)))
	}
	student := models.Student{
		Name:       record[0],
		ID:         id.VoterID(record[1]),
		Email:      record[2],
		Department: record[3],
		Year:       record[4],
	}
	student.Normalize()
	if err := student.Validate(); err != nil {
		return student, err
	}
	return student, nil
}

func rowMessage(line int, student models.Student, err error) string {
	msg := err.Error()
	if de, ok := dErrors.As(err); ok {
		msg = de.Message
	}
	if student.Name != "" {
		return fmt.Sprintf("Row %d: %s for %s", line, msg, student.Name)
	}
	return fmt.Sprintf("Row %d: %s", line, msg)
}
