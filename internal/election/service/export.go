package service

import (
	"context"
	"encoding/csv"
	"io"
	"strconv"

	audit "ballotbox/pkg/platform/audit"
)

var resultsHeader = []string{"Rank", "Candidate", "Votes", "Percentage"}

// ExportCSV writes the ranked results and records the export in the audit
// trail.
func (s *Service) ExportCSV(ctx context.Context, w io.Writer) error {
	res, err := s.Results(ctx)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(resultsHeader); err != nil {
		return err
	}
	for _, row := range res.Candidates {
		record := []string{
			strconv.Itoa(row.Rank),
			row.Candidate.Name,
			strconv.Itoa(row.Votes),
			strconv.FormatFloat(row.Percent, 'f', 1, 64),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}

	s.emit(ctx, audit.ActionExportPerformed, "results csv")
	return nil
}
