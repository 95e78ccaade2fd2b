package service

import (
	"context"
	"math"
	"sort"

	"ballotbox/internal/roster/models"
)

// TurnoutBreakdown groups active students by department or year and reports
// how many of each group have a ledger entry. Ballot choices are not in the
// ledger, so this is participation only.
func (s *Service) TurnoutBreakdown(ctx context.Context, filter models.TurnoutFilter) (*models.TurnoutBreakdown, error) {
	filter.Normalize()
	views, err := s.views(ctx)
	if err != nil {
		return nil, err
	}

	byGroup := map[string]*models.TurnoutRow{}
	out := &models.TurnoutBreakdown{GroupBy: filter.GroupBy}
	for _, v := range views {
		if v.Status != models.StudentActive || !filter.Includes(v.Student) {
			continue
		}
		key := filter.Key(v.Student)
		row, ok := byGroup[key]
		if !ok {
			row = &models.TurnoutRow{Group: key}
			byGroup[key] = row
		}
		row.Eligible++
		out.Eligible++
		if v.VotingStatus == models.VotingVoted {
			row.Voted++
			out.Voted++
		}
	}

	out.Rows = make([]models.TurnoutRow, 0, len(byGroup))
	for _, row := range byGroup {
		row.Percent = percent(row.Voted, row.Eligible)
		out.Rows = append(out.Rows, *row)
	}
	sort.Slice(out.Rows, func(i, j int) bool { return out.Rows[i].Group < out.Rows[j].Group })
	out.Percent = percent(out.Voted, out.Eligible)
	return out, nil
}

// percent is part/whole*100 rounded to one decimal; zero when whole is zero.
func percent(part, whole int) float64 {
	if whole <= 0 {
		return 0
	}
	return math.Round(float64(part)*1000/float64(whole)) / 10
}
