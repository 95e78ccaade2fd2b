package service

import (
	"context"
	"sort"
	"strings"

	"ballotbox/internal/roster/models"
	"ballotbox/pkg/requestcontext"
)

// List returns one page of students matching the filter.
func (s *Service) List(ctx context.Context, filter models.ListFilter) (*models.StudentPage, error) {
	filter.Normalize()
	views, err := s.views(ctx)
	if err != nil {
		return nil, err
	}

	now := requestcontext.Now(ctx)
	matched := views[:0]
	for _, v := range views {
		if filter.Matches(v, now) {
			matched = append(matched, v)
		}
	}
	sortViews(matched, filter.Sort, filter.Descending)

	page := &models.StudentPage{
		Total:    len(matched),
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}
	page.TotalPages = (page.Total + filter.PageSize - 1) / filter.PageSize
	// Pages past the end are empty; checking first keeps the offset from overflowing.
	if filter.Page > page.TotalPages {
		return page, nil
	}
	start := (filter.Page - 1) * filter.PageSize
	end := min(start+filter.PageSize, len(matched))
	page.Students = append([]models.StudentView(nil), matched[start:end]...)
	return page, nil
}

func sortViews(views []models.StudentView, field models.SortField, desc bool) {
	less := func(a, b models.StudentView) bool {
		switch field {
		case models.SortByID:
			return a.ID < b.ID
		case models.SortByRegistered:
			if !a.RegisteredAt.Equal(b.RegisteredAt) {
				return a.RegisteredAt.Before(b.RegisteredAt)
			}
			return a.ID < b.ID
		default:
			an, bn := strings.ToLower(a.Name), strings.ToLower(b.Name)
			if an != bn {
				return an < bn
			}
			return a.ID < b.ID
		}
	}
	sort.SliceStable(views, func(i, j int) bool {
		if desc {
			return less(views[j], views[i])
		}
		return less(views[i], views[j])
	})
}
