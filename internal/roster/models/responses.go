package models

import "time"

type StudentResponse struct {
	StudentID    string    `json:"student_id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Department   string    `json:"department"`
	Year         string    `json:"year"`
	RegisteredAt time.Time `json:"registered_at"`
	Status       string    `json:"status"`
	VotingStatus string    `json:"voting_status"`
}

type StudentListResponse struct {
	Students   []StudentResponse `json:"students"`
	Total      int               `json:"total"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
	TotalPages int               `json:"total_pages"`
}

type RowErrorResponse struct {
	Row       int    `json:"row"`
	StudentID string `json:"student_id,omitempty"`
	Message   string `json:"message"`
}

type ImportResponse struct {
	Imported int                `json:"imported"`
	Failed   int                `json:"failed"`
	Errors   []RowErrorResponse `json:"errors"`
}

type BulkRemoveResponse struct {
	Removed  int      `json:"removed"`
	NotFound []string `json:"not_found"`
}

func NewStudentResponse(v StudentView) StudentResponse {
	return StudentResponse{
		StudentID:    string(v.ID),
		Name:         v.Name,
		Email:        v.Email,
		Department:   v.Department,
		Year:         v.Year,
		RegisteredAt: v.RegisteredAt,
		Status:       string(v.Status),
		VotingStatus: string(v.VotingStatus),
	}
}

func NewStudentListResponse(p *StudentPage) StudentListResponse {
	out := StudentListResponse{
		Students:   make([]StudentResponse, 0, len(p.Students)),
		Total:      p.Total,
		Page:       p.Page,
		PageSize:   p.PageSize,
		TotalPages: p.TotalPages,
	}
	for _, v := range p.Students {
		out.Students = append(out.Students, NewStudentResponse(v))
	}
	return out
}

func NewImportResponse(r *ImportReport) ImportResponse {
	out := ImportResponse{
		Imported: r.Imported,
		Failed:   r.Failed,
		Errors:   make([]RowErrorResponse, 0, len(r.Errors)),
	}
	for _, e := range r.Errors {
		out.Errors = append(out.Errors, RowErrorResponse{Row: e.Row, StudentID: e.StudentID, Message: e.Message})
	}
	return out
}

type TurnoutRowResponse struct {
	Group    string  `json:"group"`
	Eligible int     `json:"eligible"`
	Voted    int     `json:"voted"`
	Percent  float64 `json:"turnout_percent"`
}

type TurnoutResponse struct {
	GroupBy  string               `json:"group_by"`
	Rows     []TurnoutRowResponse `json:"rows"`
	Eligible int                  `json:"eligible"`
	Voted    int                  `json:"voted"`
	Percent  float64              `json:"turnout_percent"`
}

func NewTurnoutResponse(b *TurnoutBreakdown) TurnoutResponse {
	out := TurnoutResponse{
		GroupBy:  string(b.GroupBy),
		Rows:     make([]TurnoutRowResponse, 0, len(b.Rows)),
		Eligible: b.Eligible,
		Voted:    b.Voted,
		Percent:  b.Percent,
	}
	for _, r := range b.Rows {
		out.Rows = append(out.Rows, TurnoutRowResponse(r))
	}
	return out
}
