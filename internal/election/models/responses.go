package models

type CandidateResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Party       string `json:"party,omitempty"`
	Description string `json:"description,omitempty"`
}

type BallotResponse struct {
	ElectionID string              `json:"election_id"`
	Title      string              `json:"title"`
	Status     Status              `json:"status"`
	Candidates []CandidateResponse `json:"candidates"`
}

type StatusResponse struct {
	ElectionID string `json:"election_id"`
	Status     Status `json:"status"`
}

type CandidateResultResponse struct {
	Rank      int               `json:"rank"`
	Candidate CandidateResponse `json:"candidate"`
	Votes     int               `json:"votes"`
	Percent   float64           `json:"percent"`
}

type ResultsResponse struct {
	ElectionID     string                    `json:"election_id"`
	Title          string                    `json:"title"`
	Status         Status                    `json:"status"`
	Candidates     []CandidateResultResponse `json:"candidates"`
	TotalVotes     int                       `json:"total_votes"`
	EligibleVoters int                       `json:"eligible_voters"`
	TurnoutPercent float64                   `json:"turnout_percent"`
	Margin         int                       `json:"margin"`
}

func toCandidateResponse(c Candidate) CandidateResponse {
	return CandidateResponse{
		ID:          c.ID.String(),
		Name:        c.Name,
		Party:       c.Party,
		Description: c.Description,
	}
}

func NewBallotResponse(e Election) BallotResponse {
	resp := BallotResponse{
		ElectionID: e.ID.String(),
		Title:      e.Title,
		Status:     e.Status,
		Candidates: make([]CandidateResponse, len(e.Candidates)),
	}
	for i, c := range e.Candidates {
		resp.Candidates[i] = toCandidateResponse(c)
	}
	return resp
}

func NewResultsResponse(r *Results) ResultsResponse {
	resp := ResultsResponse{
		ElectionID:     r.ElectionID.String(),
		Title:          r.Title,
		Status:         r.Status,
		Candidates:     make([]CandidateResultResponse, len(r.Candidates)),
		TotalVotes:     r.TotalVotes,
		EligibleVoters: r.EligibleVoters,
		TurnoutPercent: r.TurnoutPercent,
		Margin:         r.Margin,
	}
	for i, row := range r.Candidates {
		resp.Candidates[i] = CandidateResultResponse{
			Rank:      row.Rank,
			Candidate: toCandidateResponse(row.Candidate),
			Votes:     row.Votes,
			Percent:   row.Percent,
		}
	}
	return resp
}
