package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"ballotbox/internal/election/handler/mocks"
	"ballotbox/internal/election/models"
	dErrors "ballotbox/pkg/domain-errors"
	"ballotbox/pkg/testutil"
)

//go:generate mockgen -source=handler.go -destination=mocks/election-mocks.go -package=mocks Service

type ElectionHandlerSuite struct {
	suite.Suite
	service *mocks.MockService
	router  chi.Router
}

func TestElectionHandlerSuite(t *testing.T) {
	suite.Run(t, new(ElectionHandlerSuite))
}

func (s *ElectionHandlerSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.service = mocks.NewMockService(ctrl)
	h := New(s.service, slog.New(slog.NewTextHandler(io.Discard, nil)))
	s.router = chi.NewRouter()
	h.RegisterPublic(s.router)
	s.router.Route("/admin", h.RegisterAdmin)
	s.service.EXPECT().ElectionID().Return(models.Default().ID).AnyTimes()
}

func (s *ElectionHandlerSuite) TestBallot() {
	s.service.EXPECT().Election(gomock.Any()).Return(models.Default())

	rr := testutil.DoRequest(s.router, httptest.NewRequest(http.MethodGet, "/election", nil))

	testutil.AssertStatus(s.T(), rr, http.StatusOK)
	resp := testutil.UnmarshalResponse[models.BallotResponse](s.T(), rr)
	s.Equal("student-council-2026", resp.ElectionID)
	s.Equal(models.StatusOpen, resp.Status)
	s.Require().Len(resp.Candidates, 4)
	s.Equal("Alex Chen", resp.Candidates[0].Name)
}

func (s *ElectionHandlerSuite) TestOpenAndClose() {
	s.service.EXPECT().Close(gomock.Any()).Return(models.StatusClosed, nil)
	rr := testutil.DoRequest(s.router, httptest.NewRequest(http.MethodPost, "/admin/election/close", nil))
	testutil.AssertStatus(s.T(), rr, http.StatusOK)
	s.Equal(models.StatusClosed, testutil.UnmarshalResponse[models.StatusResponse](s.T(), rr).Status)

	s.service.EXPECT().Open(gomock.Any()).
		Return(models.StatusClosed, dErrors.New(dErrors.CodeStorageUnavailable, "failed to change election status"))
	rr = testutil.DoRequest(s.router, httptest.NewRequest(http.MethodPost, "/admin/election/open", nil))
	testutil.AssertStatusAndError(s.T(), rr, http.StatusServiceUnavailable, "storage_unavailable")
}

func (s *ElectionHandlerSuite) TestResults() {
	s.service.EXPECT().Results(gomock.Any()).Return(&models.Results{
		ElectionID: "student-council-2026",
		Status:     models.StatusOpen,
		Candidates: []models.CandidateResult{
			{Rank: 1, Candidate: models.Candidate{ID: "candidate-2", Name: "Maria Rodriguez"}, Votes: 3, Percent: 60},
			{Rank: 2, Candidate: models.Candidate{ID: "candidate-1", Name: "Alex Chen"}, Votes: 2, Percent: 40},
		},
		TotalVotes:     5,
		EligibleVoters: 8,
		TurnoutPercent: 62.5,
		Margin:         1,
	}, nil)

	rr := testutil.DoRequest(s.router, httptest.NewRequest(http.MethodGet, "/admin/results", nil))

	testutil.AssertStatus(s.T(), rr, http.StatusOK)
	resp := testutil.UnmarshalResponse[models.ResultsResponse](s.T(), rr)
	s.Equal(5, resp.TotalVotes)
	s.Equal(62.5, resp.TurnoutPercent)
	s.Equal(1, resp.Margin)
	s.Equal("candidate-2", resp.Candidates[0].Candidate.ID)
}

func (s *ElectionHandlerSuite) TestExport() {
	s.service.EXPECT().ExportCSV(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, w io.Writer) error {
			_, err := io.WriteString(w, "Rank,Candidate,Votes,Percentage\n")
			return err
		})

	rr := testutil.DoRequest(s.router, httptest.NewRequest(http.MethodGet, "/admin/results/export", nil))

	testutil.AssertStatus(s.T(), rr, http.StatusOK)
	s.Equal("text/csv; charset=utf-8", rr.Header().Get("Content-Type"))
	s.Contains(rr.Header().Get("Content-Disposition"), "student-council-2026_results.csv")
	s.Equal("Rank,Candidate,Votes,Percentage\n", rr.Body.String())
}

func (s *ElectionHandlerSuite) TestExportFailureIsJSON() {
	s.service.EXPECT().ExportCSV(gomock.Any(), gomock.Any()).
		Return(dErrors.New(dErrors.CodeStorageUnavailable, "failed to read tally"))

	rr := testutil.DoRequest(s.router, httptest.NewRequest(http.MethodGet, "/admin/results/export", nil))

	testutil.AssertStatusAndError(s.T(), rr, http.StatusServiceUnavailable, "storage_unavailable")
}
