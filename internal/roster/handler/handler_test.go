package handler

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"ballotbox/internal/roster/handler/mocks"
	"ballotbox/internal/roster/models"
	id "ballotbox/pkg/domain"
	dErrors "ballotbox/pkg/domain-errors"
	"ballotbox/pkg/testutil"
)

//go:generate mockgen -source=handler.go -destination=mocks/roster-mocks.go -package=mocks Service

type RosterHandlerSuite struct {
	suite.Suite
	service *mocks.MockService
	router  chi.Router
	view    *models.StudentView
}

func TestRosterHandlerSuite(t *testing.T) {
	suite.Run(t, new(RosterHandlerSuite))
}

func (s *RosterHandlerSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.service = mocks.NewMockService(ctrl)
	h := New(s.service, slog.New(slog.NewTextHandler(io.Discard, nil)))
	s.router = chi.NewRouter()
	s.router.Route("/admin", h.Register)

	s.view = &models.StudentView{
		Student: models.Student{
			ID:           "STU001234",
			Name:         "Sarah Johnson",
			Email:        "sarah.johnson@university.edu",
			Department:   "Computer Science",
			Year:         "3rd Year",
			RegisteredAt: time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC),
			Status:       models.StudentActive,
		},
		VotingStatus: models.VotingPending,
	}
}

func (s *RosterHandlerSuite) TestList() {
	s.Run("parses the query", func() {
		s.service.EXPECT().List(gomock.Any(), models.ListFilter{
			Search:     "sarah",
			Status:     models.VotingPending,
			Registered: models.WindowWeek,
			Sort:       models.SortByRegistered,
			Descending: true,
			Page:       2,
			PageSize:   10,
		}).Return(&models.StudentPage{
			Students:   []models.StudentView{*s.view},
			Total:      11,
			Page:       2,
			PageSize:   10,
			TotalPages: 2,
		}, nil)

		req := httptest.NewRequest(http.MethodGet,
			"/admin/students?search=sarah&status=pending&registered=week&sort=registered&order=desc&page=2&page_size=10", nil)
		rr := testutil.DoRequest(s.router, req)

		testutil.AssertStatus(s.T(), rr, http.StatusOK)
		resp := testutil.UnmarshalResponse[models.StudentListResponse](s.T(), rr)
		s.Equal(11, resp.Total)
		s.Require().Len(resp.Students, 1)
		s.Equal("STU001234", resp.Students[0].StudentID)
		s.Equal("pending", resp.Students[0].VotingStatus)
	})

	s.Run("status all means no filter", func() {
		s.service.EXPECT().List(gomock.Any(), models.ListFilter{Sort: models.SortByName}).
			Return(&models.StudentPage{Page: 1, PageSize: 25}, nil)

		rr := testutil.DoRequest(s.router, httptest.NewRequest(http.MethodGet, "/admin/students?status=all", nil))
		testutil.AssertStatus(s.T(), rr, http.StatusOK)
		s.Empty(testutil.UnmarshalResponse[models.StudentListResponse](s.T(), rr).Students)
	})

	for _, query := range []string{"status=maybe", "registered=decade", "sort=gpa", "order=up", "page=0", "page_size=x"} {
		s.Run("rejects "+query, func() {
			rr := testutil.DoRequest(s.router, httptest.NewRequest(http.MethodGet, "/admin/students?"+query, nil))
			testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "invalid_input")
		})
	}
}

func (s *RosterHandlerSuite) TestAdd() {
	s.Run("created", func() {
		s.service.EXPECT().Add(gomock.Any(), models.Student{
			ID:         "STU001234",
			Name:       "Sarah Johnson",
			Email:      "sarah.johnson@university.edu",
			Department: "Computer Science",
			Year:       "3rd Year",
			Status:     models.StudentActive,
		}).Return(s.view, nil)

		rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/admin/students", map[string]string{
			"student_id": "STU001234",
			"name":       "Sarah Johnson",
			"email":      "sarah.johnson@university.edu",
			"department": "Computer Science",
			"year":       "3rd Year",
		}))
		testutil.AssertStatus(s.T(), rr, http.StatusCreated)
		s.Equal("Sarah Johnson", testutil.UnmarshalResponse[models.StudentResponse](s.T(), rr).Name)
	})

	s.Run("duplicate", func() {
		s.service.EXPECT().Add(gomock.Any(), gomock.Any()).
			Return(nil, dErrors.New(dErrors.CodeConflict, "student ID is already registered"))

		rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/admin/students",
			map[string]string{"student_id": "STU001234"}))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusConflict, "conflict")
	})

	s.Run("bad status never reaches the service", func() {
		rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/admin/students",
			map[string]string{"student_id": "STU001234", "status": "suspended"}))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "validation_error")
	})
}

func (s *RosterHandlerSuite) TestGetUpdateRemove() {
	s.service.EXPECT().Get(gomock.Any(), id.VoterID("STU001234")).Return(s.view, nil)
	rr := testutil.DoRequest(s.router, httptest.NewRequest(http.MethodGet, "/admin/students/stu001234", nil))
	testutil.AssertStatus(s.T(), rr, http.StatusOK)

	s.service.EXPECT().Update(gomock.Any(), id.VoterID("STU001234"), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ id.VoterID, changes *models.UpdateStudentRequest) (*models.StudentView, error) {
			s.Require().NotNil(changes.Year)
			s.Equal("4th Year", *changes.Year)
			s.Nil(changes.Name)
			return s.view, nil
		})
	rr = testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPatch, "/admin/students/STU001234",
		map[string]string{"year": "4th Year"}))
	testutil.AssertStatus(s.T(), rr, http.StatusOK)

	rr = testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPatch, "/admin/students/STU001234",
		map[string]string{}))
	testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "validation_error")

	s.service.EXPECT().Remove(gomock.Any(), id.VoterID("STU001234")).Return(nil)
	rr = testutil.DoRequest(s.router, httptest.NewRequest(http.MethodDelete, "/admin/students/STU001234", nil))
	testutil.AssertStatus(s.T(), rr, http.StatusNoContent)

	s.service.EXPECT().Remove(gomock.Any(), id.VoterID("STU001234")).
		Return(dErrors.New(dErrors.CodeNotFound, "student not found"))
	rr = testutil.DoRequest(s.router, httptest.NewRequest(http.MethodDelete, "/admin/students/STU001234", nil))
	testutil.AssertStatusAndError(s.T(), rr, http.StatusNotFound, "not_found")

	rr = testutil.DoRequest(s.router, httptest.NewRequest(http.MethodGet, "/admin/students/bad-id!", nil))
	testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "invalid_input")
}

func (s *RosterHandlerSuite) TestBulkRemove() {
	s.service.EXPECT().BulkRemove(gomock.Any(), []string{"STU000001", "STU000009"}).
		Return(1, []string{"STU000009"}, nil)

	rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/admin/students/bulk-delete",
		map[string][]string{"student_ids": {"STU000001", "STU000009"}}))
	testutil.AssertStatus(s.T(), rr, http.StatusOK)
	resp := testutil.UnmarshalResponse[models.BulkRemoveResponse](s.T(), rr)
	s.Equal(1, resp.Removed)
	s.Equal([]string{"STU000009"}, resp.NotFound)

	rr = testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/admin/students/bulk-delete",
		map[string][]string{"student_ids": {}}))
	testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "validation_error")
}

const csvUpload = "Name,Student ID,Email,Department,Year\nSarah Johnson,STU001234,sarah@university.edu,Law,Graduate\n"

func (s *RosterHandlerSuite) expectImport() {
	s.service.EXPECT().ImportCSV(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, r io.Reader) (*models.ImportReport, error) {
			body, err := io.ReadAll(r)
			s.Require().NoError(err)
			s.Equal(csvUpload, string(body))
			return &models.ImportReport{Imported: 1, Errors: []models.RowError{}}, nil
		})
}

func (s *RosterHandlerSuite) TestImport() {
	s.Run("raw csv body", func() {
		s.expectImport()
		req := testutil.NewRequestWithBody(s.T(), http.MethodPost, "/admin/students/import", "text/csv", csvUpload)
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatus(s.T(), rr, http.StatusOK)
		s.Equal(1, testutil.UnmarshalResponse[models.ImportResponse](s.T(), rr).Imported)
	})

	s.Run("multipart file", func() {
		s.expectImport()
		var body bytes.Buffer
		mw := multipart.NewWriter(&body)
		part, err := mw.CreateFormFile("file", "students.csv")
		s.Require().NoError(err)
		_, err = part.Write([]byte(csvUpload))
		s.Require().NoError(err)
		s.Require().NoError(mw.Close())

		req := httptest.NewRequest(http.MethodPost, "/admin/students/import", &body)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatus(s.T(), rr, http.StatusOK)
	})

	s.Run("unsupported content type", func() {
		req := testutil.NewRequestWithBody(s.T(), http.MethodPost, "/admin/students/import", "application/json", "{}")
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "bad_request")
	})
}

func (s *RosterHandlerSuite) TestExport() {
	s.service.EXPECT().ExportCSV(gomock.Any(), gomock.Any(), []string{"STU000001", "STU000002"}).
		DoAndReturn(func(_ context.Context, w io.Writer, _ []string) error {
			_, err := io.WriteString(w, "Name,Student ID\n")
			return err
		})

	rr := testutil.DoRequest(s.router, httptest.NewRequest(http.MethodGet, "/admin/students/export?ids=STU000001,STU000002", nil))
	testutil.AssertStatus(s.T(), rr, http.StatusOK)
	s.Equal("text/csv; charset=utf-8", rr.Header().Get("Content-Type"))
	s.Contains(rr.Header().Get("Content-Disposition"), "students_")
	s.Equal("Name,Student ID\n", rr.Body.String())

	s.service.EXPECT().ExportCSV(gomock.Any(), gomock.Any(), gomock.Nil()).
		Return(dErrors.New(dErrors.CodeStorageUnavailable, "ballot ledger unavailable"))
	rr = testutil.DoRequest(s.router, httptest.NewRequest(http.MethodGet, "/admin/students/export", nil))
	testutil.AssertStatusAndError(s.T(), rr, http.StatusServiceUnavailable, "storage_unavailable")
}

func (s *RosterHandlerSuite) TestTurnout() {
	s.Run("groups by year with filters", func() {
		s.service.EXPECT().TurnoutBreakdown(gomock.Any(), models.TurnoutFilter{
			GroupBy:    models.GroupByYear,
			Department: "Engineering",
		}).Return(&models.TurnoutBreakdown{
			GroupBy:  models.GroupByYear,
			Rows:     []models.TurnoutRow{{Group: "1st Year", Eligible: 4, Voted: 3, Percent: 75}},
			Eligible: 4,
			Voted:    3,
			Percent:  75,
		}, nil)

		req := httptest.NewRequest(http.MethodGet, "/admin/students/turnout?by=year&department=Engineering", nil)
		rr := testutil.DoRequest(s.router, req)

		testutil.AssertStatus(s.T(), rr, http.StatusOK)
		resp := testutil.UnmarshalResponse[models.TurnoutResponse](s.T(), rr)
		s.Equal("year", resp.GroupBy)
		s.Require().Len(resp.Rows, 1)
		s.Equal("1st Year", resp.Rows[0].Group)
		s.Equal(75.0, resp.Percent)
	})

	s.Run("rejects unknown grouping", func() {
		req := httptest.NewRequest(http.MethodGet, "/admin/students/turnout?by=candidate", nil)
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "invalid_input")
	})

	s.Run("ledger outage", func() {
		s.service.EXPECT().TurnoutBreakdown(gomock.Any(), gomock.Any()).
			Return(nil, dErrors.New(dErrors.CodeStorageUnavailable, "ballot ledger unavailable"))
		req := httptest.NewRequest(http.MethodGet, "/admin/students/turnout", nil)
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatusAndError(s.T(), rr, http.StatusServiceUnavailable, "storage_unavailable")
	})
}
