package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"custodia/internal/authz"
	"custodia/internal/cases"
	"custodia/internal/evidence"
	"custodia/internal/identity"
	id "custodia/pkg/domain"
	"custodia/pkg/testutil"
)

type HandlerSuite struct {
	suite.Suite
	store    *cases.InMemoryStore
	evidence *evidence.InMemoryStore
	people   *identity.InMemoryStore
	router   chi.Router
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	s.store = cases.NewInMemoryStore()
	s.evidence = evidence.NewInMemoryStore()
	s.people = identity.NewInMemoryStore()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	svc := cases.NewService(s.store, s.evidence, logger)
	h := New(svc, identity.NewDirectory(s.people), authz.NewGate(), logger)

	s.router = chi.NewRouter()
	h.Register(s.router)
	h.RegisterPublic(s.router)
}

func (s *HandlerSuite) seedCase() *cases.Case {
	caseID := id.CaseID(uuid.New())
	c := &cases.Case{
		ID:         caseID,
		CaseNumber: cases.CaseNumberFor(caseID),
		Title:      "Warehouse burglary",
		Status:     cases.StatusOpen,
		CreatedAt:  time.Now(),
	}
	s.Require().NoError(s.store.Create(context.Background(), c))
	return c
}

func (s *HandlerSuite) TestCreate() {
	req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/cases", map[string]string{
		"case_title":  "Warehouse burglary",
		"description": "forced entry through loading dock",
	})
	rr := testutil.DoRequest(s.router, testutil.AsSomeUser(req, id.RoleInvestigator))

	s.Equal(http.StatusCreated, rr.Code)

	var body map[string]any
	testutil.DecodeJSON(s.T(), rr, &body)
	s.Equal("Open", body["status"])
	s.True(strings.HasPrefix(body["case_number"].(string), "CS-"))
}

func (s *HandlerSuite) TestCreateRequiresTitle() {
	req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/cases", map[string]string{
		"description": "no title given",
	})
	rr := testutil.DoRequest(s.router, testutil.AsSomeUser(req, id.RoleAdmin))

	s.Equal(http.StatusBadRequest, rr.Code)
}

func (s *HandlerSuite) TestCreateForbiddenForLabStaff() {
	req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/cases", map[string]string{
		"case_title": "Warehouse burglary",
	})
	rr := testutil.DoRequest(s.router, testutil.AsSomeUser(req, id.RoleLabStaff))

	s.Equal(http.StatusForbidden, rr.Code)
}

func (s *HandlerSuite) TestGetIncludesEvidence() {
	c := s.seedCase()
	item := &evidence.Item{
		ID:            id.EvidenceID(uuid.New()),
		CaseID:        c.ID,
		EvidenceType:  "Hard Drive",
		CurrentStatus: evidence.StatusCollected,
		CollectedOn:   time.Now(),
	}
	s.Require().NoError(s.evidence.Create(context.Background(), item))

	req := testutil.NewRequest(s.T(), http.MethodGet, "/cases/"+c.ID.String())
	rr := testutil.DoRequest(s.router, testutil.AsSomeUser(req, id.RoleInvestigator))

	s.Equal(http.StatusOK, rr.Code)

	var body struct {
		Case struct {
			CaseNumber string `json:"case_number"`
		} `json:"case"`
		Evidence []map[string]any `json:"evidence"`
	}
	testutil.DecodeJSON(s.T(), rr, &body)
	s.Equal(c.CaseNumber, body.Case.CaseNumber)
	s.Require().Len(body.Evidence, 1)
	s.Equal("Hard Drive", body.Evidence[0]["evidence_type"])
}

func (s *HandlerSuite) TestGetNotFound() {
	req := testutil.NewRequest(s.T(), http.MethodGet, "/cases/"+uuid.NewString())
	rr := testutil.DoRequest(s.router, testutil.AsSomeUser(req, id.RoleAdmin))

	s.Equal(http.StatusNotFound, rr.Code)
}

func (s *HandlerSuite) TestSetStatus() {
	c := s.seedCase()

	req := testutil.NewJSONRequest(s.T(), http.MethodPut, "/cases/"+c.ID.String(),
		map[string]string{"status": cases.StatusClosed})
	rr := testutil.DoRequest(s.router, testutil.AsSomeUser(req, id.RoleAdmin))

	s.Equal(http.StatusOK, rr.Code)

	updated, err := s.store.FindByID(context.Background(), c.ID)
	s.Require().NoError(err)
	s.Equal(cases.StatusClosed, updated.Status)
}

func (s *HandlerSuite) TestPublicCreateResolvesAssignee() {
	assignee := &identity.Person{
		ID:    id.UserID(uuid.New()),
		Name:  "Dana Reyes",
		Email: "dana@pd.example",
		Role:  id.RoleInvestigator,
	}
	s.Require().NoError(s.people.Create(context.Background(), assignee))

	req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/cases/public", map[string]string{
		"case_title":        "Stolen vehicle",
		"assigned_to_email": "dana@pd.example",
	})
	rr := testutil.DoRequest(s.router, testutil.AsRole(req, id.RolePublic))

	s.Equal(http.StatusCreated, rr.Code)

	var body map[string]any
	testutil.DecodeJSON(s.T(), rr, &body)
	s.Equal(assignee.ID.String(), body["assigned_to"])
}

func (s *HandlerSuite) TestPublicCreateUnresolvableAssigneeLeftUnassigned() {
	req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/cases/public", map[string]string{
		"case_title":       "Stolen vehicle",
		"assigned_to_name": "Nobody Known",
	})
	rr := testutil.DoRequest(s.router, testutil.AsRole(req, id.RolePublic))

	s.Equal(http.StatusCreated, rr.Code)

	var body map[string]any
	testutil.DecodeJSON(s.T(), rr, &body)
	s.Empty(body["assigned_to"])
}

func (s *HandlerSuite) TestPublicList() {
	s.seedCase()

	req := testutil.NewRequest(s.T(), http.MethodGet, "/cases/public")
	rr := testutil.DoRequest(s.router, testutil.AsRole(req, id.RolePublic))

	s.Equal(http.StatusOK, rr.Code)

	var body []map[string]any
	testutil.DecodeJSON(s.T(), rr, &body)
	s.Len(body, 1)
}
