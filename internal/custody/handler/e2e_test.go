package handler_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/suite"

	"custody/internal/access"
	accessstore "custody/internal/access/store"
	"custody/internal/actionlog"
	"custody/internal/custody/handler"
	custodymetrics "custody/internal/custody/metrics"
	"custody/internal/custody/service"
	"custody/internal/custody/store"
	"custody/internal/identity"
	"custody/internal/platform/logger"
	"custody/internal/platform/metrics"
	"custody/internal/reference"
	"custody/pkg/testutil"
)

type movementJSON struct {
	ID        int64     `json:"id"`
	Timestamp string    `json:"timestamp"`
	Facility  string    `json:"facilityName"`
	Docs      []docJSON `json:"docs"`
	Cells     []struct {
		ID   int64     `json:"id"`
		Room string    `json:"room"`
		Docs []docJSON `json:"docs"`
	} `json:"cells"`
	Up []struct {
		ID            int64  `json:"id"`
		Date          string `json:"date"`
		AuthorityKind string `json:"authorityKind"`
	} `json:"up"`
}

type docJSON struct {
	ID         int64  `json:"id"`
	ParentID   int64  `json:"parentId"`
	ParentKind string `json:"parentKind"`
}

// CustodyFlowSuite drives the HTTP surface against the real service over
// in-memory stores.
type CustodyFlowSuite struct {
	suite.Suite
	router  http.Handler
	actions *actionlog.InMemoryStore
	tokens  *identity.JWTService
}

func TestCustodyFlowSuite(t *testing.T) {
	suite.Run(t, new(CustodyFlowSuite))
}

func (s *CustodyFlowSuite) SetupTest() {
	log := logger.Discard()
	refs := reference.NewInMemoryStore(reference.Row{Kind: reference.KindFacility, ID: 5, Name: "Central Remand"})
	perms := accessstore.NewInMemory()
	perms.Grant("clerk", access.ModuleMovements, access.LevelWrite)
	perms.Grant("auditor", access.ModuleMovements, access.LevelRead)

	st := store.NewInMemory(store.WithNames(refs.Name))
	s.actions = actionlog.NewInMemoryStore()
	reg := prometheus.NewRegistry()
	svc := service.New(st, service.NewLockedTx(st, 0), access.NewGate(perms, access.WithLogger(log)),
		service.WithLogger(log),
		service.WithMetrics(custodymetrics.New(reg)),
		service.WithReference(reference.NewService(refs, reference.NewMemoryCache())),
		service.WithActionPublisher(actionlog.NewPublisher(s.actions, actionlog.WithLogger(log))),
	)

	s.tokens = identity.NewJWTService("test-signing-key", "custody", "")
	r := chi.NewRouter()
	handler.New(svc, identity.NewBearerResolver(s.tokens), log, metrics.New(reg), time.Minute).Register(r)
	s.router = r
}

func (s *CustodyFlowSuite) do(actor string, req *http.Request) *httptest.ResponseRecorder {
	token, err := s.tokens.GenerateAccessToken(actor, actor, time.Minute)
	s.Require().NoError(err)
	req.Header.Set("Authorization", "Bearer "+token)
	return testutil.DoRequest(s.router, req)
}

func (s *CustodyFlowSuite) list() []movementJSON {
	rr := s.do("auditor", testutil.NewRequest(s.T(), http.MethodGet, "/subject/2001xxxx/movements"))
	testutil.AssertStatusOK(s.T(), rr)
	return testutil.UnmarshalData[[]movementJSON](s.T(), rr)
}

func (s *CustodyFlowSuite) TestMovementLifecycle() {
	var movementID, cellID, docID int64

	s.Run("create movement", func() {
		rr := s.do("clerk", testutil.NewJSONRequest(s.T(), http.MethodPost, "/subject/2001xxxx/movements", map[string]any{
			"timestamp":  "01.03.2024 10:00:00",
			"facilityId": 5,
		}))
		testutil.AssertStatus(s.T(), rr, http.StatusCreated)
		movementID = testutil.UnmarshalData[movementJSON](s.T(), rr).ID

		nodes := s.list()
		s.Require().Len(nodes, 1)
		s.Equal(movementID, nodes[0].ID)
		s.Equal("01.03.2024 10:00:00", nodes[0].Timestamp)
		s.Equal("Central Remand", nodes[0].Facility)
		s.NotNil(nodes[0].Cells)
		s.NotNil(nodes[0].Docs)
		s.NotNil(nodes[0].Up)
	})

	s.Run("add cell assignment", func() {
		rr := s.do("clerk", testutil.NewJSONRequest(s.T(), http.MethodPost, fmt.Sprintf("/movements/%d/cells", movementID), map[string]any{
			"room":      "204",
			"timestamp": "02.03.2024 09:00:00",
		}))
		testutil.AssertStatus(s.T(), rr, http.StatusCreated)
		cellID = testutil.UnmarshalData[struct {
			ID int64 `json:"id"`
		}](s.T(), rr).ID

		nodes := s.list()
		s.Require().Len(nodes[0].Cells, 1)
		s.Equal("204", nodes[0].Cells[0].Room)
	})

	s.Run("attach document to the cell", func() {
		rr := s.do("clerk", testutil.NewJSONRequest(s.T(), http.MethodPost, "/movements/docs", map[string]any{
			"parentId":   cellID,
			"parentKind": "CellAssignment",
			"number":     "7/2024",
		}))
		testutil.AssertStatus(s.T(), rr, http.StatusCreated)
		docID = testutil.UnmarshalData[docJSON](s.T(), rr).ID

		nodes := s.list()
		s.Empty(nodes[0].Docs)
		s.Require().Len(nodes[0].Cells[0].Docs, 1)
		s.Equal(docID, nodes[0].Cells[0].Docs[0].ID)
		s.Equal("cell_assignment", nodes[0].Cells[0].Docs[0].ParentKind)
	})

	s.Run("add procedure entry", func() {
		rr := s.do("clerk", testutil.NewJSONRequest(s.T(), http.MethodPost, fmt.Sprintf("/movements/%d/up", movementID), map[string]any{
			"date":          "2024-03-03",
			"authorityKind": "prosecution",
		}))
		testutil.AssertStatus(s.T(), rr, http.StatusCreated)

		nodes := s.list()
		s.Require().Len(nodes[0].Up, 1)
		s.Equal("03.03.2024", nodes[0].Up[0].Date)
	})

	s.Run("read-only actor cannot create", func() {
		rr := s.do("auditor", testutil.NewJSONRequest(s.T(), http.MethodPost, "/subject/2001xxxx/movements", map[string]any{
			"timestamp": "05.03.2024 10:00:00",
		}))
		testutil.AssertFailure(s.T(), rr, http.StatusForbidden, "write permission required for movements")
		s.Len(s.list(), 1)
	})

	s.Run("delete movement cascades", func() {
		rr := s.do("clerk", testutil.NewRequest(s.T(), http.MethodDelete, fmt.Sprintf("/movements/%d", movementID)))
		testutil.AssertStatusOK(s.T(), rr)
		s.Empty(s.list())
	})

	s.Run("deleting again is a clean not found", func() {
		rr := s.do("clerk", testutil.NewRequest(s.T(), http.MethodDelete, fmt.Sprintf("/movements/%d", movementID)))
		testutil.AssertFailure(s.T(), rr, http.StatusNotFound, "movement not found")
	})

	s.Run("every mutation was logged", func() {
		var actions []actionlog.Action
		for _, e := range s.actions.Entries() {
			actions = append(actions, e.Action)
			s.Equal("clerk", e.ActorID)
			s.NotEmpty(e.RequestID)
			s.Equal("192.0.2.1", e.ClientIP)
		}
		s.Equal([]actionlog.Action{
			actionlog.ActionMovementCreated,
			actionlog.ActionCellAssignmentAdded,
			actionlog.ActionDocumentAdded,
			actionlog.ActionProcedureEntryAdded,
			actionlog.ActionMovementDeleted,
		}, actions)
	})
}

func (s *CustodyFlowSuite) TestCanWriteFollowsPermission() {
	rr := s.do("clerk", testutil.NewRequest(s.T(), http.MethodGet, "/subject/2001xxxx/movements"))
	env := testutil.UnmarshalEnvelope(s.T(), rr)
	s.Require().NotNil(env.CanWrite)
	s.True(*env.CanWrite)

	rr = s.do("auditor", testutil.NewRequest(s.T(), http.MethodGet, "/subject/2001xxxx/movements"))
	env = testutil.UnmarshalEnvelope(s.T(), rr)
	s.Require().NotNil(env.CanWrite)
	s.False(*env.CanWrite)
}

func (s *CustodyFlowSuite) TestInvalidToken() {
	req := testutil.NewRequest(s.T(), http.MethodGet, "/subject/2001xxxx/movements")
	req.Header.Set("Authorization", "Bearer not-a-token")
	rr := testutil.DoRequest(s.router, req)
	testutil.AssertFailure(s.T(), rr, http.StatusUnauthorized, "invalid token")
}
