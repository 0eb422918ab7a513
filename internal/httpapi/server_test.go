package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/pavannkulkarni/travel-companion-app/internal/aggregator"
	"github.com/pavannkulkarni/travel-companion-app/internal/models"
	"github.com/pavannkulkarni/travel-companion-app/internal/store"
)

type stubPlacesService struct {
	response []aggregator.Place
	err      error

	lastRequest aggregator.SearchRequest
}

func (s *stubPlacesService) SearchNearby(ctx context.Context, req aggregator.SearchRequest) ([]aggregator.Place, error) {
	s.lastRequest = req
	if s.err != nil {
		return nil, s.err
	}
	return s.response, nil
}

type stubGroupService struct {
	groupsResponse []*models.TripGroup
	singleGroup    *models.TripGroup
	err            error

	createdGroup *models.TripGroup
	lastID       string
}

func (s *stubGroupService) Create(ctx context.Context, group *models.TripGroup) (*models.TripGroup, error) {
	s.createdGroup = group
	if s.err != nil {
		return nil, s.err
	}
	return group, nil
}

func (s *stubGroupService) Get(ctx context.Context, id string) (*models.TripGroup, error) {
	s.lastID = id
	if s.err != nil {
		return nil, s.err
	}
	return s.singleGroup, nil
}

func (s *stubGroupService) List(ctx context.Context) ([]*models.TripGroup, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.groupsResponse, nil
}

func (s *stubGroupService) Update(ctx context.Context, id string, group *models.TripGroup) (*models.TripGroup, error) {
	s.lastID = id
	if s.err != nil {
		return nil, s.err
	}
	group.ID = id
	return group, nil
}

func (s *stubGroupService) Delete(ctx context.Context, id string) error {
	s.lastID = id
	return s.err
}

type stubExpenseService struct {
	expensesResponse []*models.Expense
	singleExpense    *models.Expense
	err              error

	lastFilter models.ExpenseFilter
	lastID     string
}

func (s *stubExpenseService) Create(ctx context.Context, expense *models.Expense) (*models.Expense, error) {
	if s.err != nil {
		return nil, s.err
	}
	return expense, nil
}

func (s *stubExpenseService) Get(ctx context.Context, id string) (*models.Expense, error) {
	s.lastID = id
	if s.err != nil {
		return nil, s.err
	}
	return s.singleExpense, nil
}

func (s *stubExpenseService) List(ctx context.Context, filter models.ExpenseFilter) ([]*models.Expense, error) {
	s.lastFilter = filter
	if s.err != nil {
		return nil, s.err
	}
	return s.expensesResponse, nil
}

func (s *stubExpenseService) Delete(ctx context.Context, id string) error {
	s.lastID = id
	return s.err
}

type stubMemoryService struct {
	memoriesResponse []*models.Memory
	singleMemory     *models.Memory
	err              error

	lastID string
}

func (s *stubMemoryService) Create(ctx context.Context, memory *models.Memory) (*models.Memory, error) {
	if s.err != nil {
		return nil, s.err
	}
	return memory, nil
}

func (s *stubMemoryService) Get(ctx context.Context, id string) (*models.Memory, error) {
	s.lastID = id
	if s.err != nil {
		return nil, s.err
	}
	return s.singleMemory, nil
}

func (s *stubMemoryService) List(ctx context.Context) ([]*models.Memory, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.memoriesResponse, nil
}

func (s *stubMemoryService) ToggleLike(ctx context.Context, id string) (*models.Memory, error) {
	s.lastID = id
	if s.err != nil {
		return nil, s.err
	}
	return s.singleMemory, nil
}

func newTestServer(opts ...Option) (*Server, *stubPlacesService, *stubGroupService, *stubExpenseService, *stubMemoryService) {
	places := &stubPlacesService{}
	groups := &stubGroupService{}
	expenses := &stubExpenseService{}
	memories := &stubMemoryService{}
	return New(places, groups, expenses, memories, opts...), places, groups, expenses, memories
}

func TestHealth(t *testing.T) {
	srv, _, _, _, _ := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestListGroups(t *testing.T) {
	srv, _, groups, _, _ := newTestServer()
	groups.groupsResponse = []*models.TripGroup{
		{ID: "g1", Name: "Europe Trip", Status: models.GroupStatusActive},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/groups", nil)
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Groups []*models.TripGroup `json:"groups"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(body.Groups) != 1 || body.Groups[0].Name != "Europe Trip" {
		t.Fatalf("unexpected groups: %+v", body.Groups)
	}
}

func TestCreateGroupInvalidPayload(t *testing.T) {
	srv, _, _, _, _ := newTestServer()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/groups", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestCreateGroupValidationError(t *testing.T) {
	srv, _, groups, _, _ := newTestServer()
	groups.err = store.ErrInvalidGroup

	req := httptest.NewRequest(http.MethodPost, "/api/v1/groups", bytes.NewBufferString(`{"name":""}`))
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var body errorResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Error == "" {
		t.Fatal("expected error message in body")
	}
}

func TestGetGroupNotFound(t *testing.T) {
	srv, _, groups, _, _ := newTestServer()
	groups.err = store.ErrGroupNotFound

	req := httptest.NewRequest(http.MethodGet, "/api/v1/groups/missing", nil)
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if groups.lastID != "missing" {
		t.Fatalf("expected path ID to reach service, got %q", groups.lastID)
	}
}

func TestDeleteGroup(t *testing.T) {
	srv, _, groups, _, _ := newTestServer()

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/groups/g1", nil)
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if groups.lastID != "g1" {
		t.Fatalf("expected delete for g1, got %q", groups.lastID)
	}
}

func TestListExpensesForwardsGroupFilter(t *testing.T) {
	srv, _, _, expenses, _ := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/expenses?groupId=g1", nil)
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if expenses.lastFilter.GroupID != "g1" {
		t.Fatalf("expected groupId filter, got %q", expenses.lastFilter.GroupID)
	}
}

func TestToggleMemoryLike(t *testing.T) {
	srv, _, _, _, memories := newTestServer()
	memories.singleMemory = &models.Memory{ID: "m1", Title: "Sunset", IsLiked: true, Likes: 5}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/memories/m1/like", nil)
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if memories.lastID != "m1" {
		t.Fatalf("expected toggle for m1, got %q", memories.lastID)
	}

	var body models.Memory
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !body.IsLiked || body.Likes != 5 {
		t.Fatalf("unexpected memory: %+v", body)
	}
}

func TestBearerSecretRejectsMissingToken(t *testing.T) {
	srv, _, _, _, _ := newTestServer(WithBearerSecret("sekrit"))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/groups", nil)
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestBearerSecretRejectsBadSignature(t *testing.T) {
	srv, _, _, _, _ := newTestServer(WithBearerSecret("sekrit"))

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"role": "anon",
		"exp":  time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("wrong-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/groups", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestBearerSecretAcceptsValidToken(t *testing.T) {
	srv, _, _, _, _ := newTestServer(WithBearerSecret("sekrit"))

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"role": "anon",
		"exp":  time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("sekrit"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/groups", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}
