// Package httpapi wires HTTP handlers to the application services.
package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/pavannkulkarni/travel-companion-app/internal/aggregator"
	"github.com/pavannkulkarni/travel-companion-app/internal/models"
)

// PlacesService captures the place discovery pipeline needed by the HTTP handlers.
type PlacesService interface {
	SearchNearby(ctx context.Context, req aggregator.SearchRequest) ([]aggregator.Place, error)
}

// GroupService coordinates trip group workflows.
type GroupService interface {
	Create(ctx context.Context, group *models.TripGroup) (*models.TripGroup, error)
	Get(ctx context.Context, id string) (*models.TripGroup, error)
	List(ctx context.Context) ([]*models.TripGroup, error)
	Update(ctx context.Context, id string, group *models.TripGroup) (*models.TripGroup, error)
	Delete(ctx context.Context, id string) error
}

// ExpenseService coordinates expense workflows.
type ExpenseService interface {
	Create(ctx context.Context, expense *models.Expense) (*models.Expense, error)
	Get(ctx context.Context, id string) (*models.Expense, error)
	List(ctx context.Context, filter models.ExpenseFilter) ([]*models.Expense, error)
	Delete(ctx context.Context, id string) error
}

// MemoryService coordinates memory feed workflows.
type MemoryService interface {
	Create(ctx context.Context, memory *models.Memory) (*models.Memory, error)
	Get(ctx context.Context, id string) (*models.Memory, error)
	List(ctx context.Context) ([]*models.Memory, error)
	ToggleLike(ctx context.Context, id string) (*models.Memory, error)
}

// Server wires HTTP handlers to the underlying services.
type Server struct {
	places       PlacesService
	groups       GroupService
	expenses     ExpenseService
	memories     MemoryService
	bearerSecret []byte
}

// Option customizes a Server.
type Option func(*Server)

// WithBearerSecret enables bearer token verification on the API routes.
// Tokens are expected to be HS256 JWTs signed with the given secret.
func WithBearerSecret(secret string) Option {
	return func(s *Server) {
		if secret != "" {
			s.bearerSecret = []byte(secret)
		}
	}
}

// New configures a Server with the given services.
func New(places PlacesService, groups GroupService, expenses ExpenseService, memories MemoryService, opts ...Option) *Server {
	s := &Server{
		places:   places,
		groups:   groups,
		expenses: expenses,
		memories: memories,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Routes exposes the HTTP handlers for place discovery and trip management.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Place discovery endpoint, handles its own CORS preflight
	mux.HandleFunc("/places", s.handlePlaces)

	// Trip group routes
	mux.HandleFunc("GET /api/v1/groups", s.handleListGroups)
	mux.HandleFunc("POST /api/v1/groups", s.handleCreateGroup)
	mux.HandleFunc("GET /api/v1/groups/{id}", s.handleGetGroup)
	mux.HandleFunc("PUT /api/v1/groups/{id}", s.handleUpdateGroup)
	mux.HandleFunc("DELETE /api/v1/groups/{id}", s.handleDeleteGroup)

	// Expense routes
	mux.HandleFunc("GET /api/v1/expenses", s.handleListExpenses)
	mux.HandleFunc("POST /api/v1/expenses", s.handleCreateExpense)
	mux.HandleFunc("GET /api/v1/expenses/{id}", s.handleGetExpense)
	mux.HandleFunc("DELETE /api/v1/expenses/{id}", s.handleDeleteExpense)

	// Memory routes
	mux.HandleFunc("GET /api/v1/memories", s.handleListMemories)
	mux.HandleFunc("POST /api/v1/memories", s.handleCreateMemory)
	mux.HandleFunc("GET /api/v1/memories/{id}", s.handleGetMemory)
	mux.HandleFunc("POST /api/v1/memories/{id}/like", s.handleToggleMemoryLike)

	return mux
}

type errorResponse struct {
	Error string `json:"error"`
}

// authorize verifies the request's bearer token when a secret is configured.
func (s *Server) authorize(r *http.Request) error {
	if s.bearerSecret == nil {
		return nil
	}

	token := parseBearerToken(r.Header.Get("Authorization"))
	if token == "" {
		return fmt.Errorf("missing bearer token")
	}

	_, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.bearerSecret, nil
	})
	if err != nil {
		return fmt.Errorf("invalid bearer token: %w", err)
	}
	return nil
}

func parseBearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}
