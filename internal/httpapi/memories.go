package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pavannkulkarni/travel-companion-app/internal/models"
	"github.com/pavannkulkarni/travel-companion-app/internal/store"
)

func (s *Server) handleListMemories(w http.ResponseWriter, r *http.Request) {
	if err := s.authorize(r); err != nil {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error()})
		return
	}

	memories, err := s.memories.List(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	if memories == nil {
		memories = []*models.Memory{}
	}
	writeJSON(w, http.StatusOK, struct {
		Memories []*models.Memory `json:"memories"`
	}{Memories: memories})
}

func (s *Server) handleCreateMemory(w http.ResponseWriter, r *http.Request) {
	if err := s.authorize(r); err != nil {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error()})
		return
	}

	var memory models.Memory
	if err := json.NewDecoder(r.Body).Decode(&memory); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON payload"})
		return
	}

	created, err := s.memories.Create(r.Context(), &memory)
	if err != nil {
		if errors.Is(err, store.ErrInvalidMemory) {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleGetMemory(w http.ResponseWriter, r *http.Request) {
	if err := s.authorize(r); err != nil {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error()})
		return
	}

	memory, err := s.memories.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, store.ErrMemoryNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, memory)
}

func (s *Server) handleToggleMemoryLike(w http.ResponseWriter, r *http.Request) {
	if err := s.authorize(r); err != nil {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error()})
		return
	}

	memory, err := s.memories.ToggleLike(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, store.ErrMemoryNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, memory)
}
