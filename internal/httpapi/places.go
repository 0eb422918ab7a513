package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/pavannkulkarni/travel-companion-app/internal/aggregator"
	"github.com/pavannkulkarni/travel-companion-app/internal/geo"
	"github.com/pavannkulkarni/travel-companion-app/internal/logging"
)

// placesCORSHeaders makes the discovery endpoint callable straight from
// browsers and mobile webviews regardless of origin.
func placesCORSHeaders(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "authorization, x-client-info, apikey, content-type")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
}

func (s *Server) handlePlaces(w http.ResponseWriter, r *http.Request) {
	placesCORSHeaders(w)

	switch r.Method {
	case http.MethodOptions:
		w.WriteHeader(http.StatusNoContent)
		return
	case http.MethodGet:
	default:
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
		return
	}

	if err := s.authorize(r); err != nil {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error()})
		return
	}

	query := r.URL.Query()

	lat, err := strconv.ParseFloat(query.Get("latitude"), 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid latitude"})
		return
	}
	lng, err := strconv.ParseFloat(query.Get("longitude"), 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid longitude"})
		return
	}

	placeType := query.Get("type")
	if placeType == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "type is required"})
		return
	}

	var minRating float64
	if raw := query.Get("minRating"); raw != "" {
		minRating, err = strconv.ParseFloat(raw, 64)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid minRating"})
			return
		}
	}

	req := aggregator.SearchRequest{
		Coordinates: geo.Coordinates{Latitude: lat, Longitude: lng},
		PlaceType:   placeType,
		MinRating:   minRating,
	}

	places, err := s.places.SearchNearby(r.Context(), req)
	if err != nil {
		if errors.Is(err, aggregator.ErrInvalidRequest) {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
		logging.WithContext(r.Context()).Error().Err(err).Msg("place search failed")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	if places == nil {
		places = []aggregator.Place{}
	}
	writeJSON(w, http.StatusOK, places)
}
