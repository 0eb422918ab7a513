package main

import (
	"net/http"

	"github.com/pavannkulkarni/travel-companion-app/internal/aggregator"
	"github.com/pavannkulkarni/travel-companion-app/internal/app/expenses"
	"github.com/pavannkulkarni/travel-companion-app/internal/app/memories"
	"github.com/pavannkulkarni/travel-companion-app/internal/app/trips"
	"github.com/pavannkulkarni/travel-companion-app/internal/httpapi"
	"github.com/pavannkulkarni/travel-companion-app/internal/middleware"
	"github.com/pavannkulkarni/travel-companion-app/internal/placesapi"
	"github.com/pavannkulkarni/travel-companion-app/internal/store"
)

func newHTTPHandler(cfg Config, dataStore *store.Store) http.Handler {
	googleClient := placesapi.NewGoogleClient(cfg.GoogleMapsAPIKey)
	placesSvc := aggregator.New(googleClient)

	tripsSvc := trips.New(dataStore)
	expensesSvc := expenses.New(dataStore)
	memoriesSvc := memories.New(dataStore)

	srv := httpapi.New(placesSvc, tripsSvc, expensesSvc, memoriesSvc,
		httpapi.WithBearerSecret(cfg.BearerSecret))

	handler := middleware.CORS(cfg.AllowedOrigins)(srv.Routes())
	handler = middleware.Recovery()(handler)
	handler = middleware.RequestLogging()(handler)
	return handler
}
