package main

import (
	"context"
	"net/http"

	"github.com/pavannkulkarni/travel-companion-app/internal/logging"
	"github.com/pavannkulkarni/travel-companion-app/internal/store"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		logging.New(logging.Config{}).Fatal(err, "invalid configuration")
	}

	logger := logging.New(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	logging.SetGlobalLogger(logger)

	db, err := openDatabase(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logger.Fatal(err, "database unavailable")
	}
	defer db.Close()

	dataStore := store.New(db)

	if err := bootstrapDemoData(context.Background(), db, dataStore); err != nil {
		logger.Fatal(err, "bootstrap demo data")
	}

	handler := newHTTPHandler(cfg, dataStore)

	logger.Info("API available at http://localhost" + cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, handler); err != nil {
		logger.Fatal(err, "server error")
	}
}
