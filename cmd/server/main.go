package main

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/jwaldner/lattice/internal/config"
	"github.com/jwaldner/lattice/internal/handlers"
	"github.com/jwaldner/lattice/internal/logger"
	lattice "github.com/jwaldner/lattice/lattice_lib"
)

func main() {
	cfg := config.Load()

	if err := logger.InitWithConfig(cfg.Logging.LogLevel, cfg.Logging.LogFile); err != nil {
		log.Fatalf("Failed to initialize logging: %v", err)
	}
	logger.Always.Printf("Lattice pricing service starting - Port: %s", cfg.Port)
	logger.Info.Printf("Engine defaults: steps=%d max_steps=%d", cfg.Engine.DefaultSteps, cfg.Engine.MaxSteps)

	engine := lattice.NewEngineWithSteps(cfg.Engine.DefaultSteps)
	optionsHandler := handlers.NewOptionsHandler(cfg, engine)

	r := mux.NewRouter()
	r.HandleFunc("/health", optionsHandler.HealthHandler).Methods("GET")
	r.HandleFunc("/api/v1/price", optionsHandler.PriceHandler).Methods("POST", "OPTIONS")

	log.Printf("Listening on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
