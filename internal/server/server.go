/*
Package server implements the application's network transport layer.
It initializes the HTTP server, configures CORS and timeouts, and wires
the care pipeline, vision path, and persistence into the route handlers.
*/
package server

import (
	"fmt"
	"net/http"
	"time"

	"GardenGenie/internal/config"
	"GardenGenie/internal/database"
	"GardenGenie/internal/identify"
	"GardenGenie/internal/plantcare"
	"GardenGenie/internal/store"
	"GardenGenie/internal/unsplash"
)

// Server holds the configuration and dependencies for the HTTP service.
// All collaborators are constructed once at startup and injected here;
// handlers never lazily initialize clients.
type Server struct {
	cfg        *config.Config
	db         database.Service
	classifier *plantcare.Classifier
	generator  *plantcare.Generator
	orch       *store.Orchestrator
	images     *unsplash.Client
	identifier *identify.Service

	startTime time.Time
}

// Deps bundles the collaborators the server needs.
type Deps struct {
	Config     *config.Config
	DB         database.Service
	Classifier *plantcare.Classifier
	Generator  *plantcare.Generator
	Store      *store.Orchestrator
	Images     *unsplash.Client
	Identifier *identify.Service
}

// NewServer builds a configured *http.Server with production network
// timeouts. The write timeout leaves room for two sequential model round
// trips (classification plus generation).
func NewServer(deps Deps) *http.Server {
	app := &Server{
		cfg:        deps.Config,
		db:         deps.DB,
		classifier: deps.Classifier,
		generator:  deps.Generator,
		orch:       deps.Store,
		images:     deps.Images,
		identifier: deps.Identifier,
		startTime:  time.Now(),
	}

	return &http.Server{
		Addr:         fmt.Sprintf(":%d", deps.Config.Port),
		Handler:      app.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
	}
}
