// Package api exposes the engine over a local HTTP API: the refresh trigger,
// name→price resolution, the user-state CRUD, and the wealth summary.
package api

import (
	"encoding/json"
	"net/http"

	"gp-tracker/internal/db"
	"gp-tracker/internal/pricing"
)

// Server connects the price cache, resolver, refresher, and user-state store.
type Server struct {
	cache     *pricing.Cache
	resolver  *pricing.Resolver
	refresher *pricing.Refresher
	db        *db.DB
}

// NewServer creates a Server over the given components.
func NewServer(cache *pricing.Cache, resolver *pricing.Resolver, refresher *pricing.Refresher, database *db.DB) *Server {
	return &Server{
		cache:     cache,
		resolver:  resolver,
		refresher: refresher,
		db:        database,
	}
}

// Handler returns the HTTP handler with all API routes and CORS middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/status", s.handleStatus)
	// Items / prices
	mux.HandleFunc("POST /api/items/refresh", s.handleRefreshItems)
	mux.HandleFunc("GET /api/items/metadata", s.handleItemsMetadata)
	mux.HandleFunc("GET /api/items/resolve", s.handleResolve)
	// Characters
	mux.HandleFunc("GET /api/characters", s.handleGetCharacters)
	mux.HandleFunc("POST /api/characters", s.handleAddCharacter)
	mux.HandleFunc("DELETE /api/characters/{name}", s.handleDeleteCharacter)
	// Holdings
	mux.HandleFunc("GET /api/holdings", s.handleGetHoldings)
	mux.HandleFunc("POST /api/holdings", s.handleAddHolding)
	mux.HandleFunc("PUT /api/holdings/{id}", s.handleUpdateHolding)
	mux.HandleFunc("DELETE /api/holdings/{id}", s.handleDeleteHolding)
	mux.HandleFunc("POST /api/holdings/reprice", s.handleReprice)
	// Goals
	mux.HandleFunc("GET /api/goals", s.handleGetGoals)
	mux.HandleFunc("POST /api/goals", s.handleAddGoal)
	mux.HandleFunc("PUT /api/goals/{id}", s.handleUpdateGoal)
	mux.HandleFunc("DELETE /api/goals/{id}", s.handleDeleteGoal)
	// Valuation
	mux.HandleFunc("GET /api/wealth", s.handleWealth)
	return corsMiddleware(mux)
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(204)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
