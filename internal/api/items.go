package api

import (
	"net/http"
	"time"
)

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	fetchedAt := s.cache.FetchedAt()
	resp := map[string]interface{}{
		"ready": s.cache.Len() > 0,
		"items": s.cache.Len(),
		"stale": s.cache.Stale(time.Now()),
	}
	if !fetchedAt.IsZero() {
		resp["fetchedAt"] = fetchedAt
	}
	writeJSON(w, resp)
}

// handleRefreshItems triggers a catalog refresh. Concurrent requests share
// one upstream fetch. On failure the last-known prices stay in service and
// the client is told to retry later.
func (s *Server) handleRefreshItems(w http.ResponseWriter, r *http.Request) {
	meta, err := s.refresher.Refresh(r.Context())
	if err != nil {
		writeError(w, http.StatusBadGateway, "could not update prices, will retry later")
		return
	}
	writeJSON(w, meta)
}

func (s *Server) handleItemsMetadata(w http.ResponseWriter, r *http.Request) {
	meta := s.refresher.Meta()
	if meta == nil {
		writeError(w, http.StatusNotFound, "no refresh has completed yet")
		return
	}
	writeJSON(w, meta)
}

func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		writeError(w, http.StatusBadRequest, "missing name parameter")
		return
	}
	writeJSON(w, map[string]interface{}{
		"name":  name,
		"price": s.resolver.Resolve(name),
	})
}
