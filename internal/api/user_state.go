package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"gp-tracker/internal/pricing"
)

func (s *Server) handleGetCharacters(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.db.Characters())
}

func (s *Server) handleAddCharacter(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		writeError(w, http.StatusBadRequest, "invalid character payload")
		return
	}
	if !s.db.AddCharacter(req.Name) {
		writeError(w, http.StatusConflict, "character already exists")
		return
	}
	writeJSON(w, map[string]string{"name": req.Name})
}

func (s *Server) handleDeleteCharacter(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if err := s.db.DeleteCharacter(name); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, map[string]string{"deleted": name})
}

func (s *Server) handleGetHoldings(w http.ResponseWriter, r *http.Request) {
	if character := r.URL.Query().Get("character"); character != "" {
		writeJSON(w, s.db.HoldingsFor(character))
		return
	}
	writeJSON(w, s.db.Holdings())
}

func (s *Server) handleAddHolding(w http.ResponseWriter, r *http.Request) {
	var h pricing.Holding
	if err := json.NewDecoder(r.Body).Decode(&h); err != nil || h.Character == "" || h.Item == "" {
		writeError(w, http.StatusBadRequest, "invalid holding payload")
		return
	}
	if h.Quantity < 0 || h.EstimatedPrice < 0 {
		writeError(w, http.StatusBadRequest, "quantity and estimatedPrice must be >= 0")
		return
	}
	saved, err := s.db.AddHolding(h)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, saved)
}

func (s *Server) handleUpdateHolding(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid holding id")
		return
	}
	var h pricing.Holding
	if err := json.NewDecoder(r.Body).Decode(&h); err != nil || h.Item == "" {
		writeError(w, http.StatusBadRequest, "invalid holding payload")
		return
	}
	h.ID = id
	if err := s.db.UpdateHolding(h); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, h)
}

func (s *Server) handleDeleteHolding(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid holding id")
		return
	}
	if err := s.db.DeleteHolding(id); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, map[string]int64{"deleted": id})
}

func (s *Server) handleGetGoals(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.db.Goals())
}

func (s *Server) handleAddGoal(w http.ResponseWriter, r *http.Request) {
	var g pricing.Goal
	if err := json.NewDecoder(r.Body).Decode(&g); err != nil || g.Name == "" {
		writeError(w, http.StatusBadRequest, "invalid goal payload")
		return
	}
	if g.CurrentPrice == 0 {
		g.CurrentPrice = s.resolver.Resolve(g.Name)
	}
	saved, err := s.db.AddGoal(g)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, saved)
}

func (s *Server) handleUpdateGoal(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid goal id")
		return
	}
	var g pricing.Goal
	if err := json.NewDecoder(r.Body).Decode(&g); err != nil || g.Name == "" {
		writeError(w, http.StatusBadRequest, "invalid goal payload")
		return
	}
	g.ID = id
	if err := s.db.UpdateGoal(g); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, g)
}

func (s *Server) handleDeleteGoal(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid goal id")
		return
	}
	if err := s.db.DeleteGoal(id); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, map[string]int64{"deleted": id})
}
