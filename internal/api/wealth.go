package api

import (
	"net/http"

	"gp-tracker/internal/pricing"
)

// handleReprice resolves prices for every stored holding that has none yet
// (manually set prices are sticky) and persists the changes.
func (s *Server) handleReprice(w http.ResponseWriter, r *http.Request) {
	holdings := s.db.Holdings()
	updated, n := s.resolver.UpdateAllPrices(holdings)
	if n > 0 {
		if err := s.db.UpdateHoldingPrices(updated); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
	}
	writeJSON(w, map[string]int{"updated": n})
}

// wealthResponse is the portfolio-wide valuation summary.
type wealthResponse struct {
	BankValue      int                `json:"bankValue"`
	GoalCost       int                `json:"goalCost"`
	GoalTargetCost int                `json:"goalTargetCost"`
	WealthRatio    float64            `json:"wealthRatio"`
	Characters     map[string]int     `json:"characters"`
	Goals          []goalCostResponse `json:"goals"`
}

type goalCostResponse struct {
	pricing.Goal
	Cost       int `json:"cost"`
	TargetCost int `json:"targetCost"`
}

// handleWealth recomputes the full valuation from current holdings, goals,
// and prices. Goal prices track the market on every read; unresolved items
// simply contribute zero.
func (s *Server) handleWealth(w http.ResponseWriter, r *http.Request) {
	holdings := s.db.Holdings()
	goals := s.resolver.RepriceGoals(s.db.Goals())

	perCharacter := make(map[string]int)
	for _, h := range holdings {
		perCharacter[h.Character] += h.EstimatedPrice * h.Quantity
	}

	goalCosts := make([]goalCostResponse, 0, len(goals))
	for _, g := range goals {
		goalCosts = append(goalCosts, goalCostResponse{
			Goal:       g,
			Cost:       pricing.GoalCost(g),
			TargetCost: pricing.GoalTargetCost(g),
		})
	}

	bank := pricing.BankValue(holdings)
	goalTotal := pricing.TotalGoalCost(goals)
	targetTotal := 0
	for _, g := range goals {
		targetTotal += pricing.GoalTargetCost(g)
	}

	writeJSON(w, wealthResponse{
		BankValue:      bank,
		GoalCost:       goalTotal,
		GoalTargetCost: targetTotal,
		WealthRatio:    pricing.WealthRatio(bank, goalTotal),
		Characters:     perCharacter,
		Goals:          goalCosts,
	})
}
