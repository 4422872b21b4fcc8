package pricing

// Holding is a user-owned quantity of a named item on one character. The
// engine only reads holdings; creating and deleting them belongs to the
// presentation/persistence layer.
type Holding struct {
	ID             int64  `json:"id"`
	Character      string `json:"character"`
	Item           string `json:"item"`
	Quantity       int    `json:"quantity"`
	EstimatedPrice int    `json:"estimatedPrice"`
}

// Goal is a desired purchase. TargetPrice is the user's aspiration and is
// independent of price resolution.
type Goal struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Quantity     int    `json:"quantity"`
	CurrentPrice int    `json:"currentPrice"`
	TargetPrice  int    `json:"targetPrice"`
}

// BankValue totals estimatedPrice * quantity over all holdings.
func BankValue(holdings []Holding) int {
	total := 0
	for _, h := range holdings {
		total += h.EstimatedPrice * h.Quantity
	}
	return total
}

// GoalCost is a goal's resolved price times its quantity.
func GoalCost(g Goal) int {
	return g.CurrentPrice * g.Quantity
}

// GoalTargetCost is a goal's aspirational price times its quantity.
func GoalTargetCost(g Goal) int {
	return g.TargetPrice * g.Quantity
}

// TotalGoalCost sums GoalCost over all goals.
func TotalGoalCost(goals []Goal) int {
	total := 0
	for _, g := range goals {
		total += GoalCost(g)
	}
	return total
}

// WealthRatio is bank value as a percentage of goal value. A zero goal value
// is clamped to 1 so the ratio stays defined.
func WealthRatio(bankValue, goalValue int) float64 {
	if goalValue < 1 {
		goalValue = 1
	}
	return float64(bankValue) / float64(goalValue) * 100
}

// UpdateAllPrices resolves a price for every holding that does not already
// have one. Holdings with EstimatedPrice > 0 are sticky — a manual or
// previously-resolved value is never silently overwritten by a refresh —
// and are returned unchanged. Returns the updated slice and how many
// holdings changed.
func (r *Resolver) UpdateAllPrices(holdings []Holding) ([]Holding, int) {
	updated := make([]Holding, len(holdings))
	copy(updated, holdings)

	changed := 0
	for i := range updated {
		if updated[i].EstimatedPrice > 0 {
			continue
		}
		if price := r.Resolve(updated[i].Item); price != updated[i].EstimatedPrice {
			updated[i].EstimatedPrice = price
			changed++
		}
	}
	return updated, changed
}

// RepriceGoals fills in CurrentPrice for each goal from the resolver.
// Unlike holdings, goal prices are not sticky: the goal's cost should track
// the market, while TargetPrice carries the user's own number.
func (r *Resolver) RepriceGoals(goals []Goal) []Goal {
	updated := make([]Goal, len(goals))
	copy(updated, goals)
	for i := range updated {
		updated[i].CurrentPrice = r.Resolve(updated[i].Name)
	}
	return updated
}
