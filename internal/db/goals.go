package db

import (
	"fmt"

	"gp-tracker/internal/pricing"
)

// Goals returns all purchase goals in creation order.
func (d *DB) Goals() []pricing.Goal {
	rows, err := d.sql.Query("SELECT id, name, quantity, current_price, target_price FROM goals ORDER BY id")
	if err != nil {
		return []pricing.Goal{}
	}
	defer rows.Close()

	goals := []pricing.Goal{}
	for rows.Next() {
		var g pricing.Goal
		rows.Scan(&g.ID, &g.Name, &g.Quantity, &g.CurrentPrice, &g.TargetPrice)
		goals = append(goals, g)
	}
	return goals
}

// AddGoal inserts a goal and returns it with its assigned ID. Quantity
// defaults to 1 when unset.
func (d *DB) AddGoal(g pricing.Goal) (pricing.Goal, error) {
	if g.Quantity < 1 {
		g.Quantity = 1
	}
	res, err := d.sql.Exec(
		"INSERT INTO goals (name, quantity, current_price, target_price) VALUES (?, ?, ?, ?)",
		g.Name, g.Quantity, g.CurrentPrice, g.TargetPrice,
	)
	if err != nil {
		return g, fmt.Errorf("insert goal: %w", err)
	}
	g.ID, _ = res.LastInsertId()
	return g, nil
}

// UpdateGoal rewrites a goal by ID.
func (d *DB) UpdateGoal(g pricing.Goal) error {
	_, err := d.sql.Exec(
		"UPDATE goals SET name = ?, quantity = ?, current_price = ?, target_price = ? WHERE id = ?",
		g.Name, g.Quantity, g.CurrentPrice, g.TargetPrice, g.ID,
	)
	if err != nil {
		return fmt.Errorf("update goal %d: %w", g.ID, err)
	}
	return nil
}

// DeleteGoal removes a goal by ID.
func (d *DB) DeleteGoal(id int64) error {
	if _, err := d.sql.Exec("DELETE FROM goals WHERE id = ?", id); err != nil {
		return fmt.Errorf("delete goal %d: %w", id, err)
	}
	return nil
}
