package db

import (
	"fmt"

	"gp-tracker/internal/pricing"
)

// Characters returns all character names, sorted.
func (d *DB) Characters() []string {
	rows, err := d.sql.Query("SELECT name FROM characters ORDER BY name")
	if err != nil {
		return []string{}
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		rows.Scan(&name)
		names = append(names, name)
	}
	return names
}

// AddCharacter inserts a character. Returns false on duplicate.
func (d *DB) AddCharacter(name string) bool {
	res, err := d.sql.Exec("INSERT OR IGNORE INTO characters (name) VALUES (?)", name)
	if err != nil {
		return false
	}
	n, _ := res.RowsAffected()
	return n > 0
}

// DeleteCharacter removes a character and, via cascade, its holdings.
func (d *DB) DeleteCharacter(name string) error {
	// modernc sqlite does not enable foreign_keys by default; delete
	// holdings explicitly so the cascade does not depend on a pragma.
	if _, err := d.sql.Exec("DELETE FROM holdings WHERE character = ?", name); err != nil {
		return fmt.Errorf("delete holdings: %w", err)
	}
	if _, err := d.sql.Exec("DELETE FROM characters WHERE name = ?", name); err != nil {
		return fmt.Errorf("delete character: %w", err)
	}
	return nil
}

// Holdings returns every holding across all characters, bank order.
func (d *DB) Holdings() []pricing.Holding {
	return d.queryHoldings("SELECT id, character, item, quantity, estimated_price FROM holdings ORDER BY character, id")
}

// HoldingsFor returns one character's holdings.
func (d *DB) HoldingsFor(character string) []pricing.Holding {
	return d.queryHoldings("SELECT id, character, item, quantity, estimated_price FROM holdings WHERE character = ? ORDER BY id", character)
}

func (d *DB) queryHoldings(query string, args ...interface{}) []pricing.Holding {
	rows, err := d.sql.Query(query, args...)
	if err != nil {
		return []pricing.Holding{}
	}
	defer rows.Close()

	holdings := []pricing.Holding{}
	for rows.Next() {
		var h pricing.Holding
		rows.Scan(&h.ID, &h.Character, &h.Item, &h.Quantity, &h.EstimatedPrice)
		holdings = append(holdings, h)
	}
	return holdings
}

// AddHolding inserts a holding and returns it with its assigned ID.
func (d *DB) AddHolding(h pricing.Holding) (pricing.Holding, error) {
	res, err := d.sql.Exec(
		"INSERT INTO holdings (character, item, quantity, estimated_price) VALUES (?, ?, ?, ?)",
		h.Character, h.Item, h.Quantity, h.EstimatedPrice,
	)
	if err != nil {
		return h, fmt.Errorf("insert holding: %w", err)
	}
	h.ID, _ = res.LastInsertId()
	return h, nil
}

// UpdateHolding rewrites a holding's mutable fields by ID.
func (d *DB) UpdateHolding(h pricing.Holding) error {
	_, err := d.sql.Exec(
		"UPDATE holdings SET item = ?, quantity = ?, estimated_price = ? WHERE id = ?",
		h.Item, h.Quantity, h.EstimatedPrice, h.ID,
	)
	if err != nil {
		return fmt.Errorf("update holding %d: %w", h.ID, err)
	}
	return nil
}

// DeleteHolding removes a holding by ID.
func (d *DB) DeleteHolding(id int64) error {
	if _, err := d.sql.Exec("DELETE FROM holdings WHERE id = ?", id); err != nil {
		return fmt.Errorf("delete holding %d: %w", id, err)
	}
	return nil
}

// UpdateHoldingPrices writes back resolved prices for the given holdings in
// one transaction. Only estimated_price changes; quantities and names are
// the user's.
func (d *DB) UpdateHoldingPrices(holdings []pricing.Holding) error {
	tx, err := d.sql.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	for _, h := range holdings {
		if _, err := tx.Exec("UPDATE holdings SET estimated_price = ? WHERE id = ?", h.EstimatedPrice, h.ID); err != nil {
			tx.Rollback()
			return fmt.Errorf("update price for holding %d: %w", h.ID, err)
		}
	}
	return tx.Commit()
}
