package wiki

import (
	"context"
	"strconv"

	"golang.org/x/sync/errgroup"
)

// MappingEntry is one item's metadata from the /mapping endpoint.
// Optional fields the feed omits decode to their zero values.
type MappingEntry struct {
	ID                int    `json:"id"`
	Name              string `json:"name"`
	Members           bool   `json:"members"`
	Tradeable         bool   `json:"tradeable"`
	TradeableOnMarket bool   `json:"tradeable_on_ge"`
	BuyLimit          int    `json:"limit"`
	Value             int    `json:"value"`
	HighAlch          int    `json:"highalch"`
	LowAlch           int    `json:"lowalch"`
}

// LatestPrice is one item's trade snapshot from the /latest endpoint.
type LatestPrice struct {
	High int `json:"high"`
	Low  int `json:"low"`
}

// FetchMapping retrieves the full item metadata catalog.
func (c *Client) FetchMapping(ctx context.Context) ([]MappingEntry, error) {
	var mapping []MappingEntry
	if err := c.getJSON(ctx, "/mapping", &mapping); err != nil {
		return nil, err
	}
	return mapping, nil
}

// FetchLatest retrieves the latest high/low trade prices keyed by item ID.
// The feed keys the data object by stringified IDs; entries with unparseable
// keys are dropped.
func (c *Client) FetchLatest(ctx context.Context) (map[int]LatestPrice, error) {
	var body struct {
		Data map[string]LatestPrice `json:"data"`
	}
	if err := c.getJSON(ctx, "/latest", &body); err != nil {
		return nil, err
	}
	prices := make(map[int]LatestPrice, len(body.Data))
	for key, p := range body.Data {
		id, err := strconv.Atoi(key)
		if err != nil {
			continue
		}
		prices[id] = p
	}
	return prices, nil
}

// FetchAll issues the mapping and latest fetches concurrently — the two
// endpoints are independent — and returns once both have resolved. A failure
// in either aborts the combined result.
func (c *Client) FetchAll(ctx context.Context) ([]MappingEntry, map[int]LatestPrice, error) {
	var (
		mapping []MappingEntry
		latest  map[int]LatestPrice
	)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		mapping, err = c.FetchMapping(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		latest, err = c.FetchLatest(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return mapping, latest, nil
}
