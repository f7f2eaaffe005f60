package domain

import (
	"context"
	"errors"
)

// ErrNotFound is returned when the catalog has no product with the
// requested id.
var ErrNotFound = errors.New("product not found")

// Item is a product record as served by the catalog
type Item struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Brand        string  `json:"brand"`
	Price        float64 `json:"price"`
	Image        string  `json:"image"`
	Description  string  `json:"description"`
	Rating       float64 `json:"rating"`
	Connectivity string  `json:"connectivity"`
	Wireless     bool    `json:"wireless"`
}

// Searcher finds items whose name matches a query
type Searcher interface {
	Search(ctx context.Context, query string) ([]Item, error)
}

// Getter loads a single item by id
type Getter interface {
	Get(ctx context.Context, id int64) (*Item, error)
}

// Catalog is the remote product catalog
type Catalog interface {
	Searcher
	Getter
}
