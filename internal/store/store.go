// Package store provides an interface for product storage operations.
package store

import (
	"context"
	"encoding/json"
	"time"
)

// Product represents a catalog entity as persisted by the store.
// ImageURL and ObjectModelData are opaque JSON payloads: the store keeps them
// verbatim and never interprets them.
type Product struct {
	ID              int64
	Name            string
	Description     string
	Price           float64
	ImageURL        json.RawMessage
	ObjectModelData json.RawMessage
	Type            string
	Category        []string
	StripeProductID *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// CreateParams carries the attributes of a product to be created. The ID and
// timestamps are assigned by the store. StripeProductID is nil when the
// external registration did not succeed; that state is permanent.
type CreateParams struct {
	Name            string
	Description     string
	Price           float64
	ImageURL        json.RawMessage
	ObjectModelData json.RawMessage
	Type            string
	Category        []string
	StripeProductID *string
}

// ProductFilter is an immutable, store-agnostic predicate over products.
// Dimensions that are set are ANDed together; the zero value matches every
// product.
type ProductFilter struct {
	// Search matches products whose name or description contains the value,
	// case-insensitively.
	Search string
	// Category matches products whose category set contains the value.
	Category string
	// Type matches products whose type equals the value, case-insensitively.
	Type string
	// MinPrice and MaxPrice are inclusive bounds; nil means unbounded.
	MinPrice *float64
	MaxPrice *float64
}

// Empty reports whether no filter dimension is set.
func (f ProductFilter) Empty() bool {
	return f.Search == "" && f.Category == "" && f.Type == "" &&
		f.MinPrice == nil && f.MaxPrice == nil
}

// SortField identifies a whitelisted product sort column.
type SortField string

const (
	SortFieldName      SortField = "name"
	SortFieldPrice     SortField = "price"
	SortFieldCreatedAt SortField = "createdAt"
	SortFieldUpdatedAt SortField = "updatedAt"
)

// Sort describes the ordering of a paged read.
type Sort struct {
	Field SortField
	Desc  bool
}

// ProductStore is an interface for product storage operations.
// It abstracts the underlying data store, allowing for different implementations (e.g., in-memory, database).
type ProductStore interface {
	// FindByID retrieves a single product by its unique identifier.
	// Returns ErrProductNotFound if no product exists with the given ID.
	FindByID(ctx context.Context, id int64) (*Product, error)

	// FindAll returns all available products.
	// Returns an empty slice if no products exist.
	FindAll(ctx context.Context) ([]Product, error)

	// FindPage returns the products matching the filter, ordered by the sort
	// and windowed by offset/limit. Returns an empty slice when the window is
	// past the end of the result set.
	FindPage(ctx context.Context, filter ProductFilter, sort Sort, offset, limit int32) ([]Product, error)

	// Count returns the number of products matching the filter.
	Count(ctx context.Context, filter ProductFilter) (int64, error)

	// Create adds a new product to the system.
	// Returns error if the product cannot be created.
	Create(ctx context.Context, params CreateParams) (*Product, error)
}
