package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	perrors "github.com/nostruffes/catalog/internal/errors"
)

// inMemory implements ProductStore using an in-memory map. It mirrors the
// predicate, sort and windowing semantics of the PostgreSQL store and is used
// by tests that do not need real infrastructure.
type inMemory struct {
	mu       sync.RWMutex
	products map[int64]Product
	nextID   int64
}

// NewInMemoryStore creates a new instance of ProductStore
func NewInMemoryStore() ProductStore {
	return &inMemory{
		products: make(map[int64]Product),
		nextID:   1,
	}
}

// FindByID retrieves a product by its ID.
func (s *inMemory) FindByID(_ context.Context, id int64) (*Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[id]
	if !ok {
		return nil, perrors.ErrProductNotFound
	}
	return &p, nil
}

// FindAll retrieves all products, newest first.
func (s *inMemory) FindAll(_ context.Context) ([]Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := s.matching(ProductFilter{})
	sortProducts(list, Sort{Field: SortFieldCreatedAt, Desc: true})
	return list, nil
}

// FindPage retrieves the products matching the filter, sorted and windowed.
func (s *inMemory) FindPage(_ context.Context, filter ProductFilter, srt Sort, offset, limit int32) ([]Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := s.matching(filter)
	sortProducts(list, srt)

	if int(offset) >= len(list) {
		return []Product{}, nil
	}
	list = list[offset:]
	if int(limit) < len(list) {
		list = list[:limit]
	}
	return list, nil
}

// Count returns the number of products matching the filter.
func (s *inMemory) Count(_ context.Context, filter ProductFilter) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return int64(len(s.matching(filter))), nil
}

// Create creates a new product and returns it.
func (s *inMemory) Create(_ context.Context, params CreateParams) (*Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	product := Product{
		ID:              s.nextID,
		Name:            params.Name,
		Description:     params.Description,
		Price:           params.Price,
		ImageURL:        params.ImageURL,
		ObjectModelData: params.ObjectModelData,
		Type:            params.Type,
		Category:        params.Category,
		StripeProductID: params.StripeProductID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	s.nextID++
	s.products[product.ID] = product

	return &product, nil
}

// matching returns the products satisfying the filter. Callers must hold the
// read lock.
func (s *inMemory) matching(filter ProductFilter) []Product {
	list := make([]Product, 0, len(s.products))
	for _, p := range s.products {
		if matches(p, filter) {
			list = append(list, p)
		}
	}
	return list
}

// matches applies the filter dimensions as a conjunction.
func matches(p Product, filter ProductFilter) bool {
	if filter.Search != "" {
		needle := strings.ToLower(filter.Search)
		if !strings.Contains(strings.ToLower(p.Name), needle) &&
			!strings.Contains(strings.ToLower(p.Description), needle) {
			return false
		}
	}
	if filter.Category != "" && !containsTag(p.Category, filter.Category) {
		return false
	}
	if filter.Type != "" && !strings.EqualFold(p.Type, filter.Type) {
		return false
	}
	if filter.MinPrice != nil && p.Price < *filter.MinPrice {
		return false
	}
	if filter.MaxPrice != nil && p.Price > *filter.MaxPrice {
		return false
	}
	return true
}

func containsTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}

// sortProducts orders the slice in place. Ties fall back to the ID so the
// ordering is deterministic, matching the stable order of a real store.
func sortProducts(list []Product, srt Sort) {
	sort.Slice(list, func(i, j int) bool {
		a, b := list[i], list[j]
		if srt.Desc {
			a, b = b, a
		}
		switch srt.Field {
		case SortFieldName:
			if a.Name != b.Name {
				return a.Name < b.Name
			}
		case SortFieldPrice:
			if a.Price != b.Price {
				return a.Price < b.Price
			}
		case SortFieldUpdatedAt:
			if !a.UpdatedAt.Equal(b.UpdatedAt) {
				return a.UpdatedAt.Before(b.UpdatedAt)
			}
		default:
			if !a.CreatedAt.Equal(b.CreatedAt) {
				return a.CreatedAt.Before(b.CreatedAt)
			}
		}
		return a.ID < b.ID
	})
}
