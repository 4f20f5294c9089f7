package service

import (
	"fmt"

	perrors "github.com/nostruffes/catalog/internal/errors"
	"github.com/nostruffes/catalog/internal/store"
	"github.com/spf13/cast"
)

// compileFilter turns the loosely-typed wire specification into an immutable
// store predicate. Price bounds are parsed independently; a bound that is
// present but not numeric fails the whole query with ErrInvalidFilter rather
// than silently widening or narrowing the result set.
func compileFilter(spec *FilterSpec) (store.ProductFilter, error) {
	if spec == nil {
		return store.ProductFilter{}, nil
	}

	filter := store.ProductFilter{
		Search:   spec.Search,
		Category: spec.Category,
		Type:     spec.Type,
	}

	var err error
	if filter.MinPrice, err = parsePriceBound("minPrice", spec.MinPrice); err != nil {
		return store.ProductFilter{}, err
	}
	if filter.MaxPrice, err = parsePriceBound("maxPrice", spec.MaxPrice); err != nil {
		return store.ProductFilter{}, err
	}
	return filter, nil
}

// parsePriceBound accepts JSON numbers and numeric strings; nil means the
// bound is absent.
func parsePriceBound(name string, value any) (*float64, error) {
	if value == nil {
		return nil, nil
	}
	bound, err := cast.ToFloat64E(value)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be numeric, got %v", perrors.ErrInvalidFilter, name, value)
	}
	return &bound, nil
}
