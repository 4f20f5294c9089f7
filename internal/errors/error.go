// Package errors provides custom error types for catalog operations.
package errors

import "errors"

var (
	// ErrProductNotFound is returned when a lookup finds no matching product.
	ErrProductNotFound = errors.New("product not found")

	// ErrInvalidFilter is returned when a filter specification carries a
	// numeric bound that cannot be parsed.
	ErrInvalidFilter = errors.New("invalid filter specification")
)
