package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	perrors "github.com/nostruffes/catalog/internal/errors"
	"github.com/nostruffes/catalog/internal/store"
)

func Test_CompileFilter(t *testing.T) {
	testCases := []struct {
		name        string
		spec        *FilterSpec
		expected    store.ProductFilter
		expectError bool
	}{
		{
			name:     "nil spec compiles to the match-all predicate",
			spec:     nil,
			expected: store.ProductFilter{},
		},
		{
			name:     "empty spec compiles to the match-all predicate",
			spec:     &FilterSpec{},
			expected: store.ProductFilter{},
		},
		{
			name: "all dimensions carried over",
			spec: &FilterSpec{Search: "truffle", Category: "sweets", Type: "food", MinPrice: 10, MaxPrice: 50},
			expected: store.ProductFilter{
				Search:   "truffle",
				Category: "sweets",
				Type:     "food",
				MinPrice: floatPtr(10),
				MaxPrice: floatPtr(50),
			},
		},
		{
			name:     "numeric strings are accepted as bounds",
			spec:     &FilterSpec{MinPrice: "12.5"},
			expected: store.ProductFilter{MinPrice: floatPtr(12.5)},
		},
		{
			name:     "bounds are parsed independently",
			spec:     &FilterSpec{MaxPrice: 99.5},
			expected: store.ProductFilter{MaxPrice: floatPtr(99.5)},
		},
		{
			name:        "unparsable min bound is rejected",
			spec:        &FilterSpec{MinPrice: "cheap"},
			expectError: true,
		},
		{
			name:        "unparsable max bound is rejected",
			spec:        &FilterSpec{MaxPrice: map[string]any{"lte": 50}},
			expectError: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// when
			filter, err := compileFilter(tc.spec)
			// then
			if tc.expectError {
				assert.ErrorIs(t, err, perrors.ErrInvalidFilter)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, filter)
			assert.Equal(t, tc.expected.Empty(), filter.Empty())
		})
	}
}

func floatPtr(f float64) *float64 {
	return &f
}
