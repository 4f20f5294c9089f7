package store

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	perrors "github.com/nostruffes/catalog/internal/errors"
)

func seedProduct(t *testing.T, s ProductStore, name, description, typ string, price float64, category []string) *Product {
	t.Helper()
	created, err := s.Create(context.Background(), CreateParams{
		Name:        name,
		Description: description,
		Price:       price,
		Type:        typ,
		Category:    category,
	})
	require.NoError(t, err)
	return created
}

func Test_InMemory_CreateAndFindByID(t *testing.T) {
	// given
	s := NewInMemoryStore()
	stripeID := "prod_1"
	// when
	created, err := s.Create(context.Background(), CreateParams{
		Name:            "Truffle",
		Description:     "dark",
		Price:           9.99,
		Type:            "food",
		Category:        []string{"sweets"},
		StripeProductID: &stripeID,
	})
	// then
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	found, err := s.FindByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, found)

	_, err = s.FindByID(context.Background(), 42)
	assert.ErrorIs(t, err, perrors.ErrProductNotFound)
}

func Test_InMemory_FilterDimensions(t *testing.T) {
	// given
	s := NewInMemoryStore()
	truffle := seedProduct(t, s, "Dark Truffle", "cocoa ganache", "food", 12, []string{"sweets", "gift"})
	praline := seedProduct(t, s, "Praline", "hazelnut TRUFFLE filling", "food", 30, []string{"sweets"})
	mold := seedProduct(t, s, "Truffle Mold", "polycarbonate", "tool", 55, []string{"equipment"})

	testCases := []struct {
		name     string
		filter   ProductFilter
		expected []int64
	}{
		{
			name:     "empty filter matches everything",
			filter:   ProductFilter{},
			expected: []int64{truffle.ID, praline.ID, mold.ID},
		},
		{
			name:     "search matches name or description, case-insensitively",
			filter:   ProductFilter{Search: "truffle"},
			expected: []int64{truffle.ID, praline.ID, mold.ID},
		},
		{
			name:     "category is membership, not equality",
			filter:   ProductFilter{Category: "gift"},
			expected: []int64{truffle.ID},
		},
		{
			name:     "type matches case-insensitively",
			filter:   ProductFilter{Type: "FOOD"},
			expected: []int64{truffle.ID, praline.ID},
		},
		{
			name:     "price bounds are inclusive",
			filter:   ProductFilter{MinPrice: boundPtr(12), MaxPrice: boundPtr(30)},
			expected: []int64{truffle.ID, praline.ID},
		},
		{
			name:     "dimensions combine as a conjunction",
			filter:   ProductFilter{Search: "truffle", Type: "food", MinPrice: boundPtr(20)},
			expected: []int64{praline.ID},
		},
		{
			name:     "conjunction with no survivors",
			filter:   ProductFilter{Category: "equipment", MaxPrice: boundPtr(20)},
			expected: []int64{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// when
			products, err := s.FindPage(context.Background(), tc.filter, Sort{Field: SortFieldCreatedAt}, 0, 100)
			// then
			require.NoError(t, err)
			ids := make([]int64, 0, len(products))
			for _, p := range products {
				ids = append(ids, p.ID)
			}
			assert.ElementsMatch(t, tc.expected, ids)

			count, err := s.Count(context.Background(), tc.filter)
			require.NoError(t, err)
			assert.Equal(t, int64(len(tc.expected)), count)
		})
	}
}

func Test_InMemory_SortAndWindow(t *testing.T) {
	// given: 20 products priced 1..20
	s := NewInMemoryStore()
	for i := 1; i <= 20; i++ {
		seedProduct(t, s, fmt.Sprintf("Product %02d", i), "d", "food", float64(i), []string{"c"})
	}

	// when: second page of 12, cheapest first
	page, err := s.FindPage(context.Background(), ProductFilter{}, Sort{Field: SortFieldPrice}, 12, 12)

	// then: the remaining 8
	require.NoError(t, err)
	require.Len(t, page, 8)
	assert.Equal(t, 13.0, page[0].Price)
	assert.Equal(t, 20.0, page[7].Price)

	// when: descending by name
	page, err = s.FindPage(context.Background(), ProductFilter{}, Sort{Field: SortFieldName, Desc: true}, 0, 3)

	// then
	require.NoError(t, err)
	require.Len(t, page, 3)
	assert.Equal(t, "Product 20", page[0].Name)
	assert.Equal(t, "Product 19", page[1].Name)
	assert.Equal(t, "Product 18", page[2].Name)

	// when: the window starts past the end
	page, err = s.FindPage(context.Background(), ProductFilter{}, Sort{Field: SortFieldPrice}, 40, 12)

	// then
	require.NoError(t, err)
	assert.Empty(t, page)
}

func Test_InMemory_FindAll_NewestFirst(t *testing.T) {
	// given
	s := NewInMemoryStore()
	first := seedProduct(t, s, "First", "d", "food", 1, []string{"c"})
	second := seedProduct(t, s, "Second", "d", "food", 2, []string{"c"})

	// when
	all, err := s.FindAll(context.Background())

	// then
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, second.ID, all[0].ID)
	assert.Equal(t, first.ID, all[1].ID)
}

func boundPtr(f float64) *float64 {
	return &f
}
