package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nostruffes/catalog/internal/store"
)

func Test_PlanPage(t *testing.T) {
	testCases := []struct {
		name      string
		page      int
		sortBy    string
		sortOrder string
		expected  pagePlan
	}{
		{
			name: "defaults: page 1, createdAt descending",
			expected: pagePlan{
				Page: 1, Offset: 0,
				Sort:   store.Sort{Field: store.SortFieldCreatedAt, Desc: true},
				SortBy: "createdAt", SortOrder: "desc",
			},
		},
		{
			name: "page 3 skips two pages",
			page: 3,
			expected: pagePlan{
				Page: 3, Offset: 24,
				Sort:   store.Sort{Field: store.SortFieldCreatedAt, Desc: true},
				SortBy: "createdAt", SortOrder: "desc",
			},
		},
		{
			name: "negative page clamps to 1",
			page: -4,
			expected: pagePlan{
				Page: 1, Offset: 0,
				Sort:   store.Sort{Field: store.SortFieldCreatedAt, Desc: true},
				SortBy: "createdAt", SortOrder: "desc",
			},
		},
		{
			name:   "whitelisted sort field ascending",
			page:   1,
			sortBy: "price", sortOrder: "asc",
			expected: pagePlan{
				Page: 1, Offset: 0,
				Sort:   store.Sort{Field: store.SortFieldPrice, Desc: false},
				SortBy: "price", SortOrder: "asc",
			},
		},
		{
			name:   "unknown sort field falls back to createdAt",
			page:   1,
			sortBy: "popularity", sortOrder: "asc",
			expected: pagePlan{
				Page: 1, Offset: 0,
				Sort:   store.Sort{Field: store.SortFieldCreatedAt, Desc: false},
				SortBy: "createdAt", SortOrder: "asc",
			},
		},
		{
			name:   "anything but asc is descending",
			page:   1,
			sortBy: "name", sortOrder: "ASC",
			expected: pagePlan{
				Page: 1, Offset: 0,
				Sort:   store.Sort{Field: store.SortFieldName, Desc: true},
				SortBy: "name", SortOrder: "desc",
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, planPage(tc.page, tc.sortBy, tc.sortOrder))
		})
	}
}

func Test_PaginationFor(t *testing.T) {
	testCases := []struct {
		name     string
		page     int
		total    int64
		expected PaginationDto
	}{
		{
			name: "empty catalog",
			page: 1, total: 0,
			expected: PaginationDto{CurrentPage: 1, TotalPages: 0, TotalCount: 0, Limit: 12},
		},
		{
			name: "exactly one page",
			page: 1, total: 12,
			expected: PaginationDto{CurrentPage: 1, TotalPages: 1, TotalCount: 12, Limit: 12},
		},
		{
			name: "13 rows need two pages",
			page: 1, total: 13,
			expected: PaginationDto{CurrentPage: 1, TotalPages: 2, TotalCount: 13, Limit: 12, HasNextPage: true},
		},
		{
			name: "last page has prev but no next",
			page: 2, total: 20,
			expected: PaginationDto{CurrentPage: 2, TotalPages: 2, TotalCount: 20, Limit: 12, HasPrevPage: true},
		},
		{
			name: "middle page has both",
			page: 2, total: 25,
			expected: PaginationDto{CurrentPage: 2, TotalPages: 3, TotalCount: 25, Limit: 12, HasNextPage: true, HasPrevPage: true},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, paginationFor(tc.page, tc.total))
		})
	}
}
