package service

import "github.com/nostruffes/catalog/internal/store"

// pageLimit is the fixed page size of filtered listings.
const pageLimit = 12

// sortFields whitelists the sortable fields; anything else falls back to
// createdAt.
var sortFields = map[string]store.SortField{
	"name":      store.SortFieldName,
	"price":     store.SortFieldPrice,
	"createdAt": store.SortFieldCreatedAt,
	"updatedAt": store.SortFieldUpdatedAt,
}

// pagePlan is the resolved window and ordering of a listing request.
type pagePlan struct {
	Page      int
	Offset    int32
	Sort      store.Sort
	SortBy    string
	SortOrder string
}

// planPage resolves the requested page, sort field and direction. Page
// numbers below 1 clamp to 1; unknown sort fields fall back to createdAt; any
// direction other than "asc" is descending.
func planPage(page int, sortBy, sortOrder string) pagePlan {
	if page < 1 {
		page = 1
	}
	field, ok := sortFields[sortBy]
	if !ok {
		field = store.SortFieldCreatedAt
	}
	desc := sortOrder != "asc"
	order := "asc"
	if desc {
		order = "desc"
	}
	return pagePlan{
		Page:      page,
		Offset:    int32((page - 1) * pageLimit),
		Sort:      store.Sort{Field: field, Desc: desc},
		SortBy:    string(field),
		SortOrder: order,
	}
}

// paginationFor computes the page metadata for a total row count.
func paginationFor(page int, total int64) PaginationDto {
	totalPages := int((total + pageLimit - 1) / pageLimit)
	return PaginationDto{
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalCount:  total,
		Limit:       pageLimit,
		HasNextPage: page < totalPages,
		HasPrevPage: page > 1,
	}
}
