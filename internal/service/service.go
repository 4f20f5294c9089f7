// Package service provides the implementation of catalog business logic:
// product creation with best-effort Stripe registration, filtered listing and
// lookup.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nostruffes/catalog/internal/store"
	"golang.org/x/sync/errgroup"
)

// CatalogService defines the methods for managing the product catalog.
// It abstracts the underlying business logic and data access.
type CatalogService interface {
	// Create validates nothing itself (the transport layer does); it performs
	// a best-effort registration with the payment API and then persists the
	// product. The product is persisted whatever the registration outcome.
	Create(ctx context.Context, product ProductCreateDto) (*ProductCreateResult, error)

	// ListWithFilters returns one page of products matching the query,
	// together with pagination and sorting metadata.
	ListWithFilters(ctx context.Context, query ProductQueryDto) (*ProductPageDto, error)

	// FindAll returns all available products, newest first.
	FindAll(ctx context.Context) ([]ProductDto, error)

	// FindByID retrieves a single product by its unique identifier.
	// Returns ErrProductNotFound if no product exists with the given ID.
	FindByID(ctx context.Context, id int64) (*ProductDto, error)
}

// ProductRegistrar is the external product registration capability. The
// concrete implementation talks to the payment API over HTTP.
type ProductRegistrar interface {
	// RegisterProduct makes a single registration attempt and returns the
	// Stripe product identifier. Any failure (unsuccessful response, timeout,
	// transport error) is reported as an error; no retries are made.
	RegisterProduct(ctx context.Context, reg ProductRegistration) (string, error)
}

// ProductRegistration carries the product attributes sent to the payment API.
type ProductRegistration struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       float64         `json:"price"`
	Images      json.RawMessage `json:"images,omitempty"`
}

// Service implements CatalogService.
type Service struct {
	repository store.ProductStore
	registrar  ProductRegistrar
	logger     *slog.Logger
}

// NewService creates a new instance of CatalogService with the provided
// repository and registrar.
func NewService(repo store.ProductStore, registrar ProductRegistrar, logger *slog.Logger) *Service {
	return &Service{
		repository: repo,
		registrar:  registrar,
		logger:     logger.With("component", "service"),
	}
}

// ProductCreateDto represents the data transfer object for creating a new product.
// Price uses `required`, so a zero price counts as missing.
type ProductCreateDto struct {
	Name            string          `json:"name"            validate:"required"`
	Description     string          `json:"description"     validate:"required"`
	Price           float64         `json:"price"           validate:"required"`
	ImageURL        json.RawMessage `json:"imageUrl,omitempty"`
	ObjectModelData json.RawMessage `json:"objectModelData,omitempty"`
	Type            string          `json:"type"            validate:"required"`
	Category        []string        `json:"category"        validate:"required,min=1"`
}

// ProductDto represents the data transfer object for a product.
// StripeProductID is null when the external registration did not succeed;
// that state is permanent, no backfill happens.
type ProductDto struct {
	ID              int64           `json:"id"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	Price           float64         `json:"price"`
	ImageURL        json.RawMessage `json:"imageUrl,omitempty"`
	ObjectModelData json.RawMessage `json:"objectModelData,omitempty"`
	Type            string          `json:"type"`
	Category        []string        `json:"category"`
	StripeProductID *string         `json:"stripeProductId"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// ProductCreateResult is the outcome of a creation: the persisted product and
// whether the Stripe registration succeeded.
type ProductCreateResult struct {
	Product      *ProductDto
	Synchronized bool
}

// ProductQueryDto represents a filtered listing request.
type ProductQueryDto struct {
	Page      int         `json:"page"`
	SortBy    string      `json:"sortBy"`
	SortOrder string      `json:"sortOrder"`
	Filters   *FilterSpec `json:"filters"`
}

// FilterSpec is the loosely-typed filter specification as it arrives on the
// wire. MinPrice and MaxPrice accept numbers or numeric strings.
type FilterSpec struct {
	Search   string `json:"search,omitempty"`
	Category string `json:"category,omitempty"`
	Type     string `json:"type,omitempty"`
	MinPrice any    `json:"minPrice,omitempty"`
	MaxPrice any    `json:"maxPrice,omitempty"`
}

// PaginationDto carries page metadata for a listing response.
type PaginationDto struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalCount  int64 `json:"totalCount"`
	Limit       int   `json:"limit"`
	HasNextPage bool  `json:"hasNextPage"`
	HasPrevPage bool  `json:"hasPrevPage"`
}

// SortingDto reports the effective sort field and direction after whitelist
// fallback.
type SortingDto struct {
	SortBy    string `json:"sortBy"`
	SortOrder string `json:"sortOrder"`
}

// ProductPageDto is one page of products plus response metadata.
type ProductPageDto struct {
	Products       []ProductDto
	Pagination     PaginationDto
	Sorting        SortingDto
	AppliedFilters *FilterSpec
	FiltersApplied bool
}

// Create performs the creation workflow: best-effort Stripe registration
// first, then the persistence write. The registration outcome must be known
// before the write because the (possibly nil) Stripe ID is stored with the
// product. A registration failure never fails the creation.
func (s *Service) Create(ctx context.Context, product ProductCreateDto) (*ProductCreateResult, error) {
	stripeID := s.registerProduct(ctx, product)

	created, err := s.repository.Create(ctx, store.CreateParams{
		Name:            product.Name,
		Description:     product.Description,
		Price:           product.Price,
		ImageURL:        product.ImageURL,
		ObjectModelData: product.ObjectModelData,
		Type:            product.Type,
		Category:        product.Category,
		StripeProductID: stripeID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return &ProductCreateResult{
		Product:      toDto(created),
		Synchronized: created.StripeProductID != nil,
	}, nil
}

// registerProduct makes the single best-effort registration attempt. Failures
// are logged and absorbed; the product is then stored without an external ID
// and no retry ever happens.
func (s *Service) registerProduct(ctx context.Context, product ProductCreateDto) *string {
	stripeID, err := s.registrar.RegisterProduct(ctx, ProductRegistration{
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price,
		Images:      product.ImageURL,
	})
	if err != nil {
		s.logger.WarnContext(ctx, "Stripe product registration failed, continuing without external ID",
			"name", product.Name, "error", err)
		return nil
	}
	return &stripeID
}

// ListWithFilters compiles the filter specification into a store predicate,
// plans the page window, and issues the paged read and the total count
// concurrently. The two reads share no transaction, so under concurrent
// writes the count and the page contents may come from slightly different
// snapshots.
func (s *Service) ListWithFilters(ctx context.Context, query ProductQueryDto) (*ProductPageDto, error) {
	filter, err := compileFilter(query.Filters)
	if err != nil {
		return nil, err
	}
	plan := planPage(query.Page, query.SortBy, query.SortOrder)

	var products []store.Product
	var total int64

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		products, err = s.repository.FindPage(gCtx, filter, plan.Sort, plan.Offset, pageLimit)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = s.repository.Count(gCtx, filter)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to fetch product page: %w", err)
	}

	page := &ProductPageDto{
		Products:       toDtos(products),
		Pagination:     paginationFor(plan.Page, total),
		Sorting:        SortingDto{SortBy: plan.SortBy, SortOrder: plan.SortOrder},
		FiltersApplied: !filter.Empty(),
	}
	if page.FiltersApplied {
		page.AppliedFilters = query.Filters
	}
	return page, nil
}

// FindAll retrieves a list of all products and returns them as ProductDTOs.
func (s *Service) FindAll(ctx context.Context) ([]ProductDto, error) {
	products, err := s.repository.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	return toDtos(products), nil
}

// FindByID retrieves a product by its ID and returns it as a ProductDto.
// Returns ErrProductNotFound if no product exists with the given ID.
func (s *Service) FindByID(ctx context.Context, id int64) (*ProductDto, error) {
	product, err := s.repository.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch product by ID %d: %w", id, err)
	}
	return toDto(product), nil
}

// toDto converts a store.Product to a ProductDto.
func toDto(product *store.Product) *ProductDto {
	return &ProductDto{
		ID:              product.ID,
		Name:            product.Name,
		Description:     product.Description,
		Price:           product.Price,
		ImageURL:        product.ImageURL,
		ObjectModelData: product.ObjectModelData,
		Type:            product.Type,
		Category:        product.Category,
		StripeProductID: product.StripeProductID,
		CreatedAt:       product.CreatedAt,
		UpdatedAt:       product.UpdatedAt,
	}
}

func toDtos(products []store.Product) []ProductDto {
	dtos := make([]ProductDto, len(products))
	for i, item := range products {
		dtos[i] = *toDto(&item)
	}
	return dtos
}
