// Package rest provides HTTP handlers for catalog operations.
package rest

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	catalogerrors "github.com/nostruffes/catalog/internal/errors"
	"github.com/nostruffes/catalog/internal/service"
	"github.com/nostruffes/catalog/pkg/web"
)

type Handler struct {
	service  service.CatalogService
	validate *validator.Validate
	logger   *slog.Logger
}

// NewHandler creates a new instance of the catalog API with the provided service.
func NewHandler(service service.CatalogService, logger *slog.Logger) *Handler {
	return &Handler{
		service:  service,
		validate: validator.New(),
		logger:   logger.With("component", "rest"),
	}
}

// RegisterRoutes registers the HTTP routes for the catalog service.
func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api", func(r chi.Router) {
		r.Get("/", h.Welcome)

		r.Route("/product", func(r chi.Router) {
			r.Post("/createProduct", h.Create)
			r.Post("/getAllProducts", h.FindAll)
			r.Get("/getProductById/{id}", h.FindByID)
			r.Post("/getProductsWithFilters", h.ListWithFilters)
		})
	})

	r.Get("/healthz", h.HealthCheck)
}

// response is the envelope shared by all catalog endpoints.
type response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data"`
	Error   string `json:"error,omitempty"`
}

// createData is the payload of a successful creation. StripeIntegration
// reports whether the external registration succeeded; "failed" still means
// the product was created.
type createData struct {
	ID                int64   `json:"id"`
	StripeProductID   *string `json:"stripeProductId"`
	StripeIntegration string  `json:"stripeIntegration"`
}

// listResponse extends the envelope with listing metadata.
type listResponse struct {
	Success        bool                  `json:"success"`
	Message        string                `json:"message"`
	Data           []service.ProductDto  `json:"data"`
	Pagination     service.PaginationDto `json:"pagination"`
	AppliedFilters *service.FilterSpec   `json:"appliedFilters"`
	FiltersApplied bool                  `json:"filtersApplied"`
	Sorting        service.SortingDto    `json:"sorting"`
}

// Create handles the creation of a new product. Validation failures are
// rejected before any side effect; a failed Stripe registration is not a
// failure, it only shows up as stripeIntegration: "failed".
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	var productCreateDto service.ProductCreateDto
	if err := json.NewDecoder(r.Body).Decode(&productCreateDto); err != nil {
		mLogger.ErrorContext(r.Context(), "Error decoding request body", "error", err)
		h.respondFailure(w, mLogger, http.StatusBadRequest, "Invalid request body", "")
		return
	}
	mLogger.DebugContext(r.Context(), "Received request to create product", "name", productCreateDto.Name)
	if err := h.validate.Struct(productCreateDto); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			missing := make([]string, 0, len(validationErrors))
			for _, fieldErr := range validationErrors {
				missing = append(missing, strings.ToLower(fieldErr.Field()[:1])+fieldErr.Field()[1:])
			}
			mLogger.WarnContext(r.Context(), "Validation errors occurred", "fields", missing)
			h.respondFailure(w, mLogger, http.StatusBadRequest,
				"The fields name, description, price, type and category are required",
				"missing or invalid: "+strings.Join(missing, ", "))
			return
		}
		mLogger.ErrorContext(r.Context(), "Error validating request body", "error", err)
		h.respondFailure(w, mLogger, http.StatusBadRequest, "Invalid request body", "")
		return
	}

	result, err := h.service.Create(r.Context(), productCreateDto)
	if err != nil {
		mLogger.ErrorContext(r.Context(), "Error creating product", "error", err)
		h.respondFailure(w, mLogger, http.StatusInternalServerError, "Error creating product", "")
		return
	}

	integration := "failed"
	if result.Synchronized {
		integration = "success"
	}
	mLogger.InfoContext(r.Context(), "Product created successfully",
		"ID", result.Product.ID, "stripe_integration", integration)
	web.RespondJSON(w, mLogger, http.StatusCreated, response{
		Success: true,
		Message: "Product created successfully",
		Data: createData{
			ID:                result.Product.ID,
			StripeProductID:   result.Product.StripeProductID,
			StripeIntegration: integration,
		},
	})
}

// FindAll retrieves a list of all products.
func (h *Handler) FindAll(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	products, err := h.service.FindAll(r.Context())
	if err != nil {
		mLogger.ErrorContext(r.Context(), "Error retrieving product list", "error", err)
		h.respondFailure(w, mLogger, http.StatusInternalServerError, "Error retrieving products", "")
		return
	}
	mLogger.DebugContext(r.Context(), "Successfully retrieved product list", "count", len(products))
	web.RespondJSON(w, mLogger, http.StatusOK, response{
		Success: true,
		Message: "Products retrieved successfully",
		Data:    products,
	})
}

// FindByID retrieves a product by its ID. A missing product is a 404, which
// is distinct from a store failure (500).
func (h *Handler) FindByID(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.respondFailure(w, mLogger, http.StatusBadRequest, "Invalid product ID", "")
		return
	}

	mLogger.DebugContext(r.Context(), "Received request to find product by ID", "ID", id)
	found, err := h.service.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, catalogerrors.ErrProductNotFound) {
			mLogger.WarnContext(r.Context(), "Product not found", "ID", id)
			h.respondFailure(w, mLogger, http.StatusNotFound, "Product not found", "")
			return
		}
		mLogger.ErrorContext(r.Context(), "Error retrieving product", "ID", id, "error", err)
		h.respondFailure(w, mLogger, http.StatusInternalServerError, "Error retrieving product", "")
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, response{
		Success: true,
		Message: "Product retrieved successfully",
		Data:    found,
	})
}

// ListWithFilters returns one page of products matching the posted query. An
// empty body is a valid request for page 1 with no filters.
func (h *Handler) ListWithFilters(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	var query service.ProductQueryDto
	if err := json.NewDecoder(r.Body).Decode(&query); err != nil && !errors.Is(err, io.EOF) {
		mLogger.ErrorContext(r.Context(), "Error decoding request body", "error", err)
		h.respondFailure(w, mLogger, http.StatusBadRequest, "Invalid request body", "")
		return
	}

	page, err := h.service.ListWithFilters(r.Context(), query)
	if err != nil {
		if errors.Is(err, catalogerrors.ErrInvalidFilter) {
			mLogger.WarnContext(r.Context(), "Invalid filter specification", "error", err)
			h.respondFailure(w, mLogger, http.StatusBadRequest, "Invalid filter parameters", err.Error())
			return
		}
		mLogger.ErrorContext(r.Context(), "Error retrieving products with filters", "error", err)
		h.respondFailure(w, mLogger, http.StatusInternalServerError, "Error retrieving products with filters", "")
		return
	}

	message := "All products retrieved successfully"
	if page.FiltersApplied {
		message = "Products retrieved successfully with filters"
	}
	web.RespondJSON(w, mLogger, http.StatusOK, listResponse{
		Success:        true,
		Message:        message,
		Data:           page.Products,
		Pagination:     page.Pagination,
		AppliedFilters: page.AppliedFilters,
		FiltersApplied: page.FiltersApplied,
		Sorting:        page.Sorting,
	})
}

// Welcome is the API root greeting.
func (h *Handler) Welcome(w http.ResponseWriter, r *http.Request) {
	web.RespondJSON(w, h.loggerWithReqID(r), http.StatusOK, map[string]string{"hello": "Welcome to Nos Truffes API !"})
}

// HealthCheck is a simple health check endpoint.
func (h *Handler) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) respondFailure(w http.ResponseWriter, logger *slog.Logger, status int, message, detail string) {
	web.RespondJSON(w, logger, status, response{
		Success: false,
		Message: message,
		Data:    nil,
		Error:   detail,
	})
}

// loggerWithReqID creates a logger with the request ID from the context.
func (h *Handler) loggerWithReqID(r *http.Request) *slog.Logger {
	reqID := middleware.GetReqID(r.Context())
	return h.logger.With("request_id", reqID)
}
