package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/ieop-api/internal/api/shared"
	"github.com/phrazzld/ieop-api/internal/domain"
	"github.com/phrazzld/ieop-api/internal/platform/logger"
	"github.com/phrazzld/ieop-api/internal/service"
)

// CreateProductRequest represents the request body for creating a product.
type CreateProductRequest struct {
	Title        string `json:"title" validate:"required"`
	Category     string `json:"category" validate:"required"`
	Brand        string `json:"brand" validate:"required"`
	Reference    string `json:"reference"`
	LicensePlate string `json:"license_plate"`
	Description  string `json:"description"`
	SupplyPrice  any    `json:"supply_price"`
	GrossPrice   any    `json:"gross_price"`
	TaxID        string `json:"tax_id"`
	TaxExemption string `json:"tax_exemption"`
	// Image is accepted and never forwarded upstream.
	Image any `json:"image"`
}

// toInput converts the request into the workflow input.
func (req CreateProductRequest) toInput() domain.ProductInput {
	return domain.ProductInput{
		Title:        req.Title,
		Category:     req.Category,
		Brand:        req.Brand,
		Reference:    req.Reference,
		LicensePlate: req.LicensePlate,
		Description:  req.Description,
		SupplyPrice:  req.SupplyPrice,
		GrossPrice:   req.GrossPrice,
		TaxID:        req.TaxID,
		TaxExemption: req.TaxExemption,
	}
}

// ProductHandler handles product-related HTTP requests.
type ProductHandler struct {
	productService service.ProductService
	logger         *slog.Logger
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(productService service.ProductService, logger *slog.Logger) *ProductHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for ProductHandler")
	}

	return &ProductHandler{
		productService: productService,
		logger:         logger.With(slog.String("component", "product_handler")),
	}
}

// ListProducts handles GET /products requests.
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.productService.ListProducts(r.Context())
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, products)
}

// CreateProduct handles POST /products requests.
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreateProductRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		HandleAPIError(w, r, err)
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		HandleAPIError(w, r, err)
		return
	}
	if req.Image != nil {
		log.Debug("product image ignored", slog.String("title", req.Title))
	}

	created, err := h.productService.CreateProduct(r.Context(), req.toInput())
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithData(w, r, http.StatusCreated, created)
}
