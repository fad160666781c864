package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/phrazzld/ieop-api/internal/domain"
	"github.com/phrazzld/ieop-api/internal/events"
	"github.com/phrazzld/ieop-api/internal/platform/logger"
	"github.com/phrazzld/ieop-api/internal/platform/vendus"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// DefaultUnitTitle is the upstream unit every created product is sold in.
const DefaultUnitTitle = "Uni"

// ProductService lists storefront products and creates new ones upstream.
type ProductService interface {
	// ListProducts returns the in-stock products in upstream order.
	ListProducts(ctx context.Context) ([]domain.EssentialProduct, error)

	// CreateProduct validates the catalog references, resolves a unique
	// reference and creates the product. It returns the upstream body as-is.
	CreateProduct(ctx context.Context, input domain.ProductInput) (any, error)
}

type productServiceImpl struct {
	upstream     Upstream
	references   *ReferenceGenerator
	eventEmitter events.Emitter
	logger       *slog.Logger
}

// NewProductService creates a ProductService.
// It returns an error if any required dependency is nil.
func NewProductService(
	upstream Upstream,
	references *ReferenceGenerator,
	eventEmitter events.Emitter,
	logger *slog.Logger,
) (ProductService, error) {
	if upstream == nil {
		return nil, NewServiceError("product", "create_service", fmt.Errorf("upstream cannot be nil"))
	}
	if references == nil {
		return nil, NewServiceError("product", "create_service", fmt.Errorf("reference generator cannot be nil"))
	}
	if eventEmitter == nil {
		return nil, NewServiceError("product", "create_service", fmt.Errorf("event emitter cannot be nil"))
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &productServiceImpl{
		upstream:     upstream,
		references:   references,
		eventEmitter: eventEmitter,
		logger:       logger.With(slog.String("component", "product_service")),
	}, nil
}

// ListProducts implements ProductService.
func (s *productServiceImpl) ListProducts(ctx context.Context) ([]domain.EssentialProduct, error) {
	resp, err := s.upstream.Fetch(ctx, vendus.Request{Resource: "products"},
		domain.KindUpstreamCallFailed.Code(), "Failed to fetch products")
	if err != nil {
		return nil, NewServiceError("product", "list_products", err)
	}

	records := vendus.NormalizeList(resp.Body)
	products := make([]domain.EssentialProduct, 0, len(records))
	for _, raw := range records {
		product := domain.ProjectProduct(raw)
		if product.InStock() {
			products = append(products, product)
		}
	}

	logger.FromContextOrDefault(ctx, s.logger).DebugContext(ctx, "products listed",
		slog.Int("upstream_count", len(records)),
		slog.Int("in_stock_count", len(products)))
	return products, nil
}

// CreateProduct implements ProductService.
func (s *productServiceImpl) CreateProduct(ctx context.Context, input domain.ProductInput) (any, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var category, brand *domain.LookupEntity
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		category, err = categoryLookup.find(gctx, s.upstream, input.Category)
		return err
	})
	g.Go(func() error {
		var err error
		brand, err = brandLookup.find(gctx, s.upstream, input.Brand)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, NewServiceError("product", "create_product", err)
	}

	unit, err := unitLookup.find(ctx, s.upstream, DefaultUnitTitle)
	if err != nil {
		return nil, NewServiceError("product", "create_product", err)
	}

	reference := input.Reference
	if reference != "" {
		if existing, exists := s.references.Lookup(ctx, reference); exists {
			return nil, domain.NewError(domain.KindProductAlreadyExists,
				fmt.Sprintf("Product with reference '%s' already exists in Vendus", reference)).
				WithDetails(map[string]any{
					"id":        domain.Field(existing, "id"),
					"reference": domain.Field(existing, "reference"),
					"title":     domain.Field(existing, "title"),
				})
		}
	} else {
		brandTitle := brand.TitleText()
		if brandTitle == "" {
			brandTitle = input.Brand
		}
		reference = s.references.Generate(ctx, brandTitle, input.LicensePlate, input.Title)
	}

	payload, err := newProductPayload(input, reference, category, brand, unit)
	if err != nil {
		return nil, err
	}

	resp, err := s.upstream.Do(ctx, vendus.Request{
		Method:   http.MethodPost,
		Resource: "products",
		Body:     payload,
	})
	if err != nil {
		return nil, NewServiceError("product", "create_product", err)
	}
	if !resp.OK() {
		log.WarnContext(ctx, "vendus rejected product creation",
			slog.String("reference", reference),
			slog.Int("status", resp.StatusCode))
		return nil, resp.Failure(domain.KindUpstreamCreateFailed, "", "Failed to create product in Vendus")
	}

	log.InfoContext(ctx, "product created",
		slog.String("reference", reference),
		slog.Any("upstream_id", domain.Field(resp.Body, "id")))
	emitAudit(ctx, s.eventEmitter, s.logger, events.ProductCreated{
		UpstreamID: domain.Field(resp.Body, "id"),
		Reference:  reference,
		Title:      payload.Title,
	})
	return resp.Body, nil
}

// productPayload is the upstream product creation body.
type productPayload struct {
	Reference    string  `json:"reference"`
	Title        string  `json:"title"`
	CategoryID   any     `json:"category_id"`
	BrandID      any     `json:"brand_id"`
	UnitID       any     `json:"unit_id"`
	Status       string  `json:"status"`
	TypeID       string  `json:"type_id"`
	StockControl string  `json:"stock_control"`
	StockType    string  `json:"stock_type"`
	TaxID        string  `json:"tax_id"`
	Description  string  `json:"description,omitempty"`
	SupplyPrice  *string `json:"supply_price,omitempty"`
	GrossPrice   *string `json:"gross_price,omitempty"`
	TaxExemption string  `json:"tax_exemption,omitempty"`
}

func newProductPayload(
	input domain.ProductInput,
	reference string,
	category, brand, unit *domain.LookupEntity,
) (*productPayload, error) {
	supplyPrice, err := priceString("supply_price", input.SupplyPrice)
	if err != nil {
		return nil, err
	}
	grossPrice, err := priceString("gross_price", input.GrossPrice)
	if err != nil {
		return nil, err
	}

	taxID := input.TaxID
	if taxID == "" {
		taxID = domain.DefaultTaxID
	}

	return &productPayload{
		Reference:    reference,
		Title:        input.ProductTitle(),
		CategoryID:   category.ID,
		BrandID:      brand.ID,
		UnitID:       unit.ID,
		Status:       "on",
		TypeID:       "P",
		StockControl: "1",
		StockType:    "M",
		TaxID:        taxID,
		Description:  input.Description,
		SupplyPrice:  supplyPrice,
		GrossPrice:   grossPrice,
		TaxExemption: input.TaxExemption,
	}, nil
}

// priceString renders a price as the decimal string the upstream expects.
// Numbers are printed in their shortest exact form; strings pass through.
func priceString(field string, v any) (*string, error) {
	var s string
	switch p := v.(type) {
	case nil:
		return nil, nil
	case json.Number:
		s = p.String()
		if d, err := decimal.NewFromString(s); err == nil {
			s = d.String()
		}
	case float64:
		s = decimal.NewFromFloat(p).String()
	case string:
		s = p
	case bool:
		s = strconv.FormatBool(p)
	default:
		return nil, domain.NewValidationError(field, fmt.Sprintf("%s must be a number or a string", field))
	}
	return &s, nil
}
