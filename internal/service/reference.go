package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/phrazzld/ieop-api/internal/domain"
	"github.com/phrazzld/ieop-api/internal/platform/logger"
	"github.com/phrazzld/ieop-api/internal/platform/vendus"
)

const (
	// maxReferenceProbes is the number of candidates checked before falling
	// back to an unchecked time-based suffix.
	maxReferenceProbes = 10

	fallbackSuffixDigits = 5
)

// ReferenceGenerator derives product references that are free upstream.
type ReferenceGenerator struct {
	upstream Upstream
	now      func() time.Time
	logger   *slog.Logger
}

// NewReferenceGenerator creates a generator probing upstream for existing
// references. A nil clock uses time.Now.
func NewReferenceGenerator(upstream Upstream, clock func() time.Time, logger *slog.Logger) (*ReferenceGenerator, error) {
	if upstream == nil {
		return nil, NewServiceError("reference", "create_service", fmt.Errorf("upstream cannot be nil"))
	}
	if clock == nil {
		clock = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ReferenceGenerator{
		upstream: upstream,
		now:      clock,
		logger:   logger.With(slog.String("component", "reference_generator")),
	}, nil
}

// Generate returns the first free candidate among the base and base-1 to
// base-9. When all ten exist it returns base-<last 5 millis digits> without
// checking it.
func (g *ReferenceGenerator) Generate(ctx context.Context, brand, licensePlate, title string) string {
	base := domain.ReferenceBase(brand, licensePlate, title, g.now())

	for attempt := 0; attempt < maxReferenceProbes; attempt++ {
		candidate := base
		if attempt > 0 {
			candidate = fmt.Sprintf("%s-%d", base, attempt)
		}
		if _, exists := g.Lookup(ctx, candidate); !exists {
			return candidate
		}
	}

	fallback := base + "-" + domain.MillisSuffix(g.now(), fallbackSuffixDigits)
	logger.FromContextOrDefault(ctx, g.logger).WarnContext(ctx, "reference candidates exhausted",
		slog.String("base", base),
		slog.String("reference", fallback))
	return fallback
}

// Lookup returns the upstream product whose reference equals reference.
// Any lookup failure is treated as "not found".
func (g *ReferenceGenerator) Lookup(ctx context.Context, reference string) (any, bool) {
	resp, err := g.upstream.Do(ctx, vendus.Request{
		Resource: "products",
		Query:    url.Values{"reference": {reference}},
	})
	if err != nil {
		logger.FromContextOrDefault(ctx, g.logger).DebugContext(ctx, "reference lookup failed, assuming free",
			slog.String("reference", reference),
			slog.String("error", err.Error()))
		return nil, false
	}
	if !resp.OK() {
		return nil, false
	}

	for _, product := range vendus.NormalizeList(resp.Body) {
		if got, ok := domain.Field(product, "reference").(string); ok && got == reference {
			return product, true
		}
	}
	return nil, false
}
