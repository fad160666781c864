package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/ieop-api/internal/domain"
	"github.com/phrazzld/ieop-api/internal/events"
	"github.com/phrazzld/ieop-api/internal/platform/logger"
	"github.com/phrazzld/ieop-api/internal/platform/vendus"
)

// Upstream is the subset of the Vendus client the workflows depend on.
// *vendus.Client satisfies it.
type Upstream interface {
	// Configured reports whether an API key is available.
	Configured() bool

	// Do performs one call and returns the response for any HTTP status.
	Do(ctx context.Context, req vendus.Request) (*vendus.Response, error)

	// Fetch performs one call and fails with the given code on a non-2xx status.
	Fetch(ctx context.Context, req vendus.Request, code, message string) (*vendus.Response, error)
}

var _ Upstream = (*vendus.Client)(nil)

// catalogLookup describes one upstream lookup list validated by title.
type catalogLookup struct {
	resource    string
	failCode    string
	failMessage string
	notFound    domain.Kind
	label       string
}

var (
	categoryLookup = catalogLookup{
		resource:    "products/categories",
		failCode:    "VENDUS_CATEGORIES_FAILED",
		failMessage: "Failed to fetch categories",
		notFound:    domain.KindCategoryNotFound,
		label:       "Category",
	}
	brandLookup = catalogLookup{
		resource:    "products/brands",
		failCode:    "VENDUS_BRANDS_FAILED",
		failMessage: "Failed to fetch brands",
		notFound:    domain.KindBrandNotFound,
		label:       "Brand",
	}
	unitLookup = catalogLookup{
		resource:    "products/units",
		failCode:    "VENDUS_UNITS_FAILED",
		failMessage: "Failed to fetch units",
		notFound:    domain.KindUnitNotFound,
		label:       "Unit",
	}
)

// find fetches the lookup list and returns the entry whose title matches,
// ignoring case. A miss lists the available titles in the error details.
func (l catalogLookup) find(ctx context.Context, up Upstream, title string) (*domain.LookupEntity, error) {
	resp, err := up.Fetch(ctx, vendus.Request{Resource: l.resource}, l.failCode, l.failMessage)
	if err != nil {
		return nil, err
	}

	found, available := domain.FindByTitle(vendus.NormalizeList(resp.Body), title)
	if found == nil {
		return nil, domain.NewNotFoundError(l.notFound,
			fmt.Sprintf("%s '%s' not found in Vendus", l.label, title), available)
	}
	return found, nil
}

// emitAudit publishes a write event. Failures are logged and never reach the caller.
func emitAudit(ctx context.Context, emitter events.Emitter, fallback *slog.Logger, payload events.Payload) {
	event := events.New(payload)
	if err := emitter.Emit(ctx, event); err != nil {
		logger.FromContextOrDefault(ctx, fallback).WarnContext(ctx, "failed to emit audit event",
			slog.String("event_type", event.Type),
			slog.String("event_id", event.ID.String()),
			slog.String("error", err.Error()))
	}
}
