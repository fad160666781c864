package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/phrazzld/ieop-api/internal/config"
	"github.com/phrazzld/ieop-api/internal/domain"
	"github.com/phrazzld/ieop-api/internal/events"
	"github.com/phrazzld/ieop-api/internal/platform/logger"
	"github.com/phrazzld/ieop-api/internal/platform/vendus"
)

// DocumentService lists and issues invoice documents upstream.
type DocumentService interface {
	// ListDocuments returns the upstream document list as-is.
	ListDocuments(ctx context.Context) (any, error)

	// CreateDocument issues a one-line invoice for the client with the given
	// email and returns the projected upstream document.
	CreateDocument(ctx context.Context, input domain.DocumentInput) (*domain.DocumentReceipt, error)
}

type documentServiceImpl struct {
	upstream        Upstream
	registerID      string
	paymentMethodID int64
	eventEmitter    events.Emitter
	logger          *slog.Logger
}

// NewDocumentService creates a DocumentService issuing documents on the
// register and with the payment method configured in cfg.
// It returns an error if any required dependency is nil.
func NewDocumentService(
	upstream Upstream,
	cfg config.VendusConfig,
	eventEmitter events.Emitter,
	logger *slog.Logger,
) (DocumentService, error) {
	if upstream == nil {
		return nil, NewServiceError("document", "create_service", fmt.Errorf("upstream cannot be nil"))
	}
	if eventEmitter == nil {
		return nil, NewServiceError("document", "create_service", fmt.Errorf("event emitter cannot be nil"))
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &documentServiceImpl{
		upstream:        upstream,
		registerID:      strings.TrimSpace(cfg.RegisterID),
		paymentMethodID: cfg.PaymentMethodID,
		eventEmitter:    eventEmitter,
		logger:          logger.With(slog.String("component", "document_service")),
	}, nil
}

// ListDocuments implements DocumentService.
func (s *documentServiceImpl) ListDocuments(ctx context.Context) (any, error) {
	resp, err := s.upstream.Fetch(ctx, vendus.Request{Resource: "documents"},
		"VENDUS_FETCH_FAILED", "Failed to fetch documents from Vendus")
	if err != nil {
		return nil, NewServiceError("document", "list_documents", err)
	}
	return resp.Body, nil
}

// CreateDocument implements DocumentService.
func (s *documentServiceImpl) CreateDocument(
	ctx context.Context,
	input domain.DocumentInput,
) (*domain.DocumentReceipt, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if !s.upstream.Configured() {
		return nil, domain.NewError(domain.KindConfigMissing, "Missing VENDUS_API_KEY")
	}
	registerID, err := s.parseRegisterID()
	if err != nil {
		return nil, err
	}

	email, ok := input.ClientEmail.(string)
	if !ok || email == "" {
		return nil, domain.NewValidationError("ClientEmail", "Missing client email")
	}
	if input.ItemID == nil {
		return nil, domain.NewValidationError("ItemId", "Missing item id")
	}
	if input.GrossPrice == nil {
		return nil, domain.NewValidationError("GrossPrice", "Missing gross price")
	}

	client, err := s.findClient(ctx, email)
	if err != nil {
		return nil, NewServiceError("document", "create_document", err)
	}

	notes := domain.OrNil(input.Notes)
	if notes == nil {
		notes = ""
	}
	payload := documentPayload{
		RegisterID: registerID,
		Items:      []documentItem{{ID: input.ItemID, Qty: 1, GrossPrice: input.GrossPrice}},
		Client:     documentClient{ID: client.ID, Name: client.Name, Email: client.Email},
		Mode:       domain.DocumentMode,
		Payments:   []documentPayment{{ID: s.paymentMethodID}},
		Notes:      notes,
	}

	resp, err := s.upstream.Do(ctx, vendus.Request{
		Method:   http.MethodPost,
		Resource: "documents",
		Body:     payload,
	})
	if err != nil {
		return nil, NewServiceError("document", "create_document", err)
	}
	if !resp.OK() {
		failure := classifyDocumentFailure(resp)
		log.WarnContext(ctx, "vendus rejected document creation",
			slog.Int("status", resp.StatusCode),
			slog.String("code", failure.Code))
		return nil, failure
	}

	receipt := domain.NewDocumentReceipt(resp.Body)
	log.InfoContext(ctx, "document created",
		slog.Any("upstream_id", receipt.ID),
		slog.Any("number", receipt.Number))
	emitAudit(ctx, s.eventEmitter, s.logger, events.DocumentCreated{
		UpstreamID:   receipt.ID,
		DocumentType: receipt.Type,
		Number:       receipt.Number,
		ClientID:     client.ID,
	})
	return &receipt, nil
}

func (s *documentServiceImpl) parseRegisterID() (int64, error) {
	if s.registerID == "" {
		return 0, domain.NewError(domain.KindConfigMissing, "Missing VENDUS_REGISTER_ID")
	}
	id, err := strconv.ParseInt(s.registerID, 10, 64)
	if err != nil {
		return 0, domain.NewError(domain.KindConfigMissing, "Invalid VENDUS_REGISTER_ID").WithCause(err)
	}
	return id, nil
}

// findClient resolves the upstream client whose email matches, ignoring case.
func (s *documentServiceImpl) findClient(ctx context.Context, email string) (*domain.Client, error) {
	resp, err := s.upstream.Fetch(ctx, vendus.Request{
		Resource: "clients",
		Query:    url.Values{"email": {email}},
	}, "VENDUS_CLIENTS_FAILED", "Failed to fetch clients")
	if err != nil {
		return nil, err
	}

	found, candidates := domain.FindClientByEmail(vendus.NormalizeList(resp.Body), email)
	if found == nil {
		return nil, domain.NewNotFoundError(domain.KindClientNotFound,
			fmt.Sprintf("Client '%s' not found in Vendus", email), candidates)
	}
	return found, nil
}

// classifyDocumentFailure maps a rejected document creation to its error kind
// from the first upstream error entry.
func classifyDocumentFailure(resp *vendus.Response) *domain.Error {
	kind := domain.KindDocumentCreationFailed
	message := fmt.Sprintf("Failed to create document in Vendus (%d)", resp.StatusCode)

	first := domain.Field(resp.Body, "errors", 0)
	upstreamMessage := domain.Field(first, "message")
	switch {
	case domain.Field(first, "code") == domain.UpstreamErrorRegister:
		if domain.Field(upstreamMessage, "type") == domain.UpstreamMessageTrialReached {
			kind = domain.KindTrialLimitReached
			message = "Vendus trial document limit reached"
		} else {
			kind = domain.KindRegisterNotConfigured
			message = "Vendus register not configured: create an 'API' register in the backoffice and set VENDUS_REGISTER_ID"
		}
	case domain.Truthy(upstreamMessage):
		if text, ok := upstreamMessage.(string); ok {
			message = text
		} else if nested := domain.Field(upstreamMessage, "message"); domain.Truthy(nested) {
			message = domain.Text(nested)
		}
	}

	var details any = resp.Body
	if resp.Malformed || !domain.Truthy(resp.Body) {
		details = resp.Raw
	}
	return domain.NewUpstreamError(kind, resp.StatusCode, message, details)
}

type documentPayload struct {
	RegisterID int64             `json:"register_id"`
	Items      []documentItem    `json:"items"`
	Client     documentClient    `json:"client"`
	Mode       string            `json:"mode"`
	Payments   []documentPayment `json:"payments"`
	Notes      any               `json:"notes"`
}

type documentItem struct {
	ID         any `json:"id"`
	Qty        int `json:"qty"`
	GrossPrice any `json:"gross_price"`
}

type documentClient struct {
	ID    any `json:"id"`
	Name  any `json:"name"`
	Email any `json:"email"`
}

type documentPayment struct {
	ID int64 `json:"id"`
}
