package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/phrazzld/ieop-api/internal/domain"
	"github.com/phrazzld/ieop-api/internal/events"
	"github.com/phrazzld/ieop-api/internal/platform/logger"
	"github.com/phrazzld/ieop-api/internal/platform/vendus"
)

// ClientService creates storefront clients upstream.
type ClientService interface {
	// CreateClient creates a client from a raw request body and returns the
	// upstream body as-is. The client fields may sit at the top level or in
	// the first nested object that carries any of name, email or phone.
	CreateClient(ctx context.Context, body json.RawMessage) (any, error)
}

type clientServiceImpl struct {
	upstream     Upstream
	eventEmitter events.Emitter
	logger       *slog.Logger
}

// NewClientService creates a ClientService.
// It returns an error if any required dependency is nil.
func NewClientService(upstream Upstream, eventEmitter events.Emitter, logger *slog.Logger) (ClientService, error) {
	if upstream == nil {
		return nil, NewServiceError("client", "create_service", fmt.Errorf("upstream cannot be nil"))
	}
	if eventEmitter == nil {
		return nil, NewServiceError("client", "create_service", fmt.Errorf("event emitter cannot be nil"))
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &clientServiceImpl{
		upstream:     upstream,
		eventEmitter: eventEmitter,
		logger:       logger.With(slog.String("component", "client_service")),
	}, nil
}

// CreateClient implements ClientService.
func (s *clientServiceImpl) CreateClient(ctx context.Context, body json.RawMessage) (any, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if !s.upstream.Configured() {
		return nil, domain.NewError(domain.KindConfigMissing, "Missing VENDUS_API_KEY")
	}

	located, err := locateClientObject(body)
	if err != nil {
		return nil, NewServiceError("client", "create_client", err)
	}
	obj, _ := located.(map[string]any)
	if !domain.Truthy(obj["name"]) {
		return nil, domain.NewValidationError("name", "Missing client name")
	}

	resp, err := s.upstream.Do(ctx, vendus.Request{
		Method:   http.MethodPost,
		Resource: "clients",
		Body:     domain.ClientPayload(obj),
	})
	if err != nil {
		return nil, NewServiceError("client", "create_client", err)
	}
	if !resp.OK() {
		log.WarnContext(ctx, "vendus rejected client creation", slog.Int("status", resp.StatusCode))
		return nil, resp.Failure(domain.KindUpstreamCreateFailed, "", "Failed to create client in Vendus")
	}

	upstreamID := domain.Field(resp.Body, "id")
	log.InfoContext(ctx, "client created", slog.Any("upstream_id", upstreamID))
	emitAudit(ctx, s.eventEmitter, s.logger, events.ClientCreated{UpstreamID: upstreamID})
	return resp.Body, nil
}

// locateClientObject returns the top-level body when it carries a client
// field, else the first direct member value that is an object carrying one,
// in document order, else the decoded body unchanged.
func locateClientObject(raw json.RawMessage) (any, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return map[string]any{}, nil
	}

	body, err := decodeValue(raw)
	if err != nil {
		return nil, err
	}
	obj, ok := body.(map[string]any)
	if !ok || domain.HasClientFields(obj) {
		return body, nil
	}

	members, err := orderedMembers(raw)
	if err != nil {
		return nil, err
	}
	for _, member := range members {
		value, err := decodeValue(member)
		if err != nil {
			return nil, err
		}
		if nested, ok := value.(map[string]any); ok && domain.HasClientFields(nested) {
			return nested, nil
		}
	}
	return body, nil
}

// orderedMembers returns the member values of a JSON object in document order.
func orderedMembers(raw json.RawMessage) ([]json.RawMessage, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	if _, err := dec.Token(); err != nil {
		return nil, err
	}

	var members []json.RawMessage
	for dec.More() {
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, err
		}
		members = append(members, value)
	}
	return members, nil
}

func decodeValue(raw json.RawMessage) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}
