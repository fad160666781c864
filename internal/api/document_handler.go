package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/ieop-api/internal/api/shared"
	"github.com/phrazzld/ieop-api/internal/domain"
	"github.com/phrazzld/ieop-api/internal/service"
)

// CreateDocumentRequest represents the request body for issuing a document.
// Fields are validated by the workflow so each missing one is reported by name.
type CreateDocumentRequest struct {
	ClientEmail any `json:"ClientEmail"`
	ItemID      any `json:"ItemId"`
	GrossPrice  any `json:"GrossPrice"`
	Notes       any `json:"Notes"`
}

// DocumentHandler handles document-related HTTP requests.
type DocumentHandler struct {
	documentService service.DocumentService
	logger          *slog.Logger
}

// NewDocumentHandler creates a new DocumentHandler.
func NewDocumentHandler(documentService service.DocumentService, logger *slog.Logger) *DocumentHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for DocumentHandler")
	}

	return &DocumentHandler{
		documentService: documentService,
		logger:          logger.With(slog.String("component", "document_handler")),
	}
}

// ListDocuments handles GET /documents requests.
func (h *DocumentHandler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	documents, err := h.documentService.ListDocuments(r.Context())
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, documents)
}

// CreateDocument handles POST /documents requests.
func (h *DocumentHandler) CreateDocument(w http.ResponseWriter, r *http.Request) {
	var req CreateDocumentRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	receipt, err := h.documentService.CreateDocument(r.Context(), domain.DocumentInput{
		ClientEmail: req.ClientEmail,
		ItemID:      req.ItemID,
		GrossPrice:  req.GrossPrice,
		Notes:       req.Notes,
	})
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithData(w, r, http.StatusCreated, receipt)
}
