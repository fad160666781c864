package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/ieop-api/internal/api/shared"
	"github.com/phrazzld/ieop-api/internal/service"
)

// ClientHandler handles client-related HTTP requests.
type ClientHandler struct {
	clientService service.ClientService
	logger        *slog.Logger
}

// NewClientHandler creates a new ClientHandler.
func NewClientHandler(clientService service.ClientService, logger *slog.Logger) *ClientHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for ClientHandler")
	}

	return &ClientHandler{
		clientService: clientService,
		logger:        logger.With(slog.String("component", "client_handler")),
	}
}

// CreateClient handles POST /clients requests. The body is forwarded raw:
// the workflow locates the client object inside it.
func (h *ClientHandler) CreateClient(w http.ResponseWriter, r *http.Request) {
	body, err := shared.ReadJSON(r)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	created, err := h.clientService.CreateClient(r.Context(), body)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithData(w, r, http.StatusCreated, created)
}
