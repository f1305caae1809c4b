package assist

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"pathways/pkg/platform/httputil"
)

// AssistRequest carries the user's free-text message.
type AssistRequest struct {
	Message string `json:"message"`
}

// Handler exposes the guidance endpoint.
type Handler struct {
	service *Service
	logger  *slog.Logger
}

func NewHandler(service *Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the assist endpoint on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/assist", h.HandleAssist)
}

// HandleAssist handles POST /assist requests.
func (h *Handler) HandleAssist(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, ok := httputil.Decode[AssistRequest](w, r)
	if !ok {
		return
	}

	guidance, err := h.service.Guide(ctx, req.Message)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, guidance)
}
