// Package handler exposes the journey orchestration API over HTTP.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"pathways/internal/audit"
	"pathways/internal/journey"
	"pathways/internal/journey/service"
	"pathways/internal/vault"
	dErrors "pathways/pkg/domain-errors"
	"pathways/pkg/platform/httputil"
	"pathways/pkg/requestcontext"
)

// Default trail page size; callers may narrow with filters or raise limit.
const auditTrailLimit = 50

// Service defines the orchestration operations the handler exposes.
type Service interface {
	PlanJourney(ctx context.Context, intake *journey.Intake, jurisdiction string) (*journey.Journey, error)
	GetJourney(ctx context.Context, journeyID string) (*journey.Journey, error)
	PrefillForm(ctx context.Context, journeyID, stepID string) (*service.Prefill, error)
	SubmitForm(ctx context.Context, journeyID, stepID string, formData map[string]any) (*service.Submission, error)
	GrantConsent(ctx context.Context, journeyID string, scope []string, userIdentifier, signature string) (string, error)
	Cleanup(ctx context.Context) (*service.CleanupResult, error)
}

// Auditor reads the audit trail and consent ledger.
type Auditor interface {
	Trail(ctx context.Context, filter audit.TrailFilter) ([]audit.Event, error)
	ConsentSummary(ctx context.Context) (audit.Summary, error)
}

// Artifacts lists stored artifact metadata.
type Artifacts interface {
	List(ctx context.Context, journeyID string) ([]vault.Meta, error)
	Stats(ctx context.Context) (vault.Stats, error)
}

// Handler wires journey endpoints to the orchestration service.
type Handler struct {
	service   Service
	auditor   Auditor
	artifacts Artifacts
	logger    *slog.Logger
}

// New constructs a journey handler with its dependencies.
func New(service Service, auditor Auditor, artifacts Artifacts, logger *slog.Logger) *Handler {
	return &Handler{
		service:   service,
		auditor:   auditor,
		artifacts: artifacts,
		logger:    logger,
	}
}

// Register mounts journey endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/intake", h.HandleIntake)
	r.Get("/plan/{journeyID}", h.HandlePlan)
	r.Post("/prefill/{journeyID}/{stepID}", h.HandlePrefill)
	r.Post("/submit/{journeyID}/{stepID}", h.HandleSubmit)
	r.Post("/consent/{journeyID}", h.HandleConsent)
	r.Get("/artifacts", h.HandleArtifacts)
	r.Get("/audit", h.HandleAudit)
	r.Post("/cleanup", h.HandleCleanup)
	r.Get("/health", h.HandleHealth)
}

// HandleIntake handles POST /intake requests.
func (h *Handler) HandleIntake(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()

	req, ok := httputil.Decode[IntakeRequest](w, r)
	if !ok {
		return
	}
	req.Normalize()

	j, err := h.service.PlanJourney(ctx, &req.Intake, req.Jurisdiction)
	if err != nil {
		h.logger.ErrorContext(ctx, "journey planning failed", "error", err)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "intake accepted",
		"journey_id", j.ID,
		"life_event", j.LifeEvent,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusCreated, j)
}

// HandlePlan handles GET /plan/{journeyID} requests.
func (h *Handler) HandlePlan(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	j, err := h.service.GetJourney(ctx, chi.URLParam(r, "journeyID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, j)
}

// HandlePrefill handles POST /prefill/{journeyID}/{stepID} requests.
func (h *Handler) HandlePrefill(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	journeyID := chi.URLParam(r, "journeyID")
	stepID := chi.URLParam(r, "stepID")

	prefill, err := h.service.PrefillForm(ctx, journeyID, stepID)
	if err != nil {
		h.logger.ErrorContext(ctx, "prefill failed",
			"journey_id", journeyID, "step", stepID, "error", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, prefill)
}

// HandleSubmit handles POST /submit/{journeyID}/{stepID} requests.
func (h *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	journeyID := chi.URLParam(r, "journeyID")
	stepID := chi.URLParam(r, "stepID")

	req, ok := httputil.Decode[SubmitRequest](w, r)
	if !ok {
		return
	}

	submission, err := h.service.SubmitForm(ctx, journeyID, stepID, req.FormData)
	if err != nil {
		h.logger.ErrorContext(ctx, "submission failed",
			"journey_id", journeyID, "step", stepID, "error", err)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "submission recorded",
		"journey_id", journeyID, "step", stepID, "reference", submission.Reference)
	httputil.WriteJSON(w, http.StatusOK, submission)
}

// HandleConsent handles POST /consent/{journeyID} requests.
func (h *Handler) HandleConsent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	journeyID := chi.URLParam(r, "journeyID")

	req, ok := httputil.Decode[ConsentRequest](w, r)
	if !ok {
		return
	}
	if err := req.Validate(); err != nil {
		httputil.WriteError(w, err)
		return
	}

	consentID, err := h.service.GrantConsent(ctx, journeyID, req.Scope, req.UserIdentifier, req.Signature)
	if err != nil {
		h.logger.ErrorContext(ctx, "consent grant failed",
			"journey_id", journeyID, "error", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, ConsentResponse{
		ConsentID: consentID,
		JourneyID: journeyID,
		Scope:     req.Scope,
	})
}

// HandleArtifacts handles GET /artifacts requests. An optional journey_id
// query scopes the listing.
func (h *Handler) HandleArtifacts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	metas, err := h.artifacts.List(ctx, r.URL.Query().Get("journey_id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	stats, err := h.artifacts.Stats(ctx)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, ArtifactsResponse{Artifacts: metas, Stats: stats})
}

// HandleAudit handles GET /audit requests. Optional journey_id, action,
// start, and end queries filter the trail; start and end take RFC 3339.
// limit caps the returned page, defaulting to 50.
func (h *Handler) HandleAudit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	limit := auditTrailLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "limit must be a positive integer"))
			return
		}
		limit = n
	}

	filter := audit.TrailFilter{
		JourneyID: r.URL.Query().Get("journey_id"),
		Action:    r.URL.Query().Get("action"),
	}
	var err error
	if filter.Start, err = parseTimeParam(r, "start"); err != nil {
		httputil.WriteError(w, err)
		return
	}
	if filter.End, err = parseTimeParam(r, "end"); err != nil {
		httputil.WriteError(w, err)
		return
	}

	events, err := h.auditor.Trail(ctx, filter)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	total := len(events)
	if len(events) > limit {
		events = events[:limit]
	}
	summary, err := h.auditor.ConsentSummary(ctx)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, AuditResponse{
		Events:         events,
		Total:          total,
		Returned:       len(events),
		ConsentSummary: summary,
	})
}

// HandleCleanup handles POST /cleanup requests.
func (h *Handler) HandleCleanup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	result, err := h.service.Cleanup(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "cleanup failed", "error", err)
		httputil.WriteError(w, err)
		return
	}
	h.logger.InfoContext(ctx, "cleanup complete",
		"removed", len(result.RemovedJourneys),
		"actor", requestcontext.Actor(ctx),
	)
	httputil.WriteJSON(w, http.StatusOK, result)
}

// HandleHealth handles GET /health requests.
func (h *Handler) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func parseTimeParam(r *http.Request, name string) (time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid "+name+" timestamp")
	}
	return t, nil
}
