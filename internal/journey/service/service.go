// Package service orchestrates life-event journeys: classifying intakes,
// planning step sequences, prefilling agency forms, and recording
// submissions. Every state change leaves an artifact in the vault and an
// event in the audit ledger.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"pathways/internal/audit"
	"pathways/internal/forms"
	"pathways/internal/journey"
	"pathways/internal/journey/store"
	"pathways/internal/paths"
	"pathways/internal/platform/metrics"
	"pathways/internal/vault"
	dErrors "pathways/pkg/domain-errors"
	"pathways/pkg/platform/sentinel"
	"pathways/pkg/requestcontext"
)

// Prefill is the review payload returned for a planned step: only the
// fields that resolved against the intake, never nulls for misses. The
// user reviews and completes the rest.
type Prefill struct {
	FormID     string         `json:"form_id"`
	StepID     string         `json:"step_id"`
	Fields     map[string]any `json:"fields"`
	ReviewText string         `json:"review_text"`
}

// Submission acknowledges a recorded form submission.
type Submission struct {
	JourneyID   string    `json:"journey_id"`
	StepID      string    `json:"step_id"`
	Reference   string    `json:"reference"`
	Status      string    `json:"status"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// CleanupResult reports one TTL cleanup pass.
type CleanupResult struct {
	RemovedJourneys []string `json:"removed_journeys"`
	TTLDays         int      `json:"ttl_days"`
}

// Service wires the journey store, form registry, artifact vault, and
// audit ledger into the orchestration operations the handlers expose.
type Service struct {
	store   store.Store
	forms   *forms.Registry
	vault   *vault.Store
	ledger  *audit.Ledger
	metrics *metrics.Metrics
	logger  *slog.Logger

	artifactTTLDays int
}

// New builds a Service. metrics may be nil in tests.
func New(s store.Store, registry *forms.Registry, v *vault.Store, ledger *audit.Ledger, m *metrics.Metrics, logger *slog.Logger, artifactTTLDays int) *Service {
	return &Service{
		store:           s,
		forms:           registry,
		vault:           v,
		ledger:          ledger,
		metrics:         m,
		logger:          logger,
		artifactTTLDays: artifactTTLDays,
	}
}

// PlanJourney validates the intake, classifies the life event, derives the
// journey id, and persists journey state, the intake artifact, and a
// journey_created audit event. Planning the same intake twice lands on the
// same id; state and artifacts are overwritten in place, so retries are
// idempotent rather than duplicated.
//
// Writes are ordered artifact, state, audit. A failure before the audit
// write aborts with nothing the caller can see: a journey only becomes
// observable once its creation is on the audit trail.
func (s *Service) PlanJourney(ctx context.Context, intake *journey.Intake, jurisdiction string) (*journey.Journey, error) {
	if intake == nil {
		return nil, dErrors.New(dErrors.CodeBadRequest, "intake is required")
	}
	if err := intake.Validate(); err != nil {
		return nil, err
	}

	now := requestcontext.Now(ctx)
	lifeEvent := Classify(intake)
	journeyID := deriveJourneyID(intake, lifeEvent, now)

	j := &journey.Journey{
		ID:           journeyID,
		LifeEvent:    lifeEvent,
		Jurisdiction: jurisdiction,
		Steps:        stepsFor(lifeEvent, jurisdiction),
		CreatedAt:    now,
	}

	if err := s.vault.Save(ctx, vault.JourneyPath(journeyID, "intake", "intake.json"), intake, "intake"); err != nil {
		return nil, err
	}
	if err := s.store.SaveIntake(ctx, journeyID, intake); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeStorageFailure, "save intake")
	}
	if err := s.store.SaveJourney(ctx, j); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeStorageFailure, "save journey")
	}

	if _, err := s.ledger.LogEvent(ctx, "system", audit.ActionJourneyCreated,
		fmt.Sprintf("New %s journey initiated", lifeEvent), "", map[string]any{
			"journey_id":   journeyID,
			"life_event":   string(lifeEvent),
			"jurisdiction": jurisdiction,
			"step_count":   len(j.Steps),
		}); err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.JourneysPlanned.WithLabelValues(string(lifeEvent)).Inc()
	}
	s.logger.InfoContext(ctx, "journey planned",
		"journey_id", journeyID, "life_event", lifeEvent, "steps", len(j.Steps))
	return j, nil
}

// GetJourney returns the current journey state.
func (s *Service) GetJourney(ctx context.Context, journeyID string) (*journey.Journey, error) {
	j, err := s.store.FindJourney(ctx, journeyID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "journey not found: "+journeyID)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeStorageFailure, "find journey")
	}
	return j, nil
}

// PrefillForm resolves the step's schema sources against the stored intake
// and returns the review payload. Fields whose source path is missing or
// empty in the intake are omitted, required or not; the gap surfaces to the
// user at review time instead of failing the call. Prefill is read-only on
// journey state but leaves a prefill artifact for the audit trail.
func (s *Service) PrefillForm(ctx context.Context, journeyID, stepID string) (*Prefill, error) {
	if _, err := s.GetJourney(ctx, journeyID); err != nil {
		return nil, err
	}
	intake, err := s.store.FindIntake(ctx, journeyID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "intake not found for journey: "+journeyID)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeStorageFailure, "find intake")
	}

	schema, err := s.forms.Load(stepID)
	if err != nil {
		return nil, err
	}

	fields := map[string]any{}
	for _, field := range schema.Fields {
		if value, ok := paths.Resolve(intake, field.Source); ok {
			fields[field.ID] = value
		}
	}

	prefill := &Prefill{
		FormID:     schema.ID,
		StepID:     stepID,
		Fields:     fields,
		ReviewText: schema.ReviewText,
	}
	artifactPath := vault.JourneyPath(journeyID, "prefill", stepID+"_prefill.json")
	if err := s.vault.Save(ctx, artifactPath, prefill, "prefill"); err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.FormsPrefilled.WithLabelValues(stepID).Inc()
	}
	s.logger.InfoContext(ctx, "form prefilled",
		"journey_id", journeyID, "step", stepID, "resolved_fields", len(fields))
	return prefill, nil
}

// SubmitForm records a user-confirmed submission: it generates the
// reference, writes the submission artifact, appends a form_submitted audit
// event, and marks the step completed with the artifact attached. The step
// must exist on the journey and must not already be terminal.
func (s *Service) SubmitForm(ctx context.Context, journeyID, stepID string, formData map[string]any) (*Submission, error) {
	if !s.forms.Known(stepID) {
		return nil, dErrors.New(dErrors.CodeNotFound, "unknown step: "+stepID)
	}
	if _, err := s.GetJourney(ctx, journeyID); err != nil {
		return nil, err
	}
	if formData == nil {
		formData = map[string]any{}
	}

	now := requestcontext.Now(ctx)
	reference := generateReference(stepID, journeyID, now)

	submission := map[string]any{
		"journey_id":   journeyID,
		"step_id":      stepID,
		"form_data":    formData,
		"reference":    reference,
		"status":       "submitted",
		"submitted_at": now,
	}
	artifactPath := vault.JourneyPath(journeyID, "submissions", stepID+"_submission.json")
	if err := s.vault.Save(ctx, artifactPath, submission, "submission"); err != nil {
		return nil, err
	}

	if _, err := s.ledger.LogEvent(ctx, "user", audit.ActionFormSubmitted,
		fmt.Sprintf("User submitted %s form", stepID), "", map[string]any{
			"journey_id": journeyID,
			"step_id":    stepID,
			"reference":  reference,
		}); err != nil {
		return nil, err
	}

	ref := journey.ArtifactRef{
		Type:      "submission",
		Path:      artifactPath,
		CreatedAt: now,
		StepID:    stepID,
	}
	if _, err := s.store.MutateStep(ctx, journeyID, stepID, func(step *journey.Step) error {
		if err := step.Transition(journey.StepStatusCompleted); err != nil {
			return err
		}
		step.AttachArtifact(ref)
		return nil
	}); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "step not on journey: "+stepID)
		}
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.FormsSubmitted.WithLabelValues(stepID).Inc()
	}
	s.logger.InfoContext(ctx, "form submitted",
		"journey_id", journeyID, "step", stepID, "reference", reference)
	return &Submission{
		JourneyID:   journeyID,
		StepID:      stepID,
		Reference:   reference,
		Status:      "submitted",
		SubmittedAt: now,
	}, nil
}

// GrantConsent records a consent grant for the journey and returns the
// consent id.
func (s *Service) GrantConsent(ctx context.Context, journeyID string, scope []string, userIdentifier, signature string) (string, error) {
	if _, err := s.GetJourney(ctx, journeyID); err != nil {
		return "", err
	}
	consentID, err := s.ledger.LogConsent(ctx, journeyID, scope, userIdentifier, signature)
	if err != nil {
		return "", err
	}
	if s.metrics != nil {
		s.metrics.ConsentsGranted.Inc()
	}
	return consentID, nil
}

// Cleanup removes journeys whose artifacts have outlived the retention
// window, drops their keyed state, and records the run on the audit trail.
func (s *Service) Cleanup(ctx context.Context) (*CleanupResult, error) {
	removed, err := s.vault.CleanupExpired(ctx, s.artifactTTLDays)
	if err != nil {
		return nil, err
	}
	for _, journeyID := range removed {
		if err := s.store.DeleteJourney(ctx, journeyID); err != nil {
			s.logger.WarnContext(ctx, "journey state not deleted during cleanup",
				"journey_id", journeyID, "error", err.Error())
		}
	}

	if _, err := s.ledger.LogEvent(ctx, "system", audit.ActionCleanupRun,
		"TTL cleanup removed expired journeys", "", map[string]any{
			"removed_count": len(removed),
			"ttl_days":      s.artifactTTLDays,
		}); err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.CleanupRuns.Inc()
		s.metrics.JourneysReaped.Add(float64(len(removed)))
	}
	if removed == nil {
		removed = []string{}
	}
	return &CleanupResult{RemovedJourneys: removed, TTLDays: s.artifactTTLDays}, nil
}
