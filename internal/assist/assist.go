// Package assist turns a free-text request into actionable guidance: the
// classified intent, extracted entities, nearby service locations, and
// inclusivity adjustments for the user's area. It is the conversational
// front door; the structured intake endpoint remains the source of truth
// for planning.
package assist

import (
	"context"
	"log/slog"

	"pathways/internal/intent"
	"pathways/internal/lookup"
	dErrors "pathways/pkg/domain-errors"
	"pathways/pkg/requestcontext"
)

// Fallback postcode when the message names no area; Parramatta sits near
// the demographic median of the served region.
const defaultPostcode = "2150"

const nearestServicesLimit = 3

// Lookup provides the reference datasets guidance draws on.
type Lookup interface {
	SearchServices(query, postcode string) []lookup.Location
	InclusivityAdjustments(postcode string) lookup.Adjustments
}

// Guidance is the structured response for one request.
type Guidance struct {
	Intent           intent.Intent      `json:"intent"`
	Entities         intent.Entities    `json:"entities"`
	SuggestedBabyDOB string             `json:"suggested_baby_dob,omitempty"`
	NearestServices  []lookup.Location  `json:"nearest_services"`
	Inclusivity      lookup.Adjustments `json:"inclusivity"`
}

// Service classifies messages and enriches them from the lookup datasets.
type Service struct {
	lookup Lookup
	logger *slog.Logger
}

func New(l Lookup, logger *slog.Logger) *Service {
	return &Service{lookup: l, logger: logger}
}

// Guide analyzes one message.
func (s *Service) Guide(ctx context.Context, message string) (*Guidance, error) {
	if message == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "message is required")
	}

	detected := intent.Extract(message)
	entities := intent.ExtractEntities(message)

	postcode := entities.Postcode
	if postcode == "" {
		postcode = defaultPostcode
	}

	guidance := &Guidance{
		Intent:      detected,
		Entities:    entities,
		Inclusivity: s.lookup.InclusivityAdjustments(postcode),
	}
	if entities.DaysAgo != nil && (detected == intent.IntentBirthRegistration || detected == intent.IntentBirthRelated) {
		guidance.SuggestedBabyDOB = intent.DateFromDaysAgo(requestcontext.Now(ctx), *entities.DaysAgo)
	}

	services := s.lookup.SearchServices(string(detected), postcode)
	if len(services) > nearestServicesLimit {
		services = services[:nearestServicesLimit]
	}
	if services == nil {
		services = []lookup.Location{}
	}
	guidance.NearestServices = services

	s.logger.InfoContext(ctx, "guidance generated",
		"intent", detected, "postcode", postcode, "services", len(services))
	return guidance, nil
}
