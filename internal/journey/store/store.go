// Package store persists journeys and their accepted intake records.
//
// Stores are interface-driven so the orchestrator and handlers never care
// whether the backing is in-memory (dev, tests) or Redis (durable keyed
// store). Artifacts live in the vault, not here; this store holds the
// mutable journey state and the immutable intake snapshot.
package store

import (
	"context"

	"pathways/internal/journey"
)

type Store interface {
	SaveJourney(ctx context.Context, j *journey.Journey) error
	FindJourney(ctx context.Context, journeyID string) (*journey.Journey, error)

	SaveIntake(ctx context.Context, journeyID string, intake *journey.Intake) error
	FindIntake(ctx context.Context, journeyID string) (*journey.Intake, error)

	// MutateStep loads the journey, applies fn to the named step, and
	// persists the result, returning the updated journey. The validate and
	// mutate happen under whatever atomicity the backend offers; see each
	// implementation for its guarantees.
	MutateStep(ctx context.Context, journeyID, stepID string, fn func(*journey.Step) error) (*journey.Journey, error)

	// DeleteJourney removes the journey and its intake. Used by TTL cleanup.
	DeleteJourney(ctx context.Context, journeyID string) error
}
