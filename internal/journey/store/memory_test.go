package store

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"

	"pathways/internal/journey"
	"pathways/pkg/platform/sentinel"
)

type InMemorySuite struct {
	suite.Suite
	ctx   context.Context
	store *InMemory
}

func TestInMemorySuite(t *testing.T) {
	suite.Run(t, new(InMemorySuite))
}

func (s *InMemorySuite) SetupTest() {
	s.ctx = context.Background()
	s.store = NewInMemory()
}

func (s *InMemorySuite) seed() *journey.Journey {
	j := &journey.Journey{
		ID:        "journey_abc",
		LifeEvent: journey.LifeEventBabyJustBorn,
		Steps: []journey.Step{
			{ID: "birth_reg", Status: journey.StepStatusPending},
			{ID: "medicare_enrolment", Status: journey.StepStatusPending},
		},
	}
	s.Require().NoError(s.store.SaveJourney(s.ctx, j))
	return j
}

func (s *InMemorySuite) TestSaveAndFind() {
	s.seed()

	found, err := s.store.FindJourney(s.ctx, "journey_abc")
	s.Require().NoError(err)
	s.Equal("journey_abc", found.ID)

	_, err = s.store.FindJourney(s.ctx, "journey_zzz")
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *InMemorySuite) TestReturnedJourneyIsACopy() {
	s.seed()

	first, err := s.store.FindJourney(s.ctx, "journey_abc")
	s.Require().NoError(err)
	first.Steps[0].Status = journey.StepStatusFailed

	second, err := s.store.FindJourney(s.ctx, "journey_abc")
	s.Require().NoError(err)
	s.Equal(journey.StepStatusPending, second.Steps[0].Status)
}

func (s *InMemorySuite) TestIntake() {
	intake := &journey.Intake{Parent1: &journey.Person{FullName: "Jane Doe"}}
	s.Require().NoError(s.store.SaveIntake(s.ctx, "journey_abc", intake))

	found, err := s.store.FindIntake(s.ctx, "journey_abc")
	s.Require().NoError(err)
	s.Equal("Jane Doe", found.Parent1.FullName)

	_, err = s.store.FindIntake(s.ctx, "journey_zzz")
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *InMemorySuite) TestMutateStep() {
	s.seed()

	updated, err := s.store.MutateStep(s.ctx, "journey_abc", "birth_reg", func(step *journey.Step) error {
		return step.Transition(journey.StepStatusCompleted)
	})
	s.Require().NoError(err)
	s.Equal(journey.StepStatusCompleted, updated.Step("birth_reg").Status)

	persisted, err := s.store.FindJourney(s.ctx, "journey_abc")
	s.Require().NoError(err)
	s.Equal(journey.StepStatusCompleted, persisted.Step("birth_reg").Status)

	_, err = s.store.MutateStep(s.ctx, "journey_abc", "passport_renewal", func(*journey.Step) error { return nil })
	s.ErrorIs(err, sentinel.ErrNotFound)

	_, err = s.store.MutateStep(s.ctx, "journey_zzz", "birth_reg", func(*journey.Step) error { return nil })
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *InMemorySuite) TestMutateStepRejectionLeavesStateUntouched() {
	s.seed()

	_, err := s.store.MutateStep(s.ctx, "journey_abc", "birth_reg", func(step *journey.Step) error {
		s.Require().NoError(step.Transition(journey.StepStatusCompleted))
		return nil
	})
	s.Require().NoError(err)

	_, err = s.store.MutateStep(s.ctx, "journey_abc", "birth_reg", func(step *journey.Step) error {
		return step.Transition(journey.StepStatusInProgress)
	})
	s.Require().Error(err)

	persisted, err := s.store.FindJourney(s.ctx, "journey_abc")
	s.Require().NoError(err)
	s.Equal(journey.StepStatusCompleted, persisted.Step("birth_reg").Status)
}

func (s *InMemorySuite) TestDeleteJourney() {
	s.seed()
	s.Require().NoError(s.store.SaveIntake(s.ctx, "journey_abc", &journey.Intake{}))

	s.Require().NoError(s.store.DeleteJourney(s.ctx, "journey_abc"))

	_, err := s.store.FindJourney(s.ctx, "journey_abc")
	s.ErrorIs(err, sentinel.ErrNotFound)
	_, err = s.store.FindIntake(s.ctx, "journey_abc")
	s.ErrorIs(err, sentinel.ErrNotFound)

	s.NoError(s.store.DeleteJourney(s.ctx, "journey_abc"))
}

func (s *InMemorySuite) TestConcurrentMutations() {
	s.seed()

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.store.MutateStep(s.ctx, "journey_abc", "birth_reg", func(step *journey.Step) error {
				step.AttachArtifact(journey.ArtifactRef{Type: "submission"})
				return nil
			})
		}()
	}
	wg.Wait()

	persisted, err := s.store.FindJourney(s.ctx, "journey_abc")
	s.Require().NoError(err)
	s.Len(persisted.Step("birth_reg").Artifacts, 32)
}
