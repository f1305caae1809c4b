package store

import (
	"context"
	"sync"

	"pathways/internal/journey"
	"pathways/pkg/platform/sentinel"
)

// InMemory keeps journeys and intakes in maps behind one RWMutex. It favors
// clarity over performance and is the default backend for dev and tests.
// MutateStep holds the write lock for the whole validate-then-mutate cycle,
// so step transitions are atomic here.
type InMemory struct {
	mu       sync.RWMutex
	journeys map[string]*journey.Journey
	intakes  map[string]*journey.Intake
}

func NewInMemory() *InMemory {
	return &InMemory{
		journeys: make(map[string]*journey.Journey),
		intakes:  make(map[string]*journey.Intake),
	}
}

func (s *InMemory) SaveJourney(_ context.Context, j *journey.Journey) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.journeys[j.ID] = cloneJourney(j)
	return nil
}

func (s *InMemory) FindJourney(_ context.Context, journeyID string) (*journey.Journey, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if j, ok := s.journeys[journeyID]; ok {
		return cloneJourney(j), nil
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemory) SaveIntake(_ context.Context, journeyID string, intake *journey.Intake) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.intakes[journeyID] = intake
	return nil
}

func (s *InMemory) FindIntake(_ context.Context, journeyID string) (*journey.Intake, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if intake, ok := s.intakes[journeyID]; ok {
		return intake, nil
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemory) MutateStep(_ context.Context, journeyID, stepID string, fn func(*journey.Step) error) (*journey.Journey, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	j, ok := s.journeys[journeyID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	step := j.Step(stepID)
	if step == nil {
		return nil, sentinel.ErrNotFound
	}
	if err := fn(step); err != nil {
		return nil, err
	}
	return cloneJourney(j), nil
}

func (s *InMemory) DeleteJourney(_ context.Context, journeyID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.journeys, journeyID)
	delete(s.intakes, journeyID)
	return nil
}

// cloneJourney copies the journey and its step slice so callers cannot
// mutate stored state behind the lock.
func cloneJourney(j *journey.Journey) *journey.Journey {
	out := *j
	out.Steps = make([]journey.Step, len(j.Steps))
	copy(out.Steps, j.Steps)
	for i := range out.Steps {
		if len(j.Steps[i].Artifacts) > 0 {
			out.Steps[i].Artifacts = append([]journey.ArtifactRef(nil), j.Steps[i].Artifacts...)
		}
	}
	return &out
}
