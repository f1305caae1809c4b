package journey

import (
	"time"

	dErrors "pathways/pkg/domain-errors"
)

// LifeEvent classifies the situation a journey guides the user through.
type LifeEvent string

const (
	LifeEventBabyJustBorn     LifeEvent = "baby_just_born"
	LifeEventJobLoss          LifeEvent = "job_loss"
	LifeEventDisasterRecovery LifeEvent = "disaster_recovery"
	LifeEventCarerSupport     LifeEvent = "carer_support"
)

// StepStatus is the lifecycle state of a single journey step.
type StepStatus string

const (
	StepStatusPending    StepStatus = "pending"
	StepStatusInProgress StepStatus = "in_progress"
	StepStatusCompleted  StepStatus = "completed"
	StepStatusFailed     StepStatus = "failed"
)

// stepTransitions encodes the monotonic step lifecycle:
// pending → in_progress → completed, or pending/in_progress → failed.
// Completed and failed are terminal; no regression is ever allowed.
var stepTransitions = map[StepStatus][]StepStatus{
	StepStatusPending:    {StepStatusInProgress, StepStatusCompleted, StepStatusFailed},
	StepStatusInProgress: {StepStatusCompleted, StepStatusFailed},
	StepStatusCompleted:  {},
	StepStatusFailed:     {},
}

// CanTransitionTo reports whether the status may move to the target state.
func (s StepStatus) CanTransitionTo(target StepStatus) bool {
	for _, allowed := range stepTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transitions are possible.
func (s StepStatus) Terminal() bool {
	return len(stepTransitions[s]) == 0
}

// ArtifactRef points at a persisted artifact without carrying its payload.
type ArtifactRef struct {
	Type      string    `json:"type"`
	Path      string    `json:"path"`
	CreatedAt time.Time `json:"created_at"`
	StepID    string    `json:"step_id,omitempty"`
}

// Step is one unit of work within a journey, mapping to one government
// form or process.
//
// Invariants:
//   - ID is unique within its journey
//   - Status only moves forward through stepTransitions
//   - Artifacts is append-only
type Step struct {
	ID        string        `json:"id"`
	Title     string        `json:"title"`
	Status    StepStatus    `json:"status"`
	Artifacts []ArtifactRef `json:"artifacts,omitempty"`
}

// CanTransition checks whether the step may move to the target status.
// Returns an error when the transition would regress or leave a terminal
// state. Use with ApplyTransition for the validate-then-mutate pattern.
func (s *Step) CanTransition(target StepStatus) error {
	if !s.Status.CanTransitionTo(target) {
		return dErrors.New(dErrors.CodeInvariantViolation,
			"step "+s.ID+" cannot move from "+string(s.Status)+" to "+string(target))
	}
	return nil
}

// ApplyTransition moves the step to the target status. Call CanTransition
// first to validate.
func (s *Step) ApplyTransition(target StepStatus) {
	s.Status = target
}

// Transition validates and applies a status change in one call.
func (s *Step) Transition(target StepStatus) error {
	if err := s.CanTransition(target); err != nil {
		return err
	}
	s.ApplyTransition(target)
	return nil
}

// AttachArtifact records a reference to a persisted artifact on the step.
func (s *Step) AttachArtifact(ref ArtifactRef) {
	s.Artifacts = append(s.Artifacts, ref)
}

// Journey is the aggregate root: an ordered plan of steps for a classified
// life event.
//
// Invariants:
//   - ID is deterministically derived from stable intake fields where
//     available, so re-planning identical intake yields the same journey
//   - Steps are ordered and all start pending
//   - CreatedAt is immutable after construction
type Journey struct {
	ID           string    `json:"id"`
	LifeEvent    LifeEvent `json:"life_event"`
	Jurisdiction string    `json:"jurisdiction"`
	Steps        []Step    `json:"steps"`
	CreatedAt    time.Time `json:"created_at"`
}

// Step returns a pointer to the step with the given id, or nil.
func (j *Journey) Step(stepID string) *Step {
	for i := range j.Steps {
		if j.Steps[i].ID == stepID {
			return &j.Steps[i]
		}
	}
	return nil
}

// Completed reports whether every step reached a terminal completed state.
func (j *Journey) Completed() bool {
	for i := range j.Steps {
		if j.Steps[i].Status != StepStatusCompleted {
			return false
		}
	}
	return len(j.Steps) > 0
}
