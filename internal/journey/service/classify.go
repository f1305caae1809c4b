package service

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/google/uuid"

	"pathways/internal/journey"
)

// Classify determines the life event from which optional intake groups are
// populated. The rules run in fixed priority order as a deliberate
// tie-break: when multiple groups are populated the first match wins, so
// callers must supply only the fields relevant to their scenario. An intake
// matching nothing defaults to the birth journey.
func Classify(intake *journey.Intake) journey.LifeEvent {
	switch {
	case intake.Baby != nil && intake.Parent1 != nil:
		return journey.LifeEventBabyJustBorn
	case intake.Employment != nil && intake.Applicant != nil:
		return journey.LifeEventJobLoss
	case intake.Disaster != nil && intake.Applicant != nil:
		return journey.LifeEventDisasterRecovery
	case intake.Applicant != nil && intake.Carer != nil:
		return journey.LifeEventCarerSupport
	default:
		return journey.LifeEventBabyJustBorn
	}
}

// deriveJourneyID hashes the life-event-specific stable fields so that
// re-planning an identical intake yields the same journey id; callers get
// idempotent retries and dedup for free. When no stable fields are
// available the id falls back to timestamp plus random entropy, which is
// accepted as non-deterministic for that edge case.
func deriveJourneyID(intake *journey.Intake, lifeEvent journey.LifeEvent, now time.Time) string {
	var hashInput string
	switch {
	case lifeEvent == journey.LifeEventBabyJustBorn && intake.Baby != nil && intake.Parent1 != nil:
		hashInput = intake.Baby.DOB + intake.Parent1.FullName
		if intake.Parent2 != nil {
			hashInput += intake.Parent2.FullName
		}
	case lifeEvent == journey.LifeEventJobLoss && intake.Applicant != nil:
		hashInput = intake.Applicant.DOB + intake.Applicant.FullName
		if intake.Employment != nil && intake.Employment.LastWorkDate != "" {
			hashInput += intake.Employment.LastWorkDate
		}
	case lifeEvent == journey.LifeEventDisasterRecovery && intake.Applicant != nil:
		hashInput = intake.Applicant.DOB + intake.Applicant.FullName
		if intake.Disaster != nil && intake.Disaster.Date != "" {
			hashInput += intake.Disaster.Date
		}
	case lifeEvent == journey.LifeEventCarerSupport && intake.Applicant != nil:
		hashInput = intake.Applicant.DOB + intake.Applicant.FullName
	default:
		hashInput = now.Format(time.RFC3339Nano) + string(lifeEvent) + uuid.NewString()
	}

	sum := sha256.Sum256([]byte(hashInput))
	return "journey_" + hex.EncodeToString(sum[:])[:12]
}

// generateReference builds a submission reference: two-letter step prefix
// plus an eight-hex-digit fragment over step, journey, and second-resolution
// timestamp.
func generateReference(stepID, journeyID string, now time.Time) string {
	timestamp := now.Format("20060102150405")
	sum := sha256.Sum256([]byte(stepID + journeyID + timestamp))
	prefix := stepID
	if len(prefix) > 2 {
		prefix = prefix[:2]
	}
	return upper(prefix) + "-" + hex.EncodeToString(sum[:])[:8]
}

func upper(s string) string {
	out := []byte(s)
	for i, c := range out {
		if c >= 'a' && c <= 'z' {
			out[i] = c - 'a' + 'A'
		}
	}
	return string(out)
}

// stepsFor returns the fixed, ordered step list for a life event and
// jurisdiction, every step pending.
func stepsFor(lifeEvent journey.LifeEvent, jurisdiction string) []journey.Step {
	pending := func(id, title string) journey.Step {
		return journey.Step{ID: id, Title: title, Status: journey.StepStatusPending}
	}

	switch lifeEvent {
	case journey.LifeEventJobLoss:
		return []journey.Step{
			pending("unemployment_centrelink", "Centrelink JobSeeker Payment"),
			pending("job_service_provider", "Job Service Provider Registration"),
		}
	case journey.LifeEventDisasterRecovery:
		return []journey.Step{
			pending("emergency_disaster_payment", "Emergency Disaster Payment"),
			pending("emergency_housing_assistance", "Emergency Housing Assistance"),
		}
	case journey.LifeEventCarerSupport:
		return []journey.Step{
			pending("carer_payment", "Carer Payment Application"),
			pending("carer_allowance", "Carer Allowance Application"),
		}
	default:
		title := "Birth Registration"
		if jurisdiction == "NSW" {
			title = "Birth Registration (NSW)"
		}
		return []journey.Step{
			pending("birth_reg", title),
			pending("medicare_enrolment", "Medicare Newborn Enrolment"),
		}
	}
}
