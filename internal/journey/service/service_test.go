package service

import (
	"context"
	"io"
	"log/slog"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"pathways/internal/audit"
	"pathways/internal/forms"
	"pathways/internal/journey"
	"pathways/internal/journey/store"
	"pathways/internal/vault"
	dErrors "pathways/pkg/domain-errors"
	"pathways/pkg/requestcontext"
)

type ServiceSuite struct {
	suite.Suite
	ctx     context.Context
	now     time.Time
	store   *store.InMemory
	vault   *vault.Store
	ledger  *audit.Ledger
	service *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	dir := s.T().TempDir()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	var err error
	s.vault, err = vault.New(dir, logger)
	s.Require().NoError(err)
	s.ledger, err = audit.NewLedger(dir, logger)
	s.Require().NoError(err)

	s.store = store.NewInMemory()
	s.service = New(s.store, forms.NewRegistry(""), s.vault, s.ledger, nil, logger, 30)

	s.now = time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC)
	s.ctx = requestcontext.WithTime(context.Background(), s.now)
}

func (s *ServiceSuite) birthIntake() *journey.Intake {
	return &journey.Intake{
		Parent1: &journey.Person{FullName: "Jane Doe", DOB: "1990-01-01"},
		Baby:    &journey.Baby{DOB: "2025-01-10", PlaceOfBirth: "Westmead Hospital"},
		Address: &journey.Address{Line1: "1 Main St", Suburb: "Parramatta", State: "NSW", Postcode: "2150"},
	}
}

func (s *ServiceSuite) TestPlanJourney() {
	s.Run("birth intake plans two pending steps", func() {
		j, err := s.service.PlanJourney(s.ctx, s.birthIntake(), "NSW")
		s.Require().NoError(err)

		s.Equal(journey.LifeEventBabyJustBorn, j.LifeEvent)
		s.Regexp(`^journey_[0-9a-f]{12}$`, j.ID)
		s.Require().Len(j.Steps, 2)
		s.Equal("birth_reg", j.Steps[0].ID)
		s.Equal("Birth Registration (NSW)", j.Steps[0].Title)
		s.Equal("medicare_enrolment", j.Steps[1].ID)
		for _, step := range j.Steps {
			s.Equal(journey.StepStatusPending, step.Status)
		}
	})

	s.Run("identical intake yields identical journey id", func() {
		first, err := s.service.PlanJourney(s.ctx, s.birthIntake(), "NSW")
		s.Require().NoError(err)
		second, err := s.service.PlanJourney(s.ctx, s.birthIntake(), "NSW")
		s.Require().NoError(err)
		s.Equal(first.ID, second.ID)
	})

	s.Run("non-NSW jurisdiction drops state suffix", func() {
		j, err := s.service.PlanJourney(s.ctx, s.birthIntake(), "VIC")
		s.Require().NoError(err)
		s.Equal("Birth Registration", j.Steps[0].Title)
	})

	s.Run("intake artifact and audit event recorded", func() {
		intake := s.birthIntake()
		intake.Parent1.FullName = "Mei Wong"
		j, err := s.service.PlanJourney(s.ctx, intake, "NSW")
		s.Require().NoError(err)

		envelope, err := s.vault.Load(s.ctx, vault.JourneyPath(j.ID, "intake", "intake.json"))
		s.Require().NoError(err)
		s.Equal("intake", envelope.Type)

		events, err := s.ledger.Trail(s.ctx, audit.TrailFilter{JourneyID: j.ID})
		s.Require().NoError(err)
		s.Require().Len(events, 1)
		s.Equal(audit.ActionJourneyCreated, events[0].Action)
		s.Equal("system", events[0].Actor)
	})

	s.Run("invalid dob rejected", func() {
		intake := s.birthIntake()
		intake.Parent1.DOB = "01/01/1990"
		_, err := s.service.PlanJourney(s.ctx, intake, "NSW")
		s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
	})
}

func (s *ServiceSuite) TestClassify() {
	applicant := &journey.Person{FullName: "Sam Lee", DOB: "1985-05-05"}

	s.Run("birth beats job loss when both groups present", func() {
		intake := s.birthIntake()
		intake.Applicant = applicant
		intake.Employment = &journey.Employment{LastEmployer: "Acme"}
		s.Equal(journey.LifeEventBabyJustBorn, Classify(intake))
	})

	s.Run("employment with applicant is job loss", func() {
		s.Equal(journey.LifeEventJobLoss, Classify(&journey.Intake{
			Applicant:  applicant,
			Employment: &journey.Employment{LastWorkDate: "2025-01-01"},
		}))
	})

	s.Run("disaster with applicant is disaster recovery", func() {
		s.Equal(journey.LifeEventDisasterRecovery, Classify(&journey.Intake{
			Applicant: applicant,
			Disaster:  &journey.Disaster{Type: "flood", Date: "2025-01-05"},
		}))
	})

	s.Run("carer with applicant is carer support", func() {
		s.Equal(journey.LifeEventCarerSupport, Classify(&journey.Intake{
			Applicant: applicant,
			Carer:     &journey.CarerInfo{CareRecipientName: "Pat Lee"},
		}))
	})

	s.Run("empty intake defaults to birth", func() {
		s.Equal(journey.LifeEventBabyJustBorn, Classify(&journey.Intake{}))
	})
}

func (s *ServiceSuite) TestPrefillForm() {
	j, err := s.service.PlanJourney(s.ctx, s.birthIntake(), "NSW")
	s.Require().NoError(err)

	s.Run("resolves known fields and omits missing ones", func() {
		prefill, err := s.service.PrefillForm(s.ctx, j.ID, "birth_reg")
		s.Require().NoError(err)

		s.Equal("birth_registry_nsw", prefill.FormID)
		s.Equal("Jane Doe", prefill.Fields["parent1_full_name"])
		s.Equal("1990-01-01", prefill.Fields["parent1_dob"])
		s.Equal("2025-01-10", prefill.Fields["baby_dob"])
		s.Equal("Westmead Hospital", prefill.Fields["place_of_birth"])
		s.NotContains(prefill.Fields, "baby_name")
		s.NotEmpty(prefill.ReviewText)
	})

	s.Run("leaves step status untouched", func() {
		_, err := s.service.PrefillForm(s.ctx, j.ID, "birth_reg")
		s.Require().NoError(err)

		current, err := s.service.GetJourney(s.ctx, j.ID)
		s.Require().NoError(err)
		s.Equal(journey.StepStatusPending, current.Step("birth_reg").Status)
	})

	s.Run("writes the prefill artifact", func() {
		_, err := s.service.PrefillForm(s.ctx, j.ID, "birth_reg")
		s.Require().NoError(err)

		envelope, err := s.vault.Load(s.ctx, vault.JourneyPath(j.ID, "prefill", "birth_reg_prefill.json"))
		s.Require().NoError(err)
		s.Equal("prefill", envelope.Type)
	})

	s.Run("unknown journey is not found", func() {
		_, err := s.service.PrefillForm(s.ctx, "journey_missing", "birth_reg")
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("unknown step is not found", func() {
		_, err := s.service.PrefillForm(s.ctx, j.ID, "passport_renewal")
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

func (s *ServiceSuite) TestSubmitForm() {
	j, err := s.service.PlanJourney(s.ctx, s.birthIntake(), "NSW")
	s.Require().NoError(err)

	s.Run("records submission and completes the step", func() {
		submission, err := s.service.SubmitForm(s.ctx, j.ID, "birth_reg", map[string]any{
			"parent1_full_name": "Jane Doe",
			"baby_name":         "Alex Doe",
		})
		s.Require().NoError(err)

		s.Regexp(regexp.MustCompile(`^BI-[0-9a-f]{8}$`), submission.Reference)
		s.Equal("submitted", submission.Status)
		s.Equal(s.now, submission.SubmittedAt)

		current, err := s.service.GetJourney(s.ctx, j.ID)
		s.Require().NoError(err)
		step := current.Step("birth_reg")
		s.Equal(journey.StepStatusCompleted, step.Status)
		s.Require().Len(step.Artifacts, 1)
		s.Equal("submission", step.Artifacts[0].Type)

		envelope, err := s.vault.Load(s.ctx, vault.JourneyPath(j.ID, "submissions", "birth_reg_submission.json"))
		s.Require().NoError(err)
		s.Equal("submission", envelope.Type)

		events, err := s.ledger.Trail(s.ctx, audit.TrailFilter{JourneyID: j.ID, Action: audit.ActionFormSubmitted})
		s.Require().NoError(err)
		s.Require().Len(events, 1)
		s.Equal("user", events[0].Actor)
	})

	s.Run("resubmitting a completed step violates the lifecycle", func() {
		_, err := s.service.SubmitForm(s.ctx, j.ID, "birth_reg", nil)
		s.True(dErrors.HasCode(err, dErrors.CodeInvariantViolation))
	})

	s.Run("unknown step is not found", func() {
		_, err := s.service.SubmitForm(s.ctx, j.ID, "passport_renewal", nil)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

func (s *ServiceSuite) TestGrantConsent() {
	j, err := s.service.PlanJourney(s.ctx, s.birthIntake(), "NSW")
	s.Require().NoError(err)

	consentID, err := s.service.GrantConsent(s.ctx, j.ID, []string{"birth_registration"}, "jane@example.com", "sig")
	s.Require().NoError(err)
	s.Len(consentID, 16)
	s.True(s.ledger.VerifyConsent(s.ctx, consentID, "birth_registration"))

	_, err = s.service.GrantConsent(s.ctx, "journey_missing", []string{"x"}, "jane@example.com", "")
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *ServiceSuite) TestCleanup() {
	oldCtx := requestcontext.WithTime(context.Background(), s.now.AddDate(0, 0, -31))
	expired, err := s.service.PlanJourney(oldCtx, s.birthIntake(), "NSW")
	s.Require().NoError(err)

	freshIntake := s.birthIntake()
	freshIntake.Parent1.FullName = "Jo Chen"
	fresh, err := s.service.PlanJourney(s.ctx, freshIntake, "NSW")
	s.Require().NoError(err)

	result, err := s.service.Cleanup(s.ctx)
	s.Require().NoError(err)

	s.Equal([]string{expired.ID}, result.RemovedJourneys)
	s.Equal(30, result.TTLDays)

	_, err = s.service.GetJourney(s.ctx, expired.ID)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	_, err = s.service.GetJourney(s.ctx, fresh.ID)
	s.NoError(err)

	events, err := s.ledger.Trail(s.ctx, audit.TrailFilter{Action: audit.ActionCleanupRun})
	s.Require().NoError(err)
	s.Require().Len(events, 1)
}
