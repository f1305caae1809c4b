package handler

import (
	"pathways/internal/journey"
	dErrors "pathways/pkg/domain-errors"
)

// IntakeRequest carries the intake record plus an optional jurisdiction,
// defaulting to NSW.
type IntakeRequest struct {
	Jurisdiction string         `json:"jurisdiction"`
	Intake       journey.Intake `json:"intake"`
}

func (r *IntakeRequest) Normalize() {
	if r.Jurisdiction == "" {
		r.Jurisdiction = "NSW"
	}
}

// SubmitRequest carries the user-confirmed form payload.
type SubmitRequest struct {
	FormData map[string]any `json:"form_data"`
}

// ConsentRequest records a consent grant.
type ConsentRequest struct {
	Scope          []string `json:"consent_scope"`
	UserIdentifier string   `json:"user_identifier"`
	Signature      string   `json:"signature"`
}

func (r *ConsentRequest) Validate() error {
	if len(r.Scope) == 0 {
		return dErrors.New(dErrors.CodeBadRequest, "consent_scope is required")
	}
	if r.UserIdentifier == "" {
		return dErrors.New(dErrors.CodeBadRequest, "user_identifier is required")
	}
	return nil
}
