package handler

import (
	"pathways/internal/audit"
	"pathways/internal/vault"
)

type ConsentResponse struct {
	ConsentID string   `json:"consent_id"`
	JourneyID string   `json:"journey_id"`
	Scope     []string `json:"consent_scope"`
}

type ArtifactsResponse struct {
	Artifacts []vault.Meta `json:"artifacts"`
	Stats     vault.Stats  `json:"stats"`
}

type AuditResponse struct {
	Events         []audit.Event `json:"events"`
	Total          int           `json:"total"`
	Returned       int           `json:"returned"`
	ConsentSummary audit.Summary `json:"consent_summary"`
}
