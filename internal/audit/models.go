// Package audit implements the append-only audit ledger and the consent
// ledger with TTL-based expiry.
//
// Every event is stamped with a sha256 digest of its canonical form (sorted
// key JSON over every field except the hash itself). The digest makes
// individual lines tamper-evident; events are deliberately not chained to
// their predecessor, so a deleted or reordered line is not detectable. That
// is a property of the ledger design, kept as-is rather than upgraded.
package audit

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"
)

// Event is one audit ledger entry.
type Event struct {
	Timestamp time.Time      `json:"timestamp"`
	Actor     string         `json:"actor"`
	Action    string         `json:"action"`
	Why       string         `json:"why"`
	ConsentID string         `json:"consent_id,omitempty"`
	Metadata  map[string]any `json:"metadata"`
	Hash      string         `json:"hash"`
}

// Ledger action names.
const (
	ActionJourneyCreated = "journey_created"
	ActionFormSubmitted  = "form_submitted"
	ActionConsentGranted = "consent_granted"
	ActionCleanupRun     = "cleanup_run"
)

// canonical returns the sorted-key JSON encoding of the event minus its hash.
// encoding/json emits map keys in sorted order, which together with
// RFC3339Nano timestamps gives a stable byte stream for identical field
// values.
func (e Event) canonical() ([]byte, error) {
	metadata := e.Metadata
	if metadata == nil {
		metadata = map[string]any{}
	}
	var consentID any
	if e.ConsentID != "" {
		consentID = e.ConsentID
	}
	return json.Marshal(map[string]any{
		"timestamp":  e.Timestamp.UTC().Format(time.RFC3339Nano),
		"actor":      e.Actor,
		"action":     e.Action,
		"why":        e.Why,
		"consent_id": consentID,
		"metadata":   metadata,
	})
}

// ComputeHash stamps the event with the sha256 digest of its canonical form.
// The digest is deterministic given the same field values.
func (e *Event) ComputeHash() (string, error) {
	raw, err := e.canonical()
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(raw)
	e.Hash = hex.EncodeToString(sum[:])
	return e.Hash, nil
}

// ConsentRecord captures a user's grant for a set of scopes on one journey.
// Records are immutable once written; expiry is computed from GrantedAt and
// TTLDays, never enforced by deletion.
type ConsentRecord struct {
	ConsentID string `json:"consent_id"`
	JourneyID string `json:"journey_id"`
	// Scope lists the named permission categories granted.
	Scope []string `json:"consent_scope"`
	// UserIdentifier must be pre-hashed by the caller; the ledger never
	// stores raw PII.
	UserIdentifier string    `json:"user_identifier"`
	Signature      string    `json:"signature,omitempty"`
	GrantedAt      time.Time `json:"granted_at"`
	TTLDays        int       `json:"ttl_days"`
}

// ExpiresAt returns the instant the consent stops being valid.
func (c ConsentRecord) ExpiresAt() time.Time {
	return c.GrantedAt.Add(time.Duration(c.TTLDays) * 24 * time.Hour)
}

// Covers reports whether the record grants the required scope and is still
// within its validity window at now.
func (c ConsentRecord) Covers(requiredScope string, now time.Time) bool {
	if !now.Before(c.ExpiresAt()) {
		return false
	}
	for _, scope := range c.Scope {
		if scope == requiredScope {
			return true
		}
	}
	return false
}

// Summary aggregates the consent ledger at a point in time.
type Summary struct {
	Total          int            `json:"total_consents"`
	Active         int            `json:"active_consents"`
	Expired        int            `json:"expired_consents"`
	ScopeBreakdown map[string]int `json:"scope_breakdown"`
}

// TrailFilter narrows a Trail query. Zero values match everything.
type TrailFilter struct {
	JourneyID string
	Action    string
	Start     time.Time
	End       time.Time
}

func (f TrailFilter) matches(event Event) bool {
	if f.JourneyID != "" {
		journeyID, _ := event.Metadata["journey_id"].(string)
		if journeyID != f.JourneyID {
			return false
		}
	}
	if f.Action != "" && event.Action != f.Action {
		return false
	}
	if !f.Start.IsZero() && event.Timestamp.Before(f.Start) {
		return false
	}
	if !f.End.IsZero() && event.Timestamp.After(f.End) {
		return false
	}
	return true
}
