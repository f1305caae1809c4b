package audit

import (
	"bufio"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	dErrors "pathways/pkg/domain-errors"
	"pathways/pkg/requestcontext"
)

const (
	eventLogName    = "audit.log"
	consentFileName = "consent_ledger.json"
	DefaultTTLDays  = 30
	consentIDHexLen = 16
)

// Sink receives a copy of everything the ledger writes. Sinks are mirrors
// for querying and fan-out; the file ledger stays the durability contract,
// so sink failures are logged and never fail the caller.
type Sink interface {
	RecordEvent(ctx context.Context, event Event) error
	RecordConsent(ctx context.Context, record ConsentRecord) error
}

// Ledger is the append-only audit log plus the consent ledger.
//
// All writes serialize through one mutex. That gives two guarantees the
// design depends on: event lines land whole and in order even under
// concurrent callers, and the consent ledger's read-modify-write cycle never
// loses an update. Do not shard or parallelize writes without replacing this
// with a record-append-capable store.
type Ledger struct {
	mu     sync.Mutex
	dir    string
	logger *slog.Logger
	sink   Sink

	ttlDays int
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithSink mirrors ledger writes to an external store.
func WithSink(sink Sink) Option {
	return func(l *Ledger) { l.sink = sink }
}

// WithConsentTTL overrides the default consent validity window in days.
func WithConsentTTL(days int) Option {
	return func(l *Ledger) { l.ttlDays = days }
}

// NewLedger creates a ledger writing under dir.
func NewLedger(dir string, logger *slog.Logger, opts ...Option) (*Ledger, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeStorageFailure, "create audit dir")
	}
	l := &Ledger{dir: dir, logger: logger, ttlDays: DefaultTTLDays}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// LogEvent canonicalizes, hash-stamps, and appends one event line. The write
// is fatal on failure: audit durability is a correctness requirement, so the
// error propagates instead of being swallowed.
func (l *Ledger) LogEvent(ctx context.Context, actor, action, why, consentID string, metadata map[string]any) (string, error) {
	if metadata == nil {
		metadata = map[string]any{}
	}
	event := Event{
		Timestamp: requestcontext.Now(ctx),
		Actor:     actor,
		Action:    action,
		Why:       why,
		ConsentID: consentID,
		Metadata:  metadata,
	}
	if _, err := event.ComputeHash(); err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeStorageFailure, "canonicalize audit event")
	}

	line, err := json.Marshal(event)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeStorageFailure, "encode audit event")
	}

	l.mu.Lock()
	err = l.appendLine(line)
	l.mu.Unlock()
	if err != nil {
		return "", err
	}

	l.mirrorEvent(ctx, event)
	return event.Hash, nil
}

// appendLine writes one whole line to the event log. Caller holds l.mu, so
// lines never interleave.
func (l *Ledger) appendLine(line []byte) error {
	f, err := os.OpenFile(filepath.Join(l.dir, eventLogName), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o640)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeStorageFailure, "open audit log")
	}
	defer f.Close()

	if _, err := f.Write(append(line, '\n')); err != nil {
		return dErrors.Wrap(err, dErrors.CodeStorageFailure, "append audit event")
	}
	return nil
}

// Trail scans the event log and returns matching events, newest first.
// Corrupt lines are skipped with a warning; a partially damaged log still
// yields everything readable.
func (l *Ledger) Trail(ctx context.Context, filter TrailFilter) ([]Event, error) {
	f, err := os.Open(filepath.Join(l.dir, eventLogName))
	if err != nil {
		if os.IsNotExist(err) {
			return []Event{}, nil
		}
		return nil, dErrors.Wrap(err, dErrors.CodeStorageFailure, "open audit log")
	}
	defer f.Close()

	events := []Event{}
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		var event Event
		if err := json.Unmarshal(scanner.Bytes(), &event); err != nil {
			l.logger.WarnContext(ctx, "skipping corrupt audit line", "error", err.Error())
			continue
		}
		if filter.matches(event) {
			events = append(events, event)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeStorageFailure, "scan audit log")
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Timestamp.After(events[j].Timestamp)
	})
	return events, nil
}

// LogConsent derives a consent id, writes a consent_granted audit event, and
// appends the full record to the consent ledger document. The whole sequence
// holds the ledger mutex: the consent file is a read-the-document,
// append, write-the-document cycle that would lose updates under concurrent
// writers otherwise.
func (l *Ledger) LogConsent(ctx context.Context, journeyID string, scope []string, userIdentifier, signature string) (string, error) {
	if journeyID == "" {
		return "", dErrors.New(dErrors.CodeBadRequest, "journey id is required")
	}
	if len(scope) == 0 {
		return "", dErrors.New(dErrors.CodeBadRequest, "consent scope is required")
	}

	now := requestcontext.Now(ctx)
	sum := sha256.Sum256([]byte(journeyID + now.Format(time.RFC3339Nano)))
	consentID := hex.EncodeToString(sum[:])[:consentIDHexLen]

	record := ConsentRecord{
		ConsentID:      consentID,
		JourneyID:      journeyID,
		Scope:          scope,
		UserIdentifier: userIdentifier,
		Signature:      signature,
		GrantedAt:      now,
		TTLDays:        l.ttlDays,
	}

	if _, err := l.LogEvent(ctx, "user", ActionConsentGranted,
		"User granted consent for specified scopes", consentID, map[string]any{
			"journey_id":    journeyID,
			"consent_scope": scope,
			"has_signature": signature != "",
		}); err != nil {
		return "", err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	records, err := l.readConsents()
	if err != nil {
		return "", err
	}
	records = append(records, record)
	if err := l.writeConsents(records); err != nil {
		return "", err
	}

	l.mirrorConsent(ctx, record)
	return consentID, nil
}

// VerifyConsent reports whether a matching, non-expired record exists that
// covers the required scope. Read failures verify as false; consent checks
// fail closed.
func (l *Ledger) VerifyConsent(ctx context.Context, consentID, requiredScope string) bool {
	l.mu.Lock()
	records, err := l.readConsents()
	l.mu.Unlock()
	if err != nil {
		l.logger.WarnContext(ctx, "consent ledger unreadable during verify", "error", err.Error())
		return false
	}

	now := requestcontext.Now(ctx)
	for _, record := range records {
		if record.ConsentID == consentID && record.Covers(requiredScope, now) {
			return true
		}
	}
	return false
}

// ConsentSummary partitions the ledger into active and expired records and
// counts scope usage.
func (l *Ledger) ConsentSummary(ctx context.Context) (Summary, error) {
	l.mu.Lock()
	records, err := l.readConsents()
	l.mu.Unlock()
	if err != nil {
		return Summary{}, err
	}

	summary := Summary{ScopeBreakdown: map[string]int{}}
	now := requestcontext.Now(ctx)
	for _, record := range records {
		summary.Total++
		if now.Before(record.ExpiresAt()) {
			summary.Active++
		} else {
			summary.Expired++
		}
		for _, scope := range record.Scope {
			summary.ScopeBreakdown[scope]++
		}
	}
	return summary, nil
}

type consentDocument struct {
	Consents []ConsentRecord `json:"consents"`
}

func (l *Ledger) readConsents() ([]ConsentRecord, error) {
	raw, err := os.ReadFile(filepath.Join(l.dir, consentFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, dErrors.Wrap(err, dErrors.CodeStorageFailure, "read consent ledger")
	}
	var doc consentDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeStorageFailure, "decode consent ledger")
	}
	return doc.Consents, nil
}

func (l *Ledger) writeConsents(records []ConsentRecord) error {
	raw, err := json.MarshalIndent(consentDocument{Consents: records}, "", "  ")
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeStorageFailure, "encode consent ledger")
	}
	if err := os.WriteFile(filepath.Join(l.dir, consentFileName), raw, 0o640); err != nil {
		return dErrors.Wrap(err, dErrors.CodeStorageFailure, "write consent ledger")
	}
	return nil
}

func (l *Ledger) mirrorEvent(ctx context.Context, event Event) {
	if l.sink == nil {
		return
	}
	if err := l.sink.RecordEvent(ctx, event); err != nil {
		l.logger.WarnContext(ctx, "audit sink rejected event", "action", event.Action, "error", err.Error())
	}
}

func (l *Ledger) mirrorConsent(ctx context.Context, record ConsentRecord) {
	if l.sink == nil {
		return
	}
	if err := l.sink.RecordConsent(ctx, record); err != nil {
		l.logger.WarnContext(ctx, "audit sink rejected consent", "consent_id", record.ConsentID, "error", err.Error())
	}
}
