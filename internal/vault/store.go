// Package vault is the artifact store: per-journey namespaces of JSON
// documents with TTL-based garbage collection.
//
// Every artifact is wrapped in an Envelope before hitting disk. Writes are
// last-writer-wins per path; namespacing by journey id keeps concurrent
// journeys from ever touching the same files. Listing returns metadata only,
// never payloads, so the PII boundary holds at the API surface.
package vault

import (
	"context"
	"encoding/json"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	dErrors "pathways/pkg/domain-errors"
	"pathways/pkg/requestcontext"
)

// Envelope wraps artifact payloads with storage metadata.
type Envelope struct {
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`
	Data      any       `json:"data"`
}

// Meta describes a stored artifact without exposing its payload.
type Meta struct {
	Path     string    `json:"path"`
	Size     int64     `json:"size"`
	Modified time.Time `json:"modified"`
}

// Stats aggregates the whole store.
type Stats struct {
	TotalJourneys  int        `json:"total_journeys"`
	TotalArtifacts int        `json:"total_artifacts"`
	TotalSizeBytes int64      `json:"total_size_bytes"`
	Oldest         *time.Time `json:"oldest_artifact,omitempty"`
	Newest         *time.Time `json:"newest_artifact,omitempty"`
}

// Store persists artifacts under a root directory.
type Store struct {
	root   string
	logger *slog.Logger
}

// New creates a store rooted at dir, creating it if needed.
func New(dir string, logger *slog.Logger) (*Store, error) {
	if err := os.MkdirAll(filepath.Join(dir, "vault"), 0o750); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeStorageFailure, "create artifact root")
	}
	return &Store{root: dir, logger: logger}, nil
}

// JourneyPath returns the relative artifact path for a document inside one
// journey's namespace, e.g. JourneyPath(id, "prefill", "birth_reg_prefill.json").
func JourneyPath(journeyID string, parts ...string) string {
	return filepath.Join(append([]string{"vault", journeyID}, parts...)...)
}

// resolve maps a store-relative path onto the filesystem, rejecting anything
// that would escape the root.
func (s *Store) resolve(relPath string) (string, error) {
	clean := filepath.Clean(relPath)
	if clean == "." || strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return "", dErrors.New(dErrors.CodeBadRequest, "invalid artifact path")
	}
	return filepath.Join(s.root, clean), nil
}

// Save wraps data in an Envelope and writes it as JSON at relPath, creating
// parent namespaces as needed. An existing artifact at the same path is
// silently replaced; supersession is modeled by writing to a new path.
func (s *Store) Save(ctx context.Context, relPath string, data any, artifactType string) error {
	full, err := s.resolve(relPath)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o750); err != nil {
		return dErrors.Wrap(err, dErrors.CodeStorageFailure, "create artifact namespace")
	}

	envelope := Envelope{
		Type:      artifactType,
		CreatedAt: requestcontext.Now(ctx),
		Data:      data,
	}
	raw, err := json.MarshalIndent(envelope, "", "  ")
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeStorageFailure, "encode artifact")
	}
	if err := os.WriteFile(full, raw, 0o640); err != nil {
		return dErrors.Wrap(err, dErrors.CodeStorageFailure, "write artifact "+relPath)
	}

	s.logger.DebugContext(ctx, "artifact saved", "path", relPath, "type", artifactType)
	return nil
}

// Load reads the envelope at relPath.
func (s *Store) Load(ctx context.Context, relPath string) (Envelope, error) {
	full, err := s.resolve(relPath)
	if err != nil {
		return Envelope{}, err
	}
	raw, err := os.ReadFile(full)
	if err != nil {
		if os.IsNotExist(err) {
			return Envelope{}, dErrors.New(dErrors.CodeNotFound, "artifact not found: "+relPath)
		}
		return Envelope{}, dErrors.Wrap(err, dErrors.CodeStorageFailure, "read artifact "+relPath)
	}
	var envelope Envelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return Envelope{}, dErrors.Wrap(err, dErrors.CodeStorageFailure, "decode artifact "+relPath)
	}
	return envelope, nil
}

// List enumerates artifact metadata, scoped to one journey's namespace when
// journeyID is non-empty and to the whole store otherwise.
func (s *Store) List(ctx context.Context, journeyID string) ([]Meta, error) {
	base := filepath.Join(s.root, "vault")
	if journeyID != "" {
		full, err := s.resolve(filepath.Join("vault", journeyID))
		if err != nil {
			return nil, err
		}
		base = full
	}

	metas := []Meta{}
	err := filepath.WalkDir(base, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".json") {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		rel, err := filepath.Rel(s.root, path)
		if err != nil {
			return nil
		}
		metas = append(metas, Meta{Path: rel, Size: info.Size(), Modified: info.ModTime()})
		return nil
	})
	if err != nil && !os.IsNotExist(err) {
		return nil, dErrors.Wrap(err, dErrors.CodeStorageFailure, "list artifacts")
	}
	return metas, nil
}

// CleanupExpired removes whole journey namespaces whose intake artifact is
// older than ttlDays. The boundary is strict: a namespace exactly ttlDays old
// survives. Journeys with a missing or unreadable intake artifact are skipped
// with a warning rather than deleted; retention errs toward keeping data.
func (s *Store) CleanupExpired(ctx context.Context, ttlDays int) ([]string, error) {
	vaultDir := filepath.Join(s.root, "vault")
	entries, err := os.ReadDir(vaultDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, dErrors.Wrap(err, dErrors.CodeStorageFailure, "scan vault")
	}

	cutoff := requestcontext.Now(ctx).Add(-time.Duration(ttlDays) * 24 * time.Hour)
	var removed []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		journeyID := entry.Name()
		envelope, err := s.Load(ctx, JourneyPath(journeyID, "intake", "intake.json"))
		if err != nil {
			s.logger.WarnContext(ctx, "skipping journey during cleanup",
				"journey_id", journeyID, "error", err.Error())
			continue
		}
		if !envelope.CreatedAt.Before(cutoff) {
			continue
		}
		if err := os.RemoveAll(filepath.Join(vaultDir, journeyID)); err != nil {
			return removed, dErrors.Wrap(err, dErrors.CodeStorageFailure, "remove expired journey "+journeyID)
		}
		s.logger.InfoContext(ctx, "removed expired journey", "journey_id", journeyID)
		removed = append(removed, journeyID)
	}
	return removed, nil
}

// Stats walks the whole store and aggregates counts, bytes, and the age
// range of stored artifacts.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	var stats Stats

	metas, err := s.List(ctx, "")
	if err != nil {
		return Stats{}, err
	}
	stats.TotalArtifacts = len(metas)
	for _, m := range metas {
		stats.TotalSizeBytes += m.Size
		modified := m.Modified
		if stats.Oldest == nil || modified.Before(*stats.Oldest) {
			stats.Oldest = &modified
		}
		if stats.Newest == nil || modified.After(*stats.Newest) {
			stats.Newest = &modified
		}
	}

	entries, err := os.ReadDir(filepath.Join(s.root, "vault"))
	if err != nil && !os.IsNotExist(err) {
		return Stats{}, dErrors.Wrap(err, dErrors.CodeStorageFailure, "scan vault")
	}
	for _, entry := range entries {
		if entry.IsDir() {
			stats.TotalJourneys++
		}
	}
	return stats, nil
}
