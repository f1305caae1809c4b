package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"pathways/internal/journey"
	"pathways/pkg/platform/sentinel"
)

const (
	journeyKeyPrefix = "pathways:journey:"
	intakeKeyPrefix  = "pathways:intake:"
)

// Redis persists journeys and intakes as JSON values with a TTL matching the
// artifact retention window, so keyed state and vault artifacts age out
// together.
//
// MutateStep is a read-modify-write without a transaction: concurrent
// mutations of the same journey race last-writer-wins, matching the
// consistency model of the rest of the system (one synchronous caller per
// journey).
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis wraps an already-connected client. ttl of zero stores keys
// without expiry.
func NewRedis(client *redis.Client, ttl time.Duration) *Redis {
	return &Redis{client: client, ttl: ttl}
}

func (s *Redis) SaveJourney(ctx context.Context, j *journey.Journey) error {
	return s.setJSON(ctx, journeyKeyPrefix+j.ID, j)
}

func (s *Redis) FindJourney(ctx context.Context, journeyID string) (*journey.Journey, error) {
	var j journey.Journey
	if err := s.getJSON(ctx, journeyKeyPrefix+journeyID, &j); err != nil {
		return nil, err
	}
	return &j, nil
}

func (s *Redis) SaveIntake(ctx context.Context, journeyID string, intake *journey.Intake) error {
	return s.setJSON(ctx, intakeKeyPrefix+journeyID, intake)
}

func (s *Redis) FindIntake(ctx context.Context, journeyID string) (*journey.Intake, error) {
	var intake journey.Intake
	if err := s.getJSON(ctx, intakeKeyPrefix+journeyID, &intake); err != nil {
		return nil, err
	}
	return &intake, nil
}

func (s *Redis) MutateStep(ctx context.Context, journeyID, stepID string, fn func(*journey.Step) error) (*journey.Journey, error) {
	j, err := s.FindJourney(ctx, journeyID)
	if err != nil {
		return nil, err
	}
	step := j.Step(stepID)
	if step == nil {
		return nil, sentinel.ErrNotFound
	}
	if err := fn(step); err != nil {
		return nil, err
	}
	if err := s.SaveJourney(ctx, j); err != nil {
		return nil, err
	}
	return j, nil
}

func (s *Redis) DeleteJourney(ctx context.Context, journeyID string) error {
	if err := s.client.Del(ctx, journeyKeyPrefix+journeyID, intakeKeyPrefix+journeyID).Err(); err != nil {
		return fmt.Errorf("delete journey keys: %w", err)
	}
	return nil
}

func (s *Redis) setJSON(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.client.Set(ctx, key, raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

func (s *Redis) getJSON(ctx context.Context, key string, v any) error {
	raw, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return sentinel.ErrNotFound
		}
		return fmt.Errorf("get %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}
