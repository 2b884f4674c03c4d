package activity

import (
	"context"
	"time"
)

// Service accepts sync requests and records them in a Store.
type Service struct {
	store Store
	now   func() time.Time
}

// NewService wires a Service to its store. A nil now uses time.Now.
func NewService(store Store, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{store: store, now: now}
}

// Sync decodes, validates and stores one activity. Errors are either a
// *ValidationError or a *ProcessingError; in both cases nothing is stored.
func (s *Service) Sync(ctx context.Context, body []byte) (SyncedActivity, error) {
	payload, err := DecodePayload(body)
	if err != nil {
		return SyncedActivity{}, err
	}

	if err := payload.Validate(); err != nil {
		return SyncedActivity{}, err
	}

	rec := Build(payload, s.now())
	if err := s.store.Append(ctx, rec); err != nil {
		return SyncedActivity{}, storeFailure(err)
	}
	return rec, nil
}

func (s *Service) List(ctx context.Context) []SyncedActivity {
	return s.store.List(ctx)
}

func (s *Service) Count(ctx context.Context) int {
	return s.store.Len(ctx)
}
