package status

import (
	"context"
	"sync"
	"time"

	"github.com/williampepple1/cricket-scorecard-scraper/pkg/models"
)

// Store keeps the most recent batch for the status API. It is a sink, so the
// poller feeds it the same way it feeds the ingestion endpoint.
type Store struct {
	mu        sync.RWMutex
	batch     models.Batch
	updatedAt time.Time
	cycles    int
	hub       *Hub
}

// NewStore creates a store. hub may be nil.
func NewStore(hub *Hub) *Store {
	return &Store{hub: hub}
}

func (s *Store) Name() string {
	return "status"
}

func (s *Store) Submit(_ context.Context, batch models.Batch) error {
	latest := make(models.Batch, len(batch))
	copy(latest, batch)

	s.mu.Lock()
	s.batch = latest
	s.updatedAt = time.Now()
	s.cycles++
	s.mu.Unlock()

	if s.hub != nil {
		s.hub.Broadcast(Message{Type: MessageBatch, Data: latest.Wire()})
	}
	return nil
}

// Latest returns up to limit records of the newest batch. limit <= 0 returns
// every record.
func (s *Store) Latest(limit int) models.Batch {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 || limit > len(s.batch) {
		limit = len(s.batch)
	}
	out := make(models.Batch, limit)
	copy(out, s.batch[:limit])
	return out
}

// Get returns the record at index of the newest batch
func (s *Store) Get(index int) (models.MatchRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if index < 0 || index >= len(s.batch) {
		return models.MatchRecord{}, false
	}
	return s.batch[index], true
}

// Stats describes what the store has seen so far
type Stats struct {
	Records   int
	Cycles    int
	UpdatedAt time.Time
}

func (s *Store) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Stats{Records: len(s.batch), Cycles: s.cycles, UpdatedAt: s.updatedAt}
}
