package repository

import (
	"context"
	"sync"
	"time"

	"github.com/comitanigiacomo/kanso-saturation/internal/core/domain"
)

var _ domain.SessionRepository = (*InMemorySessionRepository)(nil)

// InMemorySessionRepository keeps sessions in process memory. Sessions are
// copied on the way in and out so callers never share entry slices.
type InMemorySessionRepository struct {
	store map[string]*domain.Session

	mu sync.RWMutex
}

func NewInMemorySessionRepository() *InMemorySessionRepository {
	return &InMemorySessionRepository{
		store: make(map[string]*domain.Session),
	}
}

func (r *InMemorySessionRepository) Create(ctx context.Context, session *domain.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.store[session.ID]; exists {
		return domain.ErrSessionConflict
	}

	r.store[session.ID] = session.Clone()
	return nil
}

func (r *InMemorySessionRepository) GetByID(ctx context.Context, id string) (*domain.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, ok := r.store[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return session.Clone(), nil
}

func (r *InMemorySessionRepository) Update(ctx context.Context, session *domain.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.store[session.ID]
	if !ok {
		return domain.ErrSessionNotFound
	}
	if existing.Version != session.Version {
		return domain.ErrSessionConflict
	}

	session.Version++
	session.UpdatedAt = time.Now().UTC()
	r.store[session.ID] = session.Clone()
	return nil
}

func (r *InMemorySessionRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.store[id]; !ok {
		return domain.ErrSessionNotFound
	}

	delete(r.store, id)
	return nil
}

func (r *InMemorySessionRepository) DeleteIdle(ctx context.Context, before time.Time) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var removed []string
	for id, s := range r.store {
		if s.UpdatedAt.Before(before) {
			delete(r.store, id)
			removed = append(removed, id)
		}
	}
	return removed, nil
}
