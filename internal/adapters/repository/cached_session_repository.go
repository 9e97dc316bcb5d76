package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/comitanigiacomo/kanso-saturation/internal/core/domain"
	"github.com/redis/go-redis/v9"
)

var _ domain.SessionRepository = (*CachedSessionRepository)(nil)

const sessionCacheTTL = 5 * time.Minute

type CachedSessionRepository struct {
	next  domain.SessionRepository
	cache *redis.Client
}

func NewCachedSessionRepository(next domain.SessionRepository, cache *redis.Client) *CachedSessionRepository {
	return &CachedSessionRepository{
		next:  next,
		cache: cache,
	}
}

func (r *CachedSessionRepository) cacheKey(id string) string {
	return fmt.Sprintf("session:%s", id)
}

func (r *CachedSessionRepository) invalidate(ctx context.Context, id string) {
	if err := r.cache.Del(ctx, r.cacheKey(id)).Err(); err != nil {
		log.Printf("[CACHE] Failed to invalidate session %s: %v", id, err)
	}
}

func (r *CachedSessionRepository) GetByID(ctx context.Context, id string) (*domain.Session, error) {
	key := r.cacheKey(id)

	val, err := r.cache.Get(ctx, key).Result()
	if err == nil {
		var session domain.Session
		if err := json.Unmarshal([]byte(val), &session); err == nil {
			return &session, nil
		}

		log.Printf("[CACHE] Corrupted data for session %s, cleaning up key", id)
		r.cache.Del(ctx, key)
	} else if err != redis.Nil {
		log.Printf("[CACHE] Redis read error: %v", err)
	}

	session, err := r.next.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(session); err == nil {
		if setErr := r.cache.Set(ctx, key, data, sessionCacheTTL).Err(); setErr != nil {
			log.Printf("[CACHE] Redis set error: %v", setErr)
		}
	}

	return session, nil
}

func (r *CachedSessionRepository) Create(ctx context.Context, session *domain.Session) error {
	return r.next.Create(ctx, session)
}

func (r *CachedSessionRepository) Update(ctx context.Context, session *domain.Session) error {
	if err := r.next.Update(ctx, session); err != nil {
		return err
	}
	r.invalidate(ctx, session.ID)
	return nil
}

func (r *CachedSessionRepository) Delete(ctx context.Context, id string) error {
	defer r.invalidate(ctx, id)
	return r.next.Delete(ctx, id)
}

func (r *CachedSessionRepository) DeleteIdle(ctx context.Context, before time.Time) ([]string, error) {
	removed, err := r.next.DeleteIdle(ctx, before)
	for _, id := range removed {
		r.invalidate(ctx, id)
	}
	return removed, err
}
