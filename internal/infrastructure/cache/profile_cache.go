package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/clinicnavigator/clinic-portal/internal/core/domain"
	"github.com/clinicnavigator/clinic-portal/internal/core/ports"
)

const (
	DefaultTTL             = 30 * time.Second
	DefaultCleanupInterval = time.Minute
)

// ProfileListCache wraps a ProfileRepository and memoises List results, which
// back the doctor picker and the assigned-patient list. Every write flushes
// the cache so a new registration shows up on the next read.
//
// gen counts writes. A List that started before a write does not store its
// result, since it may predate the write.
type ProfileListCache struct {
	ports.ProfileRepository
	cache *gocache.Cache

	mu  sync.Mutex
	gen uint64
}

func NewProfileListCache(next ports.ProfileRepository, ttl, cleanup time.Duration) *ProfileListCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if cleanup <= 0 {
		cleanup = DefaultCleanupInterval
	}
	return &ProfileListCache{
		ProfileRepository: next,
		cache:             gocache.New(ttl, cleanup),
	}
}

func (c *ProfileListCache) List(ctx context.Context, filter ports.ProfileFilter) ([]*domain.Profile, error) {
	key := listKey(filter)
	if cached, found := c.cache.Get(key); found {
		return clone(cached.([]*domain.Profile)), nil
	}

	c.mu.Lock()
	gen := c.gen
	c.mu.Unlock()

	profiles, err := c.ProfileRepository.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	if gen == c.gen {
		c.cache.Set(key, clone(profiles), gocache.DefaultExpiration)
	}
	c.mu.Unlock()
	return profiles, nil
}

func (c *ProfileListCache) invalidate() {
	c.mu.Lock()
	c.gen++
	c.cache.Flush()
	c.mu.Unlock()
}

func (c *ProfileListCache) Create(ctx context.Context, p *domain.Profile) error {
	if err := c.ProfileRepository.Create(ctx, p); err != nil {
		return err
	}
	c.invalidate()
	return nil
}

func (c *ProfileListCache) Merge(ctx context.Context, uid, email string, patch domain.ProfilePatch) (*domain.Profile, error) {
	p, err := c.ProfileRepository.Merge(ctx, uid, email, patch)
	if err != nil {
		return nil, err
	}
	c.invalidate()
	return p, nil
}

func listKey(f ports.ProfileFilter) string {
	return fmt.Sprintf("list:%s:%s", f.Role, f.AssignedDoctorID)
}

// clone copies the slice and the profiles so callers cannot mutate cached entries.
func clone(in []*domain.Profile) []*domain.Profile {
	out := make([]*domain.Profile, len(in))
	for i, p := range in {
		cp := *p
		out[i] = &cp
	}
	return out
}
