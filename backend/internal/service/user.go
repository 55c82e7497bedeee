package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/flvvius/hackathon-sisc-2025/shared/domain"
	internal_errors "github.com/flvvius/hackathon-sisc-2025/shared/errors"
	"github.com/flvvius/hackathon-sisc-2025/shared/logger"
	"github.com/flvvius/hackathon-sisc-2025/shared/middleware/metrics"
)

const maxUsernameLen = 39

type UserService interface {
	EnsureUser(ctx context.Context, identity domain.Identity) (*domain.User, error)
	Me(ctx context.Context, actor domain.UserId) (domain.User, error)
	UpdateProfile(ctx context.Context, actor domain.UserId, data domain.ProfileUpdateData) (domain.User, error)
}

type UserStorage interface {
	EnsureUser(ctx context.Context, identity domain.Identity) (domain.User, error)
	GetUser(ctx context.Context, id domain.UserId) (domain.User, error)
	UpdateProfile(ctx context.Context, id domain.UserId, data domain.ProfileUpdateData) (domain.User, error)
}

// User mirrors identities into the store. Recently ensured identities are
// remembered for ttl so authenticated requests do not write every time; the
// cache only skips the upsert and never holds unsaved state.
type User struct {
	storage UserStorage
	ttl     time.Duration
	now     func() time.Time

	mu    sync.Mutex
	cache map[domain.UserId]userCacheEntry
}

type userCacheEntry struct {
	identity domain.Identity
	user     domain.User
	expires  time.Time
}

func NewUser(storage UserStorage, ttl time.Duration) *User {
	return &User{
		storage: storage,
		ttl:     ttl,
		now:     time.Now,
		cache:   make(map[domain.UserId]userCacheEntry),
	}
}

// EnsureUser upserts the identity unless the same identity was ensured
// within the ttl.
func (u *User) EnsureUser(ctx context.Context, identity domain.Identity) (*domain.User, error) {
	if strings.TrimSpace(identity.Id) == "" {
		return nil, &internal_errors.PermissionError{Message: "Identity has no user id", Unauthenticated: true}
	}
	now := u.now()

	u.mu.Lock()
	entry, ok := u.cache[identity.Id]
	u.mu.Unlock()
	if ok && entry.identity == identity && now.Before(entry.expires) {
		metrics.UserCacheHits.WithLabelValues("hit").Inc()
		user := entry.user
		return &user, nil
	}
	metrics.UserCacheHits.WithLabelValues("miss").Inc()

	user, err := u.storage.EnsureUser(ctx, identity)
	if err != nil {
		return nil, err
	}
	if u.ttl > 0 {
		u.mu.Lock()
		u.cache[identity.Id] = userCacheEntry{identity: identity, user: user, expires: now.Add(u.ttl)}
		u.mu.Unlock()
	}
	return &user, nil
}

func (u *User) Me(ctx context.Context, actor domain.UserId) (domain.User, error) {
	if actor == "" {
		return domain.User{}, errUnauthenticated
	}
	return u.storage.GetUser(ctx, actor)
}

// UpdateProfile sets third-party usernames; an empty string clears one.
func (u *User) UpdateProfile(ctx context.Context, actor domain.UserId, data domain.ProfileUpdateData) (domain.User, error) {
	if actor == "" {
		return domain.User{}, errUnauthenticated
	}
	if data.GithubUsername == nil && data.GitlabUsername == nil {
		return domain.User{}, errNothingToUpdate
	}
	for name, v := range map[string]**string{"GitHub": &data.GithubUsername, "GitLab": &data.GitlabUsername} {
		if *v == nil {
			continue
		}
		trimmed := strings.TrimSpace(**v)
		if len(trimmed) > maxUsernameLen || strings.ContainsAny(trimmed, " /") {
			return domain.User{}, &internal_errors.ValidationError{Message: fmt.Sprintf("Invalid %s username", name)}
		}
		*v = &trimmed
	}

	user, err := u.storage.UpdateProfile(ctx, actor, data)
	if err != nil {
		return domain.User{}, err
	}
	u.mu.Lock()
	delete(u.cache, actor)
	u.mu.Unlock()
	return user, nil
}

// StartCacheCleanup drops expired entries every interval until ctx is done.
func (u *User) StartCacheCleanup(ctx context.Context, interval time.Duration) {
	log := logger.Component("user_cache")
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				log.Info("stopping")
				return
			case <-ticker.C:
				if n := u.evictExpired(); n > 0 {
					log.Debug("evicted expired users", "count", n)
				}
			}
		}
	}()
}

func (u *User) evictExpired() int {
	now := u.now()
	u.mu.Lock()
	defer u.mu.Unlock()
	n := 0
	for id, e := range u.cache {
		if !now.Before(e.expires) {
			delete(u.cache, id)
			n++
		}
	}
	return n
}
