package auth

import (
	"context"

	"github.com/glowdesk/glowdesk/internal/cache"
	"github.com/glowdesk/glowdesk/internal/domain/user"
	"github.com/glowdesk/glowdesk/internal/logger"
	"github.com/glowdesk/glowdesk/internal/types"
)

// RoleResolver resolves the billing role of an actor. Resolution happens
// once per request at the auth boundary; services receive the resolved role
// through the request context and never look it up themselves.
type RoleResolver interface {
	// ResolveRole returns the role of the given user
	ResolveRole(ctx context.Context, userID string) (types.UserRole, error)

	// InvalidateRole drops the cached role for a user so the next
	// resolution re-reads the store.
	InvalidateRole(ctx context.Context, userID string)
}

type roleResolver struct {
	userRepo user.Repository
	cache    cache.Cache
	logger   *logger.Logger
}

// NewRoleResolver creates a read-through, cache-backed role resolver
func NewRoleResolver(userRepo user.Repository, c cache.Cache, log *logger.Logger) RoleResolver {
	return &roleResolver{
		userRepo: userRepo,
		cache:    c,
		logger:   log,
	}
}

func (r *roleResolver) ResolveRole(ctx context.Context, userID string) (types.UserRole, error) {
	key := cache.GenerateKey(cache.PrefixRole, userID)

	if cached, found := r.cache.Get(ctx, key); found {
		if role, ok := cached.(types.UserRole); ok {
			return role, nil
		}
	}

	u, err := r.userRepo.Get(ctx, userID)
	if err != nil {
		return "", err
	}

	r.cache.Set(ctx, key, u.Role, cache.DefaultExpiration)
	return u.Role, nil
}

func (r *roleResolver) InvalidateRole(ctx context.Context, userID string) {
	r.cache.Delete(ctx, cache.GenerateKey(cache.PrefixRole, userID))
	r.logger.Debugw("invalidated cached role", "user_id", userID)
}
