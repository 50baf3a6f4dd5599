package repo

import (
	"context"
	"time"

	"skyshop-account-api/internal/avatar"
	"skyshop-account-api/internal/core/cache"
	"skyshop-account-api/internal/domain"
)

const userCacheTTL = 5 * time.Minute

// CachedUserRepo wraps a UserRepository with a redis read-through cache on
// FindByID, the lookup the authentication middleware performs on every
// protected request. Every write invalidates the entry. With a nil cache it
// degrades to plain pass-through.
type CachedUserRepo struct {
	domain.UserRepository
	cache *cache.Cache
}

func NewCachedUserRepo(inner domain.UserRepository, c *cache.Cache) *CachedUserRepo {
	return &CachedUserRepo{UserRepository: inner, cache: c}
}

// userRecord is the cache wire form. The entity hides PasswordHash and the
// reset fields from JSON, so the cached copy needs its own serialization to
// round-trip the full record.
type userRecord struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Email     string       `json:"email"`
	Hash      string       `json:"hash"`
	Avatar    avatar.Image `json:"avatar"`
	Role      string       `json:"role"`
	ResetHash *string      `json:"resetHash,omitempty"`
	ResetExp  *time.Time   `json:"resetExp,omitempty"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

func toRecord(u *domain.User) *userRecord {
	if u == nil {
		return nil
	}
	return &userRecord{
		ID: u.ID, Name: u.Name, Email: u.Email, Hash: u.PasswordHash,
		Avatar: u.Avatar, Role: u.Role,
		ResetHash: u.ResetPasswordTokenHash, ResetExp: u.ResetPasswordExpire,
		CreatedAt: u.CreatedAt, UpdatedAt: u.UpdatedAt,
	}
}

func (rec *userRecord) toUser() *domain.User {
	if rec == nil {
		return nil
	}
	return &domain.User{
		ID: rec.ID, Name: rec.Name, Email: rec.Email, PasswordHash: rec.Hash,
		Avatar: rec.Avatar, Role: rec.Role,
		ResetPasswordTokenHash: rec.ResetHash, ResetPasswordExpire: rec.ResetExp,
		CreatedAt: rec.CreatedAt, UpdatedAt: rec.UpdatedAt,
	}
}

func userKey(id string) string { return "user:" + id }

func (r *CachedUserRepo) FindByID(ctx context.Context, id string) (*domain.User, error) {
	rec, err := cache.GetOrLoadJSON[userRecord](r.cache, ctx, userKey(id), userCacheTTL,
		func(ctx context.Context) (*userRecord, error) {
			u, err := r.UserRepository.FindByID(ctx, id)
			if err != nil {
				return nil, err
			}
			return toRecord(u), nil
		})
	if err != nil {
		return nil, err
	}
	return rec.toUser(), nil
}

func (r *CachedUserRepo) Update(ctx context.Context, u *domain.User) error {
	err := r.UserRepository.Update(ctx, u)
	r.cache.Invalidate(ctx, userKey(u.ID))
	return err
}

func (r *CachedUserRepo) UpdateColumns(ctx context.Context, id string, cols map[string]any) error {
	err := r.UserRepository.UpdateColumns(ctx, id, cols)
	r.cache.Invalidate(ctx, userKey(id))
	return err
}

func (r *CachedUserRepo) Delete(ctx context.Context, id string) error {
	err := r.UserRepository.Delete(ctx, id)
	r.cache.Invalidate(ctx, userKey(id))
	return err
}

// Create invalidates too, in case the id was negative-cached before.
func (r *CachedUserRepo) Create(ctx context.Context, u *domain.User) error {
	err := r.UserRepository.Create(ctx, u)
	r.cache.Invalidate(ctx, userKey(u.ID))
	return err
}
