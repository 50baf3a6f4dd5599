package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"skyshop-account-api/internal/domain"
	"skyshop-account-api/internal/errs"
)

type adminEnv struct {
	svc     *Admin
	repo    *memUserRepo
	avatars *memAvatarStore
}

func newAdminEnv(t *testing.T) *adminEnv {
	t.Helper()
	repo := newMemUserRepo()
	avatars := &memAvatarStore{}
	return &adminEnv{svc: NewAdmin(repo, avatars, zap.NewNop()), repo: repo, avatars: avatars}
}

func (e *adminEnv) seed(t *testing.T, id, name, email string) {
	t.Helper()
	u := &domain.User{ID: id, Name: name, Email: email, Role: domain.RoleUser}
	require.NoError(t, u.SetPassword("seeded-password"))
	u.Avatar.ExternalID = "avatars/" + id
	u.Avatar.URL = "http://img.local/avatars/" + id
	require.NoError(t, e.repo.Create(context.Background(), u))
}

func TestAdminGet(t *testing.T) {
	env := newAdminEnv(t)
	env.seed(t, "u1", "Alice", "a@x.com")

	u, err := env.svc.Get(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", u.Email)
}

func TestAdminGetMissing(t *testing.T) {
	env := newAdminEnv(t)

	_, err := env.svc.Get(context.Background(), "nope")
	require.Error(t, err)
	kind, ok := errs.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, errs.KindNotFound, kind)
	assert.Contains(t, err.Error(), "nope")
}

func TestAdminUpdateRole(t *testing.T) {
	env := newAdminEnv(t)
	env.seed(t, "u1", "Alice", "a@x.com")

	u, err := env.svc.UpdateRole(context.Background(), "u1", "Alice A", "a2@x.com", domain.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, u.Role)

	stored := env.repo.get("u1")
	assert.Equal(t, "Alice A", stored.Name)
	assert.Equal(t, "a2@x.com", stored.Email)
	assert.Equal(t, domain.RoleAdmin, stored.Role)
}

func TestAdminUpdateRoleRejectsUnknownRole(t *testing.T) {
	env := newAdminEnv(t)
	env.seed(t, "u1", "Alice", "a@x.com")

	_, err := env.svc.UpdateRole(context.Background(), "u1", "Alice", "a@x.com", "superuser")
	kind, ok := errs.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, errs.KindBadRequest, kind)
	assert.Equal(t, domain.RoleUser, env.repo.get("u1").Role)
}

func TestAdminDelete(t *testing.T) {
	env := newAdminEnv(t)
	env.seed(t, "u1", "Alice", "a@x.com")

	require.NoError(t, env.svc.Delete(context.Background(), "u1"))
	assert.Nil(t, env.repo.get("u1"))
	assert.Equal(t, []string{"avatars/u1"}, env.avatars.destroyed)
}

func TestAdminDeleteMissing(t *testing.T) {
	env := newAdminEnv(t)

	err := env.svc.Delete(context.Background(), "nope")
	kind, ok := errs.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, errs.KindNotFound, kind)
	assert.Empty(t, env.avatars.destroyed)
}

func TestAdminList(t *testing.T) {
	env := newAdminEnv(t)
	env.seed(t, "u1", "Alice", "a@x.com")
	env.seed(t, "u2", "Bob", "b@y.com")

	all, total, err := env.svc.List(context.Background(), domain.ListFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, all, 2)

	filtered, total, err := env.svc.List(context.Background(), domain.ListFilter{Query: "b@y"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, filtered, 1)
	assert.Equal(t, "Bob", filtered[0].Name)
}

func TestAdminListByRole(t *testing.T) {
	env := newAdminEnv(t)
	env.seed(t, "u1", "Alice", "a@x.com")
	env.seed(t, "u2", "Bob", "b@y.com")

	_, err := env.svc.UpdateRole(context.Background(), "u2", "Bob", "b@y.com", domain.RoleAdmin)
	require.NoError(t, err)

	admins, total, err := env.svc.List(context.Background(), domain.ListFilter{Role: domain.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, admins, 1)
	assert.Equal(t, "u2", admins[0].ID)
}
