package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"skyshop-account-api/internal/avatar"
	"skyshop-account-api/internal/domain"
	"skyshop-account-api/internal/mail"
)

// memUserRepo is an in-memory UserRepository for tests.
type memUserRepo struct {
	mu   sync.Mutex
	byID map[string]*domain.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{byID: make(map[string]*domain.User)}
}

func clone(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	cp := *u
	if u.ResetPasswordTokenHash != nil {
		h := *u.ResetPasswordTokenHash
		cp.ResetPasswordTokenHash = &h
	}
	if u.ResetPasswordExpire != nil {
		e := *u.ResetPasswordExpire
		cp.ResetPasswordExpire = &e
	}
	return &cp
}

func (r *memUserRepo) Create(_ context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ex := range r.byID {
		if ex.Email == u.Email {
			return errors.New(`duplicate key value violates unique constraint "idx_users_email"`)
		}
	}
	u.CreatedAt = time.Now()
	r.byID[u.ID] = clone(u)
	return nil
}

func (r *memUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return clone(r.byID[id]), nil
}

func (r *memUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byID {
		if u.Email == email {
			return clone(u), nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) FindByResetToken(_ context.Context, tokenHash string, now time.Time) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byID {
		if u.ResetPasswordTokenHash != nil && *u.ResetPasswordTokenHash == tokenHash &&
			u.ResetPasswordExpire != nil && u.ResetPasswordExpire.After(now) {
			return clone(u), nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) List(_ context.Context, f domain.ListFilter) ([]domain.User, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.User
	for _, u := range r.byID {
		if f.Query != "" && !strings.Contains(u.Email, f.Query) && !strings.Contains(u.Name, f.Query) {
			continue
		}
		if f.Role != "" && u.Role != f.Role {
			continue
		}
		out = append(out, *clone(u))
	}
	return out, int64(len(out)), nil
}

func (r *memUserRepo) Update(_ context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, ex := range r.byID {
		if id != u.ID && ex.Email == u.Email {
			return errors.New(`duplicate key value violates unique constraint "idx_users_email"`)
		}
	}
	if _, ok := r.byID[u.ID]; !ok {
		return errors.New("record not found")
	}
	r.byID[u.ID] = clone(u)
	return nil
}

func (r *memUserRepo) UpdateColumns(_ context.Context, id string, cols map[string]any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return errors.New("record not found")
	}
	if v, ok := cols["reset_password_token_hash"]; ok {
		if v == nil {
			u.ResetPasswordTokenHash = nil
		} else {
			s := v.(string)
			u.ResetPasswordTokenHash = &s
		}
	}
	if v, ok := cols["reset_password_expire"]; ok {
		if v == nil {
			u.ResetPasswordExpire = nil
		} else {
			e := v.(time.Time)
			u.ResetPasswordExpire = &e
		}
	}
	return nil
}

func (r *memUserRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byID, id)
	return nil
}

// get is a test helper reading the stored record directly.
func (r *memUserRepo) get(id string) *domain.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	return clone(r.byID[id])
}

// memAvatarStore records uploads and destroys.
type memAvatarStore struct {
	mu        sync.Mutex
	n         int
	uploadErr error
	destroyed []string
}

func (s *memAvatarStore) Upload(_ context.Context, data []byte, contentType string) (avatar.Image, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.uploadErr != nil {
		return avatar.Image{}, s.uploadErr
	}
	s.n++
	id := fmt.Sprintf("avatars/fake-%d", s.n)
	return avatar.Image{ExternalID: id, URL: "http://img.local/" + id}, nil
}

func (s *memAvatarStore) Destroy(_ context.Context, externalID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.destroyed = append(s.destroyed, externalID)
	return nil
}

// memMailer captures outbound mail; sendErr simulates transport failure.
type memMailer struct {
	mu      sync.Mutex
	sent    []mail.Message
	sendErr error
}

func (m *memMailer) Send(_ context.Context, msg mail.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sendErr != nil {
		return m.sendErr
	}
	m.sent = append(m.sent, msg)
	return nil
}

func (m *memMailer) last() *mail.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.sent) == 0 {
		return nil
	}
	return &m.sent[len(m.sent)-1]
}
