package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"skyshop-account-api/internal/avatar"
	"skyshop-account-api/internal/core/auth"
	"skyshop-account-api/internal/core/token"
	"skyshop-account-api/internal/domain"
	"skyshop-account-api/internal/errs"
	"skyshop-account-api/internal/mail"
	"skyshop-account-api/internal/repo"
	"skyshop-account-api/pkg/utils"
)

// Accounts orchestrates the account use cases: register, login, password
// reset, profile and password updates. All failures come back as errs values
// so the transport layer can map them to statuses.
type Accounts struct {
	users    domain.UserRepository
	avatars  avatar.Store
	mailer   mail.Mailer
	jwt      *auth.JWTer
	resetTTL time.Duration
	// publicURL is the externally reachable base used in reset links.
	publicURL string
	appName   string
	log       *zap.Logger
}

func NewAccounts(users domain.UserRepository, avatars avatar.Store, mailer mail.Mailer,
	jwt *auth.JWTer, resetTTL time.Duration, publicURL, appName string, log *zap.Logger) *Accounts {
	return &Accounts{
		users: users, avatars: avatars, mailer: mailer, jwt: jwt,
		resetTTL: resetTTL, publicURL: publicURL, appName: appName, log: log,
	}
}

// Session is an issued session token plus the user it belongs to.
type Session struct {
	Token string
	User  *domain.User
}

func (s *Accounts) issueSession(u *domain.User) (*Session, error) {
	tok, err := s.jwt.Issue(u.ID, u.Role)
	if err != nil {
		return nil, errs.Upstream("failed to issue session token", err)
	}
	return &Session{Token: tok, User: u}, nil
}

// Register uploads the avatar first; the user record is only created once the
// image store has accepted the file.
func (s *Accounts) Register(ctx context.Context, name, email, password string, avatarData []byte, contentType string) (*Session, error) {
	img, err := s.avatars.Upload(ctx, avatarData, contentType)
	if err != nil {
		return nil, errs.Upstream("avatar upload failed", err)
	}

	u := &domain.User{
		ID:     utils.NewID(),
		Name:   name,
		Email:  email,
		Avatar: img,
		Role:   domain.RoleUser,
	}
	if err := u.SetPassword(password); err != nil {
		return nil, errs.Upstream("failed to hash password", err)
	}
	if err := s.users.Create(ctx, u); err != nil {
		if repo.IsDuplicate(err) {
			return nil, errs.BadRequest("email is already registered")
		}
		return nil, errs.Upstream("failed to create user", err)
	}
	return s.issueSession(u)
}

// Login keeps the unknown-email and wrong-password failures identical.
func (s *Accounts) Login(ctx context.Context, email, password string) (*Session, error) {
	if email == "" || password == "" {
		return nil, errs.BadRequest("please enter email and password")
	}
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, errs.Upstream("failed to look up user", err)
	}
	if u == nil || !u.CheckPassword(password) {
		return nil, errs.InvalidCredentials()
	}
	return s.issueSession(u)
}

// ForgotPassword issues a reset token, persists only its hash, and emails the
// plaintext link. A failed send rolls the pending-reset fields back before
// reporting, so no unusable reset state is left behind.
func (s *Accounts) ForgotPassword(ctx context.Context, email string) error {
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return errs.Upstream("failed to look up user", err)
	}
	if u == nil {
		return errs.NotFound("user not found")
	}

	t, err := token.NewReset(s.resetTTL)
	if err != nil {
		return errs.Upstream("failed to generate reset token", err)
	}
	if err := s.users.UpdateColumns(ctx, u.ID, map[string]any{
		"reset_password_token_hash": t.Hash,
		"reset_password_expire":     t.ExpiresAt,
	}); err != nil {
		return errs.Upstream("failed to store reset token", err)
	}

	resetURL := fmt.Sprintf("%s/password/reset/%s", s.publicURL, t.Plain)
	msg := mail.Message{
		To:      u.Email,
		Subject: fmt.Sprintf("%s Password Recovery", s.appName),
		Body: fmt.Sprintf("Your password reset token is :- \n\n %s \n\n"+
			"If you have not requested this email, then please ignore it.", resetURL),
	}
	if err := s.mailer.Send(ctx, msg); err != nil {
		if rbErr := s.users.UpdateColumns(ctx, u.ID, map[string]any{
			"reset_password_token_hash": nil,
			"reset_password_expire":     nil,
		}); rbErr != nil {
			s.log.Error("reset rollback failed", zap.String("user", u.ID), zap.Error(rbErr))
		}
		return errs.EmailDelivery("failed to send password reset email", err)
	}
	return nil
}

// ResetPassword consumes a reset token: the stored hash must match and the
// expiry must still be in the future. Success clears the token, so it cannot
// be replayed.
func (s *Accounts) ResetPassword(ctx context.Context, plainToken, password, confirm string) (*Session, error) {
	u, err := s.users.FindByResetToken(ctx, token.Hash(plainToken), time.Now())
	if err != nil {
		return nil, errs.Upstream("failed to look up reset token", err)
	}
	if u == nil {
		return nil, errs.InvalidToken("reset password token is invalid or has expired")
	}
	if password != confirm {
		return nil, errs.BadRequest("password does not match")
	}
	if err := u.SetPassword(password); err != nil {
		return nil, errs.Upstream("failed to hash password", err)
	}
	u.ClearReset()
	if err := s.users.Update(ctx, u); err != nil {
		return nil, errs.Upstream("failed to update password", err)
	}
	return s.issueSession(u)
}

// UpdatePassword leaves the record untouched unless the old password checks
// out and the confirmation matches.
func (s *Accounts) UpdatePassword(ctx context.Context, u *domain.User, oldPw, newPw, confirm string) (*Session, error) {
	if !u.CheckPassword(oldPw) {
		return nil, errs.BadRequest("old password is incorrect")
	}
	if newPw != confirm {
		return nil, errs.BadRequest("password does not match")
	}
	if err := u.SetPassword(newPw); err != nil {
		return nil, errs.Upstream("failed to hash password", err)
	}
	if err := s.users.Update(ctx, u); err != nil {
		return nil, errs.Upstream("failed to update password", err)
	}
	return s.issueSession(u)
}

// UpdateProfile changes name/email and, when avatarData is non-nil, replaces
// the stored avatar. The old image is destroyed before the new upload; if the
// upload then fails the record keeps a stale reference. That gap is accepted,
// the two external calls are not a transaction.
func (s *Accounts) UpdateProfile(ctx context.Context, u *domain.User, name, email string, avatarData []byte, contentType string) (*domain.User, error) {
	if avatarData != nil {
		if u.Avatar.ExternalID != "" {
			if err := s.avatars.Destroy(ctx, u.Avatar.ExternalID); err != nil {
				s.log.Warn("old avatar destroy failed",
					zap.String("user", u.ID), zap.String("avatar", u.Avatar.ExternalID), zap.Error(err))
			}
		}
		img, err := s.avatars.Upload(ctx, avatarData, contentType)
		if err != nil {
			return nil, errs.Upstream("avatar upload failed", err)
		}
		u.Avatar = img
	}
	u.Name = name
	u.Email = email
	if err := s.users.Update(ctx, u); err != nil {
		if repo.IsDuplicate(err) {
			return nil, errs.BadRequest("email is already registered")
		}
		return nil, errs.Upstream("failed to update profile", err)
	}
	return u, nil
}

// Me resolves the current user's record.
func (s *Accounts) Me(ctx context.Context, id string) (*domain.User, error) {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, errs.Upstream("failed to look up user", err)
	}
	if u == nil {
		return nil, errs.NotFound("user not found")
	}
	return u, nil
}
