package domain

import (
	"context"
	"time"

	"gorm.io/gorm"

	"skyshop-account-api/internal/avatar"
	"skyshop-account-api/pkg/utils"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is the credential-store record. The password hash is hidden from JSON
// and must only be written through SetPassword, which always re-hashes. The
// two reset fields are a pair: both set while a reset is pending, both nil
// otherwise.
type User struct {
	ID           string       `gorm:"primaryKey;size:36" json:"id"`
	Name         string       `gorm:"size:64;not null" json:"name"`
	Email        string       `gorm:"uniqueIndex;size:191;not null" json:"email"`
	PasswordHash string       `gorm:"size:100;not null" json:"-"`
	Avatar       avatar.Image `gorm:"embedded;embeddedPrefix:avatar_" json:"avatar"`
	Role         string       `gorm:"size:16;not null;default:user" json:"role"`

	ResetPasswordTokenHash *string    `gorm:"size:64" json:"-"`
	ResetPasswordExpire    *time.Time `json:"-"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string { return "users" }

// SetPassword replaces the stored secret with the bcrypt hash of plain.
// There is no other way to write PasswordHash.
func (u *User) SetPassword(plain string) error {
	h, err := utils.HashPassword(plain)
	if err != nil {
		return err
	}
	u.PasswordHash = h
	return nil
}

func (u *User) CheckPassword(plain string) bool {
	return utils.CheckPassword(plain, u.PasswordHash)
}

// StartReset records a pending reset token; ClearReset removes it. Keeping
// these together is what maintains the both-or-neither invariant.
func (u *User) StartReset(tokenHash string, expires time.Time) {
	u.ResetPasswordTokenHash = &tokenHash
	u.ResetPasswordExpire = &expires
}

func (u *User) ClearReset() {
	u.ResetPasswordTokenHash = nil
	u.ResetPasswordExpire = nil
}

// ListFilter narrows admin listings.
type ListFilter struct {
	Offset int
	Limit  int
	Query  string // matches email or name
	Role   string // exact match when set
}

// UserRepository is the persistence boundary. Lookups return (nil, nil) when
// no record matches.
type UserRepository interface {
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	// FindByResetToken matches the stored token hash and requires the
	// expiry to be strictly after now.
	FindByResetToken(ctx context.Context, tokenHash string, now time.Time) (*User, error)
	List(ctx context.Context, f ListFilter) ([]User, int64, error)
	Update(ctx context.Context, u *User) error
	// UpdateColumns writes the given columns without touching the rest of
	// the record and without full validation (reset-token bookkeeping).
	UpdateColumns(ctx context.Context, id string, cols map[string]any) error
	Delete(ctx context.Context, id string) error
}
