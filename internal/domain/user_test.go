package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetPassword(t *testing.T) {
	u := &User{}
	require.NoError(t, u.SetPassword("hunter2hunter2"))
	assert.NotEqual(t, "hunter2hunter2", u.PasswordHash)
	assert.True(t, u.CheckPassword("hunter2hunter2"))
	assert.False(t, u.CheckPassword("hunter2"))
}

func TestSetPasswordRehashes(t *testing.T) {
	u := &User{}
	require.NoError(t, u.SetPassword("first-secret"))
	old := u.PasswordHash
	require.NoError(t, u.SetPassword("second-secret"))
	assert.NotEqual(t, old, u.PasswordHash)
	assert.False(t, u.CheckPassword("first-secret"))
	assert.True(t, u.CheckPassword("second-secret"))
}

func TestResetFieldsArePair(t *testing.T) {
	u := &User{}
	assert.Nil(t, u.ResetPasswordTokenHash)
	assert.Nil(t, u.ResetPasswordExpire)

	exp := time.Now().Add(15 * time.Minute)
	u.StartReset("abc123", exp)
	require.NotNil(t, u.ResetPasswordTokenHash)
	require.NotNil(t, u.ResetPasswordExpire)
	assert.Equal(t, "abc123", *u.ResetPasswordTokenHash)
	assert.Equal(t, exp, *u.ResetPasswordExpire)

	u.ClearReset()
	assert.Nil(t, u.ResetPasswordTokenHash)
	assert.Nil(t, u.ResetPasswordExpire)
}
