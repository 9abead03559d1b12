package auth

import (
	"testing"
	"time"

	"devjobs/board-api/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestResetUnknownEmail(t *testing.T) {
	s, mail := newTestService(t)

	err := s.RequestReset("nobody@test.com")
	assert.ErrorIs(t, err, ErrUserNotFound)

	// No token issued, no mail sent
	assert.Empty(t, mail.sent)
}

func TestRequestResetIssuesToken(t *testing.T) {
	s, mail := newTestService(t)

	_, err := s.Register("Dev", "dev@test.com", "secret123")
	require.NoError(t, err)

	require.NoError(t, s.RequestReset("dev@test.com"))

	var user model.User
	require.NoError(t, s.DB.Where("email = ?", "dev@test.com").First(&user).Error)

	require.NotNil(t, user.ResetToken)
	require.NotNil(t, user.ResetExpires)
	assert.Len(t, *user.ResetToken, 40)
	assert.WithinDuration(t, time.Now().Add(time.Hour), *user.ResetExpires, 5*time.Second)

	require.Len(t, mail.sent, 1)
	assert.Equal(t, "dev@test.com", mail.sent[0].To)
	assert.Equal(t, "reset", mail.sent[0].Template)
	assert.Contains(t, mail.sent[0].Context["reset_url"], "/reestablecer-password/"+*user.ResetToken)
}

func TestRequestResetDeliveryFailureKeepsToken(t *testing.T) {
	s, mail := newTestService(t)
	mail.err = assert.AnError

	_, err := s.Register("Dev", "dev@test.com", "secret123")
	require.NoError(t, err)

	err = s.RequestReset("dev@test.com")
	assert.ErrorIs(t, err, ErrDelivery)

	// The token stays persisted, the user can just request again
	var user model.User
	require.NoError(t, s.DB.Where("email = ?", "dev@test.com").First(&user).Error)
	assert.NotNil(t, user.ResetToken)
	assert.NotNil(t, user.ResetExpires)
}

func TestValidateToken(t *testing.T) {
	s, _ := newTestService(t)

	user, err := s.Register("Dev", "dev@test.com", "secret123")
	require.NoError(t, err)

	require.NoError(t, s.RequestReset("dev@test.com"))

	var stored model.User
	require.NoError(t, s.DB.First(&stored, "id = ?", user.ID).Error)
	token := *stored.ResetToken

	got, err := s.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = s.ValidateToken("deadbeef")
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, err = s.ValidateToken("")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestValidateTokenExpiry(t *testing.T) {
	s, _ := newTestService(t)

	user, err := s.Register("Dev", "dev@test.com", "secret123")
	require.NoError(t, err)

	require.NoError(t, s.RequestReset("dev@test.com"))

	var stored model.User
	require.NoError(t, s.DB.First(&stored, "id = ?", user.ID).Error)
	token := *stored.ResetToken

	// Just inside the window it still validates
	err = s.DB.Model(&stored).Update("reset_expires", time.Now().Add(200*time.Millisecond)).Error
	require.NoError(t, err)

	_, err = s.ValidateToken(token)
	assert.NoError(t, err)

	// Just past the window it's indistinguishable from an unknown token
	err = s.DB.Model(&stored).Update("reset_expires", time.Now().Add(-time.Millisecond)).Error
	require.NoError(t, err)

	_, err = s.ValidateToken(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestConsumeToken(t *testing.T) {
	s, _ := newTestService(t)

	user, err := s.Register("Dev", "dev@test.com", "secret123")
	require.NoError(t, err)

	require.NoError(t, s.RequestReset("dev@test.com"))

	var stored model.User
	require.NoError(t, s.DB.First(&stored, "id = ?", user.ID).Error)
	token := *stored.ResetToken

	require.NoError(t, s.ConsumeToken(token, "newpass99"))

	// The credential changed and the token fields are gone. Fetched
	// into a fresh struct, gorm leaves pointer fields stale when
	// scanning NULL over a populated destination
	var after model.User
	require.NoError(t, s.DB.First(&after, "id = ?", user.ID).Error)
	assert.Nil(t, after.ResetToken)
	assert.Nil(t, after.ResetExpires)
	assert.True(t, s.Hasher.Verify("newpass99", after.PasswordHash))

	_, err = s.Authenticate("dev@test.com", "secret123")
	assert.ErrorIs(t, err, ErrInvalidCredential)

	_, err = s.Authenticate("dev@test.com", "newpass99")
	assert.NoError(t, err)
}

func TestConsumeTokenOnlyOnce(t *testing.T) {
	s, _ := newTestService(t)

	user, err := s.Register("Dev", "dev@test.com", "secret123")
	require.NoError(t, err)

	require.NoError(t, s.RequestReset("dev@test.com"))

	var stored model.User
	require.NoError(t, s.DB.First(&stored, "id = ?", user.ID).Error)
	token := *stored.ResetToken

	require.NoError(t, s.ConsumeToken(token, "newpass99"))

	// The second consumer observes the token already cleared and
	// must not overwrite the first one's password
	err = s.ConsumeToken(token, "otherpass1")
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, err = s.Authenticate("dev@test.com", "newpass99")
	assert.NoError(t, err)
}

func TestConsumeExpiredToken(t *testing.T) {
	s, _ := newTestService(t)

	user, err := s.Register("Dev", "dev@test.com", "secret123")
	require.NoError(t, err)

	require.NoError(t, s.RequestReset("dev@test.com"))

	var stored model.User
	require.NoError(t, s.DB.First(&stored, "id = ?", user.ID).Error)
	token := *stored.ResetToken

	require.NoError(t, s.DB.Model(&stored).Update("reset_expires", time.Now().Add(-time.Second)).Error)

	err = s.ConsumeToken(token, "newpass99")
	assert.ErrorIs(t, err, ErrTokenInvalid)

	// Old credential still works
	_, err = s.Authenticate("dev@test.com", "secret123")
	assert.NoError(t, err)
}
