package auth

import (
	"errors"
	"fmt"
	"time"

	"devjobs/board-api/internal/model"
	"devjobs/board-api/internal/service"
	"devjobs/board-api/pkg/security"

	"gorm.io/gorm"
)

// RequestReset issues a fresh reset token for the account behind
// email and mails out the reset link. The previous token, if any,
// is replaced. A failed delivery does not roll back the token, the
// user can simply request again
func (s *Service) RequestReset(email string) error {
	var user model.User

	err := s.DB.Where("email = ?", NormalizeEmail(email)).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}

		return fmt.Errorf("failed to look up user, %w", err)
	}

	token, expires, err := security.MakeResetToken()
	if err != nil {
		return fmt.Errorf("failed to generate reset token, %w", err)
	}

	err = s.DB.Model(&user).
		Updates(map[string]any{
			"reset_token":   token,
			"reset_expires": expires,
		}).Error
	if err != nil {
		return fmt.Errorf("failed to persist reset token, %w", err)
	}

	err = s.Mail.Send(&service.Mail{
		To:       user.Email,
		Subject:  "Reestablecer Contraseña",
		Template: "reset",
		Context: map[string]string{
			"reset_url": fmt.Sprintf("%s/reestablecer-password/%s", s.Origin, token),
		},
	})
	if err != nil {
		return fmt.Errorf("%w, %v", ErrDelivery, err)
	}

	return nil
}

// ValidateToken resolves a reset token to its account. Expired and
// unknown tokens fail the same way
func (s *Service) ValidateToken(token string) (*model.User, error) {
	if token == "" {
		return nil, ErrTokenInvalid
	}

	var user model.User

	err := s.DB.
		Where("reset_token = ? AND reset_expires > ?", token, time.Now()).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTokenInvalid
		}

		return nil, fmt.Errorf("failed to look up reset token, %w", err)
	}

	return &user, nil
}

// ConsumeToken replaces the credential behind a still-valid token
// and burns the token. The check and the clear happen in one
// conditional update so two racing consumers can't both win
func (s *Service) ConsumeToken(token, newPassword string) error {
	if token == "" {
		return ErrTokenInvalid
	}

	hash, err := s.Hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password, %w", err)
	}

	r := s.DB.Model(model.User{}).
		Where("reset_token = ? AND reset_expires > ?", token, time.Now()).
		Updates(map[string]any{
			"password_hash": hash,
			"reset_token":   nil,
			"reset_expires": nil,
		})
	if r.Error != nil {
		return fmt.Errorf("failed to update credential, %w", r.Error)
	}

	if r.RowsAffected == 0 {
		return ErrTokenInvalid
	}

	return nil
}
