// Package auth implements the authentication and credential reset
// core: registration, login checks and the password reset token
// lifecycle. Handlers translate its errors into HTTP responses
package auth

import (
	"errors"
	"fmt"
	"strings"

	"devjobs/board-api/internal/model"
	"devjobs/board-api/internal/service"
	"devjobs/board-api/pkg/security"
	"devjobs/board-api/pkg/util"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"gorm.io/gorm"
)

const idCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

type Service struct {
	DB     *gorm.DB
	Hasher *security.BcryptHasher
	Mail   service.MailSender

	// Origin is the public base URL embedded into reset links
	Origin string

	// Hash of a throwaway password. Verified against when a login
	// targets an unknown account so both failure branches cost
	// roughly the same
	dummyHash string
}

func NewService(db *gorm.DB, h *security.BcryptHasher, mail service.MailSender, origin string) *Service {
	dummy, _ := h.Hash(util.RandStr(24))

	return &Service{
		DB:        db,
		Hasher:    h,
		Mail:      mail,
		Origin:    origin,
		dummyHash: dummy,
	}
}

// NormalizeEmail lowercases and trims an email so uniqueness checks
// are case-insensitive. Every store operation goes through this
func NormalizeEmail(e string) string {
	return strings.ToLower(strings.TrimSpace(e))
}

// Register creates a new account with a hashed credential. The
// plaintext never reaches the database
func (s *Service) Register(name, email, password string) (*model.User, error) {
	email = NormalizeEmail(email)
	name = strings.TrimSpace(name)

	var taken int64

	err := s.DB.Model(model.User{}).
		Where("email = ?", email).
		Count(&taken).
		Error
	if err != nil {
		return nil, fmt.Errorf("failed to check if user is registered, %w", err)
	}

	if taken > 0 {
		return nil, ErrEmailTaken
	}

	hash, err := s.Hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password, %w", err)
	}

	userID, err := gonanoid.Generate(idCharset, 16)
	if err != nil {
		return nil, fmt.Errorf("failed to generate user ID, %w", err)
	}

	user := &model.User{
		ID:           userID,
		Email:        email,
		Name:         name,
		PasswordHash: hash,
	}

	if err := s.DB.Create(user).Error; err != nil {
		// Backstop for a concurrent registration slipping past the
		// pre-check and hitting the unique index
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}

		return nil, fmt.Errorf("failed to create user, %w", err)
	}

	return user, nil
}

// Authenticate checks an email/password pair against the stored
// credential and returns the matching user
func (s *Service) Authenticate(email, password string) (*model.User, error) {
	var user model.User

	err := s.DB.Where("email = ?", NormalizeEmail(email)).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Burn the same amount of time as a real comparison
			s.Hasher.Verify(password, s.dummyHash)
			return nil, ErrUserNotFound
		}

		return nil, fmt.Errorf("failed to look up user, %w", err)
	}

	if !s.Hasher.Verify(password, user.PasswordHash) {
		return nil, ErrInvalidCredential
	}

	return &user, nil
}

// UpdateProfile changes name/email and, only when a new plaintext is
// supplied, re-hashes the credential
func (s *Service) UpdateProfile(userID, name, email, password, image string) (*model.User, error) {
	var user model.User

	if err := s.DB.Where("id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}

		return nil, fmt.Errorf("failed to look up user, %w", err)
	}

	email = NormalizeEmail(email)

	if email != user.Email {
		var taken int64

		err := s.DB.Model(model.User{}).
			Where("email = ? AND id <> ?", email, userID).
			Count(&taken).
			Error
		if err != nil {
			return nil, fmt.Errorf("failed to check email uniqueness, %w", err)
		}

		if taken > 0 {
			return nil, ErrEmailTaken
		}
	}

	user.Name = strings.TrimSpace(name)
	user.Email = email

	if password != "" {
		hash, err := s.Hasher.Hash(password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password, %w", err)
		}

		user.PasswordHash = hash
	}

	if image != "" {
		user.ProfileImage = image
	}

	if err := s.DB.Save(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}

		return nil, fmt.Errorf("failed to save user, %w", err)
	}

	return &user, nil
}
