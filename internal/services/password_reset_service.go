package services

import (
	"errors"
	"fmt"
	"time"

	"linkup/internal/repositories"
	"linkup/internal/utils"
)

var ErrInvalidResetToken = errors.New("invalid or expired reset token")

const resetTokenTTL = 10 * time.Minute

type PasswordResetService interface {
	RequestReset(email string) error
	ConfirmReset(rawToken, newPassword string) error
}

type passwordResetService struct {
	userRepo    repositories.UserRepository
	emails      EmailService
	auth        AuthService
	frontendURL string
}

func NewPasswordResetService(userRepo repositories.UserRepository, emails EmailService, auth AuthService, frontendURL string) PasswordResetService {
	return &passwordResetService{
		userRepo:    userRepo,
		emails:      emails,
		auth:        auth,
		frontendURL: frontendURL,
	}
}

// RequestReset issues a single-use reset token. The raw token goes into the
// emailed link; only its SHA-256 digest is persisted.
func (s *passwordResetService) RequestReset(email string) error {
	user, err := s.userRepo.GetByEmail(normalizeEmail(email))
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	rawToken, err := utils.NewResetToken(32)
	if err != nil {
		return err
	}
	expires := time.Now().Add(resetTokenTTL)
	if err := s.userRepo.SetResetToken(user.ID, utils.HashToken(rawToken), expires); err != nil {
		return err
	}

	resetLink := fmt.Sprintf("%s/confirm-password/%s", s.frontendURL, rawToken)
	s.emails.SendPasswordResetEmail(user.Email, resetLink)
	return nil
}

// ConfirmReset consumes a reset token: expired and already-used tokens are
// both rejected with the same error.
func (s *passwordResetService) ConfirmReset(rawToken, newPassword string) error {
	user, err := s.userRepo.GetByResetTokenHash(utils.HashToken(rawToken))
	if err != nil {
		return err
	}
	if user == nil || user.ResetTokenExpires == nil || time.Now().After(*user.ResetTokenExpires) {
		return ErrInvalidResetToken
	}

	hash, err := s.auth.HashPassword(newPassword)
	if err != nil {
		return err
	}
	// одним апдейтом: пароль меняется и токен гасится вместе
	return s.userRepo.ResetPassword(user.ID, hash)
}
