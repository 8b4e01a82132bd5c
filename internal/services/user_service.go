package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"linkup/internal/models"
	"linkup/internal/repositories"
	"linkup/internal/utils"
)

var (
	ErrEmailInUse      = errors.New("email already in use")
	ErrUserNotFound    = errors.New("user not found")
	ErrInvalidOtp      = errors.New("invalid otp")
	ErrOtpExpired      = errors.New("otp has expired")
	ErrNotVerified     = errors.New("user not verified")
	ErrInvalidPassword = errors.New("invalid password")
)

const otpTTL = 10 * time.Minute

type UserService interface {
	// Register creates an unverified account (or overwrites an unverified one
	// with the same email) and sends the OTP. resent is true when an existing
	// unverified registration was refreshed.
	Register(name, email, password string) (resent bool, err error)
	VerifyOtp(email, otp string) error
	Login(email, password string) (*models.User, error)
	GetUserByID(id int) (*models.User, error)
	UpdateProfile(userID int, name, bio, avatar *string) (*models.User, error)
}

type userService struct {
	repo   repositories.UserRepository
	emails EmailService
	auth   AuthService
}

func NewUserService(repo repositories.UserRepository, emails EmailService, auth AuthService) UserService {
	return &userService{
		repo:   repo,
		emails: emails,
		auth:   auth,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *userService) Register(name, email, password string) (bool, error) {
	email = normalizeEmail(email)

	existing, err := s.repo.GetByEmail(email)
	if err != nil {
		return false, err
	}
	if existing != nil && existing.Verified {
		return false, ErrEmailInUse
	}

	hash, err := s.auth.HashPassword(password)
	if err != nil {
		return false, err
	}
	otp, err := utils.NewOTP()
	if err != nil {
		return false, fmt.Errorf("generate otp: %w", err)
	}
	otpExpires := time.Now().Add(otpTTL)

	// повторная регистрация неподтверждённого email — перезаписываем,
	// старый код тем самым аннулируется
	if existing != nil {
		existing.Name = name
		existing.PasswordHash = hash
		existing.Otp = &otp
		existing.OtpExpires = &otpExpires
		if err := s.repo.UpdateRegistration(existing); err != nil {
			return false, err
		}
		s.emails.SendOTPEmail(existing.Email, existing.Name, otp)
		return true, nil
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Otp:          &otp,
		OtpExpires:   &otpExpires,
	}
	if err := s.repo.Create(user); err != nil {
		return false, err
	}
	s.emails.SendOTPEmail(user.Email, user.Name, otp)
	return false, nil
}

func (s *userService) VerifyOtp(email, otp string) error {
	email = normalizeEmail(email)

	user, err := s.repo.GetByEmail(email)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	if user.Otp == nil || *user.Otp != strings.TrimSpace(otp) {
		return ErrInvalidOtp
	}
	if user.OtpExpires == nil || time.Now().After(*user.OtpExpires) {
		return ErrOtpExpired
	}

	s.emails.SendAccountCreatedEmail(user.Email, user.Name)

	// Unverified -> Verified; код очищается и больше не переиспользуется
	return s.repo.MarkVerified(user.ID)
}

func (s *userService) Login(email, password string) (*models.User, error) {
	email = normalizeEmail(email)

	user, err := s.repo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if !user.Verified {
		return nil, ErrNotVerified
	}
	if err := s.auth.CheckPassword(user.PasswordHash, password); err != nil {
		return nil, ErrInvalidPassword
	}
	return user, nil
}

func (s *userService) GetUserByID(id int) (*models.User, error) {
	return s.repo.GetByID(id)
}

func (s *userService) UpdateProfile(userID int, name, bio, avatar *string) (*models.User, error) {
	user, err := s.repo.UpdateProfile(userID, name, bio, avatar)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}
