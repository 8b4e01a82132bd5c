package services

import (
	"sync"
	"time"

	"linkup/internal/models"
)

// in-memory UserRepository двойник для юнит-тестов сервисов

type fakeUserRepo struct {
	mu   sync.Mutex
	seq  int
	byID map[int]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: make(map[int]*models.User)}
}

func (f *fakeUserRepo) clone(u *models.User) *models.User {
	if u == nil {
		return nil
	}
	cp := *u
	return &cp
}

func (f *fakeUserRepo) Create(user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	user.ID = f.seq
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	f.byID[user.ID] = f.clone(user)
	return nil
}

func (f *fakeUserRepo) GetByID(id int) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.clone(f.byID[id]), nil
}

func (f *fakeUserRepo) GetByEmail(email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byID {
		if u.Email == email {
			return f.clone(u), nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) UpdateRegistration(user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.byID[user.ID]; ok && !u.Verified {
		u.Name = user.Name
		u.PasswordHash = user.PasswordHash
		u.Otp = user.Otp
		u.OtpExpires = user.OtpExpires
	}
	return nil
}

func (f *fakeUserRepo) MarkVerified(userID int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.byID[userID]; ok {
		u.Verified = true
		u.Otp = nil
		u.OtpExpires = nil
	}
	return nil
}

func (f *fakeUserRepo) SetResetToken(userID int, tokenHash string, expiresAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.byID[userID]; ok {
		u.ResetTokenHash = &tokenHash
		u.ResetTokenExpires = &expiresAt
	}
	return nil
}

func (f *fakeUserRepo) GetByResetTokenHash(tokenHash string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byID {
		if u.ResetTokenHash != nil && *u.ResetTokenHash == tokenHash {
			return f.clone(u), nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) ResetPassword(userID int, passwordHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.byID[userID]; ok {
		u.PasswordHash = passwordHash
		u.ResetTokenHash = nil
		u.ResetTokenExpires = nil
	}
	return nil
}

func (f *fakeUserRepo) UpdateProfile(userID int, name, bio, avatar *string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[userID]
	if !ok {
		return nil, nil
	}
	if name != nil {
		u.Name = *name
	}
	if bio != nil {
		u.Bio = *bio
	}
	if avatar != nil {
		u.Avatar = *avatar
	}
	return f.clone(u), nil
}

// forceOtpExpiry is a test hook to age the stored code.
func (f *fakeUserRepo) forceOtpExpiry(userID int, t time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.byID[userID]; ok {
		u.OtpExpires = &t
	}
}

func (f *fakeUserRepo) forceResetExpiry(userID int, t time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.byID[userID]; ok {
		u.ResetTokenExpires = &t
	}
}

// fakeEmailService records notifications instead of dialing SMTP.

type fakeEmailService struct {
	mu         sync.Mutex
	otps       []string
	welcomes   []string
	resetLinks []string
}

func (f *fakeEmailService) SendOTPEmail(email, name, otp string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.otps = append(f.otps, otp)
}

func (f *fakeEmailService) SendAccountCreatedEmail(email, name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.welcomes = append(f.welcomes, email)
}

func (f *fakeEmailService) SendPasswordResetEmail(email, resetLink string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resetLinks = append(f.resetLinks, resetLink)
}

func (f *fakeEmailService) lastOTP() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.otps) == 0 {
		return ""
	}
	return f.otps[len(f.otps)-1]
}

func (f *fakeEmailService) lastResetLink() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.resetLinks) == 0 {
		return ""
	}
	return f.resetLinks[len(f.resetLinks)-1]
}
