package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"linkup/internal/models"
)

type UserRepository interface {
	Create(user *models.User) error
	GetByID(id int) (*models.User, error)
	GetByEmail(email string) (*models.User, error)

	// registration / verification
	UpdateRegistration(user *models.User) error
	MarkVerified(userID int) error

	// password reset
	SetResetToken(userID int, tokenHash string, expiresAt time.Time) error
	GetByResetTokenHash(tokenHash string) (*models.User, error)
	ResetPassword(userID int, passwordHash string) error

	// profile
	UpdateProfile(userID int, name, bio, avatar *string) (*models.User, error)
}

type userRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{DB: db}
}

const userColumns = `
	id, name, email, bio, avatar, password_hash, verified,
	otp, otp_expires, reset_token_hash, reset_token_expires,
	created_at, updated_at
`

func scanUser(row *sql.Row) (*models.User, error) {
	u := &models.User{}
	var (
		otp        sql.NullString
		otpExpires sql.NullTime
		resetHash  sql.NullString
		resetExp   sql.NullTime
	)
	err := row.Scan(
		&u.ID, &u.Name, &u.Email, &u.Bio, &u.Avatar, &u.PasswordHash, &u.Verified,
		&otp, &otpExpires, &resetHash, &resetExp,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	if otp.Valid {
		s := otp.String
		u.Otp = &s
	}
	if otpExpires.Valid {
		t := otpExpires.Time
		u.OtpExpires = &t
	}
	if resetHash.Valid {
		s := resetHash.String
		u.ResetTokenHash = &s
	}
	if resetExp.Valid {
		t := resetExp.Time
		u.ResetTokenExpires = &t
	}
	return u, nil
}

func (r *userRepository) Create(user *models.User) error {
	const q = `
		INSERT INTO users (name, email, bio, avatar, password_hash, verified, otp, otp_expires)
		VALUES ($1, $2, '', '', $3, FALSE, $4, $5)
		RETURNING id, created_at, updated_at
	`
	err := r.DB.QueryRow(q, user.Name, user.Email, user.PasswordHash, user.Otp, user.OtpExpires).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return fmt.Errorf("user create: %w", err)
	}
	return nil
}

func (r *userRepository) GetByID(id int) (*models.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	u, err := scanUser(r.DB.QueryRow(q, id))
	if err != nil {
		return nil, fmt.Errorf("user get by id: %w", err)
	}
	return u, nil
}

func (r *userRepository) GetByEmail(email string) (*models.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	u, err := scanUser(r.DB.QueryRow(q, email))
	if err != nil {
		return nil, fmt.Errorf("user get by email: %w", err)
	}
	return u, nil
}

// UpdateRegistration overwrites name, password and OTP state of an
// unverified row; each new registration attempt invalidates the old code.
func (r *userRepository) UpdateRegistration(user *models.User) error {
	const q = `
		UPDATE users
		SET name = $2, password_hash = $3, otp = $4, otp_expires = $5, updated_at = NOW()
		WHERE id = $1 AND verified = FALSE
	`
	if _, err := r.DB.Exec(q, user.ID, user.Name, user.PasswordHash, user.Otp, user.OtpExpires); err != nil {
		return fmt.Errorf("user update registration: %w", err)
	}
	return nil
}

func (r *userRepository) MarkVerified(userID int) error {
	const q = `
		UPDATE users
		SET verified = TRUE, otp = NULL, otp_expires = NULL, updated_at = NOW()
		WHERE id = $1
	`
	if _, err := r.DB.Exec(q, userID); err != nil {
		return fmt.Errorf("user mark verified: %w", err)
	}
	return nil
}

func (r *userRepository) SetResetToken(userID int, tokenHash string, expiresAt time.Time) error {
	const q = `
		UPDATE users
		SET reset_token_hash = $2, reset_token_expires = $3, updated_at = NOW()
		WHERE id = $1
	`
	if _, err := r.DB.Exec(q, userID, tokenHash, expiresAt); err != nil {
		return fmt.Errorf("user set reset token: %w", err)
	}
	return nil
}

func (r *userRepository) GetByResetTokenHash(tokenHash string) (*models.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE reset_token_hash = $1`
	u, err := scanUser(r.DB.QueryRow(q, tokenHash))
	if err != nil {
		return nil, fmt.Errorf("user get by reset token: %w", err)
	}
	return u, nil
}

// ResetPassword writes the new hash and consumes the reset token in the same
// statement, so the token can never outlive the password change.
func (r *userRepository) ResetPassword(userID int, passwordHash string) error {
	const q = `
		UPDATE users
		SET password_hash = $2, reset_token_hash = NULL, reset_token_expires = NULL, updated_at = NOW()
		WHERE id = $1
	`
	if _, err := r.DB.Exec(q, userID, passwordHash); err != nil {
		return fmt.Errorf("user reset password: %w", err)
	}
	return nil
}

// UpdateProfile writes only the provided fields (COALESCE keeps the rest).
func (r *userRepository) UpdateProfile(userID int, name, bio, avatar *string) (*models.User, error) {
	const q = `
		UPDATE users
		SET name   = COALESCE($2, name),
		    bio    = COALESCE($3, bio),
		    avatar = COALESCE($4, avatar),
		    updated_at = NOW()
		WHERE id = $1
		RETURNING ` + userColumns
	u, err := scanUser(r.DB.QueryRow(q, userID, name, bio, avatar))
	if err != nil {
		return nil, fmt.Errorf("user update profile: %w", err)
	}
	return u, nil
}
