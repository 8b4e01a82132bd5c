package services

import (
	"errors"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// TokenService issues and verifies signed bearer tokens and owns the
// in-memory revocation set for tokens logged out before their natural expiry.
// Revocation is process-local: in a multi-instance deployment each process
// only knows about its own logouts.
type TokenService interface {
	Issue(userID int) (string, error)
	Verify(token string) (userID int, expiresAt time.Time, err error)
	Revoke(token string, expiresAt time.Time)
	IsRevoked(token string) bool
}

type Claims struct {
	UserID int `json:"id"`
	jwt.RegisteredClaims
}

type tokenService struct {
	secret []byte
	ttl    time.Duration

	mu      sync.Mutex
	revoked map[string]*time.Timer
}

func NewTokenService(secret string, ttl time.Duration) TokenService {
	return &tokenService{
		secret:  []byte(secret),
		ttl:     ttl,
		revoked: make(map[string]*time.Timer),
	}
}

func (s *tokenService) Issue(userID int) (string, error) {
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *tokenService) Verify(tokenStr string) (int, time.Time, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		// принимаем только HMAC
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return 0, time.Time{}, ErrInvalidToken
	}
	if claims.ExpiresAt == nil || claims.ExpiresAt.Time.Before(time.Now()) {
		return 0, time.Time{}, ErrInvalidToken
	}
	return claims.UserID, claims.ExpiresAt.Time, nil
}

// Revoke adds the token to the revocation set and schedules its removal at
// the token's natural expiry, so the set never outgrows the expiry window.
func (s *tokenService) Revoke(token string, expiresAt time.Time) {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return // уже истёк, нечего отзывать
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.revoked[token]; ok {
		t.Stop()
	}
	s.revoked[token] = time.AfterFunc(ttl, func() {
		s.mu.Lock()
		delete(s.revoked, token)
		s.mu.Unlock()
	})
}

func (s *tokenService) IsRevoked(token string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.revoked[token]
	return ok
}
