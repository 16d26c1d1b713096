package services

import (
	"crypto/subtle"
	"errors"
	"strings"
	"time"

	"dng-api/internal/domain"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const adminRole = "admin"

// AuthService issues and checks admin bearer tokens. With no Secret set the
// admin API runs unauthenticated.
type AuthService struct {
	Username     string
	PasswordHash string
	Secret       []byte
	TTL          time.Duration
	Now          func() time.Time
}

type adminClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

func (s AuthService) Enabled() bool { return len(s.Secret) > 0 }

func (s AuthService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s AuthService) ttl() time.Duration {
	if s.TTL > 0 {
		return s.TTL
	}
	return 12 * time.Hour
}

// Login checks the admin credentials and returns a signed token.
func (s AuthService) Login(username, password string) (string, time.Time, error) {
	if !s.Enabled() || s.PasswordHash == "" {
		return "", time.Time{}, domain.UnauthorizedError{Msg: "admin login is not configured"}
	}
	userOK := subtle.ConstantTimeCompare([]byte(strings.TrimSpace(username)), []byte(s.Username)) == 1
	passErr := bcrypt.CompareHashAndPassword([]byte(s.PasswordHash), []byte(password))
	if !userOK || passErr != nil {
		return "", time.Time{}, domain.UnauthorizedError{Msg: "invalid username or password", Err: passErr}
	}

	issued := s.now()
	expires := issued.Add(s.ttl())
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, adminClaims{
		Role: adminRole,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   s.Username,
			IssuedAt:  jwt.NewNumericDate(issued),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	})
	signed, err := token.SignedString(s.Secret)
	if err != nil {
		return "", time.Time{}, domain.InternalError{Msg: "could not sign token", Err: err}
	}
	return signed, expires, nil
}

// Verify accepts only unexpired HS256 tokens carrying the admin role.
func (s AuthService) Verify(raw string) error {
	if !s.Enabled() {
		return nil
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return domain.UnauthorizedError{Msg: "missing token"}
	}
	claims := &adminClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return s.Secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil {
		return domain.UnauthorizedError{Msg: "invalid token", Err: err}
	}
	if claims.Role != adminRole {
		return domain.UnauthorizedError{Msg: "invalid token", Err: errors.New("role is not admin")}
	}
	return nil
}
