package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/comitanigiacomo/kanso-saturation/internal/core/domain"
)

var ErrInvalidToken = errors.New("invalid or expired session token")

// SessionLookup is the part of the repository the token service needs.
type SessionLookup interface {
	GetByID(ctx context.Context, id string) (*domain.Session, error)
}

// sessionClaims binds a token to one session instance. Cutoff pins the
// window the session was started with, so a token cannot outlive it.
type sessionClaims struct {
	Cutoff string `json:"cutoff"`
	jwt.RegisteredClaims
}

// TokenService issues bearer tokens for sessions. A token lives as long as
// an untouched session would: sessionTTL after it was issued.
type TokenService struct {
	secretKey  []byte
	issuer     string
	sessionTTL time.Duration
	sessions   SessionLookup
	now        func() time.Time
}

func NewTokenService(secretKey string, issuer string, sessionTTL time.Duration, sessions SessionLookup) *TokenService {
	return &TokenService{
		secretKey:  []byte(secretKey),
		issuer:     issuer,
		sessionTTL: sessionTTL,
		sessions:   sessions,
		now:        time.Now,
	}
}

func (s *TokenService) GenerateToken(session *domain.Session) (string, error) {
	issued := s.now()

	claims := sessionClaims{
		Cutoff: session.Cutoff,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   session.ID,
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(issued),
			ExpiresAt: jwt.NewNumericDate(issued.Add(s.sessionTTL)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secretKey)
	if err != nil {
		return "", fmt.Errorf("token service: failed to sign token for session %s: %w", session.ID, err)
	}
	return signed, nil
}

// ValidateToken returns the ID of the live session the token was issued for.
// Signature, issuer and expiry failures wrap ErrInvalidToken; a session that
// was deleted or reaped since wraps domain.ErrSessionNotFound.
func (s *TokenService) ValidateToken(ctx context.Context, tokenString string) (string, error) {
	var claims sessionClaims

	_, err := jwt.ParseWithClaims(tokenString, &claims,
		func(*jwt.Token) (interface{}, error) { return s.secretKey, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}

	session, err := s.sessions.GetByID(ctx, claims.Subject)
	if err != nil {
		return "", fmt.Errorf("token service: session %s: %w", claims.Subject, err)
	}
	if session.Cutoff != claims.Cutoff {
		return "", fmt.Errorf("%w: issued for another window of session %s", ErrInvalidToken, claims.Subject)
	}

	return session.ID, nil
}
