package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/form3tech-oss/jwt-go"
)

// ErrInvalidToken is returned for tokens that fail signature, expiry or claim checks.
var ErrInvalidToken = errors.New("invalid session token")

// SessionClaims binds a Nakama user to one engine session.
type SessionClaims struct {
	UserID    string
	SessionID string
	ExpiresAt time.Time
}

// TokenService signs and verifies session tokens.
type TokenService struct {
	secret string
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(secret, issuer string, ttl time.Duration) *TokenService {
	return &TokenService{secret: secret, issuer: issuer, ttl: ttl, now: time.Now}
}

func (s *TokenService) GenerateToken(userID, sessionID string) (string, error) {
	if s == nil {
		return "", fmt.Errorf("token service is nil")
	}
	if userID == "" || sessionID == "" {
		return "", fmt.Errorf("user and session are required")
	}
	if s.secret == "" {
		return "", fmt.Errorf("token secret is not configured")
	}

	claims := jwt.MapClaims{
		"iss": s.issuer,
		"sub": userID,
		"sid": sessionID,
		"iat": s.now().Unix(),
		"exp": s.now().Add(s.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.secret))
}

// ParseToken verifies tokenString and returns its claims.
func (s *TokenService) ParseToken(tokenString string) (SessionClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return []byte(s.secret), nil
	})
	if err != nil {
		return SessionClaims{}, fmt.Errorf("%v: %w", err, ErrInvalidToken)
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return SessionClaims{}, ErrInvalidToken
	}
	if iss, _ := claims["iss"].(string); iss != s.issuer {
		return SessionClaims{}, fmt.Errorf("issuer %q: %w", iss, ErrInvalidToken)
	}
	sub, _ := claims["sub"].(string)
	sid, _ := claims["sid"].(string)
	if sub == "" || sid == "" {
		return SessionClaims{}, fmt.Errorf("missing subject or session: %w", ErrInvalidToken)
	}
	out := SessionClaims{UserID: sub, SessionID: sid}
	if exp, ok := claims["exp"].(float64); ok {
		out.ExpiresAt = time.Unix(int64(exp), 0)
	}
	return out, nil
}
