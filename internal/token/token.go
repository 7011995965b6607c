package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned for every rejected token. Malformed,
// badly signed and expired tokens are deliberately indistinguishable
// to callers.
var ErrInvalidToken = errors.New("invalid token or expired token")

// Claims carries the token subject (the account email) plus the
// registered expiry claim.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

// Service issues and verifies signed bearer tokens. The secret and TTL
// are fixed at startup and never re-read from the environment.
type Service struct {
	secret []byte
	ttl    time.Duration
}

func NewService(secret string, ttl time.Duration) *Service {
	return &Service{secret: []byte(secret), ttl: ttl}
}

// Issue signs a new token for the given subject, valid for the
// configured TTL from now. Pure computation, no storage involved.
func (s *Service) Issue(subject string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
		Email: subject,
	})

	return token.SignedString(s.secret)
}

// Verify parses tokenString, checks the signature and the embedded
// expiry, and returns the subject. Every failure mode yields
// ErrInvalidToken.
func (s *Service) Verify(tokenString string) (string, error) {
	claims := &Claims{}

	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return "", ErrInvalidToken
	}

	if claims.Email == "" {
		return "", ErrInvalidToken
	}

	return claims.Email, nil
}
