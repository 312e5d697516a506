// Package token issues and verifies the signed, time-limited identity tokens
// carried by clients in the access-token cookie.
//
// Verification failures — malformed token, signature mismatch, wrong
// algorithm, expiry — all collapse to the single INVALID_TOKEN error so the
// response never reveals which check failed.
package token

import (
	"fmt"
	"strconv"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"

	"github.com/skillsenselab/recipebook/internal/apperrors"
)

// Claims is the signed claim set asserting a user identity.
type Claims struct {
	UserID uint   `json:"user_id"`
	Role   string `json:"role"`
	gojwt.RegisteredClaims
}

// Service issues and verifies identity tokens with a server-held secret.
type Service struct {
	cfg Config
}

// NewService creates a token service from config.
func NewService(cfg *Config) (*Service, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("token: %w", err)
	}
	return &Service{cfg: *cfg}, nil
}

// TTL returns the configured token lifetime.
func (s *Service) TTL() time.Duration {
	return s.cfg.TTL
}

// Issue creates a signed token asserting the given identity, expiring after
// the configured TTL.
func (s *Service) Issue(userID uint, role string) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: gojwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(userID), 10),
			Issuer:    s.cfg.Issuer,
			IssuedAt:  gojwt.NewNumericDate(now),
			ExpiresAt: gojwt.NewNumericDate(now.Add(s.cfg.TTL)),
		},
	}

	t := gojwt.NewWithClaims(s.cfg.signingMethod(), claims)
	signed, err := t.SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return "", fmt.Errorf("token: sign: %w", err)
	}
	return signed, nil
}

// Parse verifies a token string and returns its claims. Any verification
// failure returns the single INVALID_TOKEN error kind with the underlying
// cause retained for server-side logging only.
func (s *Service) Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	t, err := gojwt.ParseWithClaims(tokenString, claims, s.keyFunc, s.parserOptions()...)
	if err != nil {
		return nil, apperrors.InvalidToken().WithCause(err)
	}
	if !t.Valid {
		return nil, apperrors.InvalidToken()
	}
	return claims, nil
}

// keyFunc is the jwt.Keyfunc used during token parsing.
func (s *Service) keyFunc(t *gojwt.Token) (interface{}, error) {
	expected := s.cfg.signingMethod()
	if t.Method.Alg() != expected.Alg() {
		return nil, fmt.Errorf("token: unexpected signing method: %s", t.Method.Alg())
	}
	return []byte(s.cfg.Secret), nil
}

// parserOptions returns jwt.ParserOption based on config.
func (s *Service) parserOptions() []gojwt.ParserOption {
	opts := []gojwt.ParserOption{
		gojwt.WithValidMethods([]string{s.cfg.signingMethod().Alg()}),
		gojwt.WithExpirationRequired(),
	}
	if s.cfg.Issuer != "" {
		opts = append(opts, gojwt.WithIssuer(s.cfg.Issuer))
	}
	return opts
}
