// Package token validates bearer access tokens and extracts the authenticated
// principal from their claims. Tokens are issued elsewhere; this package only
// verifies HS256 signatures against the configured shared secret and applies
// strict, fail-closed claim checks.
package token

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/karouieya6/enrollmentservice/internal/domain/enrollments"
)

type Config struct {
	Secret string
	Issuer string
	Leeway time.Duration
}

type Manager struct {
	config Config
}

// claims carries the registered claim set plus the role claim. Issuers encode
// roles either as a single string or as a list; both shapes are accepted.
type claims struct {
	Roles any `json:"roles"`
	jwt.RegisteredClaims
}

func NewManager(cfg Config) (*Manager, error) {
	if strings.TrimSpace(cfg.Secret) == "" {
		return nil, errors.New("token secret is required")
	}
	return &Manager{config: cfg}, nil
}

// Validate checks the token's signature and expiry window and extracts the
// principal. Every anomaly (bad signature, expiry, missing subject, empty or
// malformed role claim) yields ErrUnauthorized; a token is never accepted
// with defaulted claims.
func (m *Manager) Validate(tokenStr string) (enrollments.Principal, error) {
	if strings.TrimSpace(tokenStr) == "" {
		return enrollments.Principal{}, enrollments.ErrUnauthorized
	}
	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if m.config.Leeway > 0 {
		options = append(options, jwt.WithLeeway(m.config.Leeway))
	}
	if m.config.Issuer != "" {
		options = append(options, jwt.WithIssuer(m.config.Issuer))
	}
	parser := jwt.NewParser(options...)
	parsed, err := parser.ParseWithClaims(tokenStr, &claims{}, func(t *jwt.Token) (any, error) {
		return []byte(m.config.Secret), nil
	})
	if err != nil {
		return enrollments.Principal{}, enrollments.ErrUnauthorized
	}
	payload, ok := parsed.Claims.(*claims)
	if !ok || !parsed.Valid {
		return enrollments.Principal{}, enrollments.ErrUnauthorized
	}
	subject := strings.TrimSpace(payload.Subject)
	if subject == "" {
		return enrollments.Principal{}, enrollments.ErrUnauthorized
	}
	roles := normalizeRoles(payload.Roles)
	if len(roles) == 0 {
		return enrollments.Principal{}, enrollments.ErrUnauthorized
	}
	return enrollments.Principal{Subject: subject, Roles: roles}, nil
}

// normalizeRoles canonicalizes the role claim to an ordered list, preserving
// claim order so the first entry stays the primary role. The optional "ROLE_"
// prefix some issuers attach is stripped here, once, so downstream code only
// ever sees bare tags.
func normalizeRoles(raw any) []string {
	var roles []string
	switch v := raw.(type) {
	case string:
		roles = append(roles, v)
	case []any:
		for _, entry := range v {
			if role, ok := entry.(string); ok {
				roles = append(roles, role)
			} else {
				return nil
			}
		}
	default:
		return nil
	}
	out := make([]string, 0, len(roles))
	for _, role := range roles {
		role = strings.TrimSpace(strings.TrimPrefix(role, "ROLE_"))
		if role == "" {
			return nil
		}
		out = append(out, role)
	}
	return out
}
