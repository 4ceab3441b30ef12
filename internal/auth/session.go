// Package auth derives the local user session from a bearer token. The
// backend is the authority on token validity; this package only reads the
// identity and role claims so the guard layer can gate manager-only actions
// before a request is ever sent.
package auth

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/meridiancrm/salescycle/internal/domain"
)

var ErrInvalidToken = errors.New("invalid token")

// Session is the authenticated user's local view of their identity
type Session struct {
	Token       string
	UserID      uuid.UUID
	DisplayName string
	Email       string
	Roles       []domain.UserRole
}

// HasManagerRole reports whether the session carries a role that may
// approve or reject proposals
func (s *Session) HasManagerRole() bool {
	for _, r := range s.Roles {
		if r.IsManagerClass() {
			return true
		}
	}
	return false
}

// NewSession parses the bearer token's claims without verifying its
// signature. Verification happens server-side on every request; a forged
// role claim here only unlocks buttons for calls the backend will refuse.
func NewSession(tokenString string) (*Session, error) {
	tokenString = strings.TrimSpace(strings.TrimPrefix(tokenString, "Bearer "))
	if tokenString == "" {
		return nil, fmt.Errorf("%w: empty token", ErrInvalidToken)
	}

	claims := jwt.MapClaims{}
	if _, _, err := new(jwt.Parser).ParseUnverified(tokenString, claims); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	session := &Session{
		Token:       tokenString,
		DisplayName: extractString(claims, "name", "unique_name", "preferred_username"),
		Email:       extractString(claims, "email", "upn", "unique_name"),
		Roles:       ExtractRoles(claims),
	}

	if oidStr := extractString(claims, "oid", "sub"); oidStr != "" {
		if uid, err := uuid.Parse(oidStr); err == nil {
			session.UserID = uid
		}
	}
	if session.UserID == uuid.Nil && session.Email != "" {
		session.UserID = uuid.NewSHA1(uuid.NameSpaceOID, []byte(session.Email))
	}

	return session, nil
}

func extractString(claims jwt.MapClaims, keys ...string) string {
	for _, key := range keys {
		if val, ok := claims[key]; ok {
			if str, ok := val.(string); ok && str != "" {
				return str
			}
		}
	}
	return ""
}

// ExtractRoles reads role claims and keeps only the roles this application
// knows about
func ExtractRoles(claims jwt.MapClaims) []domain.UserRole {
	roles := []domain.UserRole{}

	// Try different claim names
	for _, key := range []string{"roles", "role"} {
		val, ok := claims[key]
		if !ok {
			continue
		}
		switch v := val.(type) {
		case []interface{}:
			for _, r := range v {
				if str, ok := r.(string); ok {
					appendKnownRole(&roles, str)
				}
			}
		case []string:
			for _, str := range v {
				appendKnownRole(&roles, str)
			}
		case string:
			appendKnownRole(&roles, v)
		}
	}

	return roles
}

func appendKnownRole(roles *[]domain.UserRole, raw string) {
	role := domain.UserRole(raw)
	if !role.IsValid() {
		return
	}
	for _, existing := range *roles {
		if existing == role {
			return
		}
	}
	*roles = append(*roles, role)
}
