// Package session carries the authenticated caller through handlers and
// services as an explicit value.
package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleOperator Role = "operator"
)

var (
	ErrUnauthenticated = errors.New("no active session")
	ErrForbidden       = errors.New("role not permitted")
)

type Session struct {
	UserID uuid.UUID
	Role   Role
	Token  string
}

func (s Session) Valid() bool {
	return s.UserID != uuid.Nil && (s.Role == RoleAdmin || s.Role == RoleOperator)
}

func (s Session) IsAdmin() bool {
	return s.Role == RoleAdmin
}

// Require fails unless the session is valid and holds one of roles.
func (s Session) Require(roles ...Role) error {
	if !s.Valid() {
		return ErrUnauthenticated
	}
	for _, r := range roles {
		if s.Role == r {
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrForbidden, s.Role)
}

type contextKey struct{}

func NewContext(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

func FromContext(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(contextKey{}).(Session)
	return s, ok
}
