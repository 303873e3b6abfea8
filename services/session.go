package services

import (
	"context"

	"github.com/yeremiapane/foodiego/models"
)

// Session identifies the signed-in caller of an action.
type Session struct {
	UserID uint   `json:"user_id"`
	Role   string `json:"role"`
	Email  string `json:"email"`
}

func (s *Session) IsAdmin() bool {
	return s != nil && s.Role == models.RoleAdmin
}

type sessionKey struct{}

// WithSession returns a copy of ctx carrying the caller's session.
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// SessionFromContext returns the caller's session, if any.
func SessionFromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(*Session)
	return s, ok && s != nil
}

func requireSession(ctx context.Context) (*Session, error) {
	s, ok := SessionFromContext(ctx)
	if !ok {
		return nil, ErrUnauthorized
	}
	return s, nil
}

func requireAdmin(ctx context.Context) (*Session, error) {
	s, err := requireSession(ctx)
	if err != nil {
		return nil, err
	}
	if !s.IsAdmin() {
		return nil, ErrForbidden
	}
	return s, nil
}
