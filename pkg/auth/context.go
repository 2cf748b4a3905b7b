package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

type ctxKey int

const userIDKey ctxKey = iota

// ErrNoUserID indicates the context carries no authenticated user.
var ErrNoUserID = errors.New("no user id in context")

// WithUserID returns a context carrying the authenticated stockkeeper's ID.
func WithUserID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDKey, id)
}

// UserIDFromCtx extracts the authenticated stockkeeper's ID set by RequireAuth.
func UserIDFromCtx(ctx context.Context) (uuid.UUID, error) {
	id, ok := ctx.Value(userIDKey).(uuid.UUID)
	if !ok {
		return uuid.Nil, ErrNoUserID
	}
	return id, nil
}
