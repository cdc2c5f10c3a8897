// Package actor carries the authenticated caller through request contexts.
package actor

import (
	"context"

	"github.com/google/uuid"
)

type ctxKey struct{}

const anonymous = "anonymous"

func WithUserID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

func UserID(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(ctxKey{}).(uuid.UUID)
	return id, ok && id != uuid.Nil
}

// String is the caller for log records; "anonymous" when auth is disabled.
func String(ctx context.Context) string {
	if id, ok := UserID(ctx); ok {
		return id.String()
	}
	return anonymous
}
