package middleware

import (
	"context"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/upb/talent-portal/navigation"
	"github.com/upb/talent-portal/session"
)

// Context key type to avoid collisions
type contextKey string

const (
	// SessionKey is the context key for the request's session handle
	SessionKey contextKey = "session"

	// LocationKey is the context key for the resolved navigation target
	LocationKey contextKey = "location"
)

// GetRequestIDFromContext retrieves the chi request ID from context
func GetRequestIDFromContext(ctx context.Context) string {
	return chimw.GetReqID(ctx)
}

// GetSessionFromContext retrieves the session handle from context
func GetSessionFromContext(ctx context.Context) *session.Handle {
	if val := ctx.Value(SessionKey); val != nil {
		if h, ok := val.(*session.Handle); ok {
			return h
		}
	}
	return nil
}

// WithSession adds a session handle to the context
func WithSession(ctx context.Context, h *session.Handle) context.Context {
	return context.WithValue(ctx, SessionKey, h)
}

// GetLocationFromContext retrieves the guarded navigation target from context
func GetLocationFromContext(ctx context.Context) *navigation.Location {
	if val := ctx.Value(LocationKey); val != nil {
		if loc, ok := val.(*navigation.Location); ok {
			return loc
		}
	}
	return nil
}

// WithLocation adds the navigation target to the context
func WithLocation(ctx context.Context, loc *navigation.Location) context.Context {
	return context.WithValue(ctx, LocationKey, loc)
}
