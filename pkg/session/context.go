package session

import "context"

type resolutionContextKey struct{}

// WithResolution attaches a resolution to the context.
func WithResolution(ctx context.Context, res Resolution) context.Context {
	return context.WithValue(ctx, resolutionContextKey{}, res)
}

// ResolutionFromContext returns the resolution attached by the middleware.
// Requests that never went through the middleware resolve Absent.
func ResolutionFromContext(ctx context.Context) Resolution {
	res, _ := lookupResolution(ctx)
	return res
}

func lookupResolution(ctx context.Context) (Resolution, bool) {
	res, ok := ctx.Value(resolutionContextKey{}).(Resolution)
	if !ok {
		return absent(ErrNoToken), false
	}
	return res, true
}

// FromContext returns the valid session attached to the context, if any.
func FromContext(ctx context.Context) (*Session, bool) {
	res := ResolutionFromContext(ctx)
	if !res.Valid() {
		return nil, false
	}
	return res.Session, true
}

// UserIDFromContext returns the authenticated user id from the context.
func UserIDFromContext(ctx context.Context) (string, bool) {
	res := ResolutionFromContext(ctx)
	if !res.Authenticated() {
		return "", false
	}
	return res.Session.UserID, true
}
