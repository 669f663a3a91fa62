package upstream

import "context"

type bearerKey struct{}

type requestIDKey struct{}

// WithBearer attaches the caller's session token to ctx. The client reads it
// back for every outbound call; nothing is stored on the shared client.
func WithBearer(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, bearerKey{}, token)
}

// BearerFromContext returns the token attached by WithBearer.
func BearerFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	token, ok := ctx.Value(bearerKey{}).(string)
	return token, ok && token != ""
}

// WithRequestID attaches the inbound request id so it is forwarded upstream.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFromContext returns the id attached by WithRequestID.
func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
