package goGuard

import "context"

type clientIPContextKey struct{}

// WithClientIP attaches the resolved client identity to ctx. The middleware
// package sets it; handlers read it back with [ClientIPFromContext].
func WithClientIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, clientIPContextKey{}, ip)
}

// ClientIPFromContext returns the identity stored by [WithClientIP], or "".
func ClientIPFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}

	ip, _ := ctx.Value(clientIPContextKey{}).(string)
	return ip
}
