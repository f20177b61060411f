package core

import "context"

// Context keys for command options
type contextKey string

const (
	suppressHeaderKey contextKey = "suppressHeader"
	randomizeKey      contextKey = "randomize"
)

// WithSuppressHeader sets whether the mood header should be suppressed in the context
func WithSuppressHeader(ctx context.Context) context.Context {
	return context.WithValue(ctx, suppressHeaderKey, true)
}

// shouldSuppressHeader returns whether the mood header should be suppressed from context
func shouldSuppressHeader(ctx context.Context) bool {
	val := ctx.Value(suppressHeaderKey)
	if val == nil {
		return false // default: show header
	}
	suppress, ok := val.(bool)
	return ok && suppress
}

// WithRandomize sets whether the mood should be randomized before assignments apply
func WithRandomize(ctx context.Context, randomize bool) context.Context {
	return context.WithValue(ctx, randomizeKey, randomize)
}

// shouldRandomize returns whether the mood should be randomized from context
func shouldRandomize(ctx context.Context) bool {
	val := ctx.Value(randomizeKey)
	if val == nil {
		return false // default: start neutral
	}
	randomize, ok := val.(bool)
	return ok && randomize
}
