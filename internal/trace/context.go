package trace

import "context"

// carried is what a context holds for tracing: the tracer and the
// innermost open span (0 at the root).
type carried struct {
	tracer Tracer
	span   uint64
}

type ctxKey struct{}

func carriedBy(ctx context.Context) carried {
	if ctx != nil {
		if c, ok := ctx.Value(ctxKey{}).(carried); ok {
			return c
		}
	}
	return carried{tracer: Nop}
}

// FromContext returns the tracer ctx carries, or Nop.
func FromContext(ctx context.Context) Tracer {
	return carriedBy(ctx).tracer
}

// WithTracer installs t; spans started below it are roots.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	if t == nil {
		t = Nop
	}
	return context.WithValue(ctx, ctxKey{}, carried{tracer: t})
}

// CurrentSpan is the id of the innermost span started through ctx.
func CurrentSpan(ctx context.Context) uint64 {
	return carriedBy(ctx).span
}

func withSpan(ctx context.Context, id uint64) context.Context {
	c := carriedBy(ctx)
	c.span = id
	return context.WithValue(ctx, ctxKey{}, c)
}
