package logs

import (
	"context"

	"github.com/google/uuid"
)

// NewSpan starts a span named name. The span already in ctx, if any, becomes its parent.
type NewSpan func(ctx context.Context, name string) (context.Context, Span)

func (Module) NewSpan(
	logger Logger,
) NewSpan {
	return func(ctx context.Context, name string) (context.Context, Span) {
		var args []any
		if parent, ok := ctx.Value(SpanKey).(Span); ok {
			args = append(args, "parent", parent)
		}

		span := Span(uuid.NewString())
		ctx = context.WithValue(ctx, SpanKey, span)
		logger.DebugContext(ctx, "span: "+name, args...)

		return ctx, span
	}
}
