package httpx

import (
	"context"
	"fmt"
)

// requestIDs travel as one context value so a single lookup yields both.
type requestIDs struct {
	id          string
	correlation string
}

type idsKey struct{}

func idsFrom(ctx context.Context) requestIDs {
	ids, _ := ctx.Value(idsKey{}).(requestIDs)
	return ids
}

// WithRequestID returns a copy of ctx whose request ID is id. A correlation
// ID already in ctx is kept.
func WithRequestID(ctx context.Context, id string) context.Context {
	ids := idsFrom(ctx)
	ids.id = id
	return context.WithValue(ctx, idsKey{}, ids)
}

// RequestIDFrom returns the server-generated ID of the request ctx
// belongs to.
func RequestIDFrom(ctx context.Context) (string, bool) {
	id := idsFrom(ctx).id
	return id, id != ""
}

// WithCorrelationID returns a copy of ctx carrying the caller's
// X-Request-Id value.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	ids := idsFrom(ctx)
	ids.correlation = id
	return context.WithValue(ctx, idsKey{}, ids)
}

func CorrelationIDFrom(ctx context.Context) (string, bool) {
	id := idsFrom(ctx).correlation
	return id, id != ""
}

// logTag renders the IDs in ctx for log lines: "req=<id>", followed by
// " cid=<correlation>" when the caller sent one.
func logTag(ctx context.Context) string {
	ids := idsFrom(ctx)
	if ids.id == "" {
		ids.id = "-"
	}
	if ids.correlation == "" {
		return "req=" + ids.id
	}
	return fmt.Sprintf("req=%s cid=%s", ids.id, ids.correlation)
}
