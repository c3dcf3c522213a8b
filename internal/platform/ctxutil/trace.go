package ctxutil

import "context"

type traceDataKey struct{}
type adminKey struct{}

type TraceData struct {
	TraceID   string
	RequestID string
}

func WithTraceData(ctx context.Context, td *TraceData) context.Context {
	return context.WithValue(ctx, traceDataKey{}, td)
}

func GetTraceData(ctx context.Context) *TraceData {
	if td, ok := ctx.Value(traceDataKey{}).(*TraceData); ok {
		return td
	}
	return nil
}

// WithAdmin records the authenticated admin subject on the context.
func WithAdmin(ctx context.Context, subject string) context.Context {
	return context.WithValue(ctx, adminKey{}, subject)
}

func GetAdmin(ctx context.Context) string {
	s, _ := ctx.Value(adminKey{}).(string)
	return s
}
