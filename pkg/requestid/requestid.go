package requestid

import "context"

type contextKey string

const key contextKey = "request_id"

// Header carries the request id on requests and responses.
const Header = "X-Request-ID"

func WithContext(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, key, id)
}

// FromContext extracts the request id from ctx.
func FromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(key).(string)
	return id, ok && id != ""
}
