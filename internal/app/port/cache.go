package port

import "context"

// ResponseCache stores raw API response bodies for a short TTL.
// Implementations treat backend failures as misses.
type ResponseCache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte)
	Delete(ctx context.Context, keys ...string)
	Flush(ctx context.Context)
}
