// Package idempotency deduplicates retried mutations keyed by the
// client-supplied Idempotency-Key header. A key maps to at most one stored
// response within the TTL window.
package idempotency

import "context"

// Store is the deduplication contract. The in-memory implementation is
// process-local: retries landing on another instance are not deduplicated.
// Deployments needing cross-instance guarantees swap in the Redis store,
// which honors the same TTL semantics behind this interface.
type Store interface {
	// Lookup returns the stored response for key, or ok=false when the key
	// is unknown or its entry has expired.
	Lookup(ctx context.Context, key string) (body []byte, ok bool, err error)

	// Save records the response produced for key with the store's TTL.
	Save(ctx context.Context, key string, body []byte) error
}
