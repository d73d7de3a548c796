package port

import "context"

// Store is the narrow key-value contract the engine and modules depend on.
// Values are structured and round-trip exactly; implementations must
// serialize concurrent writes to the same key. Modules receive logically
// isolated sub-namespaces via Namespace.
type Store interface {
	// Get unmarshals the value for key into out and reports whether the
	// key existed. out is left untouched on a miss.
	Get(ctx context.Context, key string, out any) (bool, error)
	Put(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, key string) error
	Has(ctx context.Context, key string) (bool, error)
	// Increment adds delta (may be negative) to a numeric value, creating
	// it at delta if absent, and returns the new value atomically.
	Increment(ctx context.Context, key string, delta int64) (int64, error)
	// Iterate visits every key in this namespace in lexicographic key
	// order. Returning an error from fn stops the walk.
	Iterate(ctx context.Context, fn func(key string, value []byte) error) error
	// Namespace returns a view of the store scoped under prefix. Keys of
	// disjoint namespaces never collide.
	Namespace(prefix string) Store
}
