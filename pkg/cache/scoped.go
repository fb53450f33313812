package cache

// ScopedKeyer wraps a Keyer with a prefix for namespace isolation.
//
// Example usage:
//
//	// Separate staging entries in a shared redis
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "staging:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// CodesKey generates a prefixed key for code table caching.
func (k *ScopedKeyer) CodesKey(source string, input any, opts CodesKeyOpts) string {
	key := k.inner.CodesKey(source, input, opts)
	if key == "" {
		return ""
	}
	return k.prefix + key
}
