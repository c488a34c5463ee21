package cache

// ScopedKeyer wraps a Keyer with a prefix, so that several databases or
// users can share one Redis or MongoDB backend without key collisions.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "lab-a:")
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

// TileBitsKey generates a prefixed tile-bits key.
func (k *ScopedKeyer) TileBitsKey(root, family, tiletype string) string {
	return k.prefix + k.inner.TileBitsKey(root, family, tiletype)
}

// TilegridKey generates a prefixed tile-grid key.
func (k *ScopedKeyer) TilegridKey(root, family, device string) string {
	return k.prefix + k.inner.TilegridKey(root, family, device)
}
