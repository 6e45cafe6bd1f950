package cache

// ScopedKeyer wraps a Keyer with a prefix for namespace isolation. Setting
// key_prefix in the [cache] config scopes keys per deployment so several
// instances can share one Redis or Mongo backend.
//
// Example usage:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "hypertower:v1:")
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

// LevelsKey generates a prefixed key for level tables.
func (k *ScopedKeyer) LevelsKey(graphHash string) string {
	return k.prefix + k.inner.LevelsKey(graphHash)
}

// LayoutKey generates a prefixed key for layout caching.
func (k *ScopedKeyer) LayoutKey(graphHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(graphHash, opts)
}

// ArtifactKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(layoutHash, opts)
}
