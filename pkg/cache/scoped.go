package cache

// ScopedKeyer wraps a Keyer with a prefix so different deployments or
// users get separate cache namespaces.
//
// Example:
//
//	// Per-gallery keys so two galleries never collide.
//	keyer := cache.NewScopedKeyer(nil, "gallery:main:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer that prepends prefix to every key.
// A nil inner keyer defaults to [DefaultKeyer].
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

func (k *ScopedKeyer) DrawingKey(algorithm string, opts DrawingKeyOpts) string {
	return k.prefix + k.inner.DrawingKey(algorithm, opts)
}

func (k *ScopedKeyer) ArtifactKey(drawingHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(drawingHash, opts)
}

func (k *ScopedKeyer) TraceKey(imageHash string, opts TraceKeyOpts) string {
	return k.prefix + k.inner.TraceKey(imageHash, opts)
}
