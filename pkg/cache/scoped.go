package cache

// ScopedKeyer prefixes every key of an inner [Keyer]. API servers sharing one
// Redis or MongoDB instance use it to keep their entries apart.
//
//	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), "staging:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix. A nil inner keyer means the
// default keyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// ResultKey implements [Keyer].
func (k *ScopedKeyer) ResultKey(sceneHash string) string {
	return k.prefix + k.inner.ResultKey(sceneHash)
}

// GraphKey implements [Keyer].
func (k *ScopedKeyer) GraphKey(sceneHash, format string) string {
	return k.prefix + k.inner.GraphKey(sceneHash, format)
}
