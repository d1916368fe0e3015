package cache

import "strings"

// ScopedKeyer prefixes every key from an inner Keyer so several
// deployments can share one backend:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "staging")
//	keyer.LayoutKey(h, opts) // "staging:layout:..."
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer returns a keyer that prepends scope to inner's keys. A
// trailing ":" is added to scope when missing. A nil inner means
// [NewDefaultKeyer].
func NewScopedKeyer(inner Keyer, scope string) *ScopedKeyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	if scope != "" && !strings.HasSuffix(scope, ":") {
		scope += ":"
	}
	return &ScopedKeyer{inner: inner, prefix: scope}
}

// Prefix returns the string prepended to every key.
func (k *ScopedKeyer) Prefix() string { return k.prefix }

func (k *ScopedKeyer) LayoutKey(tilesHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(tilesHash, opts)
}

func (k *ScopedKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(layoutHash, opts)
}
