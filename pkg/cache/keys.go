package cache

// Keyer derives cache keys.
type Keyer interface {
	// ConversionKey identifies the result of converting a document (by
	// content hash) with a given options fingerprint.
	ConversionKey(documentHash, optionsFingerprint string) string

	// ModelKey identifies a stored model by id.
	ModelKey(modelID string) string
}

// DefaultKeyer produces unscoped keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ConversionKey returns "conversion:<hash>".
func (DefaultKeyer) ConversionKey(documentHash, optionsFingerprint string) string {
	return hashKey("conversion", documentHash, optionsFingerprint)
}

// ModelKey returns "model:<id>".
func (DefaultKeyer) ModelKey(modelID string) string {
	return "model:" + modelID
}

// ScopedKeyer prefixes every key, isolating deployments that share a
// backend.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix. A nil inner keyer means
// [DefaultKeyer].
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// ConversionKey returns the prefixed conversion key.
func (k *ScopedKeyer) ConversionKey(documentHash, optionsFingerprint string) string {
	return k.prefix + k.inner.ConversionKey(documentHash, optionsFingerprint)
}

// ModelKey returns the prefixed model key.
func (k *ScopedKeyer) ModelKey(modelID string) string {
	return k.prefix + k.inner.ModelKey(modelID)
}
