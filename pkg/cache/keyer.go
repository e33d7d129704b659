package cache

// SchemaVersion is embedded in every key.
const SchemaVersion = "v1"

// Keyer derives cache keys.
type Keyer interface {
	// ResultKey is the key of the layout result of a scene.
	ResultKey(sceneHash string) string

	// GraphKey is the key of a scene's anchor graph rendered in format.
	GraphKey(sceneHash, format string) string
}

// DefaultKeyer produces keys of the form "kind:version:hash".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ResultKey implements [Keyer].
func (DefaultKeyer) ResultKey(sceneHash string) string {
	return hashKey("result:"+SchemaVersion, sceneHash)
}

// GraphKey implements [Keyer].
func (DefaultKeyer) GraphKey(sceneHash, format string) string {
	return hashKey("graph:"+SchemaVersion, sceneHash, format)
}
