package cache

// Keyer derives cache keys for pipeline stages.
type Keyer interface {
	// LayoutKey returns the key for a serialized layout.
	LayoutKey(opts LayoutKeyOpts) string

	// ArtifactKey returns the key for a rendered artifact of a layout.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts identifies a layout: the topology and the selected host
// ordinals, in selection order.
type LayoutKeyOpts struct {
	Depth int   `json:"depth"`
	Width int   `json:"width"`
	Hosts []int `json:"hosts,omitempty"`
}

// ArtifactKeyOpts identifies the rendering of a layout.
type ArtifactKeyOpts struct {
	Format  string `json:"format"`
	Summary bool   `json:"summary,omitempty"`
	Labels  bool   `json:"labels,omitempty"`
	IDs     bool   `json:"ids,omitempty"`
}

// DefaultKeyer hashes key options with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// LayoutKey implements Keyer.
func (DefaultKeyer) LayoutKey(opts LayoutKeyOpts) string {
	return hashKey("layout", opts)
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}
