package cache

// LayoutKeyOpts holds every configuration value that affects a layout.
type LayoutKeyOpts struct {
	Columns   int     `json:"columns"`
	Duplicate bool    `json:"duplicate"`
	Landscape bool    `json:"landscape"`
	CellGap   float64 `json:"cell_gap"`
	Width     int     `json:"width"`
	Height    int     `json:"height"`
	Padding   [4]int  `json:"padding"`
}

// ArtifactKeyOpts holds the render options that affect an artifact.
type ArtifactKeyOpts struct {
	Format      string  `json:"format"`
	Style       string  `json:"style"`
	Scale       float64 `json:"scale"`
	ShowLabels  bool    `json:"show_labels"`
	TextSize    int     `json:"text_size"`
	Seed        uint64  `json:"seed,omitempty"`
	Interactive bool    `json:"interactive,omitempty"`
}

// Keyer generates cache keys.
type Keyer interface {
	// LayoutKey returns the key for a layout of the tiles hashing to tilesHash.
	LayoutKey(tilesHash string, opts LayoutKeyOpts) string

	// ArtifactKey returns the key for an artifact rendered from the layout
	// hashing to layoutHash.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer produces "layout:<sha256>" and "artifact:<sha256>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

func (DefaultKeyer) LayoutKey(tilesHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", tilesHash, opts)
}

func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}
