package cache

import "fmt"

// Keyer generates cache keys for pipeline stages.
type Keyer interface {
	// LevelsKey returns the key of the level table of a graph.
	LevelsKey(graphHash string) string

	// LayoutKey returns the key of a layout computed from a graph.
	LayoutKey(graphHash string, opts LayoutKeyOpts) string

	// ArtifactKey returns the key of one rendered output of a layout.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts are the layout options that change a stored layout: the
// ones that move geometry plus the style and title recorded in it.
type LayoutKeyOpts struct {
	VizType  string  `json:"viz_type"`
	OriginX  float64 `json:"origin_x"`
	OriginY  float64 `json:"origin_y"`
	MaxDepth int     `json:"max_depth"`
	Style    string  `json:"style,omitempty"`
	Title    string  `json:"title,omitempty"`
}

// ArtifactKeyOpts are the render options that change an artifact.
type ArtifactKeyOpts struct {
	Format      string  `json:"format"`
	Style       string  `json:"style"`
	Title       string  `json:"title,omitempty"`
	ShowLabels  bool    `json:"show_labels"`
	FontLabels  bool    `json:"font_labels,omitempty"`
	EmbedFont   bool    `json:"embed_font,omitempty"`
	Interactive bool    `json:"interactive"`
	Scale       float64 `json:"scale,omitempty"`
}

// DefaultKeyer hashes options into stage-prefixed keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

func (DefaultKeyer) LevelsKey(graphHash string) string {
	return fmt.Sprintf("levels:%s", graphHash)
}

func (DefaultKeyer) LayoutKey(graphHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", graphHash, opts)
}

func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}
