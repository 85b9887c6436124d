package domain

import "strings"

// Semantic item groups.
const (
	GroupMeasures   = "measures"
	GroupDimensions = "dimensions"
)

// SemanticItem is one entry of the semantic layer: a measure or dimension
// belonging to a cube, with a descriptive hint and optional enumerated
// variants. Immutable once loaded; identity is Name.
type SemanticItem struct {
	Name     string   `json:"name"`
	Group    string   `json:"group"`
	CubeName string   `json:"cube_name"`
	Variants []string `json:"variants,omitempty"`
	Hint     string   `json:"hint"`
}

// ItemName returns the item name without its cube prefix (text after the
// first '.'). Names without a prefix are returned unchanged.
func (i SemanticItem) ItemName() string {
	if _, rest, ok := strings.Cut(i.Name, "."); ok {
		return rest
	}
	return i.Name
}

// HasVariants reports whether the item carries enumerated legal values.
func (i SemanticItem) HasVariants() bool {
	return len(i.Variants) > 0
}

// CubeSummary describes one cube for listing purposes.
type CubeSummary struct {
	CubeName        string         `json:"cube_name"`
	TotalItems      int            `json:"total_items"`
	MeasuresCount   int            `json:"measures_count"`
	DimensionsCount int            `json:"dimensions_count"`
	SampleItems     []SemanticItem `json:"sample_items"`
}

// CubeDetail partitions a cube's items into measures and dimensions.
type CubeDetail struct {
	CubeName   string         `json:"cube_name"`
	TotalItems int            `json:"total_items"`
	Measures   []SemanticItem `json:"measures"`
	Dimensions []SemanticItem `json:"dimensions"`
}
