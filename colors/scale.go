package colors

// ============================================================================
// CATEGORICAL COLOR SCALES
// ============================================================================
// A scale hands out palette colors by series identity. Assignment is
// sticky: the first request for a label claims the next palette slot,
// and every later request for the same label returns the same color.
// Sharing one scale across both query slots is what keeps a series and
// its historical-comparison counterpart on the same color.
// ============================================================================

// Schemes is the registry of named palettes.
var Schemes = map[string][]string{
	"default": {
		"#4F46E5", "#10B981", "#F59E0B", "#EF4444", "#8B5CF6",
		"#06B6D4", "#EC4899", "#84CC16", "#F97316", "#6366F1",
	},
	"category10": {
		"#1F77B4", "#FF7F0E", "#2CA02C", "#D62728", "#9467BD",
		"#8C564B", "#E377C2", "#7F7F7F", "#BCBD22", "#17BECF",
	},
	"vintage": {
		"#D87C7C", "#919E8B", "#D7AB82", "#6E7074", "#61A0A8",
		"#EFA18D", "#787464", "#CC7E63", "#724E58", "#4B565B",
	},
}

// DefaultScheme is used when the form data names no scheme or names an
// unknown one.
const DefaultScheme = "default"

// CategoricalScale assigns palette colors to labels.
type CategoricalScale struct {
	palette []string
	slots   map[string]int
	order   []string
}

// NewScale creates a scale for a named scheme. Unknown scheme names
// fall back to the default palette.
func NewScale(scheme string) *CategoricalScale {
	palette, ok := Schemes[scheme]
	if !ok || len(palette) == 0 {
		palette = Schemes[DefaultScheme]
	}
	return &CategoricalScale{
		palette: palette,
		slots:   make(map[string]int),
	}
}

// Get returns the color for a label, assigning the next palette slot
// on first sight. The palette wraps when exhausted.
func (s *CategoricalScale) Get(label string) string {
	idx, ok := s.slots[label]
	if !ok {
		idx = len(s.order)
		s.slots[label] = idx
		s.order = append(s.order, label)
	}
	return s.palette[idx%len(s.palette)]
}

// Labels returns every label the scale has seen, in assignment order.
func (s *CategoricalScale) Labels() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}
