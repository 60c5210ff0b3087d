package format

// ============================================================================
// FORMATTER MAP — Per-metric formatter lookup with a miss policy
// ============================================================================
// The chart controls let users override the numeric format per metric.
// A Map holds those overrides keyed by metric identity; a lookup miss
// yields the fallback formatter, never nil.
// ============================================================================

// Map resolves a ValueFormatter per metric key.
type Map struct {
	byKey    map[string]ValueFormatter
	fallback ValueFormatter
}

// NewMap creates a formatter map with the given fallback. A nil
// fallback defaults to SmartNumber.
func NewMap(fallback ValueFormatter) *Map {
	if fallback == nil {
		fallback = SmartNumber
	}
	return &Map{
		byKey:    make(map[string]ValueFormatter),
		fallback: fallback,
	}
}

// Set registers a formatter for a metric key. Nil formatters are ignored.
func (m *Map) Set(key string, f ValueFormatter) {
	if f != nil {
		m.byKey[key] = f
	}
}

// Get returns the formatter for a metric key, falling back to the
// default formatter on a miss.
func (m *Map) Get(key string) ValueFormatter {
	if f, ok := m.byKey[key]; ok {
		return f
	}
	return m.fallback
}

// Has reports whether an explicit formatter is registered for key.
func (m *Map) Has(key string) bool {
	_, ok := m.byKey[key]
	return ok
}

// Fallback returns the miss-policy formatter.
func (m *Map) Fallback() ValueFormatter { return m.fallback }
