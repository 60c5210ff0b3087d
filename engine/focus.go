package engine

import (
	"github.com/spektr-org/chartform/chartdata"
)

// ============================================================================
// FOCUS CELL & CROSS-FILTER EMISSION
// ============================================================================
// The focused-series name is the one piece of state that outlives a
// transform invocation. It lives in an explicit cell the host owns:
// the exported callback mutates it, the tooltip formatter reads it on
// the next render. Rendering is single-threaded, so plain fields are
// enough.
// ============================================================================

// FocusCell holds the currently focused series name.
type FocusCell struct {
	name string
	set  bool
}

// Set records the focused series.
func (c *FocusCell) Set(name string) {
	c.name = name
	c.set = true
}

// Clear drops the focus.
func (c *FocusCell) Clear() {
	c.name = ""
	c.set = false
}

// Name returns the focused series name and whether one is set.
func (c *FocusCell) Name() (string, bool) {
	return c.name, c.set
}

// ============================================================================
// CROSS-FILTER DATA MASK
// ============================================================================

// buildDataMask turns a selected series into filter clauses: the label
// map recovers the raw dimension values behind the series key, paired
// positionally with the group-by columns.
func buildDataMask(seriesKey string, labelMap chartdata.LabelMap, groupBy []string, secondary bool) DataMask {
	values := LookupLabel(labelMap, seriesKey, secondary)
	if len(values) == 0 || len(groupBy) == 0 {
		return DataMask{SelectedValues: []string{seriesKey}}
	}

	n := len(groupBy)
	if len(values) < n {
		n = len(values)
	}
	// Grouped keys list metric first when metrics are present; filters
	// pair from the tail where the dimension values sit.
	offset := len(values) - n

	clauses := make([]FilterClause, 0, n)
	for i := 0; i < n; i++ {
		clauses = append(clauses, FilterClause{
			Column: groupBy[i],
			Op:     "IN",
			Values: []string{values[offset+i]},
		})
	}
	return DataMask{
		Filters:        clauses,
		SelectedValues: []string{seriesKey},
	}
}

// selectedSeriesIndexes maps the host's selected values back onto the
// emitted series list: series index → series name.
func selectedSeriesIndexes(names []string, state FilterState) map[int]string {
	if len(state.SelectedValues) == 0 {
		return nil
	}
	selected := make(map[string]bool, len(state.SelectedValues))
	for _, v := range state.SelectedValues {
		selected[v] = true
	}
	out := make(map[int]string)
	for i, name := range names {
		if selected[name] {
			out[i] = name
		}
	}
	return out
}
