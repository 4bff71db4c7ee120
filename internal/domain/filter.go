package domain

// TriState is the state of a single filter choice.
type TriState int

const (
	TriIgnored TriState = iota
	TriIncluded
	TriExcluded
)

// FilterChoice is one selectable facet value, keyed by the opaque id the
// upstream expects in query parameters.
type FilterChoice struct {
	Name  string
	ID    string
	State TriState
}

// FilterGroup is an ordered set of tri-state choices sharing one facet.
type FilterGroup struct {
	Name    string
	Choices []FilterChoice
}

// SortSpec selects an entry of the adapter's sort vocabulary by index.
type SortSpec struct {
	Index     int
	Ascending bool
}

// FilterSpec is the full facet selection for a search. Groups encode in
// declaration order; unspecified groups stay ignored and contribute nothing.
type FilterSpec struct {
	Categories FilterGroup
	Statuses   FilterGroup
	Genres     FilterGroup
	Sort       SortSpec
}

// IsZero reports whether the spec carries no selection at all, in which case
// the adapter's default filter spec is used instead.
func (f FilterSpec) IsZero() bool {
	return len(f.Categories.Choices) == 0 &&
		len(f.Statuses.Choices) == 0 &&
		len(f.Genres.Choices) == 0 &&
		f.Sort == SortSpec{}
}
