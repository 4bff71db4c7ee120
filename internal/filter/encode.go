// Package filter turns a structured facet selection into the query
// parameters a site's search endpoint expects.
package filter

import "browsarr/internal/domain"

// Param is one encoded query parameter. Repeated keys are allowed; order of
// appearance follows group declaration order, then choice order within the
// group.
type Param struct {
	Key   string
	Value string
}

// Vocabulary holds the per-site parameter names and the fixed ordered sort
// key tokens a search endpoint understands.
type Vocabulary struct {
	CategoryParam     string
	StatusParam       string
	GenreIncludeParam string
	GenreExcludeParam string
	DirParam          string
	SortParam         string
	SortKeys          []string
}

// Encode translates spec into an ordered parameter sequence. An empty spec is
// replaced by the adapter's declared default spec, so a search with no
// explicit facets still runs through the full default facet set. Category and
// status choices contribute one parameter per non-ignored choice under a
// single key; genre choices split between the include and exclude keys. The
// sort selection always contributes direction and the sort key token at its
// index; an out-of-range index is a programming error.
func Encode(spec, defaults domain.FilterSpec, vocab Vocabulary) []Param {
	if spec.IsZero() {
		spec = defaults
	}

	var params []Param
	for _, c := range spec.Categories.Choices {
		if c.State != domain.TriIgnored {
			params = append(params, Param{vocab.CategoryParam, c.ID})
		}
	}
	for _, s := range spec.Statuses.Choices {
		if s.State != domain.TriIgnored {
			params = append(params, Param{vocab.StatusParam, s.ID})
		}
	}
	for _, g := range spec.Genres.Choices {
		switch g.State {
		case domain.TriIncluded:
			params = append(params, Param{vocab.GenreIncludeParam, g.ID})
		case domain.TriExcluded:
			params = append(params, Param{vocab.GenreExcludeParam, g.ID})
		}
	}

	dir := "desc"
	if spec.Sort.Ascending {
		dir = "asc"
	}
	params = append(params, Param{vocab.DirParam, dir})
	params = append(params, Param{vocab.SortParam, vocab.SortKeys[spec.Sort.Index]})

	return params
}
