package source

import (
	"fmt"
	"net/url"
	"strings"

	"browsarr/internal/domain"
	"browsarr/internal/filter"
)

// New returns the adapter registered under the given source name.
func New(name string) (domain.Adapter, error) {
	switch name {
	case "mangasushi":
		return NewMangaSushi(), nil
	case "zinmanga":
		return NewZinManga(), nil
	case "mangalib":
		return NewMangaLib(), nil
	default:
		return nil, fmt.Errorf("unknown source: %s", name)
	}
}

// Names lists the registered source names.
func Names() []string {
	return []string{"mangasushi", "zinmanga", "mangalib"}
}

// dedupeByID drops listing entries repeating an already seen id, keeping
// first occurrences in order. Update-style listings can repeat an item
// across slots.
func dedupeByID(items []domain.CatalogItem) []domain.CatalogItem {
	seen := make(map[string]struct{}, len(items))
	deduped := make([]domain.CatalogItem, 0, len(items))

	for _, item := range items {
		if _, ok := seen[item.ID]; ok {
			continue
		}
		seen[item.ID] = struct{}{}
		deduped = append(deduped, item)
	}

	return deduped
}

// mergeSuggestions combines quick-suggestion results with the full catalog
// result. Suggestions always come first, in their returned order; catalog
// items follow only when no suggestion carries the exact same title. The
// collision check is by title, not id, matching what the upstream popup
// search deduplicates against.
func mergeSuggestions(suggestions []domain.CatalogItem, catalog domain.ListingPage) domain.ListingPage {
	titles := make(map[string]struct{}, len(suggestions))
	for _, s := range suggestions {
		titles[s.Title] = struct{}{}
	}

	merged := make([]domain.CatalogItem, 0, len(suggestions)+len(catalog.Items))
	merged = append(merged, suggestions...)
	for _, item := range catalog.Items {
		if _, ok := titles[item.Title]; ok {
			continue
		}
		merged = append(merged, item)
	}

	return domain.ListingPage{Items: merged, HasNextPage: catalog.HasNextPage}
}

// buildQuery renders parameters into a query string preserving their order.
// url.Values.Encode sorts keys, which would reshuffle repeated facet keys.
func buildQuery(params []filter.Param) string {
	var b strings.Builder
	for i, p := range params {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(p.Key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.Value))
	}
	return b.String()
}
