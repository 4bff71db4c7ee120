package source

import (
	"testing"

	"browsarr/internal/domain"
	"browsarr/internal/filter"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	for _, name := range Names() {
		s, err := New(name)
		require.NoError(t, err)
		require.NotNil(t, s)
	}

	_, err := New("nonexistent")
	assert.Error(t, err)
}

func TestDedupeByID(t *testing.T) {
	items := []domain.CatalogItem{
		{ID: "/a", Title: "A"},
		{ID: "/b", Title: "B"},
		{ID: "/a", Title: "A again"},
		{ID: "/c", Title: "C"},
		{ID: "/b", Title: "B again"},
	}

	deduped := dedupeByID(items)

	require.Len(t, deduped, 3)
	assert.Equal(t, "/a", deduped[0].ID)
	assert.Equal(t, "A", deduped[0].Title)
	assert.Equal(t, "/b", deduped[1].ID)
	assert.Equal(t, "/c", deduped[2].ID)
}

func TestMergeSuggestions(t *testing.T) {
	suggestions := []domain.CatalogItem{
		{ID: "/x", Title: "Berserk"},
		{ID: "/y", Title: "Vinland Saga"},
	}
	catalog := domain.ListingPage{
		Items: []domain.CatalogItem{
			{ID: "/a", Title: "Vagabond"},
			{ID: "/b", Title: "Berserk"},
		},
		HasNextPage: true,
	}

	merged := mergeSuggestions(suggestions, catalog)

	require.Len(t, merged.Items, 3)
	assert.Equal(t, "Berserk", merged.Items[0].Title)
	assert.Equal(t, "/x", merged.Items[0].ID)
	assert.Equal(t, "Vinland Saga", merged.Items[1].Title)
	assert.Equal(t, "Vagabond", merged.Items[2].Title)
	assert.True(t, merged.HasNextPage)
}

func TestMergeSuggestionsEmptySides(t *testing.T) {
	catalog := domain.ListingPage{Items: []domain.CatalogItem{{ID: "/a", Title: "Vagabond"}}}

	merged := mergeSuggestions(nil, catalog)
	require.Len(t, merged.Items, 1)
	assert.False(t, merged.HasNextPage)

	merged = mergeSuggestions([]domain.CatalogItem{{ID: "/x", Title: "Berserk"}}, domain.ListingPage{})
	require.Len(t, merged.Items, 1)
	assert.Equal(t, "Berserk", merged.Items[0].Title)
}

func TestBuildQueryPreservesOrder(t *testing.T) {
	params := []filter.Param{
		{Key: "page", Value: "2"},
		{Key: "name", Value: "one piece"},
		{Key: "types[]", Value: "1"},
		{Key: "types[]", Value: "5"},
		{Key: "dir", Value: "desc"},
	}

	assert.Equal(t, "page=2&name=one+piece&types%5B%5D=1&types%5B%5D=5&dir=desc", buildQuery(params))
	assert.Equal(t, "", buildQuery(nil))
}
