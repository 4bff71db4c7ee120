package cmd

import (
	"fmt"
	"strings"

	"browsarr/internal/domain"
	"browsarr/internal/source"

	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search a source by text and filters",
	Run: func(cmd *cobra.Command, _ []string) {
		ctx := cmd.Context()

		s, err := source.New(sourceName)
		if err != nil {
			fmt.Println("Invalid source:", err)
			return
		}

		filters, err := filtersFromFlags(s.DefaultFilters())
		if err != nil {
			fmt.Println("Invalid filter:", err)
			return
		}

		listing, err := s.FetchSearch(ctx, page, query, filters)
		if err != nil {
			fmt.Printf("Failed to search %q: %v\n", s, err)
			return
		}

		printListing(listing, page)
	},
}

// filtersFromFlags marks the source's filter choices selected on the command
// line. Values match a choice by name or by id.
func filtersFromFlags(filters domain.FilterSpec) (domain.FilterSpec, error) {
	if err := markChoices(&filters.Categories, categories, domain.TriIncluded); err != nil {
		return domain.FilterSpec{}, err
	}
	if err := markChoices(&filters.Statuses, statuses, domain.TriIncluded); err != nil {
		return domain.FilterSpec{}, err
	}
	if err := markChoices(&filters.Genres, includeGenres, domain.TriIncluded); err != nil {
		return domain.FilterSpec{}, err
	}
	if err := markChoices(&filters.Genres, excludeGenres, domain.TriExcluded); err != nil {
		return domain.FilterSpec{}, err
	}

	filters.Sort = domain.SortSpec{Index: sortIndex, Ascending: sortAscending}

	return filters, nil
}

func markChoices(group *domain.FilterGroup, values []string, state domain.TriState) error {
	for _, value := range values {
		found := false

		for c := range group.Choices {
			choice := &group.Choices[c]
			if strings.EqualFold(choice.Name, value) || choice.ID == value {
				choice.State = state
				found = true
			}
		}

		if !found {
			return fmt.Errorf("no %s choice matching %q", group.Name, value)
		}
	}

	return nil
}
