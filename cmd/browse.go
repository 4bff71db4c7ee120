package cmd

import (
	"fmt"

	"browsarr/internal/domain"
	"browsarr/internal/source"

	"github.com/spf13/cobra"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse the popular or latest listing of a source",
	Run: func(cmd *cobra.Command, _ []string) {
		ctx := cmd.Context()

		s, err := source.New(sourceName)
		if err != nil {
			fmt.Println("Invalid source:", err)
			return
		}

		var listing domain.ListingPage

		if latest {
			if !s.SupportsLatest() {
				fmt.Printf("Source %q has no latest listing\n", s)
				return
			}
			listing, err = s.FetchLatest(ctx, page)
		} else {
			listing, err = s.FetchPopular(ctx, page)
		}
		if err != nil {
			fmt.Printf("Failed to fetch listing from %q: %v\n", s, err)
			return
		}

		printListing(listing, page)
	},
}

func printListing(listing domain.ListingPage, page int) {
	if len(listing.Items) == 0 {
		fmt.Println("No results")
		return
	}

	for _, item := range listing.Items {
		fmt.Printf("%s\t%s\n", item.ID, item.Title)
	}

	if listing.HasNextPage {
		fmt.Printf("\nMore results on page %d\n", page+1)
	}
}
