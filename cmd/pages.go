package cmd

import (
	"fmt"

	"browsarr/internal/source"

	"github.com/spf13/cobra"
)

var pagesCmd = &cobra.Command{
	Use:   "pages",
	Short: "List the page image URLs of a chapter",
	Run: func(cmd *cobra.Command, _ []string) {
		ctx := cmd.Context()

		s, err := source.New(sourceName)
		if err != nil {
			fmt.Println("Invalid source:", err)
			return
		}

		pages, err := s.FetchPages(ctx, chapter)
		if err != nil {
			fmt.Printf("Failed to get pages from %q: %v\n", s, err)
			return
		}

		for _, page := range pages {
			fmt.Printf("%d\t%s\n", page.Index, page.ImageURL)
		}
	},
}
