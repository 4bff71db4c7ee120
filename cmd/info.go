package cmd

import (
	"fmt"
	"strings"
	"time"

	"browsarr/internal/source"

	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show details and chapters of a series",
	Run: func(cmd *cobra.Command, _ []string) {
		ctx := cmd.Context()

		s, err := source.New(sourceName)
		if err != nil {
			fmt.Println("Invalid source:", err)
			return
		}

		item, err := s.FetchDetails(ctx, series)
		if err != nil {
			fmt.Printf("Failed to get details from %q: %v\n", s, err)
			return
		}

		fmt.Println("Title:", item.Title)
		if item.Author != "" {
			fmt.Println("Author:", item.Author)
		}
		if item.Artist != "" {
			fmt.Println("Artist:", item.Artist)
		}
		fmt.Println("Status:", item.Status)
		if len(item.Genres) > 0 {
			fmt.Println("Genres:", strings.Join(item.Genres, ", "))
		}
		if item.Description != "" {
			fmt.Println()
			fmt.Println(item.Description)
		}

		chapters, err := s.FetchChapterList(ctx, series)
		if err != nil {
			fmt.Printf("Failed to get chapters for %q: %v\n", item.Title, err)
			return
		}

		fmt.Println()
		for _, chapter := range chapters {
			uploaded := ""
			if chapter.UploadTimestamp > 0 {
				uploaded = time.UnixMilli(chapter.UploadTimestamp).Format("2006-01-02")
			}
			fmt.Printf("%s\t%s\t%s\n", chapter.ID, chapter.DisplayName, uploaded)
		}
	},
}
