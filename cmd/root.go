package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "browsarr",
	Short: "Browse and watch manga catalogs from various sources.",
	Long: `Browse and watch manga catalogs from various sources.

Provide a configuration file using one of the following methods:
1. Use the --config <path> or -c <path> flag.
2. Place a config.yaml file in the default user configuration directory (e.g., ~/.config/browsarr/).
3. Place a config.yaml file a folder inside your home directory (e.g., ~/.browsarr/).
4. Place a config.yaml file in the directory of the binary.

For more information and examples, visit https://github.com/browsarr/browsarr`,
}

func init() {
	initRootFlags()
	initBrowseFlags()
	initSearchFlags()
	initInfoFlags()
	initPagesFlags()

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(pagesCmd)
	rootCmd.AddCommand(watchCmd)
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
