package cmd

var (
	configPath string
	sourceName string

	page   int
	latest bool

	query         string
	categories    []string
	statuses      []string
	includeGenres []string
	excludeGenres []string
	sortIndex     int
	sortAscending bool

	series  string
	chapter string
)

func initRootFlags() {
	rootCmd.PersistentFlags().StringVarP(
		&configPath,
		"config",
		"c",
		"",
		"specifies the path to your config file",
	)
}

func initBrowseFlags() {
	browseCmd.Flags().StringVarP(
		&sourceName,
		"source",
		"s",
		"",
		"specifies the source to browse",
	)
	browseCmd.Flags().IntVarP(
		&page,
		"page",
		"p",
		1,
		"specifies the listing page to fetch",
	)
	browseCmd.Flags().BoolVarP(
		&latest,
		"latest",
		"L",
		false,
		"browse the latest updates instead of the popular listing",
	)

	_ = browseCmd.MarkFlagRequired("source")
}

func initSearchFlags() {
	searchCmd.Flags().StringVarP(
		&sourceName,
		"source",
		"s",
		"",
		"specifies the source to search",
	)
	searchCmd.Flags().IntVarP(
		&page,
		"page",
		"p",
		1,
		"specifies the result page to fetch",
	)
	searchCmd.Flags().StringVarP(
		&query,
		"query",
		"q",
		"",
		"specifies the text to search for",
	)
	searchCmd.Flags().StringSliceVar(
		&categories,
		"category",
		nil,
		"specifies categories to filter on",
	)
	searchCmd.Flags().StringSliceVar(
		&statuses,
		"status",
		nil,
		"specifies publication statuses to filter on",
	)
	searchCmd.Flags().StringSliceVar(
		&includeGenres,
		"include-genre",
		nil,
		"specifies genres the results must have",
	)
	searchCmd.Flags().StringSliceVar(
		&excludeGenres,
		"exclude-genre",
		nil,
		"specifies genres the results must not have",
	)
	searchCmd.Flags().IntVar(
		&sortIndex,
		"sort",
		0,
		"specifies the sort option index of the source",
	)
	searchCmd.Flags().BoolVar(
		&sortAscending,
		"ascending",
		false,
		"sort in ascending order",
	)

	_ = searchCmd.MarkFlagRequired("source")
}

func initInfoFlags() {
	infoCmd.Flags().StringVarP(
		&sourceName,
		"source",
		"s",
		"",
		"specifies the source of the series",
	)
	infoCmd.Flags().StringVarP(
		&series,
		"series",
		"m",
		"",
		"specifies the series id on the source",
	)

	_ = infoCmd.MarkFlagRequired("source")
	_ = infoCmd.MarkFlagRequired("series")
}

func initPagesFlags() {
	pagesCmd.Flags().StringVarP(
		&sourceName,
		"source",
		"s",
		"",
		"specifies the source of the chapter",
	)
	pagesCmd.Flags().StringVarP(
		&chapter,
		"chapter",
		"C",
		"",
		"specifies the chapter id on the source",
	)

	_ = pagesCmd.MarkFlagRequired("source")
	_ = pagesCmd.MarkFlagRequired("chapter")
}
