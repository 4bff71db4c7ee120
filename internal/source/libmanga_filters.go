package source

import (
	"browsarr/internal/domain"
	"browsarr/internal/filter"
)

// Facet ids and sort tokens below mirror the site's own filter registry; they
// are configuration, not logic.

var libFilterVocabulary = filter.Vocabulary{
	CategoryParam:     "types[]",
	StatusParam:       "status[]",
	GenreIncludeParam: "includeGenres[]",
	GenreExcludeParam: "excludeGenres[]",
	DirParam:          "dir",
	SortParam:         "sort",
	SortKeys:          []string{"rate", "name", "views", "created_at", "chap_count"},
}

func libCategories() []domain.FilterChoice {
	return []domain.FilterChoice{
		{Name: "Манга", ID: "1"},
		{Name: "OEL-манга", ID: "4"},
		{Name: "Манхва", ID: "5"},
		{Name: "Маньхуа", ID: "6"},
		{Name: "Сингл", ID: "7"},
		{Name: "Руманга", ID: "8"},
		{Name: "Комикс западный", ID: "9"},
	}
}

func libStatuses() []domain.FilterChoice {
	return []domain.FilterChoice{
		{Name: "Продолжается", ID: "1"},
		{Name: "Завершен", ID: "2"},
		{Name: "Заморожен", ID: "3"},
	}
}

func libGenres() []domain.FilterChoice {
	return []domain.FilterChoice{
		{Name: "арт", ID: "32"},
		{Name: "боевик", ID: "34"},
		{Name: "боевые искусства", ID: "35"},
		{Name: "вампиры", ID: "36"},
		{Name: "веб", ID: "78"},
		{Name: "гарем", ID: "37"},
		{Name: "гендерная интрига", ID: "38"},
		{Name: "героическое фэнтези", ID: "39"},
		{Name: "детектив", ID: "40"},
		{Name: "дзёсэй", ID: "41"},
		{Name: "додзинси", ID: "42"},
		{Name: "драма", ID: "43"},
		{Name: "ёнкома", ID: "75"},
		{Name: "игра", ID: "44"},
		{Name: "история", ID: "45"},
		{Name: "киберпанк", ID: "46"},
		{Name: "кодомо", ID: "76"},
		{Name: "комедия", ID: "47"},
		{Name: "махо-сёдзё", ID: "48"},
		{Name: "меха", ID: "49"},
		{Name: "мистика", ID: "50"},
		{Name: "научная фантастика", ID: "51"},
		{Name: "омегаверс", ID: "77"},
		{Name: "повседневность", ID: "52"},
		{Name: "постапокалиптика", ID: "53"},
		{Name: "приключения", ID: "54"},
		{Name: "психология", ID: "55"},
		{Name: "романтика", ID: "56"},
		{Name: "самурайский боевик", ID: "57"},
		{Name: "сверхъестественное", ID: "58"},
		{Name: "сёдзё", ID: "59"},
		{Name: "сёдзё-ай", ID: "60"},
		{Name: "сёнэн", ID: "61"},
		{Name: "сёнэн-ай", ID: "62"},
		{Name: "спорт", ID: "63"},
		{Name: "сэйнэн", ID: "64"},
		{Name: "трагедия", ID: "65"},
		{Name: "триллер", ID: "66"},
		{Name: "ужасы", ID: "67"},
		{Name: "фантастика", ID: "68"},
		{Name: "фэнтези", ID: "69"},
		{Name: "школа", ID: "70"},
		{Name: "эротика", ID: "71"},
		{Name: "этти", ID: "72"},
		{Name: "юри", ID: "73"},
		{Name: "яой", ID: "74"},
	}
}
