package source

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"browsarr/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const libLoginPage = `<html><head><meta name="csrf-token" content="ignored"><meta name="_token" content="tok123"></head><body></body></html>`

const libCatalogPage = `{"items":{"data":[
	{"name":"Берсерк","slug":"berserk","cover":"1"},
	{"name":"Бродяга","slug":"vagabond","cover":null}
],"next_page_url":"https://example.org/filterlist?page=2"}}`

const libLatestPage = `<html><body>
<div class="updates__left"><a href="/berserk"><img alt="Берсерк" data-src="https://img.example/berserk/cover_thumb.jpg"></a></div>
<div class="updates__left"><a href="/vagabond"><img alt="Бродяга" data-src="https://img.example/vagabond/cover_thumb.jpg"></a></div>
<div class="updates__left"><a href="/berserk"><img alt="Берсерк" data-src="https://img.example/berserk/cover_thumb.jpg"></a></div>
</body></html>`

const libSeriesPage = `<html><body><div class="section__body">
<div class="manga__title">Берсерк</div>
<img class="manga__cover" src="https://img.example/berserk/cover.jpg">
<div class="info-list">
	<div class="info-list__row"><strong>Тип</strong><a>Манга</a></div>
	<div class="info-list__row"><strong>Автор</strong><a>Кэнтаро Миура</a></div>
	<div class="info-list__row"><strong>Художник</strong><a>Кэнтаро Миура</a></div>
	<div class="info-list__row"><strong>Перевод</strong><span class="m-label m-label_info">продолжается</span></div>
	<div class="info-list__row"><strong>Жанры</strong><a>боевик</a><a>драма</a></div>
</div>
<div class="info-desc__content">Тёмное фэнтези.</div>
</div></body></html>`

const libChaptersPage = `<html><body>
<div class="chapter-item">
	<div class="chapter-item__name"><a href="/berserk/v1/c12">Глава 12 - Начало</a></div>
	<div class="chapter-item__date">21.07.2020</div>
</div>
<div class="chapter-item">
	<div class="chapter-item__name"><a href="/berserk/v1/c11.5">Глава 11.5</a></div>
	<div class="chapter-item__date">14.07.2020</div>
</div>
</body></html>`

type libFixture struct {
	adapter domain.Adapter

	loginHits   atomic.Int32
	searchHits  atomic.Int32
	serveToken  atomic.Bool
	lastQuery   atomic.Value
	catalogBody atomic.Value
	chapterBody atomic.Value
	suggestions atomic.Value
}

func newLibFixture(t *testing.T) *libFixture {
	t.Helper()

	f := &libFixture{}
	f.serveToken.Store(true)
	f.catalogBody.Store(libCatalogPage)
	f.chapterBody.Store("")
	f.suggestions.Store("[]")

	mux := http.NewServeMux()
	mux.HandleFunc("/login", func(w http.ResponseWriter, _ *http.Request) {
		f.loginHits.Add(1)
		if f.serveToken.Load() {
			_, _ = w.Write([]byte(libLoginPage))
			return
		}
		_, _ = w.Write([]byte(`<html><head></head><body>login form</body></html>`))
	})
	mux.HandleFunc("/filterlist", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "tok123", r.Header.Get("x-csrf-token"))
		assert.Equal(t, "XMLHttpRequest", r.Header.Get("X-Requested-With"))
		f.lastQuery.Store(r.URL.RawQuery)
		_, _ = w.Write([]byte(f.catalogBody.Load().(string)))
	})
	mux.HandleFunc("/search", func(w http.ResponseWriter, r *http.Request) {
		f.searchHits.Add(1)
		assert.Equal(t, "XMLHttpRequest", r.Header.Get("X-Requested-With"))
		assert.Empty(t, r.Header.Get("x-csrf-token"))
		_, _ = w.Write([]byte(f.suggestions.Load().(string)))
	})
	mux.HandleFunc("/berserk", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(libSeriesPage))
	})
	mux.HandleFunc("/berserk/chapters", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(libChaptersPage))
	})
	mux.HandleFunc("/berserk/v1/c12", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(f.chapterBody.Load().(string)))
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(libLatestPage))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	f.adapter = NewLibManga("Test", srv.URL, "https://img.example")
	return f
}

func TestLibMangaTokenFetchedOnce(t *testing.T) {
	f := newLibFixture(t)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.adapter.FetchPopular(context.Background(), 1)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), f.loginHits.Load())
}

func TestLibMangaTokenRetriedAfterMiss(t *testing.T) {
	f := newLibFixture(t)
	f.serveToken.Store(false)

	_, err := f.adapter.FetchPopular(context.Background(), 1)
	require.ErrorIs(t, err, domain.ErrAuthTokenNotFound)
	assert.Equal(t, int32(1), f.loginHits.Load())

	f.serveToken.Store(true)

	_, err = f.adapter.FetchPopular(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int32(2), f.loginHits.Load())
}

func TestLibMangaFetchPopular(t *testing.T) {
	f := newLibFixture(t)

	listing, err := f.adapter.FetchPopular(context.Background(), 1)
	require.NoError(t, err)

	require.Len(t, listing.Items, 2)
	assert.Equal(t, "/berserk", listing.Items[0].ID)
	assert.Equal(t, "Берсерк", listing.Items[0].Title)
	assert.Contains(t, listing.Items[0].ThumbnailURL, "/uploads/cover/berserk/cover/cover_250x350.jpg")
	assert.Contains(t, listing.Items[1].ThumbnailURL, "/uploads/no-image.png")
	assert.True(t, listing.HasNextPage)

	query, _ := f.lastQuery.Load().(string)
	assert.Equal(t, "dir=desc&sort=views&page=1", query)
}

func TestLibMangaCatalogEnvelopeEdgeCases(t *testing.T) {
	f := newLibFixture(t)

	f.catalogBody.Store(`{"items":{"data":[],"next_page_url":null}}`)
	listing, err := f.adapter.FetchPopular(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, listing.Items)
	assert.False(t, listing.HasNextPage)

	f.catalogBody.Store(`{"status":"ok"}`)
	listing, err = f.adapter.FetchPopular(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, listing.Items)
	assert.False(t, listing.HasNextPage)

	f.catalogBody.Store(`<html><body>maintenance</body></html>`)
	_, err = f.adapter.FetchPopular(context.Background(), 1)
	require.ErrorIs(t, err, domain.ErrUpstream)
}

func TestLibMangaSearchMergesSuggestions(t *testing.T) {
	f := newLibFixture(t)
	f.catalogBody.Store(`{"items":{"data":[
		{"name":"Бродяга","slug":"vagabond","cover":"1"},
		{"name":"Берсерк","slug":"berserk","cover":"1"}
	],"next_page_url":"next"}}`)
	f.suggestions.Store(`[
		{"name":"Берсерк","slug":"berserk-color","cover":"1"},
		{"name":"Гатс","slug":"guts","cover":null}
	]`)

	listing, err := f.adapter.FetchSearch(context.Background(), 2, "берсерк", domain.FilterSpec{})
	require.NoError(t, err)

	require.Len(t, listing.Items, 3)
	assert.Equal(t, "/berserk-color", listing.Items[0].ID)
	assert.Equal(t, "Берсерк", listing.Items[0].Title)
	assert.Equal(t, "Гатс", listing.Items[1].Title)
	assert.Equal(t, "Бродяга", listing.Items[2].Title)
	assert.True(t, listing.HasNextPage)

	query, _ := f.lastQuery.Load().(string)
	assert.Equal(t, "page=2&name=%D0%B1%D0%B5%D1%80%D1%81%D0%B5%D1%80%D0%BA&dir=desc&sort=rate", query)
	assert.Equal(t, int32(1), f.searchHits.Load())
}

func TestLibMangaSearchWithoutQuerySkipsSuggestions(t *testing.T) {
	f := newLibFixture(t)

	filters := f.adapter.DefaultFilters()
	filters.Categories.Choices[0].State = domain.TriIncluded
	filters.Genres.Choices[0].State = domain.TriIncluded
	filters.Genres.Choices[1].State = domain.TriExcluded

	listing, err := f.adapter.FetchSearch(context.Background(), 1, "", filters)
	require.NoError(t, err)

	assert.Len(t, listing.Items, 2)
	assert.Equal(t, int32(0), f.searchHits.Load())

	query, _ := f.lastQuery.Load().(string)
	assert.Equal(t, "page=1&types%5B%5D=1&includeGenres%5B%5D=32&excludeGenres%5B%5D=34&dir=desc&sort=rate", query)
}

func TestLibMangaFetchLatestDedupes(t *testing.T) {
	f := newLibFixture(t)

	listing, err := f.adapter.FetchLatest(context.Background(), 1)
	require.NoError(t, err)

	require.Len(t, listing.Items, 2)
	assert.Equal(t, "/berserk", listing.Items[0].ID)
	assert.Equal(t, "Берсерк", listing.Items[0].Title)
	assert.Equal(t, "https://img.example/berserk/cover_250x350.jpg", listing.Items[0].ThumbnailURL)
	assert.False(t, listing.HasNextPage)

	assert.Equal(t, int32(0), f.loginHits.Load())
}

func TestLibMangaFetchDetails(t *testing.T) {
	f := newLibFixture(t)

	item, err := f.adapter.FetchDetails(context.Background(), "/berserk")
	require.NoError(t, err)

	assert.Equal(t, "/berserk", item.ID)
	assert.Equal(t, "Берсерк", item.Title)
	assert.Equal(t, "https://img.example/berserk/cover.jpg", item.ThumbnailURL)
	assert.Equal(t, "Кэнтаро Миура", item.Author)
	assert.Equal(t, "Кэнтаро Миура", item.Artist)
	assert.Equal(t, domain.StatusOngoing, item.Status)
	assert.Equal(t, []string{"боевик", "драма"}, item.Genres)
	assert.Equal(t, "Тёмное фэнтези.", item.Description)
}

func TestLibMangaFetchChapterList(t *testing.T) {
	f := newLibFixture(t)

	chapters, err := f.adapter.FetchChapterList(context.Background(), "/berserk/chapters")
	require.NoError(t, err)

	require.Len(t, chapters, 2)
	assert.Equal(t, "/berserk/v1/c12", chapters[0].ID)
	assert.Equal(t, "Глава 12 - Начало", chapters[0].DisplayName)
	assert.Equal(t, 12.0, chapters[0].ChapterNumber)
	assert.Equal(t, time.Date(2020, time.July, 21, 0, 0, 0, 0, time.UTC).UnixMilli(), chapters[0].UploadTimestamp)
	assert.Equal(t, 11.5, chapters[1].ChapterNumber)
}

func TestLibMangaFetchPages(t *testing.T) {
	f := newLibFixture(t)

	encoded := base64.StdEncoding.EncodeToString([]byte(`[{"p":0,"u":"one.jpg"},{"p":1,"u":"two.jpg"}]`))
	f.chapterBody.Store(`<html><body>
		<script>console.log("unrelated")</script>
		<script>window.__info = {"imgUrl":"/manga/berserk/"};</script>
		<span class="pp"><!--` + encoded + `--></span>
	</body></html>`)

	pages, err := f.adapter.FetchPages(context.Background(), "/berserk/v1/c12")
	require.NoError(t, err)

	require.Len(t, pages, 2)
	assert.Equal(t, 0, pages[0].Index)
	assert.Equal(t, "https://img.example/manga/berserk/one.jpg", pages[0].ImageURL)
	assert.Equal(t, 1, pages[1].Index)
	assert.Equal(t, "https://img.example/manga/berserk/two.jpg", pages[1].ImageURL)
}

func TestLibMangaFetchPagesMalformed(t *testing.T) {
	f := newLibFixture(t)

	f.chapterBody.Store(`<html><body><span class="pp"><!--aGVsbG8=--></span></body></html>`)
	_, err := f.adapter.FetchPages(context.Background(), "/berserk/v1/c12")
	require.ErrorIs(t, err, domain.ErrMalformedPagePayload)

	f.chapterBody.Store(`<html><body><script>window.__info = {"imgUrl":"/m/"};</script></body></html>`)
	_, err = f.adapter.FetchPages(context.Background(), "/berserk/v1/c12")
	require.ErrorIs(t, err, domain.ErrMalformedPagePayload)

	f.chapterBody.Store(`<html><body>
		<script>window.__info = {"imgUrl":"/m/"};</script>
		<span class="pp"><!--not base64!--></span>
	</body></html>`)
	_, err = f.adapter.FetchPages(context.Background(), "/berserk/v1/c12")
	require.ErrorIs(t, err, domain.ErrMalformedPagePayload)
}
