package source

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"browsarr/internal/domain"
	"browsarr/internal/filter"
	"browsarr/internal/scrape"
	"browsarr/internal/sharedhttp"

	"github.com/PuerkitoBio/goquery"
)

var (
	csrfTokenPattern      = regexp.MustCompile(`_token" content="(.*?)"`)
	libChapterNumPattern  = regexp.MustCompile(`Глава\s(\d+(?:\.\d+)?)`)
	libPageInfoAssignment = "window.__info = "
)

// libmanga is the token-gated JSON-API adapter family. Listing and search go
// through a POST endpoint that requires an anti-forgery token scraped off the
// login page. The token lives for the adapter's lifetime and is acquired
// lazily on first need; it is never refreshed on failure, a stale token just
// surfaces as an upstream error and the caller retries the operation.
type libmanga struct {
	name      string
	baseURL   string
	staticURL string
	base      *url.URL
	client    *http.Client
	dates     scrape.DateResolver

	mu        sync.Mutex
	csrfToken string
}

// NewLibManga builds an adapter for one site of the token-gated family.
// staticURL is the image CDN root the page payload paths resolve against.
func NewLibManga(name, baseURL, staticURL string) domain.Adapter {
	base, _ := url.Parse(baseURL)

	return &libmanga{
		name:      name,
		baseURL:   baseURL,
		staticURL: staticURL,
		base:      base,
		client:    sharedhttp.NewClient(),
		dates:     scrape.DateResolver{Layout: "02.01.2006"},
	}
}

func NewMangaLib() domain.Adapter {
	return NewLibManga("MangaLib", "https://mangalib.me", "https://img2.mangalib.me")
}

type catalogRecord struct {
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Cover any    `json:"cover"`
}

type catalogEnvelope struct {
	Items struct {
		Data        []catalogRecord `json:"data"`
		NextPageURL *string         `json:"next_page_url"`
	} `json:"items"`
}

func (l *libmanga) String() string {
	return l.name
}

func (l *libmanga) SupportsLatest() bool {
	return true
}

func (l *libmanga) DefaultFilters() domain.FilterSpec {
	return domain.FilterSpec{
		Categories: domain.FilterGroup{Name: "Категории", Choices: libCategories()},
		Statuses:   domain.FilterGroup{Name: "Статус", Choices: libStatuses()},
		Genres:     domain.FilterGroup{Name: "Жанры", Choices: libGenres()},
		Sort:       domain.SortSpec{Index: 0, Ascending: false},
	}
}

// ensureToken lazily acquires the anti-forgery token. The mutex is held
// across the fetch so concurrent first users collapse into a single
// login-page request. A pattern miss leaves the cache empty and the next
// call retries acquisition.
func (l *libmanga) ensureToken(ctx context.Context) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.csrfToken != "" {
		return l.csrfToken, nil
	}

	body, err := sharedhttp.FetchBody(ctx, l.client, http.MethodGet, l.baseURL+"/login", nil, "")
	if err != nil {
		return "", err
	}

	matches := csrfTokenPattern.FindSubmatch(body)
	if len(matches) < 2 {
		return "", fmt.Errorf("%w: pattern not present on %s/login", domain.ErrAuthTokenNotFound, l.baseURL)
	}

	l.csrfToken = string(matches[1])
	return l.csrfToken, nil
}

func (l *libmanga) catalogHeaders(token string) map[string]string {
	return map[string]string{
		"Accept":           "application/json, text/plain, */*",
		"X-Requested-With": "XMLHttpRequest",
		"x-csrf-token":     token,
	}
}

func (l *libmanga) FetchPopular(ctx context.Context, page int) (domain.ListingPage, error) {
	token, err := l.ensureToken(ctx)
	if err != nil {
		return domain.ListingPage{}, err
	}

	endpoint := fmt.Sprintf("%s/filterlist?dir=desc&sort=views&page=%d", l.baseURL, page)
	body, err := sharedhttp.FetchBody(ctx, l.client, http.MethodPost, endpoint, l.catalogHeaders(token), "")
	if err != nil {
		return domain.ListingPage{}, err
	}

	return l.parseCatalogEnvelope(body)
}

// FetchLatest scrapes the update feed on the front page. The feed is not
// paginated upstream; the page argument is ignored.
func (l *libmanga) FetchLatest(ctx context.Context, _ int) (domain.ListingPage, error) {
	body, err := sharedhttp.FetchBody(ctx, l.client, http.MethodGet, l.baseURL, nil, "")
	if err != nil {
		return domain.ListingPage{}, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return domain.ListingPage{}, fmt.Errorf("%w: parse %s: %s", domain.ErrUpstream, l.baseURL, err)
	}

	var items []domain.CatalogItem
	doc.Find("div.updates__left").Each(func(_ int, el *goquery.Selection) {
		link := el.Find("a").First()
		img := link.Find("img").First()
		if link.Length() == 0 || img.Length() == 0 {
			return
		}

		item := domain.CatalogItem{
			ID:           scrape.RelativeURL(link.AttrOr("href", "")),
			Title:        strings.TrimSpace(img.AttrOr("alt", "")),
			ThumbnailURL: strings.Replace(img.AttrOr("data-src", ""), "cover_thumb", "cover_250x350", 1),
		}
		if item.ID == "" || item.Title == "" {
			return
		}
		items = append(items, item)
	})

	return domain.ListingPage{Items: dedupeByID(items), HasNextPage: false}, nil
}

func (l *libmanga) FetchSearch(ctx context.Context, page int, query string, filters domain.FilterSpec) (domain.ListingPage, error) {
	token, err := l.ensureToken(ctx)
	if err != nil {
		return domain.ListingPage{}, err
	}

	params := []filter.Param{{Key: "page", Value: strconv.Itoa(page)}}
	if query != "" {
		params = append(params, filter.Param{Key: "name", Value: query})
	}
	params = append(params, filter.Encode(filters, l.DefaultFilters(), libFilterVocabulary)...)

	endpoint := l.baseURL + "/filterlist?" + buildQuery(params)
	body, err := sharedhttp.FetchBody(ctx, l.client, http.MethodPost, endpoint, l.catalogHeaders(token), "")
	if err != nil {
		return domain.ListingPage{}, err
	}

	catalog, err := l.parseCatalogEnvelope(body)
	if err != nil {
		return domain.ListingPage{}, err
	}

	if query == "" {
		return catalog, nil
	}

	suggestions, err := l.fetchSuggestions(ctx, query)
	if err != nil {
		return domain.ListingPage{}, err
	}

	return mergeSuggestions(suggestions, catalog), nil
}

// fetchSuggestions hits the lightweight popup search endpoint. It needs the
// XHR headers but not the token, and is never paginated.
func (l *libmanga) fetchSuggestions(ctx context.Context, query string) ([]domain.CatalogItem, error) {
	headers := map[string]string{
		"Accept":           "application/json, text/plain, */*",
		"X-Requested-With": "XMLHttpRequest",
	}

	endpoint := l.baseURL + "/search?query=" + url.QueryEscape(query)
	body, err := sharedhttp.FetchBody(ctx, l.client, http.MethodGet, endpoint, headers, "")
	if err != nil {
		return nil, err
	}

	var records []catalogRecord
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("%w: parse popup search response: %s", domain.ErrUpstream, err)
	}

	items := make([]domain.CatalogItem, 0, len(records))
	for _, rec := range records {
		items = append(items, l.itemFromRecord(rec))
	}

	return items, nil
}

// parseCatalogEnvelope decodes the listing envelope. A response missing the
// items or data fields is an empty page, not an error; only a body that is
// not the expected JSON shape at all fails the call.
func (l *libmanga) parseCatalogEnvelope(body []byte) (domain.ListingPage, error) {
	var envelope catalogEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return domain.ListingPage{}, fmt.Errorf("%w: parse catalog envelope: %s", domain.ErrUpstream, err)
	}

	if envelope.Items.Data == nil {
		return domain.ListingPage{}, nil
	}

	items := make([]domain.CatalogItem, 0, len(envelope.Items.Data))
	for _, rec := range envelope.Items.Data {
		items = append(items, l.itemFromRecord(rec))
	}

	return domain.ListingPage{
		Items:       items,
		HasNextPage: envelope.Items.NextPageURL != nil,
	}, nil
}

func (l *libmanga) itemFromRecord(rec catalogRecord) domain.CatalogItem {
	thumbnail := l.baseURL + "/uploads/no-image.png"
	if rec.Cover != nil {
		thumbnail = fmt.Sprintf("%s/uploads/cover/%s/cover/cover_250x350.jpg", l.baseURL, rec.Slug)
	}

	return domain.CatalogItem{
		ID:           "/" + rec.Slug,
		Title:        rec.Name,
		ThumbnailURL: thumbnail,
	}
}

func (l *libmanga) FetchDetails(ctx context.Context, itemID string) (domain.CatalogItem, error) {
	doc, err := l.fetchDocument(ctx, l.baseURL+itemID)
	if err != nil {
		return domain.CatalogItem{}, err
	}

	body := doc.Find("div.section__body").First()
	item := domain.CatalogItem{
		ID:           itemID,
		Title:        strings.TrimSpace(body.Find(".manga__title").Text()),
		ThumbnailURL: body.Find(".manga__cover").AttrOr("src", ""),
		Author:       strings.TrimSpace(body.Find(".info-list__row:nth-child(2) > a").Text()),
		Artist:       strings.TrimSpace(body.Find(".info-list__row:nth-child(3) > a").Text()),
		Description:  strings.TrimSpace(body.Find(".info-desc__content").Text()),
	}

	status := body.Find(".info-list__row:has(strong:contains(Перевод))").First().Find("span.m-label_info")
	item.Status = scrape.ParseStatus(status.Text())

	body.Find(".info-list__row:has(strong:contains(Жанры)) > a").Each(func(_ int, g *goquery.Selection) {
		if genre := strings.TrimSpace(g.Text()); genre != "" {
			item.Genres = append(item.Genres, genre)
		}
	})

	return item, nil
}

func (l *libmanga) FetchChapterList(ctx context.Context, itemID string) ([]domain.ChapterEntry, error) {
	doc, err := l.fetchDocument(ctx, l.baseURL+itemID)
	if err != nil {
		return nil, err
	}

	var chapters []domain.ChapterEntry
	doc.Find("div.chapter-item").Each(func(_ int, el *goquery.Selection) {
		link := el.Find("div.chapter-item__name > a").First()
		if link.Length() == 0 {
			return
		}

		name := strings.TrimSpace(link.Text())
		entry := domain.ChapterEntry{
			ID:              scrape.RelativeURL(link.AttrOr("href", "")),
			DisplayName:     name,
			UploadTimestamp: l.dates.Resolve(el.Find("div.chapter-item__date").Text()),
			ChapterNumber:   libChapterNumber(name),
		}

		chapters = append(chapters, entry)
	})

	return chapters, nil
}

// FetchPages decodes the embedded page list: a script block assigns a JSON
// object carrying the image path prefix, and a separate inline element wraps
// a base64 JSON array of page entries in an HTML comment.
func (l *libmanga) FetchPages(ctx context.Context, chapterID string) ([]domain.PageRef, error) {
	doc, err := l.fetchDocument(ctx, l.baseURL+chapterID)
	if err != nil {
		return nil, err
	}

	var infoText string
	doc.Find("script").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if strings.Contains(s.Text(), libPageInfoAssignment) {
			infoText = s.Text()
			return false
		}
		return true
	})
	if infoText == "" {
		return nil, fmt.Errorf("%w: chapter info script not found", domain.ErrMalformedPagePayload)
	}

	infoText = strings.TrimSpace(infoText)
	infoText = strings.TrimPrefix(infoText, libPageInfoAssignment)
	infoText = strings.TrimSuffix(infoText, ";")

	var info struct {
		ImgURL string `json:"imgUrl"`
	}
	if err := json.Unmarshal([]byte(infoText), &info); err != nil {
		return nil, fmt.Errorf("%w: parse chapter info: %s", domain.ErrMalformedPagePayload, err)
	}

	encoded, err := doc.Find("span.pp").First().Html()
	if err != nil || encoded == "" {
		return nil, fmt.Errorf("%w: page data block not found", domain.ErrMalformedPagePayload)
	}

	encoded = strings.ReplaceAll(encoded, "<!--", "")
	encoded = strings.ReplaceAll(encoded, "-->", "")
	decoded, err := base64.StdEncoding.DecodeString(strings.TrimSpace(encoded))
	if err != nil {
		return nil, fmt.Errorf("%w: decode page data: %s", domain.ErrMalformedPagePayload, err)
	}

	var entries []struct {
		P int    `json:"p"`
		U string `json:"u"`
	}
	if err := json.Unmarshal(decoded, &entries); err != nil {
		return nil, fmt.Errorf("%w: parse page data: %s", domain.ErrMalformedPagePayload, err)
	}

	pages := make([]domain.PageRef, 0, len(entries))
	for _, entry := range entries {
		pages = append(pages, domain.PageRef{
			Index:    entry.P,
			ImageURL: l.staticURL + info.ImgURL + entry.U,
		})
	}

	return pages, nil
}

func (l *libmanga) fetchDocument(ctx context.Context, pageURL string) (*goquery.Document, error) {
	body, err := sharedhttp.FetchBody(ctx, l.client, http.MethodGet, pageURL, nil, "")
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: parse %s: %s", domain.ErrUpstream, pageURL, err)
	}

	return doc, nil
}

func libChapterNumber(name string) float64 {
	matches := libChapterNumPattern.FindStringSubmatch(name)
	if len(matches) > 1 {
		if number, err := strconv.ParseFloat(matches[1], 64); err == nil {
			return number
		}
	}
	return 0
}
