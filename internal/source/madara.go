package source

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"browsarr/internal/domain"
	"browsarr/internal/scrape"
	"browsarr/internal/sharedhttp"

	"github.com/PuerkitoBio/goquery"
)

var chapterNumberPattern = regexp.MustCompile(`Chapter (\d+(\.\d+)?)`)

// MadaraConfig configures one site of the static-HTML listing family. The
// selectors are configuration, not logic; sites of this family share markup
// structure but drift in class names.
type MadaraConfig struct {
	Name       string
	BaseURL    string
	DateLayout string

	PopularPath string // printf pattern taking the page number
	SearchPath  string // printf pattern taking page number and escaped query

	PopularSelector  string
	LatestSelector   string
	SearchSelector   string
	NextPageSelector string
	ChapterSelector  string
	PageSelector     string

	ListingFields scrape.FieldSelectors
	SearchFields  scrape.FieldSelectors
}

// DefaultMadaraConfig returns the selector set most sites of this family
// ship with.
func DefaultMadaraConfig(name, baseURL string) MadaraConfig {
	return MadaraConfig{
		Name:             name,
		BaseURL:          baseURL,
		DateLayout:       "January 2, 2006",
		PopularPath:      "/manga/page/%d/?m_orderby=views",
		SearchPath:       "/page/%d/?s=%s&post_type=wp-manga",
		PopularSelector:  "div.page-item-detail",
		LatestSelector:   "div.item__wrap",
		SearchSelector:   "div.c-tabs-item__content",
		NextPageSelector: "div.nav-previous, a.nextpostslink",
		ChapterSelector:  "div.listing-chapters_wrap li.wp-manga-chapter",
		PageSelector:     "div.page-break",
		ListingFields: scrape.FieldSelectors{
			Title:     "div.post-title a",
			Thumbnail: "img",
		},
		SearchFields: scrape.FieldSelectors{
			Title:     "div.post-title a",
			Thumbnail: "img",
			Author:    "div.mg_author div.summary-content a",
			Artist:    "div.mg_artists div.summary-content a",
			Genre:     "div.mg_genres div.summary-content a",
			Status:    "div.mg_status div.summary-content a",
		},
	}
}

type madara struct {
	cfg    MadaraConfig
	base   *url.URL
	client *http.Client
	dates  scrape.DateResolver
}

// NewMadara builds an adapter for one static-HTML listing site.
func NewMadara(cfg MadaraConfig) domain.Adapter {
	base, _ := url.Parse(cfg.BaseURL)

	return &madara{
		cfg:    cfg,
		base:   base,
		client: sharedhttp.NewClient(),
		dates:  scrape.DateResolver{Layout: cfg.DateLayout},
	}
}

func NewMangaSushi() domain.Adapter {
	return NewMadara(DefaultMadaraConfig("MangaSushi", "https://mangasushi.net"))
}

func NewZinManga() domain.Adapter {
	cfg := DefaultMadaraConfig("ZinManga", "https://zinmanga.com")
	cfg.NextPageSelector = "a.nextpostslink"
	return NewMadara(cfg)
}

func (m *madara) String() string {
	return m.cfg.Name
}

func (m *madara) SupportsLatest() bool {
	return true
}

// DefaultFilters is empty; this family searches by free text only.
func (m *madara) DefaultFilters() domain.FilterSpec {
	return domain.FilterSpec{}
}

func (m *madara) FetchPopular(ctx context.Context, page int) (domain.ListingPage, error) {
	doc, err := m.fetchDocument(ctx, m.cfg.BaseURL+fmt.Sprintf(m.cfg.PopularPath, page))
	if err != nil {
		return domain.ListingPage{}, err
	}

	return domain.ListingPage{
		Items:       m.parseListing(doc, m.cfg.PopularSelector, m.cfg.ListingFields),
		HasNextPage: doc.Find(m.cfg.NextPageSelector).Length() > 0,
	}, nil
}

// FetchLatest scrapes the update slots on the site's front page. The listing
// is a single fixed page, so the page argument is ignored and there is never
// a next page. An item updated in several slots appears once.
func (m *madara) FetchLatest(ctx context.Context, _ int) (domain.ListingPage, error) {
	doc, err := m.fetchDocument(ctx, m.cfg.BaseURL)
	if err != nil {
		return domain.ListingPage{}, err
	}

	items := m.parseListing(doc, m.cfg.LatestSelector, m.cfg.ListingFields)

	return domain.ListingPage{Items: dedupeByID(items), HasNextPage: false}, nil
}

func (m *madara) FetchSearch(ctx context.Context, page int, query string, _ domain.FilterSpec) (domain.ListingPage, error) {
	doc, err := m.fetchDocument(ctx, m.cfg.BaseURL+fmt.Sprintf(m.cfg.SearchPath, page, url.QueryEscape(query)))
	if err != nil {
		return domain.ListingPage{}, err
	}

	return domain.ListingPage{
		Items:       m.parseListing(doc, m.cfg.SearchSelector, m.cfg.SearchFields),
		HasNextPage: doc.Find(m.cfg.NextPageSelector).Length() > 0,
	}, nil
}

func (m *madara) FetchDetails(ctx context.Context, itemID string) (domain.CatalogItem, error) {
	doc, err := m.fetchDocument(ctx, m.cfg.BaseURL+itemID)
	if err != nil {
		return domain.CatalogItem{}, err
	}

	item := domain.CatalogItem{ID: itemID}

	if title := doc.Find("div.post-title h3").First(); title.Length() > 0 {
		item.Title = scrape.OwnText(title)
	}
	item.Author = strings.TrimSpace(doc.Find("div.author-content").First().Text())
	item.Artist = strings.TrimSpace(doc.Find("div.artist-content").First().Text())
	item.Status = scrape.ParseStatus(doc.Find("div.post-status div.summary-content").First().Text())

	var paragraphs []string
	doc.Find("div.description-summary div.summary__content p").Each(func(_ int, p *goquery.Selection) {
		paragraphs = append(paragraphs, p.Text())
	})
	item.Description = strings.Join(paragraphs, "\n\n")

	doc.Find("div.genres-content a").Each(func(_ int, g *goquery.Selection) {
		if genre := strings.TrimSpace(g.Text()); genre != "" {
			item.Genres = append(item.Genres, genre)
		}
	})

	if img := doc.Find("div.summary_image img").First(); img.Length() > 0 {
		item.ThumbnailURL = scrape.ImageURL(img, m.base)
	}

	return item, nil
}

func (m *madara) FetchChapterList(ctx context.Context, itemID string) ([]domain.ChapterEntry, error) {
	doc, err := m.fetchDocument(ctx, m.cfg.BaseURL+itemID)
	if err != nil {
		return nil, err
	}

	var chapters []domain.ChapterEntry
	doc.Find(m.cfg.ChapterSelector).Each(func(_ int, el *goquery.Selection) {
		link := el.Find("a").First()
		if link.Length() == 0 {
			return
		}

		href := scrape.RelativeURL(link.AttrOr("href", ""))
		if href == "" {
			return
		}
		// the list style renders every page as a plain img tag
		if !strings.HasSuffix(href, "?style=list") {
			href += "?style=list"
		}

		entry := domain.ChapterEntry{
			ID:            href,
			DisplayName:   strings.TrimSpace(link.Text()),
			ChapterNumber: chapterNumber(link.Text()),
		}

		if date := el.Find("span.chapter-release-date i").First(); date.Length() > 0 {
			entry.UploadTimestamp = m.dates.Resolve(date.Text())
		}

		chapters = append(chapters, entry)
	})

	return chapters, nil
}

func (m *madara) FetchPages(ctx context.Context, chapterID string) ([]domain.PageRef, error) {
	doc, err := m.fetchDocument(ctx, m.cfg.BaseURL+chapterID)
	if err != nil {
		return nil, err
	}

	var pages []domain.PageRef
	doc.Find(m.cfg.PageSelector).Each(func(_ int, el *goquery.Selection) {
		img := el.Find("img").First()
		if img.Length() == 0 {
			return
		}

		pages = append(pages, domain.PageRef{
			Index:    len(pages),
			ImageURL: scrape.ImageURL(img, m.base),
		})
	})

	return pages, nil
}

func (m *madara) fetchDocument(ctx context.Context, pageURL string) (*goquery.Document, error) {
	body, err := sharedhttp.FetchBody(ctx, m.client, http.MethodGet, pageURL, nil, "")
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: parse %s: %s", domain.ErrUpstream, pageURL, err)
	}

	return doc, nil
}

// parseListing extracts one catalog item per card element. Cards without a
// resolvable title link are skipped; returned items always carry id and
// title.
func (m *madara) parseListing(doc *goquery.Document, selector string, fields scrape.FieldSelectors) []domain.CatalogItem {
	var items []domain.CatalogItem
	doc.Find(selector).Each(func(_ int, el *goquery.Selection) {
		item := scrape.ItemFromSelection(el, m.base, fields)
		if item.ID == "" || item.Title == "" {
			return
		}
		items = append(items, item)
	})
	return items
}

func chapterNumber(name string) float64 {
	matches := chapterNumberPattern.FindStringSubmatch(name)
	if len(matches) > 1 {
		if number, err := strconv.ParseFloat(matches[1], 64); err == nil {
			return number
		}
	}
	return 0
}
