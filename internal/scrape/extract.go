package scrape

import (
	"net/url"
	"strings"

	"browsarr/internal/domain"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// FieldSelectors maps item-card fields to the CSS selectors that locate them
// inside a single listing element. Empty selectors leave the field unset.
type FieldSelectors struct {
	Title     string // anchor whose own text is the title and whose href is the id
	Thumbnail string // img element, lazy-load attr preferred
	Author    string
	Artist    string
	Genre     string
	Status    string
}

// statusVocab is the only place raw status text turns into a Status value.
// Anything else resolves to StatusUnknown, never inferred.
var statusVocab = map[string]domain.Status{
	"OnGoing":      domain.StatusOngoing,
	"Ongoing":      domain.StatusOngoing,
	"Completed":    domain.StatusCompleted,
	"продолжается": domain.StatusOngoing,
	"завершен":     domain.StatusCompleted,
}

// ParseStatus maps upstream status text through the fixed vocabulary.
func ParseStatus(text string) domain.Status {
	if s, ok := statusVocab[strings.TrimSpace(text)]; ok {
		return s
	}
	return domain.StatusUnknown
}

// ItemFromSelection extracts a flat catalog record from one listing element.
// Title and ID come from the first title anchor; the thumbnail prefers the
// lazy-load attribute over the eager one when both exist. That precedence is
// load-order-dependent upstream behavior and is reproduced as-is.
func ItemFromSelection(sel *goquery.Selection, base *url.URL, fields FieldSelectors) domain.CatalogItem {
	var item domain.CatalogItem

	if link := sel.Find(fields.Title).First(); link.Length() > 0 {
		item.ID = RelativeURL(link.AttrOr("href", ""))
		item.Title = OwnText(link)
	}
	if fields.Thumbnail != "" {
		if img := sel.Find(fields.Thumbnail).First(); img.Length() > 0 {
			item.ThumbnailURL = ImageURL(img, base)
		}
	}
	if fields.Author != "" {
		item.Author = strings.TrimSpace(sel.Find(fields.Author).First().Text())
	}
	if fields.Artist != "" {
		item.Artist = strings.TrimSpace(sel.Find(fields.Artist).First().Text())
	}
	if fields.Genre != "" {
		sel.Find(fields.Genre).Each(func(_ int, g *goquery.Selection) {
			if genre := strings.TrimSpace(g.Text()); genre != "" {
				item.Genres = append(item.Genres, genre)
			}
		})
	}
	if fields.Status != "" {
		item.Status = ParseStatus(sel.Find(fields.Status).First().Text())
	}

	return item
}

// ImageURL resolves an img element to an absolute URL, preferring data-src
// over src.
func ImageURL(img *goquery.Selection, base *url.URL) string {
	attr := "src"
	if _, ok := img.Attr("data-src"); ok {
		attr = "data-src"
	}
	return AbsoluteURL(base, img.AttrOr(attr, ""))
}

// OwnText returns the text directly inside the first node of sel, excluding
// text of nested elements.
func OwnText(sel *goquery.Selection) string {
	if len(sel.Nodes) == 0 {
		return ""
	}
	var b strings.Builder
	for c := sel.Nodes[0].FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
	}
	return strings.TrimSpace(b.String())
}

// RelativeURL strips scheme and host from a link so items from absolute and
// relative upstream hrefs share one identity.
func RelativeURL(href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	u, err := url.Parse(href)
	if err != nil {
		return href
	}
	u.Scheme = ""
	u.Host = ""
	return u.String()
}

// AbsoluteURL resolves href against base. Already-absolute URLs pass through.
func AbsoluteURL(base *url.URL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" || base == nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}
