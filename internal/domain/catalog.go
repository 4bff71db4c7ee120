package domain

import "context"

// Status describes the publication state of a catalog item. Anything the
// upstream reports outside the known vocabulary maps to StatusUnknown.
type Status int

const (
	StatusUnknown Status = iota
	StatusOngoing
	StatusCompleted
)

func (s Status) String() string {
	switch s {
	case StatusOngoing:
		return "Ongoing"
	case StatusCompleted:
		return "Completed"
	default:
		return "Unknown"
	}
}

// CatalogItem is one entry of a site catalog. ID is the normalized relative
// URL of the item, with the domain stripped. Title and ID are always set on
// items returned from a listing parse; everything else is best-effort.
type CatalogItem struct {
	ID           string
	Title        string
	ThumbnailURL string
	Author       string
	Artist       string
	Genres       []string
	Status       Status
	Description  string
}

// ChapterEntry is one chapter of a catalog item, in upstream order.
// UploadTimestamp is epoch millis, 0 when unknown.
type ChapterEntry struct {
	ID              string
	DisplayName     string
	UploadTimestamp int64
	ChapterNumber   float64
}

// PageRef points at a single chapter image. Index is 0-based and contiguous
// in extraction order.
type PageRef struct {
	Index    int
	ImageURL string
}

// ListingPage is one page of catalog results. Constructed fresh per fetch and
// never mutated after return.
type ListingPage struct {
	Items       []CatalogItem
	HasNextPage bool
}

// Adapter is the uniform catalog-browsing contract every site implements.
// Each call is an independent request/response unit; the only state an
// adapter may keep is its session token. Callers must not call FetchLatest
// when SupportsLatest reports false.
type Adapter interface {
	String() string
	SupportsLatest() bool
	DefaultFilters() FilterSpec
	FetchPopular(ctx context.Context, page int) (ListingPage, error)
	FetchLatest(ctx context.Context, page int) (ListingPage, error)
	FetchSearch(ctx context.Context, page int, query string, filters FilterSpec) (ListingPage, error)
	FetchDetails(ctx context.Context, itemID string) (CatalogItem, error)
	FetchChapterList(ctx context.Context, itemID string) ([]ChapterEntry, error)
	FetchPages(ctx context.Context, chapterID string) ([]PageRef, error)
}
