package pagination

const (
	// DefaultLimit is the standard page size when a limit is not provided.
	DefaultLimit = 18
	// MaxLimit caps how many rows any listing query can request.
	MaxLimit = 100
)

// Params holds page/limit pagination inputs from controllers or services.
type Params struct {
	Page  int
	Limit int
}

// Meta describes a fully materialized page of results.
type Meta struct {
	CurrentPage  int   `json:"current_page"`
	TotalPages   int   `json:"total_pages"`
	TotalItems   int64 `json:"total_items"`
	ItemsPerPage int   `json:"items_per_page"`
}

// NormalizeLimit enforces the configured default and maximum limits.
func NormalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// NormalizePage clamps the requested page to a sane lower bound.
func NormalizePage(page int) int {
	if page <= 0 {
		return 1
	}
	return page
}

// Offset computes the skip count for the normalized page window.
func (p Params) Offset() int {
	return (NormalizePage(p.Page) - 1) * NormalizeLimit(p.Limit)
}

// NewMeta builds pagination metadata for a total row count.
func NewMeta(params Params, total int64) Meta {
	limit := NormalizeLimit(params.Limit)
	page := NormalizePage(params.Page)

	totalPages := int(total) / limit
	if int(total)%limit != 0 {
		totalPages++
	}

	return Meta{
		CurrentPage:  page,
		TotalPages:   totalPages,
		TotalItems:   total,
		ItemsPerPage: limit,
	}
}
