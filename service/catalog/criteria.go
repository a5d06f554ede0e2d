package catalog

// SortMode selects the ranking comparator.
type SortMode string

const (
	SortRelevance   SortMode = "relevance"
	SortBestSellers SortMode = "best-sellers"
	SortPriceLow    SortMode = "price-low"
	SortPriceHigh   SortMode = "price-high"
	SortRating      SortMode = "rating"
	SortDiscount    SortMode = "discount"
	SortNewest      SortMode = "newest"
)

// ParseSortMode maps a raw sort key to a SortMode, defaulting to relevance
// for anything unrecognized.
func ParseSortMode(s string) SortMode {
	switch SortMode(s) {
	case SortBestSellers, SortPriceLow, SortPriceHigh, SortRating, SortDiscount, SortNewest:
		return SortMode(s)
	default:
		return SortRelevance
	}
}

// Criteria describes the active filters, sort mode and free-text query for
// one listing pass. The zero value means "no constraint": every dimension
// left empty passes all products through. Criteria is a plain value — it is
// built fresh per request and passed explicitly, never held as ambient state.
type Criteria struct {
	Query       string
	PriceMin    float64
	PriceMax    float64 // <= 0 means unbounded
	Brands      []string
	Memory      []string
	Storage     []string
	Processors  []string
	ScreenSizes []string
	Sort        SortMode
}

// HasFilters reports whether any narrowing dimension is set (used by the API
// layer to decide whether a cached unfiltered listing can be served).
func (c Criteria) HasFilters() bool {
	return c.Query != "" ||
		c.PriceMin > 0 || c.PriceMax > 0 ||
		len(c.Brands) > 0 || len(c.Memory) > 0 || len(c.Storage) > 0 ||
		len(c.Processors) > 0 || len(c.ScreenSizes) > 0
}
