package catalog

import (
	"sort"

	catalogEntity "brightlaptop.GO/model/entity/catalog"
)

// Best-seller score weights. These are business rules inherited from the
// storefront, owned by product, not engineering — change them here only.
const (
	BestSellerRatingWeight = 0.3
	BestSellerSalesWeight  = 0.7
)

// BestSellerScore blends rating-derived popularity with raw sales volume:
// (rating * reviews * 0.3) + (sold * 0.7). Missing factors are zero after
// normalization, so the score is always non-negative.
func BestSellerScore(p *catalogEntity.Product) float64 {
	return p.Rating*float64(p.ReviewsCount)*BestSellerRatingWeight +
		float64(p.SoldCount)*BestSellerSalesWeight
}

// Sort orders products by the given mode. The sort is stable (equal keys keep
// their pre-sort relative order) and non-mutating: a fresh slice is returned,
// relevance mode preserves the input order untouched.
func Sort(products []catalogEntity.Product, mode SortMode) []catalogEntity.Product {
	out := make([]catalogEntity.Product, len(products))
	copy(out, products)

	switch mode {
	case SortPriceLow:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].BasePrice < out[j].BasePrice
		})
	case SortPriceHigh:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].BasePrice > out[j].BasePrice
		})
	case SortRating:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Rating > out[j].Rating
		})
	case SortDiscount:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].DiscountPercentage > out[j].DiscountPercentage
		})
	case SortNewest:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		})
	case SortBestSellers:
		// Scores are computed once up front so ties and near-ties order the
		// same way on every run over the same input.
		scores := make([]float64, len(out))
		for i := range out {
			scores[i] = BestSellerScore(&out[i])
		}
		idx := make([]int, len(out))
		for i := range idx {
			idx[i] = i
		}
		sort.SliceStable(idx, func(i, j int) bool {
			return scores[idx[i]] > scores[idx[j]]
		})
		ranked := make([]catalogEntity.Product, len(out))
		for i, k := range idx {
			ranked[i] = out[k]
		}
		out = ranked
	case SortRelevance:
		// No reordering: pipeline output order is relevance order.
	}
	return out
}

// Query runs the full listing pass: filter then sort.
func Query(products []catalogEntity.Product, c Criteria) []catalogEntity.Product {
	return Sort(Filter(products, c), c.Sort)
}
