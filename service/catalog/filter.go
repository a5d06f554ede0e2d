package catalog

import (
	"strconv"
	"strings"

	catalogEntity "brightlaptop.GO/model/entity/catalog"
)

// Specification keys the filters read. Compound values ("16GB DDR4") are
// matched by substring, so a selected "16GB" still hits.
const (
	specMemory     = "ram"
	specStorage    = "storage"
	specProcessor  = "processor"
	specScreenSize = "screenSize"
)

// Filter applies the criteria as a chain of all-must-pass predicates. Pure
// and order-preserving: the returned slice holds the survivors in their
// original relative order, the input is never mutated.
func Filter(products []catalogEntity.Product, c Criteria) []catalogEntity.Product {
	out := make([]catalogEntity.Product, 0, len(products))
	for _, p := range products {
		if matches(&p, c) {
			out = append(out, p)
		}
	}
	return out
}

func matches(p *catalogEntity.Product, c Criteria) bool {
	if !matchesQuery(p, c.Query) {
		return false
	}
	if p.BasePrice < c.PriceMin {
		return false
	}
	if c.PriceMax > 0 && p.BasePrice > c.PriceMax {
		return false
	}
	if len(c.Brands) > 0 && !brandIn(p.Brand, c.Brands) {
		return false
	}
	if len(c.Memory) > 0 && !specContainsAny(p.Spec(specMemory), c.Memory) {
		return false
	}
	if len(c.Storage) > 0 && !specContainsAny(p.Spec(specStorage), c.Storage) {
		return false
	}
	if len(c.Processors) > 0 && !processorMatchesAny(p.Spec(specProcessor), c.Processors) {
		return false
	}
	if len(c.ScreenSizes) > 0 && !specContainsAny(p.Spec(specScreenSize), c.ScreenSizes) {
		return false
	}
	return true
}

// matchesQuery implements the free-text predicate: case-insensitive substring
// over name, brand and category; the stringified base price and discount
// percentage are compared against the query with '%' and ',' stripped, so
// "10%" and "1,999" still hit numeric fields; specification values are
// matched with the raw (lowered) query.
func matchesQuery(p *catalogEntity.Product, query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	numericQuery := strings.NewReplacer("%", "", ",", "").Replace(q)

	if strings.Contains(strings.ToLower(p.Name), q) ||
		strings.Contains(strings.ToLower(p.Brand), q) ||
		strings.Contains(strings.ToLower(p.Category), q) {
		return true
	}
	if strings.Contains(formatNumber(p.BasePrice), numericQuery) ||
		strings.Contains(formatNumber(p.DiscountPercentage), numericQuery) {
		return true
	}
	for key := range p.Specifications {
		if strings.Contains(strings.ToLower(p.Spec(key)), q) {
			return true
		}
	}
	return false
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// brandIn is exact set membership, case-insensitive. An empty product brand
// never matches a non-empty filter.
func brandIn(brand string, selected []string) bool {
	if brand == "" {
		return false
	}
	for _, s := range selected {
		if strings.EqualFold(brand, s) {
			return true
		}
	}
	return false
}

// specContainsAny: the selected option must be a substring of the product's
// specification string. A product missing the key fails the filter.
func specContainsAny(spec string, selected []string) bool {
	if spec == "" {
		return false
	}
	for _, s := range selected {
		if strings.Contains(spec, s) {
			return true
		}
	}
	return false
}

func processorMatchesAny(spec string, selected []string) bool {
	if spec == "" {
		return false
	}
	lowered := strings.ToLower(spec)
	for _, s := range selected {
		if strings.Contains(lowered, strings.ToLower(s)) {
			return true
		}
	}
	return false
}
