package pricing

import (
	"errors"

	catalogEntity "brightlaptop.GO/model/entity/catalog"
)

// Pricing tiers. Crossing the bulk threshold must surface a bulk-contact
// quotation flow to the buyer — that is the caller's job; the calculator only
// reports the tier.
const (
	TierRetail = "retail"
	TierBulk   = "bulk"
)

// Business constants inherited from the storefront. Product-decision-owned,
// not engineering invariants.
const (
	// BulkQuantityThreshold is the order quantity (inclusive) at which
	// wholesale pricing applies.
	BulkQuantityThreshold = 10
	// BulkFallbackMultiplier discounts the base price when a product has no
	// explicit bulk price.
	BulkFallbackMultiplier = 0.85
)

// ErrConfigurationRequired is returned when a product defines configuration
// variants of a kind but no selection was made for it. Selection is mandatory
// before any cart mutation; the calculator never silently defaults.
var ErrConfigurationRequired = errors.New("pricing: memory and storage selection required")

// Selection is the buyer's chosen configuration for one product.
type Selection struct {
	Memory   string
	Storage  string
	Warranty string // warranty duration id; "" or "default" means the included warranty
}

// Quote is the priced outcome for one product + selection + quantity.
type Quote struct {
	UnitPrice  float64
	Tier       string
	Quantity   int
	LineTotal  float64
	// Surcharge breakdown, useful for display and for the cart service.
	BasePrice         float64
	WarrantySurcharge float64
	ConfigAdjustment  float64
}

// TierFor classifies a quantity. The boundary is inclusive at the threshold:
// quantity 9 is retail, 10 is bulk.
func TierFor(quantity int) string {
	if quantity >= BulkQuantityThreshold {
		return TierBulk
	}
	return TierRetail
}

// Price derives the unit price for a product under the given selection and
// quantity.
//
// Missing warranty or variant lookups are non-fatal (surcharge 0): catalogs
// may be edited while a session is open. A missing mandatory selection is
// fatal: if the product defines MEMORY or STORAGE variants and the matching
// selection is empty, ErrConfigurationRequired is returned.
func Price(p *catalogEntity.Product, sel Selection, quantity int) (*Quote, error) {
	if quantity < 1 {
		quantity = 1
	}
	if err := requireSelection(p, sel); err != nil {
		return nil, err
	}

	tier := TierFor(quantity)
	base := p.BasePrice
	if tier == TierBulk {
		if p.BulkPrice > 0 {
			base = p.BulkPrice
		} else {
			base = p.BasePrice * BulkFallbackMultiplier
		}
	}

	warranty := warrantySurcharge(p, sel.Warranty)
	adjustment := configAdjustment(p, sel)

	unit := base + warranty + adjustment
	if unit < 0 {
		unit = 0
	}

	return &Quote{
		UnitPrice:         unit,
		Tier:              tier,
		Quantity:          quantity,
		LineTotal:         unit * float64(quantity),
		BasePrice:         base,
		WarrantySurcharge: warranty,
		ConfigAdjustment:  adjustment,
	}, nil
}

func requireSelection(p *catalogEntity.Product, sel Selection) error {
	if len(p.VariantsOfKind(catalogEntity.VariantKindMemory)) > 0 && sel.Memory == "" {
		return ErrConfigurationRequired
	}
	if len(p.VariantsOfKind(catalogEntity.VariantKindStorage)) > 0 && sel.Storage == "" {
		return ErrConfigurationRequired
	}
	return nil
}

// warrantySurcharge resolves the additive warranty price. The default or
// unset warranty costs nothing; an id that no longer exists in the catalog
// resolves to 0 rather than failing.
func warrantySurcharge(p *catalogEntity.Product, warrantyID string) float64 {
	if warrantyID == "" || warrantyID == catalogEntity.DefaultWarrantyID {
		return 0
	}
	for _, w := range p.WarrantyOptions {
		if w.Duration == warrantyID {
			return w.Price
		}
	}
	return 0
}

// configAdjustment sums the price deltas of the variants matching the
// selected memory and storage values; unmatched selections contribute 0.
func configAdjustment(p *catalogEntity.Product, sel Selection) float64 {
	var total float64
	for _, v := range p.Variants {
		switch v.Kind {
		case catalogEntity.VariantKindMemory:
			if sel.Memory != "" && v.Value == sel.Memory {
				total += v.PriceAdjustment
			}
		case catalogEntity.VariantKindStorage:
			if sel.Storage != "" && v.Value == sel.Storage {
				total += v.PriceAdjustment
			}
		}
	}
	return total
}
