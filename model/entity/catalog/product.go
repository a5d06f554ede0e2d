package catalog

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"gorm.io/datatypes"
)

// Variant kinds. Exactly one variant per kind may be selected at a time; the
// variant with zero price adjustment is the implicit default.
const (
	VariantKindMemory  = "MEMORY"
	VariantKindStorage = "STORAGE"
)

// DefaultWarrantyID identifies the synthetic zero-price warranty that every
// product carries (its included warranty).
const DefaultWarrantyID = "default"

const (
	ConditionNew         = "new"
	ConditionRefurbished = "refurbished"
)

// Product is read-only catalog reference data. Numeric fields tolerate
// partial upstream records; Normalize applies the defaults once at the data
// boundary so downstream code never re-derives them.
type Product struct {
	ID                 uint                   `gorm:"column:entity_id;primaryKey;autoIncrement" json:"id"`
	SKU                string                 `gorm:"column:sku;size:64;uniqueIndex" json:"sku"`
	Name               string                 `gorm:"column:name;size:255" json:"name"`
	Brand              string                 `gorm:"column:brand;size:64;index" json:"brand"`
	Category           string                 `gorm:"column:category;size:64;index" json:"category"`
	BasePrice          float64                `gorm:"column:base_price;type:decimal(12,2);not null;default:0" json:"basePrice"`
	MRP                float64                `gorm:"column:mrp;type:decimal(12,2)" json:"mrp,omitempty"`
	BulkPrice          float64                `gorm:"column:bulk_price;type:decimal(12,2)" json:"bulkPrice,omitempty"`
	MOQ                int                    `gorm:"column:moq;not null;default:10" json:"moq"`
	DiscountPercentage float64                `gorm:"column:discount_percentage;type:decimal(5,2)" json:"discountPercentage"`
	Rating             float64                `gorm:"column:rating;type:decimal(3,2)" json:"rating"`
	ReviewsCount       int                    `gorm:"column:reviews_count" json:"reviewsCount"`
	SoldCount          int                    `gorm:"column:sold_count" json:"soldCount"`
	Condition          string                 `gorm:"column:condition;size:16;index" json:"condition"`
	IsActive           bool                   `gorm:"column:is_active;not null;default:true" json:"isActive"`
	Specifications     datatypes.JSONMap      `gorm:"column:specifications" json:"specifications,omitempty"`
	DefaultWarranty    string                 `gorm:"column:default_warranty;size:64" json:"defaultWarranty,omitempty"`
	Variants           []ConfigurationVariant `gorm:"foreignKey:ProductID" json:"configurationVariants,omitempty"`
	WarrantyOptions    []WarrantyOption       `gorm:"foreignKey:ProductID" json:"warrantyOptions,omitempty"`
	CreatedAt          time.Time              `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt          time.Time              `gorm:"column:updated_at" json:"updatedAt"`
}

func (Product) TableName() string {
	return "catalog_product"
}

// ConfigurationVariant is a selectable hardware option with a price delta.
type ConfigurationVariant struct {
	ID              uint    `gorm:"column:variant_id;primaryKey;autoIncrement" json:"-"`
	ProductID       uint    `gorm:"column:product_id;index" json:"-"`
	Kind            string  `gorm:"column:kind;size:16;not null" json:"type"`
	Value           string  `gorm:"column:value;size:32;not null" json:"value"`
	PriceAdjustment float64 `gorm:"column:price_adjustment;type:decimal(12,2);not null;default:0" json:"priceAdjustment"`
}

func (ConfigurationVariant) TableName() string {
	return "catalog_product_variant"
}

// WarrantyOption is an additive warranty surcharge. The duration doubles as
// its identifier, matching the upstream catalog schema.
type WarrantyOption struct {
	ID        uint    `gorm:"column:warranty_id;primaryKey;autoIncrement" json:"-"`
	ProductID uint    `gorm:"column:product_id;index" json:"-"`
	Duration  string  `gorm:"column:duration;size:64;not null" json:"duration"`
	Price     float64 `gorm:"column:price;type:decimal(12,2);not null;default:0" json:"price"`
}

func (WarrantyOption) TableName() string {
	return "catalog_product_warranty"
}

// Spec returns the named specification value as a string, "" when absent.
func (p *Product) Spec(key string) string {
	if p.Specifications == nil {
		return ""
	}
	v, ok := p.Specifications[key]
	if !ok || v == nil {
		return ""
	}
	switch s := v.(type) {
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case bool:
		if s {
			return "true"
		}
		return "false"
	default:
		return ""
	}
}

// VariantsOfKind returns variants of one kind ordered by capacity (TB counts
// as 1000 GB), so "512GB" sorts before "1TB".
func (p *Product) VariantsOfKind(kind string) []ConfigurationVariant {
	var out []ConfigurationVariant
	for _, v := range p.Variants {
		if v.Kind == kind {
			out = append(out, v)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return variantCapacity(out[i].Value) < variantCapacity(out[j].Value)
	})
	return out
}

func variantCapacity(value string) int {
	v := strings.ToUpper(strings.TrimSpace(value))
	mult := 1
	switch {
	case strings.HasSuffix(v, "TB"):
		v, mult = strings.TrimSuffix(v, "TB"), 1000
	case strings.HasSuffix(v, "GB"):
		v = strings.TrimSuffix(v, "GB")
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0
	}
	return n * mult
}

// DefaultVariant returns the implicit default for a kind: the variant with a
// zero adjustment, else the smallest one. Second return is false when the
// product has no variants of that kind.
func (p *Product) DefaultVariant(kind string) (ConfigurationVariant, bool) {
	variants := p.VariantsOfKind(kind)
	if len(variants) == 0 {
		return ConfigurationVariant{}, false
	}
	for _, v := range variants {
		if v.PriceAdjustment == 0 {
			return v, true
		}
	}
	return variants[0], true
}

// WarrantyList returns the selectable warranties: the synthetic default
// (price 0) first, then the catalog options keyed by duration.
func (p *Product) WarrantyList() []WarrantyOption {
	label := p.DefaultWarranty
	if label == "" {
		label = "Standard Warranty"
	}
	list := []WarrantyOption{{ProductID: p.ID, Duration: label, Price: 0}}
	return append(list, p.WarrantyOptions...)
}

// Normalize applies the boundary defaults: negative numerics to 0, rating
// clamped to [0,5], condition defaulted to refurbished, and the discount
// percentage derived from MRP/base price when missing.
func (p *Product) Normalize() {
	if p.BasePrice < 0 {
		p.BasePrice = 0
	}
	if p.MRP < 0 {
		p.MRP = 0
	}
	if p.BulkPrice < 0 {
		p.BulkPrice = 0
	}
	if p.Rating < 0 {
		p.Rating = 0
	}
	if p.Rating > 5 {
		p.Rating = 5
	}
	if p.ReviewsCount < 0 {
		p.ReviewsCount = 0
	}
	if p.SoldCount < 0 {
		p.SoldCount = 0
	}
	if p.MOQ <= 0 {
		p.MOQ = 10
	}
	p.Condition = strings.ToLower(strings.TrimSpace(p.Condition))
	if p.Condition != ConditionNew {
		p.Condition = ConditionRefurbished
	}
	if p.DiscountPercentage <= 0 && p.MRP > p.BasePrice && p.MRP > 0 {
		p.DiscountPercentage = float64(int((p.MRP - p.BasePrice) / p.MRP * 100))
	}
	if p.DiscountPercentage < 0 {
		p.DiscountPercentage = 0
	}
}
