package models

import (
	"sort"
	"strconv"

	gql "github.com/graph-gophers/graphql-go"

	catalogEntity "brightlaptop.GO/model/entity/catalog"
	catalogService "brightlaptop.GO/service/catalog"
)

// View types for graphql-go field resolvers. Ints are int32 because the
// GraphQL Int type is 32-bit.

type Product struct {
	ID                    gql.ID
	SKU                   string
	Name                  string
	Brand                 string
	Category              string
	BasePrice             float64
	MRP                   *float64
	DiscountPercentage    float64
	Rating                float64
	ReviewsCount          int32
	SoldCount             int32
	Condition             string
	DefaultWarranty       *string
	Specifications        []Specification
	ConfigurationVariants []ConfigurationVariant
	WarrantyOptions       []WarrantyOption
	BestSellerScore       float64
}

type Specification struct {
	Key   string
	Value string
}

type ConfigurationVariant struct {
	Kind            string
	Value           string
	PriceAdjustment float64
}

type WarrantyOption struct {
	Duration string
	Price    float64
}

type PageInfo struct {
	PageSize    int32
	CurrentPage int32
	TotalPages  int32
}

type ProductList struct {
	Items      []*Product
	TotalCount int32
	PageInfo   PageInfo
}

type Quote struct {
	UnitPrice           float64
	LineTotal           float64
	Tier                string
	Quantity            int32
	RequiresBulkContact bool
	BulkContactPhone    *string
}

// FromEntity maps a catalog entity to its GraphQL view.
func FromEntity(p *catalogEntity.Product) *Product {
	out := &Product{
		ID:                 gql.ID(strconv.FormatUint(uint64(p.ID), 10)),
		SKU:                p.SKU,
		Name:               p.Name,
		Brand:              p.Brand,
		Category:           p.Category,
		BasePrice:          p.BasePrice,
		DiscountPercentage: p.DiscountPercentage,
		Rating:             p.Rating,
		ReviewsCount:       int32(p.ReviewsCount),
		SoldCount:          int32(p.SoldCount),
		Condition:          p.Condition,
		BestSellerScore:    catalogService.BestSellerScore(p),
	}
	if p.MRP > 0 {
		mrp := p.MRP
		out.MRP = &mrp
	}
	if p.DefaultWarranty != "" {
		dw := p.DefaultWarranty
		out.DefaultWarranty = &dw
	}
	out.Specifications = make([]Specification, 0, len(p.Specifications))
	for k := range p.Specifications {
		out.Specifications = append(out.Specifications, Specification{Key: k, Value: p.Spec(k)})
	}
	sort.Slice(out.Specifications, func(i, j int) bool {
		return out.Specifications[i].Key < out.Specifications[j].Key
	})
	out.ConfigurationVariants = make([]ConfigurationVariant, 0, len(p.Variants))
	for _, v := range p.Variants {
		out.ConfigurationVariants = append(out.ConfigurationVariants, ConfigurationVariant{
			Kind:            v.Kind,
			Value:           v.Value,
			PriceAdjustment: v.PriceAdjustment,
		})
	}
	out.WarrantyOptions = make([]WarrantyOption, 0, len(p.WarrantyOptions))
	for _, w := range p.WarrantyOptions {
		out.WarrantyOptions = append(out.WarrantyOptions, WarrantyOption{Duration: w.Duration, Price: w.Price})
	}
	return out
}

// FromEntities maps a slice, preserving order.
func FromEntities(products []catalogEntity.Product) []*Product {
	out := make([]*Product, 0, len(products))
	for i := range products {
		out = append(out, FromEntity(&products[i]))
	}
	return out
}
