package catalog

import (
	"testing"

	"gorm.io/datatypes"
)

func TestNormalize_Defaults(t *testing.T) {
	p := Product{
		BasePrice:    -10,
		MRP:          -5,
		BulkPrice:    -1,
		Rating:       -2,
		ReviewsCount: -3,
		SoldCount:    -4,
		MOQ:          0,
		Condition:    "  Broken ",
	}
	p.Normalize()
	if p.BasePrice != 0 || p.MRP != 0 || p.BulkPrice != 0 {
		t.Errorf("negative prices not zeroed: %+v", p)
	}
	if p.Rating != 0 || p.ReviewsCount != 0 || p.SoldCount != 0 {
		t.Errorf("negative counters not zeroed: %+v", p)
	}
	if p.MOQ != 10 {
		t.Errorf("MOQ = %d, want 10", p.MOQ)
	}
	if p.Condition != ConditionRefurbished {
		t.Errorf("Condition = %q, want refurbished", p.Condition)
	}
}

func TestNormalize_RatingClamp(t *testing.T) {
	p := Product{Rating: 9.7}
	p.Normalize()
	if p.Rating != 5 {
		t.Errorf("Rating = %v, want 5", p.Rating)
	}
}

func TestNormalize_ConditionNewKept(t *testing.T) {
	p := Product{Condition: "NEW"}
	p.Normalize()
	if p.Condition != ConditionNew {
		t.Errorf("Condition = %q, want new", p.Condition)
	}
}

func TestNormalize_DerivesDiscount(t *testing.T) {
	p := Product{BasePrice: 75, MRP: 100}
	p.Normalize()
	if p.DiscountPercentage != 25 {
		t.Errorf("DiscountPercentage = %v, want 25", p.DiscountPercentage)
	}

	// Explicit discount wins over derivation.
	p = Product{BasePrice: 75, MRP: 100, DiscountPercentage: 30}
	p.Normalize()
	if p.DiscountPercentage != 30 {
		t.Errorf("explicit DiscountPercentage = %v, want 30", p.DiscountPercentage)
	}

	// No MRP, nothing to derive from.
	p = Product{BasePrice: 75}
	p.Normalize()
	if p.DiscountPercentage != 0 {
		t.Errorf("DiscountPercentage = %v, want 0", p.DiscountPercentage)
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	p := Product{BasePrice: 75, MRP: 100, Rating: 6, Condition: "New"}
	p.Normalize()
	rating, discount, condition, moq := p.Rating, p.DiscountPercentage, p.Condition, p.MOQ
	p.Normalize()
	if p.Rating != rating || p.DiscountPercentage != discount || p.Condition != condition || p.MOQ != moq {
		t.Errorf("second Normalize changed the product: %+v", p)
	}
}

func TestSpec_StringifiesValues(t *testing.T) {
	p := Product{Specifications: datatypes.JSONMap{
		"ram":        "16GB DDR4",
		"screenSize": 15.6,
		"backlit":    true,
	}}
	if got := p.Spec("ram"); got != "16GB DDR4" {
		t.Errorf("Spec(ram) = %q", got)
	}
	if got := p.Spec("screenSize"); got != "15.6" {
		t.Errorf("Spec(screenSize) = %q, want 15.6", got)
	}
	if got := p.Spec("backlit"); got != "true" {
		t.Errorf("Spec(backlit) = %q, want true", got)
	}
	if got := p.Spec("missing"); got != "" {
		t.Errorf("Spec(missing) = %q, want empty", got)
	}
}

func TestVariantsOfKind_CapacityOrder(t *testing.T) {
	p := Product{Variants: []ConfigurationVariant{
		{Kind: VariantKindStorage, Value: "1TB", PriceAdjustment: 8000},
		{Kind: VariantKindStorage, Value: "256GB"},
		{Kind: VariantKindStorage, Value: "512GB", PriceAdjustment: 4000},
		{Kind: VariantKindMemory, Value: "8GB"},
	}}
	got := p.VariantsOfKind(VariantKindStorage)
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	// TB counts as 1000 GB, so 1TB sorts after 512GB.
	want := []string{"256GB", "512GB", "1TB"}
	for i, v := range got {
		if v.Value != want[i] {
			t.Errorf("position %d = %q, want %q", i, v.Value, want[i])
		}
	}
}

func TestDefaultVariant(t *testing.T) {
	p := Product{Variants: []ConfigurationVariant{
		{Kind: VariantKindMemory, Value: "32GB", PriceAdjustment: 6000},
		{Kind: VariantKindMemory, Value: "16GB", PriceAdjustment: 0},
	}}
	v, ok := p.DefaultVariant(VariantKindMemory)
	if !ok || v.Value != "16GB" {
		t.Errorf("DefaultVariant = %v, %v; want the zero-adjustment 16GB", v, ok)
	}

	// All paid options: smallest capacity wins.
	p = Product{Variants: []ConfigurationVariant{
		{Kind: VariantKindMemory, Value: "32GB", PriceAdjustment: 6000},
		{Kind: VariantKindMemory, Value: "16GB", PriceAdjustment: 3000},
	}}
	v, ok = p.DefaultVariant(VariantKindMemory)
	if !ok || v.Value != "16GB" {
		t.Errorf("DefaultVariant = %v, %v; want smallest 16GB", v, ok)
	}

	if _, ok := p.DefaultVariant(VariantKindStorage); ok {
		t.Error("DefaultVariant for absent kind: want ok=false")
	}
}

func TestWarrantyList_DefaultFirst(t *testing.T) {
	p := Product{
		DefaultWarranty: "1 Year Onsite",
		WarrantyOptions: []WarrantyOption{{Duration: "2 Years", Price: 2000}},
	}
	got := p.WarrantyList()
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Duration != "1 Year Onsite" || got[0].Price != 0 {
		t.Errorf("first entry = %+v, want the free default", got[0])
	}

	p.DefaultWarranty = ""
	if got := p.WarrantyList(); got[0].Duration != "Standard Warranty" {
		t.Errorf("fallback label = %q, want Standard Warranty", got[0].Duration)
	}
}
