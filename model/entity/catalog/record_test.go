package catalog

import (
	"testing"
	"time"
)

func TestFromRecord_CoercesLooseTypes(t *testing.T) {
	p, err := FromRecord(map[string]interface{}{
		"id":           float64(42),
		"sku":          12345,
		"name":         "ThinkPad X1 Carbon",
		"basePrice":    "49999.5",
		"mrp":          61999,
		"reviewsCount": "12",
		"isActive":     1,
		"createdAt":    "2026-07-01T10:30:00Z",
		"specifications": map[string]interface{}{
			"ram": "16GB",
		},
		"configurationVariants": []interface{}{
			map[string]interface{}{"type": "MEMORY", "value": "16GB", "priceAdjustment": "2500"},
		},
	})
	if err != nil {
		t.Fatalf("FromRecord: %v", err)
	}
	if p.ID != 42 {
		t.Errorf("ID = %d, want 42", p.ID)
	}
	if p.SKU != "12345" {
		t.Errorf("SKU = %q, want 12345", p.SKU)
	}
	if p.BasePrice != 49999.5 {
		t.Errorf("BasePrice = %v, want 49999.5", p.BasePrice)
	}
	if p.MRP != 61999 {
		t.Errorf("MRP = %v, want 61999", p.MRP)
	}
	if p.ReviewsCount != 12 {
		t.Errorf("ReviewsCount = %d, want 12", p.ReviewsCount)
	}
	if !p.IsActive {
		t.Error("IsActive = false, want true")
	}
	want := time.Date(2026, 7, 1, 10, 30, 0, 0, time.UTC)
	if !p.CreatedAt.Equal(want) {
		t.Errorf("CreatedAt = %v, want %v", p.CreatedAt, want)
	}
	if len(p.Variants) != 1 || p.Variants[0].PriceAdjustment != 2500 {
		t.Errorf("Variants = %+v", p.Variants)
	}
}

func TestFromRecord_NormalizesOnDecode(t *testing.T) {
	p, err := FromRecord(map[string]interface{}{
		"name":      "Pavilion",
		"basePrice": float64(75),
		"mrp":       float64(100),
		"rating":    float64(9),
	})
	if err != nil {
		t.Fatalf("FromRecord: %v", err)
	}
	if p.Rating != 5 {
		t.Errorf("Rating = %v, want clamped 5", p.Rating)
	}
	if p.DiscountPercentage != 25 {
		t.Errorf("DiscountPercentage = %v, want derived 25", p.DiscountPercentage)
	}
	if p.Condition != ConditionRefurbished {
		t.Errorf("Condition = %q, want refurbished default", p.Condition)
	}
}

func TestFromRecords_SkipsBadRecords(t *testing.T) {
	got := FromRecords([]map[string]interface{}{
		{"name": "Good", "basePrice": "1000"},
		{"name": "Bad", "basePrice": "not-a-number"},
		{"name": "AlsoGood", "basePrice": float64(2000)},
	})
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2 (bad record skipped)", len(got))
	}
	if got[0].Name != "Good" || got[1].Name != "AlsoGood" {
		t.Errorf("names = %q, %q", got[0].Name, got[1].Name)
	}
}
