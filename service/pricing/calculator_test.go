package pricing

import (
	"errors"
	"testing"

	catalogEntity "brightlaptop.GO/model/entity/catalog"
)

func configuredLaptop() *catalogEntity.Product {
	return &catalogEntity.Product{
		ID:        1,
		SKU:       "TP-X1C-G9",
		Name:      "ThinkPad X1 Carbon",
		BasePrice: 50000,
		Variants: []catalogEntity.ConfigurationVariant{
			{Kind: catalogEntity.VariantKindMemory, Value: "8GB", PriceAdjustment: 0},
			{Kind: catalogEntity.VariantKindMemory, Value: "16GB", PriceAdjustment: 2500},
			{Kind: catalogEntity.VariantKindStorage, Value: "512GB", PriceAdjustment: 0},
			{Kind: catalogEntity.VariantKindStorage, Value: "1TB", PriceAdjustment: 5000},
		},
		WarrantyOptions: []catalogEntity.WarrantyOption{
			{Duration: "2 Years", Price: 2000},
			{Duration: "3 Years", Price: 3500},
		},
	}
}

func TestPrice_RetailWithSelectionAndWarranty(t *testing.T) {
	p := configuredLaptop()
	q, err := Price(p, Selection{Memory: "16GB", Storage: "512GB", Warranty: "2 Years"}, 1)
	if err != nil {
		t.Fatalf("Price: %v", err)
	}
	if q.UnitPrice != 54500 {
		t.Errorf("UnitPrice = %v, want 54500", q.UnitPrice)
	}
	if q.Tier != TierRetail {
		t.Errorf("Tier = %q, want retail", q.Tier)
	}
	if q.LineTotal != 54500 {
		t.Errorf("LineTotal = %v, want 54500", q.LineTotal)
	}
	if q.WarrantySurcharge != 2000 {
		t.Errorf("WarrantySurcharge = %v, want 2000", q.WarrantySurcharge)
	}
	if q.ConfigAdjustment != 2500 {
		t.Errorf("ConfigAdjustment = %v, want 2500", q.ConfigAdjustment)
	}
}

func TestPrice_BulkFallbackMultiplier(t *testing.T) {
	p := configuredLaptop()
	q, err := Price(p, Selection{Memory: "16GB", Storage: "512GB", Warranty: "2 Years"}, 10)
	if err != nil {
		t.Fatalf("Price: %v", err)
	}
	// 50000*0.85 + 2500 + 2000
	if q.UnitPrice != 47000 {
		t.Errorf("UnitPrice = %v, want 47000", q.UnitPrice)
	}
	if q.Tier != TierBulk {
		t.Errorf("Tier = %q, want bulk", q.Tier)
	}
	if q.LineTotal != 470000 {
		t.Errorf("LineTotal = %v, want 470000", q.LineTotal)
	}
}

func TestPrice_BulkExplicitPriceWins(t *testing.T) {
	p := configuredLaptop()
	p.BulkPrice = 45000
	q, err := Price(p, Selection{Memory: "8GB", Storage: "512GB"}, 12)
	if err != nil {
		t.Fatalf("Price: %v", err)
	}
	if q.UnitPrice != 45000 {
		t.Errorf("UnitPrice = %v, want 45000", q.UnitPrice)
	}
}

func TestTierFor_ThresholdInclusive(t *testing.T) {
	if got := TierFor(9); got != TierRetail {
		t.Errorf("TierFor(9) = %q, want retail", got)
	}
	if got := TierFor(10); got != TierBulk {
		t.Errorf("TierFor(10) = %q, want bulk", got)
	}
}

func TestPrice_ConfigurationRequired(t *testing.T) {
	p := configuredLaptop()
	_, err := Price(p, Selection{Storage: "512GB"}, 1)
	if !errors.Is(err, ErrConfigurationRequired) {
		t.Errorf("missing memory: err = %v, want ErrConfigurationRequired", err)
	}
	_, err = Price(p, Selection{Memory: "8GB"}, 1)
	if !errors.Is(err, ErrConfigurationRequired) {
		t.Errorf("missing storage: err = %v, want ErrConfigurationRequired", err)
	}
}

func TestPrice_NoVariantsNeedsNoSelection(t *testing.T) {
	p := &catalogEntity.Product{BasePrice: 30000}
	q, err := Price(p, Selection{}, 1)
	if err != nil {
		t.Fatalf("Price: %v", err)
	}
	if q.UnitPrice != 30000 {
		t.Errorf("UnitPrice = %v, want 30000", q.UnitPrice)
	}
}

func TestPrice_UnknownWarrantyIsFree(t *testing.T) {
	p := configuredLaptop()
	q, err := Price(p, Selection{Memory: "8GB", Storage: "512GB", Warranty: "9 Years"}, 1)
	if err != nil {
		t.Fatalf("Price: %v", err)
	}
	if q.WarrantySurcharge != 0 {
		t.Errorf("WarrantySurcharge = %v, want 0", q.WarrantySurcharge)
	}
}

func TestPrice_DefaultWarrantyIsFree(t *testing.T) {
	p := configuredLaptop()
	for _, w := range []string{"", catalogEntity.DefaultWarrantyID} {
		q, err := Price(p, Selection{Memory: "8GB", Storage: "512GB", Warranty: w}, 1)
		if err != nil {
			t.Fatalf("Price(%q): %v", w, err)
		}
		if q.WarrantySurcharge != 0 {
			t.Errorf("Warranty %q surcharge = %v, want 0", w, q.WarrantySurcharge)
		}
	}
}

func TestPrice_ClampsAtZero(t *testing.T) {
	p := &catalogEntity.Product{
		BasePrice: 100,
		Variants: []catalogEntity.ConfigurationVariant{
			{Kind: catalogEntity.VariantKindMemory, Value: "4GB", PriceAdjustment: -500},
		},
	}
	q, err := Price(p, Selection{Memory: "4GB"}, 1)
	if err != nil {
		t.Fatalf("Price: %v", err)
	}
	if q.UnitPrice != 0 {
		t.Errorf("UnitPrice = %v, want 0", q.UnitPrice)
	}
	if q.LineTotal != 0 {
		t.Errorf("LineTotal = %v, want 0", q.LineTotal)
	}
}

func TestPrice_QuantityFloorsAtOne(t *testing.T) {
	p := &catalogEntity.Product{BasePrice: 1000}
	q, err := Price(p, Selection{}, 0)
	if err != nil {
		t.Fatalf("Price: %v", err)
	}
	if q.Quantity != 1 {
		t.Errorf("Quantity = %d, want 1", q.Quantity)
	}
	if q.LineTotal != 1000 {
		t.Errorf("LineTotal = %v, want 1000", q.LineTotal)
	}
}
