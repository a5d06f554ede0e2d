package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	catalogEntity "brightlaptop.GO/model/entity/catalog"
	catalogRepo "brightlaptop.GO/model/repository/catalog"
)

// ImportOptions configures a catalog import run.
type ImportOptions struct {
	BatchSize int
	DryRun    bool
}

// ImportResult holds counters and timing from an import run.
type ImportResult struct {
	TotalRows int
	Created   int
	Updated   int
	Skipped   int
	Warnings  []string
	TotalTime time.Duration
}

var staticColumns = map[string]bool{
	"sku": true, "name": true, "brand": true, "category": true,
	"base_price": true, "mrp": true, "bulk_price": true, "moq": true,
	"discount_percentage": true, "rating": true, "reviews_count": true,
	"sold_count": true, "condition": true, "is_active": true,
	"default_warranty": true,
	"memory_variants": true, "storage_variants": true, "warranty_options": true,
}

// ImportProducts reads CSV data from r and upserts products by SKU.
//
// Specification columns carry a "spec:" prefix (spec:ram, spec:processor,
// spec:screenSize, ...). Variant columns pack value:adjustment pairs joined
// by '|' ("8GB:0|16GB:2000"); warranty_options pack duration:price pairs the
// same way. Unknown columns are skipped with a warning, bad numeric cells
// skip the row.
func ImportProducts(db *gorm.DB, r io.Reader, opts ImportOptions) (*ImportResult, error) {
	startTotal := time.Now()
	if opts.BatchSize <= 0 {
		opts.BatchSize = 200
	}

	reader := csv.NewReader(r)
	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read CSV header: %w", err)
	}
	for i := range headers {
		headers[i] = strings.TrimSpace(headers[i])
	}

	skuCol := -1
	colIndex := make(map[string]int, len(headers))
	for i, h := range headers {
		colIndex[h] = i
		if h == "sku" {
			skuCol = i
		}
	}
	if skuCol < 0 {
		return nil, fmt.Errorf("CSV must contain a 'sku' column")
	}

	result := &ImportResult{}
	for _, h := range headers {
		if !staticColumns[h] && !strings.HasPrefix(h, "spec:") {
			result.Warnings = append(result.Warnings, fmt.Sprintf("column %q: unknown, skipping", h))
		}
	}

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read CSV rows: %w", err)
	}
	result.TotalRows = len(rows)

	for n, row := range rows {
		if skuCol >= len(row) || strings.TrimSpace(row[skuCol]) == "" {
			result.Skipped++
			result.Warnings = append(result.Warnings, fmt.Sprintf("row %d: empty sku, skipping", n+2))
			continue
		}
		p, warns := rowToProduct(row, headers, colIndex)
		for _, w := range warns {
			result.Warnings = append(result.Warnings, fmt.Sprintf("row %d: %s", n+2, w))
		}
		if p == nil {
			result.Skipped++
			continue
		}
		if opts.DryRun {
			continue
		}
		created, err := upsertProduct(db, p)
		if err != nil {
			result.Skipped++
			result.Warnings = append(result.Warnings, fmt.Sprintf("row %d: %v", n+2, err))
			continue
		}
		if created {
			result.Created++
		} else {
			result.Updated++
		}
	}

	if !opts.DryRun && result.Created+result.Updated > 0 {
		catalogRepo.NewCatalogRepository(db).InvalidateListings()
	}

	result.TotalTime = time.Since(startTotal)
	return result, nil
}

func rowToProduct(row, headers []string, colIndex map[string]int) (*catalogEntity.Product, []string) {
	var warns []string
	cell := func(col string) string {
		if i, ok := colIndex[col]; ok && i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}
	num := func(col string) float64 {
		s := cell(col)
		if s == "" {
			return 0
		}
		f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
		if err != nil {
			warns = append(warns, fmt.Sprintf("column %q: bad number %q", col, s))
			return 0
		}
		return f
	}

	p := &catalogEntity.Product{
		SKU:                cell("sku"),
		Name:               cell("name"),
		Brand:              cell("brand"),
		Category:           cell("category"),
		BasePrice:          num("base_price"),
		MRP:                num("mrp"),
		BulkPrice:          num("bulk_price"),
		MOQ:                int(num("moq")),
		DiscountPercentage: num("discount_percentage"),
		Rating:             num("rating"),
		ReviewsCount:       int(num("reviews_count")),
		SoldCount:          int(num("sold_count")),
		Condition:          cell("condition"),
		IsActive:           cell("is_active") != "0" && !strings.EqualFold(cell("is_active"), "false"),
		DefaultWarranty:    cell("default_warranty"),
	}

	specs := datatypes.JSONMap{}
	for _, h := range headers {
		if strings.HasPrefix(h, "spec:") {
			if v := cell(h); v != "" {
				specs[strings.TrimPrefix(h, "spec:")] = v
			}
		}
	}
	if len(specs) > 0 {
		p.Specifications = specs
	}

	for _, pair := range splitPairs(cell("memory_variants")) {
		p.Variants = append(p.Variants, catalogEntity.ConfigurationVariant{
			Kind: catalogEntity.VariantKindMemory, Value: pair.key, PriceAdjustment: pair.val,
		})
	}
	for _, pair := range splitPairs(cell("storage_variants")) {
		p.Variants = append(p.Variants, catalogEntity.ConfigurationVariant{
			Kind: catalogEntity.VariantKindStorage, Value: pair.key, PriceAdjustment: pair.val,
		})
	}
	for _, pair := range splitPairs(cell("warranty_options")) {
		p.WarrantyOptions = append(p.WarrantyOptions, catalogEntity.WarrantyOption{
			Duration: pair.key, Price: pair.val,
		})
	}

	p.Normalize()
	return p, warns
}

type kvPair struct {
	key string
	val float64
}

// splitPairs parses "a:1|b:2" cells; entries without a price default to 0.
func splitPairs(cell string) []kvPair {
	if cell == "" {
		return nil
	}
	var out []kvPair
	for _, part := range strings.Split(cell, "|") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		key, valStr, found := strings.Cut(part, ":")
		var val float64
		if found {
			val, _ = strconv.ParseFloat(strings.TrimSpace(valStr), 64)
		}
		out = append(out, kvPair{key: strings.TrimSpace(key), val: val})
	}
	return out
}

func upsertProduct(db *gorm.DB, p *catalogEntity.Product) (created bool, err error) {
	var existing catalogEntity.Product
	err = db.Where("sku = ?", p.SKU).First(&existing).Error
	if err == nil {
		p.ID = existing.ID
		// Replace children wholesale; the import file is the source of truth.
		if err := db.Where("product_id = ?", existing.ID).Delete(&catalogEntity.ConfigurationVariant{}).Error; err != nil {
			return false, err
		}
		if err := db.Where("product_id = ?", existing.ID).Delete(&catalogEntity.WarrantyOption{}).Error; err != nil {
			return false, err
		}
		for i := range p.Variants {
			p.Variants[i].ProductID = existing.ID
		}
		for i := range p.WarrantyOptions {
			p.WarrantyOptions[i].ProductID = existing.ID
		}
		return false, db.Session(&gorm.Session{FullSaveAssociations: true}).Save(p).Error
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}
	return true, db.Create(p).Error
}
