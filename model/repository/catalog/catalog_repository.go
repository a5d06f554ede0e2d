package catalog

import (
	"encoding/json"
	"strings"
	"time"

	"gorm.io/gorm"

	"brightlaptop.GO/config"
	"brightlaptop.GO/core/cache"
	catalogEntity "brightlaptop.GO/model/entity/catalog"
)

// CacheTag groups every cached listing so an import or edit can drop them all.
const CacheTag = "catalog"

const listCacheTTL = 300 // seconds

// CatalogRepository loads catalog reference data. Listings are cached in the
// process cache and written through to Redis when configured, so a restarted
// instance can serve the last snapshot before the DB answers.
type CatalogRepository struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{db: db, cache: cache.GetInstance()}
}

// ListActive returns active products with variants and warranties preloaded,
// normalized, in catalog (insertion) order.
func (r *CatalogRepository) ListActive() ([]catalogEntity.Product, error) {
	return r.cachedList("catalog:active", func(tx *gorm.DB) *gorm.DB {
		return tx.Where("is_active = ?", true)
	})
}

// ListByCategory filters server-side by category slug. Slugs arrive
// hyphenated from the storefront ("refurbished-laptops"); they are normalized
// to spaced, case-insensitive names.
func (r *CatalogRepository) ListByCategory(slug string) ([]catalogEntity.Product, error) {
	name := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(slug), "-", " "))
	if name == "" || name == "all" {
		return r.ListActive()
	}
	return r.cachedList("catalog:category:"+name, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("is_active = ? AND LOWER(category) = ?", true, name)
	})
}

// ListByCondition returns active products of one condition (new/refurbished).
func (r *CatalogRepository) ListByCondition(condition string) ([]catalogEntity.Product, error) {
	return r.cachedList("catalog:condition:"+condition, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("is_active = ? AND `condition` = ?", true, condition)
	})
}

// ByID loads one product with its children, or gorm.ErrRecordNotFound.
func (r *CatalogRepository) ByID(id uint) (*catalogEntity.Product, error) {
	var p catalogEntity.Product
	err := r.db.Preload("Variants").Preload("WarrantyOptions").First(&p, id).Error
	if err != nil {
		return nil, err
	}
	p.Normalize()
	return &p, nil
}

// BySKU loads one product by SKU.
func (r *CatalogRepository) BySKU(sku string) (*catalogEntity.Product, error) {
	var p catalogEntity.Product
	err := r.db.Preload("Variants").Preload("WarrantyOptions").
		Where("sku = ?", sku).First(&p).Error
	if err != nil {
		return nil, err
	}
	p.Normalize()
	return &p, nil
}

// InvalidateListings drops every cached listing (call after imports/edits).
func (r *CatalogRepository) InvalidateListings() {
	r.cache.DeleteByTag(CacheTag)
}

func (r *CatalogRepository) cachedList(key string, scope func(*gorm.DB) *gorm.DB) ([]catalogEntity.Product, error) {
	if v, ok := r.cache.Get(key); ok {
		if products, ok := v.([]catalogEntity.Product); ok {
			return products, nil
		}
	}

	var products []catalogEntity.Product
	err := scope(r.db.Preload("Variants").Preload("WarrantyOptions")).
		Order("entity_id").Find(&products).Error
	if err != nil {
		// Degrade to the Redis snapshot when the DB is unreachable.
		if snap, ok := r.redisSnapshot(key); ok {
			return snap, nil
		}
		return nil, err
	}
	for i := range products {
		products[i].Normalize()
	}

	r.cache.Set(key, products, listCacheTTL, []string{CacheTag})
	r.writeRedisSnapshot(key, products)
	return products, nil
}

func (r *CatalogRepository) writeRedisSnapshot(key string, products []catalogEntity.Product) {
	if config.RedisClient == nil {
		return
	}
	data, err := json.Marshal(products)
	if err != nil {
		return
	}
	config.RedisClient.Set(config.RedisCtx(), key, data, time.Duration(listCacheTTL)*time.Second)
}

func (r *CatalogRepository) redisSnapshot(key string) ([]catalogEntity.Product, bool) {
	if config.RedisClient == nil {
		return nil, false
	}
	data, err := config.RedisClient.Get(config.RedisCtx(), key).Bytes()
	if err != nil {
		return nil, false
	}
	var products []catalogEntity.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, false
	}
	return products, true
}
