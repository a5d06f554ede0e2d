package jobs

import (
	"log"
	"os"
	"path/filepath"

	"brightlaptop.GO/core/cache"
	"brightlaptop.GO/model/repository/catalog"
	catalogService "brightlaptop.GO/service/catalog"

	"gorm.io/gorm"
)

// DB is injected by the entry point before the scheduler starts. Jobs no-op
// when it is unset so the scheduler can run in tests without a database.
var DB *gorm.DB

const bestSellerSnapshotKey = "catalog:bestsellers:snapshot"

// BestSellerSnapshotJob recomputes the best-seller ranking over the active
// catalog and stores the ordered SKU list in the cache. Listing endpoints stay
// pure per request; this snapshot is for dashboards and warm starts.
func BestSellerSnapshotJob(args ...string) {
	if DB == nil {
		return
	}
	repo := catalog.NewCatalogRepository(DB)
	products, err := repo.ListActive()
	if err != nil {
		log.Printf("bestseller snapshot: list: %v", err)
		return
	}
	ranked := catalogService.Sort(products, catalogService.SortBestSellers)
	skus := make([]string, 0, len(ranked))
	for i := range ranked {
		skus = append(skus, ranked[i].SKU)
	}
	cache.GetInstance().Set(bestSellerSnapshotKey, skus, 0, nil)
	log.Printf("bestseller snapshot: %d products ranked", len(skus))
}

// CatalogCacheDumpJob persists the in-memory cache to disk so listings warm
// up fast after a restart. Path override via CACHE_DUMP_PATH.
func CatalogCacheDumpJob(args ...string) {
	path := os.Getenv("CACHE_DUMP_PATH")
	if path == "" {
		path = filepath.Join(os.TempDir(), "brightlaptop-cache.json")
	}
	if err := cache.GetInstance().DumpToFile(path); err != nil {
		log.Printf("cache dump: %v", err)
		return
	}
	log.Printf("cache dump: wrote %s", path)
}
