package config

import (
	"os"
	"sync"
)

// AppConfig holds global application configuration
var AppConfig *Config
var once sync.Once

type Config struct {
	AppName          string
	Port             string
	Env              string
	Debug            bool
	BulkContactPhone string
	CatalogCacheTTL  int64
}

// LoadAppConfig initializes the global AppConfig variable
func LoadAppConfig() {
	once.Do(func() {
		AppConfig = &Config{
			AppName: os.Getenv("APP_NAME"),
			Port:    os.Getenv("PORT"),
			Env:     os.Getenv("APP_ENV"),
			Debug:   os.Getenv("DEBUG") == "true",
			// Surfaced to buyers when an order quantity crosses the bulk threshold.
			BulkContactPhone: getenvDefault("BULK_CONTACT_PHONE", "9090909090"),
			CatalogCacheTTL:  300,
		}
	})
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
