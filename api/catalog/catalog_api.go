package catalog

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"brightlaptop.GO/api"
	"brightlaptop.GO/config"
	catalogEntity "brightlaptop.GO/model/entity/catalog"
	catalogRepo "brightlaptop.GO/model/repository/catalog"
	catalogService "brightlaptop.GO/service/catalog"
	"brightlaptop.GO/service/pricing"
)

func init() {
	api.RegisterModule(RegisterCatalogRoutes)
}

func RegisterCatalogRoutes(apiGroup *echo.Group, db *gorm.DB) {
	repo := catalogRepo.NewCatalogRepository(db)

	// GET /api/products – filtered, ranked listing
	apiGroup.GET("/products", func(c echo.Context) error {
		start := time.Now()

		products, err := fetchProducts(c, repo)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}

		criteria := criteriaFromQuery(c)
		items := catalogService.Query(products, criteria)

		ps := intParam(c, "page_size", 20)
		cp := intParam(c, "current_page", 1)
		total := len(items)
		page := paginate(items, cp, ps)
		totalPages := (total + ps - 1) / ps
		if totalPages < 1 {
			totalPages = 1
		}

		duration := time.Since(start).Milliseconds()
		c.Response().Header().Set("X-Request-Duration-ms", strconv.FormatInt(duration, 10))
		return c.JSON(http.StatusOK, echo.Map{
			"products":    page,
			"total_count": total,
			"page_info": echo.Map{
				"page_size":    ps,
				"current_page": cp,
				"total_pages":  totalPages,
			},
		})
	})

	// GET /api/products/:id – product detail
	apiGroup.GET("/products/:id", func(c echo.Context) error {
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product id"})
		}
		p, err := repo.ByID(uint(id))
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
		}
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{
			"product":    p,
			"warranties": p.WarrantyList(),
			"memory":     p.VariantsOfKind(catalogEntity.VariantKindMemory),
			"storage":    p.VariantsOfKind(catalogEntity.VariantKindStorage),
		})
	})

	// GET /api/products/:id/quote – unit price for a selection + quantity.
	// Crossing the bulk threshold does not silently check out: the response
	// flags the bulk-contact workflow and carries the contact phone.
	apiGroup.GET("/products/:id/quote", func(c echo.Context) error {
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product id"})
		}
		p, err := repo.ByID(uint(id))
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
		}
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}

		qty := intParam(c, "quantity", 1)
		sel := pricing.Selection{
			Memory:   c.QueryParam("memory"),
			Storage:  c.QueryParam("storage"),
			Warranty: c.QueryParam("warranty"),
		}
		quote, err := pricing.Price(p, sel, qty)
		if errors.Is(err, pricing.ErrConfigurationRequired) {
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": err.Error()})
		}
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}

		resp := echo.Map{
			"unit_price": quote.UnitPrice,
			"line_total": quote.LineTotal,
			"tier":       quote.Tier,
			"quantity":   quote.Quantity,
		}
		if quote.Tier == pricing.TierBulk {
			resp["requires_bulk_contact"] = true
			if config.AppConfig != nil {
				resp["bulk_contact_phone"] = config.AppConfig.BulkContactPhone
			}
		}
		return c.JSON(http.StatusOK, resp)
	})
}

// fetchProducts picks the upstream source: Elasticsearch when a search term
// is present and the index is configured, otherwise the DB listing scoped by
// category/condition. The result is always re-filtered locally, so the local
// pipeline stays authoritative for what the buyer sees.
func fetchProducts(c echo.Context, repo *catalogRepo.CatalogRepository) ([]catalogEntity.Product, error) {
	search := c.QueryParam("search")
	if search != "" {
		svc := catalogService.GetSearchService()
		if svc.Enabled() {
			products, err := svc.Search(c.Request().Context(), search, intParam(c, "limit", 100))
			if err == nil {
				return products, nil
			}
			// Index trouble degrades to the local listing, not to an error.
		}
	}
	if condition := c.QueryParam("condition"); condition != "" {
		return repo.ListByCondition(condition)
	}
	if category := c.QueryParam("category"); category != "" {
		return repo.ListByCategory(category)
	}
	return repo.ListActive()
}

func criteriaFromQuery(c echo.Context) catalogService.Criteria {
	return catalogService.Criteria{
		Query:       c.QueryParam("search"),
		PriceMin:    floatParam(c, "price_min"),
		PriceMax:    floatParam(c, "price_max"),
		Brands:      c.QueryParams()["brand"],
		Memory:      c.QueryParams()["ram"],
		Storage:     c.QueryParams()["storage"],
		Processors:  c.QueryParams()["processor"],
		ScreenSizes: c.QueryParams()["screen"],
		Sort:        catalogService.ParseSortMode(c.QueryParam("sort")),
	}
}

func intParam(c echo.Context, name string, def int) int {
	v, err := strconv.Atoi(c.QueryParam(name))
	if err != nil || v <= 0 {
		return def
	}
	return v
}

func floatParam(c echo.Context, name string) float64 {
	v, err := strconv.ParseFloat(c.QueryParam(name), 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

func paginate(items []catalogEntity.Product, currentPage, pageSize int) []catalogEntity.Product {
	total := len(items)
	start := (currentPage - 1) * pageSize
	end := start + pageSize
	if start >= total {
		return []catalogEntity.Product{}
	}
	if end > total {
		end = total
	}
	return items[start:end]
}
