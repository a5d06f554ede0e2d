package realtime

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"brightlaptop.GO/api"
	"brightlaptop.GO/config"
	"brightlaptop.GO/core/cache"
	catalogRepo "brightlaptop.GO/model/repository/catalog"
	catalogService "brightlaptop.GO/service/catalog"
	"brightlaptop.GO/service/pricing"
)

func init() {
	api.RegisterModule(RegisterRealtimeRoutes)
}

// Response for the live quote endpoint.
type LiveQuoteResponse struct {
	SKU             string  `json:"sku"`
	UnitPrice       float64 `json:"unitPrice"`
	Tier            string  `json:"tier"`
	BestSellerScore float64 `json:"bestSellerScore"`
	BestSellerRank  int     `json:"bestSellerRank,omitempty"`
}

const bestSellerSnapshotKey = "catalog:bestsellers:snapshot"

// getCryptKey returns the shared storefront signing key from env
func getCryptKey() string {
	return config.GetEnv("STOREFRONT_CRYPT_KEY", "")
}

// verifySessionSignature validates HMAC-SHA256 signature using constant-time comparison
func verifySessionSignature(sessionID, signature, cryptKey string) bool {
	if cryptKey == "" || sessionID == "" || signature == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(cryptKey))
	mac.Write([]byte(sessionID))
	expected := mac.Sum(nil)
	sig, err := hex.DecodeString(signature)
	if err != nil {
		return false
	}
	return hmac.Equal(expected, sig)
}

// RegisterRealtimeRoutes sets up the low-latency quote endpoint the storefront
// polls from product pages. Price and popularity are fetched concurrently.
func RegisterRealtimeRoutes(apiGroup *echo.Group, db *gorm.DB) {
	repo := catalogRepo.NewCatalogRepository(db)
	g := apiGroup.Group("/realtime")

	// GET /api/realtime/quote?sku=XXX&quantity=N&memory=&storage=&warranty=
	g.GET("/quote", func(c echo.Context) error {
		start := time.Now()

		// When a signing key is configured, the session header must verify.
		sessionID := c.Request().Header.Get("X-Session-Id")
		sessionSig := c.Request().Header.Get("X-Session-Sig")
		if key := getCryptKey(); key != "" && !verifySessionSignature(sessionID, sessionSig, key) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid signature"})
		}

		sku := c.QueryParam("sku")
		if sku == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "sku required"})
		}
		quantity := 1
		if q, err := strconv.Atoi(c.QueryParam("quantity")); err == nil && q > 0 {
			quantity = q
		}
		sel := pricing.Selection{
			Memory:   c.QueryParam("memory"),
			Storage:  c.QueryParam("storage"),
			Warranty: c.QueryParam("warranty"),
		}

		var (
			quote *pricing.Quote
			score float64
			rank  int
		)

		// Parallel fetch using errgroup
		eg := new(errgroup.Group)

		eg.Go(func() error {
			p, err := repo.BySKU(sku)
			if err != nil {
				return err
			}
			score = catalogService.BestSellerScore(p)
			q, err := pricing.Price(p, sel, quantity)
			if err != nil {
				return err
			}
			quote = q
			return nil
		})

		eg.Go(func() error {
			// Rank comes from the hourly snapshot; absent is fine.
			if v, ok := cache.GetInstance().Get(bestSellerSnapshotKey); ok {
				if skus, ok := v.([]string); ok {
					for i, s := range skus {
						if s == sku {
							rank = i + 1
							break
						}
					}
				}
			}
			return nil
		})

		err := eg.Wait()

		duration := time.Since(start).Milliseconds()
		c.Response().Header().Set("X-Request-Duration-ms", strconv.FormatInt(duration, 10))

		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{
				"error":               "product not found",
				"request_duration_ms": duration,
			})
		}
		if errors.Is(err, pricing.ErrConfigurationRequired) {
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": err.Error()})
		}
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}

		return c.JSON(http.StatusOK, LiveQuoteResponse{
			SKU:             sku,
			UnitPrice:       quote.UnitPrice,
			Tier:            quote.Tier,
			BestSellerScore: score,
			BestSellerRank:  rank,
		})
	})
}
