package cart

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"brightlaptop.GO/api"
	cartRepo "brightlaptop.GO/model/repository/cart"
	"brightlaptop.GO/service/pricing"
)

func init() {
	api.RegisterModule(RegisterCartRoutes)
}

// Session carts are keyed by the X-Session-Id header (the storefront owns the
// session lifecycle; this service only needs a stable key per buyer).
func sessionID(c echo.Context) string {
	if sid := c.Request().Header.Get("X-Session-Id"); sid != "" {
		return sid
	}
	return "anonymous"
}

func RegisterCartRoutes(apiGroup *echo.Group, db *gorm.DB) {
	repo := cartRepo.NewCartRepository(db)
	g := apiGroup.Group("/cart")

	// GET /api/cart – cart with aggregated totals
	g.GET("", func(c echo.Context) error {
		cart, err := repo.Get(sessionID(c))
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"cart": cart, "totals": repo.Totals(cart)})
	})

	// POST /api/cart/items – add a product. Memory and storage selections are
	// mandatory when the product defines variants; the calculator enforces it
	// before any mutation.
	g.POST("/items", func(c echo.Context) error {
		var body struct {
			ProductID uint   `json:"productId"`
			Quantity  int    `json:"quantity"`
			Memory    string `json:"selectedMemory"`
			Storage   string `json:"selectedStorage"`
			Warranty  string `json:"selectedWarranty"`
		}
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		if body.ProductID == 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "productId is required"})
		}
		cart, err := repo.AddItem(sessionID(c), body.ProductID, pricing.Selection{
			Memory:   body.Memory,
			Storage:  body.Storage,
			Warranty: body.Warranty,
		}, body.Quantity)
		if errors.Is(err, pricing.ErrConfigurationRequired) {
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": err.Error()})
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
		}
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusCreated, echo.Map{"cart": cart, "totals": repo.Totals(cart)})
	})

	// PUT /api/cart/items/:id – change quantity (reprices; tier may flip)
	g.PUT("/items/:id", func(c echo.Context) error {
		itemID, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid item id"})
		}
		var body struct {
			Quantity int `json:"quantity"`
		}
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		if body.Quantity < 1 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "quantity must be >= 1"})
		}
		cart, err := repo.UpdateQuantity(sessionID(c), uint(itemID), body.Quantity)
		if errors.Is(err, cartRepo.ErrItemNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "item not found"})
		}
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"cart": cart, "totals": repo.Totals(cart)})
	})

	// DELETE /api/cart/items/:id – remove a line
	g.DELETE("/items/:id", func(c echo.Context) error {
		itemID, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid item id"})
		}
		cart, err := repo.RemoveItem(sessionID(c), uint(itemID))
		if errors.Is(err, cartRepo.ErrItemNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "item not found"})
		}
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"cart": cart, "totals": repo.Totals(cart)})
	})

	// DELETE /api/cart – clear
	g.DELETE("", func(c echo.Context) error {
		cart, err := repo.Clear(sessionID(c))
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"cart": cart, "totals": repo.Totals(cart)})
	})
}
