package cart

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	cartEntity "brightlaptop.GO/model/entity/cart"
	catalogRepo "brightlaptop.GO/model/repository/catalog"
	"brightlaptop.GO/service/pricing"
)

var ErrItemNotFound = errors.New("cart: item not found")

// CartRepository persists carts and keeps their derived prices honest: every
// mutation reprices the affected lines through the calculator and stores the
// aggregator's grand total, since this service is authoritative at checkout.
type CartRepository struct {
	db      *gorm.DB
	catalog *catalogRepo.CatalogRepository
}

func NewCartRepository(db *gorm.DB) *CartRepository {
	return &CartRepository{db: db, catalog: catalogRepo.NewCatalogRepository(db)}
}

// Get loads (or creates) the cart for a session, items and products included.
func (r *CartRepository) Get(sessionID string) (*cartEntity.Cart, error) {
	var c cartEntity.Cart
	err := r.db.Preload("Items.Product.Variants").Preload("Items.Product.WarrantyOptions").
		Where("session_id = ?", sessionID).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c = cartEntity.Cart{SessionID: sessionID}
		if err := r.db.Create(&c).Error; err != nil {
			return nil, err
		}
		return &c, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// AddItem adds a product with the given selection and quantity. The selection
// is validated by the calculator first — an incomplete configuration is
// rejected before any cart mutation happens. Adding a product already in the
// cart with the same selection bumps its quantity instead.
func (r *CartRepository) AddItem(sessionID string, productID uint, sel pricing.Selection, quantity int) (*cartEntity.Cart, error) {
	if quantity < 1 {
		quantity = 1
	}
	product, err := r.catalog.ByID(productID)
	if err != nil {
		return nil, fmt.Errorf("load product %d: %w", productID, err)
	}
	if _, err := pricing.Price(product, sel, quantity); err != nil {
		return nil, err
	}

	c, err := r.Get(sessionID)
	if err != nil {
		return nil, err
	}

	merged := false
	for i := range c.Items {
		it := &c.Items[i]
		if it.ProductID == productID &&
			it.SelectedMemory == sel.Memory &&
			it.SelectedStorage == sel.Storage &&
			it.SelectedWarranty == warrantyOrDefault(sel.Warranty) {
			it.Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		c.Items = append(c.Items, cartEntity.LineItem{
			CartID:           c.ID,
			ProductID:        productID,
			SelectedMemory:   sel.Memory,
			SelectedStorage:  sel.Storage,
			SelectedWarranty: warrantyOrDefault(sel.Warranty),
			Quantity:         quantity,
		})
	}
	return r.repriceAndSave(c)
}

// UpdateQuantity sets an item's quantity (minimum 1) and reprices. Crossing
// the bulk threshold flips the line's tier both ways.
func (r *CartRepository) UpdateQuantity(sessionID string, itemID uint, quantity int) (*cartEntity.Cart, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("cart: quantity must be >= 1")
	}
	c, err := r.Get(sessionID)
	if err != nil {
		return nil, err
	}
	found := false
	for i := range c.Items {
		if c.Items[i].ID == itemID {
			c.Items[i].Quantity = quantity
			found = true
			break
		}
	}
	if !found {
		return nil, ErrItemNotFound
	}
	return r.repriceAndSave(c)
}

// RemoveItem deletes one line.
func (r *CartRepository) RemoveItem(sessionID string, itemID uint) (*cartEntity.Cart, error) {
	c, err := r.Get(sessionID)
	if err != nil {
		return nil, err
	}
	kept := c.Items[:0]
	found := false
	for _, it := range c.Items {
		if it.ID == itemID {
			found = true
			continue
		}
		kept = append(kept, it)
	}
	if !found {
		return nil, ErrItemNotFound
	}
	if err := r.db.Delete(&cartEntity.LineItem{}, itemID).Error; err != nil {
		return nil, err
	}
	c.Items = kept
	return r.repriceAndSave(c)
}

// Clear empties the cart.
func (r *CartRepository) Clear(sessionID string) (*cartEntity.Cart, error) {
	c, err := r.Get(sessionID)
	if err != nil {
		return nil, err
	}
	if err := r.db.Where("cart_id = ?", c.ID).Delete(&cartEntity.LineItem{}).Error; err != nil {
		return nil, err
	}
	c.Items = nil
	return r.repriceAndSave(c)
}

// Totals recomputes the aggregate for a loaded cart.
func (r *CartRepository) Totals(c *cartEntity.Cart) pricing.Totals {
	lines := make([]pricing.PricedLine, 0, len(c.Items))
	for _, it := range c.Items {
		lines = append(lines, pricing.PricedLine{
			Product:   it.Product,
			UnitPrice: it.UnitPrice,
			Quantity:  it.Quantity,
		})
	}
	return pricing.Aggregate(lines)
}

func (r *CartRepository) repriceAndSave(c *cartEntity.Cart) (*cartEntity.Cart, error) {
	for i := range c.Items {
		it := &c.Items[i]
		product := it.Product
		if product == nil {
			loaded, err := r.catalog.ByID(it.ProductID)
			if err != nil {
				return nil, fmt.Errorf("load product %d: %w", it.ProductID, err)
			}
			product = loaded
			it.Product = loaded
		}
		quote, err := pricing.Price(product, pricing.Selection{
			Memory:   it.SelectedMemory,
			Storage:  it.SelectedStorage,
			Warranty: it.SelectedWarranty,
		}, it.Quantity)
		if err != nil {
			return nil, err
		}
		it.UnitPrice = quote.UnitPrice
		it.TotalPrice = quote.LineTotal
		it.Tier = quote.Tier
	}
	// Products are read-only reference data — persist lines without touching
	// the association.
	for i := range c.Items {
		it := &c.Items[i]
		it.CartID = c.ID
		if err := r.db.Omit("Product").Save(it).Error; err != nil {
			return nil, err
		}
	}
	c.TotalAmount = r.Totals(c).GrandTotal
	if err := r.db.Model(c).Update("total_amount", c.TotalAmount).Error; err != nil {
		return nil, err
	}
	return c, nil
}

func warrantyOrDefault(w string) string {
	if w == "" {
		return "default"
	}
	return w
}
