package cart

import (
	"time"

	catalogEntity "brightlaptop.GO/model/entity/catalog"
)

// Cart is the server-side cart for one session. The cart service is
// authoritative for totals at checkout time, so TotalAmount is recomputed and
// stored on every mutation.
type Cart struct {
	ID          uint       `gorm:"column:cart_id;primaryKey;autoIncrement" json:"-"`
	SessionID   string     `gorm:"column:session_id;size:64;uniqueIndex" json:"sessionId"`
	Items       []LineItem `gorm:"foreignKey:CartID" json:"items"`
	TotalAmount float64    `gorm:"column:total_amount;type:decimal(14,2);not null;default:0" json:"totalAmount"`
	CreatedAt   time.Time  `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt   time.Time  `gorm:"column:updated_at" json:"updatedAt"`
}

func (Cart) TableName() string {
	return "checkout_cart"
}

// LineItem is one product entry in a cart, with its own selected
// configuration, warranty and quantity. UnitPrice and TotalPrice are derived
// by the price calculator on every mutation, never trusted from the client.
type LineItem struct {
	ID               uint                   `gorm:"column:item_id;primaryKey;autoIncrement" json:"id"`
	CartID           uint                   `gorm:"column:cart_id;index" json:"-"`
	ProductID        uint                   `gorm:"column:product_id;index;not null" json:"productId"`
	Product          *catalogEntity.Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	SelectedMemory   string                 `gorm:"column:selected_memory;size:32;not null" json:"selectedMemory"`
	SelectedStorage  string                 `gorm:"column:selected_storage;size:32;not null" json:"selectedStorage"`
	SelectedWarranty string                 `gorm:"column:selected_warranty;size:64;not null;default:default" json:"selectedWarranty"`
	Quantity         int                    `gorm:"column:quantity;not null;default:1" json:"quantity"`
	UnitPrice        float64                `gorm:"column:unit_price;type:decimal(12,2);not null;default:0" json:"unitPrice"`
	TotalPrice       float64                `gorm:"column:total_price;type:decimal(14,2);not null;default:0" json:"totalPrice"`
	Tier             string                 `gorm:"column:tier;size:8;not null;default:retail" json:"tier"`
}

func (LineItem) TableName() string {
	return "checkout_cart_item"
}
