// internal/models/order.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// Order is a single purchase attempt against one product. Seller and
// total_amount are copied from the product at creation time and never follow
// the product afterwards; ProductID is a weak reference that survives product
// deletion so the order keeps its historical data.
type Order struct {
	BaseModel
	OrderNo  string     `json:"order_no" gorm:"uniqueIndex;size:50;not null"`
	BuyerID  uuid.UUID  `json:"buyer_id" gorm:"type:uuid;not null;index"`
	SellerID uuid.UUID  `json:"seller_id" gorm:"type:uuid;not null;index"`
	ProductID *uuid.UUID `json:"product_id" gorm:"type:uuid;index"`

	TotalAmount float64     `json:"total_amount" gorm:"type:decimal(10,2);not null"`
	Status      OrderStatus `json:"status" gorm:"type:varchar(20);default:'pending_payment';index"`

	ReceiverName    string `json:"receiver_name" gorm:"size:100;not null"`
	ReceiverPhone   string `json:"receiver_phone" gorm:"size:20;not null"`
	ReceiverAddress string `json:"receiver_address" gorm:"type:text;not null"`

	ShippingCompany string     `json:"shipping_company" gorm:"size:100"`
	ShippingNo      string     `json:"shipping_no" gorm:"size:100"`
	ShippedAt       *time.Time `json:"shipped_at"`

	PaymentMethod    string     `json:"payment_method" gorm:"size:50"`
	PaymentReference string     `json:"payment_reference" gorm:"size:255"`
	PaidAt           *time.Time `json:"paid_at"`

	CompletedAt *time.Time `json:"completed_at"`

	BuyerNote  string `json:"buyer_note" gorm:"type:text"`
	SellerNote string `json:"seller_note" gorm:"type:text"`

	// Relationships
	Buyer   User     `json:"buyer,omitempty" gorm:"foreignKey:BuyerID"`
	Seller  User     `json:"seller,omitempty" gorm:"foreignKey:SellerID"`
	Product *Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}

func (Order) TableName() string {
	return "orders"
}

// IsParticipant reports whether the given user is the buyer or the seller.
func (o *Order) IsParticipant(userID uuid.UUID) bool {
	return o.BuyerID == userID || o.SellerID == userID
}

// Counterparty returns the other participant of the order thread.
func (o *Order) Counterparty(userID uuid.UUID) uuid.UUID {
	if o.BuyerID == userID {
		return o.SellerID
	}
	return o.BuyerID
}
