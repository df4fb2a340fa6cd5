package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderModel mirrors the 'orders' table. Items are exclusively owned: deleting
// an order cascades to its order_items rows.
type OrderModel struct {
	ID              int64           `gorm:"primaryKey;autoIncrement"`
	CustomerID      int64           `gorm:"not null;index"`
	Customer        *UserModel      `gorm:"foreignKey:CustomerID"`
	Status          string          `gorm:"type:varchar(20);not null;default:pending"`
	TotalAmount     decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	ShippingAddress string          `gorm:"type:text;not null"`
	Items           []OrderItemModel `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName explicitly sets the table name for GORM.
func (OrderModel) TableName() string {
	return "orders"
}

// OrderItemModel mirrors the 'order_items' table. A book may appear at most
// once per order; price is the placement-time snapshot.
type OrderItemModel struct {
	ID        int64           `gorm:"primaryKey;autoIncrement"`
	OrderID   int64           `gorm:"not null;uniqueIndex:idx_order_items_order_book"`
	BookID    int64           `gorm:"not null;uniqueIndex:idx_order_items_order_book"`
	Book      *BookModel      `gorm:"foreignKey:BookID"`
	Quantity  int             `gorm:"not null;check:quantity >= 1"`
	Price     decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Subtotal  decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (OrderItemModel) TableName() string {
	return "order_items"
}
