package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// BookModel mirrors the 'books' table. The stock check constraint is the last
// line of defense; the repository's conditional decrement is the primary one.
type BookModel struct {
	ID            int64           `gorm:"primaryKey;autoIncrement"`
	Title         string          `gorm:"type:varchar(200);not null;index:idx_books_title_author"`
	Author        string          `gorm:"type:varchar(100);not null;index:idx_books_title_author"`
	ISBN          *string         `gorm:"type:varchar(20);unique"`
	Description   string          `gorm:"type:text"`
	Price         decimal.Decimal `gorm:"type:decimal(10,2);not null;check:price >= 0"`
	StockQuantity int             `gorm:"not null;default:0;check:stock_quantity >= 0"`
	CategoryID    *int64          `gorm:"index"`
	Category      *CategoryModel  `gorm:"foreignKey:CategoryID"`
	SellerID      int64           `gorm:"not null;index"`
	Seller        *UserModel      `gorm:"foreignKey:SellerID"`
	IsActive      bool            `gorm:"not null;default:true"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName explicitly sets the table name for GORM.
func (BookModel) TableName() string {
	return "books"
}
