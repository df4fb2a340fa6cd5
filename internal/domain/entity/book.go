package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Book is a listing owned by a seller. StockQuantity must never go negative;
// it is decremented only through the order placement workflow's conditional
// stock update.
type Book struct {
	ID            int64           // Unique identifier for the book.
	Title         string          // Book title.
	Author        string          // Author name.
	ISBN          string          // Optional ISBN; unique when present.
	Description   string          // Free-form description.
	Price         decimal.Decimal // Listing price, non-negative, two decimal places.
	StockQuantity int             // Available inventory count, non-negative.
	CategoryID    *int64          // Optional reference to a Category.
	Category      *Category       // Loaded category, nil when not preloaded or detached.
	SellerID      int64           // The seller who owns this listing.
	Seller        *User           // Loaded seller, nil when not preloaded.
	IsActive      bool            // Inactive books are hidden from public views.
	CreatedAt     time.Time       // Timestamp of when this listing was created.
	UpdatedAt     time.Time       // Timestamp of the last modification.
}

// InStock reports whether at least one copy is available.
func (b *Book) InStock() bool {
	return b.StockQuantity > 0
}
