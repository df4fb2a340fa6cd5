package usecase

import (
	"context"
	"time"

	"bookbridge/internal/domain/entity"

	"github.com/shopspring/decimal"
)

// ListBooksInput carries the optional catalog filters. MyBooks restricts the
// listing to the acting seller's own books, including inactive ones.
type ListBooksInput struct {
	CategoryID *int64
	SellerID   *int64
	Search     string
	MyBooks    bool
}

// CreateBookInput defines the data required to create a listing.
type CreateBookInput struct {
	Title         string          `json:"title" validate:"required,max=200"`
	Author        string          `json:"author" validate:"required,max=100"`
	ISBN          string          `json:"isbn" validate:"omitempty,max=20"`
	Description   string          `json:"description" validate:"omitempty,max=5000"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stock_quantity" validate:"gte=0"`
	CategoryID    *int64          `json:"category_id"`
}

// UpdateBookInput defines the data for updating a listing. All fields are
// written; callers send the full representation.
type UpdateBookInput struct {
	Title         string          `json:"title" validate:"required,max=200"`
	Author        string          `json:"author" validate:"required,max=100"`
	ISBN          string          `json:"isbn" validate:"omitempty,max=20"`
	Description   string          `json:"description" validate:"omitempty,max=5000"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stock_quantity" validate:"gte=0"`
	CategoryID    *int64          `json:"category_id"`
	IsActive      *bool           `json:"is_active"`
}

// BookOutput is the outward representation of a listing. Price is serialized
// as a two-decimal string to keep the wire format stable.
type BookOutput struct {
	ID            int64           `json:"id"`
	Title         string          `json:"title"`
	Author        string          `json:"author"`
	ISBN          string          `json:"isbn,omitempty"`
	Description   string          `json:"description,omitempty"`
	Price         string          `json:"price"`
	StockQuantity int             `json:"stock_quantity"`
	InStock       bool            `json:"in_stock"`
	CategoryID    *int64          `json:"category_id"`
	Category      *CategoryOutput `json:"category,omitempty"`
	SellerID      int64           `json:"seller_id"`
	SellerName    string          `json:"seller_name,omitempty"`
	IsActive      bool            `json:"is_active"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// NewBookOutput maps a domain book to its outward representation.
func NewBookOutput(book *entity.Book) *BookOutput {
	if book == nil {
		return nil
	}

	sellerName := ""
	if book.Seller != nil {
		sellerName = book.Seller.Name
	}

	return &BookOutput{
		ID:            book.ID,
		Title:         book.Title,
		Author:        book.Author,
		ISBN:          book.ISBN,
		Description:   book.Description,
		Price:         book.Price.StringFixed(2),
		StockQuantity: book.StockQuantity,
		InStock:       book.InStock(),
		CategoryID:    book.CategoryID,
		Category:      NewCategoryOutput(book.Category),
		SellerID:      book.SellerID,
		SellerName:    sellerName,
		IsActive:      book.IsActive,
		CreatedAt:     book.CreatedAt,
		UpdatedAt:     book.UpdatedAt,
	}
}

// BookUsecase defines catalog browsing and listing management operations.
// Reads are public; writes require the seller role, and a seller may only
// manage their own listings. Admin may manage any listing.
type BookUsecase interface {
	ListBooks(ctx context.Context, actor Actor, input *ListBooksInput) ([]*BookOutput, error)
	GetBook(ctx context.Context, actor Actor, id int64) (*BookOutput, error)
	CreateBook(ctx context.Context, actor Actor, input *CreateBookInput) (*BookOutput, error)
	UpdateBook(ctx context.Context, actor Actor, id int64, input *UpdateBookInput) (*BookOutput, error)
	DeleteBook(ctx context.Context, actor Actor, id int64) error
}
