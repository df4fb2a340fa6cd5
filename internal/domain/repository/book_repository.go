package repository

import (
	"context"
	"errors"

	"bookbridge/internal/domain/entity"
)

// ErrBookNotFound is a domain-specific error returned when a book is not found.
var ErrBookNotFound = errors.New("book not found")

// ErrInsufficientStock is returned by DecrementStock when the remaining stock
// is lower than the requested quantity.
var ErrInsufficientStock = errors.New("insufficient stock")

// BookFilter narrows a book listing query.
type BookFilter struct {
	// CategoryID restricts results to one category when set.
	CategoryID *int64

	// SellerID restricts results to one seller's listings when set.
	SellerID *int64

	// Search matches title, author or ISBN when non-empty.
	Search string

	// IncludeInactive also returns inactive listings. Only the seller's own
	// view sets this; public listings never do.
	IncludeInactive bool
}

// BookRepository defines the standard operations for book persistence.
type BookRepository interface {
	// FindByID retrieves a single book by its unique ID, regardless of the
	// is_active flag.
	FindByID(ctx context.Context, id int64) (*entity.Book, error)

	// FindActiveByID retrieves a single active book by its unique ID.
	FindActiveByID(ctx context.Context, id int64) (*entity.Book, error)

	// List retrieves books matching the filter, most recent first.
	List(ctx context.Context, filter BookFilter) ([]*entity.Book, error)

	// Create persists a new book listing.
	Create(ctx context.Context, book *entity.Book) error

	// Update modifies an existing book listing.
	Update(ctx context.Context, book *entity.Book) error

	// Delete removes a book listing.
	Delete(ctx context.Context, id int64) error

	// DecrementStock atomically subtracts quantity from the book's stock,
	// but only if enough stock remains. It returns ErrInsufficientStock when
	// the conditional update matches no row for an existing active book, and
	// ErrBookNotFound when the book does not exist or is inactive. The stock
	// count can never go negative through this operation.
	DecrementStock(ctx context.Context, bookID int64, quantity int) error
}
