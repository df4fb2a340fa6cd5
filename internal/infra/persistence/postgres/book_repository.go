package postgres

import (
	"context"

	"bookbridge/internal/domain/entity"
	domainerrors "bookbridge/internal/domain/errors"
	"bookbridge/internal/domain/repository"
	"bookbridge/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// bookRepository implements the repository.BookRepository interface using GORM.
type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository is the constructor for bookRepository.
func NewBookRepository(db *gorm.DB) repository.BookRepository {
	return &bookRepository{
		db: db,
	}
}

// FindByID retrieves a single book by its unique ID, regardless of is_active.
func (repo *bookRepository) FindByID(ctx context.Context, id int64) (*entity.Book, error) {
	return repo.findOne(ctx, repo.db.WithContext(ctx).Where("id = ?", id))
}

// FindActiveByID retrieves a single active book by its unique ID.
func (repo *bookRepository) FindActiveByID(ctx context.Context, id int64) (*entity.Book, error) {
	return repo.findOne(ctx, repo.db.WithContext(ctx).Where("id = ? AND is_active = ?", id, true))
}

func (repo *bookRepository) findOne(_ context.Context, tx *gorm.DB) (*entity.Book, error) {
	var bookM model.BookModel

	if err := tx.
		Preload("Category").
		Preload("Seller").
		First(&bookM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrBookNotFound
		}

		return nil, errors.Wrap(err, "failed to find book")
	}

	return toBookDomain(&bookM), nil
}

// List retrieves books matching the filter, most recent first.
func (repo *bookRepository) List(ctx context.Context, filter repository.BookFilter) ([]*entity.Book, error) {
	tx := repo.db.WithContext(ctx).Model(&model.BookModel{})

	if !filter.IncludeInactive {
		tx = tx.Where("is_active = ?", true)
	}
	if filter.CategoryID != nil {
		tx = tx.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.SellerID != nil {
		tx = tx.Where("seller_id = ?", *filter.SellerID)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		tx = tx.Where("title ILIKE ? OR author ILIKE ? OR isbn ILIKE ?", pattern, pattern, pattern)
	}

	var bookModels []*model.BookModel
	if err := tx.
		Preload("Category").
		Order("created_at DESC").
		Find(&bookModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list books")
	}

	books := make([]*entity.Book, 0, len(bookModels))
	for _, bookM := range bookModels {
		books = append(books, toBookDomain(bookM))
	}

	return books, nil
}

// Create persists a new book listing.
func (repo *bookRepository) Create(ctx context.Context, book *entity.Book) error {
	bookM := fromBookDomain(book)

	if err := repo.db.WithContext(ctx).Create(bookM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrISBNAlreadyExists.WrapMessage("isbn already exists")
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrCategoryNotFound.WrapMessage("invalid category reference")
		}
		if isCheckConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("price and stock must be non-negative")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create book")
	}

	book.ID = bookM.ID
	book.CreatedAt = bookM.CreatedAt
	book.UpdatedAt = bookM.UpdatedAt

	return nil
}

// Update modifies an existing book listing.
func (repo *bookRepository) Update(ctx context.Context, book *entity.Book) error {
	bookM := fromBookDomain(book)

	// Save would skip zero values through struct updates; use a full save on
	// the mapped model so stock and the is_active flag round-trip correctly.
	if err := repo.db.WithContext(ctx).Save(bookM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrISBNAlreadyExists.WrapMessage("isbn already exists")
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrCategoryNotFound.WrapMessage("invalid category reference")
		}
		if isCheckConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("price and stock must be non-negative")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to update book")
	}

	book.UpdatedAt = bookM.UpdatedAt

	return nil
}

// Delete removes a book listing.
func (repo *bookRepository) Delete(ctx context.Context, id int64) error {
	result := repo.db.WithContext(ctx).Delete(&model.BookModel{}, id)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete book")
	}
	if result.RowsAffected == 0 {
		return repository.ErrBookNotFound
	}

	return nil
}

// DecrementStock atomically subtracts quantity from the book's stock with a
// conditional update. The stock check and the write are one statement, so two
// concurrent orders can never both spend the same copies: the second update
// simply matches no row once stock runs out.
func (repo *bookRepository) DecrementStock(ctx context.Context, bookID int64, quantity int) error {
	result := repo.db.WithContext(ctx).
		Model(&model.BookModel{}).
		Where("id = ? AND is_active = ? AND stock_quantity >= ?", bookID, true, quantity).
		UpdateColumn("stock_quantity", gorm.Expr("stock_quantity - ?", quantity))
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to decrement stock")
	}

	if result.RowsAffected == 0 {
		// Distinguish an unknown/inactive book from one that is merely out of stock.
		var count int64
		if err := repo.db.WithContext(ctx).
			Model(&model.BookModel{}).
			Where("id = ? AND is_active = ?", bookID, true).
			Count(&count).Error; err != nil {
			return domainerrors.NewDatabaseExecuteError(err, "failed to check book existence")
		}
		if count == 0 {
			return repository.ErrBookNotFound
		}

		return repository.ErrInsufficientStock
	}

	return nil
}

// --- Mapper Functions ---

// toBookDomain converts a GORM BookModel to a domain Book entity.
func toBookDomain(data *model.BookModel) *entity.Book {
	if data == nil {
		return nil
	}

	isbn := ""
	if data.ISBN != nil {
		isbn = *data.ISBN
	}

	return &entity.Book{
		ID:            data.ID,
		Title:         data.Title,
		Author:        data.Author,
		ISBN:          isbn,
		Description:   data.Description,
		Price:         data.Price,
		StockQuantity: data.StockQuantity,
		CategoryID:    data.CategoryID,
		Category:      toCategoryDomain(data.Category),
		SellerID:      data.SellerID,
		Seller:        toUserDomain(data.Seller),
		IsActive:      data.IsActive,
		CreatedAt:     data.CreatedAt,
		UpdatedAt:     data.UpdatedAt,
	}
}

// fromBookDomain converts a domain Book entity to a GORM BookModel.
func fromBookDomain(data *entity.Book) *model.BookModel {
	if data == nil {
		return nil
	}

	// Empty ISBN persists as NULL so the unique index ignores it.
	var isbn *string
	if data.ISBN != "" {
		value := data.ISBN
		isbn = &value
	}

	return &model.BookModel{
		ID:            data.ID,
		Title:         data.Title,
		Author:        data.Author,
		ISBN:          isbn,
		Description:   data.Description,
		Price:         data.Price,
		StockQuantity: data.StockQuantity,
		CategoryID:    data.CategoryID,
		SellerID:      data.SellerID,
		IsActive:      data.IsActive,
	}
}
