package impl

import (
	"context"
	"log/slog"

	deliverycontext "bookbridge/internal/delivery/context"
	"bookbridge/internal/domain/entity"
	domainerrors "bookbridge/internal/domain/errors"
	"bookbridge/internal/domain/repository"
	"bookbridge/internal/usecase"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// bookService implements the BookUsecase interface.
type bookService struct {
	bookRepo repository.BookRepository
	logger   *slog.Logger
}

// NewBookService is the constructor for bookService.
func NewBookService(bookRepo repository.BookRepository, logger *slog.Logger) usecase.BookUsecase {
	return &bookService{
		bookRepo: bookRepo,
		logger:   logger,
	}
}

func (srv *bookService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListBooks returns the catalog. The public view holds active books only;
// the my-books view returns the acting seller's full inventory.
func (srv *bookService) ListBooks(ctx context.Context, actor usecase.Actor, input *usecase.ListBooksInput) ([]*usecase.BookOutput, error) {
	filter := repository.BookFilter{
		CategoryID: input.CategoryID,
		SellerID:   input.SellerID,
		Search:     input.Search,
	}

	if input.MyBooks {
		if !actor.Role.IsSeller() && !actor.Role.IsAdmin() {
			return nil, domainerrors.ErrForbidden.WrapMessage("only sellers may list their own books")
		}

		sellerID := actor.UserID
		filter.SellerID = &sellerID
		filter.IncludeInactive = true
	}

	books, err := srv.bookRepo.List(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list books")
	}

	outputs := make([]*usecase.BookOutput, 0, len(books))
	for _, book := range books {
		outputs = append(outputs, usecase.NewBookOutput(book))
	}

	return outputs, nil
}

// GetBook returns a single book by ID. Inactive listings are hidden
// from everyone except the owning seller and admins.
func (srv *bookService) GetBook(ctx context.Context, actor usecase.Actor, id int64) (*usecase.BookOutput, error) {
	book, err := srv.bookRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrBookNotFound) {
			return nil, domainerrors.ErrBookNotFound
		}

		return nil, errors.Wrap(err, "failed to find book")
	}

	if !book.IsActive && !srv.canManage(actor, book) {
		return nil, domainerrors.ErrBookNotFound
	}

	return usecase.NewBookOutput(book), nil
}

// CreateBook creates a listing owned by the acting seller.
func (srv *bookService) CreateBook(ctx context.Context, actor usecase.Actor, input *usecase.CreateBookInput) (*usecase.BookOutput, error) {
	if !actor.Role.IsSeller() && !actor.Role.IsAdmin() {
		return nil, domainerrors.ErrForbidden.WrapMessage("only sellers may create books")
	}
	if input.Price.LessThan(decimal.Zero) {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("price must not be negative")
	}

	book := &entity.Book{
		Title:         input.Title,
		Author:        input.Author,
		ISBN:          input.ISBN,
		Description:   input.Description,
		Price:         input.Price,
		StockQuantity: input.StockQuantity,
		CategoryID:    input.CategoryID,
		SellerID:      actor.UserID,
		IsActive:      true,
	}
	if err := srv.bookRepo.Create(ctx, book); err != nil {
		return nil, errors.Wrap(err, "failed to create book")
	}

	srv.log(ctx).Info("Book created",
		slog.Int64("bookID", book.ID),
		slog.Int64("sellerID", book.SellerID),
		slog.String("title", book.Title),
	)

	return usecase.NewBookOutput(book), nil
}

// UpdateBook updates a listing. Only the owning seller or admin may do so.
func (srv *bookService) UpdateBook(ctx context.Context, actor usecase.Actor, id int64, input *usecase.UpdateBookInput) (*usecase.BookOutput, error) {
	book, err := srv.bookRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrBookNotFound) {
			return nil, domainerrors.ErrBookNotFound
		}

		return nil, errors.Wrap(err, "failed to find book")
	}

	if !srv.canManage(actor, book) {
		return nil, domainerrors.ErrForbidden.WrapMessage("only the owning seller may update this book")
	}
	if input.Price.LessThan(decimal.Zero) {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("price must not be negative")
	}

	book.Title = input.Title
	book.Author = input.Author
	book.ISBN = input.ISBN
	book.Description = input.Description
	book.Price = input.Price
	book.StockQuantity = input.StockQuantity
	book.CategoryID = input.CategoryID
	if input.IsActive != nil {
		book.IsActive = *input.IsActive
	}

	if err := srv.bookRepo.Update(ctx, book); err != nil {
		return nil, errors.Wrap(err, "failed to update book")
	}

	return usecase.NewBookOutput(book), nil
}

// DeleteBook removes a listing. Only the owning seller or admin may do so.
func (srv *bookService) DeleteBook(ctx context.Context, actor usecase.Actor, id int64) error {
	book, err := srv.bookRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrBookNotFound) {
			return domainerrors.ErrBookNotFound
		}

		return errors.Wrap(err, "failed to find book")
	}

	if !srv.canManage(actor, book) {
		return domainerrors.ErrForbidden.WrapMessage("only the owning seller may delete this book")
	}

	if err := srv.bookRepo.Delete(ctx, id); err != nil {
		return errors.Wrap(err, "failed to delete book")
	}

	srv.log(ctx).Info("Book deleted", slog.Int64("bookID", id))

	return nil
}

// canManage reports whether the actor owns the listing or is an admin.
// The zero Actor (anonymous caller) can never manage a listing.
func (srv *bookService) canManage(actor usecase.Actor, book *entity.Book) bool {
	return actor.Role.IsAdmin() || (actor.UserID != 0 && book.SellerID == actor.UserID)
}
