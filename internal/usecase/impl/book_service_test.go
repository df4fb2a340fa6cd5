package impl

import (
	"context"
	"log/slog"
	"testing"

	"bookbridge/internal/domain/entity"
	domainerrors "bookbridge/internal/domain/errors"
	"bookbridge/internal/domain/repository"
	mockRepo "bookbridge/internal/mocks/repository"
	"bookbridge/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// bookServiceFixtures holds all test dependencies for book service tests.
type bookServiceFixtures struct {
	service  usecase.BookUsecase
	bookRepo *mockRepo.MockBookRepository
}

func createTestBookService(t *testing.T) bookServiceFixtures {
	bookRepo := mockRepo.NewMockBookRepository(t)
	service := NewBookService(bookRepo, slog.New(slog.DiscardHandler))

	return bookServiceFixtures{
		service:  service,
		bookRepo: bookRepo,
	}
}

func TestBookService_ListBooks_PublicFilters(t *testing.T) {
	fx := createTestBookService(t)

	ctx := context.Background()
	categoryID := int64(3)

	fx.bookRepo.EXPECT().
		List(ctx, mock.AnythingOfType("repository.BookFilter")).
		RunAndReturn(func(_ context.Context, filter repository.BookFilter) ([]*entity.Book, error) {
			require.NotNil(t, filter.CategoryID)
			assert.Equal(t, int64(3), *filter.CategoryID)
			assert.Equal(t, "tolkien", filter.Search)
			assert.False(t, filter.IncludeInactive)

			return []*entity.Book{activeBook(1, 20, "10.00", 5)}, nil
		})

	output, err := fx.service.ListBooks(ctx, usecase.Actor{}, &usecase.ListBooksInput{
		CategoryID: &categoryID,
		Search:     "tolkien",
	})
	require.NoError(t, err)
	require.Len(t, output, 1)
	assert.Equal(t, "10.00", output[0].Price)
	assert.True(t, output[0].InStock)
}

func TestBookService_ListBooks_MyBooks(t *testing.T) {
	ctx := context.Background()

	t.Run("customer forbidden", func(t *testing.T) {
		fx := createTestBookService(t)

		_, err := fx.service.ListBooks(ctx,
			usecase.Actor{UserID: 7, Role: entity.RoleCustomer},
			&usecase.ListBooksInput{MyBooks: true})
		require.Error(t, err)

		var appErr domainerrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, domainerrors.ErrForbidden.ErrorCode(), appErr.ErrorCode())
	})

	t.Run("seller sees full inventory", func(t *testing.T) {
		fx := createTestBookService(t)

		fx.bookRepo.EXPECT().
			List(ctx, mock.AnythingOfType("repository.BookFilter")).
			RunAndReturn(func(_ context.Context, filter repository.BookFilter) ([]*entity.Book, error) {
				require.NotNil(t, filter.SellerID)
				assert.Equal(t, int64(20), *filter.SellerID)
				assert.True(t, filter.IncludeInactive)

				return []*entity.Book{}, nil
			})

		_, err := fx.service.ListBooks(ctx,
			usecase.Actor{UserID: 20, Role: entity.RoleSeller},
			&usecase.ListBooksInput{MyBooks: true})
		require.NoError(t, err)
	})
}

func TestBookService_CreateBook(t *testing.T) {
	ctx := context.Background()

	t.Run("customer forbidden", func(t *testing.T) {
		fx := createTestBookService(t)

		_, err := fx.service.CreateBook(ctx,
			usecase.Actor{UserID: 7, Role: entity.RoleCustomer},
			&usecase.CreateBookInput{Title: "T", Author: "A", Price: decimal.RequireFromString("1.00")})
		require.Error(t, err)

		var appErr domainerrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, domainerrors.ErrForbidden.ErrorCode(), appErr.ErrorCode())
	})

	t.Run("negative price rejected", func(t *testing.T) {
		fx := createTestBookService(t)

		_, err := fx.service.CreateBook(ctx,
			usecase.Actor{UserID: 20, Role: entity.RoleSeller},
			&usecase.CreateBookInput{Title: "T", Author: "A", Price: decimal.RequireFromString("-1.00")})
		require.Error(t, err)
	})

	t.Run("seller becomes owner", func(t *testing.T) {
		fx := createTestBookService(t)

		fx.bookRepo.EXPECT().
			Create(ctx, mock.AnythingOfType("*entity.Book")).
			RunAndReturn(func(_ context.Context, book *entity.Book) error {
				assert.Equal(t, int64(20), book.SellerID)
				assert.True(t, book.IsActive)
				book.ID = 1

				return nil
			})

		output, err := fx.service.CreateBook(ctx,
			usecase.Actor{UserID: 20, Role: entity.RoleSeller},
			&usecase.CreateBookInput{
				Title:         "The Hobbit",
				Author:        "Tolkien",
				Price:         decimal.RequireFromString("19.99"),
				StockQuantity: 10,
			})
		require.NoError(t, err)
		assert.Equal(t, int64(1), output.ID)
		assert.Equal(t, int64(20), output.SellerID)
	})
}

func TestBookService_UpdateBook_Ownership(t *testing.T) {
	ctx := context.Background()
	input := &usecase.UpdateBookInput{
		Title:  "Updated",
		Author: "Tolkien",
		Price:  decimal.RequireFromString("9.99"),
	}

	t.Run("other seller forbidden", func(t *testing.T) {
		fx := createTestBookService(t)
		fx.bookRepo.EXPECT().FindByID(ctx, int64(1)).Return(activeBook(1, 20, "10.00", 5), nil)

		_, err := fx.service.UpdateBook(ctx,
			usecase.Actor{UserID: 99, Role: entity.RoleSeller}, 1, input)
		require.Error(t, err)

		var appErr domainerrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, domainerrors.ErrForbidden.ErrorCode(), appErr.ErrorCode())
	})

	t.Run("admin may update any listing", func(t *testing.T) {
		fx := createTestBookService(t)
		fx.bookRepo.EXPECT().FindByID(ctx, int64(1)).Return(activeBook(1, 20, "10.00", 5), nil)
		fx.bookRepo.EXPECT().
			Update(ctx, mock.AnythingOfType("*entity.Book")).
			RunAndReturn(func(_ context.Context, book *entity.Book) error {
				assert.Equal(t, "Updated", book.Title)
				assert.Equal(t, "9.99", book.Price.StringFixed(2))

				return nil
			})

		output, err := fx.service.UpdateBook(ctx,
			usecase.Actor{UserID: 1, Role: entity.RoleAdmin}, 1, input)
		require.NoError(t, err)
		assert.Equal(t, "Updated", output.Title)
	})

	t.Run("deactivation hides the listing", func(t *testing.T) {
		fx := createTestBookService(t)
		inactive := false
		deactivate := &usecase.UpdateBookInput{
			Title:    "Updated",
			Author:   "Tolkien",
			Price:    decimal.RequireFromString("9.99"),
			IsActive: &inactive,
		}

		fx.bookRepo.EXPECT().FindByID(ctx, int64(1)).Return(activeBook(1, 20, "10.00", 5), nil)
		fx.bookRepo.EXPECT().
			Update(ctx, mock.AnythingOfType("*entity.Book")).
			RunAndReturn(func(_ context.Context, book *entity.Book) error {
				assert.False(t, book.IsActive)

				return nil
			})

		output, err := fx.service.UpdateBook(ctx,
			usecase.Actor{UserID: 20, Role: entity.RoleSeller}, 1, deactivate)
		require.NoError(t, err)
		assert.False(t, output.IsActive)
	})
}

func TestBookService_DeleteBook_Ownership(t *testing.T) {
	ctx := context.Background()

	t.Run("owner deletes", func(t *testing.T) {
		fx := createTestBookService(t)
		fx.bookRepo.EXPECT().FindByID(ctx, int64(1)).Return(activeBook(1, 20, "10.00", 5), nil)
		fx.bookRepo.EXPECT().Delete(ctx, int64(1)).Return(nil)

		err := fx.service.DeleteBook(ctx, usecase.Actor{UserID: 20, Role: entity.RoleSeller}, 1)
		require.NoError(t, err)
	})

	t.Run("stranger forbidden", func(t *testing.T) {
		fx := createTestBookService(t)
		fx.bookRepo.EXPECT().FindByID(ctx, int64(1)).Return(activeBook(1, 20, "10.00", 5), nil)

		err := fx.service.DeleteBook(ctx, usecase.Actor{UserID: 99, Role: entity.RoleSeller}, 1)
		require.Error(t, err)
	})
}

func TestBookService_GetBook_NotFound(t *testing.T) {
	fx := createTestBookService(t)

	ctx := context.Background()
	fx.bookRepo.EXPECT().FindByID(ctx, int64(42)).Return(nil, repository.ErrBookNotFound)

	output, err := fx.service.GetBook(ctx, usecase.Actor{}, 42)
	require.Error(t, err)
	assert.Nil(t, output)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domainerrors.ErrBookNotFound.ErrorCode(), appErr.ErrorCode())
}

func TestBookService_GetBook_InactiveVisibility(t *testing.T) {
	ctx := context.Background()

	inactive := func() *entity.Book {
		book := activeBook(5, 20, "15.00", 3)
		book.IsActive = false

		return book
	}

	t.Run("hidden from anonymous callers", func(t *testing.T) {
		fx := createTestBookService(t)
		fx.bookRepo.EXPECT().FindByID(ctx, int64(5)).Return(inactive(), nil)

		output, err := fx.service.GetBook(ctx, usecase.Actor{}, 5)
		require.Error(t, err)
		assert.Nil(t, output)

		var appErr domainerrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, domainerrors.ErrBookNotFound.ErrorCode(), appErr.ErrorCode())
	})

	t.Run("hidden from other sellers", func(t *testing.T) {
		fx := createTestBookService(t)
		fx.bookRepo.EXPECT().FindByID(ctx, int64(5)).Return(inactive(), nil)

		_, err := fx.service.GetBook(ctx, usecase.Actor{UserID: 99, Role: entity.RoleSeller}, 5)
		require.Error(t, err)
	})

	t.Run("visible to the owning seller", func(t *testing.T) {
		fx := createTestBookService(t)
		fx.bookRepo.EXPECT().FindByID(ctx, int64(5)).Return(inactive(), nil)

		output, err := fx.service.GetBook(ctx, usecase.Actor{UserID: 20, Role: entity.RoleSeller}, 5)
		require.NoError(t, err)
		assert.False(t, output.IsActive)
	})

	t.Run("visible to admin", func(t *testing.T) {
		fx := createTestBookService(t)
		fx.bookRepo.EXPECT().FindByID(ctx, int64(5)).Return(inactive(), nil)

		_, err := fx.service.GetBook(ctx, usecase.Actor{UserID: 1, Role: entity.RoleAdmin}, 5)
		require.NoError(t, err)
	})
}
