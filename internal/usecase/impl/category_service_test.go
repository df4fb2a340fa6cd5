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

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// categoryServiceFixtures holds all test dependencies for category service tests.
type categoryServiceFixtures struct {
	service      usecase.CategoryUsecase
	categoryRepo *mockRepo.MockCategoryRepository
}

func createTestCategoryService(t *testing.T) categoryServiceFixtures {
	categoryRepo := mockRepo.NewMockCategoryRepository(t)
	service := NewCategoryService(categoryRepo, slog.New(slog.DiscardHandler))

	return categoryServiceFixtures{
		service:      service,
		categoryRepo: categoryRepo,
	}
}

func TestCategoryService_ListCategories(t *testing.T) {
	fx := createTestCategoryService(t)

	ctx := context.Background()
	fx.categoryRepo.EXPECT().List(ctx).Return([]*entity.Category{
		{ID: 1, Name: "Fantasy"},
		{ID: 2, Name: "Science"},
	}, nil)

	output, err := fx.service.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, output, 2)
	assert.Equal(t, "Fantasy", output[0].Name)
}

func TestCategoryService_CreateCategory_AdminOnly(t *testing.T) {
	ctx := context.Background()
	input := &usecase.CreateCategoryInput{Name: "Fantasy"}

	t.Run("seller forbidden", func(t *testing.T) {
		fx := createTestCategoryService(t)

		_, err := fx.service.CreateCategory(ctx,
			usecase.Actor{UserID: 20, Role: entity.RoleSeller}, input)
		require.Error(t, err)

		var appErr domainerrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, domainerrors.ErrForbidden.ErrorCode(), appErr.ErrorCode())
	})

	t.Run("admin creates", func(t *testing.T) {
		fx := createTestCategoryService(t)
		fx.categoryRepo.EXPECT().
			Create(ctx, mock.AnythingOfType("*entity.Category")).
			RunAndReturn(func(_ context.Context, category *entity.Category) error {
				category.ID = 1

				return nil
			})

		output, err := fx.service.CreateCategory(ctx,
			usecase.Actor{UserID: 1, Role: entity.RoleAdmin}, input)
		require.NoError(t, err)
		assert.Equal(t, int64(1), output.ID)
		assert.Equal(t, "Fantasy", output.Name)
	})
}

func TestCategoryService_UpdateCategory(t *testing.T) {
	fx := createTestCategoryService(t)

	ctx := context.Background()
	fx.categoryRepo.EXPECT().FindByID(ctx, int64(1)).Return(&entity.Category{ID: 1, Name: "Fantazy"}, nil)
	fx.categoryRepo.EXPECT().
		Update(ctx, mock.AnythingOfType("*entity.Category")).
		RunAndReturn(func(_ context.Context, category *entity.Category) error {
			assert.Equal(t, "Fantasy", category.Name)

			return nil
		})

	output, err := fx.service.UpdateCategory(ctx,
		usecase.Actor{UserID: 1, Role: entity.RoleAdmin}, 1,
		&usecase.UpdateCategoryInput{Name: "Fantasy"})
	require.NoError(t, err)
	assert.Equal(t, "Fantasy", output.Name)
}

func TestCategoryService_DeleteCategory_NotFound(t *testing.T) {
	fx := createTestCategoryService(t)

	ctx := context.Background()
	fx.categoryRepo.EXPECT().Delete(ctx, int64(42)).Return(repository.ErrCategoryNotFound)

	err := fx.service.DeleteCategory(ctx, usecase.Actor{UserID: 1, Role: entity.RoleAdmin}, 42)
	require.Error(t, err)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domainerrors.ErrCategoryNotFound.ErrorCode(), appErr.ErrorCode())
}
