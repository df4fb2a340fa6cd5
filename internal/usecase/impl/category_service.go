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
)

// categoryService implements the CategoryUsecase interface.
type categoryService struct {
	categoryRepo repository.CategoryRepository
	logger       *slog.Logger
}

// NewCategoryService is the constructor for categoryService.
func NewCategoryService(categoryRepo repository.CategoryRepository, logger *slog.Logger) usecase.CategoryUsecase {
	return &categoryService{
		categoryRepo: categoryRepo,
		logger:       logger,
	}
}

func (srv *categoryService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListCategories returns every category, name ascending.
func (srv *categoryService) ListCategories(ctx context.Context) ([]*usecase.CategoryOutput, error) {
	categories, err := srv.categoryRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list categories")
	}

	outputs := make([]*usecase.CategoryOutput, 0, len(categories))
	for _, category := range categories {
		outputs = append(outputs, usecase.NewCategoryOutput(category))
	}

	return outputs, nil
}

// GetCategory returns a single category by ID.
func (srv *categoryService) GetCategory(ctx context.Context, id int64) (*usecase.CategoryOutput, error) {
	category, err := srv.categoryRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return nil, domainerrors.ErrCategoryNotFound
		}

		return nil, errors.Wrap(err, "failed to find category")
	}

	return usecase.NewCategoryOutput(category), nil
}

// CreateCategory creates a category. Admin only.
func (srv *categoryService) CreateCategory(ctx context.Context, actor usecase.Actor, input *usecase.CreateCategoryInput) (*usecase.CategoryOutput, error) {
	if !actor.Role.IsAdmin() {
		return nil, domainerrors.ErrForbidden.WrapMessage("only admin may manage categories")
	}

	category := &entity.Category{
		Name:        input.Name,
		Description: input.Description,
	}
	if err := srv.categoryRepo.Create(ctx, category); err != nil {
		return nil, errors.Wrap(err, "failed to create category")
	}

	srv.log(ctx).Info("Category created", slog.Int64("categoryID", category.ID), slog.String("name", category.Name))

	return usecase.NewCategoryOutput(category), nil
}

// UpdateCategory updates a category. Admin only.
func (srv *categoryService) UpdateCategory(ctx context.Context, actor usecase.Actor, id int64, input *usecase.UpdateCategoryInput) (*usecase.CategoryOutput, error) {
	if !actor.Role.IsAdmin() {
		return nil, domainerrors.ErrForbidden.WrapMessage("only admin may manage categories")
	}

	category, err := srv.categoryRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return nil, domainerrors.ErrCategoryNotFound
		}

		return nil, errors.Wrap(err, "failed to find category")
	}

	category.Name = input.Name
	category.Description = input.Description
	if err := srv.categoryRepo.Update(ctx, category); err != nil {
		return nil, errors.Wrap(err, "failed to update category")
	}

	return usecase.NewCategoryOutput(category), nil
}

// DeleteCategory deletes a category. Admin only. Books referencing the
// category are detached, not deleted.
func (srv *categoryService) DeleteCategory(ctx context.Context, actor usecase.Actor, id int64) error {
	if !actor.Role.IsAdmin() {
		return domainerrors.ErrForbidden.WrapMessage("only admin may manage categories")
	}

	if err := srv.categoryRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return domainerrors.ErrCategoryNotFound
		}

		return errors.Wrap(err, "failed to delete category")
	}

	srv.log(ctx).Info("Category deleted", slog.Int64("categoryID", id))

	return nil
}
