package usecase

import (
	"context"
	"time"

	"bookbridge/internal/domain/entity"
)

// CreateCategoryInput defines the data required to create a category.
type CreateCategoryInput struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"omitempty,max=1000"`
}

// UpdateCategoryInput defines the data for updating a category.
type UpdateCategoryInput struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"omitempty,max=1000"`
}

// CategoryOutput is the outward representation of a category.
type CategoryOutput struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewCategoryOutput maps a domain category to its outward representation.
func NewCategoryOutput(category *entity.Category) *CategoryOutput {
	if category == nil {
		return nil
	}

	return &CategoryOutput{
		ID:          category.ID,
		Name:        category.Name,
		Description: category.Description,
		CreatedAt:   category.CreatedAt,
	}
}

// CategoryUsecase defines category browsing and administration operations.
// Reads are public; writes require the admin role.
type CategoryUsecase interface {
	ListCategories(ctx context.Context) ([]*CategoryOutput, error)
	GetCategory(ctx context.Context, id int64) (*CategoryOutput, error)
	CreateCategory(ctx context.Context, actor Actor, input *CreateCategoryInput) (*CategoryOutput, error)
	UpdateCategory(ctx context.Context, actor Actor, id int64, input *UpdateCategoryInput) (*CategoryOutput, error)
	DeleteCategory(ctx context.Context, actor Actor, id int64) error
}
