package handler

import (
	"log/slog"
	"net/http"

	"bookbridge/internal/delivery/http/response"
	"bookbridge/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// CategoryHandler holds dependencies for category handlers.
type CategoryHandler struct {
	uc     usecase.CategoryUsecase
	logger *slog.Logger
}

// NewCategoryHandler is the constructor for CategoryHandler, injected by Fx.
func NewCategoryHandler(uc usecase.CategoryUsecase, logger *slog.Logger) *CategoryHandler {
	return &CategoryHandler{
		uc:     uc,
		logger: logger,
	}
}

// List returns every category. Public.
func (h *CategoryHandler) List(c echo.Context) error {
	output, err := h.uc.ListCategories(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Categories retrieved successfully")
}

// Get returns one category by ID. Public.
func (h *CategoryHandler) Get(c echo.Context) error {
	id, err := PathID(c, "id")
	if err != nil {
		return err
	}

	output, err := h.uc.GetCategory(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Category retrieved successfully")
}

// Create creates a category. Admin only.
func (h *CategoryHandler) Create(c echo.Context) error {
	actor, err := RequireActor(c)
	if err != nil {
		return err
	}

	var input *usecase.CreateCategoryInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid category input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.CreateCategory(c.Request().Context(), actor, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, output, "Category created successfully")
}

// Update updates a category. Admin only.
func (h *CategoryHandler) Update(c echo.Context) error {
	actor, err := RequireActor(c)
	if err != nil {
		return err
	}

	id, err := PathID(c, "id")
	if err != nil {
		return err
	}

	var input *usecase.UpdateCategoryInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid category input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.UpdateCategory(c.Request().Context(), actor, id, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Category updated successfully")
}

// Delete removes a category. Admin only.
func (h *CategoryHandler) Delete(c echo.Context) error {
	actor, err := RequireActor(c)
	if err != nil {
		return err
	}

	id, err := PathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.DeleteCategory(c.Request().Context(), actor, id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Category deleted"}, "Category deleted successfully")
}
