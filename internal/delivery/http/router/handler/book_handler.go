package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"bookbridge/internal/delivery/http/response"
	"bookbridge/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// BookHandler holds dependencies for catalog handlers.
type BookHandler struct {
	uc     usecase.BookUsecase
	logger *slog.Logger
}

// NewBookHandler is the constructor for BookHandler, injected by Fx.
func NewBookHandler(uc usecase.BookUsecase, logger *slog.Logger) *BookHandler {
	return &BookHandler{
		uc:     uc,
		logger: logger,
	}
}

// List returns the catalog. Supports category_id, seller_id and search
// filters; my_books=true switches to the acting seller's inventory view.
func (h *BookHandler) List(c echo.Context) error {
	input := &usecase.ListBooksInput{
		Search: c.QueryParam("search"),
	}

	if raw := c.QueryParam("category_id"); raw != "" {
		categoryID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return response.BadRequest(c, "INVALID_INPUT", "Invalid category_id filter")
		}
		input.CategoryID = &categoryID
	}
	if raw := c.QueryParam("seller_id"); raw != "" {
		sellerID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return response.BadRequest(c, "INVALID_INPUT", "Invalid seller_id filter")
		}
		input.SellerID = &sellerID
	}

	var actor usecase.Actor
	if c.QueryParam("my_books") == "true" {
		input.MyBooks = true

		var err error
		actor, err = RequireActor(c)
		if err != nil {
			return err
		}
	}

	output, err := h.uc.ListBooks(c.Request().Context(), actor, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Books retrieved successfully")
}

// Get returns one book by ID. Public for active listings; an owning
// seller or admin also sees their inactive listings.
func (h *BookHandler) Get(c echo.Context) error {
	id, err := PathID(c, "id")
	if err != nil {
		return err
	}

	output, err := h.uc.GetBook(c.Request().Context(), OptionalActor(c), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Book retrieved successfully")
}

// Create creates a listing for the acting seller.
func (h *BookHandler) Create(c echo.Context) error {
	actor, err := RequireActor(c)
	if err != nil {
		return err
	}

	var input *usecase.CreateBookInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid book input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.CreateBook(c.Request().Context(), actor, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, output, "Book created successfully")
}

// Update updates a listing. Owning seller or admin.
func (h *BookHandler) Update(c echo.Context) error {
	actor, err := RequireActor(c)
	if err != nil {
		return err
	}

	id, err := PathID(c, "id")
	if err != nil {
		return err
	}

	var input *usecase.UpdateBookInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid book input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.UpdateBook(c.Request().Context(), actor, id, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Book updated successfully")
}

// Delete removes a listing. Owning seller or admin.
func (h *BookHandler) Delete(c echo.Context) error {
	actor, err := RequireActor(c)
	if err != nil {
		return err
	}

	id, err := PathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.DeleteBook(c.Request().Context(), actor, id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Book deleted"}, "Book deleted successfully")
}
