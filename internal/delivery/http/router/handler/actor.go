package handler

import (
	"strconv"

	"bookbridge/internal/delivery/http/middleware"
	domainerrors "bookbridge/internal/domain/errors"
	"bookbridge/internal/usecase"

	"github.com/labstack/echo/v4"
)

// RequireActor extracts the authenticated identity set by the auth middleware.
// The returned errors are AppErrors, rendered by the error handler.
func RequireActor(c echo.Context) (usecase.Actor, error) {
	userID, okID := middleware.GetUserID(c)
	role, okRole := middleware.GetRole(c)
	if !okID || !okRole {
		return usecase.Actor{}, domainerrors.ErrUnauthorized.WrapMessage("missing authenticated identity")
	}

	return usecase.Actor{UserID: userID, Role: role}, nil
}

// OptionalActor returns the authenticated identity when one is present
// and the zero Actor otherwise. Used on public routes that behave
// differently for signed-in callers.
func OptionalActor(c echo.Context) usecase.Actor {
	userID, okID := middleware.GetUserID(c)
	role, okRole := middleware.GetRole(c)
	if !okID || !okRole {
		return usecase.Actor{}
	}

	return usecase.Actor{UserID: userID, Role: role}
}

// PathID parses the named path parameter as a positive int64 ID.
func PathID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, domainerrors.ErrValidationFailed.WrapMessage("invalid " + name + " path parameter")
	}

	return id, nil
}
