package middleware

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	domainerrors "bookbridge/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderError(t *testing.T, err error) (int, domainerrors.Response) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/orders", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	m := NewErrorMiddleware(slog.New(slog.DiscardHandler))
	m.HandleHTTPError(err, c)

	var resp domainerrors.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	return rec.Code, resp
}

func TestErrorMiddleware_AppErrorDetailsReachClient(t *testing.T) {
	t.Run("unknown book names the id", func(t *testing.T) {
		err := errors.WithStack(domainerrors.ErrBookNotFound.WithDetails(
			fmt.Sprintf("book %d not found or unavailable", 99)))

		code, resp := renderError(t, err)

		assert.Equal(t, http.StatusNotFound, code)
		assert.False(t, resp.Success)
		assert.Equal(t, "book not found", resp.Message)
		require.NotNil(t, resp.Error)
		assert.Equal(t, domainerrors.ErrBookNotFound.ErrorCode(), resp.Error.Code)
		assert.Contains(t, resp.Error.Details, "99")
	})

	t.Run("insufficient stock names the book", func(t *testing.T) {
		err := errors.WithStack(domainerrors.ErrInsufficientStock.WithDetails(
			fmt.Sprintf("insufficient stock for %q: %d available, %d requested", "Dune", 2, 3)))

		code, resp := renderError(t, err)

		assert.Equal(t, http.StatusConflict, code)
		require.NotNil(t, resp.Error)
		assert.Equal(t, domainerrors.ErrInsufficientStock.ErrorCode(), resp.Error.Code)
		assert.Contains(t, resp.Error.Details, "Dune")
		assert.Contains(t, resp.Error.Details, "2 available, 3 requested")
	})
}

func TestErrorMiddleware_UnknownErrorIsInternal(t *testing.T) {
	code, resp := renderError(t, errors.New("connection reset"))

	assert.Equal(t, http.StatusInternalServerError, code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INTERNAL_ERROR", resp.Error.Code)
}
