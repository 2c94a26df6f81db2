package httpapi

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/nikolayk812/ordercore/internal/domain"
	"go.uber.org/zap"
)

type ErrorResponse struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Detail  interface{} `json:"detail,omitempty"`
}

func ok(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, data)
}

func created(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusCreated, data)
}

func fail(c echo.Context, status int, code, message string, detail interface{}) error {
	return c.JSON(status, ErrorResponse{Code: code, Message: message, Detail: detail})
}

// failErr maps a service error to its HTTP status.
func (s *Server) failErr(c echo.Context, message string, err error) error {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", message, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		return fail(c, http.StatusNotFound, "NOT_FOUND", message, err.Error())
	case errors.Is(err, domain.ErrConflict), errors.Is(err, domain.ErrConcurrentTransition):
		return fail(c, http.StatusConflict, "CONFLICT", message, err.Error())
	case errors.Is(err, domain.ErrIllegalTransition):
		return fail(c, http.StatusUnprocessableEntity, "ILLEGAL_TRANSITION", message, err.Error())
	}

	s.logger.Error(message, zap.String("path", c.Path()), zap.Error(err))
	return fail(c, http.StatusInternalServerError, "INTERNAL_ERROR", message, nil)
}
