package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ErrorResponse is the failure envelope returned by the function
type ErrorResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

// NewValidationError creates a bad request response
func NewValidationError(c echo.Context, detail string) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{OK: false, Error: detail})
}

// NewInternalError creates an internal error response
func NewInternalError(c echo.Context, detail string) error {
	return c.JSON(http.StatusInternalServerError, ErrorResponse{OK: false, Error: detail})
}
