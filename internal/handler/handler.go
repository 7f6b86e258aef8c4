package handler

import (
	"errors"
	"net/http"

	"prs-backend/internal/service"
	"prs-backend/pkg/response"

	"github.com/gin-gonic/gin"
)

// respondError maps the shared domain errors onto HTTP statuses in one
// place: missing entities 404, bad input and id mismatches 400, stale
// concurrent writes 409, everything else 500.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrValidation), errors.Is(err, service.ErrIDMismatch):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrConflict):
		status = http.StatusConflict
	}
	c.JSON(status, response.Error(status, err.Error()))
}
