package handler

import (
	"errors"
	"net/http"

	"address-api/internal/models"
	"address-api/internal/validation"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error      string `json:"error"`
	Field      string `json:"field,omitempty"`
	Constraint string `json:"constraint,omitempty"`
}

func validationResponse(verr *models.ValidationError) ErrorResponse {
	return ErrorResponse{Error: verr.Error(), Field: verr.Field, Constraint: verr.Constraint}
}

// respondError maps domain errors to HTTP status codes.
func respondError(c *gin.Context, err error) {
	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusUnprocessableEntity, validationResponse(verr))
	case errors.Is(err, models.ErrAddressNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Address not found"})
	default:
		_ = c.Error(err)
		zerolog.Ctx(c.Request.Context()).Error().Err(err).Msg("request failed")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
	}
}

// respondBindError answers a request whose body or query could not be bound.
func respondBindError(c *gin.Context, err error) {
	if verr, ok := validation.FromBinding(err); ok {
		c.JSON(http.StatusUnprocessableEntity, validationResponse(verr))
		return
	}
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request: " + err.Error()})
}
