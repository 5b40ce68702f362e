package api

import (
	"errors"
	"net/http"

	"github.com/avelikov/flightdesk/internal/domain"
	"github.com/avelikov/flightdesk/internal/logging"
	"github.com/gin-gonic/gin"
)

// Detail messages are part of the wire contract; clients match on them.
const (
	detailNameMismatch      = "Firstname or Lastname is mismatch"
	detailFlightNotFound    = "Flight not found"
	detailPassengerNotFound = "Passenger not found"
)

// respondError maps domain errors onto the API's error taxonomy. Every 4xx
// body carries a "detail" field.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNameMismatch):
		c.JSON(http.StatusBadRequest, gin.H{"detail": detailNameMismatch})
	case errors.Is(err, domain.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
	case errors.Is(err, domain.ErrFlightNotFound):
		c.JSON(http.StatusNotFound, gin.H{"detail": detailFlightNotFound})
	case errors.Is(err, domain.ErrPassengerNotFound):
		c.JSON(http.StatusNotFound, gin.H{"detail": detailPassengerNotFound})
	default:
		logging.Error("request failed",
			"request_id", c.GetString(requestIDKey),
			"path", c.Request.URL.Path,
			"error", err.Error(),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
	}
}
