package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/avelikov/flightdesk/internal/domain"
	"github.com/avelikov/flightdesk/internal/service/booking"
	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	service booking.BookingUseCase
}

type bookingRequest struct {
	PassportID string `json:"passport_id"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
}

type passengerResponse struct {
	FlightID   string `json:"flight_id"`
	CustomerID int64  `json:"customer_id"`
	PassportID string `json:"passport_id"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
}

func NewBookingHandler(service booking.BookingUseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.POST("", h.create)
	router.PUT("/:customer_id", h.update)
	router.DELETE("/:customer_id", h.delete)
}

func (h *BookingHandler) list(c *gin.Context) {
	passengers, err := h.service.ListPassengers(c.Request.Context(), c.Param("flight_id"))
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]passengerResponse, 0, len(passengers))
	for _, p := range passengers {
		responses = append(responses, toPassengerResponse(&p))
	}
	c.JSON(http.StatusOK, gin.H{"passengers": responses})
}

func (h *BookingHandler) create(c *gin.Context) {
	var req bookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err.Error()))
		return
	}

	created, err := h.service.CreateBooking(c.Request.Context(), c.Param("flight_id"), booking.BookingInput{
		PassportID: req.PassportID,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toPassengerResponse(created))
}

func (h *BookingHandler) update(c *gin.Context) {
	customerID, err := strconv.ParseInt(c.Param("customer_id"), 10, 64)
	if err != nil {
		respondError(c, fmt.Errorf("%w: invalid customer_id", domain.ErrInvalidInput))
		return
	}

	var req bookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err.Error()))
		return
	}

	updated, err := h.service.UpdateBooking(c.Request.Context(), c.Param("flight_id"), customerID, booking.BookingInput{
		PassportID: req.PassportID,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toPassengerResponse(updated))
}

func (h *BookingHandler) delete(c *gin.Context) {
	customerID, err := strconv.ParseInt(c.Param("customer_id"), 10, 64)
	if err != nil {
		respondError(c, fmt.Errorf("%w: invalid customer_id", domain.ErrInvalidInput))
		return
	}

	if err := h.service.DeleteBooking(c.Request.Context(), c.Param("flight_id"), customerID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"detail": "Passenger deleted"})
}

func toPassengerResponse(p *domain.Passenger) passengerResponse {
	return passengerResponse{
		FlightID:   p.FlightID,
		CustomerID: p.CustomerID,
		PassportID: p.PassportID,
		FirstName:  p.FirstName,
		LastName:   p.LastName,
	}
}
