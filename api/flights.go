package api

import (
	"net/http"

	"github.com/avelikov/flightdesk/internal/domain"
	"github.com/avelikov/flightdesk/internal/service/flights"
	"github.com/gin-gonic/gin"
)

// localISO renders a timestamp with its numeric UTC offset, so zero-offset
// zones come out as +00:00 rather than Z.
const localISO = "2006-01-02T15:04:05-07:00"

type FlightHandler struct {
	service flights.FlightUseCase
}

type flightResponse struct {
	ID               string `json:"id"`
	DepartureAirport string `json:"departure_airport"`
	ArrivalAirport   string `json:"arrival_airport"`
	DepartureTime    string `json:"departure_time"`
	ArrivalTime      string `json:"arrival_time"`
}

func NewFlightHandler(service flights.FlightUseCase) *FlightHandler {
	return &FlightHandler{service: service}
}

func (h *FlightHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.GET("/:flight_id", h.get)
}

func (h *FlightHandler) list(c *gin.Context) {
	flightList, err := h.service.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]flightResponse, 0, len(flightList))
	for i := range flightList {
		resp, err := toFlightResponse(&flightList[i])
		if err != nil {
			respondError(c, err)
			return
		}
		responses = append(responses, *resp)
	}
	c.JSON(http.StatusOK, gin.H{"flights": responses})
}

func (h *FlightHandler) get(c *gin.Context) {
	flight, err := h.service.GetByID(c.Request.Context(), c.Param("flight_id"))
	if err != nil {
		respondError(c, err)
		return
	}

	resp, err := toFlightResponse(flight)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// toFlightResponse renders each leg in its airport's local wall-clock time.
// Conversion goes through the timezone database, so DST-era offsets and date
// rollover across midnight come out right.
func toFlightResponse(f *domain.Flight) (*flightResponse, error) {
	departure, err := f.LocalDepartureTime()
	if err != nil {
		return nil, err
	}
	arrival, err := f.LocalArrivalTime()
	if err != nil {
		return nil, err
	}

	return &flightResponse{
		ID:               f.ID,
		DepartureAirport: f.DepartureAirport,
		ArrivalAirport:   f.ArrivalAirport,
		DepartureTime:    departure.Format(localISO),
		ArrivalTime:      arrival.Format(localISO),
	}, nil
}
