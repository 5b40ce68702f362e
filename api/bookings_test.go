package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/avelikov/flightdesk/internal/domain"
	"github.com/avelikov/flightdesk/internal/service/booking"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockBookingUseCase is a mock implementation of booking.BookingUseCase
type MockBookingUseCase struct {
	mock.Mock
}

func (m *MockBookingUseCase) ListPassengers(ctx context.Context, flightID string) ([]domain.Passenger, error) {
	args := m.Called(ctx, flightID)
	return args.Get(0).([]domain.Passenger), args.Error(1)
}

func (m *MockBookingUseCase) CreateBooking(ctx context.Context, flightID string, input booking.BookingInput) (*domain.Passenger, error) {
	args := m.Called(ctx, flightID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Passenger), args.Error(1)
}

func (m *MockBookingUseCase) UpdateBooking(ctx context.Context, flightID string, customerID int64, input booking.BookingInput) (*domain.Passenger, error) {
	args := m.Called(ctx, flightID, customerID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Passenger), args.Error(1)
}

func (m *MockBookingUseCase) DeleteBooking(ctx context.Context, flightID string, customerID int64) error {
	args := m.Called(ctx, flightID, customerID)
	return args.Error(0)
}

func TestBookingHandler_create(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	input := booking.BookingInput{
		PassportID: "BC1500",
		FirstName:  "Shauna",
		LastName:   "Davila",
	}
	body, _ := json.Marshal(input)
	c.Params = gin.Params{{Key: "flight_id", Value: "LHR001"}}
	c.Request = httptest.NewRequest("POST", "/flights/LHR001/passengers", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	created := &domain.Passenger{
		FlightID:   "LHR001",
		CustomerID: 1,
		PassportID: "BC1500",
		FirstName:  "Shauna",
		LastName:   "Davila",
	}

	mockService.On("CreateBooking", c.Request.Context(), "LHR001", input).Return(created, nil)

	handler.create(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response passengerResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "LHR001", response.FlightID)
	assert.Equal(t, int64(1), response.CustomerID)
	assert.Equal(t, "BC1500", response.PassportID)
	assert.Equal(t, "Shauna", response.FirstName)
	assert.Equal(t, "Davila", response.LastName)

	mockService.AssertExpectations(t)
}

func TestBookingHandler_create_mismatch(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	input := booking.BookingInput{
		PassportID: "DOE12345",
		FirstName:  "John",
		LastName:   "Doe",
	}
	body, _ := json.Marshal(input)
	c.Params = gin.Params{{Key: "flight_id", Value: "LHR001"}}
	c.Request = httptest.NewRequest("POST", "/flights/LHR001/passengers", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	mockService.On("CreateBooking", c.Request.Context(), "LHR001", input).Return(nil, domain.ErrNameMismatch)

	handler.create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response map[string]string
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Contains(t, response["detail"], "Firstname or Lastname is mismatch")

	mockService.AssertExpectations(t)
}

func TestBookingHandler_create_unknownFlight(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	input := booking.BookingInput{
		PassportID: "BC1500",
		FirstName:  "Shauna",
		LastName:   "Davila",
	}
	body, _ := json.Marshal(input)
	c.Params = gin.Params{{Key: "flight_id", Value: "XXX999"}}
	c.Request = httptest.NewRequest("POST", "/flights/XXX999/passengers", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	mockService.On("CreateBooking", c.Request.Context(), "XXX999", input).Return(nil, domain.ErrFlightNotFound)

	handler.create(c)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var response map[string]string
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "Flight not found", response["detail"])
}

func TestBookingHandler_create_invalidBody(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Params = gin.Params{{Key: "flight_id", Value: "LHR001"}}
	c.Request = httptest.NewRequest("POST", "/flights/LHR001/passengers", bytes.NewReader([]byte("{")))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "CreateBooking", mock.Anything, mock.Anything, mock.Anything)
}

func TestBookingHandler_update(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	input := booking.BookingInput{
		PassportID: "UPDATE001",
		FirstName:  "Alice",
		LastName:   "Johnson",
	}
	body, _ := json.Marshal(input)
	c.Params = gin.Params{
		{Key: "flight_id", Value: "LHR001"},
		{Key: "customer_id", Value: "1"},
	}
	c.Request = httptest.NewRequest("PUT", "/flights/LHR001/passengers/1", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	updated := &domain.Passenger{
		FlightID:   "LHR001",
		CustomerID: 1,
		PassportID: "UPDATE001",
		FirstName:  "Alice",
		LastName:   "Johnson",
	}

	mockService.On("UpdateBooking", c.Request.Context(), "LHR001", int64(1), input).Return(updated, nil)

	handler.update(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response passengerResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "LHR001", response.FlightID)
	assert.Equal(t, int64(1), response.CustomerID)
	assert.Equal(t, "UPDATE001", response.PassportID)
	assert.Equal(t, "Alice", response.FirstName)
	assert.Equal(t, "Johnson", response.LastName)

	mockService.AssertExpectations(t)
}

func TestBookingHandler_update_mismatch(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	input := booking.BookingInput{
		PassportID: "DOE12345",
		FirstName:  "John",
		LastName:   "Doe",
	}
	body, _ := json.Marshal(input)
	c.Params = gin.Params{
		{Key: "flight_id", Value: "LHR001"},
		{Key: "customer_id", Value: "1"},
	}
	c.Request = httptest.NewRequest("PUT", "/flights/LHR001/passengers/1", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	mockService.On("UpdateBooking", c.Request.Context(), "LHR001", int64(1), input).Return(nil, domain.ErrNameMismatch)

	handler.update(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response map[string]string
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Contains(t, response["detail"], "Firstname or Lastname is mismatch")
}

func TestBookingHandler_update_badCustomerID(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Params = gin.Params{
		{Key: "flight_id", Value: "LHR001"},
		{Key: "customer_id", Value: "abc"},
	}
	c.Request = httptest.NewRequest("PUT", "/flights/LHR001/passengers/abc", nil)

	handler.update(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "UpdateBooking", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestBookingHandler_delete(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Params = gin.Params{
		{Key: "flight_id", Value: "LHR001"},
		{Key: "customer_id", Value: "1"},
	}
	c.Request = httptest.NewRequest("DELETE", "/flights/LHR001/passengers/1", nil)

	mockService.On("DeleteBooking", c.Request.Context(), "LHR001", int64(1)).Return(nil)

	handler.delete(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}

func TestBookingHandler_delete_notFound(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Params = gin.Params{
		{Key: "flight_id", Value: "LHR001"},
		{Key: "customer_id", Value: "42"},
	}
	c.Request = httptest.NewRequest("DELETE", "/flights/LHR001/passengers/42", nil)

	mockService.On("DeleteBooking", c.Request.Context(), "LHR001", int64(42)).Return(domain.ErrPassengerNotFound)

	handler.delete(c)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var response map[string]string
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "Passenger not found", response["detail"])
}

func TestBookingHandler_list(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Params = gin.Params{{Key: "flight_id", Value: "LHR001"}}
	c.Request = httptest.NewRequest("GET", "/flights/LHR001/passengers", nil)

	passengers := []domain.Passenger{
		{FlightID: "LHR001", CustomerID: 1, PassportID: "BC1500", FirstName: "Shauna", LastName: "Davila"},
		{FlightID: "LHR001", CustomerID: 2, PassportID: "AA0001", FirstName: "Alice", LastName: "Johnson"},
	}

	mockService.On("ListPassengers", c.Request.Context(), "LHR001").Return(passengers, nil)

	handler.list(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Passengers []passengerResponse `json:"passengers"`
	}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Len(t, response.Passengers, 2)
	assert.Equal(t, "BC1500", response.Passengers[0].PassportID)
}

func TestBookingHandler_list_unknownFlightIsEmpty(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Params = gin.Params{{Key: "flight_id", Value: "XXX999"}}
	c.Request = httptest.NewRequest("GET", "/flights/XXX999/passengers", nil)

	mockService.On("ListPassengers", c.Request.Context(), "XXX999").Return([]domain.Passenger{}, nil)

	handler.list(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"passengers": []}`, w.Body.String())
}
