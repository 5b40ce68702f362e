package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avelikov/flightdesk/internal/domain"
	"github.com/avelikov/flightdesk/internal/kafka"
	"github.com/avelikov/flightdesk/internal/logging"
	"github.com/avelikov/flightdesk/internal/metrics"
	"github.com/avelikov/flightdesk/internal/passport"
	"github.com/avelikov/flightdesk/internal/repository"
)

type BookingUseCase interface {
	ListPassengers(ctx context.Context, flightID string) ([]domain.Passenger, error)
	CreateBooking(ctx context.Context, flightID string, input BookingInput) (*domain.Passenger, error)
	UpdateBooking(ctx context.Context, flightID string, customerID int64, input BookingInput) (*domain.Passenger, error)
	DeleteBooking(ctx context.Context, flightID string, customerID int64) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type BookingInput struct {
	PassportID string `json:"passport_id"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
}

type BookingService struct {
	passengers         repository.PassengerRepository
	passports          passport.Verifier
	producer           Producer
	metrics            *metrics.Registry
	passengerTopic     string
	notificationsTopic string
}

type BookingServiceOption func(*BookingService)

func WithNotificationsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.notificationsTopic = topic
	}
}

func WithMetrics(reg *metrics.Registry) BookingServiceOption {
	return func(s *BookingService) {
		s.metrics = reg
	}
}

func NewBookingService(
	passengers repository.PassengerRepository,
	passports passport.Verifier,
	producer Producer,
	passengerTopic string,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		passengers:     passengers,
		passports:      passports,
		producer:       producer,
		passengerTopic: passengerTopic,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

func (s *BookingService) ListPassengers(ctx context.Context, flightID string) ([]domain.Passenger, error) {
	return s.passengers.ListByFlight(ctx, flightID)
}

// CreateBooking verifies the passenger's identity against the passport
// authority before anything is written. A known passport reuses the existing
// customer row; the fields of that row are left alone on this path.
func (s *BookingService) CreateBooking(ctx context.Context, flightID string, input BookingInput) (*domain.Passenger, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	if err := s.verifyIdentity(ctx, input); err != nil {
		return nil, err
	}

	created, err := s.passengers.CreateBooking(ctx, flightID, input.PassportID, input.FirstName, input.LastName)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, "passenger_booked", created)
	return created, nil
}

// UpdateBooking verifies the new identity first; on mismatch the existing
// customer row is left completely unchanged.
func (s *BookingService) UpdateBooking(ctx context.Context, flightID string, customerID int64, input BookingInput) (*domain.Passenger, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	if err := s.verifyIdentity(ctx, input); err != nil {
		return nil, err
	}

	updated, err := s.passengers.UpdateBooking(ctx, flightID, customerID, input.PassportID, input.FirstName, input.LastName)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, "passenger_updated", updated)
	return updated, nil
}

func (s *BookingService) DeleteBooking(ctx context.Context, flightID string, customerID int64) error {
	if err := s.passengers.DeleteBooking(ctx, flightID, customerID); err != nil {
		return err
	}

	s.publish(ctx, "passenger_cancelled", &domain.Passenger{FlightID: flightID, CustomerID: customerID})
	return nil
}

// verifyIdentity compares the caller-supplied name against the authority's
// record, byte for byte. An unknown passport and a differing name surface
// identically as a mismatch.
func (s *BookingService) verifyIdentity(ctx context.Context, input BookingInput) error {
	record, err := s.passports.Lookup(ctx, input.PassportID)
	if err != nil {
		if errors.Is(err, passport.ErrNotFound) {
			s.countVerification("mismatch")
			return domain.ErrNameMismatch
		}
		s.countVerification("error")
		return fmt.Errorf("verify identity: %w", err)
	}

	if record.FirstName != input.FirstName || record.LastName != input.LastName {
		s.countVerification("mismatch")
		return domain.ErrNameMismatch
	}

	s.countVerification("match")
	return nil
}

func validateInput(input BookingInput) error {
	if input.PassportID == "" {
		return fmt.Errorf("%w: passport_id is required", domain.ErrInvalidInput)
	}
	if input.FirstName == "" || input.LastName == "" {
		return fmt.Errorf("%w: first_name and last_name are required", domain.ErrInvalidInput)
	}
	return nil
}

func (s *BookingService) countVerification(outcome string) {
	if s.metrics != nil {
		s.metrics.VerificationsTotal.WithLabelValues(outcome).Inc()
	}
}

func (s *BookingService) publish(ctx context.Context, eventType string, p *domain.Passenger) {
	if s.producer == nil || s.passengerTopic == "" {
		return
	}
	event := kafka.PassengerEvent{
		Type:       eventType,
		FlightID:   p.FlightID,
		CustomerID: p.CustomerID,
		PassportID: p.PassportID,
		FirstName:  p.FirstName,
		LastName:   p.LastName,
		OccurredAt: time.Now().UTC(),
	}
	key := fmt.Sprintf("%s:%d", p.FlightID, p.CustomerID)
	if err := s.producer.Publish(ctx, s.passengerTopic, key, event); err != nil {
		logging.Warn("failed to publish passenger event", "type", eventType, "error", err.Error())
		return
	}
	if s.notificationsTopic != "" {
		if err := s.producer.Publish(ctx, s.notificationsTopic, key, event); err != nil {
			logging.Warn("failed to publish notification event", "type", eventType, "error", err.Error())
		}
	}
}

var _ BookingUseCase = (*BookingService)(nil)
