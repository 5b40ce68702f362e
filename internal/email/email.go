package email

import (
	"context"

	"github.com/avelikov/flightdesk/internal/kafka"
	"github.com/avelikov/flightdesk/internal/logging"
)

type Sender struct{}

func NewSender() *Sender {
	return &Sender{}
}

// Send is a stand-in delivery: it logs the notification that a real mailer
// would send for the booking event.
func (s *Sender) Send(ctx context.Context, event kafka.PassengerEvent) error {
	logging.Info("sending booking notification",
		"type", event.Type,
		"flight_id", event.FlightID,
		"customer_id", event.CustomerID,
		"passenger", event.FirstName+" "+event.LastName,
	)
	return nil
}
