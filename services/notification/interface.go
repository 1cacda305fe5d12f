package notification

import (
	"context"

	"bookline/models"
)

// Service delivers the booking confirmation to the requester. Failure must
// propagate to the commit step; the dialogue engine decides what the user
// sees.
type Service interface {
	SendBookingConfirmation(ctx context.Context, b models.Booking) error
}
