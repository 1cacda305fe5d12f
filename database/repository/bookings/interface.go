package bookings

import (
	"context"
	"errors"

	"bookline/models"
)

// ErrSlotTaken is returned by Append when the store itself can detect that
// the (city, date, time) slot is already committed. Backends without an
// atomic guard never return it; the dialogue engine re-checks availability
// before committing either way.
var ErrSlotTaken = errors.New("slot already booked")

// Repository is the booking store the dialogue engine reads availability
// from and commits to.
type Repository interface {
	// ListBookedTimes returns every committed time for the (city, date)
	// pair, in no particular order.
	ListBookedTimes(ctx context.Context, city, date string) ([]string, error)
	// Append durably adds one booking row.
	Append(ctx context.Context, b models.Booking) error
}
