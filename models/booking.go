package models

import "time"

// Booking is one committed appointment. Rows are append-only; no two
// committed bookings may share the same (city, date, time) triple.
type Booking struct {
	ID        string    `bson:"id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Email     string    `bson:"email" json:"email"`
	City      string    `bson:"city" json:"city"`
	Date      string    `bson:"date" json:"date"` // YYYY-MM-DD
	Time      string    `bson:"time" json:"time"` // HH:MM
	Comment   string    `bson:"comment" json:"comment"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}
