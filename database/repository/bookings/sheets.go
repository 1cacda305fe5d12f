package bookings

import (
	"context"
	"fmt"
	"time"

	"bookline/models"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Sheet layout: one booking per row, columns A through G holding
// name, email, city, date, time, comment, createdAt. Row 1 is the header.
const (
	bookingReadRange   = "Sheet1!A2:G"
	bookingAppendRange = "Sheet1!A1"
)

// SheetsBookingRepo persists bookings to a shared Google Sheet.
type SheetsBookingRepo struct {
	svc     *sheets.Service
	sheetID string
}

// NewSheetsBookingRepo builds a repository over the given spreadsheet using
// a service-account credentials file.
func NewSheetsBookingRepo(ctx context.Context, credentialsFile, sheetID string) (*SheetsBookingRepo, error) {
	svc, err := sheets.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("create sheets client: %w", err)
	}
	return &SheetsBookingRepo{svc: svc, sheetID: sheetID}, nil
}

func (r *SheetsBookingRepo) ListBookedTimes(ctx context.Context, city, date string) ([]string, error) {
	resp, err := r.svc.Spreadsheets.Values.Get(r.sheetID, bookingReadRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read booking rows: %w", err)
	}
	var times []string
	for _, row := range resp.Values {
		if len(row) < 5 {
			continue
		}
		rowCity, _ := row[2].(string)
		rowDate, _ := row[3].(string)
		rowTime, _ := row[4].(string)
		if rowCity == city && rowDate == date {
			times = append(times, rowTime)
		}
	}
	return times, nil
}

func (r *SheetsBookingRepo) Append(ctx context.Context, b models.Booking) error {
	vr := &sheets.ValueRange{
		Values: [][]interface{}{{
			b.Name,
			b.Email,
			b.City,
			b.Date,
			b.Time,
			b.Comment,
			b.CreatedAt.UTC().Format(time.RFC3339),
		}},
	}
	_, err := r.svc.Spreadsheets.Values.Append(r.sheetID, bookingAppendRange, vr).
		ValueInputOption("USER_ENTERED").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("append booking row: %w", err)
	}
	return nil
}
