package dialog

import (
	"fmt"
	"strings"

	"bookline/models"
)

const (
	namePrompt    = "Please enter your full name:"
	emailPrompt   = "Enter your email address:"
	commentPrompt = "Any comment? (Type 'no' if none)"

	invalidCityReply = "Invalid city number.\nPlease try again."
	invalidDateReply = "Invalid date number.\nPlease try again."
	invalidTimeReply = "Invalid time number.\nPlease try again."
	timeBookedReply  = "⚠️ That time is already booked.\nPlease choose another time."
	slotRacedNotice  = "⚠️ That time was just booked.\nPlease choose another time."
)

func numberedMenu(items []string) string {
	var sb strings.Builder
	for i, item := range items {
		if i > 0 {
			sb.WriteByte('\n')
		}
		fmt.Fprintf(&sb, "%d. %s", i+1, item)
	}
	return sb.String()
}

func cityMenuReply() string {
	return fmt.Sprintf("👋 Welcome to Appointment Booking\n\nPlease select a city:\n\n%s\n\nReply with the city number.", numberedMenu(Cities()))
}

func dateMenuReply(dates []string) string {
	return fmt.Sprintf("📅 Select a Date:\n\n%s\n\nReply with the date number.", numberedMenu(dates))
}

func timeMenuReply() string {
	return fmt.Sprintf("⏰ Select a Time:\n\n%s\n\nReply with the time number.", numberedMenu(TimeSlots()))
}

func slotRacedReply() string {
	return fmt.Sprintf("%s\n\n%s", slotRacedNotice, timeMenuReply())
}

func confirmationReply(b models.Booking) string {
	return fmt.Sprintf("✅ Booking Confirmed!\n\nCity: %s\nDate: %s\nTime: %s\n\nConfirmation email sent successfully.", b.City, b.Date, b.Time)
}
