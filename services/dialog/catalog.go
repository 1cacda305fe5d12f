package dialog

import "time"

// The fixed menus. Positions matter: users select entries by their 1-based
// index, so order must never change between releases without migrating
// in-flight sessions.
var cities = []string{
	"Hyderabad",
	"Bangalore",
	"Mumbai",
	"Visakhapatnam",
	"Delhi",
}

var timeSlots = []string{
	"10:00",
	"11:00",
	"12:00",
	"14:00",
	"15:00",
	"16:00",
}

// dateHorizonDays bounds the forward scan in NextSelectableDates. With the
// Tue-Sat filter five dates are always found well inside it.
const dateHorizonDays = 14

// Cities returns the selectable cities in menu order. Callers must not
// modify the returned slice.
func Cities() []string {
	return cities
}

// TimeSlots returns the selectable times of day in menu order. Callers must
// not modify the returned slice.
func TimeSlots() []string {
	return timeSlots
}

// NextSelectableDates scans forward from the day after today and collects
// dates whose weekday falls in Tuesday through Saturday, stopping after
// count dates or at the horizon. The result is ascending, formatted
// YYYY-MM-DD, and depends only on today.
func NextSelectableDates(today time.Time, count int) []string {
	dates := make([]string, 0, count)
	for i := 1; i <= dateHorizonDays; i++ {
		d := today.AddDate(0, 0, i)
		if wd := d.Weekday(); wd >= time.Tuesday && wd <= time.Saturday {
			dates = append(dates, d.Format("2006-01-02"))
		}
		if len(dates) == count {
			break
		}
	}
	return dates
}
