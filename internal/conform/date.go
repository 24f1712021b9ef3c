package conform

import (
	"time"

	"github.com/orchid-commerce/medallion/internal/models"
)

// BuildCalendar generates one silver row per calendar day across the
// reporting horizon, inclusive of both ends.
func BuildCalendar(start, end time.Time) []models.SilverDate {
	start = start.UTC().Truncate(24 * time.Hour)
	end = end.UTC().Truncate(24 * time.Hour)

	var rows []models.SilverDate
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		_, week := d.ISOWeek()
		rows = append(rows, models.SilverDate{
			Date:    d,
			Year:    d.Year(),
			Quarter: (int(d.Month())-1)/3 + 1,
			Month:   int(d.Month()),
			Week:    week,
			Day:     d.Day(),
		})
	}
	return rows
}

// DateID encodes a calendar date as a yyyymmdd integer. The encoding is a
// pure function of the date, so every run assigns the same surrogate key.
func DateID(d time.Time) int {
	return d.Year()*10000 + int(d.Month())*100 + d.Day()
}

// BuildGoldDates derives date_id, month_name, and the weekend flag.
func BuildGoldDates(silver []models.SilverDate) []models.GoldDate {
	gold := make([]models.GoldDate, 0, len(silver))
	for _, s := range silver {
		weekday := s.Date.Weekday()
		gold = append(gold, models.GoldDate{
			DateID:    DateID(s.Date),
			Date:      s.Date,
			Year:      s.Year,
			Quarter:   s.Quarter,
			Month:     s.Month,
			MonthName: time.Month(s.Month).String(),
			Week:      s.Week,
			Day:       s.Day,
			IsWeekend: weekday == time.Saturday || weekday == time.Sunday,
		})
	}
	return gold
}
