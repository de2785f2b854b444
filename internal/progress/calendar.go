// ABOUTME: Monday-first month grid for the progress calendar.
// ABOUTME: Leading blanks align day 1 to its weekday column; no trailing cells.
package progress

import (
	"fmt"
	"strings"
	"time"
)

// Cell is one slot of the month grid. Blank cells only pad the first week.
type Cell struct {
	Blank   bool      `json:"blank,omitempty"`
	Date    time.Time `json:"date,omitempty"`
	GymDay  bool      `json:"gym_day,omitempty"`
	DayType string    `json:"day_type,omitempty"`
	Today   bool      `json:"today,omitempty"`
}

// Day returns the day of month, or 0 for a blank cell.
func (c Cell) Day() int {
	if c.Blank {
		return 0
	}
	return c.Date.Day()
}

// BuildMonth lays out every day of year/month after the blanks needed to put
// day 1 under its weekday, with Monday as the first column.
func BuildMonth(year int, month time.Month, gymDays []GymDay, today time.Time) ([]Cell, error) {
	if month < time.January || month > time.December {
		return nil, fmt.Errorf("month %d: %w", month, ErrInvalidInput)
	}

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	blanks := mondayIndex(first.Weekday())
	days := DaysIn(year, month)

	byDate := make(map[time.Time]GymDay, len(gymDays))
	for _, gd := range gymDays {
		d := DateOf(gd.Date)
		if _, seen := byDate[d]; !seen {
			byDate[d] = gd
		}
	}
	todayDate := DateOf(today)

	cells := make([]Cell, 0, blanks+days)
	for i := 0; i < blanks; i++ {
		cells = append(cells, Cell{Blank: true})
	}
	for day := 1; day <= days; day++ {
		date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
		gd, ok := byDate[date]
		cells = append(cells, Cell{
			Date:    date,
			GymDay:  ok,
			DayType: gd.DayType,
			Today:   date.Equal(todayDate),
		})
	}
	return cells, nil
}

// mondayIndex maps a weekday to its column: Monday=0 ... Sunday=6.
func mondayIndex(wd time.Weekday) int {
	return (int(wd) + 6) % 7
}

// DaysIn returns the number of days in year/month.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// LeadingBlanks counts the blank cells at the start of a grid.
func LeadingBlanks(cells []Cell) int {
	n := 0
	for _, c := range cells {
		if !c.Blank {
			break
		}
		n++
	}
	return n
}

// NextMonth returns the month after year/month.
func NextMonth(year int, month time.Month) (int, time.Month) {
	t := time.Date(year, month+1, 1, 0, 0, 0, 0, time.UTC)
	return t.Year(), t.Month()
}

// PrevMonth returns the month before year/month.
func PrevMonth(year int, month time.Month) (int, time.Month) {
	t := time.Date(year, month-1, 1, 0, 0, 0, 0, time.UTC)
	return t.Year(), t.Month()
}

// ParseMonth parses a YYYY-MM month reference.
func ParseMonth(s string) (int, time.Month, error) {
	t, err := time.Parse("2006-01", strings.TrimSpace(s))
	if err != nil {
		return 0, 0, fmt.Errorf("month %q: %w", s, ErrInvalidInput)
	}
	return t.Year(), t.Month(), nil
}
