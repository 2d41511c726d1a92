package tracking

import (
	"time"

	"pulsemind/fitness-coach/internal/domain"
)

// CalendarCell is one slot in a month grid. Blank cells pad the first
// week so day 1 lands under its weekday column.
type CalendarCell struct {
	Day        int    `json:"day"`
	Date       string `json:"date,omitempty"`
	Blank      bool   `json:"blank"`
	HasWorkout bool   `json:"hasWorkout"`
	IsToday    bool   `json:"isToday"`
}

// MonthGrid lays out a month as calendar cells, Sunday first, marking
// days that have a saved session and the current date.
func MonthGrid(year int, month time.Month, sessions []domain.WorkoutSession) []CalendarCell {
	workoutDates := make(map[string]bool, len(sessions))
	for _, session := range sessions {
		workoutDates[session.Date] = true
	}

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := first.AddDate(0, 1, -1).Day()
	today := domain.Today()

	cells := make([]CalendarCell, 0, int(first.Weekday())+daysInMonth)
	for i := 0; i < int(first.Weekday()); i++ {
		cells = append(cells, CalendarCell{Blank: true})
	}
	for day := 1; day <= daysInMonth; day++ {
		date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Format(domain.DateLayout)
		cells = append(cells, CalendarCell{
			Day:        day,
			Date:       date,
			HasWorkout: workoutDates[date],
			IsToday:    date == today,
		})
	}
	return cells
}

// SessionsThisWeek counts sessions dated within the last seven days,
// today included.
func SessionsThisWeek(sessions []domain.WorkoutSession) int {
	cutoff := time.Now().UTC().AddDate(0, 0, -6).Format(domain.DateLayout)
	today := domain.Today()
	count := 0
	for _, session := range sessions {
		if session.Date >= cutoff && session.Date <= today {
			count++
		}
	}
	return count
}
