package tracking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pulsemind/fitness-coach/internal/domain"
)

func TestMonthGrid_LeadingBlanksMatchWeekdayOffset(t *testing.T) {
	// January 2025 starts on a Wednesday.
	cells := MonthGrid(2025, time.January, nil)

	require.Len(t, cells, 3+31)
	for i := 0; i < 3; i++ {
		assert.True(t, cells[i].Blank)
	}
	assert.Equal(t, 1, cells[3].Day)
	assert.Equal(t, "2025-01-01", cells[3].Date)
	assert.Equal(t, 31, cells[len(cells)-1].Day)
}

func TestMonthGrid_NoBlanksWhenMonthStartsOnSunday(t *testing.T) {
	// June 2025 starts on a Sunday.
	cells := MonthGrid(2025, time.June, nil)

	assert.False(t, cells[0].Blank)
	assert.Equal(t, 1, cells[0].Day)
	assert.Len(t, cells, 30)
}

func TestMonthGrid_MarksWorkoutDays(t *testing.T) {
	sessions := []domain.WorkoutSession{
		{Date: "2025-01-05"},
		{Date: "2025-01-20"},
		{Date: "2025-02-01"}, // different month, ignored
	}

	cells := MonthGrid(2025, time.January, sessions)

	marked := make([]string, 0)
	for _, cell := range cells {
		if cell.HasWorkout {
			marked = append(marked, cell.Date)
		}
	}
	assert.Equal(t, []string{"2025-01-05", "2025-01-20"}, marked)
}

func TestMonthGrid_FlagsToday(t *testing.T) {
	now := time.Now().UTC()
	cells := MonthGrid(now.Year(), now.Month(), nil)

	found := false
	for _, cell := range cells {
		if cell.IsToday {
			assert.Equal(t, domain.Today(), cell.Date)
			found = true
		}
	}
	assert.True(t, found)
}

func TestSessionsThisWeek_CountsTrailingSevenDays(t *testing.T) {
	now := time.Now().UTC()
	sessions := []domain.WorkoutSession{
		{Date: now.Format(domain.DateLayout)},                   // today
		{Date: now.AddDate(0, 0, -6).Format(domain.DateLayout)}, // window edge
		{Date: now.AddDate(0, 0, -7).Format(domain.DateLayout)}, // too old
		{Date: now.AddDate(0, 0, -30).Format(domain.DateLayout)},
	}

	assert.Equal(t, 2, SessionsThisWeek(sessions))
}
