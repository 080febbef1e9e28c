package recurring

import (
	"testing"
	"time"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestMonthStart(t *testing.T) {
	tests := []struct {
		name  string
		input time.Time
		want  time.Time
	}{
		{
			name:  "mid month",
			input: time.Date(2025, time.January, 15, 13, 45, 2, 0, time.UTC),
			want:  date(2025, time.January, 1),
		},
		{
			name:  "already first day",
			input: date(2025, time.March, 1),
			want:  date(2025, time.March, 1),
		},
		{
			name:  "last day of month",
			input: date(2024, time.February, 29),
			want:  date(2024, time.February, 1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MonthStart(tt.input); !got.Equal(tt.want) {
				t.Errorf("MonthStart(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestResolveOccursOn(t *testing.T) {
	tests := []struct {
		name          string
		year          int
		month         time.Month
		dayOfMonth    int
		useEndOfMonth bool
		want          time.Time
	}{
		{
			name:       "fixed day exists",
			year:       2025,
			month:      time.January,
			dayOfMonth: 15,
			want:       date(2025, time.January, 15),
		},
		{
			name:          "day 31 in 31-day month",
			year:          2025,
			month:         time.January,
			dayOfMonth:    31,
			useEndOfMonth: true,
			want:          date(2025, time.January, 31),
		},
		{
			name:          "day 31 clamps in february",
			year:          2025,
			month:         time.February,
			dayOfMonth:    31,
			useEndOfMonth: true,
			want:          date(2025, time.February, 28),
		},
		{
			name:          "day 31 clamps in leap february",
			year:          2024,
			month:         time.February,
			dayOfMonth:    31,
			useEndOfMonth: true,
			want:          date(2024, time.February, 29),
		},
		{
			name:          "day 30 clamps in 30-day month boundary",
			year:          2025,
			month:         time.April,
			dayOfMonth:    31,
			useEndOfMonth: true,
			want:          date(2025, time.April, 30),
		},
		{
			name:          "day 29 clamps only where needed",
			year:          2025,
			month:         time.March,
			dayOfMonth:    29,
			useEndOfMonth: true,
			want:          date(2025, time.March, 29),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveOccursOn(tt.year, tt.month, tt.dayOfMonth, tt.useEndOfMonth)
			if !got.Equal(tt.want) {
				t.Errorf("ResolveOccursOn(%d, %v, %d, %v) = %v, want %v",
					tt.year, tt.month, tt.dayOfMonth, tt.useEndOfMonth, got, tt.want)
			}
		})
	}
}

func TestDaysInMonth(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		want  int
	}{
		{2025, time.January, 31},
		{2025, time.February, 28},
		{2024, time.February, 29},
		{2000, time.February, 29},
		{1900, time.February, 28},
		{2025, time.April, 30},
		{2025, time.December, 31},
	}

	for _, tt := range tests {
		if got := daysInMonth(tt.year, tt.month); got != tt.want {
			t.Errorf("daysInMonth(%d, %v) = %d, want %d", tt.year, tt.month, got, tt.want)
		}
	}
}

func TestMonthsThrough(t *testing.T) {
	t.Run("single month", func(t *testing.T) {
		got := monthsThrough(date(2025, time.January, 1), date(2025, time.January, 1))
		if len(got) != 1 || !got[0].Equal(date(2025, time.January, 1)) {
			t.Errorf("monthsThrough same month = %v, want [2025-01-01]", got)
		}
	})

	t.Run("spans year boundary", func(t *testing.T) {
		got := monthsThrough(date(2024, time.November, 1), date(2025, time.February, 1))
		want := []time.Time{
			date(2024, time.November, 1),
			date(2024, time.December, 1),
			date(2025, time.January, 1),
			date(2025, time.February, 1),
		}
		if len(got) != len(want) {
			t.Fatalf("monthsThrough returned %d months, want %d", len(got), len(want))
		}
		for i := range want {
			if !got[i].Equal(want[i]) {
				t.Errorf("monthsThrough[%d] = %v, want %v", i, got[i], want[i])
			}
		}
	})

	t.Run("end before start yields nil", func(t *testing.T) {
		if got := monthsThrough(date(2025, time.March, 1), date(2025, time.January, 1)); got != nil {
			t.Errorf("monthsThrough inverted range = %v, want nil", got)
		}
	})
}
