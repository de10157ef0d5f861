package history

import (
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/habitrack/internal/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 10, 0, 0, 0, time.UTC)
}

func TestCalendar(t *testing.T) {
	// September 2024 starts on a Sunday
	out := Calendar(date(2024, time.September, 15), map[string]int{"2024-09-13": 1}, date(2024, time.September, 15))
	lines := strings.Split(out, "\n")

	if !strings.Contains(lines[0], "September 2024") {
		t.Errorf("title line = %q", lines[0])
	}
	if lines[1] != "Mo Tu We Th Fr Sa Su" {
		t.Errorf("weekday line = %q", lines[1])
	}
	if strings.TrimSpace(lines[2]) != "1" || !strings.HasPrefix(lines[2], strings.Repeat(" ", 18)) {
		t.Errorf("first week = %q, want day 1 in the Sunday column", lines[2])
	}
	if !strings.HasSuffix(lines[len(lines)-1], "30") {
		t.Errorf("last line = %q, want it to end with 30", lines[len(lines)-1])
	}
}

func TestChart(t *testing.T) {
	end := date(2024, time.September, 14)
	counts := map[string]int{
		"2024-09-14": 2,
		"2024-09-13": 1,
	}

	out := Chart(counts, end, 3)
	lines := strings.Split(out, "\n")
	if lines[0] != "Last 3 days" {
		t.Errorf("header = %q", lines[0])
	}
	// peak is 2 so there are two bar rows
	if lines[1] != "    █ " {
		t.Errorf("top row = %q", lines[1])
	}
	if lines[2] != "  █ █ " {
		t.Errorf("bottom row = %q", lines[2])
	}
	if lines[3] != "· ▔ ▔ " {
		t.Errorf("baseline = %q", lines[3])
	}

	if Chart(counts, end, 0) != "" {
		t.Error("expected empty chart for zero days")
	}
}

func TestBarHeight(t *testing.T) {
	tests := []struct {
		v, peak, height, want int
	}{
		{0, 5, 5, 0},
		{5, 5, 5, 5},
		{1, 10, 5, 1},
		{10, 10, 5, 5},
		{3, 0, 5, 0},
	}
	for _, tt := range tests {
		if got := barHeight(tt.v, tt.peak, tt.height); got != tt.want {
			t.Errorf("barHeight(%d, %d, %d) = %d, want %d", tt.v, tt.peak, tt.height, got, tt.want)
		}
	}
}

func TestMonthNavigation(t *testing.T) {
	today := date(2024, time.September, 15)
	m := New(models.Habit{Name: "Read", Category: "Mind"}, models.HabitStats{}, nil, today)

	m.NextMonth()
	if m.Month().Month() != time.September {
		t.Errorf("NextMonth moved past the current month to %v", m.Month())
	}
	m.PrevMonth()
	m.PrevMonth()
	if m.Month().Month() != time.July {
		t.Errorf("expected July, got %v", m.Month().Month())
	}
	m.NextMonth()
	if m.Month().Month() != time.August {
		t.Errorf("expected August, got %v", m.Month().Month())
	}

	view := m.View()
	if !strings.Contains(view, "Read (Mind)") || !strings.Contains(view, "Last: never") {
		t.Errorf("unexpected view:\n%s", view)
	}
}
