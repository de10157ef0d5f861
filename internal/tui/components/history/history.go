// Package history renders a habit's completion history as a month calendar
// and a bar chart of recent days.
package history

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/habitrack/internal/models"
	"github.com/julianstephens/habitrack/internal/streak"
)

const (
	// ChartDays is the number of trailing days shown in the bar chart
	ChartDays   = 14
	chartHeight = 5
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	doneStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	todayStyle  = lipgloss.NewStyle().Underline(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

type Model struct {
	habit  models.Habit
	stats  models.HabitStats
	counts map[string]int
	today  time.Time
	month  time.Time
}

// New builds the view for one habit, starting on the month containing today
func New(habit models.Habit, stats models.HabitStats, days []models.DayCount, today time.Time) Model {
	counts := make(map[string]int, len(days))
	for _, d := range days {
		counts[d.Date] = d.Count
	}
	return Model{
		habit:  habit,
		stats:  stats,
		counts: counts,
		today:  today,
		month:  firstOfMonth(today),
	}
}

func firstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

func (m *Model) PrevMonth() {
	m.month = m.month.AddDate(0, -1, 0)
}

// NextMonth moves forward, never past the current month
func (m *Model) NextMonth() {
	next := m.month.AddDate(0, 1, 0)
	if next.After(m.today) {
		return
	}
	m.month = next
}

func (m Model) Month() time.Time {
	return m.month
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("%s (%s)", m.habit.Name, m.habit.Category)))
	b.WriteString("\n\n")

	last := "never"
	if m.stats.LastDay != "" {
		last = m.stats.LastDay
	}
	fmt.Fprintf(&b, "Current streak: %d   Longest: %d   Completions: %d   Last: %s\n\n",
		m.stats.CurrentStreak, m.stats.LongestStreak, m.stats.TotalCompletions, last)

	cal := Calendar(m.month, m.counts, m.today)
	chart := Chart(m.counts, m.today, ChartDays)
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cal, "    ", chart))
	return b.String()
}

// Calendar renders a Monday-first month grid. Days with at least one
// completion are highlighted.
func Calendar(month time.Time, counts map[string]int, today time.Time) string {
	first := firstOfMonth(month)
	todayKey := streak.FormatDay(today)

	var b strings.Builder
	title := first.Format("January 2006")
	pad := (20 - len(title)) / 2
	if pad < 0 {
		pad = 0
	}
	b.WriteString(strings.Repeat(" ", pad) + headerStyle.Render(title) + "\n")
	b.WriteString(mutedStyle.Render("Mo Tu We Th Fr Sa Su") + "\n")

	offset := (int(first.Weekday()) + 6) % 7
	b.WriteString(strings.Repeat("   ", offset))

	col := offset
	for d := first; d.Month() == first.Month(); d = d.AddDate(0, 0, 1) {
		key := streak.FormatDay(d)
		cell := fmt.Sprintf("%2d", d.Day())
		style := lipgloss.NewStyle()
		if counts[key] > 0 {
			style = doneStyle
		}
		if key == todayKey {
			style = style.Inherit(todayStyle)
		}
		b.WriteString(style.Render(cell))

		col++
		if col == 7 {
			b.WriteString("\n")
			col = 0
		} else {
			b.WriteString(" ")
		}
	}
	return strings.TrimRight(b.String(), " \n")
}

// Chart renders daily completion counts for the days ending at end, oldest
// on the left. Bars are scaled to the busiest day.
func Chart(counts map[string]int, end time.Time, days int) string {
	if days <= 0 {
		return ""
	}
	values := make([]int, days)
	peak := 0
	for i := 0; i < days; i++ {
		d := end.AddDate(0, 0, i-days+1)
		values[i] = counts[streak.FormatDay(d)]
		if values[i] > peak {
			peak = values[i]
		}
	}

	height := chartHeight
	if peak < height {
		height = peak
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("Last %d days", days)) + "\n")
	for level := height; level >= 1; level-- {
		for _, v := range values {
			if barHeight(v, peak, height) >= level {
				b.WriteString(doneStyle.Render("█") + " ")
			} else {
				b.WriteString("  ")
			}
		}
		b.WriteString("\n")
	}
	for _, v := range values {
		if v == 0 {
			b.WriteString(mutedStyle.Render("·") + " ")
		} else {
			b.WriteString("▔ ")
		}
	}
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(fmt.Sprintf("%-*s%s", days*2-5, end.AddDate(0, 0, 1-days).Format("01/02"), end.Format("01/02"))))
	return b.String()
}

// barHeight scales v into [0, height]; any non-zero count gets at least one row
func barHeight(v, peak, height int) int {
	if v <= 0 || peak <= 0 {
		return 0
	}
	h := v * height / peak
	if h < 1 {
		h = 1
	}
	return h
}
