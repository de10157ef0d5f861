// Package reminder fires a notification at fixed wall-clock hours. Delivery
// is best effort: a missed or failed reminder is logged and the loop moves on
// to the next trigger.
package reminder

import (
	"context"
	"sort"
	"time"

	"github.com/julianstephens/habitrack/internal/constants"
	"github.com/julianstephens/habitrack/internal/logger"
)

// NotifyFunc delivers one reminder
type NotifyFunc func(ctx context.Context, message string) error

// Option configures a Scheduler
type Option func(*Scheduler)

// WithClock replaces time.Now
func WithClock(now func() time.Time) Option {
	return func(s *Scheduler) { s.now = now }
}

// WithLocation sets the timezone the trigger hours are read in
func WithLocation(loc *time.Location) Option {
	return func(s *Scheduler) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// WithMessage overrides the reminder text; an empty message keeps the default
func WithMessage(message string) Option {
	return func(s *Scheduler) {
		if message != "" {
			s.message = message
		}
	}
}

type Scheduler struct {
	hours   []int
	notify  NotifyFunc
	now     func() time.Time
	loc     *time.Location
	message string
	after   func(time.Duration) <-chan time.Time
}

// New returns a scheduler for the given hours (0-23). Out-of-range and
// duplicate hours are dropped; an empty list uses the default hours.
func New(hours []int, notify NotifyFunc, opts ...Option) *Scheduler {
	s := &Scheduler{
		hours:   normalizeHours(hours),
		notify:  notify,
		now:     time.Now,
		loc:     time.Local,
		message: constants.ReminderMessage,
		after:   time.After,
	}
	if len(s.hours) == 0 {
		s.hours = normalizeHours(constants.DefaultReminderHours)
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Scheduler) Message() string {
	return s.message
}

// Hours returns the sorted trigger hours
func (s *Scheduler) Hours() []int {
	return append([]int(nil), s.hours...)
}

func normalizeHours(hours []int) []int {
	seen := make(map[int]bool, len(hours))
	var out []int
	for _, h := range hours {
		if h < 0 || h > 23 || seen[h] {
			continue
		}
		seen[h] = true
		out = append(out, h)
	}
	sort.Ints(out)
	return out
}

// NextTrigger returns the first instant strictly after now whose hour is in
// hours, at minute zero, in now's location. It returns the zero time when
// hours has no valid entry.
func NextTrigger(now time.Time, hours []int) time.Time {
	hours = normalizeHours(hours)
	if len(hours) == 0 {
		return time.Time{}
	}

	y, m, d := now.Date()
	for offset := 0; ; offset++ {
		for _, h := range hours {
			t := time.Date(y, m, d+offset, h, 0, 0, 0, now.Location())
			if t.After(now) {
				return t
			}
		}
	}
}

// Next returns the next trigger after the scheduler's current time
func (s *Scheduler) Next() time.Time {
	return NextTrigger(s.now().In(s.loc), s.hours)
}

// Run waits for each trigger and calls notify until ctx is cancelled. It
// returns nil on cancellation.
func (s *Scheduler) Run(ctx context.Context) error {
	logger.Debug("Reminder scheduler started", "hours", s.hours)
	for ctx.Err() == nil {
		now := s.now().In(s.loc)
		next := NextTrigger(now, s.hours)
		logger.Debug("Next reminder scheduled", "at", next.Format(time.RFC3339))

		select {
		case <-ctx.Done():
			continue
		case <-s.after(next.Sub(now)):
		}

		if err := s.notify(ctx, s.message); err != nil {
			logger.Warn("Reminder delivery failed", "error", err)
		}
	}
	logger.Debug("Reminder scheduler stopped")
	return nil
}
