package reminder

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"
)

func TestNextTrigger(t *testing.T) {
	loc := time.UTC
	at := func(day, hour, min int) time.Time {
		return time.Date(2024, 9, day, hour, min, 0, 0, loc)
	}

	tests := []struct {
		name  string
		now   time.Time
		hours []int
		want  time.Time
	}{
		{"before first hour", at(12, 7, 30), []int{9, 20}, at(12, 9, 0)},
		{"between hours", at(12, 12, 0), []int{9, 20}, at(12, 20, 0)},
		{"exactly on an hour is strictly after", at(12, 9, 0), []int{9, 20}, at(12, 20, 0)},
		{"after last hour rolls to next day", at(12, 21, 0), []int{9, 20}, at(13, 9, 0)},
		{"unsorted with duplicates", at(12, 10, 0), []int{20, 9, 20}, at(12, 20, 0)},
		{"midnight", at(12, 23, 59), []int{0}, at(13, 0, 0)},
		{"month rollover", time.Date(2024, 9, 30, 22, 0, 0, 0, loc), []int{9}, time.Date(2024, 10, 1, 9, 0, 0, 0, loc)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NextTrigger(tt.now, tt.hours); !got.Equal(tt.want) {
				t.Errorf("NextTrigger() = %v, want %v", got, tt.want)
			}
		})
	}

	if got := NextTrigger(at(12, 0, 0), []int{24, -1}); !got.IsZero() {
		t.Errorf("expected zero time for invalid hours, got %v", got)
	}
}

func TestNewNormalizesHours(t *testing.T) {
	s := New([]int{20, 9, 9, 30}, nil)
	if !reflect.DeepEqual(s.Hours(), []int{9, 20}) {
		t.Errorf("Hours() = %v", s.Hours())
	}
	if !reflect.DeepEqual(New(nil, nil).Hours(), []int{9, 20}) {
		t.Errorf("expected default hours, got %v", New(nil, nil).Hours())
	}
}

// fakeTimer advances a fake clock by every requested wait and fires at once
type fakeTimer struct {
	mu    sync.Mutex
	now   time.Time
	waits []time.Duration
}

func (f *fakeTimer) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeTimer) After(d time.Duration) <-chan time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.waits = append(f.waits, d)
	f.now = f.now.Add(d)
	ch := make(chan time.Time, 1)
	ch <- f.now
	return ch
}

func TestRunFiresAtEachHourUntilCancelled(t *testing.T) {
	clock := &fakeTimer{now: time.Date(2024, 9, 12, 8, 0, 0, 0, time.UTC)}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var fired []time.Time
	notify := func(ctx context.Context, message string) error {
		fired = append(fired, clock.Now())
		if message != "drink water" {
			t.Errorf("unexpected message %q", message)
		}
		if len(fired) == 3 {
			cancel()
		}
		return nil
	}

	s := New([]int{9, 20}, notify, WithClock(clock.Now), WithLocation(time.UTC), WithMessage("drink water"))
	s.after = clock.After

	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not stop after cancel")
	}

	want := []time.Time{
		time.Date(2024, 9, 12, 9, 0, 0, 0, time.UTC),
		time.Date(2024, 9, 12, 20, 0, 0, 0, time.UTC),
		time.Date(2024, 9, 13, 9, 0, 0, 0, time.UTC),
	}
	if !reflect.DeepEqual(fired, want) {
		t.Errorf("fired at %v, want %v", fired, want)
	}
	if clock.waits[0] != time.Hour {
		t.Errorf("first wait = %v, want 1h", clock.waits[0])
	}
}

func TestRunKeepsGoingAfterNotifyError(t *testing.T) {
	clock := &fakeTimer{now: time.Date(2024, 9, 12, 8, 0, 0, 0, time.UTC)}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	calls := 0
	notify := func(ctx context.Context, message string) error {
		calls++
		if calls == 2 {
			cancel()
		}
		return errors.New("tray exploded")
	}

	s := New([]int{9}, notify, WithClock(clock.Now), WithLocation(time.UTC))
	s.after = clock.After

	if err := s.Run(ctx); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if calls != 2 {
		t.Errorf("notify called %d times, want 2", calls)
	}
}

func TestRunStopsWhileWaiting(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := New([]int{9}, func(context.Context, string) error {
		t.Error("notify should not be called")
		return nil
	})
	s.after = func(time.Duration) <-chan time.Time { return make(chan time.Time) }

	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run returned error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}
