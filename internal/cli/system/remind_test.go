package system

import (
	"strings"
	"testing"

	"github.com/julianstephens/habitrack/internal/cli/clitest"
)

func TestRemindDisabled(t *testing.T) {
	ctx, out := clitest.New(t, "2024-09-14")
	ctx.Config.Reminders.Enabled = false

	if err := (&RemindCmd{DryRun: true, Count: 3}).Run(ctx); err != nil {
		t.Fatalf("remind failed: %v", err)
	}
	if !strings.Contains(out.String(), "Reminders are disabled") {
		t.Errorf("unexpected output: %q", out.String())
	}
}

func TestRemindDryRun(t *testing.T) {
	ctx, out := clitest.New(t, "2024-09-14")
	ctx.Config.Reminders.Enabled = true
	ctx.Config.Reminders.Hours = []int{20, 9}

	if err := (&RemindCmd{DryRun: true, Count: 3}).Run(ctx); err != nil {
		t.Fatalf("remind --dry-run failed: %v", err)
	}
	if !strings.Contains(out.String(), "Reminder hours: 09:00, 20:00 (UTC)") {
		t.Errorf("unexpected header: %q", out.String())
	}
	if got := strings.Count(out.String(), "[DryRun]"); got != 3 {
		t.Errorf("expected 3 reminder lines, got %d:\n%s", got, out.String())
	}
}
