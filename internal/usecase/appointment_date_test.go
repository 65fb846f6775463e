package usecase

import (
	"testing"
	"time"

	"surgery-reservation-system/pkg/clock"
)

// The past-date guard must compare calendar days in the server's timezone.
// A date parsed at UTC midnight sorts before local midnight in zones behind
// UTC, which used to reject same-day appointments.
func TestParsePlannedDateSameDayBehindUTC(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*60*60)
	u := &appointmentUsecase{clk: clock.Fixed(time.Date(2026, 8, 28, 10, 0, 0, 0, loc))}

	tests := []struct {
		name     string
		date     string
		wantPast bool
	}{
		{"same day", "2026-08-28", false},
		{"tomorrow", "2026-08-29", false},
		{"yesterday", "2026-08-27", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := u.parsePlannedDate(tt.date)
			if err != nil {
				t.Fatalf("parsePlannedDate(%q): %v", tt.date, err)
			}
			if got := parsed.Before(u.today()); got != tt.wantPast {
				t.Errorf("Before(today) = %v, want %v", got, tt.wantPast)
			}
		})
	}
}

func TestParsePlannedDateSameDayAheadOfUTC(t *testing.T) {
	loc := time.FixedZone("UTC+8", 8*60*60)
	u := &appointmentUsecase{clk: clock.Fixed(time.Date(2026, 8, 28, 1, 0, 0, 0, loc))}

	parsed, err := u.parsePlannedDate("2026-08-28")
	if err != nil {
		t.Fatalf("parsePlannedDate: %v", err)
	}
	if parsed.Before(u.today()) {
		t.Error("same-day date must not be past ahead of UTC")
	}
	if !parsed.Equal(u.today()) {
		t.Errorf("same-day date = %v, want %v", parsed, u.today())
	}
}

func TestParsePlannedDateRejectsMalformed(t *testing.T) {
	u := &appointmentUsecase{clk: clock.System()}

	for _, bad := range []string{"2026/08/28", "28-08-2026", "2026-13-01", "not-a-date"} {
		if _, err := u.parsePlannedDate(bad); err == nil {
			t.Errorf("parsePlannedDate(%q) unexpectedly passed", bad)
		}
	}
}
