package usecase

import (
	"testing"
	"time"

	"surgery-reservation-system/internal/domain/entity"

	"github.com/google/uuid"
)

func TestHoursBeforeSurgery(t *testing.T) {
	now := time.Date(2026, 6, 10, 8, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		start time.Time
		want  int
	}{
		{"three days ahead", now.Add(72 * time.Hour), 72},
		{"exactly 48 hours", now.Add(48 * time.Hour), 48},
		{"just under 48 hours", now.Add(48*time.Hour - time.Minute), 47},
		{"same day", now.Add(5 * time.Hour), 5},
		{"already started", now.Add(-2 * time.Hour), -2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := hoursBeforeSurgery(now, tt.start); got != tt.want {
				t.Errorf("hoursBeforeSurgery() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestValidateCancellation(t *testing.T) {
	tests := []struct {
		name        string
		status      entity.AppointmentStatus
		blacklisted bool
		monthCount  int64
		hoursBefore int
		want        error
	}{
		{"allowed with 72 hour lead", entity.StatusScheduled, false, 0, 72, nil},
		{"allowed at exactly 48 hours", entity.StatusNotified, false, 0, 48, nil},
		{"rejected inside the window", entity.StatusScheduled, false, 0, 47, ErrCancellationWindow},
		{"rejected after start", entity.StatusScheduled, false, 0, -1, ErrCancellationWindow},
		{"rejected at monthly limit", entity.StatusScheduled, false, 1, 72, ErrCancellationLimit},
		{"rejected when blacklisted", entity.StatusScheduled, true, 0, 72, ErrUserBlacklisted},
		{"rejected once in progress", entity.StatusInProgress, false, 0, 72, ErrCannotCancel},
		{"rejected once completed", entity.StatusCompleted, false, 0, 72, ErrCannotCancel},
		{"rejected when already cancelled", entity.StatusCancelled, false, 0, 72, ErrCannotCancel},
		// Status outranks blacklist, blacklist outranks the limit.
		{"status checked first", entity.StatusCompleted, true, 5, 1, ErrCannotCancel},
		{"blacklist checked before limit", entity.StatusScheduled, true, 5, 1, ErrUserBlacklisted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := validateCancellation(tt.status, tt.blacklisted, tt.monthCount, tt.hoursBefore)
			if got != tt.want {
				t.Errorf("validateCancellation() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBlacklistUntil(t *testing.T) {
	tests := []struct {
		name string
		from time.Time
		want time.Time
	}{
		{"mid month", time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC), time.Date(2026, 9, 28, 0, 0, 0, 0, time.UTC)},
		{"across february", time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC), time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)},
		{"31 day month", time.Date(2026, 7, 3, 0, 0, 0, 0, time.UTC), time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := blacklistUntil(tt.from); !got.Equal(tt.want) {
				t.Errorf("blacklistUntil(%v) = %v, want %v", tt.from, got, tt.want)
			}
		})
	}
}

func TestOverlapsAny(t *testing.T) {
	mk := func(id uuid.UUID, start, end string) entity.SurgeryAppointment {
		return entity.SurgeryAppointment{ID: id, PlannedStartTime: start, PlannedEndTime: end}
	}

	selfID := uuid.New()
	existing := []entity.SurgeryAppointment{
		mk(uuid.New(), "08:00", "09:00"),
		mk(selfID, "10:00", "11:00"),
		mk(uuid.New(), "14:00", "16:00"),
	}

	candidate := &entity.SurgeryAppointment{PlannedStartTime: "09:00", PlannedEndTime: "10:00"}
	if overlapsAny(existing, candidate, uuid.Nil) {
		t.Error("back-to-back slots should not conflict")
	}

	candidate = &entity.SurgeryAppointment{PlannedStartTime: "15:00", PlannedEndTime: "17:00"}
	if !overlapsAny(existing, candidate, uuid.Nil) {
		t.Error("overlapping afternoon slot should conflict")
	}

	// A reschedule never collides with its own old slot.
	candidate = &entity.SurgeryAppointment{ID: selfID, PlannedStartTime: "10:30", PlannedEndTime: "11:30"}
	if overlapsAny(existing, candidate, selfID) {
		t.Error("appointment should not conflict with itself")
	}
	if !overlapsAny(existing, candidate, uuid.Nil) {
		t.Error("same window must conflict when not excluded")
	}
}
