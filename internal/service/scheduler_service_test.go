package service

import (
	"testing"

	"surgery-reservation-system/internal/domain/entity"
)

func TestStatusSweepAction(t *testing.T) {
	tests := []struct {
		name    string
		status  entity.AppointmentStatus
		current string
		want    sweepAction
	}{
		{"notified before start", entity.StatusNotified, "08:55", sweepNone},
		{"notified at start", entity.StatusNotified, "09:00", sweepStart},
		{"notified after start", entity.StatusNotified, "09:05", sweepStart},
		{"in progress before end", entity.StatusInProgress, "09:30", sweepNone},
		{"in progress at end", entity.StatusInProgress, "10:00", sweepNone},
		{"in progress past end", entity.StatusInProgress, "10:05", sweepComplete},
		{"scheduled untouched", entity.StatusScheduled, "09:05", sweepNone},
		{"team confirmed untouched", entity.StatusTeamConfirmed, "09:05", sweepNone},
		{"completed untouched", entity.StatusCompleted, "10:05", sweepNone},
		{"cancelled untouched", entity.StatusCancelled, "09:05", sweepNone},
		{"postponed untouched", entity.StatusPostponed, "09:05", sweepNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := statusSweepAction(tt.status, "09:00", "10:00", tt.current)
			if got != tt.want {
				t.Errorf("statusSweepAction(%s at %s) = %d, want %d", tt.status, tt.current, got, tt.want)
			}
		})
	}
}
