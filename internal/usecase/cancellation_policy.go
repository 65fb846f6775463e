package usecase

import (
	"time"

	"surgery-reservation-system/internal/domain/entity"

	"github.com/google/uuid"
)

// Cancellation policy knobs. A patient may cancel at most once per calendar
// month, no later than 48 whole hours before the planned start; a forced
// cancellation inside that window blacklists the patient for a month.
const (
	cancellationWindowHours  = 48
	monthlyCancellationLimit = 1
	blacklistMonths          = 1
)

// blacklistUntil returns the inclusive end date of a blacklist entry starting
// at from. The term is one calendar month, not a fixed day count.
func blacklistUntil(from time.Time) time.Time {
	return from.AddDate(0, blacklistMonths, 0)
}

// hoursBeforeSurgery returns the whole hours between now and the planned
// start. Negative when the start has already passed.
func hoursBeforeSurgery(now, plannedStart time.Time) int {
	return int(plannedStart.Sub(now).Hours())
}

// validateCancellation applies the patient self-service cancellation policy.
// Pure: callers gather the inputs, this decides.
func validateCancellation(status entity.AppointmentStatus, blacklisted bool, monthCount int64, hoursBefore int) error {
	if !status.CanBeCancelled() {
		return ErrCannotCancel
	}
	if blacklisted {
		return ErrUserBlacklisted
	}
	if monthCount >= monthlyCancellationLimit {
		return ErrCancellationLimit
	}
	if hoursBefore < cancellationWindowHours {
		return ErrCancellationWindow
	}
	return nil
}

// overlapsAny reports whether candidate's planned window collides with any
// appointment in existing, skipping excludeID so reschedules do not collide
// with themselves.
func overlapsAny(existing []entity.SurgeryAppointment, candidate *entity.SurgeryAppointment, excludeID uuid.UUID) bool {
	for i := range existing {
		if existing[i].ID == excludeID {
			continue
		}
		if existing[i].Overlaps(candidate) {
			return true
		}
	}
	return false
}
