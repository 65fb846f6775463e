package entity

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestStatusTransitions(t *testing.T) {
	tests := []struct {
		from    AppointmentStatus
		to      AppointmentStatus
		allowed bool
	}{
		{StatusScheduled, StatusPendingConfirmation, true},
		{StatusScheduled, StatusCancelled, true},
		{StatusScheduled, StatusPostponed, true},
		{StatusScheduled, StatusInProgress, false},
		{StatusScheduled, StatusCompleted, false},
		{StatusPendingConfirmation, StatusTeamConfirmed, true},
		{StatusPendingConfirmation, StatusDoctorFinalConfirmed, false},
		{StatusTeamConfirmed, StatusDoctorFinalConfirmed, true},
		{StatusTeamConfirmed, StatusNotified, false},
		{StatusDoctorFinalConfirmed, StatusNotified, true},
		{StatusNotified, StatusInProgress, true},
		{StatusNotified, StatusCompleted, false},
		{StatusInProgress, StatusCompleted, true},
		{StatusInProgress, StatusCancelled, false},
		{StatusInProgress, StatusPostponed, false},
		{StatusCompleted, StatusScheduled, false},
		{StatusCompleted, StatusCancelled, false},
		{StatusCancelled, StatusScheduled, false},
		{StatusPostponed, StatusScheduled, true},
		{StatusPostponed, StatusCancelled, true},
		{StatusPostponed, StatusNotified, false},
	}

	for _, tt := range tests {
		if got := tt.from.CanTransitionTo(tt.to); got != tt.allowed {
			t.Errorf("CanTransitionTo(%s -> %s) = %v, want %v", tt.from, tt.to, got, tt.allowed)
		}
	}
}

func TestCanBeCancelled(t *testing.T) {
	cancellable := []AppointmentStatus{
		StatusScheduled, StatusPendingConfirmation, StatusTeamConfirmed,
		StatusDoctorFinalConfirmed, StatusNotified,
	}
	for _, s := range cancellable {
		if !s.CanBeCancelled() {
			t.Errorf("%s should be cancellable", s)
		}
	}

	final := []AppointmentStatus{StatusInProgress, StatusCompleted, StatusCancelled, StatusPostponed}
	for _, s := range final {
		if s.CanBeCancelled() {
			t.Errorf("%s should not be cancellable", s)
		}
	}
}

func TestIsLive(t *testing.T) {
	if StatusCancelled.IsLive() {
		t.Error("cancelled appointments must not hold resources")
	}
	if !StatusPostponed.IsLive() {
		t.Error("postponed appointments keep their resources until rescheduled")
	}
	if !StatusCompleted.IsLive() {
		t.Error("completed appointments stay in conflict checks")
	}
}

func TestOverlaps(t *testing.T) {
	appt := func(start, end string) *SurgeryAppointment {
		return &SurgeryAppointment{PlannedStartTime: start, PlannedEndTime: end}
	}

	tests := []struct {
		name string
		a, b *SurgeryAppointment
		want bool
	}{
		{"identical windows", appt("09:00", "10:00"), appt("09:00", "10:00"), true},
		{"partial overlap", appt("09:00", "10:00"), appt("09:30", "11:00"), true},
		{"contained", appt("09:00", "12:00"), appt("10:00", "11:00"), true},
		{"back to back", appt("09:00", "10:00"), appt("10:00", "11:00"), false},
		{"disjoint", appt("09:00", "10:00"), appt("13:00", "14:00"), false},
		{"crosses noon", appt("08:00", "13:00"), appt("12:30", "15:00"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Overlaps(tt.b); got != tt.want {
				t.Errorf("Overlaps() = %v, want %v", got, tt.want)
			}
			if got := tt.b.Overlaps(tt.a); got != tt.want {
				t.Errorf("Overlaps() not symmetric: reversed = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTeamRoleOf(t *testing.T) {
	anesthID := uuid.New()
	nurseID := uuid.New()
	a := &SurgeryAppointment{
		AnesthesiologistID: &anesthID,
		NurseID:            &nurseID,
	}

	if role, ok := a.TeamRoleOf(anesthID); !ok || role != ParticipantAnesthesiologist {
		t.Errorf("TeamRoleOf(anesthesiologist) = %v, %v", role, ok)
	}
	if role, ok := a.TeamRoleOf(nurseID); !ok || role != ParticipantNurse {
		t.Errorf("TeamRoleOf(nurse) = %v, %v", role, ok)
	}
	if _, ok := a.TeamRoleOf(uuid.New()); ok {
		t.Error("TeamRoleOf should reject an unassigned user")
	}
}

func TestConfirmRoleIdempotent(t *testing.T) {
	anesthID := uuid.New()
	a := &SurgeryAppointment{AnesthesiologistID: &anesthID}

	first := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	a.ConfirmRole(ParticipantAnesthesiologist, first)

	if !a.AnesthesiologistConfirmed {
		t.Fatal("confirmation flag not set")
	}
	if a.AnesthesiologistConfirmedAt == nil || !a.AnesthesiologistConfirmedAt.Equal(first) {
		t.Fatal("confirmation timestamp not recorded")
	}

	// A repeat confirmation keeps the original timestamp.
	a.ConfirmRole(ParticipantAnesthesiologist, first.Add(time.Hour))
	if !a.AnesthesiologistConfirmedAt.Equal(first) {
		t.Error("repeat confirmation overwrote the original timestamp")
	}
}

func TestAllTeamConfirmed(t *testing.T) {
	anesthID := uuid.New()
	nurseID := uuid.New()
	now := time.Now()

	// No team assigned: vacuously confirmed.
	none := &SurgeryAppointment{}
	if !none.AllTeamConfirmed() {
		t.Error("appointment without team should be vacuously confirmed")
	}

	// Only one role assigned: that role alone decides.
	solo := &SurgeryAppointment{NurseID: &nurseID}
	if solo.AllTeamConfirmed() {
		t.Error("unconfirmed nurse should block")
	}
	solo.ConfirmRole(ParticipantNurse, now)
	if !solo.AllTeamConfirmed() {
		t.Error("confirmed nurse should satisfy a nurse-only team")
	}

	// Both assigned: both must confirm.
	full := &SurgeryAppointment{AnesthesiologistID: &anesthID, NurseID: &nurseID}
	full.ConfirmRole(ParticipantAnesthesiologist, now)
	if full.AllTeamConfirmed() {
		t.Error("missing nurse confirmation should block")
	}
	full.ConfirmRole(ParticipantNurse, now)
	if !full.AllTeamConfirmed() {
		t.Error("both confirmations should satisfy")
	}
}

func TestHasTeamAssigned(t *testing.T) {
	if (&SurgeryAppointment{}).HasTeamAssigned() {
		t.Error("empty team reported as assigned")
	}
	id := uuid.New()
	if !(&SurgeryAppointment{AnesthesiologistID: &id}).HasTeamAssigned() {
		t.Error("anesthesiologist alone counts as a team")
	}
	if !(&SurgeryAppointment{NurseID: &id}).HasTeamAssigned() {
		t.Error("nurse alone counts as a team")
	}
}

func TestPlannedStartAt(t *testing.T) {
	a := &SurgeryAppointment{
		PlannedDate:      time.Date(2026, 5, 20, 0, 0, 0, 0, time.UTC),
		PlannedStartTime: "09:30",
	}

	got, err := a.PlannedStartAt(time.UTC)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2026, 5, 20, 9, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("PlannedStartAt() = %v, want %v", got, want)
	}

	a.PlannedStartTime = "9:30am"
	if _, err := a.PlannedStartAt(time.UTC); err == nil {
		t.Error("expected error for malformed time of day")
	}
}
