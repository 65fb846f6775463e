package entity

import (
	"time"

	"github.com/google/uuid"
)

// ParticipantRole identifies a confirmable member of the surgical team.
type ParticipantRole string

const (
	ParticipantAnesthesiologist ParticipantRole = "ANESTHESIOLOGIST"
	ParticipantNurse            ParticipantRole = "NURSE"
)

// teamRoleSpec describes how one participant role reads and writes its
// confirmation state on an appointment. Confirmation logic dispatches
// through this table instead of per-role if/else chains.
type teamRoleSpec struct {
	assignedID func(*SurgeryAppointment) *uuid.UUID
	confirmed  func(*SurgeryAppointment) bool
	confirm    func(*SurgeryAppointment, time.Time)
}

var teamRoles = map[ParticipantRole]teamRoleSpec{
	ParticipantAnesthesiologist: {
		assignedID: func(a *SurgeryAppointment) *uuid.UUID { return a.AnesthesiologistID },
		confirmed:  func(a *SurgeryAppointment) bool { return a.AnesthesiologistConfirmed },
		confirm: func(a *SurgeryAppointment, at time.Time) {
			a.AnesthesiologistConfirmed = true
			a.AnesthesiologistConfirmedAt = &at
		},
	},
	ParticipantNurse: {
		assignedID: func(a *SurgeryAppointment) *uuid.UUID { return a.NurseID },
		confirmed:  func(a *SurgeryAppointment) bool { return a.NurseConfirmed },
		confirm: func(a *SurgeryAppointment, at time.Time) {
			a.NurseConfirmed = true
			a.NurseConfirmedAt = &at
		},
	},
}

// TeamRoleOf returns the participant role the given user holds on this
// appointment, or false when the user is not an assigned team member.
func (a *SurgeryAppointment) TeamRoleOf(userID uuid.UUID) (ParticipantRole, bool) {
	for role, spec := range teamRoles {
		if id := spec.assignedID(a); id != nil && *id == userID {
			return role, true
		}
	}
	return "", false
}

// RoleConfirmed reports whether the given role has already confirmed.
func (a *SurgeryAppointment) RoleConfirmed(role ParticipantRole) bool {
	spec, ok := teamRoles[role]
	if !ok {
		return false
	}
	return spec.confirmed(a)
}

// ConfirmRole records the role's confirmation. Confirming an already
// confirmed role is a no-op: the original timestamp is preserved.
func (a *SurgeryAppointment) ConfirmRole(role ParticipantRole, at time.Time) {
	spec, ok := teamRoles[role]
	if !ok {
		return
	}
	if spec.confirmed(a) {
		return
	}
	spec.confirm(a, at)
}

// AllTeamConfirmed reports whether every assigned team role has confirmed.
// Roles that are not assigned are vacuously satisfied.
func (a *SurgeryAppointment) AllTeamConfirmed() bool {
	for _, spec := range teamRoles {
		if spec.assignedID(a) != nil && !spec.confirmed(a) {
			return false
		}
	}
	return true
}
