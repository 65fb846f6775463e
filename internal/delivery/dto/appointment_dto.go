package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateAppointmentRequest struct {
	PatientID          string `json:"patient_id" validate:"required,uuid"`
	DoctorID           string `json:"doctor_id" validate:"omitempty,uuid"`
	AnesthesiologistID string `json:"anesthesiologist_id" validate:"omitempty,uuid"`
	NurseID            string `json:"nurse_id" validate:"omitempty,uuid"`
	RoomID             int    `json:"room_id" validate:"required,gt=0"`
	BedID              int    `json:"bed_id" validate:"required,gt=0"`
	SurgeryName        string `json:"surgery_name" validate:"required,max=200"`
	SurgeryType        string `json:"surgery_type" validate:"omitempty,max=100"`
	SurgeryDescription string `json:"surgery_description"`
	PreSurgeryNotes    string `json:"pre_surgery_notes"`
	PlannedDate        string `json:"planned_date" validate:"required,datetime=2006-01-02"`
	PlannedStartTime   string `json:"planned_start_time" validate:"required,hhmm"`
	PlannedEndTime     string `json:"planned_end_time" validate:"required,hhmm"`
	EstimatedDuration  int    `json:"estimated_duration" validate:"required,gt=0"`
	PriorityLevel      string `json:"priority_level" validate:"omitempty,oneof=EMERGENCY URGENT NORMAL LOW"`
}

// UpdateAppointmentRequest carries partial edits. Nil fields are left alone.
type UpdateAppointmentRequest struct {
	AnesthesiologistID *string `json:"anesthesiologist_id" validate:"omitempty,uuid"`
	NurseID            *string `json:"nurse_id" validate:"omitempty,uuid"`
	RoomID             *int    `json:"room_id" validate:"omitempty,gt=0"`
	BedID              *int    `json:"bed_id" validate:"omitempty,gt=0"`
	SurgeryName        *string `json:"surgery_name" validate:"omitempty,max=200"`
	SurgeryType        *string `json:"surgery_type" validate:"omitempty,max=100"`
	SurgeryDescription *string `json:"surgery_description"`
	PreSurgeryNotes    *string `json:"pre_surgery_notes"`
	PlannedDate        *string `json:"planned_date" validate:"omitempty,datetime=2006-01-02"`
	PlannedStartTime   *string `json:"planned_start_time" validate:"omitempty,hhmm"`
	PlannedEndTime     *string `json:"planned_end_time" validate:"omitempty,hhmm"`
	EstimatedDuration  *int    `json:"estimated_duration" validate:"omitempty,gt=0"`
	PriorityLevel      *string `json:"priority_level" validate:"omitempty,oneof=EMERGENCY URGENT NORMAL LOW"`
}

type CancelAppointmentRequest struct {
	Reason string `json:"reason" validate:"required,max=500"`
}

type ForceCancelAppointmentRequest struct {
	Reason string `json:"reason" validate:"required,max=500"`
}

type RescheduleAppointmentRequest struct {
	PlannedDate      string `json:"planned_date" validate:"required,datetime=2006-01-02"`
	PlannedStartTime string `json:"planned_start_time" validate:"required,hhmm"`
	PlannedEndTime   string `json:"planned_end_time" validate:"required,hhmm"`
	RoomID           *int   `json:"room_id" validate:"omitempty,gt=0"`
	BedID            *int   `json:"bed_id" validate:"omitempty,gt=0"`
}

type CompleteSurgeryRequest struct {
	PostSurgeryNotes string `json:"post_surgery_notes" validate:"omitempty,max=2000"`
}

type AppointmentResponse struct {
	ID                 uuid.UUID `json:"id"`
	PatientID          uuid.UUID `json:"patient_id"`
	PatientName        string    `json:"patient_name,omitempty"`
	DoctorID           uuid.UUID `json:"doctor_id"`
	DoctorName         string    `json:"doctor_name,omitempty"`
	AnesthesiologistID *uuid.UUID `json:"anesthesiologist_id,omitempty"`
	AnesthesiologistName string   `json:"anesthesiologist_name,omitempty"`
	NurseID            *uuid.UUID `json:"nurse_id,omitempty"`
	NurseName          string    `json:"nurse_name,omitempty"`
	RoomID             int       `json:"room_id"`
	RoomName           string    `json:"room_name,omitempty"`
	BedID              int       `json:"bed_id"`
	BedNumber          string    `json:"bed_number,omitempty"`

	SurgeryName        string `json:"surgery_name"`
	SurgeryType        string `json:"surgery_type,omitempty"`
	SurgeryDescription string `json:"surgery_description,omitempty"`
	PreSurgeryNotes    string `json:"pre_surgery_notes,omitempty"`
	PostSurgeryNotes   string `json:"post_surgery_notes,omitempty"`
	CancelReason       string `json:"cancel_reason,omitempty"`

	PlannedDate       string     `json:"planned_date"`
	PlannedStartTime  string     `json:"planned_start_time"`
	PlannedEndTime    string     `json:"planned_end_time"`
	EstimatedDuration int        `json:"estimated_duration"`
	ActualStartTime   *time.Time `json:"actual_start_time,omitempty"`
	ActualEndTime     *time.Time `json:"actual_end_time,omitempty"`

	Status        string `json:"status"`
	PriorityLevel string `json:"priority_level"`

	AnesthesiologistConfirmed   bool       `json:"anesthesiologist_confirmed"`
	AnesthesiologistConfirmedAt *time.Time `json:"anesthesiologist_confirmed_at,omitempty"`
	NurseConfirmed              bool       `json:"nurse_confirmed"`
	NurseConfirmedAt            *time.Time `json:"nurse_confirmed_at,omitempty"`
	DoctorFinalConfirmed        bool       `json:"doctor_final_confirmed"`
	DoctorFinalConfirmedAt      *time.Time `json:"doctor_final_confirmed_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int64                 `json:"total"`
}
