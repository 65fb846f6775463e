package converter

import (
	"surgery-reservation-system/internal/delivery/dto"
	"surgery-reservation-system/internal/domain/entity"
)

func AppointmentToResponse(a *entity.SurgeryAppointment) *dto.AppointmentResponse {
	resp := &dto.AppointmentResponse{
		ID:                 a.ID,
		PatientID:          a.PatientID,
		DoctorID:           a.DoctorID,
		AnesthesiologistID: a.AnesthesiologistID,
		NurseID:            a.NurseID,
		RoomID:             a.RoomID,
		BedID:              a.BedID,

		SurgeryName:        a.SurgeryName,
		SurgeryType:        a.SurgeryType,
		SurgeryDescription: a.SurgeryDescription,
		PreSurgeryNotes:    a.PreSurgeryNotes,
		PostSurgeryNotes:   a.PostSurgeryNotes,
		CancelReason:       a.CancelReason,

		PlannedDate:       a.PlannedDate.Format("2006-01-02"),
		PlannedStartTime:  a.PlannedStartTime,
		PlannedEndTime:    a.PlannedEndTime,
		EstimatedDuration: a.EstimatedDuration,
		ActualStartTime:   a.ActualStartTime,
		ActualEndTime:     a.ActualEndTime,

		Status:        string(a.Status),
		PriorityLevel: string(a.PriorityLevel),

		AnesthesiologistConfirmed:   a.AnesthesiologistConfirmed,
		AnesthesiologistConfirmedAt: a.AnesthesiologistConfirmedAt,
		NurseConfirmed:              a.NurseConfirmed,
		NurseConfirmedAt:            a.NurseConfirmedAt,
		DoctorFinalConfirmed:        a.DoctorFinalConfirmed,
		DoctorFinalConfirmedAt:      a.DoctorFinalConfirmedAt,

		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}

	resp.PatientName = a.Patient.User.FullName
	resp.DoctorName = a.Doctor.FullName
	if a.Anesthesiologist != nil {
		resp.AnesthesiologistName = a.Anesthesiologist.FullName
	}
	if a.Nurse != nil {
		resp.NurseName = a.Nurse.FullName
	}
	resp.RoomName = a.Room.RoomName
	resp.BedNumber = a.Bed.BedNumber

	return resp
}

func AppointmentsToResponses(appointments []entity.SurgeryAppointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, 0, len(appointments))
	for i := range appointments {
		responses = append(responses, *AppointmentToResponse(&appointments[i]))
	}
	return responses
}
