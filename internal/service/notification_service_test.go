package service

import (
	"testing"

	"surgery-reservation-system/internal/domain/entity"
)

func TestNamePlaceholders(t *testing.T) {
	empty := &entity.SurgeryAppointment{}

	if got := patientName(empty); got != "未知患者" {
		t.Errorf("patientName fallback = %q", got)
	}
	if got := doctorName(empty); got != "未知医生" {
		t.Errorf("doctorName fallback = %q", got)
	}
	if got := anesthesiologistName(empty); got != "待安排" {
		t.Errorf("anesthesiologistName fallback = %q", got)
	}
	if got := nurseName(empty); got != "待安排" {
		t.Errorf("nurseName fallback = %q", got)
	}
	if got := roomName(empty); got != "待定" {
		t.Errorf("roomName fallback = %q", got)
	}
	if got := bedNumber(empty); got != "待定" {
		t.Errorf("bedNumber fallback = %q", got)
	}
}

func TestNamesResolveWhenLoaded(t *testing.T) {
	a := &entity.SurgeryAppointment{
		Patient: entity.Patient{User: entity.User{FullName: "张三"}},
		Doctor:  entity.User{FullName: "李医生"},
		Anesthesiologist: &entity.User{FullName: "王麻醉师"},
		Nurse:            &entity.User{FullName: "刘护士"},
		Room:             entity.OperatingRoom{RoomName: "1号手术室"},
		Bed:              entity.OperatingBed{BedNumber: "OR-01-B1"},
	}

	if got := patientName(a); got != "张三" {
		t.Errorf("patientName = %q", got)
	}
	if got := doctorName(a); got != "李医生" {
		t.Errorf("doctorName = %q", got)
	}
	if got := anesthesiologistName(a); got != "王麻醉师" {
		t.Errorf("anesthesiologistName = %q", got)
	}
	if got := nurseName(a); got != "刘护士" {
		t.Errorf("nurseName = %q", got)
	}
	if got := roomName(a); got != "1号手术室" {
		t.Errorf("roomName = %q", got)
	}
	if got := bedNumber(a); got != "OR-01-B1" {
		t.Errorf("bedNumber = %q", got)
	}
}
