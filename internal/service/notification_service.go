package service

import (
	"context"
	"fmt"

	"surgery-reservation-system/internal/domain/entity"
	"surgery-reservation-system/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// NotificationSink delivers workflow messages to participants. Delivery is
// best effort: failures are logged and never propagate, so a broken inbox
// cannot roll back a status transition.
type NotificationSink interface {
	SurgeryScheduled(ctx context.Context, appointment *entity.SurgeryAppointment)
	TeamConfirmationRequest(ctx context.Context, appointment *entity.SurgeryAppointment)
	DoctorFinalConfirmationRequest(ctx context.Context, appointment *entity.SurgeryAppointment)
	PatientSurgeryNotice(ctx context.Context, appointment *entity.SurgeryAppointment)
	SurgeryUpdated(ctx context.Context, appointment *entity.SurgeryAppointment)
	SurgeryCancelled(ctx context.Context, appointment *entity.SurgeryAppointment)
	SurgeryPostponed(ctx context.Context, appointment *entity.SurgeryAppointment)
	SurgeryStarted(ctx context.Context, appointment *entity.SurgeryAppointment)
	SurgeryCompleted(ctx context.Context, appointment *entity.SurgeryAppointment)
	OverdueWarning(ctx context.Context, appointment *entity.SurgeryAppointment)
}

type notificationService struct {
	db               *gorm.DB
	log              *logrus.Logger
	notificationRepo repository.NotificationRepository
}

func NewNotificationService(db *gorm.DB, log *logrus.Logger, notificationRepo repository.NotificationRepository) NotificationSink {
	return &notificationService{
		db:               db,
		log:              log,
		notificationRepo: notificationRepo,
	}
}

// deliver persists one notification row. Errors are logged, never returned.
func (s *notificationService) deliver(ctx context.Context, recipientID uuid.UUID, appointmentID uuid.UUID, typ entity.NotificationType, title, content string) {
	apptID := appointmentID
	notification := &entity.Notification{
		RecipientID:          recipientID,
		Type:                 typ,
		Title:                title,
		Content:              content,
		RelatedAppointmentID: &apptID,
	}
	if err := s.notificationRepo.Create(s.db.WithContext(ctx), notification); err != nil {
		s.log.Warnf("Failed to deliver notification %s to %s: %+v", typ, recipientID, err)
		return
	}
	s.log.Debugf("Delivered notification %s to %s (appointment %s)", typ, recipientID, appointmentID)
}

func patientName(a *entity.SurgeryAppointment) string {
	if a.Patient.User.FullName != "" {
		return a.Patient.User.FullName
	}
	return "未知患者"
}

func doctorName(a *entity.SurgeryAppointment) string {
	if a.Doctor.FullName != "" {
		return a.Doctor.FullName
	}
	return "未知医生"
}

func anesthesiologistName(a *entity.SurgeryAppointment) string {
	if a.Anesthesiologist != nil && a.Anesthesiologist.FullName != "" {
		return a.Anesthesiologist.FullName
	}
	return "待安排"
}

func nurseName(a *entity.SurgeryAppointment) string {
	if a.Nurse != nil && a.Nurse.FullName != "" {
		return a.Nurse.FullName
	}
	return "待安排"
}

func roomName(a *entity.SurgeryAppointment) string {
	if a.Room.RoomName != "" {
		return a.Room.RoomName
	}
	return "待定"
}

func bedNumber(a *entity.SurgeryAppointment) string {
	if a.Bed.BedNumber != "" {
		return a.Bed.BedNumber
	}
	return "待定"
}

func plannedDate(a *entity.SurgeryAppointment) string {
	return a.PlannedDate.Format("2006-01-02")
}

func (s *notificationService) SurgeryScheduled(ctx context.Context, a *entity.SurgeryAppointment) {
	if a.Patient.UserID == uuid.Nil {
		s.log.Warnf("Cannot notify patient of scheduled surgery, user missing for appointment %s", a.ID)
		return
	}
	s.deliver(ctx, a.Patient.UserID, a.ID, entity.NotificationSurgeryScheduled,
		"手术安排通知",
		fmt.Sprintf("您的手术已安排，手术名称：%s，手术时间：%s %s，主刀医生：%s。",
			a.SurgeryName, plannedDate(a), a.PlannedStartTime, doctorName(a)))
}

func (s *notificationService) TeamConfirmationRequest(ctx context.Context, a *entity.SurgeryAppointment) {
	base := fmt.Sprintf(
		"医生 %s 安排了新的手术预约，请确认您的参与：\n"+
			"病人：%s\n"+
			"手术名称：%s\n"+
			"手术时间：%s %s - %s\n"+
			"手术室：%s\n"+
			"床位：%s\n"+
			"请及时确认您的参与。",
		doctorName(a), patientName(a), a.SurgeryName,
		plannedDate(a), a.PlannedStartTime, a.PlannedEndTime,
		roomName(a), bedNumber(a))

	if a.AnesthesiologistID != nil {
		s.deliver(ctx, *a.AnesthesiologistID, a.ID, entity.NotificationTeamConfirmationRequest,
			"手术确认请求 - 麻醉师", base)
	}
	if a.NurseID != nil {
		s.deliver(ctx, *a.NurseID, a.ID, entity.NotificationTeamConfirmationRequest,
			"手术确认请求 - 护士", base)
	}
}

func (s *notificationService) DoctorFinalConfirmationRequest(ctx context.Context, a *entity.SurgeryAppointment) {
	confirmed := func(ok bool) string {
		if ok {
			return "(已确认)"
		}
		return "(未确认)"
	}
	content := fmt.Sprintf(
		"手术预约的医疗团队确认已完成，请进行最终确认：\n"+
			"病人：%s\n"+
			"手术名称：%s\n"+
			"手术时间：%s %s - %s\n"+
			"麻醉师：%s %s\n"+
			"护士：%s %s\n"+
			"请确认手术安排无误，确认后将通知病人。",
		patientName(a), a.SurgeryName,
		plannedDate(a), a.PlannedStartTime, a.PlannedEndTime,
		anesthesiologistName(a), confirmed(a.AnesthesiologistConfirmed),
		nurseName(a), confirmed(a.NurseConfirmed))

	s.deliver(ctx, a.DoctorID, a.ID, entity.NotificationDoctorFinalConfirmation,
		"手术最终确认请求", content)
}

func (s *notificationService) PatientSurgeryNotice(ctx context.Context, a *entity.SurgeryAppointment) {
	if a.Patient.UserID == uuid.Nil {
		s.log.Warnf("Cannot send surgery notice, patient user missing for appointment %s", a.ID)
		return
	}
	surgeryType := a.SurgeryType
	if surgeryType == "" {
		surgeryType = "常规手术"
	}
	content := fmt.Sprintf(
		"您的手术安排已最终确认，请查看详细信息：\n\n"+
			"═══ 手术通知单 ═══\n"+
			"手术名称：%s\n"+
			"手术类型：%s\n"+
			"手术时间：%s %s - %s\n"+
			"预计时长：%d 分钟\n\n"+
			"医疗团队：\n"+
			"主刀医生：%s\n"+
			"麻醉师：%s\n"+
			"手术护士：%s\n\n"+
			"手术地点：\n"+
			"手术室：%s\n"+
			"床位：%s\n\n"+
			"注意事项：\n"+
			"1. 请提前2小时到达医院\n"+
			"2. 术前8小时禁食禁水\n"+
			"3. 请带齐相关检查资料\n"+
			"4. 如有疑问请及时联系医护人员\n\n"+
			"祝您手术顺利！",
		a.SurgeryName, surgeryType,
		plannedDate(a), a.PlannedStartTime, a.PlannedEndTime, a.EstimatedDuration,
		doctorName(a), anesthesiologistName(a), nurseName(a),
		roomName(a), bedNumber(a))

	s.deliver(ctx, a.Patient.UserID, a.ID, entity.NotificationPatientSurgeryNotice,
		"手术通知单", content)
}

func (s *notificationService) SurgeryUpdated(ctx context.Context, a *entity.SurgeryAppointment) {
	if a.Patient.UserID == uuid.Nil {
		return
	}
	s.deliver(ctx, a.Patient.UserID, a.ID, entity.NotificationSurgeryUpdated,
		"手术更新通知",
		fmt.Sprintf("您的手术信息已更新，手术名称：%s，手术时间：%s %s。",
			a.SurgeryName, plannedDate(a), a.PlannedStartTime))
}

func (s *notificationService) SurgeryCancelled(ctx context.Context, a *entity.SurgeryAppointment) {
	reason := a.CancelReason
	if reason == "" {
		reason = "未说明"
	}

	if a.Patient.UserID != uuid.Nil {
		s.deliver(ctx, a.Patient.UserID, a.ID, entity.NotificationSurgeryCancelled,
			"手术取消通知",
			fmt.Sprintf("您的手术已取消，手术名称：%s，原定时间：%s %s。\n取消原因：%s",
				a.SurgeryName, plannedDate(a), a.PlannedStartTime, reason))
	}

	s.deliver(ctx, a.DoctorID, a.ID, entity.NotificationSurgeryCancelled,
		"手术取消通知",
		fmt.Sprintf("病人 %s 取消了手术预约：\n"+
			"手术名称：%s\n"+
			"原定时间：%s %s - %s\n"+
			"手术室：%s\n"+
			"取消原因：%s\n\n"+
			"请及时调整您的手术安排。",
			patientName(a), a.SurgeryName,
			plannedDate(a), a.PlannedStartTime, a.PlannedEndTime,
			roomName(a), reason))

	if a.AnesthesiologistID != nil {
		s.deliver(ctx, *a.AnesthesiologistID, a.ID, entity.NotificationSurgeryCancelled,
			"手术取消通知",
			fmt.Sprintf("病人 %s 取消了手术预约：\n"+
				"手术名称：%s\n"+
				"原定时间：%s %s - %s\n"+
				"主刀医生：%s\n"+
				"手术室：%s\n"+
				"取消原因：%s\n\n"+
				"您的麻醉安排已自动取消。",
				patientName(a), a.SurgeryName,
				plannedDate(a), a.PlannedStartTime, a.PlannedEndTime,
				doctorName(a), roomName(a), reason))
	}

	if a.NurseID != nil {
		s.deliver(ctx, *a.NurseID, a.ID, entity.NotificationSurgeryCancelled,
			"手术取消通知",
			fmt.Sprintf("病人 %s 取消了手术预约：\n"+
				"手术名称：%s\n"+
				"原定时间：%s %s - %s\n"+
				"主刀医生：%s\n"+
				"手术室：%s\n"+
				"取消原因：%s\n\n"+
				"您的护理安排已自动取消。",
				patientName(a), a.SurgeryName,
				plannedDate(a), a.PlannedStartTime, a.PlannedEndTime,
				doctorName(a), roomName(a), reason))
	}
}

func (s *notificationService) SurgeryPostponed(ctx context.Context, a *entity.SurgeryAppointment) {
	content := fmt.Sprintf("手术【%s】已延期，原定时间：%s %s，新的时间确定后将另行通知。",
		a.SurgeryName, plannedDate(a), a.PlannedStartTime)

	if a.Patient.UserID != uuid.Nil {
		s.deliver(ctx, a.Patient.UserID, a.ID, entity.NotificationSurgeryUpdate, "手术延期通知", content)
	}
	s.deliver(ctx, a.DoctorID, a.ID, entity.NotificationSurgeryUpdate, "手术延期通知", content)
	if a.AnesthesiologistID != nil {
		s.deliver(ctx, *a.AnesthesiologistID, a.ID, entity.NotificationSurgeryUpdate, "手术延期通知", content)
	}
	if a.NurseID != nil {
		s.deliver(ctx, *a.NurseID, a.ID, entity.NotificationSurgeryUpdate, "手术延期通知", content)
	}
}

func (s *notificationService) SurgeryStarted(ctx context.Context, a *entity.SurgeryAppointment) {
	if a.Patient.UserID != uuid.Nil {
		s.deliver(ctx, a.Patient.UserID, a.ID, entity.NotificationSurgeryUpdate,
			"手术开始",
			fmt.Sprintf("您的手术【%s】已经开始，请耐心等待。", a.SurgeryName))
	}

	teamContent := fmt.Sprintf("手术【%s】已自动开始，请前往手术室。", a.SurgeryName)
	s.deliver(ctx, a.DoctorID, a.ID, entity.NotificationSurgeryUpdate, "手术自动开始", teamContent)
	if a.AnesthesiologistID != nil {
		s.deliver(ctx, *a.AnesthesiologistID, a.ID, entity.NotificationSurgeryUpdate, "手术自动开始", teamContent)
	}
	if a.NurseID != nil {
		s.deliver(ctx, *a.NurseID, a.ID, entity.NotificationSurgeryUpdate, "手术自动开始", teamContent)
	}
}

func (s *notificationService) SurgeryCompleted(ctx context.Context, a *entity.SurgeryAppointment) {
	if a.Patient.UserID != uuid.Nil {
		s.deliver(ctx, a.Patient.UserID, a.ID, entity.NotificationSurgeryComplete,
			"手术完成",
			fmt.Sprintf("您的手术【%s】已成功完成，请遵医嘱进行后续治疗。", a.SurgeryName))
	}
	s.deliver(ctx, a.DoctorID, a.ID, entity.NotificationSurgeryComplete,
		"手术自动完成",
		fmt.Sprintf("手术【%s】已按预定时间完成。", a.SurgeryName))
}

func (s *notificationService) OverdueWarning(ctx context.Context, a *entity.SurgeryAppointment) {
	s.deliver(ctx, a.DoctorID, a.ID, entity.NotificationSurgeryUpdate,
		"手术延期警告",
		fmt.Sprintf("手术【%s】已超过预定开始时间，请尽快处理。", a.SurgeryName))
}
