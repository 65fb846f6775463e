package usecase

import (
	"context"
	"errors"
	"time"

	"surgery-reservation-system/internal/converter"
	"surgery-reservation-system/internal/delivery/dto"
	"surgery-reservation-system/internal/delivery/http/middleware"
	"surgery-reservation-system/internal/domain/entity"
	"surgery-reservation-system/internal/domain/repository"
	"surgery-reservation-system/internal/service"
	"surgery-reservation-system/pkg/clock"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrPatientNotFound     = errors.New("patient not found")
	ErrDoctorNotFound      = errors.New("doctor not found")
	ErrDoctorRequired      = errors.New("doctor_id is required when an admin schedules a surgery")
	ErrStaffNotFound       = errors.New("staff member not found or holds the wrong role")
	ErrRoomNotFound        = errors.New("operating room not found")
	ErrBedNotFound         = errors.New("operating bed not found")
	ErrBedNotInRoom        = errors.New("bed does not belong to the selected room")

	ErrInvalidTimeRange = errors.New("planned end time must be after planned start time")
	ErrPastSurgeryDate  = errors.New("planned date cannot be in the past")
	ErrDoctorConflict   = errors.New("doctor already has a surgery in this time slot")
	ErrRoomConflict     = errors.New("operating room is occupied in this time slot")
	ErrBedConflict      = errors.New("operating bed is occupied in this time slot")

	ErrIllegalTransition  = errors.New("operation not allowed in the current status")
	ErrNotTeamMember      = errors.New("user is not an assigned team member of this surgery")
	ErrNotAttendingDoctor = errors.New("only the attending doctor may perform this action")
	ErrNotOwner           = errors.New("appointment does not belong to you")

	ErrCannotCancel       = errors.New("appointment can no longer be cancelled")
	ErrUserBlacklisted    = errors.New("you are blacklisted from cancelling appointments")
	ErrCancellationLimit  = errors.New("monthly cancellation limit reached")
	ErrCancellationWindow = errors.New("cancellations must be made at least 48 hours before surgery")

	ErrNotCancelled = errors.New("only cancelled appointments can be deleted")
)

type AppointmentUsecase interface {
	CreateAppointment(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	GetAppointment(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error)

	ConfirmByTeamMember(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error)
	DoctorFinalConfirm(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error)
	NotifyPatient(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error)
	StartSurgery(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error)
	CompleteSurgery(ctx context.Context, id uuid.UUID, req *dto.CompleteSurgeryRequest) (*dto.AppointmentResponse, error)

	CancelAppointment(ctx context.Context, id uuid.UUID, req *dto.CancelAppointmentRequest) error
	ForceCancelAppointment(ctx context.Context, id uuid.UUID, req *dto.ForceCancelAppointmentRequest) error

	UpdateAppointment(ctx context.Context, id uuid.UUID, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error)
	PostponeAppointment(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error)
	RescheduleAppointment(ctx context.Context, id uuid.UUID, req *dto.RescheduleAppointmentRequest) (*dto.AppointmentResponse, error)
	DeleteAppointment(ctx context.Context, id uuid.UUID) error

	GetByDate(ctx context.Context, date string) (*dto.AppointmentListResponse, error)
	GetWeek(ctx context.Context, start string) (*dto.AppointmentListResponse, error)
	GetMyAppointments(ctx context.Context) (*dto.AppointmentListResponse, error)
	GetRoomSchedule(ctx context.Context, roomID int, date string) (*dto.AppointmentListResponse, error)
	GetBedSchedule(ctx context.Context, bedID int, date string) (*dto.AppointmentListResponse, error)
	GetPendingConfirmations(ctx context.Context, date string) (*dto.AppointmentListResponse, error)
	SearchByStatuses(ctx context.Context, statuses []string, page, limit int) (*dto.AppointmentListResponse, error)
}

type appointmentUsecase struct {
	db  *gorm.DB
	log *logrus.Logger
	clk clock.Clock

	appointmentRepo  repository.AppointmentRepository
	patientRepo      repository.PatientRepository
	userRepo         repository.UserRepository
	roomRepo         repository.OperatingRoomRepository
	bedRepo          repository.OperatingBedRepository
	cancellationRepo repository.CancellationRecordRepository
	blacklistRepo    repository.BlacklistRepository
	notificationRepo repository.NotificationRepository

	notifications  service.NotificationSink
	patientEffects service.PatientEffects
	auditService   service.AuditService
}

func NewAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	clk clock.Clock,
	appointmentRepo repository.AppointmentRepository,
	patientRepo repository.PatientRepository,
	userRepo repository.UserRepository,
	roomRepo repository.OperatingRoomRepository,
	bedRepo repository.OperatingBedRepository,
	cancellationRepo repository.CancellationRecordRepository,
	blacklistRepo repository.BlacklistRepository,
	notificationRepo repository.NotificationRepository,
	notifications service.NotificationSink,
	patientEffects service.PatientEffects,
	auditService service.AuditService,
) AppointmentUsecase {
	return &appointmentUsecase{
		db:               db,
		log:              log,
		clk:              clk,
		appointmentRepo:  appointmentRepo,
		patientRepo:      patientRepo,
		userRepo:         userRepo,
		roomRepo:         roomRepo,
		bedRepo:          bedRepo,
		cancellationRepo: cancellationRepo,
		blacklistRepo:    blacklistRepo,
		notificationRepo: notificationRepo,
		notifications:    notifications,
		patientEffects:   patientEffects,
		auditService:     auditService,
	}
}

// lockAppointment reads the row FOR UPDATE inside the caller's transaction.
func (u *appointmentUsecase) lockAppointment(tx *gorm.DB, id uuid.UUID) (*entity.SurgeryAppointment, error) {
	appointment, err := u.appointmentRepo.FindByIDForUpdate(tx, id)
	if err != nil {
		u.log.Warnf("Failed to lock appointment %s: %+v", id, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	return appointment, nil
}

// checkConflicts rejects the candidate when its doctor, room or bed already
// has a live appointment overlapping the planned window on that date. Runs
// inside the caller's transaction so the check and the insert are atomic.
func (u *appointmentUsecase) checkConflicts(tx *gorm.DB, candidate *entity.SurgeryAppointment, excludeID uuid.UUID) error {
	live, err := u.appointmentRepo.FindLiveForDate(tx, candidate.PlannedDate)
	if err != nil {
		return err
	}
	var doctorSlots []entity.SurgeryAppointment
	for i := range live {
		if live[i].DoctorID == candidate.DoctorID {
			doctorSlots = append(doctorSlots, live[i])
		}
	}
	if overlapsAny(doctorSlots, candidate, excludeID) {
		return ErrDoctorConflict
	}

	roomSlots, err := u.appointmentRepo.FindRoomScheduleForDate(tx, candidate.RoomID, candidate.PlannedDate)
	if err != nil {
		return err
	}
	if overlapsAny(roomSlots, candidate, excludeID) {
		return ErrRoomConflict
	}

	bedSlots, err := u.appointmentRepo.FindBedScheduleForDate(tx, candidate.BedID, candidate.PlannedDate)
	if err != nil {
		return err
	}
	if overlapsAny(bedSlots, candidate, excludeID) {
		return ErrBedConflict
	}
	return nil
}

func (u *appointmentUsecase) transition(appointment *entity.SurgeryAppointment, next entity.AppointmentStatus) error {
	if !appointment.Status.CanTransitionTo(next) {
		return ErrIllegalTransition
	}
	appointment.Status = next
	return nil
}

// detail reloads an appointment with all relationships, for responses and
// notification bodies.
func (u *appointmentUsecase) detail(ctx context.Context, id uuid.UUID) (*entity.SurgeryAppointment, error) {
	appointment, err := u.appointmentRepo.FindByIDWithDetails(u.db.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	return appointment, nil
}

func (u *appointmentUsecase) today() time.Time {
	now := u.clk.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

// parsePlannedDate reads a YYYY-MM-DD date at midnight in the clock's
// timezone. Parsing in UTC would shift midnight by the zone offset and make
// same-day dates compare as past in zones behind UTC.
func (u *appointmentUsecase) parsePlannedDate(s string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", s, u.clk.Now().Location())
}

func (u *appointmentUsecase) CreateAppointment(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	actorID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUserNotFound
	}
	roleID, _ := middleware.GetRoleIDFromContext(ctx)

	if req.PlannedStartTime >= req.PlannedEndTime {
		return nil, ErrInvalidTimeRange
	}
	plannedDate, err := u.parsePlannedDate(req.PlannedDate)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}
	if plannedDate.Before(u.today()) {
		return nil, ErrPastSurgeryDate
	}

	// Doctors schedule their own surgeries; admins schedule on behalf of one.
	doctorID := actorID
	if roleID == entity.RoleIDAdmin {
		if req.DoctorID == "" {
			return nil, ErrDoctorRequired
		}
		doctorID, err = uuid.Parse(req.DoctorID)
		if err != nil {
			return nil, ErrDoctorNotFound
		}
	}

	patientID, err := uuid.Parse(req.PatientID)
	if err != nil {
		return nil, ErrPatientNotFound
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	doctor, err := u.userRepo.FindByIDAndRole(tx, doctorID, entity.RoleIDDoctor)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", doctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	patient, err := u.patientRepo.FindByID(tx, patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", patientID, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	room, err := u.roomRepo.FindByID(tx, req.RoomID)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, ErrRoomNotFound
	}
	bed, err := u.bedRepo.FindByID(tx, req.BedID)
	if err != nil {
		return nil, err
	}
	if bed == nil {
		return nil, ErrBedNotFound
	}
	if bed.RoomID != room.ID {
		return nil, ErrBedNotInRoom
	}

	priority := entity.SeverityLevel(req.PriorityLevel)
	if priority == "" {
		priority = patient.SeverityLevel
	}

	appointment := &entity.SurgeryAppointment{
		PatientID:          patientID,
		DoctorID:           doctorID,
		RoomID:             req.RoomID,
		BedID:              req.BedID,
		CreatedByID:        actorID,
		SurgeryName:        req.SurgeryName,
		SurgeryType:        req.SurgeryType,
		SurgeryDescription: req.SurgeryDescription,
		PreSurgeryNotes:    req.PreSurgeryNotes,
		PlannedDate:        plannedDate,
		PlannedStartTime:   req.PlannedStartTime,
		PlannedEndTime:     req.PlannedEndTime,
		EstimatedDuration:  req.EstimatedDuration,
		Status:             entity.StatusScheduled,
		PriorityLevel:      priority,
	}

	if req.AnesthesiologistID != "" {
		id, perr := uuid.Parse(req.AnesthesiologistID)
		if perr != nil {
			return nil, ErrStaffNotFound
		}
		staff, serr := u.userRepo.FindByIDAndRole(tx, id, entity.RoleIDAnesthesiologist)
		if serr != nil {
			return nil, serr
		}
		if staff == nil {
			return nil, ErrStaffNotFound
		}
		appointment.AnesthesiologistID = &id
	}
	if req.NurseID != "" {
		id, perr := uuid.Parse(req.NurseID)
		if perr != nil {
			return nil, ErrStaffNotFound
		}
		staff, serr := u.userRepo.FindByIDAndRole(tx, id, entity.RoleIDNurse)
		if serr != nil {
			return nil, serr
		}
		if staff == nil {
			return nil, ErrStaffNotFound
		}
		appointment.NurseID = &id
	}

	if err := u.checkConflicts(tx, appointment, uuid.Nil); err != nil {
		return nil, err
	}

	// With a team attached the confirmation round starts immediately.
	if appointment.HasTeamAssigned() {
		appointment.Status = entity.StatusPendingConfirmation
	}

	if err := u.appointmentRepo.Create(tx, appointment); err != nil {
		u.log.Warnf("Failed to create appointment: %+v", err)
		return nil, err
	}

	if err := u.patientEffects.MarkScheduled(tx, patientID); err != nil {
		u.log.Warnf("Failed to mark patient %s scheduled: %+v", patientID, err)
		return nil, err
	}

	u.auditService.LogCreate(ctx, tx, &actorID, entity.AuditActionAppointmentCreate,
		"surgery_appointment", appointment.ID.String(), appointment)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	detail, err := u.detail(ctx, appointment.ID)
	if err != nil {
		return nil, err
	}

	u.notifications.SurgeryScheduled(ctx, detail)
	if detail.Status == entity.StatusPendingConfirmation {
		u.notifications.TeamConfirmationRequest(ctx, detail)
	}

	return converter.AppointmentToResponse(detail), nil
}

func (u *appointmentUsecase) GetAppointment(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error) {
	detail, err := u.detail(ctx, id)
	if err != nil {
		return nil, err
	}
	return converter.AppointmentToResponse(detail), nil
}

func (u *appointmentUsecase) ConfirmByTeamMember(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error) {
	actorID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUserNotFound
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	appointment, err := u.lockAppointment(tx, id)
	if err != nil {
		return nil, err
	}

	role, isMember := appointment.TeamRoleOf(actorID)
	if !isMember {
		return nil, ErrNotTeamMember
	}

	if appointment.Status != entity.StatusPendingConfirmation {
		// A repeat confirmation after the workflow advanced is harmless.
		if appointment.RoleConfirmed(role) {
			tx.Rollback()
			detail, derr := u.detail(ctx, id)
			if derr != nil {
				return nil, derr
			}
			return converter.AppointmentToResponse(detail), nil
		}
		return nil, ErrIllegalTransition
	}

	appointment.ConfirmRole(role, u.clk.Now())

	advanced := false
	if appointment.AllTeamConfirmed() {
		if err := u.transition(appointment, entity.StatusTeamConfirmed); err != nil {
			return nil, err
		}
		advanced = true
	}

	if err := u.appointmentRepo.Save(tx, appointment); err != nil {
		u.log.Warnf("Failed to save confirmation for appointment %s: %+v", id, err)
		return nil, err
	}

	u.auditService.LogUpdate(ctx, tx, &actorID, entity.AuditActionAppointmentConfirm,
		"surgery_appointment", appointment.ID.String(), string(role), appointment.Status)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	detail, err := u.detail(ctx, id)
	if err != nil {
		return nil, err
	}
	if advanced {
		u.notifications.DoctorFinalConfirmationRequest(ctx, detail)
	}
	return converter.AppointmentToResponse(detail), nil
}

func (u *appointmentUsecase) DoctorFinalConfirm(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error) {
	actorID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUserNotFound
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	appointment, err := u.lockAppointment(tx, id)
	if err != nil {
		return nil, err
	}
	if appointment.DoctorID != actorID {
		return nil, ErrNotAttendingDoctor
	}
	if err := u.transition(appointment, entity.StatusDoctorFinalConfirmed); err != nil {
		return nil, err
	}

	now := u.clk.Now()
	appointment.DoctorFinalConfirmed = true
	appointment.DoctorFinalConfirmedAt = &now

	if err := u.appointmentRepo.Save(tx, appointment); err != nil {
		u.log.Warnf("Failed to save final confirmation for appointment %s: %+v", id, err)
		return nil, err
	}

	u.auditService.LogUpdate(ctx, tx, &actorID, entity.AuditActionAppointmentConfirm,
		"surgery_appointment", appointment.ID.String(), entity.StatusTeamConfirmed, appointment.Status)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	detail, err := u.detail(ctx, id)
	if err != nil {
		return nil, err
	}
	return converter.AppointmentToResponse(detail), nil
}

func (u *appointmentUsecase) NotifyPatient(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error) {
	actorID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUserNotFound
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	appointment, err := u.lockAppointment(tx, id)
	if err != nil {
		return nil, err
	}
	if err := u.transition(appointment, entity.StatusNotified); err != nil {
		return nil, err
	}
	if err := u.appointmentRepo.Save(tx, appointment); err != nil {
		u.log.Warnf("Failed to save appointment %s: %+v", id, err)
		return nil, err
	}

	u.auditService.LogUpdate(ctx, tx, &actorID, entity.AuditActionAppointmentUpdate,
		"surgery_appointment", appointment.ID.String(), entity.StatusDoctorFinalConfirmed, appointment.Status)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	detail, err := u.detail(ctx, id)
	if err != nil {
		return nil, err
	}
	u.notifications.PatientSurgeryNotice(ctx, detail)
	return converter.AppointmentToResponse(detail), nil
}

func (u *appointmentUsecase) StartSurgery(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error) {
	actorID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUserNotFound
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	appointment, err := u.lockAppointment(tx, id)
	if err != nil {
		return nil, err
	}
	if err := u.transition(appointment, entity.StatusInProgress); err != nil {
		return nil, err
	}
	now := u.clk.Now()
	appointment.ActualStartTime = &now

	if err := u.appointmentRepo.Save(tx, appointment); err != nil {
		u.log.Warnf("Failed to start surgery %s: %+v", id, err)
		return nil, err
	}

	u.auditService.LogUpdate(ctx, tx, &actorID, entity.AuditActionAppointmentUpdate,
		"surgery_appointment", appointment.ID.String(), entity.StatusNotified, appointment.Status)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	detail, err := u.detail(ctx, id)
	if err != nil {
		return nil, err
	}
	u.notifications.SurgeryStarted(ctx, detail)
	return converter.AppointmentToResponse(detail), nil
}

func (u *appointmentUsecase) CompleteSurgery(ctx context.Context, id uuid.UUID, req *dto.CompleteSurgeryRequest) (*dto.AppointmentResponse, error) {
	actorID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUserNotFound
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	appointment, err := u.lockAppointment(tx, id)
	if err != nil {
		return nil, err
	}
	if err := u.transition(appointment, entity.StatusCompleted); err != nil {
		return nil, err
	}

	now := u.clk.Now()
	appointment.ActualEndTime = &now
	if req != nil && req.PostSurgeryNotes != "" {
		appointment.PostSurgeryNotes = req.PostSurgeryNotes
	} else if appointment.PostSurgeryNotes == "" {
		appointment.PostSurgeryNotes = "手术按预定时间完成，无特殊情况。"
	}

	if err := u.appointmentRepo.Save(tx, appointment); err != nil {
		u.log.Warnf("Failed to complete surgery %s: %+v", id, err)
		return nil, err
	}

	if err := u.patientEffects.MarkCompleted(tx, appointment.PatientID, u.today()); err != nil {
		u.log.Warnf("Failed to mark patient %s completed: %+v", appointment.PatientID, err)
		return nil, err
	}

	u.auditService.LogUpdate(ctx, tx, &actorID, entity.AuditActionAppointmentUpdate,
		"surgery_appointment", appointment.ID.String(), entity.StatusInProgress, appointment.Status)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	detail, err := u.detail(ctx, id)
	if err != nil {
		return nil, err
	}
	u.notifications.SurgeryCompleted(ctx, detail)
	return converter.AppointmentToResponse(detail), nil
}

// CancelAppointment is the patient self-service path with the full
// cancellation policy applied.
func (u *appointmentUsecase) CancelAppointment(ctx context.Context, id uuid.UUID, req *dto.CancelAppointmentRequest) error {
	actorID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return ErrUserNotFound
	}

	now := u.clk.Now()

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	appointment, err := u.lockAppointment(tx, id)
	if err != nil {
		return err
	}

	patient, err := u.patientRepo.FindByID(tx, appointment.PatientID)
	if err != nil {
		return err
	}
	if patient == nil {
		return ErrPatientNotFound
	}
	if patient.UserID != actorID {
		return ErrNotOwner
	}

	blacklisted, err := u.blacklistRepo.IsBlacklisted(tx, actorID, now)
	if err != nil {
		u.log.Warnf("Failed to check blacklist for user %s: %+v", actorID, err)
		return err
	}

	monthCount, err := u.cancellationRepo.CountByUserAndMonth(tx, actorID, now.Year(), int(now.Month()))
	if err != nil {
		u.log.Warnf("Failed to count cancellations for user %s: %+v", actorID, err)
		return err
	}

	plannedStart, err := appointment.PlannedStartAt(now.Location())
	if err != nil {
		return err
	}
	hoursBefore := hoursBeforeSurgery(now, plannedStart)

	if err := validateCancellation(appointment.Status, blacklisted, monthCount, hoursBefore); err != nil {
		return err
	}

	oldStatus := appointment.Status
	if err := u.transition(appointment, entity.StatusCancelled); err != nil {
		return err
	}
	appointment.CancelReason = req.Reason

	if err := u.appointmentRepo.Save(tx, appointment); err != nil {
		u.log.Warnf("Failed to cancel appointment %s: %+v", id, err)
		return err
	}

	record := &entity.CancellationRecord{
		UserID:             actorID,
		AppointmentID:      appointment.ID,
		CancellationDate:   u.today(),
		CancellationTime:   now,
		HoursBeforeSurgery: hoursBefore,
		Reason:             req.Reason,
	}
	if err := u.cancellationRepo.Create(tx, record); err != nil {
		u.log.Warnf("Failed to create cancellation record: %+v", err)
		return err
	}

	if err := u.patientEffects.MarkWaiting(tx, appointment.PatientID); err != nil {
		u.log.Warnf("Failed to mark patient %s waiting: %+v", appointment.PatientID, err)
		return err
	}

	u.auditService.LogUpdate(ctx, tx, &actorID, entity.AuditActionAppointmentCancel,
		"surgery_appointment", appointment.ID.String(), oldStatus, appointment.Status)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	detail, err := u.detail(ctx, id)
	if err == nil {
		u.notifications.SurgeryCancelled(ctx, detail)
	}
	return nil
}

// ForceCancelAppointment is the admin override: no window, limit or
// blacklist preconditions. A short-notice force cancel still counts against
// the patient and blacklists them for a month.
func (u *appointmentUsecase) ForceCancelAppointment(ctx context.Context, id uuid.UUID, req *dto.ForceCancelAppointmentRequest) error {
	actorID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return ErrUserNotFound
	}

	now := u.clk.Now()

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	appointment, err := u.lockAppointment(tx, id)
	if err != nil {
		return err
	}
	if !appointment.Status.CanBeCancelled() {
		return ErrCannotCancel
	}

	patient, err := u.patientRepo.FindByID(tx, appointment.PatientID)
	if err != nil {
		return err
	}
	if patient == nil {
		return ErrPatientNotFound
	}

	plannedStart, err := appointment.PlannedStartAt(now.Location())
	if err != nil {
		return err
	}
	hoursBefore := hoursBeforeSurgery(now, plannedStart)

	oldStatus := appointment.Status
	if err := u.transition(appointment, entity.StatusCancelled); err != nil {
		return err
	}
	appointment.CancelReason = req.Reason

	if err := u.appointmentRepo.Save(tx, appointment); err != nil {
		u.log.Warnf("Failed to force-cancel appointment %s: %+v", id, err)
		return err
	}

	record := &entity.CancellationRecord{
		UserID:             patient.UserID,
		AppointmentID:      appointment.ID,
		CancellationDate:   u.today(),
		CancellationTime:   now,
		HoursBeforeSurgery: hoursBefore,
		Reason:             req.Reason,
	}
	if err := u.cancellationRepo.Create(tx, record); err != nil {
		u.log.Warnf("Failed to create cancellation record: %+v", err)
		return err
	}

	if hoursBefore < cancellationWindowHours {
		entry := &entity.Blacklist{
			UserID:      patient.UserID,
			Reason:      "手术前48小时内取消预约",
			StartDate:   u.today(),
			EndDate:     blacklistUntil(u.today()),
			CreatedByID: actorID,
		}
		if err := u.blacklistRepo.Create(tx, entry); err != nil {
			u.log.Warnf("Failed to create blacklist entry for user %s: %+v", patient.UserID, err)
			return err
		}
	}

	if err := u.patientEffects.MarkWaiting(tx, appointment.PatientID); err != nil {
		u.log.Warnf("Failed to mark patient %s waiting: %+v", appointment.PatientID, err)
		return err
	}

	u.auditService.LogUpdate(ctx, tx, &actorID, entity.AuditActionAppointmentForceCancel,
		"surgery_appointment", appointment.ID.String(), oldStatus, appointment.Status)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	detail, err := u.detail(ctx, id)
	if err == nil {
		u.notifications.SurgeryCancelled(ctx, detail)
	}
	return nil
}

func (u *appointmentUsecase) UpdateAppointment(ctx context.Context, id uuid.UUID, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error) {
	actorID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUserNotFound
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	appointment, err := u.lockAppointment(tx, id)
	if err != nil {
		return nil, err
	}
	if appointment.Status == entity.StatusCompleted || appointment.Status == entity.StatusCancelled {
		return nil, ErrIllegalTransition
	}

	oldStatus := appointment.Status
	scheduleChanged := false

	if req.SurgeryName != nil {
		appointment.SurgeryName = *req.SurgeryName
	}
	if req.SurgeryType != nil {
		appointment.SurgeryType = *req.SurgeryType
	}
	if req.SurgeryDescription != nil {
		appointment.SurgeryDescription = *req.SurgeryDescription
	}
	if req.PreSurgeryNotes != nil {
		appointment.PreSurgeryNotes = *req.PreSurgeryNotes
	}
	if req.PriorityLevel != nil {
		appointment.PriorityLevel = entity.SeverityLevel(*req.PriorityLevel)
	}
	if req.EstimatedDuration != nil {
		appointment.EstimatedDuration = *req.EstimatedDuration
	}

	if req.PlannedDate != nil {
		date, perr := u.parsePlannedDate(*req.PlannedDate)
		if perr != nil {
			return nil, ErrInvalidDateFormat
		}
		appointment.PlannedDate = date
		scheduleChanged = true
	}
	if req.PlannedStartTime != nil {
		appointment.PlannedStartTime = *req.PlannedStartTime
		scheduleChanged = true
	}
	if req.PlannedEndTime != nil {
		appointment.PlannedEndTime = *req.PlannedEndTime
		scheduleChanged = true
	}
	if appointment.PlannedStartTime >= appointment.PlannedEndTime {
		return nil, ErrInvalidTimeRange
	}

	if req.RoomID != nil || req.BedID != nil {
		roomID := appointment.RoomID
		bedID := appointment.BedID
		if req.RoomID != nil {
			roomID = *req.RoomID
		}
		if req.BedID != nil {
			bedID = *req.BedID
		}
		room, rerr := u.roomRepo.FindByID(tx, roomID)
		if rerr != nil {
			return nil, rerr
		}
		if room == nil {
			return nil, ErrRoomNotFound
		}
		bed, berr := u.bedRepo.FindByID(tx, bedID)
		if berr != nil {
			return nil, berr
		}
		if bed == nil {
			return nil, ErrBedNotFound
		}
		if bed.RoomID != room.ID {
			return nil, ErrBedNotInRoom
		}
		appointment.RoomID = roomID
		appointment.BedID = bedID
		scheduleChanged = true
	}

	// Reassigning a team member resets that role's confirmation.
	if req.AnesthesiologistID != nil {
		staffID, perr := uuid.Parse(*req.AnesthesiologistID)
		if perr != nil {
			return nil, ErrStaffNotFound
		}
		staff, serr := u.userRepo.FindByIDAndRole(tx, staffID, entity.RoleIDAnesthesiologist)
		if serr != nil {
			return nil, serr
		}
		if staff == nil {
			return nil, ErrStaffNotFound
		}
		if appointment.AnesthesiologistID == nil || *appointment.AnesthesiologistID != staffID {
			appointment.AnesthesiologistID = &staffID
			appointment.AnesthesiologistConfirmed = false
			appointment.AnesthesiologistConfirmedAt = nil
		}
	}
	if req.NurseID != nil {
		staffID, perr := uuid.Parse(*req.NurseID)
		if perr != nil {
			return nil, ErrStaffNotFound
		}
		staff, serr := u.userRepo.FindByIDAndRole(tx, staffID, entity.RoleIDNurse)
		if serr != nil {
			return nil, serr
		}
		if staff == nil {
			return nil, ErrStaffNotFound
		}
		if appointment.NurseID == nil || *appointment.NurseID != staffID {
			appointment.NurseID = &staffID
			appointment.NurseConfirmed = false
			appointment.NurseConfirmedAt = nil
		}
	}

	if scheduleChanged {
		if err := u.checkConflicts(tx, appointment, appointment.ID); err != nil {
			return nil, err
		}
	}

	if err := u.appointmentRepo.Save(tx, appointment); err != nil {
		u.log.Warnf("Failed to update appointment %s: %+v", id, err)
		return nil, err
	}

	u.auditService.LogUpdate(ctx, tx, &actorID, entity.AuditActionAppointmentUpdate,
		"surgery_appointment", appointment.ID.String(), oldStatus, appointment)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	detail, err := u.detail(ctx, id)
	if err != nil {
		return nil, err
	}
	u.notifications.SurgeryUpdated(ctx, detail)
	return converter.AppointmentToResponse(detail), nil
}

func (u *appointmentUsecase) PostponeAppointment(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error) {
	actorID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUserNotFound
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	appointment, err := u.lockAppointment(tx, id)
	if err != nil {
		return nil, err
	}
	oldStatus := appointment.Status
	if err := u.transition(appointment, entity.StatusPostponed); err != nil {
		return nil, err
	}

	if err := u.appointmentRepo.Save(tx, appointment); err != nil {
		u.log.Warnf("Failed to postpone appointment %s: %+v", id, err)
		return nil, err
	}

	u.auditService.LogUpdate(ctx, tx, &actorID, entity.AuditActionAppointmentUpdate,
		"surgery_appointment", appointment.ID.String(), oldStatus, appointment.Status)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	detail, err := u.detail(ctx, id)
	if err != nil {
		return nil, err
	}
	u.notifications.SurgeryPostponed(ctx, detail)
	return converter.AppointmentToResponse(detail), nil
}

// RescheduleAppointment moves a postponed surgery back onto the calendar.
// Confirmations restart from scratch at the new slot.
func (u *appointmentUsecase) RescheduleAppointment(ctx context.Context, id uuid.UUID, req *dto.RescheduleAppointmentRequest) (*dto.AppointmentResponse, error) {
	actorID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUserNotFound
	}

	if req.PlannedStartTime >= req.PlannedEndTime {
		return nil, ErrInvalidTimeRange
	}
	plannedDate, err := u.parsePlannedDate(req.PlannedDate)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}
	if plannedDate.Before(u.today()) {
		return nil, ErrPastSurgeryDate
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	appointment, err := u.lockAppointment(tx, id)
	if err != nil {
		return nil, err
	}
	if err := u.transition(appointment, entity.StatusScheduled); err != nil {
		return nil, err
	}

	appointment.PlannedDate = plannedDate
	appointment.PlannedStartTime = req.PlannedStartTime
	appointment.PlannedEndTime = req.PlannedEndTime
	if req.RoomID != nil {
		appointment.RoomID = *req.RoomID
	}
	if req.BedID != nil {
		appointment.BedID = *req.BedID
	}

	bed, err := u.bedRepo.FindByID(tx, appointment.BedID)
	if err != nil {
		return nil, err
	}
	if bed == nil {
		return nil, ErrBedNotFound
	}
	if bed.RoomID != appointment.RoomID {
		return nil, ErrBedNotInRoom
	}

	appointment.AnesthesiologistConfirmed = false
	appointment.AnesthesiologistConfirmedAt = nil
	appointment.NurseConfirmed = false
	appointment.NurseConfirmedAt = nil
	appointment.DoctorFinalConfirmed = false
	appointment.DoctorFinalConfirmedAt = nil

	if err := u.checkConflicts(tx, appointment, appointment.ID); err != nil {
		return nil, err
	}

	if appointment.HasTeamAssigned() {
		if err := u.transition(appointment, entity.StatusPendingConfirmation); err != nil {
			return nil, err
		}
	}

	if err := u.appointmentRepo.Save(tx, appointment); err != nil {
		u.log.Warnf("Failed to reschedule appointment %s: %+v", id, err)
		return nil, err
	}

	u.auditService.LogUpdate(ctx, tx, &actorID, entity.AuditActionAppointmentUpdate,
		"surgery_appointment", appointment.ID.String(), entity.StatusPostponed, appointment.Status)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	detail, err := u.detail(ctx, id)
	if err != nil {
		return nil, err
	}
	u.notifications.SurgeryUpdated(ctx, detail)
	if detail.Status == entity.StatusPendingConfirmation {
		u.notifications.TeamConfirmationRequest(ctx, detail)
	}
	return converter.AppointmentToResponse(detail), nil
}

// DeleteAppointment hard-deletes a cancelled appointment together with its
// notifications and cancellation records.
func (u *appointmentUsecase) DeleteAppointment(ctx context.Context, id uuid.UUID) error {
	actorID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return ErrUserNotFound
	}
	roleID, _ := middleware.GetRoleIDFromContext(ctx)

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	appointment, err := u.lockAppointment(tx, id)
	if err != nil {
		return err
	}
	if appointment.Status != entity.StatusCancelled {
		return ErrNotCancelled
	}
	if roleID != entity.RoleIDAdmin && appointment.DoctorID != actorID {
		return ErrNotAttendingDoctor
	}

	if err := u.notificationRepo.DeleteByAppointmentID(tx, id); err != nil {
		u.log.Warnf("Failed to delete notifications for appointment %s: %+v", id, err)
		return err
	}
	if err := u.cancellationRepo.DeleteByAppointmentID(tx, id); err != nil {
		u.log.Warnf("Failed to delete cancellation records for appointment %s: %+v", id, err)
		return err
	}
	if err := u.appointmentRepo.Delete(tx, id); err != nil {
		u.log.Warnf("Failed to delete appointment %s: %+v", id, err)
		return err
	}

	u.auditService.LogDelete(ctx, tx, &actorID, entity.AuditActionAppointmentDelete,
		"surgery_appointment", appointment.ID.String(), appointment)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}
	return nil
}

func (u *appointmentUsecase) GetByDate(ctx context.Context, date string) (*dto.AppointmentListResponse, error) {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}
	appointments, err := u.appointmentRepo.FindByPlannedDate(u.db.WithContext(ctx), day)
	if err != nil {
		return nil, err
	}
	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        int64(len(appointments)),
	}, nil
}

func (u *appointmentUsecase) GetWeek(ctx context.Context, start string) (*dto.AppointmentListResponse, error) {
	first, err := time.Parse("2006-01-02", start)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}
	appointments, err := u.appointmentRepo.FindBetweenDates(u.db.WithContext(ctx), first, first.AddDate(0, 0, 6))
	if err != nil {
		return nil, err
	}
	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        int64(len(appointments)),
	}, nil
}

// GetMyAppointments dispatches on the caller's role: patients see their own
// surgeries, doctors their operating list, team staff their assignments.
func (u *appointmentUsecase) GetMyAppointments(ctx context.Context) (*dto.AppointmentListResponse, error) {
	actorID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUserNotFound
	}
	roleID, _ := middleware.GetRoleIDFromContext(ctx)

	var appointments []entity.SurgeryAppointment
	var err error

	switch roleID {
	case entity.RoleIDPatient:
		patient, perr := u.patientRepo.FindByUserID(u.db.WithContext(ctx), actorID)
		if perr != nil {
			return nil, perr
		}
		if patient == nil {
			return nil, ErrPatientNotFound
		}
		appointments, err = u.appointmentRepo.FindByPatient(u.db.WithContext(ctx), patient.ID)
	case entity.RoleIDDoctor:
		appointments, err = u.appointmentRepo.FindByDoctor(u.db.WithContext(ctx), actorID)
	default:
		appointments, err = u.appointmentRepo.FindByTeamMember(u.db.WithContext(ctx), actorID)
	}
	if err != nil {
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        int64(len(appointments)),
	}, nil
}

func (u *appointmentUsecase) GetRoomSchedule(ctx context.Context, roomID int, date string) (*dto.AppointmentListResponse, error) {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}
	appointments, err := u.appointmentRepo.FindRoomScheduleForDate(u.db.WithContext(ctx), roomID, day)
	if err != nil {
		return nil, err
	}
	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        int64(len(appointments)),
	}, nil
}

func (u *appointmentUsecase) GetBedSchedule(ctx context.Context, bedID int, date string) (*dto.AppointmentListResponse, error) {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}
	appointments, err := u.appointmentRepo.FindBedScheduleForDate(u.db.WithContext(ctx), bedID, day)
	if err != nil {
		return nil, err
	}
	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        int64(len(appointments)),
	}, nil
}

func (u *appointmentUsecase) GetPendingConfirmations(ctx context.Context, date string) (*dto.AppointmentListResponse, error) {
	actorID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUserNotFound
	}
	day := u.today()
	if date != "" {
		parsed, err := time.Parse("2006-01-02", date)
		if err != nil {
			return nil, ErrInvalidDateFormat
		}
		day = parsed
	}
	appointments, err := u.appointmentRepo.FindPendingConfirmationsForStaff(u.db.WithContext(ctx), actorID, day)
	if err != nil {
		return nil, err
	}
	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        int64(len(appointments)),
	}, nil
}

func (u *appointmentUsecase) SearchByStatuses(ctx context.Context, statuses []string, page, limit int) (*dto.AppointmentListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	if len(statuses) == 0 {
		statuses = []string{string(entity.StatusScheduled)}
	}
	set := make([]entity.AppointmentStatus, 0, len(statuses))
	for _, s := range statuses {
		set = append(set, entity.AppointmentStatus(s))
	}

	appointments, total, err := u.appointmentRepo.FindByStatuses(u.db.WithContext(ctx), set, page, limit)
	if err != nil {
		return nil, err
	}
	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        total,
	}, nil
}
