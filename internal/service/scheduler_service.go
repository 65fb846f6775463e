package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"surgery-reservation-system/internal/domain/entity"
	"surgery-reservation-system/internal/domain/repository"
	"surgery-reservation-system/pkg/clock"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// sweepAction is what the status sweep decides to do with one appointment.
type sweepAction int

const (
	sweepNone sweepAction = iota
	sweepStart
	sweepComplete
)

// statusSweepAction decides the automatic transition for an appointment at
// the given wall-clock time of day. Times are zero-padded "HH:MM" strings,
// so string comparison is chronological.
//
// NOTIFIED surgeries start once the clock reaches the planned start.
// IN_PROGRESS surgeries complete once the clock passes the planned end.
// Every other status is left alone.
func statusSweepAction(status entity.AppointmentStatus, startTime, endTime, currentTime string) sweepAction {
	switch status {
	case entity.StatusNotified:
		if currentTime >= startTime {
			return sweepStart
		}
	case entity.StatusInProgress:
		if currentTime > endTime {
			return sweepComplete
		}
	}
	return sweepNone
}

// SchedulerService drives the clock-based parts of the surgery workflow:
// a per-minute status sweep that auto-starts and auto-completes surgeries,
// and an hourly sweep that warns doctors about surgeries that never started.
//
// Each appointment is processed in its own transaction so one bad row never
// blocks the rest of the sweep.
type SchedulerService struct {
	db              *gorm.DB
	log             *logrus.Logger
	clk             clock.Clock
	appointmentRepo repository.AppointmentRepository
	notifications   NotificationSink

	statusInterval  time.Duration
	overdueInterval time.Duration

	stopChan chan struct{}
	wg       sync.WaitGroup
	stopped  atomic.Bool
}

func NewSchedulerService(
	db *gorm.DB,
	log *logrus.Logger,
	clk clock.Clock,
	appointmentRepo repository.AppointmentRepository,
	notifications NotificationSink,
	statusInterval time.Duration,
	overdueInterval time.Duration,
) *SchedulerService {
	return &SchedulerService{
		db:              db,
		log:             log,
		clk:             clk,
		appointmentRepo: appointmentRepo,
		notifications:   notifications,
		statusInterval:  statusInterval,
		overdueInterval: overdueInterval,
		stopChan:        make(chan struct{}),
	}
}

// Start launches the sweep goroutines. Call Stop during graceful shutdown.
func (s *SchedulerService) Start() {
	s.wg.Add(2)
	go s.statusSweepLoop()
	go s.overdueSweepLoop()
	s.log.Infof("Scheduler started: status sweep every %v, overdue sweep every %v",
		s.statusInterval, s.overdueInterval)
}

// Stop shuts the sweeps down and waits for in-flight runs to finish.
// Safe to call multiple times.
func (s *SchedulerService) Stop() {
	if s.stopped.CompareAndSwap(false, true) {
		close(s.stopChan)
		s.wg.Wait()
		s.log.Info("Scheduler stopped")
	}
}

func (s *SchedulerService) statusSweepLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.statusInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.RunStatusSweep(context.Background())
		}
	}
}

func (s *SchedulerService) overdueSweepLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.overdueInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.RunOverdueSweep(context.Background())
		}
	}
}

// RunStatusSweep scans today's appointments once and applies any automatic
// transitions that are due.
func (s *SchedulerService) RunStatusSweep(ctx context.Context) {
	now := s.clk.Now()
	currentTime := now.Format("15:04")

	appointments, err := s.appointmentRepo.FindByPlannedDate(s.db.WithContext(ctx), now)
	if err != nil {
		s.log.Errorf("Status sweep failed to load today's appointments: %+v", err)
		return
	}

	for i := range appointments {
		appointment := &appointments[i]
		action := statusSweepAction(appointment.Status, appointment.PlannedStartTime, appointment.PlannedEndTime, currentTime)
		if action == sweepNone {
			continue
		}
		if err := s.applySweepAction(ctx, appointment, action, now); err != nil {
			s.log.Errorf("Status sweep failed for appointment %s: %+v", appointment.ID, err)
		}
	}
}

// applySweepAction re-reads the row under a lock and applies the transition,
// so a concurrent manual start or cancellation wins over the sweep.
func (s *SchedulerService) applySweepAction(ctx context.Context, appointment *entity.SurgeryAppointment, action sweepAction, now time.Time) error {
	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}
	defer tx.Rollback()

	locked, err := s.appointmentRepo.FindByIDForUpdate(tx, appointment.ID)
	if err != nil {
		return err
	}
	if locked == nil {
		return nil
	}

	currentTime := now.Format("15:04")
	if statusSweepAction(locked.Status, locked.PlannedStartTime, locked.PlannedEndTime, currentTime) != action {
		return nil
	}

	switch action {
	case sweepStart:
		if !locked.Status.CanTransitionTo(entity.StatusInProgress) {
			return nil
		}
		locked.Status = entity.StatusInProgress
		startedAt := now
		locked.ActualStartTime = &startedAt
	case sweepComplete:
		if !locked.Status.CanTransitionTo(entity.StatusCompleted) {
			return nil
		}
		locked.Status = entity.StatusCompleted
		endedAt := now
		locked.ActualEndTime = &endedAt
		if locked.PostSurgeryNotes == "" {
			locked.PostSurgeryNotes = "手术按预定时间完成，无特殊情况。"
		}
	}

	if err := s.appointmentRepo.Save(tx, locked); err != nil {
		return err
	}
	if err := tx.Commit().Error; err != nil {
		return err
	}

	switch action {
	case sweepStart:
		s.log.Infof("Auto-started surgery %s (%s) at %s", locked.ID, locked.SurgeryName, currentTime)
		s.notifications.SurgeryStarted(ctx, appointment)
	case sweepComplete:
		s.log.Infof("Auto-completed surgery %s (%s) at %s", locked.ID, locked.SurgeryName, currentTime)
		s.notifications.SurgeryCompleted(ctx, appointment)
	}
	return nil
}

// RunOverdueSweep warns doctors about surgeries past their planned start that
// were never started. Warnings repeat on every sweep until the surgery moves.
func (s *SchedulerService) RunOverdueSweep(ctx context.Context) {
	now := s.clk.Now()
	currentTime := now.Format("15:04")

	overdue, err := s.appointmentRepo.FindOverdue(s.db.WithContext(ctx), now, currentTime)
	if err != nil {
		s.log.Errorf("Overdue sweep failed to load appointments: %+v", err)
		return
	}

	for i := range overdue {
		appointment := &overdue[i]
		s.log.Warnf("Surgery %s (%s) overdue: planned %s, now %s",
			appointment.ID, appointment.SurgeryName, appointment.PlannedStartTime, currentTime)
		s.notifications.OverdueWarning(ctx, appointment)
	}
}
