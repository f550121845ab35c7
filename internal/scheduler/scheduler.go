package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mchuang3/dentms/internal/config"
	"github.com/mchuang3/dentms/internal/domain/models"
	"github.com/mchuang3/dentms/internal/service/bonus"
	"github.com/mchuang3/dentms/internal/service/salary"
	"github.com/mchuang3/dentms/pkg/clients/notify"
)

// SnapshotStore persists the month-close results.
type SnapshotStore interface {
	SaveSnapshot(ctx context.Context, snapshot models.MonthlySnapshot) error
}

// Scheduler runs the month-close snapshot job: once the month rolls over it
// computes the previous month's bonus and salary totals per configured clinic
// and stores them for the reporting views.
type Scheduler struct {
	cron      *cron.Cron
	bonusSvc  *bonus.Service
	salarySvc *salary.Service
	snapshots SnapshotStore
	notifier  notify.Sender
	cfg       config.SnapshotConfig
	location  *time.Location
	logger    *zap.Logger
}

// NewScheduler creates a new scheduler instance.
func NewScheduler(cfg config.SnapshotConfig, bonusSvc *bonus.Service, salarySvc *salary.Service, snapshots SnapshotStore, notifier notify.Sender, logger *zap.Logger) (*Scheduler, error) {
	if notifier == nil {
		notifier = notify.Nop{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %s: %w", cfg.Timezone, err)
	}

	return &Scheduler{
		cron:      cron.New(cron.WithLocation(location)),
		bonusSvc:  bonusSvc,
		salarySvc: salarySvc,
		snapshots: snapshots,
		notifier:  notifier,
		cfg:       cfg,
		location:  location,
		logger:    logger,
	}, nil
}

// Start registers and starts the snapshot job. With no clinics configured
// the scheduler stays idle.
func (s *Scheduler) Start() {
	if len(s.cfg.ClinicIDs) == 0 {
		s.logger.Info("no snapshot clinics configured, scheduler idle")
		return
	}

	s.logger.Info("starting scheduler", zap.String("schedule", s.cfg.CronSchedule), zap.Strings("clinics", s.cfg.ClinicIDs))

	if _, err := s.cron.AddFunc(s.cfg.CronSchedule, s.runMonthClose); err != nil {
		s.logger.Error("failed to schedule month close job", zap.Error(err))
		return
	}

	s.cron.Start()
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) runMonthClose() {
	month := models.PreviousMonth(time.Now().In(s.location))
	s.logger.Info("month close snapshot run", zap.String("month", month))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	for _, clinicID := range s.cfg.ClinicIDs {
		if err := s.snapshotClinic(ctx, clinicID, month); err != nil {
			s.logger.Error("month close snapshot failed",
				zap.Error(err),
				zap.String("clinic_id", clinicID),
				zap.String("month", month))
		}
	}
}

func (s *Scheduler) snapshotClinic(ctx context.Context, clinicID, month string) error {
	report, err := s.bonusSvc.Calculate(ctx, clinicID, month)
	if err != nil {
		return fmt.Errorf("bonus: %w", err)
	}

	summary, err := s.salarySvc.Summary(ctx, clinicID, month)
	if err != nil {
		return fmt.Errorf("salary: %w", err)
	}

	snapshot := models.MonthlySnapshot{
		ClinicID:       clinicID,
		Month:          month,
		BonusStaff:     len(report.Staff),
		TotalPool:      report.TotalPool,
		SalaryTotal:    summary.Total,
		GeneratedByJob: true,
	}
	for _, staff := range report.Staff {
		snapshot.BonusTotal += staff.FinalBonus
	}
	for _, statement := range summary.Doctors {
		snapshot.DoctorTotals = append(snapshot.DoctorTotals, models.DoctorTotal{
			DoctorID:   statement.DoctorID,
			DoctorName: statement.DoctorName,
			GrandTotal: statement.GrandTotal,
		})
	}

	if err := s.snapshots.SaveSnapshot(ctx, snapshot); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}

	if err := s.notifier.Send(ctx, notify.Event{
		Event:    notify.EventSnapshotReady,
		ClinicID: clinicID,
		Month:    month,
		Detail:   fmt.Sprintf("bonus=%d staff, salary total %.0f", snapshot.BonusStaff, snapshot.SalaryTotal),
	}); err != nil {
		s.logger.Warn("snapshot notification failed", zap.Error(err), zap.String("clinic_id", clinicID))
	}

	s.logger.Info("month close snapshot stored",
		zap.String("clinic_id", clinicID),
		zap.String("month", month),
		zap.Float64("bonus_total", snapshot.BonusTotal),
		zap.Float64("salary_total", snapshot.SalaryTotal))
	return nil
}
