package ledger

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/mchuang3/dentms/internal/domain/models"
	"github.com/mchuang3/dentms/pkg/clients/notify"
)

// ErrInvalidInput indicates a write payload failed validation.
var ErrInvalidInput = errors.New("invalid input")

// Store is the persistence surface the ledger service writes through.
type Store interface {
	GetDailyRecord(ctx context.Context, clinicID, date string) (*models.DailyAccountingRecord, error)
	SaveDailyRecord(ctx context.Context, record models.DailyAccountingRecord) error
	ListTechnicianRecords(ctx context.Context, clinicID, labName, month string) ([]models.TechnicianRecord, error)
	AddTechnicianRecord(ctx context.Context, record models.TechnicianRecord) (primitive.ObjectID, error)
	GetTechnicianRecord(ctx context.Context, clinicID string, id primitive.ObjectID) (models.TechnicianRecord, error)
	DeleteTechnicianRecord(ctx context.Context, clinicID string, id primitive.ObjectID) error
	ListNHIRecords(ctx context.Context, clinicID, month string) ([]models.NHIRecord, error)
	SaveNHIRecord(ctx context.Context, record models.NHIRecord) error
	ListAdjustments(ctx context.Context, clinicID, month string) ([]models.SalaryAdjustment, error)
	AddAdjustment(ctx context.Context, adjustment models.SalaryAdjustment) (primitive.ObjectID, error)
	GetAdjustment(ctx context.Context, clinicID string, id primitive.ObjectID) (models.SalaryAdjustment, error)
	DeleteAdjustment(ctx context.Context, clinicID string, id primitive.ObjectID) error
}

// LockStore is the month lock state the write paths are gated on.
type LockStore interface {
	GetMonthLock(ctx context.Context, clinicID, month string) (models.MonthLock, error)
	SetMonthLock(ctx context.Context, clinicID, month string, locked bool, actor string) (models.MonthLock, error)
}

// Service owns every mutation of accounting, lab, NHI and adjustment data.
// All of them refuse to touch a locked month. The calculators never write.
type Service struct {
	store    Store
	locks    LockStore
	notifier notify.Sender
	logger   *zap.Logger
}

// NewService wires a new ledger service.
func NewService(store Store, locks LockStore, notifier notify.Sender, logger *zap.Logger) *Service {
	if notifier == nil {
		notifier = notify.Nop{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, locks: locks, notifier: notifier, logger: logger}
}

// guardMonth fails with ErrMonthLocked when the month is closed for edits.
func (s *Service) guardMonth(ctx context.Context, clinicID, month string) error {
	lock, err := s.locks.GetMonthLock(ctx, clinicID, month)
	if err != nil {
		return err
	}
	if lock.Locked {
		return fmt.Errorf("%s/%s: %w", clinicID, month, models.ErrMonthLocked)
	}
	return nil
}

// GetDailyRecord returns the daily record, or an empty one when the day has
// no data yet.
func (s *Service) GetDailyRecord(ctx context.Context, clinicID, date string) (*models.DailyAccountingRecord, error) {
	if _, err := models.ParseDate(date); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}

	record, err := s.store.GetDailyRecord(ctx, clinicID, date)
	if err != nil {
		return nil, err
	}
	if record == nil {
		record = &models.DailyAccountingRecord{ClinicID: clinicID, Date: date, Rows: []models.AccountingRow{}}
	}
	return record, nil
}

// SaveDailyRecord sanitizes and upserts a daily accounting record.
func (s *Service) SaveDailyRecord(ctx context.Context, record models.DailyAccountingRecord) error {
	month, err := models.MonthOfDate(record.Date)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}
	if record.ClinicID == "" {
		return fmt.Errorf("%w: clinic id required", ErrInvalidInput)
	}
	if err := s.guardMonth(ctx, record.ClinicID, month); err != nil {
		return err
	}

	for i := range record.Rows {
		record.Rows[i].Sanitize()
		if !record.Rows[i].Payment.Reconciled() {
			return fmt.Errorf("%w: row %d payment breakdown does not sum to actual collected", ErrInvalidInput, i)
		}
	}

	if err := s.store.SaveDailyRecord(ctx, record); err != nil {
		return err
	}

	s.logger.Info("daily record saved",
		zap.String("clinic_id", record.ClinicID),
		zap.String("date", record.Date),
		zap.Int("rows", len(record.Rows)))
	return nil
}

// ListTechnicianRecords returns the month's lab invoice lines.
func (s *Service) ListTechnicianRecords(ctx context.Context, clinicID, labName, month string) ([]models.TechnicianRecord, error) {
	if _, err := models.ParseMonth(month); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}
	return s.store.ListTechnicianRecords(ctx, clinicID, labName, month)
}

// AddTechnicianRecord validates and inserts one lab invoice line.
func (s *Service) AddTechnicianRecord(ctx context.Context, record models.TechnicianRecord) (primitive.ObjectID, error) {
	month, err := models.MonthOfDate(record.Date)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}
	if !record.Category.Valid() {
		return primitive.NilObjectID, fmt.Errorf("%w: unknown category %q", ErrInvalidInput, record.Category)
	}
	if record.Type != models.TechnicianLinked && record.Type != models.TechnicianManual {
		return primitive.NilObjectID, fmt.Errorf("%w: unknown technician record type %q", ErrInvalidInput, record.Type)
	}
	record.Amount = models.SanitizeAmount(record.Amount)

	if err := s.guardMonth(ctx, record.ClinicID, month); err != nil {
		return primitive.NilObjectID, err
	}
	return s.store.AddTechnicianRecord(ctx, record)
}

// DeleteTechnicianRecord removes one lab invoice line from an open month.
// The lock check uses the record's stored date, never a caller-supplied month.
func (s *Service) DeleteTechnicianRecord(ctx context.Context, clinicID string, id primitive.ObjectID) error {
	record, err := s.store.GetTechnicianRecord(ctx, clinicID, id)
	if err != nil {
		return err
	}
	month, err := models.MonthOfDate(record.Date)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}
	if err := s.guardMonth(ctx, clinicID, month); err != nil {
		return err
	}
	return s.store.DeleteTechnicianRecord(ctx, clinicID, id)
}

// ListNHIRecords returns the month's NHI claim aggregates.
func (s *Service) ListNHIRecords(ctx context.Context, clinicID, month string) ([]models.NHIRecord, error) {
	if _, err := models.ParseMonth(month); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}
	return s.store.ListNHIRecords(ctx, clinicID, month)
}

// SaveNHIRecord upserts a doctor's monthly claim amount.
func (s *Service) SaveNHIRecord(ctx context.Context, record models.NHIRecord) error {
	if _, err := models.ParseMonth(record.Month); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}
	if record.DoctorID == "" {
		return fmt.Errorf("%w: doctor id required", ErrInvalidInput)
	}
	record.Amount = models.SanitizeAmount(record.Amount)

	if err := s.guardMonth(ctx, record.ClinicID, record.Month); err != nil {
		return err
	}
	return s.store.SaveNHIRecord(ctx, record)
}

// ListAdjustments returns the month's manual salary adjustments.
func (s *Service) ListAdjustments(ctx context.Context, clinicID, month string) ([]models.SalaryAdjustment, error) {
	if _, err := models.ParseMonth(month); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}
	return s.store.ListAdjustments(ctx, clinicID, month)
}

// AddAdjustment inserts one manual salary adjustment. Amounts stay signed:
// negative means deduction.
func (s *Service) AddAdjustment(ctx context.Context, adjustment models.SalaryAdjustment) (primitive.ObjectID, error) {
	if _, err := models.ParseMonth(adjustment.Month); err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}
	if adjustment.DoctorID == "" {
		return primitive.NilObjectID, fmt.Errorf("%w: doctor id required", ErrInvalidInput)
	}
	if err := s.guardMonth(ctx, adjustment.ClinicID, adjustment.Month); err != nil {
		return primitive.NilObjectID, err
	}
	return s.store.AddAdjustment(ctx, adjustment)
}

// DeleteAdjustment removes one manual salary adjustment from an open month.
// The lock check uses the adjustment's stored month, never a caller-supplied
// one.
func (s *Service) DeleteAdjustment(ctx context.Context, clinicID string, id primitive.ObjectID) error {
	adjustment, err := s.store.GetAdjustment(ctx, clinicID, id)
	if err != nil {
		return err
	}
	if err := s.guardMonth(ctx, clinicID, adjustment.Month); err != nil {
		return err
	}
	return s.store.DeleteAdjustment(ctx, clinicID, id)
}

// GetMonthLock returns the lock state for a month.
func (s *Service) GetMonthLock(ctx context.Context, clinicID, month string) (models.MonthLock, error) {
	if _, err := models.ParseMonth(month); err != nil {
		return models.MonthLock{}, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}
	return s.locks.GetMonthLock(ctx, clinicID, month)
}

// SetMonthLock locks or unlocks a month, records the audit event and pings
// the webhook. Notification failures are logged, never surfaced: the lock
// state change already happened.
func (s *Service) SetMonthLock(ctx context.Context, clinicID, month string, locked bool, actor string) (models.MonthLock, error) {
	if _, err := models.ParseMonth(month); err != nil {
		return models.MonthLock{}, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}
	if actor == "" {
		return models.MonthLock{}, fmt.Errorf("%w: actor required", ErrInvalidInput)
	}

	lock, err := s.locks.SetMonthLock(ctx, clinicID, month, locked, actor)
	if err != nil {
		return models.MonthLock{}, err
	}

	event := notify.EventMonthUnlocked
	if locked {
		event = notify.EventMonthLocked
	}
	if err := s.notifier.Send(ctx, notify.Event{Event: event, ClinicID: clinicID, Month: month, Actor: actor}); err != nil {
		s.logger.Warn("lock notification failed", zap.Error(err), zap.String("clinic_id", clinicID), zap.String("month", month))
	}

	s.logger.Info("month lock changed",
		zap.String("clinic_id", clinicID),
		zap.String("month", month),
		zap.Bool("locked", locked),
		zap.String("actor", actor))

	return lock, nil
}
