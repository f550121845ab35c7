package salary

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mchuang3/dentms/internal/domain/models"
)

// AccountingSource provides the flattened month of accounting rows.
type AccountingSource interface {
	LoadMonth(ctx context.Context, clinicID, month string) ([]models.DatedRow, error)
}

// TechnicianStore provides the month's lab invoice lines.
type TechnicianStore interface {
	ListTechnicianRecords(ctx context.Context, clinicID, labName, month string) ([]models.TechnicianRecord, error)
}

// NHIStore provides the month's NHI claim aggregates.
type NHIStore interface {
	ListNHIRecords(ctx context.Context, clinicID, month string) ([]models.NHIRecord, error)
}

// AdjustmentStore provides the month's manual salary adjustments.
type AdjustmentStore interface {
	ListAdjustments(ctx context.Context, clinicID, month string) ([]models.SalaryAdjustment, error)
}

// DoctorDirectory resolves doctors and their commission rates.
type DoctorDirectory interface {
	GetDoctor(ctx context.Context, clinicID, doctorID string) (*models.Doctor, error)
	ListDoctors(ctx context.Context, clinicID string) ([]models.Doctor, error)
}

// Service computes doctor salary statements for a clinic month.
type Service struct {
	accounting  AccountingSource
	technicians TechnicianStore
	nhi         NHIStore
	adjustments AdjustmentStore
	doctors     DoctorDirectory
	logger      *zap.Logger
}

// NewService wires a new salary calculator.
func NewService(accounting AccountingSource, technicians TechnicianStore, nhi NHIStore, adjustments AdjustmentStore, doctors DoctorDirectory, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		accounting:  accounting,
		technicians: technicians,
		nhi:         nhi,
		adjustments: adjustments,
		doctors:     doctors,
		logger:      logger,
	}
}

type monthInputs struct {
	rows        []models.DatedRow
	labs        []models.TechnicianRecord
	nhiRecords  []models.NHIRecord
	adjustments []models.SalaryAdjustment
}

// loadMonthInputs fans out the four independent reads a statement needs and
// joins them. Any single failure fails the batch; partial results are never
// used.
func (s *Service) loadMonthInputs(ctx context.Context, clinicID, month string) (monthInputs, error) {
	var in monthInputs

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		in.rows, err = s.accounting.LoadMonth(gctx, clinicID, month)
		return err
	})
	g.Go(func() (err error) {
		in.labs, err = s.technicians.ListTechnicianRecords(gctx, clinicID, "", month)
		return err
	})
	g.Go(func() (err error) {
		in.nhiRecords, err = s.nhi.ListNHIRecords(gctx, clinicID, month)
		return err
	})
	g.Go(func() (err error) {
		in.adjustments, err = s.adjustments.ListAdjustments(gctx, clinicID, month)
		return err
	})
	if err := g.Wait(); err != nil {
		return monthInputs{}, err
	}
	return in, nil
}

// StatementForDoctor produces the individual-mode statement with full
// line-item detail for one doctor month.
func (s *Service) StatementForDoctor(ctx context.Context, clinicID, doctorID, month string) (*models.SalaryStatement, error) {
	if _, err := models.ParseMonth(month); err != nil {
		return nil, err
	}

	doctor, err := s.doctors.GetDoctor(ctx, clinicID, doctorID)
	if err != nil {
		return nil, err
	}

	in, err := s.loadMonthInputs(ctx, clinicID, month)
	if err != nil {
		return nil, fmt.Errorf("salary statement %s/%s/%s: %w", clinicID, doctorID, month, err)
	}

	statement := BuildStatement(*doctor, clinicID, month, in.rows, in.labs, in.nhiRecords, in.adjustments, true)

	s.logger.Info("salary statement computed",
		zap.String("clinic_id", clinicID),
		zap.String("doctor_id", doctorID),
		zap.String("month", month),
		zap.Float64("grand_total", statement.GrandTotal))

	return statement, nil
}

// Summary produces summary-mode statements for every doctor of the clinic at
// once. The month is read once and shared; statements keep category totals
// only, no line items.
func (s *Service) Summary(ctx context.Context, clinicID, month string) (*models.ClinicSalarySummary, error) {
	if _, err := models.ParseMonth(month); err != nil {
		return nil, err
	}

	var (
		doctors []models.Doctor
		in      monthInputs
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		doctors, err = s.doctors.ListDoctors(gctx, clinicID)
		return err
	})
	g.Go(func() (err error) {
		in, err = s.loadMonthInputs(gctx, clinicID, month)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("salary summary %s/%s: %w", clinicID, month, err)
	}

	summary := &models.ClinicSalarySummary{ClinicID: clinicID, Month: month}
	for _, doctor := range doctors {
		statement := BuildStatement(doctor, clinicID, month, in.rows, in.labs, in.nhiRecords, in.adjustments, false)
		summary.Doctors = append(summary.Doctors, *statement)
		summary.Total += statement.GrandTotal
	}

	s.logger.Info("salary summary computed",
		zap.String("clinic_id", clinicID),
		zap.String("month", month),
		zap.Int("doctors", len(summary.Doctors)),
		zap.Float64("total", summary.Total))

	return summary, nil
}
