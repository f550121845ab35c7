package export

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/mchuang3/dentms/internal/domain/models"
	repo "github.com/mchuang3/dentms/internal/repository/sheets"
)

const (
	salarySheetRange = "Salary!A:H"
	bonusSheetRange  = "Bonus!A:H"
)

// Service flattens reports into spreadsheet rows and appends them to the
// configured sheet. Every category total and every adjustment becomes a
// distinct row, followed by exactly one grand total row; layout beyond that
// is the spreadsheet's problem.
type Service struct {
	writer repo.Writer
	logger *zap.Logger
}

// NewService wires a new export service.
func NewService(writer repo.Writer, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{writer: writer, logger: logger}
}

// ExportSalaryStatement appends one doctor's monthly statement.
func (s *Service) ExportSalaryStatement(ctx context.Context, statement *models.SalaryStatement) error {
	rows := salaryRows(statement)
	if err := s.writer.AppendRows(ctx, salarySheetRange, rows); err != nil {
		return fmt.Errorf("export salary statement %s/%s: %w", statement.DoctorID, statement.Month, err)
	}

	s.logger.Info("salary statement exported",
		zap.String("clinic_id", statement.ClinicID),
		zap.String("doctor_id", statement.DoctorID),
		zap.String("month", statement.Month),
		zap.Int("rows", len(rows)))
	return nil
}

// ExportBonusReport appends the clinic's monthly bonus breakdown.
func (s *Service) ExportBonusReport(ctx context.Context, report *models.BonusReport) error {
	rows := bonusRows(report)
	if err := s.writer.AppendRows(ctx, bonusSheetRange, rows); err != nil {
		return fmt.Errorf("export bonus report %s/%s: %w", report.ClinicID, report.Month, err)
	}

	s.logger.Info("bonus report exported",
		zap.String("clinic_id", report.ClinicID),
		zap.String("month", report.Month),
		zap.Int("rows", len(rows)))
	return nil
}

func salaryRows(statement *models.SalaryStatement) [][]interface{} {
	rows := [][]interface{}{
		{statement.Month, statement.ClinicID, statement.DoctorName, "", "", "", "", ""},
	}

	for _, category := range statement.Categories {
		for _, line := range category.Lines {
			rows = append(rows, []interface{}{
				line.Date, category.Label, line.PatientName, line.Content,
				line.Revenue, line.LabFee, line.NetProfit, line.Income,
			})
		}
		rows = append(rows, []interface{}{
			statement.Month, category.Label, "", "total",
			category.Revenue, category.LabFee, category.NetProfit, category.Income,
		})
	}

	for _, adjustment := range statement.Adjustments {
		rows = append(rows, []interface{}{
			adjustment.Date, adjustment.Category, "", adjustment.Note,
			"", "", "", adjustment.Amount,
		})
	}

	rows = append(rows, []interface{}{
		statement.Month, "", "", "grand total", "", "", "", statement.GrandTotal,
	})
	return rows
}

func bonusRows(report *models.BonusReport) [][]interface{} {
	rows := [][]interface{}{
		{report.Month, report.ClinicID, "", "", "", "", "", ""},
	}

	var total float64
	for _, staff := range report.Staff {
		total += staff.FinalBonus
		rows = append(rows, []interface{}{
			staff.Name, string(staff.Role),
			staff.SelfPayRevenue, staff.RetailRevenue,
			staff.BaseBonus, staff.PoolContribution, staff.PoolShare, staff.FinalBonus,
		})
	}

	rows = append(rows, []interface{}{
		report.Month, "", "", "", "pool", report.TotalPool, report.SharePerPerson, total,
	})
	return rows
}
