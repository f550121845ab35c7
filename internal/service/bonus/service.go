package bonus

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mchuang3/dentms/internal/domain/models"
	"github.com/mchuang3/dentms/internal/service/revenue"
)

// AccountingSource provides the flattened month of accounting rows.
type AccountingSource interface {
	LoadMonth(ctx context.Context, clinicID, month string) ([]models.DatedRow, error)
}

// StaffDirectory lists the clinic's staff.
type StaffDirectory interface {
	ListStaff(ctx context.Context, clinicID string) ([]models.Staff, error)
}

// SettingsStore loads the clinic's bonus rates, supplying defaults when the
// clinic never saved any.
type SettingsStore interface {
	GetBonusSettings(ctx context.Context, clinicID string) (models.BonusSettings, error)
}

// Service computes the monthly assistant bonus breakdown for a clinic.
type Service struct {
	accounting AccountingSource
	staff      StaffDirectory
	settings   SettingsStore
	logger     *zap.Logger
}

// NewService wires a new bonus calculator.
func NewService(accounting AccountingSource, staff StaffDirectory, settings SettingsStore, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{accounting: accounting, staff: staff, settings: settings, logger: logger}
}

// Calculate produces the per-staff bonus report for a clinic month. The three
// reads fan out concurrently; any failure fails the whole calculation.
func (s *Service) Calculate(ctx context.Context, clinicID, month string) (*models.BonusReport, error) {
	if _, err := models.ParseMonth(month); err != nil {
		return nil, err
	}

	var (
		rows     []models.DatedRow
		staff    []models.Staff
		settings models.BonusSettings
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		rows, err = s.accounting.LoadMonth(gctx, clinicID, month)
		return err
	})
	g.Go(func() (err error) {
		staff, err = s.staff.ListStaff(gctx, clinicID)
		return err
	})
	g.Go(func() (err error) {
		settings, err = s.settings.GetBonusSettings(gctx, clinicID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("bonus calculation %s/%s: %w", clinicID, month, err)
	}

	report := Compute(clinicID, month, rows, staff, settings)

	s.logger.Info("bonus report computed",
		zap.String("clinic_id", clinicID),
		zap.String("month", month),
		zap.Int("staff", len(report.Staff)),
		zap.Float64("total_pool", report.TotalPool))

	return report, nil
}

// Compute is the pure bonus calculation over already-loaded inputs.
//
// Base bonus is rounded once, not per category. Only consultants contribute
// to the pool and only when their base bonus is positive; every consultant
// receives an equal pool share regardless of personal contribution. Rounding
// happens at the same three points the dashboard has always displayed: base
// bonus, pool contribution, and share per person.
func Compute(clinicID, month string, rows []models.DatedRow, staff []models.Staff, settings models.BonusSettings) *models.BonusReport {
	matcher := revenue.NewStaffMatcher(staff)
	attribution := revenue.Attribute(rows, matcher)

	report := &models.BonusReport{
		ClinicID:            clinicID,
		Month:               month,
		Settings:            settings,
		UnattributedSelfPay: attribution.UnattributedSelfPay,
		UnattributedRetail:  attribution.UnattributedRetail,
	}

	var consultants int
	for _, member := range staff {
		if !member.Role.BonusEligible() {
			continue
		}

		selfPay := attribution.SelfPay[member.ID]
		retail := attribution.Retail[member.ID]
		baseBonus := models.RoundHalfUp(selfPay*settings.SelfPayRate/100 + retail*settings.RetailRate/100)

		entry := models.StaffBonus{
			StaffID:        member.ID,
			Name:           member.Name,
			Role:           member.Role,
			SelfPayRevenue: selfPay,
			RetailRevenue:  retail,
			BaseBonus:      baseBonus,
			PersonalRate:   100,
		}

		if member.Role == models.RoleConsultant {
			consultants++
			entry.PersonalRate = 100 - settings.PoolRate
			if baseBonus > 0 {
				entry.PoolContribution = models.RoundHalfUp(baseBonus * settings.PoolRate / 100)
			}
		}

		entry.PersonalKeep = entry.BaseBonus - entry.PoolContribution
		report.TotalPool += entry.PoolContribution
		report.Staff = append(report.Staff, entry)
	}

	// Guard: with no consultants the pool stays empty and nobody divides by zero.
	if consultants > 0 {
		report.SharePerPerson = models.RoundHalfUp(report.TotalPool / float64(consultants))
	}

	for i := range report.Staff {
		if report.Staff[i].Role == models.RoleConsultant {
			report.Staff[i].PoolShare = report.SharePerPerson
		}
		report.Staff[i].FinalBonus = report.Staff[i].PersonalKeep + report.Staff[i].PoolShare
	}

	sort.SliceStable(report.Staff, func(i, j int) bool {
		return report.Staff[i].Name < report.Staff[j].Name
	})

	return report
}
