package revenue

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mchuang3/dentms/internal/domain/models"
)

// AccountingStore is the daily accounting read path the aggregator needs.
// A missing day must come back as (nil, nil).
type AccountingStore interface {
	GetDailyRecord(ctx context.Context, clinicID, date string) (*models.DailyAccountingRecord, error)
}

// Service flattens a month of daily accounting records into dated rows and
// attributes category revenue to staff members.
type Service struct {
	store  AccountingStore
	logger *zap.Logger
}

// NewService wires a new revenue aggregation service.
func NewService(store AccountingStore, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, logger: logger}
}

// LoadMonth reads every day of the month concurrently and joins the results
// into one flat, date-ordered row list. Days without a record contribute
// zero rows. Any single read failure fails the whole load; no partial result
// is returned.
func (s *Service) LoadMonth(ctx context.Context, clinicID, month string) ([]models.DatedRow, error) {
	days, err := models.DaysInMonth(month)
	if err != nil {
		return nil, err
	}

	perDay := make([][]models.DatedRow, days)

	g, gctx := errgroup.WithContext(ctx)
	for day := 1; day <= days; day++ {
		date := models.DayKey(month, day)
		idx := day - 1

		g.Go(func() error {
			record, err := s.store.GetDailyRecord(gctx, clinicID, date)
			if err != nil {
				return fmt.Errorf("day %s: %w", date, err)
			}
			if record == nil {
				return nil
			}

			rows := make([]models.DatedRow, 0, len(record.Rows))
			for _, row := range record.Rows {
				rows = append(rows, models.DatedRow{Date: date, Row: row})
			}
			perDay[idx] = rows
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load month %s/%s: %w", clinicID, month, err)
	}

	var flat []models.DatedRow
	for _, rows := range perDay {
		flat = append(flat, rows...)
	}

	s.logger.Debug("month accounting loaded",
		zap.String("clinic_id", clinicID),
		zap.String("month", month),
		zap.Int("rows", len(flat)))

	return flat, nil
}

// Attribution is the per-staff revenue split of a row set. Keys are canonical
// staff IDs. Revenue whose stored reference matches no current staff member
// lands in the Unattributed figures: it still counts toward clinic totals but
// contributes to no individual bonus.
type Attribution struct {
	SelfPay             map[string]float64
	Retail              map[string]float64
	UnattributedSelfPay float64
	UnattributedRetail  float64
}

// Attribute splits self-pay and retail revenue across staff using the
// matcher. Each row's category amount is credited exactly once.
func Attribute(rows []models.DatedRow, matcher *StaffMatcher) Attribution {
	attribution := Attribution{
		SelfPay: make(map[string]float64),
		Retail:  make(map[string]float64),
	}

	for _, dated := range rows {
		row := dated.Row

		if selfPay := row.Treatments.SelfPayTotal(); selfPay > 0 {
			if staffID, ok := matcher.Resolve(row.Treatments.Consultant); ok {
				attribution.SelfPay[staffID] += selfPay
			} else {
				attribution.UnattributedSelfPay += selfPay
			}
		}

		if retail := row.Retail.Total(); retail > 0 {
			if staffID, ok := matcher.Resolve(row.Retail.Staff); ok {
				attribution.Retail[staffID] += retail
			} else {
				attribution.UnattributedRetail += retail
			}
		}
	}

	return attribution
}
