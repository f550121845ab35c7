package models

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundHalfUp(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 2.0, RoundHalfUp(1.5))
	assert.Equal(t, 1.0, RoundHalfUp(1.4))
	assert.Equal(t, 2.0, RoundHalfUp(2.0))
	assert.Equal(t, 0.0, RoundHalfUp(0.0))

	// Halves go toward +inf, also for negative values. A -12.5 lab cost line
	// income rounds to -12, not -13.
	assert.Equal(t, -12.0, RoundHalfUp(-12.5))
	assert.Equal(t, -13.0, RoundHalfUp(-12.6))
}

func TestSanitizeAmount(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0.0, SanitizeAmount(-5))
	assert.Equal(t, 0.0, SanitizeAmount(math.NaN()))
	assert.Equal(t, 0.0, SanitizeAmount(math.Inf(1)))
	assert.Equal(t, 120.0, SanitizeAmount(120))
}

func TestDaysInMonth(t *testing.T) {
	t.Parallel()

	days, err := DaysInMonth("2025-02")
	require.NoError(t, err)
	assert.Equal(t, 28, days)

	days, err = DaysInMonth("2024-02")
	require.NoError(t, err)
	assert.Equal(t, 29, days)

	days, err = DaysInMonth("2025-07")
	require.NoError(t, err)
	assert.Equal(t, 31, days)

	_, err = DaysInMonth("2025-7")
	assert.Error(t, err)
}

func TestMonthOfDate(t *testing.T) {
	t.Parallel()

	month, err := MonthOfDate("2025-03-15")
	require.NoError(t, err)
	assert.Equal(t, "2025-03", month)

	_, err = MonthOfDate("15.03.2025")
	assert.Error(t, err)
}

func TestDayKey(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "2025-03-05", DayKey("2025-03", 5))
	assert.Equal(t, "2025-03-31", DayKey("2025-03", 31))
}

func TestTreatmentsSelfPayTotal(t *testing.T) {
	t.Parallel()

	treatments := Treatments{
		Registration:   150, // not self-pay
		Copayment:      50,  // not self-pay
		Prosthodontics: 1000,
		Implant:        2000,
		Orthodontics:   300,
		ClinicProgram:  400,
		AlignerProgram: 500,
		Whitening:      600,
		Periodontics:   700,
		Other:          800,
	}

	assert.Equal(t, 6300.0, treatments.SelfPayTotal())

	// Every self-pay category must be reachable through CategoryAmount.
	var sum float64
	for _, c := range SelfPayCategories() {
		sum += treatments.CategoryAmount(c)
	}
	assert.Equal(t, treatments.SelfPayTotal(), sum)

	assert.Equal(t, 0.0, treatments.CategoryAmount(CategoryNHI))
}

func TestSalaryCategoriesCoverTheClosedSet(t *testing.T) {
	t.Parallel()

	categories := SalaryCategories()
	require.Len(t, categories, 9)
	assert.Equal(t, CategoryNHI, categories[0])

	seen := map[TreatmentCategory]bool{}
	for _, c := range categories {
		assert.True(t, c.Valid(), "category %s must be valid", c)
		assert.NotEmpty(t, c.Label())
		seen[c] = true
	}
	assert.Len(t, seen, 9, "no duplicate categories")
}

func TestDefaultBonusSettings(t *testing.T) {
	t.Parallel()

	settings := DefaultBonusSettings("clinic-1")
	assert.Equal(t, "clinic-1", settings.ClinicID)
	assert.Equal(t, 30.0, settings.PoolRate)
	assert.Equal(t, 1.0, settings.SelfPayRate)
	assert.Equal(t, 10.0, settings.RetailRate)
}

func TestRoleBonusEligibility(t *testing.T) {
	t.Parallel()

	assert.True(t, RoleConsultant.BonusEligible())
	assert.True(t, RoleTrainee.BonusEligible())
	assert.True(t, RoleAssistant.BonusEligible())
	assert.False(t, RolePartTime.BonusEligible())
	assert.False(t, RoleManager.BonusEligible())
}

func TestPaymentReconciled(t *testing.T) {
	t.Parallel()

	// Single-method rows leave the breakdown empty; nothing to reconcile.
	assert.True(t, Payment{ActualCollected: 500, Method: "cash"}.Reconciled())
	assert.True(t, Payment{}.Reconciled())

	assert.True(t, Payment{Cash: 100, Card: 50, ActualCollected: 150}.Reconciled())
	assert.True(t, Payment{Cash: 0.1, Card: 0.2, ActualCollected: 0.3}.Reconciled())
	assert.False(t, Payment{Cash: 100, Card: 50, ActualCollected: 200}.Reconciled())
	assert.False(t, Payment{Transfer: 80, ActualCollected: 0}.Reconciled())
}

func TestAccountingRowSanitize(t *testing.T) {
	t.Parallel()

	row := AccountingRow{
		PatientName: "  Chen Wei  ",
		Treatments:  Treatments{Implant: -500, Whitening: math.NaN()},
		Retail:      Retail{Products: -10, Vault: 200},
		Payment:     Payment{Cash: -1, ActualCollected: math.Inf(1)},
	}
	row.Sanitize()

	assert.Equal(t, "Chen Wei", row.PatientName)
	assert.Equal(t, 0.0, row.Treatments.Implant)
	assert.Equal(t, 0.0, row.Treatments.Whitening)
	assert.Equal(t, 0.0, row.Retail.Products)
	assert.Equal(t, 200.0, row.Retail.Vault)
	assert.Equal(t, 0.0, row.Payment.Cash)
	assert.Equal(t, 0.0, row.Payment.ActualCollected)
}
