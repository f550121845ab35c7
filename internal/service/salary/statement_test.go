package salary

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mchuang3/dentms/internal/domain/models"
)

func implantDoctor(rate float64) models.Doctor {
	return models.Doctor{
		ID:       "d1",
		ClinicID: "clinic-1",
		Name:     "Dr. Hsu",
		CommissionRates: map[models.TreatmentCategory]float64{
			models.CategoryImplant: rate,
			models.CategoryNHI:     10,
		},
	}
}

func implantVisit(date, rowID, patient string, amount float64) models.DatedRow {
	return models.DatedRow{Date: date, Row: models.AccountingRow{
		ID:          rowID,
		PatientName: patient,
		DoctorID:    "d1",
		Treatments:  models.Treatments{Implant: amount},
	}}
}

func categoryByKey(t *testing.T, statement *models.SalaryStatement, c models.TreatmentCategory) models.CategoryStatement {
	t.Helper()
	for _, cs := range statement.Categories {
		if cs.Category == c {
			return cs
		}
	}
	t.Fatalf("category %s missing from statement", c)
	return models.CategoryStatement{}
}

// $50,000 implant revenue at 40% with a $10,000 lab cost linked to one of the
// visits: category net profit 40,000, category income 16,000.
func TestBuildStatementLinkedLabCostOffsetsCategory(t *testing.T) {
	t.Parallel()

	rows := []models.DatedRow{
		implantVisit("2025-06-03", "r1", "Chen Wei", 30000),
		implantVisit("2025-06-17", "r2", "Lee Min", 20000),
	}
	labs := []models.TechnicianRecord{{
		ClinicID: "clinic-1",
		Date:     "2025-06-20",
		Category: models.CategoryImplant,
		DoctorID: "d1",
		Amount:   10000,
		Type:     models.TechnicianLinked,
		RowID:    "r1",
	}}

	statement := BuildStatement(implantDoctor(40), "clinic-1", "2025-06", rows, labs, nil, nil, true)
	implant := categoryByKey(t, statement, models.CategoryImplant)

	assert.Equal(t, 50000.0, implant.Revenue)
	assert.Equal(t, 10000.0, implant.LabFee)
	assert.Equal(t, 40000.0, implant.NetProfit)
	assert.Equal(t, 16000.0, implant.Income)

	// The cost merged into the linked line, no standalone cost line appeared.
	require.Len(t, implant.Lines, 2)
	assert.Equal(t, 30000.0, implant.Lines[0].Revenue)
	assert.Equal(t, 10000.0, implant.Lines[0].LabFee)
	assert.Equal(t, 20000.0, implant.Lines[0].NetProfit)
	assert.Equal(t, 8000.0, implant.Lines[0].Income)
	assert.Zero(t, implant.Lines[1].LabFee)
}

func TestBuildStatementLinkedLabFallsBackToDateAndPatient(t *testing.T) {
	t.Parallel()

	rows := []models.DatedRow{implantVisit("2025-06-03", "", "Chen Wei", 30000)}
	labs := []models.TechnicianRecord{{
		ClinicID:    "clinic-1",
		Date:        "2025-06-03",
		Category:    models.CategoryImplant,
		DoctorID:    "d1",
		PatientName: "Chen Wei",
		Amount:      4000,
		Type:        models.TechnicianLinked,
	}}

	statement := BuildStatement(implantDoctor(40), "clinic-1", "2025-06", rows, labs, nil, nil, true)
	implant := categoryByKey(t, statement, models.CategoryImplant)

	require.Len(t, implant.Lines, 1)
	assert.Equal(t, 26000.0, implant.Lines[0].NetProfit)
	assert.Equal(t, 10400.0, implant.Lines[0].Income)
}

func TestBuildStatementManualLabBecomesStandaloneCostLine(t *testing.T) {
	t.Parallel()

	rows := []models.DatedRow{implantVisit("2025-06-03", "r1", "Chen Wei", 30000)}
	labs := []models.TechnicianRecord{{
		ClinicID: "clinic-1",
		Date:     "2025-06-25",
		Category: models.CategoryImplant,
		DoctorID: "d1",
		LabName:  "Apex Dental Lab",
		Amount:   2500,
		Type:     models.TechnicianManual,
	}}

	statement := BuildStatement(implantDoctor(40), "clinic-1", "2025-06", rows, labs, nil, nil, true)
	implant := categoryByKey(t, statement, models.CategoryImplant)

	require.Len(t, implant.Lines, 2)
	cost := implant.Lines[1]
	assert.Equal(t, "Apex Dental Lab", cost.Content)
	assert.Zero(t, cost.Revenue)
	assert.Equal(t, 2500.0, cost.LabFee)
	assert.Equal(t, -2500.0, cost.NetProfit)
	assert.Equal(t, -1000.0, cost.Income)

	assert.Equal(t, 27500.0, implant.NetProfit)
	assert.Equal(t, 11000.0, implant.Income)
}

func TestBuildStatementLinkedLabWithoutTargetStandsAlone(t *testing.T) {
	t.Parallel()

	// Linked record whose row id matches nothing and whose patient has no
	// visit that day: it still reduces the category as its own cost line.
	labs := []models.TechnicianRecord{{
		ClinicID:    "clinic-1",
		Date:        "2025-06-25",
		Category:    models.CategoryImplant,
		DoctorID:    "d1",
		PatientName: "Chen Wei",
		Amount:      1000,
		Type:        models.TechnicianLinked,
		RowID:       "missing-row",
	}}

	statement := BuildStatement(implantDoctor(40), "clinic-1", "2025-06", nil, labs, nil, nil, true)
	implant := categoryByKey(t, statement, models.CategoryImplant)

	require.Len(t, implant.Lines, 1)
	assert.Equal(t, -1000.0, implant.NetProfit)
	assert.Equal(t, -400.0, implant.Income)
}

func TestBuildStatementNHIComesFromClaimRecords(t *testing.T) {
	t.Parallel()

	nhiRecords := []models.NHIRecord{
		{ClinicID: "clinic-1", Month: "2025-06", DoctorID: "d1", Amount: 220000},
		{ClinicID: "clinic-1", Month: "2025-06", DoctorID: "other", Amount: 999999},
	}

	statement := BuildStatement(implantDoctor(40), "clinic-1", "2025-06", nil, nil, nhiRecords, nil, true)
	nhi := categoryByKey(t, statement, models.CategoryNHI)

	require.Len(t, nhi.Lines, 1)
	assert.Equal(t, 220000.0, nhi.Revenue)
	assert.Equal(t, 22000.0, nhi.Income) // 10%
	assert.Equal(t, 22000.0, statement.CategoryIncome)
}

func TestBuildStatementAdjustmentsAreSignedAndInGrandTotal(t *testing.T) {
	t.Parallel()

	rows := []models.DatedRow{implantVisit("2025-06-03", "r1", "Chen Wei", 10000)}
	adjustments := []models.SalaryAdjustment{
		{ClinicID: "clinic-1", DoctorID: "d1", Month: "2025-06", Category: "speaking fee", Amount: 6000},
		{ClinicID: "clinic-1", DoctorID: "d1", Month: "2025-06", Category: "equipment damage", Amount: -1500},
		{ClinicID: "clinic-1", DoctorID: "other", Month: "2025-06", Amount: 77777},
	}

	statement := BuildStatement(implantDoctor(40), "clinic-1", "2025-06", rows, nil, nil, adjustments, true)

	assert.Equal(t, 4000.0, statement.CategoryIncome)
	assert.Equal(t, 4500.0, statement.AdjustmentTotal)
	assert.Equal(t, 8500.0, statement.GrandTotal)
	assert.Len(t, statement.Adjustments, 2, "other doctors' adjustments excluded")
}

func TestBuildStatementMatchesLegacyRowsByDoctorName(t *testing.T) {
	t.Parallel()

	rows := []models.DatedRow{{Date: "2025-06-03", Row: models.AccountingRow{
		ID:          "r1",
		PatientName: "Chen Wei",
		DoctorName:  " Dr. Hsu ",
		Treatments:  models.Treatments{Implant: 10000},
	}}}

	statement := BuildStatement(implantDoctor(40), "clinic-1", "2025-06", rows, nil, nil, nil, true)
	implant := categoryByKey(t, statement, models.CategoryImplant)

	assert.Equal(t, 10000.0, implant.Revenue)
}

func TestBuildStatementIgnoresOtherDoctorsRows(t *testing.T) {
	t.Parallel()

	rows := []models.DatedRow{{Date: "2025-06-03", Row: models.AccountingRow{
		ID:         "r1",
		DoctorID:   "someone-else",
		Treatments: models.Treatments{Implant: 10000},
	}}}

	statement := BuildStatement(implantDoctor(40), "clinic-1", "2025-06", rows, nil, nil, nil, true)
	assert.Zero(t, categoryByKey(t, statement, models.CategoryImplant).Revenue)
}

func TestBuildStatementSummaryModeDropsLinesKeepsTotals(t *testing.T) {
	t.Parallel()

	rows := []models.DatedRow{
		implantVisit("2025-06-03", "r1", "Chen Wei", 30000),
		implantVisit("2025-06-17", "r2", "Lee Min", 20000),
	}
	labs := []models.TechnicianRecord{{
		ClinicID: "clinic-1", Date: "2025-06-20", Category: models.CategoryImplant,
		DoctorID: "d1", Amount: 10000, Type: models.TechnicianLinked, RowID: "r1",
	}}

	detailed := BuildStatement(implantDoctor(40), "clinic-1", "2025-06", rows, labs, nil, nil, true)
	summary := BuildStatement(implantDoctor(40), "clinic-1", "2025-06", rows, labs, nil, nil, false)

	for _, cs := range summary.Categories {
		assert.Nil(t, cs.Lines)
	}
	assert.Equal(t, detailed.CategoryIncome, summary.CategoryIncome)
	assert.Equal(t, detailed.GrandTotal, summary.GrandTotal)
}

func TestBuildStatementAlwaysCarriesNineCategories(t *testing.T) {
	t.Parallel()

	statement := BuildStatement(implantDoctor(40), "clinic-1", "2025-06", nil, nil, nil, nil, true)
	require.Len(t, statement.Categories, 9)
	assert.Equal(t, models.CategoryNHI, statement.Categories[0].Category)
	assert.Zero(t, statement.GrandTotal)
}

type fakeSalaryStores struct {
	rows        []models.DatedRow
	labs        []models.TechnicianRecord
	nhiRecords  []models.NHIRecord
	adjustments []models.SalaryAdjustment
	doctors     []models.Doctor
	err         error
}

func (f *fakeSalaryStores) LoadMonth(context.Context, string, string) ([]models.DatedRow, error) {
	return f.rows, f.err
}

func (f *fakeSalaryStores) ListTechnicianRecords(context.Context, string, string, string) ([]models.TechnicianRecord, error) {
	return f.labs, nil
}

func (f *fakeSalaryStores) ListNHIRecords(context.Context, string, string) ([]models.NHIRecord, error) {
	return f.nhiRecords, nil
}

func (f *fakeSalaryStores) ListAdjustments(context.Context, string, string) ([]models.SalaryAdjustment, error) {
	return f.adjustments, nil
}

func (f *fakeSalaryStores) GetDoctor(_ context.Context, _, doctorID string) (*models.Doctor, error) {
	for _, d := range f.doctors {
		if d.ID == doctorID {
			doctor := d
			return &doctor, nil
		}
	}
	return nil, models.ErrDoctorNotFound
}

func (f *fakeSalaryStores) ListDoctors(context.Context, string) ([]models.Doctor, error) {
	return f.doctors, nil
}

func newFakeService(stores *fakeSalaryStores) *Service {
	return NewService(stores, stores, stores, stores, stores, nil)
}

func TestStatementForDoctorUnknownDoctor(t *testing.T) {
	t.Parallel()

	svc := newFakeService(&fakeSalaryStores{})
	_, err := svc.StatementForDoctor(context.Background(), "clinic-1", "ghost", "2025-06")
	assert.ErrorIs(t, err, models.ErrDoctorNotFound)
}

func TestStatementForDoctorFailsWholeRunOnReadError(t *testing.T) {
	t.Parallel()

	svc := newFakeService(&fakeSalaryStores{
		doctors: []models.Doctor{implantDoctor(40)},
		err:     errors.New("store down"),
	})
	_, err := svc.StatementForDoctor(context.Background(), "clinic-1", "d1", "2025-06")
	assert.Error(t, err)
}

func TestSummaryTotalsAllDoctors(t *testing.T) {
	t.Parallel()

	other := implantDoctor(40)
	other.ID = "d2"
	other.Name = "Dr. Kao"

	stores := &fakeSalaryStores{
		doctors: []models.Doctor{implantDoctor(40), other},
		rows: []models.DatedRow{
			implantVisit("2025-06-03", "r1", "Chen Wei", 10000),
			{Date: "2025-06-04", Row: models.AccountingRow{
				ID: "r2", DoctorID: "d2", Treatments: models.Treatments{Implant: 5000},
			}},
		},
	}

	svc := newFakeService(stores)
	summary, err := svc.Summary(context.Background(), "clinic-1", "2025-06")

	require.NoError(t, err)
	require.Len(t, summary.Doctors, 2)
	assert.Equal(t, 4000.0, summary.Doctors[0].GrandTotal)
	assert.Equal(t, 2000.0, summary.Doctors[1].GrandTotal)
	assert.Equal(t, 6000.0, summary.Total)
}
