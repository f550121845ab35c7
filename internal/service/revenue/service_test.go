package revenue

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mchuang3/dentms/internal/domain/models"
)

type fakeAccountingStore struct {
	records map[string]*models.DailyAccountingRecord
	err     error
}

func (f *fakeAccountingStore) GetDailyRecord(_ context.Context, _, date string) (*models.DailyAccountingRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.records[date], nil
}

func dayRecord(date string, rows ...models.AccountingRow) *models.DailyAccountingRecord {
	return &models.DailyAccountingRecord{ClinicID: "clinic-1", Date: date, Rows: rows}
}

func visitRow(id, patient string, implant float64) models.AccountingRow {
	return models.AccountingRow{
		ID:          id,
		PatientName: patient,
		Treatments:  models.Treatments{Implant: implant},
	}
}

func TestLoadMonthSkipsMissingDays(t *testing.T) {
	t.Parallel()

	// 25 of 30 days have data; the other 5 must contribute nothing, not fail.
	store := &fakeAccountingStore{records: map[string]*models.DailyAccountingRecord{}}
	for day := 1; day <= 30; day++ {
		if day%6 == 0 {
			continue
		}
		date := models.DayKey("2025-06", day)
		store.records[date] = dayRecord(date, visitRow("r", "p", 100))
	}

	svc := NewService(store, nil)
	rows, err := svc.LoadMonth(context.Background(), "clinic-1", "2025-06")

	require.NoError(t, err)
	assert.Len(t, rows, 25)
}

func TestLoadMonthKeepsDateOrderAndAnnotation(t *testing.T) {
	t.Parallel()

	store := &fakeAccountingStore{records: map[string]*models.DailyAccountingRecord{
		"2025-06-20": dayRecord("2025-06-20", visitRow("b", "p2", 200)),
		"2025-06-03": dayRecord("2025-06-03", visitRow("a", "p1", 100), visitRow("a2", "p1b", 150)),
	}}

	svc := NewService(store, nil)
	rows, err := svc.LoadMonth(context.Background(), "clinic-1", "2025-06")

	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "2025-06-03", rows[0].Date)
	assert.Equal(t, "a", rows[0].Row.ID)
	assert.Equal(t, "2025-06-03", rows[1].Date)
	assert.Equal(t, "2025-06-20", rows[2].Date)
}

func TestLoadMonthFailsWholeBatchOnStoreError(t *testing.T) {
	t.Parallel()

	store := &fakeAccountingStore{err: errors.New("connection reset")}

	svc := NewService(store, nil)
	rows, err := svc.LoadMonth(context.Background(), "clinic-1", "2025-06")

	assert.Error(t, err)
	assert.Nil(t, rows, "no partial results on failure")
}

func TestLoadMonthRejectsInvalidMonth(t *testing.T) {
	t.Parallel()

	svc := NewService(&fakeAccountingStore{}, nil)
	_, err := svc.LoadMonth(context.Background(), "clinic-1", "June 2025")
	assert.Error(t, err)
}

func TestStaffMatcherResolvesIDAndLegacyName(t *testing.T) {
	t.Parallel()

	matcher := NewStaffMatcher([]models.Staff{
		{ID: "s1", Name: "Lin Yu", Role: models.RoleConsultant},
		{ID: "s2", Name: "Wang Mei", Role: models.RoleAssistant},
	})

	id, ok := matcher.Resolve("s1")
	require.True(t, ok)
	assert.Equal(t, "s1", id)

	// Legacy rows stored display names.
	id, ok = matcher.Resolve("Wang Mei")
	require.True(t, ok)
	assert.Equal(t, "s2", id)

	// Stored references may carry stray whitespace.
	id, ok = matcher.Resolve("  Lin Yu ")
	require.True(t, ok)
	assert.Equal(t, "s1", id)

	_, ok = matcher.Resolve("nobody")
	assert.False(t, ok)
	_, ok = matcher.Resolve("   ")
	assert.False(t, ok)
}

func TestStaffMatcherIDWinsOverCollidingName(t *testing.T) {
	t.Parallel()

	// One staff's name equals another staff's ID. The reference must resolve
	// exactly once, to the ID owner, so no amount is counted twice.
	matcher := NewStaffMatcher([]models.Staff{
		{ID: "s1", Name: "Lin Yu"},
		{ID: "s2", Name: "s1"},
	})

	id, ok := matcher.Resolve("s1")
	require.True(t, ok)
	assert.Equal(t, "s1", id)
}

func TestAttributeSplitsRevenueExactlyOnce(t *testing.T) {
	t.Parallel()

	matcher := NewStaffMatcher([]models.Staff{
		{ID: "s1", Name: "Lin Yu"},
		{ID: "s2", Name: "Wang Mei"},
	})

	rows := []models.DatedRow{
		{Date: "2025-06-01", Row: models.AccountingRow{
			Treatments: models.Treatments{Implant: 3000, Whitening: 500, Consultant: "s1"},
			Retail:     models.Retail{Products: 200, Staff: "Wang Mei"},
		}},
		{Date: "2025-06-02", Row: models.AccountingRow{
			Treatments: models.Treatments{Orthodontics: 1000, Consultant: "Lin Yu"},
			Retail:     models.Retail{Vault: 80, Staff: "s2"},
		}},
	}

	attribution := Attribute(rows, matcher)

	// Full category amount appears exactly once whether the row matched by ID
	// or by name.
	assert.Equal(t, 4500.0, attribution.SelfPay["s1"])
	assert.Equal(t, 280.0, attribution.Retail["s2"])
	assert.Zero(t, attribution.UnattributedSelfPay)
	assert.Zero(t, attribution.UnattributedRetail)
}

func TestAttributeDropsUnmatchedRefsIntoUnattributed(t *testing.T) {
	t.Parallel()

	matcher := NewStaffMatcher([]models.Staff{{ID: "s1", Name: "Lin Yu"}})

	rows := []models.DatedRow{
		{Date: "2025-06-01", Row: models.AccountingRow{
			Treatments: models.Treatments{Implant: 9000, Consultant: "departed staffer"},
			Retail:     models.Retail{Products: 300, Staff: ""},
		}},
	}

	attribution := Attribute(rows, matcher)

	assert.Empty(t, attribution.SelfPay)
	assert.Equal(t, 9000.0, attribution.UnattributedSelfPay)
	assert.Equal(t, 300.0, attribution.UnattributedRetail)
}
