package salary

import (
	"strings"

	"github.com/mchuang3/dentms/internal/domain/models"
)

// matchesDoctor checks an accounting row against a doctor. Rows written
// before doctor IDs were backfilled carry only the display name, so the name
// is the fallback when the ID slot is empty.
func matchesDoctor(row models.AccountingRow, doctor models.Doctor) bool {
	if row.DoctorID != "" {
		return row.DoctorID == doctor.ID
	}
	return strings.TrimSpace(row.DoctorName) == strings.TrimSpace(doctor.Name)
}

func labMatchesDoctor(record models.TechnicianRecord, doctor models.Doctor) bool {
	if record.DoctorID != "" {
		return record.DoctorID == doctor.ID
	}
	return strings.TrimSpace(record.DoctorName) == strings.TrimSpace(doctor.Name)
}

type lineKey struct {
	date    string
	patient string
}

// buildCategoryStatement runs the two-pass fold for one category: pass one
// turns the doctor's visit rows into revenue lines, pass two merges linked
// lab costs into their target line (explicit row link first, same-date
// same-patient as fallback) and appends everything else as standalone cost
// lines. Each line's income is rounded individually; the category totals are
// the sums of the line figures.
func buildCategoryStatement(doctor models.Doctor, category models.TreatmentCategory, rows []models.DatedRow, labs []models.TechnicianRecord) models.CategoryStatement {
	rate := doctor.Rate(category)
	statement := models.CategoryStatement{
		Category: category,
		Label:    category.Label(),
		Rate:     rate,
	}

	byRowID := make(map[string]int)
	byDatePatient := make(map[lineKey]int)

	for _, dated := range rows {
		row := dated.Row
		if !matchesDoctor(row, doctor) {
			continue
		}
		amount := row.Treatments.CategoryAmount(category)
		if amount <= 0 {
			continue
		}

		line := models.SalaryLine{
			Date:        dated.Date,
			PatientName: row.PatientName,
			Content:     category.Label(),
			Revenue:     amount,
			NetProfit:   amount,
			Income:      models.RoundHalfUp(amount * rate / 100),
		}
		statement.Lines = append(statement.Lines, line)

		idx := len(statement.Lines) - 1
		if row.ID != "" {
			byRowID[row.ID] = idx
		}
		key := lineKey{date: dated.Date, patient: strings.TrimSpace(row.PatientName)}
		if _, exists := byDatePatient[key]; !exists && key.patient != "" {
			byDatePatient[key] = idx
		}
	}

	for _, lab := range labs {
		if lab.Category != category || !labMatchesDoctor(lab, doctor) {
			continue
		}

		if idx, ok := findTargetLine(lab, byRowID, byDatePatient); ok {
			line := &statement.Lines[idx]
			line.LabFee += lab.Amount
			line.NetProfit = line.Revenue - line.LabFee
			line.Income = models.RoundHalfUp(line.NetProfit * rate / 100)
			continue
		}

		content := lab.LabName
		if content == "" {
			content = category.Label() + " lab fee"
		}
		statement.Lines = append(statement.Lines, models.SalaryLine{
			Date:        lab.Date,
			PatientName: lab.PatientName,
			Content:     content,
			LabFee:      lab.Amount,
			NetProfit:   -lab.Amount,
			Income:      models.RoundHalfUp(-lab.Amount * rate / 100),
		})
	}

	for _, line := range statement.Lines {
		statement.Revenue += line.Revenue
		statement.LabFee += line.LabFee
		statement.NetProfit += line.NetProfit
		statement.Income += line.Income
	}

	return statement
}

func findTargetLine(lab models.TechnicianRecord, byRowID map[string]int, byDatePatient map[lineKey]int) (int, bool) {
	if lab.Type != models.TechnicianLinked {
		return 0, false
	}
	if lab.RowID != "" {
		idx, ok := byRowID[lab.RowID]
		return idx, ok
	}
	patient := strings.TrimSpace(lab.PatientName)
	if patient == "" {
		return 0, false
	}
	idx, ok := byDatePatient[lineKey{date: lab.Date, patient: patient}]
	return idx, ok
}

// buildNHIStatement turns the doctor's monthly NHI claim aggregates into the
// NHI category statement. There are no per-visit rows; lab records tagged
// with the NHI category still offset it as cost lines.
func buildNHIStatement(doctor models.Doctor, month string, nhiRecords []models.NHIRecord, labs []models.TechnicianRecord) models.CategoryStatement {
	rate := doctor.Rate(models.CategoryNHI)
	statement := models.CategoryStatement{
		Category: models.CategoryNHI,
		Label:    models.CategoryNHI.Label(),
		Rate:     rate,
	}

	for _, record := range nhiRecords {
		if record.DoctorID != doctor.ID {
			continue
		}
		statement.Lines = append(statement.Lines, models.SalaryLine{
			Date:      month,
			Content:   "NHI claim",
			Revenue:   record.Amount,
			NetProfit: record.Amount,
			Income:    models.RoundHalfUp(record.Amount * rate / 100),
		})
	}

	for _, lab := range labs {
		if lab.Category != models.CategoryNHI || !labMatchesDoctor(lab, doctor) {
			continue
		}
		content := lab.LabName
		if content == "" {
			content = "NHI lab fee"
		}
		statement.Lines = append(statement.Lines, models.SalaryLine{
			Date:        lab.Date,
			PatientName: lab.PatientName,
			Content:     content,
			LabFee:      lab.Amount,
			NetProfit:   -lab.Amount,
			Income:      models.RoundHalfUp(-lab.Amount * rate / 100),
		})
	}

	for _, line := range statement.Lines {
		statement.Revenue += line.Revenue
		statement.LabFee += line.LabFee
		statement.NetProfit += line.NetProfit
		statement.Income += line.Income
	}

	return statement
}

// BuildStatement assembles the full 9-category income statement for one
// doctor month. With detailed false (summary mode, used when computing every
// doctor at once) the per-line detail is discarded after the totals are
// folded, bounding memory.
func BuildStatement(doctor models.Doctor, clinicID, month string, rows []models.DatedRow, labs []models.TechnicianRecord, nhiRecords []models.NHIRecord, adjustments []models.SalaryAdjustment, detailed bool) *models.SalaryStatement {
	statement := &models.SalaryStatement{
		ClinicID:   clinicID,
		Month:      month,
		DoctorID:   doctor.ID,
		DoctorName: doctor.Name,
	}

	for _, category := range models.SalaryCategories() {
		var cs models.CategoryStatement
		if category == models.CategoryNHI {
			cs = buildNHIStatement(doctor, month, nhiRecords, labs)
		} else {
			cs = buildCategoryStatement(doctor, category, rows, labs)
		}
		if !detailed {
			cs.Lines = nil
		}
		statement.CategoryIncome += cs.Income
		statement.Categories = append(statement.Categories, cs)
	}

	for _, adjustment := range adjustments {
		if adjustment.DoctorID != doctor.ID {
			continue
		}
		statement.AdjustmentTotal += adjustment.Amount
		if detailed {
			statement.Adjustments = append(statement.Adjustments, adjustment)
		}
	}

	statement.GrandTotal = statement.CategoryIncome + statement.AdjustmentTotal
	return statement
}
