package models

// Staff is a non-doctor clinic employee. ID and Name are both
// commission-relevant identities: legacy accounting rows reference staff by
// display name, newer rows by ID.
type Staff struct {
	ID       string    `bson:"id" json:"id"`
	ClinicID string    `bson:"clinic_id" json:"clinicId"`
	Name     string    `bson:"name" json:"name"`
	Role     StaffRole `bson:"role" json:"role"`
}

// Doctor is a practicing dentist with per-category commission rates.
// CommissionRates holds one percentage per salary category key (the 8
// self-pay categories plus NHI); a missing key means 0%.
type Doctor struct {
	ID              string                        `bson:"id" json:"id"`
	ClinicID        string                        `bson:"clinic_id" json:"clinicId"`
	Name            string                        `bson:"name" json:"name"`
	CommissionRates map[TreatmentCategory]float64 `bson:"commission_rates" json:"commissionRates"`
}

// Rate returns the doctor's commission percentage for a category.
func (d Doctor) Rate(c TreatmentCategory) float64 {
	if d.CommissionRates == nil {
		return 0
	}
	return d.CommissionRates[c]
}
