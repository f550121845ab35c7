package models

// Default bonus rates applied when a clinic has never saved settings.
const (
	DefaultPoolRate    = 30.0
	DefaultSelfPayRate = 1.0
	DefaultRetailRate  = 10.0
)

// BonusSettings is the per-clinic bonus configuration. Keyed by clinic only;
// the historical per-(clinic, month) keying is retired.
type BonusSettings struct {
	ClinicID string `bson:"clinic_id" json:"clinicId"`
	// PoolRate is the percentage of a consultant's base bonus contributed to
	// the shared pool.
	PoolRate float64 `bson:"pool_rate" json:"poolRate"`
	// SelfPayRate is the percentage of attributed self-pay revenue converted
	// to base bonus.
	SelfPayRate float64 `bson:"self_pay_rate" json:"selfPayRate"`
	// RetailRate is the percentage of attributed retail revenue converted to
	// base bonus.
	RetailRate float64 `bson:"retail_rate" json:"retailRate"`
}

// DefaultBonusSettings returns the documented defaults for a clinic.
func DefaultBonusSettings(clinicID string) BonusSettings {
	return BonusSettings{
		ClinicID:    clinicID,
		PoolRate:    DefaultPoolRate,
		SelfPayRate: DefaultSelfPayRate,
		RetailRate:  DefaultRetailRate,
	}
}
