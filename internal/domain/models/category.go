package models

// TreatmentCategory enumerates the fixed commission-relevant treatment categories.
type TreatmentCategory string

const (
	CategoryNHI            TreatmentCategory = "nhi"
	CategoryProsthodontics TreatmentCategory = "prosthodontics"
	CategoryImplant        TreatmentCategory = "implant"
	CategoryOrthodontics   TreatmentCategory = "orthodontics"
	CategoryClinicProgram  TreatmentCategory = "clinic_program"
	CategoryAlignerProgram TreatmentCategory = "aligner_program"
	CategoryWhitening      TreatmentCategory = "whitening"
	CategoryPeriodontics   TreatmentCategory = "periodontics"
	CategoryOtherSelfPay   TreatmentCategory = "other_self_pay"
)

var categoryLabels = map[TreatmentCategory]string{
	CategoryNHI:            "NHI",
	CategoryProsthodontics: "Prosthodontics",
	CategoryImplant:        "Implant",
	CategoryOrthodontics:   "Orthodontics",
	CategoryClinicProgram:  "Clinic Program",
	CategoryAlignerProgram: "Clear Aligner Program",
	CategoryWhitening:      "Whitening",
	CategoryPeriodontics:   "Periodontics",
	CategoryOtherSelfPay:   "Other Self-Pay",
}

// SalaryCategories returns the 9 categories of a doctor salary statement in
// display order. NHI comes first and is fed from NHIRecord rather than
// accounting rows.
func SalaryCategories() []TreatmentCategory {
	return []TreatmentCategory{
		CategoryNHI,
		CategoryImplant,
		CategoryOrthodontics,
		CategoryProsthodontics,
		CategoryClinicProgram,
		CategoryAlignerProgram,
		CategoryWhitening,
		CategoryPeriodontics,
		CategoryOtherSelfPay,
	}
}

// SelfPayCategories returns the 8 self-pay categories summed for bonus revenue.
func SelfPayCategories() []TreatmentCategory {
	return []TreatmentCategory{
		CategoryProsthodontics,
		CategoryImplant,
		CategoryOrthodontics,
		CategoryClinicProgram,
		CategoryAlignerProgram,
		CategoryWhitening,
		CategoryPeriodontics,
		CategoryOtherSelfPay,
	}
}

// Label returns the human readable name for the category.
func (c TreatmentCategory) Label() string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return string(c)
}

// Valid reports whether the category is one of the closed set.
func (c TreatmentCategory) Valid() bool {
	_, ok := categoryLabels[c]
	return ok
}

// StaffRole enumerates the closed set of staff roles.
type StaffRole string

const (
	RoleConsultant StaffRole = "consultant"
	RoleTrainee    StaffRole = "trainee"
	RoleAssistant  StaffRole = "assistant"
	RolePartTime   StaffRole = "part_time"
	RoleManager    StaffRole = "manager"
)

// BonusEligible reports whether the role participates in the assistant bonus.
// Part-time staff appear in work-day statistics but never in the bonus run.
func (r StaffRole) BonusEligible() bool {
	switch r {
	case RoleConsultant, RoleTrainee, RoleAssistant:
		return true
	default:
		return false
	}
}
