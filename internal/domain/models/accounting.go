package models

import (
	"math"
	"strings"
	"time"
)

// Treatments carries the fixed set of per-visit treatment amounts plus the
// consultant credited with selling the self-pay items. The consultant field
// may hold either a staff ID or a legacy display name; resolution happens at
// the aggregation boundary, never in the calculators.
type Treatments struct {
	Registration   float64 `bson:"registration" json:"registration"`
	Copayment      float64 `bson:"copayment" json:"copayment"`
	Prosthodontics float64 `bson:"prosthodontics" json:"prosthodontics"`
	Implant        float64 `bson:"implant" json:"implant"`
	Orthodontics   float64 `bson:"orthodontics" json:"orthodontics"`
	ClinicProgram  float64 `bson:"clinic_program" json:"clinicProgram"`
	AlignerProgram float64 `bson:"aligner_program" json:"alignerProgram"`
	Whitening      float64 `bson:"whitening" json:"whitening"`
	Periodontics   float64 `bson:"periodontics" json:"periodontics"`
	Other          float64 `bson:"other" json:"other"`
	Consultant     string  `bson:"consultant" json:"consultant"`
}

// CategoryAmount returns the amount recorded for a self-pay category.
// CategoryNHI has no per-visit amount and yields 0.
func (t Treatments) CategoryAmount(c TreatmentCategory) float64 {
	switch c {
	case CategoryProsthodontics:
		return t.Prosthodontics
	case CategoryImplant:
		return t.Implant
	case CategoryOrthodontics:
		return t.Orthodontics
	case CategoryClinicProgram:
		return t.ClinicProgram
	case CategoryAlignerProgram:
		return t.AlignerProgram
	case CategoryWhitening:
		return t.Whitening
	case CategoryPeriodontics:
		return t.Periodontics
	case CategoryOtherSelfPay:
		return t.Other
	default:
		return 0
	}
}

// SelfPayTotal sums the eight self-pay category amounts.
func (t Treatments) SelfPayTotal() float64 {
	var total float64
	for _, c := range SelfPayCategories() {
		total += t.CategoryAmount(c)
	}
	return total
}

// Retail carries per-visit product sale amounts and the staff member who
// handled the sale (ID or legacy name, same rule as Treatments.Consultant).
type Retail struct {
	Products float64 `bson:"products" json:"products"`
	Vault    float64 `bson:"vault" json:"vault"`
	Staff    string  `bson:"staff" json:"staff"`
}

// Total sums the two retail category amounts.
func (r Retail) Total() float64 {
	return r.Products + r.Vault
}

// Payment breaks the collected amount down by method. When the breakdown is
// populated, ActualCollected should equal its sum; otherwise it is the
// single-method total under Method.
type Payment struct {
	Cash            float64 `bson:"cash" json:"cash"`
	Card            float64 `bson:"card" json:"card"`
	Transfer        float64 `bson:"transfer" json:"transfer"`
	ActualCollected float64 `bson:"actual_collected" json:"actualCollected"`
	Method          string  `bson:"method" json:"paymentMethod"`
}

// Reconciled reports whether the payment breakdown, when populated, sums to
// the actual collected amount. Rows recorded with a single method leave the
// breakdown empty and are always consistent.
func (p Payment) Reconciled() bool {
	sum := p.Cash + p.Card + p.Transfer
	if sum == 0 {
		return true
	}
	return math.Abs(sum-p.ActualCollected) < 0.005
}

// AccountingRow is one patient visit/transaction within a daily record.
type AccountingRow struct {
	ID          string     `bson:"id" json:"id"`
	PatientName string     `bson:"patient_name" json:"patientName"`
	DoctorID    string     `bson:"doctor_id" json:"doctorId"`
	DoctorName  string     `bson:"doctor_name" json:"doctorName"`
	Treatments  Treatments `bson:"treatments" json:"treatments"`
	Retail      Retail     `bson:"retail" json:"retail"`
	Payment     Payment    `bson:"payment" json:"payment"`
	IsManual    bool       `bson:"is_manual" json:"isManual"`
	IsArrived   bool       `bson:"is_arrived" json:"isArrived"`
}

// Sanitize clamps malformed amounts to zero and trims identity strings.
// Applied on every load and save so calculators can assume clean input.
func (r *AccountingRow) Sanitize() {
	r.PatientName = strings.TrimSpace(r.PatientName)
	r.Treatments.Registration = SanitizeAmount(r.Treatments.Registration)
	r.Treatments.Copayment = SanitizeAmount(r.Treatments.Copayment)
	r.Treatments.Prosthodontics = SanitizeAmount(r.Treatments.Prosthodontics)
	r.Treatments.Implant = SanitizeAmount(r.Treatments.Implant)
	r.Treatments.Orthodontics = SanitizeAmount(r.Treatments.Orthodontics)
	r.Treatments.ClinicProgram = SanitizeAmount(r.Treatments.ClinicProgram)
	r.Treatments.AlignerProgram = SanitizeAmount(r.Treatments.AlignerProgram)
	r.Treatments.Whitening = SanitizeAmount(r.Treatments.Whitening)
	r.Treatments.Periodontics = SanitizeAmount(r.Treatments.Periodontics)
	r.Treatments.Other = SanitizeAmount(r.Treatments.Other)
	r.Retail.Products = SanitizeAmount(r.Retail.Products)
	r.Retail.Vault = SanitizeAmount(r.Retail.Vault)
	r.Payment.Cash = SanitizeAmount(r.Payment.Cash)
	r.Payment.Card = SanitizeAmount(r.Payment.Card)
	r.Payment.Transfer = SanitizeAmount(r.Payment.Transfer)
	r.Payment.ActualCollected = SanitizeAmount(r.Payment.ActualCollected)
}

// DailyAccountingRecord is the per-(clinic, date) accounting document written
// by the daily POS workflow. It is created on first save and overwritten by
// later saves, never deleted.
type DailyAccountingRecord struct {
	ClinicID  string          `bson:"clinic_id" json:"clinicId"`
	Date      string          `bson:"date" json:"date"`
	Rows      []AccountingRow `bson:"rows" json:"rows"`
	UpdatedAt time.Time       `bson:"updated_at" json:"updatedAt"`
}

// DatedRow is an accounting row annotated with the date of the daily record
// it came from, as produced by the month aggregation.
type DatedRow struct {
	Date string        `json:"date"`
	Row  AccountingRow `json:"row"`
}
