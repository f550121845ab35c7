package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StaffBonus is one staff member's line in the monthly bonus report.
type StaffBonus struct {
	StaffID        string    `json:"staffId"`
	Name           string    `json:"name"`
	Role           StaffRole `json:"role"`
	SelfPayRevenue float64   `json:"selfPayRevenue"`
	RetailRevenue  float64   `json:"retailRevenue"`
	BaseBonus      float64   `json:"baseBonus"`
	// PersonalRate is the percentage of the base bonus the staff member keeps
	// before pool redistribution: 100 for non-consultants, 100 - poolRate for
	// consultants.
	PersonalRate     float64 `json:"personalRate"`
	PoolContribution float64 `json:"poolContribution"`
	PersonalKeep     float64 `json:"personalKeep"`
	PoolShare        float64 `json:"poolShare"`
	FinalBonus       float64 `json:"finalBonus"`
}

// BonusReport is the assistant bonus breakdown for one clinic month.
type BonusReport struct {
	ClinicID       string        `json:"clinicId"`
	Month          string        `json:"month"`
	Settings       BonusSettings `json:"settings"`
	Staff          []StaffBonus  `json:"staff"`
	TotalPool      float64       `json:"totalPool"`
	SharePerPerson float64       `json:"sharePerPerson"`
	// Revenue whose consultant/staff reference matched no current staff
	// member. It contributes to no individual bonus but stays visible as a
	// data-quality signal.
	UnattributedSelfPay float64 `json:"unattributedSelfPay"`
	UnattributedRetail  float64 `json:"unattributedRetail"`
}

// SalaryLine is one line item inside a category statement: either a visit row
// (revenue, possibly with a merged lab cost) or a standalone lab cost line.
type SalaryLine struct {
	Date        string  `json:"date"`
	PatientName string  `json:"patientName,omitempty"`
	Content     string  `json:"content"`
	Revenue     float64 `json:"revenue"`
	LabFee      float64 `json:"labFee"`
	NetProfit   float64 `json:"netProfit"`
	Income      float64 `json:"income"`
}

// CategoryStatement aggregates one treatment category for one doctor month.
// Lines is populated only in individual mode; summary mode keeps totals only.
type CategoryStatement struct {
	Category  TreatmentCategory `json:"category"`
	Label     string            `json:"label"`
	Rate      float64           `json:"rate"`
	Lines     []SalaryLine      `json:"lines,omitempty"`
	Revenue   float64           `json:"revenue"`
	LabFee    float64           `json:"labFee"`
	NetProfit float64           `json:"netProfit"`
	Income    float64           `json:"income"`
}

// SalaryStatement is the category-by-category income statement for one doctor
// month, plus manual adjustments and the grand total.
type SalaryStatement struct {
	ClinicID        string              `json:"clinicId"`
	Month           string              `json:"month"`
	DoctorID        string              `json:"doctorId"`
	DoctorName      string              `json:"doctorName"`
	Categories      []CategoryStatement `json:"categories"`
	CategoryIncome  float64             `json:"categoryIncome"`
	Adjustments     []SalaryAdjustment  `json:"adjustments,omitempty"`
	AdjustmentTotal float64             `json:"adjustmentTotal"`
	GrandTotal      float64             `json:"grandTotal"`
}

// ClinicSalarySummary holds the summary-mode statements for every doctor in a
// clinic. Statements carry category totals only, no line items.
type ClinicSalarySummary struct {
	ClinicID string            `json:"clinicId"`
	Month    string            `json:"month"`
	Doctors  []SalaryStatement `json:"doctors"`
	Total    float64           `json:"total"`
}

// DoctorTotal is one doctor's grand total inside a monthly snapshot.
type DoctorTotal struct {
	DoctorID   string  `bson:"doctor_id" json:"doctorId"`
	DoctorName string  `bson:"doctor_name" json:"doctorName"`
	GrandTotal float64 `bson:"grand_total" json:"grandTotal"`
}

// MonthlySnapshot is the persisted result of the scheduled month-close run:
// the bonus totals and per-doctor salary totals for one clinic month.
type MonthlySnapshot struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ClinicID       string             `bson:"clinic_id" json:"clinicId"`
	Month          string             `bson:"month" json:"month"`
	BonusTotal     float64            `bson:"bonus_total" json:"bonusTotal"`
	BonusStaff     int                `bson:"bonus_staff" json:"bonusStaff"`
	TotalPool      float64            `bson:"total_pool" json:"totalPool"`
	DoctorTotals   []DoctorTotal      `bson:"doctor_totals" json:"doctorTotals"`
	SalaryTotal    float64            `bson:"salary_total" json:"salaryTotal"`
	CreatedAt      time.Time          `bson:"created_at" json:"createdAt"`
	GeneratedByJob bool               `bson:"generated_by_job" json:"generatedByJob"`
}
