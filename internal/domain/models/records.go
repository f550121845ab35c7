package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// NHIRecord is the single aggregate national health insurance claim amount
// for one (clinic, month, doctor). There is no per-visit breakdown.
type NHIRecord struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ClinicID string             `bson:"clinic_id" json:"clinicId"`
	Month    string             `bson:"month" json:"month"`
	DoctorID string             `bson:"doctor_id" json:"doctorId"`
	Amount   float64            `bson:"amount" json:"amount"`
}

// SalaryAdjustment is a manual signed addition or deduction to a doctor's
// monthly pay. Positive amounts add, negative amounts deduct.
type SalaryAdjustment struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ClinicID string             `bson:"clinic_id" json:"clinicId"`
	DoctorID string             `bson:"doctor_id" json:"doctorId"`
	Month    string             `bson:"month" json:"month"`
	Date     string             `bson:"date" json:"date"`
	Category string             `bson:"category" json:"category"`
	Amount   float64            `bson:"amount" json:"amount"`
	Note     string             `bson:"note,omitempty" json:"note,omitempty"`
}
