package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// TechnicianRecordType distinguishes lab invoices tied to a specific visit
// from standalone manual cost lines.
type TechnicianRecordType string

const (
	TechnicianLinked TechnicianRecordType = "linked"
	TechnicianManual TechnicianRecordType = "manual"
)

// TechnicianRecord is one dental laboratory invoice line. Its category must
// match a treatment category key so the cost offsets that category's net
// profit in the doctor salary statement.
type TechnicianRecord struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	ClinicID    string               `bson:"clinic_id" json:"clinicId"`
	Date        string               `bson:"date" json:"date"`
	Category    TreatmentCategory    `bson:"category" json:"category"`
	DoctorID    string               `bson:"doctor_id" json:"doctorId"`
	DoctorName  string               `bson:"doctor_name" json:"doctorName"`
	PatientName string               `bson:"patient_name,omitempty" json:"patientName,omitempty"`
	LabName     string               `bson:"lab_name" json:"labName"`
	Amount      float64              `bson:"amount" json:"amount"`
	Type        TechnicianRecordType `bson:"type" json:"type"`
	// RowID is the explicit link to an AccountingRow.ID. Older linked records
	// left it empty and are matched by same date + same patient instead.
	RowID string `bson:"row_id,omitempty" json:"rowId,omitempty"`
}
