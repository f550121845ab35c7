package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mchuang3/dentms/internal/domain/models"
)

// ListTechnicianRecords returns the lab invoice lines for a clinic month,
// optionally filtered to a single laboratory. Dates are stored as YYYY-MM-DD
// strings so the month window is a simple lexicographic range.
func (r *Repository) ListTechnicianRecords(ctx context.Context, clinicID, labName, month string) ([]models.TechnicianRecord, error) {
	filter := bson.M{
		"clinic_id": clinicID,
		"date":      bson.M{"$gte": month + "-01", "$lte": month + "-31"},
	}
	if labName != "" {
		filter["lab_name"] = labName
	}

	cursor, err := r.collection(collTechnicianRecords).Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list technician records %s/%s: %w", clinicID, month, err)
	}

	var records []models.TechnicianRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("decode technician records %s/%s: %w", clinicID, month, err)
	}
	return records, nil
}

// AddTechnicianRecord inserts one lab invoice line and returns its id.
func (r *Repository) AddTechnicianRecord(ctx context.Context, record models.TechnicianRecord) (primitive.ObjectID, error) {
	record.ID = primitive.NewObjectID()
	if _, err := r.collection(collTechnicianRecords).InsertOne(ctx, record); err != nil {
		return primitive.NilObjectID, fmt.Errorf("insert technician record: %w", err)
	}
	return record.ID, nil
}

// GetTechnicianRecord loads one lab invoice line by id.
func (r *Repository) GetTechnicianRecord(ctx context.Context, clinicID string, id primitive.ObjectID) (models.TechnicianRecord, error) {
	var record models.TechnicianRecord
	err := r.collection(collTechnicianRecords).FindOne(ctx, bson.M{"_id": id, "clinic_id": clinicID}).Decode(&record)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.TechnicianRecord{}, fmt.Errorf("technician record %s not found", id.Hex())
	}
	if err != nil {
		return models.TechnicianRecord{}, fmt.Errorf("load technician record %s: %w", id.Hex(), err)
	}
	return record, nil
}

// DeleteTechnicianRecord removes one lab invoice line.
func (r *Repository) DeleteTechnicianRecord(ctx context.Context, clinicID string, id primitive.ObjectID) error {
	res, err := r.collection(collTechnicianRecords).DeleteOne(ctx, bson.M{"_id": id, "clinic_id": clinicID})
	if err != nil {
		return fmt.Errorf("delete technician record %s: %w", id.Hex(), err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("technician record %s not found", id.Hex())
	}
	return nil
}

// ListNHIRecords returns the monthly NHI claim aggregates for a clinic month,
// one per doctor.
func (r *Repository) ListNHIRecords(ctx context.Context, clinicID, month string) ([]models.NHIRecord, error) {
	cursor, err := r.collection(collNHIRecords).Find(ctx, bson.M{"clinic_id": clinicID, "month": month})
	if err != nil {
		return nil, fmt.Errorf("list nhi records %s/%s: %w", clinicID, month, err)
	}

	var records []models.NHIRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("decode nhi records %s/%s: %w", clinicID, month, err)
	}
	return records, nil
}

// SaveNHIRecord upserts the single claim amount for (clinic, month, doctor).
func (r *Repository) SaveNHIRecord(ctx context.Context, record models.NHIRecord) error {
	filter := bson.M{"clinic_id": record.ClinicID, "month": record.Month, "doctor_id": record.DoctorID}
	update := bson.M{"$set": bson.M{"amount": record.Amount}}

	_, err := r.collection(collNHIRecords).UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("save nhi record %s/%s/%s: %w", record.ClinicID, record.Month, record.DoctorID, err)
	}
	return nil
}

// ListAdjustments returns every manual salary adjustment for a clinic month,
// across all doctors.
func (r *Repository) ListAdjustments(ctx context.Context, clinicID, month string) ([]models.SalaryAdjustment, error) {
	cursor, err := r.collection(collAdjustments).Find(ctx, bson.M{"clinic_id": clinicID, "month": month})
	if err != nil {
		return nil, fmt.Errorf("list adjustments %s/%s: %w", clinicID, month, err)
	}

	var adjustments []models.SalaryAdjustment
	if err := cursor.All(ctx, &adjustments); err != nil {
		return nil, fmt.Errorf("decode adjustments %s/%s: %w", clinicID, month, err)
	}
	return adjustments, nil
}

// AddAdjustment inserts one manual salary adjustment and returns its id.
func (r *Repository) AddAdjustment(ctx context.Context, adjustment models.SalaryAdjustment) (primitive.ObjectID, error) {
	adjustment.ID = primitive.NewObjectID()
	if _, err := r.collection(collAdjustments).InsertOne(ctx, adjustment); err != nil {
		return primitive.NilObjectID, fmt.Errorf("insert adjustment: %w", err)
	}
	return adjustment.ID, nil
}

// GetAdjustment loads one manual salary adjustment by id.
func (r *Repository) GetAdjustment(ctx context.Context, clinicID string, id primitive.ObjectID) (models.SalaryAdjustment, error) {
	var adjustment models.SalaryAdjustment
	err := r.collection(collAdjustments).FindOne(ctx, bson.M{"_id": id, "clinic_id": clinicID}).Decode(&adjustment)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.SalaryAdjustment{}, fmt.Errorf("adjustment %s not found", id.Hex())
	}
	if err != nil {
		return models.SalaryAdjustment{}, fmt.Errorf("load adjustment %s: %w", id.Hex(), err)
	}
	return adjustment, nil
}

// DeleteAdjustment removes one manual salary adjustment.
func (r *Repository) DeleteAdjustment(ctx context.Context, clinicID string, id primitive.ObjectID) error {
	res, err := r.collection(collAdjustments).DeleteOne(ctx, bson.M{"_id": id, "clinic_id": clinicID})
	if err != nil {
		return fmt.Errorf("delete adjustment %s: %w", id.Hex(), err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("adjustment %s not found", id.Hex())
	}
	return nil
}
