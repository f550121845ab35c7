package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mchuang3/dentms/internal/domain/models"
)

// ListStaff returns the clinic's staff directory.
func (r *Repository) ListStaff(ctx context.Context, clinicID string) ([]models.Staff, error) {
	cursor, err := r.collection(collStaff).Find(ctx, bson.M{"clinic_id": clinicID})
	if err != nil {
		return nil, fmt.Errorf("list staff %s: %w", clinicID, err)
	}

	var staff []models.Staff
	if err := cursor.All(ctx, &staff); err != nil {
		return nil, fmt.Errorf("decode staff %s: %w", clinicID, err)
	}
	return staff, nil
}

// ListDoctors returns the clinic's doctors with their commission rates.
func (r *Repository) ListDoctors(ctx context.Context, clinicID string) ([]models.Doctor, error) {
	cursor, err := r.collection(collDoctors).Find(ctx, bson.M{"clinic_id": clinicID})
	if err != nil {
		return nil, fmt.Errorf("list doctors %s: %w", clinicID, err)
	}

	var doctors []models.Doctor
	if err := cursor.All(ctx, &doctors); err != nil {
		return nil, fmt.Errorf("decode doctors %s: %w", clinicID, err)
	}
	return doctors, nil
}

// GetDoctor loads one doctor by id.
func (r *Repository) GetDoctor(ctx context.Context, clinicID, doctorID string) (*models.Doctor, error) {
	var doctor models.Doctor
	err := r.collection(collDoctors).FindOne(ctx, bson.M{"clinic_id": clinicID, "id": doctorID}).Decode(&doctor)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrDoctorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load doctor %s/%s: %w", clinicID, doctorID, err)
	}
	return &doctor, nil
}

// SaveDoctorRates replaces a doctor's per-category commission rates.
func (r *Repository) SaveDoctorRates(ctx context.Context, clinicID, doctorID string, rates map[models.TreatmentCategory]float64) error {
	filter := bson.M{"clinic_id": clinicID, "id": doctorID}
	update := bson.M{"$set": bson.M{"commission_rates": rates}}

	res, err := r.collection(collDoctors).UpdateOne(ctx, filter, update, options.Update())
	if err != nil {
		return fmt.Errorf("save doctor rates %s/%s: %w", clinicID, doctorID, err)
	}
	if res.MatchedCount == 0 {
		return models.ErrDoctorNotFound
	}
	return nil
}
