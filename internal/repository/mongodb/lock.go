package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mchuang3/dentms/internal/domain/models"
)

// GetMonthLock loads the lock state for a (clinic, month). A month that was
// never locked yields an unlocked state, not an error.
func (r *Repository) GetMonthLock(ctx context.Context, clinicID, month string) (models.MonthLock, error) {
	var lock models.MonthLock
	err := r.collection(collMonthLocks).FindOne(ctx, bson.M{"clinic_id": clinicID, "month": month}).Decode(&lock)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.MonthLock{ClinicID: clinicID, Month: month}, nil
	}
	if err != nil {
		return models.MonthLock{}, fmt.Errorf("load month lock %s/%s: %w", clinicID, month, err)
	}
	return lock, nil
}

// SetMonthLock flips the lock state and appends to the audit trail.
func (r *Repository) SetMonthLock(ctx context.Context, clinicID, month string, locked bool, actor string) (models.MonthLock, error) {
	now := time.Now().UTC()
	action := models.LockActionUnlock
	if locked {
		action = models.LockActionLock
	}

	filter := bson.M{"clinic_id": clinicID, "month": month}
	update := bson.M{
		"$set": bson.M{
			"locked":    locked,
			"locked_by": actor,
			"locked_at": now,
		},
		"$push": bson.M{
			"history": models.LockEvent{Action: action, By: actor, At: now},
		},
	}

	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var lock models.MonthLock
	err := r.collection(collMonthLocks).FindOneAndUpdate(ctx, filter, update, opts).Decode(&lock)
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return models.MonthLock{}, fmt.Errorf("set month lock %s/%s: %w", clinicID, month, err)
	}
	return lock, nil
}

// SaveSnapshot stores the result of a month-close snapshot run.
func (r *Repository) SaveSnapshot(ctx context.Context, snapshot models.MonthlySnapshot) error {
	snapshot.ID = primitive.NewObjectID()
	snapshot.CreatedAt = time.Now().UTC()

	if _, err := r.collection(collSnapshots).InsertOne(ctx, snapshot); err != nil {
		return fmt.Errorf("insert monthly snapshot %s/%s: %w", snapshot.ClinicID, snapshot.Month, err)
	}
	return nil
}
