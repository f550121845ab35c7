package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mchuang3/dentms/internal/domain/models"
)

// GetDailyRecord loads the accounting record for one (clinic, date). A
// missing day is not an error: the clinic may not have opened, or data was
// never entered. Returns (nil, nil) in that case.
func (r *Repository) GetDailyRecord(ctx context.Context, clinicID, date string) (*models.DailyAccountingRecord, error) {
	filter := bson.M{"clinic_id": clinicID, "date": date}

	var record models.DailyAccountingRecord
	err := r.collection(collDailyAccounting).FindOne(ctx, filter).Decode(&record)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load daily record %s/%s: %w", clinicID, date, err)
	}

	for i := range record.Rows {
		record.Rows[i].Sanitize()
	}
	return &record, nil
}

// SaveDailyRecord upserts the accounting record for its (clinic, date) key.
// Saves overwrite the whole row list; records are never deleted.
func (r *Repository) SaveDailyRecord(ctx context.Context, record models.DailyAccountingRecord) error {
	record.UpdatedAt = time.Now().UTC()

	filter := bson.M{"clinic_id": record.ClinicID, "date": record.Date}
	update := bson.M{"$set": record}

	_, err := r.collection(collDailyAccounting).UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("save daily record %s/%s: %w", record.ClinicID, record.Date, err)
	}
	return nil
}
