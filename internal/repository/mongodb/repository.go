package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names.
const (
	collDailyAccounting   = "daily_accounting"
	collTechnicianRecords = "technician_records"
	collNHIRecords        = "nhi_records"
	collAdjustments       = "salary_adjustments"
	collStaff             = "staff"
	collDoctors           = "doctors"
	collBonusSettings     = "bonus_settings"
	collMonthLocks        = "month_locks"
	collSnapshots         = "monthly_snapshots"
)

// Repository is the MongoDB-backed persistence layer for the back office.
// Per-collection operations live in the sibling files of this package.
type Repository struct {
	client *mongo.Client
	dbName string
}

// NewRepository connects to MongoDB and verifies the connection.
func NewRepository(ctx context.Context, uri string, dbName string) (*Repository, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	// Ping the database to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &Repository{client: client, dbName: dbName}, nil
}

// EnsureIndexes creates the unique keys the upsert paths rely on.
func (r *Repository) EnsureIndexes(ctx context.Context) error {
	unique := options.Index().SetUnique(true)

	indexes := map[string]mongo.IndexModel{
		collDailyAccounting: {Keys: bson.D{{Key: "clinic_id", Value: 1}, {Key: "date", Value: 1}}, Options: unique},
		collNHIRecords:      {Keys: bson.D{{Key: "clinic_id", Value: 1}, {Key: "month", Value: 1}, {Key: "doctor_id", Value: 1}}, Options: unique},
		collBonusSettings:   {Keys: bson.D{{Key: "clinic_id", Value: 1}}, Options: unique},
		collMonthLocks:      {Keys: bson.D{{Key: "clinic_id", Value: 1}, {Key: "month", Value: 1}}, Options: unique},
	}

	for name, model := range indexes {
		if _, err := r.collection(name).Indexes().CreateOne(ctx, model); err != nil {
			return fmt.Errorf("create index on %s: %w", name, err)
		}
	}
	return nil
}

func (r *Repository) collection(name string) *mongo.Collection {
	return r.client.Database(r.dbName).Collection(name)
}

// Close closes the MongoDB connection.
func (r *Repository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
