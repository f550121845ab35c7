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

// GetBonusSettings loads the clinic's bonus configuration. A clinic that has
// never saved settings gets the documented defaults; absence is not an error.
func (r *Repository) GetBonusSettings(ctx context.Context, clinicID string) (models.BonusSettings, error) {
	var settings models.BonusSettings
	err := r.collection(collBonusSettings).FindOne(ctx, bson.M{"clinic_id": clinicID}).Decode(&settings)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.DefaultBonusSettings(clinicID), nil
	}
	if err != nil {
		return models.BonusSettings{}, fmt.Errorf("load bonus settings %s: %w", clinicID, err)
	}
	return settings, nil
}

// SaveBonusSettings upserts the clinic's bonus configuration, keyed by clinic
// only. Last write wins; there is no concurrency token.
func (r *Repository) SaveBonusSettings(ctx context.Context, settings models.BonusSettings) error {
	filter := bson.M{"clinic_id": settings.ClinicID}
	update := bson.M{"$set": settings}

	_, err := r.collection(collBonusSettings).UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("save bonus settings %s: %w", settings.ClinicID, err)
	}
	return nil
}
