package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const settingsCollection = "settings"

// MongoSettingsRepository is a key/value store for scalar settings. Set is an
// upsert keyed on the setting name; last write wins.
type MongoSettingsRepository struct {
	coll *mongo.Collection
}

func NewSettingsRepository(db *mongo.Database) *MongoSettingsRepository {
	return &MongoSettingsRepository{coll: db.Collection(settingsCollection)}
}

type mongoSetting struct {
	Key   string `bson:"key"`
	Value string `bson:"value"`
}

func (r *MongoSettingsRepository) Get(ctx context.Context, key string) (string, bool, error) {
	var ms mongoSetting
	err := r.coll.FindOne(ctx, bson.M{"key": key}).Decode(&ms)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return "", false, nil
		}
		return "", false, fmt.Errorf("find setting: %w", err)
	}
	return ms.Value, true, nil
}

func (r *MongoSettingsRepository) Set(ctx context.Context, key, value string) error {
	update := bson.M{"$set": bson.M{"key": key, "value": value}}
	opts := options.Update().SetUpsert(true)
	if _, err := r.coll.UpdateOne(ctx, bson.M{"key": key}, update, opts); err != nil {
		return fmt.Errorf("upsert setting: %w", err)
	}
	return nil
}
