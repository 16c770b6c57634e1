package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"questhunt/internal/model"
)

type GameConfigRepo interface {
	// Get returns the singleton config document, creating it with defaults
	// on first access.
	Get(ctx context.Context) (*model.GameConfig, error)
	Save(ctx context.Context, cfg *model.GameConfig) error
}

type gameConfigRepo struct {
	collection *mongo.Collection
}

func NewGameConfigRepo(db *mongo.Database) GameConfigRepo {
	return &gameConfigRepo{collection: db.Collection("game_config")}
}

func (r *gameConfigRepo) Get(ctx context.Context) (*model.GameConfig, error) {
	var cfg model.GameConfig
	err := r.collection.FindOne(ctx, bson.M{}).Decode(&cfg)
	if err == nil {
		return &cfg, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	fresh := model.DefaultGameConfig()
	result, err := r.collection.InsertOne(ctx, fresh)
	if err != nil {
		// A concurrent first access may have created it already.
		if mongo.IsDuplicateKeyError(err) {
			err = r.collection.FindOne(ctx, bson.M{}).Decode(&cfg)
			if err != nil {
				return nil, wrapErr(err)
			}
			return &cfg, nil
		}
		return nil, err
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		fresh.ID = oid.Hex()
	}
	return fresh, nil
}

func (r *gameConfigRepo) Save(ctx context.Context, cfg *model.GameConfig) error {
	oid, err := primitive.ObjectIDFromHex(cfg.ID)
	if err != nil {
		return ErrNotFound
	}

	copy := *cfg
	copy.ID = ""
	_, err = r.collection.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": copy})
	return wrapErr(err)
}
