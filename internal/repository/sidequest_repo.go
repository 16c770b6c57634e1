package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"questhunt/internal/model"
)

type SideQuestRepo interface {
	Create(ctx context.Context, quest *model.SideQuest) error
	GetByID(ctx context.Context, id string) (*model.SideQuest, error)
	ListActive(ctx context.Context) ([]*model.SideQuest, error)
	ListAll(ctx context.Context) ([]*model.SideQuest, error)
	Update(ctx context.Context, quest *model.SideQuest) error
	Delete(ctx context.Context, id string) error
}

type sideQuestRepo struct {
	collection *mongo.Collection
}

func NewSideQuestRepo(db *mongo.Database) SideQuestRepo {
	return &sideQuestRepo{collection: db.Collection("sidequests")}
}

func (r *sideQuestRepo) Create(ctx context.Context, quest *model.SideQuest) error {
	result, err := r.collection.InsertOne(ctx, quest)
	if err != nil {
		return wrapErr(err)
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		quest.ID = oid.Hex()
	}
	return nil
}

func (r *sideQuestRepo) GetByID(ctx context.Context, id string) (*model.SideQuest, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var quest model.SideQuest
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&quest); err != nil {
		return nil, wrapErr(err)
	}
	return &quest, nil
}

func (r *sideQuestRepo) ListActive(ctx context.Context) ([]*model.SideQuest, error) {
	return r.list(ctx, bson.M{"isActive": true})
}

func (r *sideQuestRepo) ListAll(ctx context.Context) ([]*model.SideQuest, error) {
	return r.list(ctx, bson.M{})
}

func (r *sideQuestRepo) list(ctx context.Context, filter bson.M) ([]*model.SideQuest, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var quests []*model.SideQuest
	if err := cursor.All(ctx, &quests); err != nil {
		return nil, err
	}
	return quests, nil
}

func (r *sideQuestRepo) Update(ctx context.Context, quest *model.SideQuest) error {
	oid, err := primitive.ObjectIDFromHex(quest.ID)
	if err != nil {
		return ErrNotFound
	}

	copy := *quest
	copy.ID = ""
	_, err = r.collection.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": copy})
	return wrapErr(err)
}

func (r *sideQuestRepo) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
