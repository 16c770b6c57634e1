package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"questhunt/internal/model"
)

type SideQuestSubmissionRepo interface {
	// Create inserts a submission; the unique (teamId, sideQuestId) index
	// makes a second submission for the pair fail with ErrDuplicate.
	Create(ctx context.Context, sub *model.SideQuestSubmission) error
	GetByID(ctx context.Context, id string) (*model.SideQuestSubmission, error)
	GetByTeamAndQuest(ctx context.Context, teamID, questID string) (*model.SideQuestSubmission, error)
	ListByTeam(ctx context.Context, teamID string) ([]*model.SideQuestSubmission, error)
	// Gallery returns submissions with photos, newest first, optionally for
	// a single quest.
	Gallery(ctx context.Context, questID string, limit int64) ([]*model.SideQuestSubmission, error)
	ListPending(ctx context.Context) ([]*model.SideQuestSubmission, error)
	Update(ctx context.Context, sub *model.SideQuestSubmission) error
	DeleteByTeam(ctx context.Context, teamID string) error
	DeleteByQuest(ctx context.Context, questID string) error
}

type sideQuestSubmissionRepo struct {
	collection *mongo.Collection
}

func NewSideQuestSubmissionRepo(db *mongo.Database) SideQuestSubmissionRepo {
	return &sideQuestSubmissionRepo{collection: db.Collection("sidequest_submissions")}
}

func (r *sideQuestSubmissionRepo) Create(ctx context.Context, sub *model.SideQuestSubmission) error {
	result, err := r.collection.InsertOne(ctx, sub)
	if err != nil {
		return wrapErr(err)
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		sub.ID = oid.Hex()
	}
	return nil
}

func (r *sideQuestSubmissionRepo) GetByID(ctx context.Context, id string) (*model.SideQuestSubmission, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var sub model.SideQuestSubmission
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&sub); err != nil {
		return nil, wrapErr(err)
	}
	return &sub, nil
}

func (r *sideQuestSubmissionRepo) GetByTeamAndQuest(ctx context.Context, teamID, questID string) (*model.SideQuestSubmission, error) {
	var sub model.SideQuestSubmission
	err := r.collection.FindOne(ctx, bson.M{"teamId": teamID, "sideQuestId": questID}).Decode(&sub)
	if err != nil {
		return nil, wrapErr(err)
	}
	return &sub, nil
}

func (r *sideQuestSubmissionRepo) ListByTeam(ctx context.Context, teamID string) ([]*model.SideQuestSubmission, error) {
	return r.find(ctx, bson.M{"teamId": teamID}, nil)
}

func (r *sideQuestSubmissionRepo) Gallery(ctx context.Context, questID string, limit int64) ([]*model.SideQuestSubmission, error) {
	query := bson.M{"photoUrl": bson.M{"$ne": ""}}
	if questID != "" {
		query["sideQuestId"] = questID
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(limit)
	return r.find(ctx, query, opts)
}

func (r *sideQuestSubmissionRepo) ListPending(ctx context.Context) ([]*model.SideQuestSubmission, error) {
	return r.find(ctx, bson.M{"status": model.SideQuestPending}, nil)
}

func (r *sideQuestSubmissionRepo) find(ctx context.Context, query bson.M, opts *options.FindOptions) ([]*model.SideQuestSubmission, error) {
	var cursor *mongo.Cursor
	var err error
	if opts != nil {
		cursor, err = r.collection.Find(ctx, query, opts)
	} else {
		cursor, err = r.collection.Find(ctx, query)
	}
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var subs []*model.SideQuestSubmission
	if err := cursor.All(ctx, &subs); err != nil {
		return nil, err
	}
	return subs, nil
}

func (r *sideQuestSubmissionRepo) Update(ctx context.Context, sub *model.SideQuestSubmission) error {
	oid, err := primitive.ObjectIDFromHex(sub.ID)
	if err != nil {
		return ErrNotFound
	}

	copy := *sub
	copy.ID = ""
	_, err = r.collection.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": copy})
	return wrapErr(err)
}

func (r *sideQuestSubmissionRepo) DeleteByTeam(ctx context.Context, teamID string) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"teamId": teamID})
	return err
}

func (r *sideQuestSubmissionRepo) DeleteByQuest(ctx context.Context, questID string) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"sideQuestId": questID})
	return err
}
