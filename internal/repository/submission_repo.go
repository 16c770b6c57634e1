package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"questhunt/internal/model"
)

// SubmissionFilter narrows admin submission listings.
type SubmissionFilter struct {
	Status model.SubmissionStatus
	TaskID string
	TeamID string
}

type SubmissionRepo interface {
	// Create inserts a new attempt. The unique (teamId, taskId) index turns
	// a concurrent double-create into ErrDuplicate.
	Create(ctx context.Context, sub *model.Submission) error
	GetByID(ctx context.Context, id string) (*model.Submission, error)
	GetByTeamAndTask(ctx context.Context, teamID, taskID string) (*model.Submission, error)
	ListByTeam(ctx context.Context, teamID string) ([]*model.Submission, error)
	List(ctx context.Context, filter SubmissionFilter) ([]*model.Submission, error)
	// ListByStatuses feeds the leaderboard aggregator.
	ListByStatuses(ctx context.Context, statuses []model.SubmissionStatus) ([]*model.Submission, error)
	// Feed returns completed, unblocked submissions with photos, newest first.
	Feed(ctx context.Context, limit int64) ([]*model.Submission, error)
	// CompletePhoto flips an attempt to completed if and only if its status
	// still matches from. Returns false when the guard fails, so a racing
	// second upload or a block in flight cannot overwrite a finished attempt.
	CompletePhoto(ctx context.Context, id string, from model.SubmissionStatus, photoURL, photoKey string, submittedAt time.Time, elapsedMs int64) (bool, error)
	Update(ctx context.Context, sub *model.Submission) error
	DeleteByTeam(ctx context.Context, teamID string) error
	DeleteByTask(ctx context.Context, taskID string) error
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status model.SubmissionStatus) (int64, error)
}

type submissionRepo struct {
	collection *mongo.Collection
}

func NewSubmissionRepo(db *mongo.Database) SubmissionRepo {
	return &submissionRepo{collection: db.Collection("submissions")}
}

func (r *submissionRepo) Create(ctx context.Context, sub *model.Submission) error {
	result, err := r.collection.InsertOne(ctx, sub)
	if err != nil {
		return wrapErr(err)
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		sub.ID = oid.Hex()
	}
	return nil
}

func (r *submissionRepo) GetByID(ctx context.Context, id string) (*model.Submission, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var sub model.Submission
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&sub); err != nil {
		return nil, wrapErr(err)
	}
	return &sub, nil
}

func (r *submissionRepo) GetByTeamAndTask(ctx context.Context, teamID, taskID string) (*model.Submission, error) {
	var sub model.Submission
	err := r.collection.FindOne(ctx, bson.M{"teamId": teamID, "taskId": taskID}).Decode(&sub)
	if err != nil {
		return nil, wrapErr(err)
	}
	return &sub, nil
}

func (r *submissionRepo) ListByTeam(ctx context.Context, teamID string) ([]*model.Submission, error) {
	return r.find(ctx, bson.M{"teamId": teamID}, nil)
}

func (r *submissionRepo) List(ctx context.Context, filter SubmissionFilter) ([]*model.Submission, error) {
	query := bson.M{}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.TaskID != "" {
		query["taskId"] = filter.TaskID
	}
	if filter.TeamID != "" {
		query["teamId"] = filter.TeamID
	}

	opts := options.Find().SetSort(bson.D{{Key: "photoSubmittedAt", Value: -1}})
	return r.find(ctx, query, opts)
}

func (r *submissionRepo) ListByStatuses(ctx context.Context, statuses []model.SubmissionStatus) ([]*model.Submission, error) {
	return r.find(ctx, bson.M{"status": bson.M{"$in": statuses}}, nil)
}

func (r *submissionRepo) Feed(ctx context.Context, limit int64) ([]*model.Submission, error) {
	query := bson.M{
		"status":   model.SubmissionCompleted,
		"photoUrl": bson.M{"$ne": ""},
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "photoSubmittedAt", Value: -1}}).
		SetLimit(limit)
	return r.find(ctx, query, opts)
}

func (r *submissionRepo) find(ctx context.Context, query bson.M, opts *options.FindOptions) ([]*model.Submission, error) {
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

	var subs []*model.Submission
	if err := cursor.All(ctx, &subs); err != nil {
		return nil, err
	}
	return subs, nil
}

func (r *submissionRepo) CompletePhoto(ctx context.Context, id string, from model.SubmissionStatus, photoURL, photoKey string, submittedAt time.Time, elapsedMs int64) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, ErrNotFound
	}

	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": oid, "status": from},
		bson.M{"$set": bson.M{
			"status":           model.SubmissionCompleted,
			"photoUrl":         photoURL,
			"photoKey":         photoKey,
			"photoSubmittedAt": submittedAt,
			"elapsedMs":        elapsedMs,
		}},
	)
	if err != nil {
		return false, err
	}
	return result.MatchedCount == 1, nil
}

func (r *submissionRepo) Update(ctx context.Context, sub *model.Submission) error {
	oid, err := primitive.ObjectIDFromHex(sub.ID)
	if err != nil {
		return ErrNotFound
	}

	copy := *sub
	copy.ID = ""
	_, err = r.collection.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": copy})
	return wrapErr(err)
}

func (r *submissionRepo) DeleteByTeam(ctx context.Context, teamID string) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"teamId": teamID})
	return err
}

func (r *submissionRepo) DeleteByTask(ctx context.Context, taskID string) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"taskId": taskID})
	return err
}

func (r *submissionRepo) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}

func (r *submissionRepo) CountByStatus(ctx context.Context, status model.SubmissionStatus) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"status": status})
}
