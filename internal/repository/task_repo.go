package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"questhunt/internal/model"
)

type TaskRepo interface {
	Create(ctx context.Context, task *model.Task) error
	GetByID(ctx context.Context, id string) (*model.Task, error)
	// ListActive returns active tasks sorted by display order.
	ListActive(ctx context.Context) ([]*model.Task, error)
	// ListAll returns every task, including inactive ones, sorted by order.
	ListAll(ctx context.Context) ([]*model.Task, error)
	Update(ctx context.Context, task *model.Task) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

type taskRepo struct {
	collection *mongo.Collection
}

func NewTaskRepo(db *mongo.Database) TaskRepo {
	return &taskRepo{collection: db.Collection("tasks")}
}

func (r *taskRepo) Create(ctx context.Context, task *model.Task) error {
	result, err := r.collection.InsertOne(ctx, task)
	if err != nil {
		return wrapErr(err)
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		task.ID = oid.Hex()
	}
	return nil
}

func (r *taskRepo) GetByID(ctx context.Context, id string) (*model.Task, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var task model.Task
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&task); err != nil {
		return nil, wrapErr(err)
	}
	return &task, nil
}

func (r *taskRepo) ListActive(ctx context.Context) ([]*model.Task, error) {
	return r.list(ctx, bson.M{"isActive": true})
}

func (r *taskRepo) ListAll(ctx context.Context) ([]*model.Task, error) {
	return r.list(ctx, bson.M{})
}

func (r *taskRepo) list(ctx context.Context, filter bson.M) ([]*model.Task, error) {
	opts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var tasks []*model.Task
	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *taskRepo) Update(ctx context.Context, task *model.Task) error {
	oid, err := primitive.ObjectIDFromHex(task.ID)
	if err != nil {
		return ErrNotFound
	}

	copy := *task
	copy.ID = ""
	_, err = r.collection.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": copy})
	return wrapErr(err)
}

func (r *taskRepo) Delete(ctx context.Context, id string) error {
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

func (r *taskRepo) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}
