package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"questhunt/internal/model"
)

type TeamRepo interface {
	Create(ctx context.Context, team *model.Team) error
	GetByID(ctx context.Context, id string) (*model.Team, error)
	GetByName(ctx context.Context, name string) (*model.Team, error)
	// List returns non-admin teams sorted by name.
	List(ctx context.Context) ([]*model.Team, error)
	// GetByIDs resolves teams in bulk for leaderboard hydration.
	GetByIDs(ctx context.Context, ids []string) ([]*model.Team, error)
	AdminExists(ctx context.Context) (bool, error)
	Update(ctx context.Context, team *model.Team) error
	Delete(ctx context.Context, id string) error
	CountByRole(ctx context.Context, role model.Role) (int64, error)
}

type teamRepo struct {
	collection *mongo.Collection
}

func NewTeamRepo(db *mongo.Database) TeamRepo {
	return &teamRepo{collection: db.Collection("teams")}
}

func (r *teamRepo) Create(ctx context.Context, team *model.Team) error {
	result, err := r.collection.InsertOne(ctx, team)
	if err != nil {
		return wrapErr(err)
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		team.ID = oid.Hex()
	}
	return nil
}

func (r *teamRepo) GetByID(ctx context.Context, id string) (*model.Team, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var team model.Team
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&team); err != nil {
		return nil, wrapErr(err)
	}
	return &team, nil
}

func (r *teamRepo) GetByName(ctx context.Context, name string) (*model.Team, error) {
	var team model.Team
	if err := r.collection.FindOne(ctx, bson.M{"name": name}).Decode(&team); err != nil {
		return nil, wrapErr(err)
	}
	return &team, nil
}

func (r *teamRepo) List(ctx context.Context) ([]*model.Team, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"role": bson.M{"$ne": model.RoleAdmin}}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var teams []*model.Team
	if err := cursor.All(ctx, &teams); err != nil {
		return nil, err
	}
	return teams, nil
}

func (r *teamRepo) GetByIDs(ctx context.Context, ids []string) ([]*model.Team, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			continue
		}
		oids = append(oids, oid)
	}

	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var teams []*model.Team
	if err := cursor.All(ctx, &teams); err != nil {
		return nil, err
	}
	return teams, nil
}

func (r *teamRepo) AdminExists(ctx context.Context) (bool, error) {
	n, err := r.collection.CountDocuments(ctx, bson.M{"role": model.RoleAdmin})
	return n > 0, err
}

func (r *teamRepo) Update(ctx context.Context, team *model.Team) error {
	oid, err := primitive.ObjectIDFromHex(team.ID)
	if err != nil {
		return ErrNotFound
	}

	copy := *team
	copy.ID = ""
	_, err = r.collection.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": copy})
	return wrapErr(err)
}

func (r *teamRepo) Delete(ctx context.Context, id string) error {
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

func (r *teamRepo) CountByRole(ctx context.Context, role model.Role) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"role": role})
}
