package user

import (
	"context"
	"errors"
	"fmt"

	"myapp_backend/internal/common"
	"myapp_backend/internal/platform/docstore"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const usersCollection = "users"

type mongoRepository struct {
	client *docstore.Client
}

// NewMongoRepository creates the users collection repository and registers
// its indexes: unique userId, plain email.
func NewMongoRepository(client *docstore.Client) Repository {
	client.RegisterIndexes(usersCollection,
		mongo.IndexModel{Keys: bson.D{{Key: "userId", Value: 1}}, Options: options.Index().SetUnique(true)},
		mongo.IndexModel{Keys: bson.D{{Key: "email", Value: 1}}},
	)
	return &mongoRepository{client: client}
}

func (r *mongoRepository) Create(ctx context.Context, user *User) error {
	coll, err := r.client.Collection(ctx, usersCollection)
	if err != nil {
		return err
	}
	if _, err := coll.InsertOne(ctx, user); err != nil {
		return insertError(err)
	}
	return nil
}

// insertError maps a unique index violation to Conflict.
func insertError(err error) error {
	if mongo.IsDuplicateKeyError(err) {
		return common.ErrConflict.WithMessage("User already exists")
	}
	return fmt.Errorf("insert user: %w", err)
}

func (r *mongoRepository) FindByUserID(ctx context.Context, userID string) (*User, error) {
	return r.findOne(ctx, bson.D{{Key: "userId", Value: userID}})
}

func (r *mongoRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	return r.findOne(ctx, bson.D{{Key: "email", Value: email}})
}

func (r *mongoRepository) findOne(ctx context.Context, filter bson.D) (*User, error) {
	coll, err := r.client.Collection(ctx, usersCollection)
	if err != nil {
		return nil, err
	}
	var u User
	if err := coll.FindOne(ctx, filter).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrNotFound.WithDetails("User not found.")
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &u, nil
}
