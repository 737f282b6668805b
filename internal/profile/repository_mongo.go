package profile

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

const profilesCollection = "profiles"

type mongoRepository struct {
	client *docstore.Client
}

// NewMongoRepository creates the profiles collection repository with a
// unique index on userId.
func NewMongoRepository(client *docstore.Client) Repository {
	client.RegisterIndexes(profilesCollection,
		mongo.IndexModel{Keys: bson.D{{Key: "userId", Value: 1}}, Options: options.Index().SetUnique(true)},
	)
	return &mongoRepository{client: client}
}

func (r *mongoRepository) FindByUserID(ctx context.Context, userID string) (*Profile, error) {
	coll, err := r.client.Collection(ctx, profilesCollection)
	if err != nil {
		return nil, err
	}
	var p Profile
	if err := coll.FindOne(ctx, bson.D{{Key: "userId", Value: userID}}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrNotFound.WithDetails("Profile not found.")
		}
		return nil, fmt.Errorf("find profile: %w", err)
	}
	return &p, nil
}

func (r *mongoRepository) Upsert(ctx context.Context, upd *Update) (*Profile, error) {
	coll, err := r.client.Collection(ctx, profilesCollection)
	if err != nil {
		return nil, err
	}

	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	var p Profile
	err = coll.FindOneAndUpdate(ctx,
		bson.D{{Key: "userId", Value: upd.UserID}},
		bson.D{{Key: "$set", Value: setDocument(upd)}},
		opts,
	).Decode(&p)
	if err != nil {
		return nil, fmt.Errorf("upsert profile: %w", err)
	}
	return &p, nil
}

// setDocument is the $set payload for upd.
func setDocument(upd *Update) bson.M {
	set := bson.M{
		"userId":    upd.UserID,
		"updatedAt": upd.UpdatedAt,
	}
	for name, value := range upd.Fields {
		if IsTextField(name) {
			set[name] = value
		}
	}
	if upd.SetDOB {
		set[FieldDOB] = upd.DOB
	}
	if upd.Avatar != "" {
		set[FieldAvatar] = upd.Avatar
	}
	return set
}

func (r *mongoRepository) AvatarPaths(ctx context.Context) ([]string, error) {
	coll, err := r.client.Collection(ctx, profilesCollection)
	if err != nil {
		return nil, err
	}
	cursor, err := coll.Find(ctx,
		bson.D{{Key: "avatar", Value: bson.D{{Key: "$nin", Value: bson.A{nil, ""}}}}},
		options.Find().SetProjection(bson.D{{Key: "avatar", Value: 1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("list avatars: %w", err)
	}
	var rows []struct {
		Avatar string `bson:"avatar"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("read avatars: %w", err)
	}
	paths := make([]string, 0, len(rows))
	for _, row := range rows {
		paths = append(paths, row.Avatar)
	}
	return paths, nil
}
