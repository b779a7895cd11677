package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoAccountService struct {
	client      *mongo.Client
	db          *mongo.Database
	usersCol    *mongo.Collection
	profilesCol *mongo.Collection
	postsCol    *mongo.Collection
}

func NewMongoAccountService(ctx context.Context, mongoURI, dbName string) (*MongoAccountService, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	db := client.Database(dbName)
	return &MongoAccountService{
		client:      client,
		db:          db,
		usersCol:    db.Collection("users"),
		profilesCol: db.Collection("profiles"),
		postsCol:    db.Collection("posts"),
	}, nil
}

func (s *MongoAccountService) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// DeleteAccount removes all data tied to the user:
// - their posts
// - their likes and comments on everyone else's posts
// - their profile
// - the user document itself
// Deletes run in that order so no interaction ends up pointing at a gone user.
func (s *MongoAccountService) DeleteAccount(ctx context.Context, userID string) error {
	if _, err := s.postsCol.DeleteMany(ctx, bson.M{"user_id": userID}); err != nil {
		return err
	}

	if _, err := s.postsCol.UpdateMany(ctx, bson.M{}, bson.M{
		"$pull": bson.M{
			"likes":    bson.M{"user_id": userID},
			"comments": bson.M{"user_id": userID},
		},
	}); err != nil {
		return err
	}

	if _, err := s.profilesCol.DeleteOne(ctx, bson.M{"user_id": userID}); err != nil {
		return err
	}

	res, err := s.usersCol.DeleteOne(ctx, bson.M{"_id": userID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}
