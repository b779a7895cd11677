package services

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/devconnector/backend/internal/models"
)

type MongoPostService struct {
	client   *mongo.Client
	db       *mongo.Database
	postsCol *mongo.Collection
}

func NewMongoPostService(ctx context.Context, mongoURI, dbName string) (*MongoPostService, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	db := client.Database(dbName)
	col := db.Collection("posts")

	// Best-effort indexes.
	_, _ = col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
	})

	log.Printf("MongoDB connected (posts): db=%s", dbName)
	return &MongoPostService{
		client:   client,
		db:       db,
		postsCol: col,
	}, nil
}

func (s *MongoPostService) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *MongoPostService) Create(ctx context.Context, author *models.User, req *models.CreatePostRequest) (*models.Post, error) {
	post := models.Post{
		ID:        uuid.New().String(),
		UserID:    author.ID,
		Text:      req.Text,
		Name:      author.Name,
		Avatar:    author.Avatar,
		Likes:     []models.Like{},
		Comments:  []models.Comment{},
		CreatedAt: time.Now().UTC(),
	}

	if _, err := s.postsCol.InsertOne(ctx, post); err != nil {
		return nil, err
	}
	return &post, nil
}

func (s *MongoPostService) List(ctx context.Context) ([]*models.Post, error) {
	cur, err := s.postsCol.Find(
		ctx,
		bson.M{},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]*models.Post, 0)
	for cur.Next(ctx) {
		var post models.Post
		if err := cur.Decode(&post); err != nil {
			return nil, err
		}
		out = append(out, &post)
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *MongoPostService) GetByID(ctx context.Context, id string) (*models.Post, error) {
	var post models.Post
	if err := s.postsCol.FindOne(ctx, bson.M{"_id": id}).Decode(&post); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

// Delete removes the post scoped to (owner, id); ownership lives in the
// filter, so a non-owner sees the same not-found as a missing post.
func (s *MongoPostService) Delete(ctx context.Context, userID, postID string) error {
	res, err := s.postsCol.DeleteOne(ctx, bson.M{"_id": postID, "user_id": userID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrPostNotFound
	}
	return nil
}

// Like prepends the caller to the likes array. The duplicate guard lives in
// the update filter, so the check and the push are one atomic command.
func (s *MongoPostService) Like(ctx context.Context, userID, postID string) (*models.Post, error) {
	res := s.postsCol.FindOneAndUpdate(
		ctx,
		bson.M{"_id": postID, "likes.user_id": bson.M{"$ne": userID}},
		bson.M{"$push": bson.M{"likes": bson.M{
			"$each":     bson.A{models.Like{UserID: userID}},
			"$position": 0,
		}}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var updated models.Post
	if err := res.Decode(&updated); err != nil {
		if err == mongo.ErrNoDocuments {
			// Distinguish missing post from duplicate like.
			var exists models.Post
			if err2 := s.postsCol.FindOne(ctx, bson.M{"_id": postID}).Decode(&exists); err2 == mongo.ErrNoDocuments {
				return nil, ErrPostNotFound
			}
			return nil, ErrAlreadyLiked
		}
		return nil, err
	}
	return &updated, nil
}

func (s *MongoPostService) Unlike(ctx context.Context, userID, postID string) (*models.Post, error) {
	res := s.postsCol.FindOneAndUpdate(
		ctx,
		bson.M{"_id": postID, "likes.user_id": userID},
		bson.M{"$pull": bson.M{"likes": bson.M{"user_id": userID}}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var updated models.Post
	if err := res.Decode(&updated); err != nil {
		if err == mongo.ErrNoDocuments {
			var exists models.Post
			if err2 := s.postsCol.FindOne(ctx, bson.M{"_id": postID}).Decode(&exists); err2 == mongo.ErrNoDocuments {
				return nil, ErrPostNotFound
			}
			return nil, ErrNotLiked
		}
		return nil, err
	}
	return &updated, nil
}

func (s *MongoPostService) AddComment(ctx context.Context, author *models.User, postID string, req *models.CreateCommentRequest) (*models.Post, error) {
	comment := models.Comment{
		ID:        uuid.New().String(),
		UserID:    author.ID,
		Text:      req.Text,
		Name:      author.Name,
		Avatar:    author.Avatar,
		CreatedAt: time.Now().UTC(),
	}

	res := s.postsCol.FindOneAndUpdate(
		ctx,
		bson.M{"_id": postID},
		bson.M{"$push": bson.M{"comments": bson.M{
			"$each":     bson.A{comment},
			"$position": 0,
		}}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var updated models.Post
	if err := res.Decode(&updated); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return &updated, nil
}

// RemoveComment deletes the comment with the given id if the caller wrote it.
// The author check needs the fetched document to answer 401 rather than 404.
func (s *MongoPostService) RemoveComment(ctx context.Context, userID, postID, commentID string) (*models.Post, error) {
	post, err := s.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	comment := findComment(post, commentID)
	if comment == nil {
		return nil, ErrCommentNotFound
	}
	if comment.UserID != userID {
		return nil, ErrNotAuthorized
	}

	res := s.postsCol.FindOneAndUpdate(
		ctx,
		bson.M{"_id": postID},
		bson.M{"$pull": bson.M{"comments": bson.M{"_id": commentID}}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var updated models.Post
	if err := res.Decode(&updated); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return &updated, nil
}

func findComment(post *models.Post, commentID string) *models.Comment {
	for i := range post.Comments {
		if post.Comments[i].ID == commentID {
			return &post.Comments[i]
		}
	}
	return nil
}
