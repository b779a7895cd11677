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

type MongoProfileService struct {
	client      *mongo.Client
	db          *mongo.Database
	profilesCol *mongo.Collection
}

func NewMongoProfileService(ctx context.Context, mongoURI, dbName string) (*MongoProfileService, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	db := client.Database(dbName)
	col := db.Collection("profiles")

	// Best-effort indexes.
	_, _ = col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "handle", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "updated_at", Value: -1}}},
	})

	log.Printf("MongoDB connected (profiles): db=%s", dbName)
	return &MongoProfileService{
		client:      client,
		db:          db,
		profilesCol: col,
	}, nil
}

func (s *MongoProfileService) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *MongoProfileService) GetByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	var prof models.Profile
	if err := s.profilesCol.FindOne(ctx, bson.M{"user_id": userID}).Decode(&prof); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &prof, nil
}

func (s *MongoProfileService) GetByHandle(ctx context.Context, handle string) (*models.Profile, error) {
	var prof models.Profile
	if err := s.profilesCol.FindOne(ctx, bson.M{"handle": handle}).Decode(&prof); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &prof, nil
}

func (s *MongoProfileService) List(ctx context.Context) ([]*models.Profile, error) {
	cur, err := s.profilesCol.Find(
		ctx,
		bson.M{},
		options.Find().SetSort(bson.D{{Key: "updated_at", Value: -1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]*models.Profile, 0)
	for cur.Next(ctx) {
		var prof models.Profile
		if err := cur.Decode(&prof); err != nil {
			return nil, err
		}
		out = append(out, &prof)
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Upsert applies a partial update when the caller already has a profile and
// creates a fresh one otherwise. On create the requested handle must not be
// in use by any other profile.
func (s *MongoProfileService) Upsert(ctx context.Context, userID string, req *models.UpsertProfileRequest) (*models.Profile, error) {
	now := time.Now().UTC()

	set := bson.M{
		"handle":     req.Handle,
		"status":     req.Status,
		"skills":     req.SplitSkills(),
		"updated_at": now,
	}
	if req.Company != nil {
		set["company"] = *req.Company
	}
	if req.Website != nil {
		set["website"] = *req.Website
	}
	if req.Location != nil {
		set["location"] = *req.Location
	}
	if req.Bio != nil {
		set["bio"] = *req.Bio
	}
	if req.GithubUsername != nil {
		set["github_username"] = *req.GithubUsername
	}
	if req.Youtube != nil {
		set["social.youtube"] = *req.Youtube
	}
	if req.Twitter != nil {
		set["social.twitter"] = *req.Twitter
	}
	if req.Facebook != nil {
		set["social.facebook"] = *req.Facebook
	}
	if req.Linkedin != nil {
		set["social.linkedin"] = *req.Linkedin
	}
	if req.Instagram != nil {
		set["social.instagram"] = *req.Instagram
	}

	res := s.profilesCol.FindOneAndUpdate(
		ctx,
		bson.M{"user_id": userID},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var updated models.Profile
	err := res.Decode(&updated)
	if err == nil {
		return &updated, nil
	}
	if err != mongo.ErrNoDocuments {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrHandleTaken
		}
		return nil, err
	}

	// No profile yet: check the handle is free, then create.
	var existing models.Profile
	err = s.profilesCol.FindOne(ctx, bson.M{"handle": req.Handle}).Decode(&existing)
	if err == nil {
		return nil, ErrHandleTaken
	}
	if err != mongo.ErrNoDocuments {
		return nil, err
	}

	prof := models.Profile{
		ID:         uuid.New().String(),
		UserID:     userID,
		Handle:     req.Handle,
		Status:     req.Status,
		Skills:     req.SplitSkills(),
		Experience: []models.Experience{},
		Education:  []models.Education{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if req.Company != nil {
		prof.Company = *req.Company
	}
	if req.Website != nil {
		prof.Website = *req.Website
	}
	if req.Location != nil {
		prof.Location = *req.Location
	}
	if req.Bio != nil {
		prof.Bio = *req.Bio
	}
	if req.GithubUsername != nil {
		prof.GithubUsername = *req.GithubUsername
	}
	if req.Youtube != nil {
		prof.Social.Youtube = *req.Youtube
	}
	if req.Twitter != nil {
		prof.Social.Twitter = *req.Twitter
	}
	if req.Facebook != nil {
		prof.Social.Facebook = *req.Facebook
	}
	if req.Linkedin != nil {
		prof.Social.Linkedin = *req.Linkedin
	}
	if req.Instagram != nil {
		prof.Social.Instagram = *req.Instagram
	}

	if _, err := s.profilesCol.InsertOne(ctx, prof); err != nil {
		// A racing writer can take the handle between check and insert.
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrHandleTaken
		}
		return nil, err
	}
	return &prof, nil
}

func (s *MongoProfileService) AddExperience(ctx context.Context, userID string, req *models.ExperienceRequest) (*models.Profile, error) {
	entry := models.Experience{
		ID:          uuid.New().String(),
		Title:       req.Title,
		Company:     req.Company,
		Location:    req.Location,
		From:        req.From,
		To:          req.To,
		Current:     req.Current,
		Description: req.Description,
	}
	return s.pushEntry(ctx, userID, "experience", entry)
}

func (s *MongoProfileService) RemoveExperience(ctx context.Context, userID, entryID string) (*models.Profile, error) {
	return s.pullEntry(ctx, userID, "experience", entryID)
}

func (s *MongoProfileService) AddEducation(ctx context.Context, userID string, req *models.EducationRequest) (*models.Profile, error) {
	entry := models.Education{
		ID:           uuid.New().String(),
		School:       req.School,
		Degree:       req.Degree,
		FieldOfStudy: req.FieldOfStudy,
		From:         req.From,
		To:           req.To,
		Current:      req.Current,
		Description:  req.Description,
	}
	return s.pushEntry(ctx, userID, "education", entry)
}

func (s *MongoProfileService) RemoveEducation(ctx context.Context, userID, entryID string) (*models.Profile, error) {
	return s.pullEntry(ctx, userID, "education", entryID)
}

// pushEntry prepends one entry to the named embedded array in a single
// update command, so concurrent adds on the same profile cannot lose writes.
func (s *MongoProfileService) pushEntry(ctx context.Context, userID, field string, entry interface{}) (*models.Profile, error) {
	res := s.profilesCol.FindOneAndUpdate(
		ctx,
		bson.M{"user_id": userID},
		bson.M{
			"$push": bson.M{field: bson.M{"$each": bson.A{entry}, "$position": 0}},
			"$set":  bson.M{"updated_at": time.Now().UTC()},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var updated models.Profile
	if err := res.Decode(&updated); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &updated, nil
}

// pullEntry removes exactly the entry with the given id. The filter matches
// on the entry id too, so "no such entry" and "no such profile" can be told
// apart with a follow-up lookup.
func (s *MongoProfileService) pullEntry(ctx context.Context, userID, field, entryID string) (*models.Profile, error) {
	res := s.profilesCol.FindOneAndUpdate(
		ctx,
		bson.M{"user_id": userID, field + "._id": entryID},
		bson.M{
			"$pull": bson.M{field: bson.M{"_id": entryID}},
			"$set":  bson.M{"updated_at": time.Now().UTC()},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var updated models.Profile
	if err := res.Decode(&updated); err != nil {
		if err == mongo.ErrNoDocuments {
			// Distinguish missing profile from missing entry.
			var exists models.Profile
			if err2 := s.profilesCol.FindOne(ctx, bson.M{"user_id": userID}).Decode(&exists); err2 == mongo.ErrNoDocuments {
				return nil, ErrProfileNotFound
			}
			return nil, ErrEntryNotFound
		}
		return nil, err
	}
	return &updated, nil
}
