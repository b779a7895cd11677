package services

import (
	"context"
	"errors"

	"github.com/devconnector/backend/internal/models"
)

var (
	ErrPostNotFound    = errors.New("post not found")
	ErrAlreadyLiked    = errors.New("post already liked")
	ErrNotLiked        = errors.New("post not yet liked")
	ErrCommentNotFound = errors.New("comment not found")
	ErrNotAuthorized   = errors.New("not authorized to modify this resource")
)

// PostService manages posts and their embedded like/comment collections.
// Author name and avatar are snapshotted from the acting user at write time.
type PostService interface {
	Create(ctx context.Context, author *models.User, req *models.CreatePostRequest) (*models.Post, error)
	List(ctx context.Context) ([]*models.Post, error)
	GetByID(ctx context.Context, id string) (*models.Post, error)
	Delete(ctx context.Context, userID, postID string) error
	Like(ctx context.Context, userID, postID string) (*models.Post, error)
	Unlike(ctx context.Context, userID, postID string) (*models.Post, error)
	AddComment(ctx context.Context, author *models.User, postID string, req *models.CreateCommentRequest) (*models.Post, error)
	RemoveComment(ctx context.Context, userID, postID, commentID string) (*models.Post, error)
}
