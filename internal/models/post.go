package models

import (
	"strings"
	"time"
	"unicode/utf8"
)

// Post is a status update. Likes and comments are embedded arrays, newest
// first; name and avatar are snapshots of the author at write time.
type Post struct {
	ID        string    `json:"id" bson:"_id"`
	UserID    string    `json:"user_id" bson:"user_id"`
	Text      string    `json:"text" bson:"text"`
	Name      string    `json:"name" bson:"name"`
	Avatar    string    `json:"avatar" bson:"avatar,omitempty"`
	Likes     []Like    `json:"likes" bson:"likes"`
	Comments  []Comment `json:"comments" bson:"comments"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// Like records one user's like; at most one per user per post.
type Like struct {
	UserID string `json:"user_id" bson:"user_id"`
}

type Comment struct {
	ID        string    `json:"id" bson:"_id"`
	UserID    string    `json:"user_id" bson:"user_id"`
	Text      string    `json:"text" bson:"text"`
	Name      string    `json:"name" bson:"name"`
	Avatar    string    `json:"avatar" bson:"avatar,omitempty"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

type CreatePostRequest struct {
	Text string `json:"text"`
}

func (r *CreatePostRequest) Validate() map[string]string {
	return validatePostText(r.Text)
}

type CreateCommentRequest struct {
	Text string `json:"text"`
}

func (r *CreateCommentRequest) Validate() map[string]string {
	return validatePostText(r.Text)
}

// validatePostText applies the shared post/comment text rule: required, and
// between 10 and 300 characters inclusive.
func validatePostText(text string) map[string]string {
	errors := make(map[string]string)

	if strings.TrimSpace(text) == "" {
		errors["text"] = "Text field is empty"
	} else if n := utf8.RuneCountInString(text); n < 10 || n > 300 {
		errors["text"] = "Text must be between 10 and 300 characters"
	}

	return errors
}
