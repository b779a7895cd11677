package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/devconnector/backend/internal/middleware"
	"github.com/devconnector/backend/internal/models"
	"github.com/devconnector/backend/internal/services"
)

type PostHandler struct {
	posts services.PostService
	users services.UserService
}

func NewPostHandler(posts services.PostService, users services.UserService) *PostHandler {
	return &PostHandler{
		posts: posts,
		users: users,
	}
}

func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Unauthorized"))
		return
	}

	var req models.CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}

	if errors := req.Validate(); len(errors) > 0 {
		writeJSON(w, http.StatusBadRequest, models.NewValidationErrorResponse(errors))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	author, err := h.users.GetByID(ctx, userID)
	if err != nil {
		log.Printf("[CreatePost] user=%s error=%v", userID, err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to create post"))
		return
	}

	post, err := h.posts.Create(ctx, author, &req)
	if err != nil {
		log.Printf("[CreatePost] user=%s error=%v", userID, err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to create post"))
		return
	}

	writeJSON(w, http.StatusCreated, models.NewSuccessResponse(post))
}

func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	posts, err := h.posts.List(ctx)
	if err != nil {
		log.Printf("[ListPosts] error=%v", err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to load posts"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(posts))
}

func (h *PostHandler) Get(w http.ResponseWriter, r *http.Request) {
	postID := chi.URLParam(r, "postId")

	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	post, err := h.posts.GetByID(ctx, postID)
	if err != nil {
		if err == services.ErrPostNotFound {
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Post not found"))
			return
		}
		log.Printf("[GetPost] post=%s error=%v", postID, err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to load post"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(post))
}

func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Unauthorized"))
		return
	}
	postID := chi.URLParam(r, "postId")

	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	if err := h.posts.Delete(ctx, userID, postID); err != nil {
		if err == services.ErrPostNotFound {
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Post not found"))
			return
		}
		log.Printf("[DeletePost] user=%s post=%s error=%v", userID, postID, err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to delete post"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(nil))
}

func (h *PostHandler) Like(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Unauthorized"))
		return
	}
	postID := chi.URLParam(r, "postId")

	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	post, err := h.posts.Like(ctx, userID, postID)
	if err != nil {
		if err == services.ErrPostNotFound {
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Post not found"))
			return
		}
		if err == services.ErrAlreadyLiked {
			writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("User already liked this post"))
			return
		}
		log.Printf("[LikePost] user=%s post=%s error=%v", userID, postID, err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to like post"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(post))
}

func (h *PostHandler) Unlike(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Unauthorized"))
		return
	}
	postID := chi.URLParam(r, "postId")

	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	post, err := h.posts.Unlike(ctx, userID, postID)
	if err != nil {
		if err == services.ErrPostNotFound {
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Post not found"))
			return
		}
		if err == services.ErrNotLiked {
			writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("User has not liked this post"))
			return
		}
		log.Printf("[UnlikePost] user=%s post=%s error=%v", userID, postID, err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to unlike post"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(post))
}

func (h *PostHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Unauthorized"))
		return
	}
	postID := chi.URLParam(r, "postId")

	var req models.CreateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}

	if errors := req.Validate(); len(errors) > 0 {
		writeJSON(w, http.StatusBadRequest, models.NewValidationErrorResponse(errors))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	author, err := h.users.GetByID(ctx, userID)
	if err != nil {
		log.Printf("[AddComment] user=%s error=%v", userID, err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to add comment"))
		return
	}

	post, err := h.posts.AddComment(ctx, author, postID, &req)
	if err != nil {
		if err == services.ErrPostNotFound {
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Post not found"))
			return
		}
		log.Printf("[AddComment] user=%s post=%s error=%v", userID, postID, err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to add comment"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(post))
}

func (h *PostHandler) RemoveComment(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Unauthorized"))
		return
	}
	postID := chi.URLParam(r, "postId")
	commentID := chi.URLParam(r, "commentId")

	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	post, err := h.posts.RemoveComment(ctx, userID, postID, commentID)
	if err != nil {
		if err == services.ErrPostNotFound {
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Post not found"))
			return
		}
		if err == services.ErrCommentNotFound {
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Comment not found"))
			return
		}
		if err == services.ErrNotAuthorized {
			writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Not authorized to delete this comment"))
			return
		}
		log.Printf("[RemoveComment] user=%s post=%s comment=%s error=%v", userID, postID, commentID, err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to remove comment"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(post))
}
