package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/devconnector/backend/internal/middleware"
	"github.com/devconnector/backend/internal/models"
	"github.com/devconnector/backend/internal/services"
)

// In-memory service fakes implementing the documented service contracts so
// handler flows can be exercised without a running document store.

type fakeUserService struct {
	users     map[string]*models.User
	byEmail   map[string]string
	passwords map[string]string
	nextID    int
}

func newFakeUserService() *fakeUserService {
	return &fakeUserService{
		users:     make(map[string]*models.User),
		byEmail:   make(map[string]string),
		passwords: make(map[string]string),
	}
}

func (s *fakeUserService) addUser(id, name, email string) *models.User {
	u := &models.User{ID: id, Name: name, Email: email, Avatar: "https://example.com/" + id + ".png"}
	s.users[id] = u
	s.byEmail[email] = id
	return u
}

func (s *fakeUserService) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	if _, exists := s.byEmail[req.Email]; exists {
		return nil, services.ErrEmailExists
	}
	s.nextID++
	id := fmt.Sprintf("user-%d", s.nextID)
	u := s.addUser(id, req.Name, req.Email)
	s.passwords[id] = req.Password
	return u, nil
}

func (s *fakeUserService) Login(ctx context.Context, req *models.LoginRequest) (*models.User, error) {
	id, exists := s.byEmail[req.Email]
	if !exists {
		return nil, services.ErrUserNotFound
	}
	if s.passwords[id] != req.Password {
		return nil, services.ErrInvalidPassword
	}
	return s.users[id], nil
}

func (s *fakeUserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	u, exists := s.users[id]
	if !exists {
		return nil, services.ErrUserNotFound
	}
	return u, nil
}

type fakeProfileService struct {
	byUser map[string]*models.Profile
	nextID int
}

func newFakeProfileService() *fakeProfileService {
	return &fakeProfileService{byUser: make(map[string]*models.Profile)}
}

func (s *fakeProfileService) entryID() string {
	s.nextID++
	return fmt.Sprintf("entry-%d", s.nextID)
}

func (s *fakeProfileService) GetByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	prof, ok := s.byUser[userID]
	if !ok {
		return nil, services.ErrProfileNotFound
	}
	return prof, nil
}

func (s *fakeProfileService) GetByHandle(ctx context.Context, handle string) (*models.Profile, error) {
	for _, prof := range s.byUser {
		if prof.Handle == handle {
			return prof, nil
		}
	}
	return nil, services.ErrProfileNotFound
}

func (s *fakeProfileService) List(ctx context.Context) ([]*models.Profile, error) {
	out := make([]*models.Profile, 0, len(s.byUser))
	for _, prof := range s.byUser {
		out = append(out, prof)
	}
	return out, nil
}

func (s *fakeProfileService) Upsert(ctx context.Context, userID string, req *models.UpsertProfileRequest) (*models.Profile, error) {
	if prof, ok := s.byUser[userID]; ok {
		prof.Handle = req.Handle
		prof.Status = req.Status
		prof.Skills = req.SplitSkills()
		if req.Bio != nil {
			prof.Bio = *req.Bio
		}
		return prof, nil
	}

	for _, prof := range s.byUser {
		if prof.Handle == req.Handle {
			return nil, services.ErrHandleTaken
		}
	}

	prof := &models.Profile{
		ID:         "profile-" + userID,
		UserID:     userID,
		Handle:     req.Handle,
		Status:     req.Status,
		Skills:     req.SplitSkills(),
		Experience: []models.Experience{},
		Education:  []models.Education{},
	}
	if req.Bio != nil {
		prof.Bio = *req.Bio
	}
	s.byUser[userID] = prof
	return prof, nil
}

func (s *fakeProfileService) AddExperience(ctx context.Context, userID string, req *models.ExperienceRequest) (*models.Profile, error) {
	prof, ok := s.byUser[userID]
	if !ok {
		return nil, services.ErrProfileNotFound
	}
	entry := models.Experience{
		ID:      s.entryID(),
		Title:   req.Title,
		Company: req.Company,
		From:    req.From,
	}
	prof.Experience = append([]models.Experience{entry}, prof.Experience...)
	return prof, nil
}

func (s *fakeProfileService) RemoveExperience(ctx context.Context, userID, entryID string) (*models.Profile, error) {
	prof, ok := s.byUser[userID]
	if !ok {
		return nil, services.ErrProfileNotFound
	}
	for i, e := range prof.Experience {
		if e.ID == entryID {
			prof.Experience = append(prof.Experience[:i], prof.Experience[i+1:]...)
			return prof, nil
		}
	}
	return nil, services.ErrEntryNotFound
}

func (s *fakeProfileService) AddEducation(ctx context.Context, userID string, req *models.EducationRequest) (*models.Profile, error) {
	prof, ok := s.byUser[userID]
	if !ok {
		return nil, services.ErrProfileNotFound
	}
	entry := models.Education{
		ID:           s.entryID(),
		School:       req.School,
		Degree:       req.Degree,
		FieldOfStudy: req.FieldOfStudy,
		From:         req.From,
	}
	prof.Education = append([]models.Education{entry}, prof.Education...)
	return prof, nil
}

func (s *fakeProfileService) RemoveEducation(ctx context.Context, userID, entryID string) (*models.Profile, error) {
	prof, ok := s.byUser[userID]
	if !ok {
		return nil, services.ErrProfileNotFound
	}
	for i, e := range prof.Education {
		if e.ID == entryID {
			prof.Education = append(prof.Education[:i], prof.Education[i+1:]...)
			return prof, nil
		}
	}
	return nil, services.ErrEntryNotFound
}

type fakePostService struct {
	posts  map[string]*models.Post
	nextID int
}

func newFakePostService() *fakePostService {
	return &fakePostService{posts: make(map[string]*models.Post)}
}

func (s *fakePostService) Create(ctx context.Context, author *models.User, req *models.CreatePostRequest) (*models.Post, error) {
	s.nextID++
	post := &models.Post{
		ID:       fmt.Sprintf("post-%d", s.nextID),
		UserID:   author.ID,
		Text:     req.Text,
		Name:     author.Name,
		Avatar:   author.Avatar,
		Likes:    []models.Like{},
		Comments: []models.Comment{},
	}
	s.posts[post.ID] = post
	return post, nil
}

func (s *fakePostService) List(ctx context.Context) ([]*models.Post, error) {
	out := make([]*models.Post, 0, len(s.posts))
	for _, p := range s.posts {
		out = append(out, p)
	}
	return out, nil
}

func (s *fakePostService) GetByID(ctx context.Context, id string) (*models.Post, error) {
	p, ok := s.posts[id]
	if !ok {
		return nil, services.ErrPostNotFound
	}
	return p, nil
}

func (s *fakePostService) Delete(ctx context.Context, userID, postID string) error {
	p, ok := s.posts[postID]
	if !ok || p.UserID != userID {
		return services.ErrPostNotFound
	}
	delete(s.posts, postID)
	return nil
}

func (s *fakePostService) Like(ctx context.Context, userID, postID string) (*models.Post, error) {
	p, ok := s.posts[postID]
	if !ok {
		return nil, services.ErrPostNotFound
	}
	for _, l := range p.Likes {
		if l.UserID == userID {
			return nil, services.ErrAlreadyLiked
		}
	}
	p.Likes = append([]models.Like{{UserID: userID}}, p.Likes...)
	return p, nil
}

func (s *fakePostService) Unlike(ctx context.Context, userID, postID string) (*models.Post, error) {
	p, ok := s.posts[postID]
	if !ok {
		return nil, services.ErrPostNotFound
	}
	for i, l := range p.Likes {
		if l.UserID == userID {
			p.Likes = append(p.Likes[:i], p.Likes[i+1:]...)
			return p, nil
		}
	}
	return nil, services.ErrNotLiked
}

func (s *fakePostService) AddComment(ctx context.Context, author *models.User, postID string, req *models.CreateCommentRequest) (*models.Post, error) {
	p, ok := s.posts[postID]
	if !ok {
		return nil, services.ErrPostNotFound
	}
	s.nextID++
	comment := models.Comment{
		ID:     fmt.Sprintf("comment-%d", s.nextID),
		UserID: author.ID,
		Text:   req.Text,
		Name:   author.Name,
		Avatar: author.Avatar,
	}
	p.Comments = append([]models.Comment{comment}, p.Comments...)
	return p, nil
}

func (s *fakePostService) RemoveComment(ctx context.Context, userID, postID, commentID string) (*models.Post, error) {
	p, ok := s.posts[postID]
	if !ok {
		return nil, services.ErrPostNotFound
	}
	for i, c := range p.Comments {
		if c.ID == commentID {
			if c.UserID != userID {
				return nil, services.ErrNotAuthorized
			}
			p.Comments = append(p.Comments[:i], p.Comments[i+1:]...)
			return p, nil
		}
	}
	return nil, services.ErrCommentNotFound
}

type fakeAccountService struct {
	deleted []string
	fail    error
}

func (s *fakeAccountService) DeleteAccount(ctx context.Context, userID string) error {
	if s.fail != nil {
		return s.fail
	}
	s.deleted = append(s.deleted, userID)
	return nil
}

// asUser simulates the auth middleware: it places the user id into the
// request context the same way JWTAuth does.
func asUser(userID string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), middleware.UserIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func doRequest(t *testing.T, router *chi.Mux, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func decodeResponse(t *testing.T, rr *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(rr.Body).Decode(out))
}
