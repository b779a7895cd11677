package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGithubServiceListRepos(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/octocat/repos", r.URL.Path)
		assert.Equal(t, "5", r.URL.Query().Get("per_page"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"id": 1, "name": "hello-world", "description": "My first repo",
			 "html_url": "https://github.com/octocat/hello-world",
			 "stargazers_count": 80, "watchers_count": 9, "forks_count": 4}
		]`))
	}))
	defer srv.Close()

	svc := NewGithubService()
	svc.BaseURL = srv.URL

	repos, err := svc.ListRepos(context.Background(), "octocat")
	require.NoError(t, err)
	require.Len(t, repos, 1)
	assert.Equal(t, "hello-world", repos[0].Name)
	assert.Equal(t, "https://github.com/octocat/hello-world", repos[0].HTMLURL)
	assert.Equal(t, 80, repos[0].Stars)
	assert.Equal(t, 4, repos[0].Forks)
}

func TestGithubServiceListRepos_UnknownUser(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	svc := NewGithubService()
	svc.BaseURL = srv.URL

	_, err := svc.ListRepos(context.Background(), "nobody-here")
	assert.ErrorIs(t, err, ErrGithubUserNotFound)
}

func TestGithubServiceListRepos_EmptyUsername(t *testing.T) {
	svc := NewGithubService()
	_, err := svc.ListRepos(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrGithubUserNotFound)
}

func TestGithubServiceListRepos_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	svc := NewGithubService()
	svc.BaseURL = srv.URL

	_, err := svc.ListRepos(context.Background(), "octocat")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrGithubUserNotFound)
}
