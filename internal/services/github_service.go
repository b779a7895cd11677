package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/devconnector/backend/internal/models"
)

var ErrGithubUserNotFound = errors.New("github user not found")

// GithubService fetches a user's public repositories for the profile page.
type GithubService struct {
	HTTPClient *http.Client
	BaseURL    string
	RepoCount  int
}

func NewGithubService() *GithubService {
	return &GithubService{
		BaseURL:   "https://api.github.com",
		RepoCount: 5,
		HTTPClient: &http.Client{
			Timeout: 8 * time.Second,
		},
	}
}

func (g *GithubService) ListRepos(ctx context.Context, username string) ([]models.GithubRepo, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, ErrGithubUserNotFound
	}

	count := g.RepoCount
	if count <= 0 {
		count = 5
	}

	endpoint := fmt.Sprintf("%s/users/%s/repos?per_page=%d&sort=created:asc",
		g.BaseURL, url.PathEscape(username), count)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	client := g.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 8 * time.Second}
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrGithubUserNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("github repos http %d", resp.StatusCode)
	}

	var repos []models.GithubRepo
	if err := json.NewDecoder(resp.Body).Decode(&repos); err != nil {
		return nil, err
	}
	return repos, nil
}
