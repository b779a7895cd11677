package models

import (
	"strings"
	"time"
	"unicode/utf8"
)

// Profile is the per-user extended record. Experience and education live
// inline as embedded arrays, newest entry first.
type Profile struct {
	ID             string       `json:"id" bson:"_id"`
	UserID         string       `json:"user_id" bson:"user_id"`
	Handle         string       `json:"handle" bson:"handle"`
	Status         string       `json:"status" bson:"status"`
	Company        string       `json:"company,omitempty" bson:"company,omitempty"`
	Website        string       `json:"website,omitempty" bson:"website,omitempty"`
	Location       string       `json:"location,omitempty" bson:"location,omitempty"`
	Bio            string       `json:"bio,omitempty" bson:"bio,omitempty"`
	GithubUsername string       `json:"github_username,omitempty" bson:"github_username,omitempty"`
	Skills         []string     `json:"skills" bson:"skills"`
	Social         SocialLinks  `json:"social" bson:"social,omitempty"`
	Experience     []Experience `json:"experience" bson:"experience"`
	Education      []Education  `json:"education" bson:"education"`
	CreatedAt      time.Time    `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at" bson:"updated_at"`
}

// SocialLinks are independently optional; absent ones are omitted, not nulled.
type SocialLinks struct {
	Youtube   string `json:"youtube,omitempty" bson:"youtube,omitempty"`
	Twitter   string `json:"twitter,omitempty" bson:"twitter,omitempty"`
	Facebook  string `json:"facebook,omitempty" bson:"facebook,omitempty"`
	Linkedin  string `json:"linkedin,omitempty" bson:"linkedin,omitempty"`
	Instagram string `json:"instagram,omitempty" bson:"instagram,omitempty"`
}

type Experience struct {
	ID          string `json:"id" bson:"_id"`
	Title       string `json:"title" bson:"title"`
	Company     string `json:"company" bson:"company"`
	Location    string `json:"location,omitempty" bson:"location,omitempty"`
	From        string `json:"from" bson:"from"`
	To          string `json:"to,omitempty" bson:"to,omitempty"`
	Current     bool   `json:"current" bson:"current"`
	Description string `json:"description,omitempty" bson:"description,omitempty"`
}

type Education struct {
	ID           string `json:"id" bson:"_id"`
	School       string `json:"school" bson:"school"`
	Degree       string `json:"degree" bson:"degree"`
	FieldOfStudy string `json:"fieldofstudy" bson:"fieldofstudy"`
	From         string `json:"from" bson:"from"`
	To           string `json:"to,omitempty" bson:"to,omitempty"`
	Current      bool   `json:"current" bson:"current"`
	Description  string `json:"description,omitempty" bson:"description,omitempty"`
}

// UpsertProfileRequest carries the editable profile fields. Optional fields
// are pointers so an update can tell "absent" from "set to empty"; absent
// fields never overwrite existing values.
type UpsertProfileRequest struct {
	Handle         string  `json:"handle"`
	Status         string  `json:"status"`
	Skills         string  `json:"skills"`
	Company        *string `json:"company"`
	Website        *string `json:"website"`
	Location       *string `json:"location"`
	Bio            *string `json:"bio"`
	GithubUsername *string `json:"github_username"`
	Youtube        *string `json:"youtube"`
	Twitter        *string `json:"twitter"`
	Facebook       *string `json:"facebook"`
	Linkedin       *string `json:"linkedin"`
	Instagram      *string `json:"instagram"`
}

func (r *UpsertProfileRequest) Validate() map[string]string {
	errors := make(map[string]string)

	handle := strings.TrimSpace(r.Handle)
	if handle == "" {
		errors["handle"] = "Profile handle is required"
	} else if n := utf8.RuneCountInString(handle); n < 2 || n > 40 {
		errors["handle"] = "Handle must be between 2 and 40 characters"
	}

	if strings.TrimSpace(r.Status) == "" {
		errors["status"] = "Status field is required"
	}
	if strings.TrimSpace(r.Skills) == "" {
		errors["skills"] = "Skills field is required"
	}

	return errors
}

// SplitSkills turns the comma-delimited skills input into an ordered list,
// trimming each entry and dropping empties.
func (r *UpsertProfileRequest) SplitSkills() []string {
	parts := strings.Split(r.Skills, ",")
	skills := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			skills = append(skills, s)
		}
	}
	return skills
}

type ExperienceRequest struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	From        string `json:"from"`
	To          string `json:"to"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

func (r *ExperienceRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if strings.TrimSpace(r.Title) == "" {
		errors["title"] = "Job title is required"
	}
	if strings.TrimSpace(r.Company) == "" {
		errors["company"] = "Company name is required"
	}
	if strings.TrimSpace(r.From) == "" {
		errors["from"] = "From date is required"
	}

	return errors
}

type EducationRequest struct {
	School       string `json:"school"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"fieldofstudy"`
	From         string `json:"from"`
	To           string `json:"to"`
	Current      bool   `json:"current"`
	Description  string `json:"description"`
}

func (r *EducationRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if strings.TrimSpace(r.School) == "" {
		errors["school"] = "School name is required"
	}
	if strings.TrimSpace(r.Degree) == "" {
		errors["degree"] = "Degree is required"
	}
	if strings.TrimSpace(r.FieldOfStudy) == "" {
		errors["fieldofstudy"] = "Field of study is required"
	}
	if strings.TrimSpace(r.From) == "" {
		errors["from"] = "From date is required"
	}

	return errors
}

// GithubRepo is the subset of the GitHub repository payload the profile
// page renders.
type GithubRepo struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	HTMLURL     string `json:"html_url"`
	Stars       int    `json:"stargazers_count"`
	Watchers    int    `json:"watchers_count"`
	Forks       int    `json:"forks_count"`
}
