package models

import (
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"
)

type User struct {
	ID           string    `json:"id" bson:"_id"`
	Name         string    `json:"name" bson:"name"`
	Email        string    `json:"email" bson:"email"`
	PasswordHash string    `json:"-" bson:"password_hash"`
	Avatar       string    `json:"avatar" bson:"avatar,omitempty"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
}

type RegisterRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Password2 string `json:"password2"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

func (r *RegisterRequest) Validate() map[string]string {
	errors := make(map[string]string)

	name := strings.TrimSpace(r.Name)
	if name == "" {
		errors["name"] = "Name is required"
	} else if n := utf8.RuneCountInString(name); n < 2 || n > 30 {
		errors["name"] = "Name must be between 2 and 30 characters"
	}

	email := strings.TrimSpace(r.Email)
	if email == "" {
		errors["email"] = "Email is required"
	} else if _, err := mail.ParseAddress(email); err != nil {
		errors["email"] = "Email is invalid"
	}

	if r.Password == "" {
		errors["password"] = "Password is required"
	} else if n := utf8.RuneCountInString(r.Password); n < 6 || n > 30 {
		errors["password"] = "Password must be between 6 and 30 characters"
	}

	if r.Password2 == "" {
		errors["password2"] = "Must confirm password"
	} else if r.Password != r.Password2 {
		errors["password2"] = "Passwords must match"
	}

	return errors
}

func (r *LoginRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if strings.TrimSpace(r.Email) == "" {
		errors["email"] = "Email is required"
	}
	if r.Password == "" {
		errors["password"] = "Password is required"
	}

	return errors
}
