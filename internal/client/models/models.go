// Package models defines the client-side view of users, posts and the
// locally persisted session.
package models

import "time"

const RoleAdmin = "admin"

type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type Author struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type Post struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Author    Author    `json:"author"`
	ImageKey  string    `json:"image_key,omitempty"`
	ImageURL  string    `json:"image_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Session is what the CLI keeps between runs. A zero Session means nobody
// is logged in.
type Session struct {
	Token        string
	RefreshToken string
	Role         string
	Email        string
}

func (s *Session) LoggedIn() bool {
	return s != nil && s.Token != ""
}

func (s *Session) IsAdmin() bool {
	return s.LoggedIn() && s.Role == RoleAdmin
}
