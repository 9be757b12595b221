package models

import "time"

// Author is the public projection of a User embedded in post reads.
type Author struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Post is a blog article. ImageURL is not stored; it is a presigned download
// link filled in on reads when ImageKey is set and object storage is available.
type Post struct {
	ID        string
	Title     string
	Content   string
	AuthorID  string
	Author    Author
	ImageKey  string
	ImageURL  string
	CreatedAt time.Time
	UpdatedAt time.Time
}
