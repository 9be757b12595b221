package rest

import (
	"time"

	"github.com/dmitrijs2005/gophblog/internal/server/models"
	"github.com/dmitrijs2005/gophblog/internal/server/services"
)

type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type userResponse struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Role      models.Role `json:"role"`
	CreatedAt time.Time   `json:"created_at"`
}

type authResponse struct {
	Token        string        `json:"token"`
	RefreshToken string        `json:"refresh_token"`
	Role         models.Role   `json:"role"`
	User         *userResponse `json:"user,omitempty"`
}

type postRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type postResponse struct {
	ID        string        `json:"id"`
	Title     string        `json:"title"`
	Content   string        `json:"content"`
	Author    models.Author `json:"author"`
	ImageKey  string        `json:"image_key,omitempty"`
	ImageURL  string        `json:"image_url,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

type postMessageResponse struct {
	Message string        `json:"message"`
	Post    *postResponse `json:"post"`
}

type imageResponse struct {
	Key       string `json:"key"`
	UploadURL string `json:"upload_url"`
}

func newUserResponse(u *models.User) *userResponse {
	return &userResponse{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role, CreatedAt: u.CreatedAt}
}

func newAuthResponse(u *models.User, pair *services.TokenPair) authResponse {
	return authResponse{
		Token:        pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		Role:         u.Role,
		User:         newUserResponse(u),
	}
}

func newPostResponse(p *models.Post) *postResponse {
	return &postResponse{
		ID:        p.ID,
		Title:     p.Title,
		Content:   p.Content,
		Author:    p.Author,
		ImageKey:  p.ImageKey,
		ImageURL:  p.ImageURL,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
