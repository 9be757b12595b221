package rest

import (
	"net/http"

	"github.com/dmitrijs2005/gophblog/internal/common"
	"github.com/dmitrijs2005/gophblog/internal/server/auth"
	"github.com/go-chi/chi/v5"
)

func (s *Server) listPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := s.posts.List(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	result := make([]*postResponse, 0, len(posts))
	for _, p := range posts {
		result = append(result, newPostResponse(p))
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) getPost(w http.ResponseWriter, r *http.Request) {
	post, err := s.posts.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newPostResponse(post))
}

func (s *Server) createPost(w http.ResponseWriter, r *http.Request) {
	id, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		s.writeServiceError(w, r, common.ErrMissingToken)
		return
	}

	var req postRequest
	if !decodeBody(w, r, &req) {
		return
	}

	post, err := s.posts.Create(r.Context(), id.UserID, req.Title, req.Content)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.logger.Info(r.Context(), "post created", "post_id", post.ID, "author_id", id.UserID)
	writeJSON(w, http.StatusCreated, postMessageResponse{Message: "Post created", Post: newPostResponse(post)})
}

func (s *Server) updatePost(w http.ResponseWriter, r *http.Request) {
	var req postRequest
	if !decodeBody(w, r, &req) {
		return
	}

	post, err := s.posts.Update(r.Context(), chi.URLParam(r, "id"), req.Title, req.Content)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, postMessageResponse{Message: "Post updated", Post: newPostResponse(post)})
}

func (s *Server) deletePost(w http.ResponseWriter, r *http.Request) {
	postID := chi.URLParam(r, "id")
	if err := s.posts.Delete(r.Context(), postID); err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.logger.Info(r.Context(), "post deleted", "post_id", postID)
	writeJSON(w, http.StatusOK, messageResponse{Message: "Post deleted"})
}

func (s *Server) attachImage(w http.ResponseWriter, r *http.Request) {
	key, url, err := s.posts.AttachImage(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, imageResponse{Key: key, UploadURL: url})
}
