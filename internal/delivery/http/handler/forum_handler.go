package handler

import (
	"encoding/json"
	"net/http"

	"trial-bridge/internal/delivery/dto"
	"trial-bridge/internal/usecase"
	"trial-bridge/pkg/response"
	"trial-bridge/pkg/validator"

	"github.com/gorilla/mux"
)

type ForumHandler struct {
	forumUsecase usecase.ForumUsecase
	validator    *validator.CustomValidator
}

func NewForumHandler(forumUsecase usecase.ForumUsecase, validator *validator.CustomValidator) *ForumHandler {
	return &ForumHandler{
		forumUsecase: forumUsecase,
		validator:    validator,
	}
}

func (h *ForumHandler) GetPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.forumUsecase.GetForumPosts(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get forum posts")
		return
	}

	response.Success(w, http.StatusOK, "Forum posts retrieved successfully", posts)
}

func (h *ForumHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	post, err := h.forumUsecase.GetForumPostByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		if err == usecase.ErrPostNotFound {
			response.NotFound(w, "Forum post not found")
			return
		}
		response.InternalServerError(w, "Failed to get forum post")
		return
	}

	response.Success(w, http.StatusOK, "Forum post retrieved successfully", post)
}

func (h *ForumHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateForumPostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	post, err := h.forumUsecase.CreateForumPost(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrUnauthenticated, usecase.ErrUserNotFound:
			response.Unauthorized(w, "Invalid token")
		case usecase.ErrInvalidCategory:
			response.BadRequest(w, "Invalid forum category")
		default:
			response.InternalServerError(w, "Failed to create forum post")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Forum post created successfully", post)
}

func (h *ForumHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateForumCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	comment, err := h.forumUsecase.AddForumComment(r.Context(), mux.Vars(r)["id"], &req)
	if err != nil {
		switch err {
		case usecase.ErrUnauthenticated, usecase.ErrUserNotFound:
			response.Unauthorized(w, "Invalid token")
		case usecase.ErrPostNotFound:
			response.NotFound(w, "Forum post not found")
		case usecase.ErrParentCommentNotFound:
			response.BadRequest(w, "Parent comment not found on this post")
		default:
			response.InternalServerError(w, "Failed to add comment")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Comment added successfully", comment)
}
