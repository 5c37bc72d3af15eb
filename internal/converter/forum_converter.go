package converter

import (
	"trial-bridge/internal/delivery/dto"
	"trial-bridge/internal/domain/entity"
)

// ForumPostToResponse converts a ForumPost entity to ForumPostResponse DTO.
// Comments are always a list, empty when none are loaded.
func ForumPostToResponse(post *entity.ForumPost) *dto.ForumPostResponse {
	if post == nil {
		return nil
	}

	return &dto.ForumPostResponse{
		ID:         post.ID,
		Title:      post.Title,
		Content:    post.Content,
		AuthorID:   post.AuthorID,
		AuthorType: string(post.AuthorType),
		AuthorName: post.AuthorName,
		Timestamp:  post.Timestamp,
		Category:   string(post.Category),
		Tags:       nonNil([]string(post.Tags)),
		Likes:      post.Likes,
		Comments:   ForumCommentsToResponses(post.Comments),
	}
}

func ForumPostsToResponses(posts []entity.ForumPost) []dto.ForumPostResponse {
	responses := make([]dto.ForumPostResponse, len(posts))
	for i := range posts {
		responses[i] = *ForumPostToResponse(&posts[i])
	}
	return responses
}

func ForumCommentToResponse(comment *entity.ForumComment) *dto.ForumCommentResponse {
	if comment == nil {
		return nil
	}

	return &dto.ForumCommentResponse{
		ID:              comment.ID,
		PostID:          comment.PostID,
		Content:         comment.Content,
		AuthorID:        comment.AuthorID,
		AuthorType:      string(comment.AuthorType),
		AuthorName:      comment.AuthorName,
		Timestamp:       comment.Timestamp,
		Likes:           comment.Likes,
		ParentCommentID: comment.ParentCommentID,
	}
}

func ForumCommentsToResponses(comments []entity.ForumComment) []dto.ForumCommentResponse {
	responses := make([]dto.ForumCommentResponse, len(comments))
	for i := range comments {
		responses[i] = *ForumCommentToResponse(&comments[i])
	}
	return responses
}
