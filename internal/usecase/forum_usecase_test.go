package usecase_test

import (
	"context"
	"testing"

	"trial-bridge/internal/delivery/dto"
	"trial-bridge/internal/domain/entity"
	"trial-bridge/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetForumPosts(t *testing.T) {
	e := newEnv(t)

	list, err := e.forum.GetForumPosts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, list.Total)

	post, err := e.forum.GetForumPostByID(context.Background(), "post-001")
	require.NoError(t, err)
	assert.Len(t, post.Comments, 4)

	_, err = e.forum.GetForumPostByID(context.Background(), "post-999")
	assert.ErrorIs(t, err, usecase.ErrPostNotFound)
}

func TestCreateForumPost(t *testing.T) {
	e := newEnv(t)
	ctx := e.sessionFor(t, "jane.smith@example.com")

	post, err := e.forum.CreateForumPost(ctx, &dto.CreateForumPostRequest{
		Title:    "Travel costs",
		Content:  "Does anyone get reimbursed for parking?",
		Category: "questions",
	})
	require.NoError(t, err)
	assert.Equal(t, "jane.smith@example.com", post.AuthorID)
	assert.Equal(t, "Jane Smith", post.AuthorName)
	assert.Equal(t, "patient", post.AuthorType)
	assert.Zero(t, post.Likes)
	assert.Empty(t, post.Comments)
	assert.NotNil(t, post.Tags)

	list, err := e.forum.GetForumPosts(ctx)
	require.NoError(t, err)
	assert.Equal(t, post.ID, list.Posts[0].ID, "newest first")

	_, err = e.forum.CreateForumPost(ctx, &dto.CreateForumPostRequest{Title: "Off topic", Content: "x", Category: "random"})
	assert.ErrorIs(t, err, usecase.ErrInvalidCategory)
}

func TestAddForumComment(t *testing.T) {
	e := newEnv(t)
	ctx := e.sessionFor(t, "sarah.johnson@example.com")

	comment, err := e.forum.AddForumComment(ctx, "post-002", &dto.CreateForumCommentRequest{Content: "You can keep taking it."})
	require.NoError(t, err)
	assert.Equal(t, "dr.johnson", comment.AuthorID)
	assert.Equal(t, "trialTeam", comment.AuthorType)

	reply, err := e.forum.AddForumComment(ctx, "post-002", &dto.CreateForumCommentRequest{
		Content:         "Following up.",
		ParentCommentID: &comment.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, reply.ParentCommentID)
	assert.Equal(t, comment.ID, *reply.ParentCommentID)

	post, err := e.forum.GetForumPostByID(ctx, "post-002")
	require.NoError(t, err)
	assert.Len(t, post.Comments, 4)
}

func TestAddForumComment_UnknownTargets(t *testing.T) {
	e := newEnv(t)
	ctx := e.sessionFor(t, "patient@example.com")

	comment, err := e.forum.AddForumComment(ctx, "post-999", &dto.CreateForumCommentRequest{Content: "Hello"})
	assert.ErrorIs(t, err, usecase.ErrPostNotFound)
	assert.Nil(t, comment)

	// comment-001 belongs to post-001
	parent := "comment-001"
	_, err = e.forum.AddForumComment(ctx, "post-002", &dto.CreateForumCommentRequest{Content: "Hello", ParentCommentID: &parent})
	assert.ErrorIs(t, err, usecase.ErrParentCommentNotFound)

	assert.EqualValues(t, 11, countRows(t, e.db, &entity.ForumComment{}, "1 = 1"))
}
