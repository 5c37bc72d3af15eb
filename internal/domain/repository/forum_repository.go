package repository

import (
	"context"

	"trial-bridge/internal/domain/entity"

	"gorm.io/gorm"
)

type ForumRepository interface {
	CreatePost(ctx context.Context, db *gorm.DB, post *entity.ForumPost) error
	FindAllPosts(ctx context.Context, db *gorm.DB) ([]entity.ForumPost, error)
	FindPostByID(ctx context.Context, db *gorm.DB, id string) (*entity.ForumPost, error)
	PostExists(ctx context.Context, db *gorm.DB, id string) (bool, error)
	CreateComment(ctx context.Context, db *gorm.DB, comment *entity.ForumComment) error
	FindCommentByID(ctx context.Context, db *gorm.DB, id string) (*entity.ForumComment, error)
}
