package repository

import (
	"context"
	"errors"

	"trial-bridge/internal/domain/entity"
	domainRepo "trial-bridge/internal/domain/repository"

	"gorm.io/gorm"
)

type forumRepository struct{}

func NewForumRepository() domainRepo.ForumRepository {
	return &forumRepository{}
}

func preloadComments(db *gorm.DB) *gorm.DB {
	return db.Preload("Comments", func(db *gorm.DB) *gorm.DB {
		return db.Order("timestamp ASC, id ASC")
	})
}

func (r *forumRepository) CreatePost(ctx context.Context, db *gorm.DB, post *entity.ForumPost) error {
	return db.WithContext(ctx).Omit("Comments").Create(post).Error
}

func (r *forumRepository) FindAllPosts(ctx context.Context, db *gorm.DB) ([]entity.ForumPost, error) {
	var posts []entity.ForumPost
	err := preloadComments(db.WithContext(ctx)).Order("timestamp DESC, id DESC").Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *forumRepository) FindPostByID(ctx context.Context, db *gorm.DB, id string) (*entity.ForumPost, error) {
	var post entity.ForumPost
	err := preloadComments(db.WithContext(ctx)).Where("id = ?", id).First(&post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

func (r *forumRepository) PostExists(ctx context.Context, db *gorm.DB, id string) (bool, error) {
	var count int64
	err := db.WithContext(ctx).Model(&entity.ForumPost{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *forumRepository) CreateComment(ctx context.Context, db *gorm.DB, comment *entity.ForumComment) error {
	return db.WithContext(ctx).Create(comment).Error
}

func (r *forumRepository) FindCommentByID(ctx context.Context, db *gorm.DB, id string) (*entity.ForumComment, error) {
	var comment entity.ForumComment
	err := db.WithContext(ctx).Where("id = ?", id).First(&comment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &comment, nil
}
