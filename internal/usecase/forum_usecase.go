package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"trial-bridge/internal/converter"
	"trial-bridge/internal/delivery/dto"
	"trial-bridge/internal/delivery/http/middleware"
	"trial-bridge/internal/domain/entity"
	"trial-bridge/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrPostNotFound          = errors.New("forum post not found")
	ErrInvalidCategory       = errors.New("invalid forum category")
	ErrParentCommentNotFound = errors.New("parent comment not found on this post")
)

type ForumUsecase interface {
	GetForumPosts(ctx context.Context) (*dto.ForumPostListResponse, error)
	GetForumPostByID(ctx context.Context, id string) (*dto.ForumPostResponse, error)
	CreateForumPost(ctx context.Context, req *dto.CreateForumPostRequest) (*dto.ForumPostResponse, error)
	AddForumComment(ctx context.Context, postID string, req *dto.CreateForumCommentRequest) (*dto.ForumCommentResponse, error)
}

type forumUsecase struct {
	db        *gorm.DB
	log       *logrus.Logger
	forumRepo repository.ForumRepository
	userRepo  repository.UserRepository
}

func NewForumUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	forumRepo repository.ForumRepository,
	userRepo repository.UserRepository,
) ForumUsecase {
	return &forumUsecase{
		db:        db,
		log:       log,
		forumRepo: forumRepo,
		userRepo:  userRepo,
	}
}

func (u *forumUsecase) GetForumPosts(ctx context.Context) (*dto.ForumPostListResponse, error) {
	posts, err := u.forumRepo.FindAllPosts(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed to find forum posts: %+v", err)
		return nil, err
	}

	return &dto.ForumPostListResponse{
		Posts: converter.ForumPostsToResponses(posts),
		Total: len(posts),
	}, nil
}

func (u *forumUsecase) GetForumPostByID(ctx context.Context, id string) (*dto.ForumPostResponse, error) {
	post, err := u.forumRepo.FindPostByID(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find forum post %s: %+v", id, err)
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	return converter.ForumPostToResponse(post), nil
}

func (u *forumUsecase) CreateForumPost(ctx context.Context, req *dto.CreateForumPostRequest) (*dto.ForumPostResponse, error) {
	category := entity.ForumCategory(req.Category)
	if !category.IsValid() {
		return nil, ErrInvalidCategory
	}

	author, err := u.currentAuthor(ctx)
	if err != nil {
		return nil, err
	}

	tags := req.Tags
	if tags == nil {
		tags = []string{}
	}

	post := &entity.ForumPost{
		ID:         entity.NewID("post"),
		Title:      strings.TrimSpace(req.Title),
		Content:    req.Content,
		AuthorID:   author.ParticipantID(),
		AuthorType: entity.ParticipantTypeForRole(author.RoleID),
		AuthorName: author.DisplayName(),
		Timestamp:  time.Now().UTC(),
		Category:   category,
		Tags:       datatypes.JSONSlice[string](tags),
		Likes:      0,
		Comments:   []entity.ForumComment{},
	}

	if err := u.forumRepo.CreatePost(ctx, u.db, post); err != nil {
		u.log.Warnf("Failed to create forum post: %+v", err)
		return nil, err
	}

	return converter.ForumPostToResponse(post), nil
}

// AddForumComment checks the post and optional parent inside one
// transaction so a comment never lands on a missing post.
func (u *forumUsecase) AddForumComment(ctx context.Context, postID string, req *dto.CreateForumCommentRequest) (*dto.ForumCommentResponse, error) {
	author, err := u.currentAuthor(ctx)
	if err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	exists, err := u.forumRepo.PostExists(ctx, tx, postID)
	if err != nil {
		u.log.Warnf("Failed to check forum post %s: %+v", postID, err)
		return nil, err
	}
	if !exists {
		return nil, ErrPostNotFound
	}

	var parentID *string
	if req.ParentCommentID != nil && *req.ParentCommentID != "" {
		parent, err := u.forumRepo.FindCommentByID(ctx, tx, *req.ParentCommentID)
		if err != nil {
			u.log.Warnf("Failed to find parent comment %s: %+v", *req.ParentCommentID, err)
			return nil, err
		}
		if parent == nil || parent.PostID != postID {
			return nil, ErrParentCommentNotFound
		}
		parentID = &parent.ID
	}

	comment := &entity.ForumComment{
		ID:              entity.NewID("comment"),
		PostID:          postID,
		Content:         req.Content,
		AuthorID:        author.ParticipantID(),
		AuthorType:      entity.ParticipantTypeForRole(author.RoleID),
		AuthorName:      author.DisplayName(),
		Timestamp:       time.Now().UTC(),
		ParentCommentID: parentID,
	}

	if err := u.forumRepo.CreateComment(ctx, tx, comment); err != nil {
		u.log.Warnf("Failed to create forum comment: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.ForumCommentToResponse(comment), nil
}

func (u *forumUsecase) currentAuthor(ctx context.Context) (*entity.User, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}

	user, err := u.userRepo.FindByID(ctx, u.db, userID)
	if err != nil {
		u.log.Warnf("Failed to find user %s: %+v", userID, err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}
