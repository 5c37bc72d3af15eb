package usecase

import (
	"context"
	"errors"
	"strings"

	"trial-bridge/internal/converter"
	"trial-bridge/internal/delivery/dto"
	"trial-bridge/internal/domain/entity"
	"trial-bridge/internal/domain/repository"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrResourceNotFound    = errors.New("educational resource not found")
	ErrInvalidResourceType = errors.New("invalid resource type")
	ErrInvalidRating       = errors.New("rating must be between 1 and 5")
)

type EducationUsecase interface {
	GetAllResources(ctx context.Context) (*dto.ResourceListResponse, error)
	// GetResourceByID counts a view before returning the resource.
	GetResourceByID(ctx context.Context, id string) (*dto.ResourceResponse, error)
	GetResourcesByType(ctx context.Context, resourceType string) (*dto.ResourceListResponse, error)
	GetResourcesByTag(ctx context.Context, tag string) (*dto.ResourceListResponse, error)
	GetResourcesByTrialID(ctx context.Context, trialID string) (*dto.ResourceListResponse, error)
	SubmitFeedback(ctx context.Context, patientEmail, resourceID string, req *dto.SubmitFeedbackRequest) (*dto.FeedbackResponse, error)
	GetResourceFeedback(ctx context.Context, resourceID string) (*dto.FeedbackListResponse, error)
	GetResourceRating(ctx context.Context, resourceID string) (*dto.RatingResponse, error)
}

type educationUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	resourceRepo repository.EducationalResourceRepository
	feedbackRepo repository.FeedbackRepository
}

func NewEducationUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	resourceRepo repository.EducationalResourceRepository,
	feedbackRepo repository.FeedbackRepository,
) EducationUsecase {
	return &educationUsecase{
		db:           db,
		log:          log,
		resourceRepo: resourceRepo,
		feedbackRepo: feedbackRepo,
	}
}

func (u *educationUsecase) GetAllResources(ctx context.Context) (*dto.ResourceListResponse, error) {
	resources, err := u.resourceRepo.FindAll(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed to find resources: %+v", err)
		return nil, err
	}
	return resourceList(resources), nil
}

func (u *educationUsecase) GetResourceByID(ctx context.Context, id string) (*dto.ResourceResponse, error) {
	found, err := u.resourceRepo.IncrementViewCount(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to count view for resource %s: %+v", id, err)
		return nil, err
	}
	if !found {
		return nil, ErrResourceNotFound
	}

	resource, err := u.resourceRepo.FindByID(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find resource %s: %+v", id, err)
		return nil, err
	}
	if resource == nil {
		return nil, ErrResourceNotFound
	}

	return converter.ResourceToResponse(resource), nil
}

func (u *educationUsecase) GetResourcesByType(ctx context.Context, resourceType string) (*dto.ResourceListResponse, error) {
	t := entity.ResourceType(resourceType)
	if !t.IsValid() {
		return nil, ErrInvalidResourceType
	}

	resources, err := u.resourceRepo.FindByType(ctx, u.db, t)
	if err != nil {
		u.log.Warnf("Failed to find resources of type %s: %+v", resourceType, err)
		return nil, err
	}
	return resourceList(resources), nil
}

// GetResourcesByTag matches tags exactly.
func (u *educationUsecase) GetResourcesByTag(ctx context.Context, tag string) (*dto.ResourceListResponse, error) {
	return u.filterResources(ctx, func(r *entity.EducationalResource) bool {
		return r.HasTag(tag)
	})
}

func (u *educationUsecase) GetResourcesByTrialID(ctx context.Context, trialID string) (*dto.ResourceListResponse, error) {
	return u.filterResources(ctx, func(r *entity.EducationalResource) bool {
		return r.RelatesToTrial(trialID)
	})
}

func (u *educationUsecase) filterResources(ctx context.Context, keep func(*entity.EducationalResource) bool) (*dto.ResourceListResponse, error) {
	resources, err := u.resourceRepo.FindAll(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed to find resources: %+v", err)
		return nil, err
	}

	filtered := make([]entity.EducationalResource, 0, len(resources))
	for i := range resources {
		if keep(&resources[i]) {
			filtered = append(filtered, resources[i])
		}
	}
	return resourceList(filtered), nil
}

// SubmitFeedback stores one rating per patient and resource; a second
// submission replaces the rating and comment.
func (u *educationUsecase) SubmitFeedback(ctx context.Context, patientEmail, resourceID string, req *dto.SubmitFeedbackRequest) (*dto.FeedbackResponse, error) {
	if req.Rating < entity.MinRating || req.Rating > entity.MaxRating {
		return nil, ErrInvalidRating
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	exists, err := u.resourceRepo.Exists(ctx, tx, resourceID)
	if err != nil {
		u.log.Warnf("Failed to check resource %s: %+v", resourceID, err)
		return nil, err
	}
	if !exists {
		return nil, ErrResourceNotFound
	}

	feedback := &entity.PatientFeedback{
		ID:            entity.NewID("feedback"),
		ResourceID:    resourceID,
		PatientEmail:  patientEmail,
		Rating:        req.Rating,
		Comment:       strings.TrimSpace(req.Comment),
		DateSubmitted: entity.Today(),
	}
	if err := u.feedbackRepo.Upsert(ctx, tx, feedback); err != nil {
		u.log.Warnf("Failed to save feedback: %+v", err)
		return nil, err
	}

	// re-read so a replaced row reports its original id
	stored, err := u.feedbackRepo.FindByResourceAndPatient(ctx, tx, resourceID, patientEmail)
	if err != nil {
		u.log.Warnf("Failed to reload feedback: %+v", err)
		return nil, err
	}
	if stored == nil {
		stored = feedback
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.FeedbackToResponse(stored), nil
}

func (u *educationUsecase) GetResourceFeedback(ctx context.Context, resourceID string) (*dto.FeedbackListResponse, error) {
	feedback, err := u.feedbackRepo.FindByResource(ctx, u.db, resourceID)
	if err != nil {
		u.log.Warnf("Failed to find feedback for %s: %+v", resourceID, err)
		return nil, err
	}

	return &dto.FeedbackListResponse{
		Feedback: converter.FeedbackListToResponses(feedback),
		Total:    len(feedback),
	}, nil
}

// GetResourceRating returns {0, 0} when nobody has rated the resource.
func (u *educationUsecase) GetResourceRating(ctx context.Context, resourceID string) (*dto.RatingResponse, error) {
	feedback, err := u.feedbackRepo.FindByResource(ctx, u.db, resourceID)
	if err != nil {
		u.log.Warnf("Failed to find feedback for %s: %+v", resourceID, err)
		return nil, err
	}

	ratings := make([]int, len(feedback))
	for i, f := range feedback {
		ratings[i] = f.Rating
	}

	return &dto.RatingResponse{
		AverageRating: AverageRating(ratings),
		TotalRatings:  len(ratings),
	}, nil
}

// AverageRating is the mean rounded half away from zero to one decimal.
func AverageRating(ratings []int) float64 {
	if len(ratings) == 0 {
		return 0
	}

	sum := decimal.Zero
	for _, r := range ratings {
		sum = sum.Add(decimal.NewFromInt(int64(r)))
	}
	mean := sum.Div(decimal.NewFromInt(int64(len(ratings)))).Round(1)
	return mean.InexactFloat64()
}

func resourceList(resources []entity.EducationalResource) *dto.ResourceListResponse {
	return &dto.ResourceListResponse{
		Resources: converter.ResourcesToResponses(resources),
		Total:     len(resources),
	}
}
