package usecase

import (
	"context"
	"errors"
	"strings"

	"trial-bridge/internal/converter"
	"trial-bridge/internal/delivery/dto"
	"trial-bridge/internal/delivery/http/middleware"
	"trial-bridge/internal/domain/entity"
	"trial-bridge/internal/domain/repository"
	"trial-bridge/internal/service"
	"trial-bridge/pkg/validator"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrPatientNotFound = errors.New("patient profile not found")
	ErrInvalidEmail    = errors.New("invalid email address")
	ErrInvalidGender   = errors.New("gender must be male, female or other")
	ErrInvalidAge      = errors.New("age must be between 0 and 120")
)

type PatientProfileUsecase interface {
	GetPatientProfile(ctx context.Context, email string) (*dto.PatientProfileResponse, error)
	UpdatePatientProfile(ctx context.Context, email string, req *dto.UpdatePatientProfileRequest) (*dto.PatientProfileResponse, error)
	GetAllPatients(ctx context.Context) (*dto.PatientListResponse, error)
}

type patientProfileUsecase struct {
	db                 *gorm.DB
	log                *logrus.Logger
	patientProfileRepo repository.PatientProfileRepository
	auditService       service.AuditService
}

func NewPatientProfileUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	patientProfileRepo repository.PatientProfileRepository,
	auditService service.AuditService,
) PatientProfileUsecase {
	return &patientProfileUsecase{
		db:                 db,
		log:                log,
		patientProfileRepo: patientProfileRepo,
		auditService:       auditService,
	}
}

func (u *patientProfileUsecase) GetPatientProfile(ctx context.Context, email string) (*dto.PatientProfileResponse, error) {
	if !validator.IsEmail(strings.TrimSpace(email)) {
		return nil, ErrInvalidEmail
	}

	profile, err := u.patientProfileRepo.FindByEmail(ctx, u.db, email)
	if err != nil {
		u.log.Warnf("Failed to find patient profile %s: %+v", email, err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrPatientNotFound
	}

	return converter.PatientProfileToResponse(profile), nil
}

// UpdatePatientProfile validates the whole patch before touching the profile.
//
// Merge rules: scalars overwrite when present, medical history lists are
// replaced one by one when present, insurance and emergency contact merge
// field by field.
func (u *patientProfileUsecase) UpdatePatientProfile(ctx context.Context, email string, req *dto.UpdatePatientProfileRequest) (*dto.PatientProfileResponse, error) {
	if !validator.IsEmail(strings.TrimSpace(email)) {
		return nil, ErrInvalidEmail
	}
	if req.Gender != nil && !entity.IsValidGender(*req.Gender) {
		return nil, ErrInvalidGender
	}
	if req.Age != nil && (*req.Age < 0 || *req.Age > 120) {
		return nil, ErrInvalidAge
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	profile, err := u.patientProfileRepo.FindByEmail(ctx, tx, email)
	if err != nil {
		u.log.Warnf("Failed to find patient profile: %+v", err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrPatientNotFound
	}

	// Capture old value for audit
	oldValue := converter.PatientProfileToResponse(profile)

	ApplyProfilePatch(profile, req)

	if err := u.patientProfileRepo.Update(ctx, tx, profile); err != nil {
		u.log.Warnf("Failed to update patient profile: %+v", err)
		return nil, err
	}

	newValue := converter.PatientProfileToResponse(profile)

	var actor *uuid.UUID
	if userID, ok := middleware.GetUserIDFromContext(ctx); ok {
		actor = &userID
	}
	if err := u.auditService.LogUpdate(ctx, tx, actor, entity.AuditActionProfileUpdate, "patient_profiles", email, oldValue, newValue); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return newValue, nil
}

func (u *patientProfileUsecase) GetAllPatients(ctx context.Context) (*dto.PatientListResponse, error) {
	profiles, err := u.patientProfileRepo.FindAll(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed to find all patients: %+v", err)
		return nil, err
	}

	return &dto.PatientListResponse{
		Patients: converter.PatientProfilesToResponses(profiles),
		Total:    len(profiles),
	}, nil
}

// ApplyProfilePatch merges req into profile. It does not validate.
func ApplyProfilePatch(profile *entity.PatientProfile, req *dto.UpdatePatientProfileRequest) {
	if req.Name != nil {
		profile.Name = *req.Name
	}
	if req.Age != nil {
		profile.Age = *req.Age
	}
	if req.Gender != nil {
		profile.Gender = *req.Gender
	}
	if req.Phone != nil {
		profile.Phone = *req.Phone
	}
	if req.Address != nil {
		profile.Address = *req.Address
	}

	if patch := req.MedicalHistory; patch != nil {
		history := profile.MedicalHistory.Data()
		replaceList(&history.Conditions, patch.Conditions)
		replaceList(&history.Medications, patch.Medications)
		replaceList(&history.Allergies, patch.Allergies)
		replaceList(&history.Surgeries, patch.Surgeries)
		replaceList(&history.FamilyHistory, patch.FamilyHistory)
		profile.MedicalHistory = datatypes.NewJSONType(history)
	}

	if patch := req.InsuranceInfo; patch != nil {
		var insurance entity.InsuranceInfo
		if current := profile.InsuranceInfo.Data(); current != nil {
			insurance = *current
		}
		setIfPresent(&insurance.Provider, patch.Provider)
		setIfPresent(&insurance.PolicyNumber, patch.PolicyNumber)
		setIfPresent(&insurance.GroupNumber, patch.GroupNumber)
		setIfPresent(&insurance.ExpirationDate, patch.ExpirationDate)
		profile.InsuranceInfo = datatypes.NewJSONType(&insurance)
	}

	if patch := req.EmergencyContact; patch != nil {
		var contact entity.EmergencyContact
		if current := profile.EmergencyContact.Data(); current != nil {
			contact = *current
		}
		setIfPresent(&contact.Name, patch.Name)
		setIfPresent(&contact.Relationship, patch.Relationship)
		setIfPresent(&contact.Phone, patch.Phone)
		profile.EmergencyContact = datatypes.NewJSONType(&contact)
	}
}

func replaceList(dst *[]string, src *[]string) {
	if src == nil {
		return
	}
	if *src == nil {
		*dst = []string{}
		return
	}
	*dst = append([]string{}, (*src)...)
}

func setIfPresent(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
