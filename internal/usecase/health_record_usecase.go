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
	ErrInvalidRecordType = errors.New("invalid health record type")
	ErrInvalidRecordData = errors.New("health record data is missing or does not match its type")
	ErrInvalidDateFormat = errors.New("invalid date format, use YYYY-MM-DD")
)

type HealthRecordUsecase interface {
	GetPatientHealthRecords(ctx context.Context, email string) (*dto.HealthRecordListResponse, error)
	// AddHealthRecord appends a record; records are never edited.
	AddHealthRecord(ctx context.Context, email string, req *dto.CreateHealthRecordRequest) (*dto.HealthRecordResponse, error)
}

type healthRecordUsecase struct {
	db                 *gorm.DB
	log                *logrus.Logger
	healthRecordRepo   repository.HealthRecordRepository
	patientProfileRepo repository.PatientProfileRepository
	auditService       service.AuditService
}

func NewHealthRecordUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	healthRecordRepo repository.HealthRecordRepository,
	patientProfileRepo repository.PatientProfileRepository,
	auditService service.AuditService,
) HealthRecordUsecase {
	return &healthRecordUsecase{
		db:                 db,
		log:                log,
		healthRecordRepo:   healthRecordRepo,
		patientProfileRepo: patientProfileRepo,
		auditService:       auditService,
	}
}

func (u *healthRecordUsecase) GetPatientHealthRecords(ctx context.Context, email string) (*dto.HealthRecordListResponse, error) {
	if !validator.IsEmail(strings.TrimSpace(email)) {
		return nil, ErrInvalidEmail
	}

	records, err := u.healthRecordRepo.FindByPatient(ctx, u.db, email)
	if err != nil {
		u.log.Warnf("Failed to find health records for %s: %+v", email, err)
		return nil, err
	}

	return &dto.HealthRecordListResponse{
		Records: converter.HealthRecordsToResponses(records),
		Total:   len(records),
	}, nil
}

func (u *healthRecordUsecase) AddHealthRecord(ctx context.Context, email string, req *dto.CreateHealthRecordRequest) (*dto.HealthRecordResponse, error) {
	if !validator.IsEmail(strings.TrimSpace(email)) {
		return nil, ErrInvalidEmail
	}
	if !entity.IsValidDate(req.Date) {
		return nil, ErrInvalidDateFormat
	}

	recordType := entity.HealthRecordType(req.Type)
	if !recordType.IsValid() {
		return nil, ErrInvalidRecordType
	}
	if len(req.Data) == 0 || entity.ValidateHealthData(recordType, req.Data) != nil {
		return nil, ErrInvalidRecordData
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	exists, err := u.patientProfileRepo.Exists(ctx, tx, email)
	if err != nil {
		u.log.Warnf("Failed to check patient %s: %+v", email, err)
		return nil, err
	}
	if !exists {
		return nil, ErrPatientNotFound
	}

	record := &entity.HealthRecord{
		ID:           entity.NewID("record"),
		PatientEmail: email,
		Date:         req.Date,
		Type:         recordType,
		Data:         datatypes.JSON(req.Data),
		Provider:     req.Provider,
	}

	if err := u.healthRecordRepo.Create(ctx, tx, record); err != nil {
		u.log.Warnf("Failed to create health record: %+v", err)
		return nil, err
	}

	var actor *uuid.UUID
	if userID, ok := middleware.GetUserIDFromContext(ctx); ok {
		actor = &userID
	}
	response := converter.HealthRecordToResponse(record)
	if err := u.auditService.LogCreate(ctx, tx, actor, entity.AuditActionRecordCreate, "health_records", record.ID, response); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return response, nil
}
