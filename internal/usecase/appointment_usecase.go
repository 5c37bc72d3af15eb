package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"trial-bridge/internal/converter"
	"trial-bridge/internal/delivery/dto"
	"trial-bridge/internal/domain/entity"
	"trial-bridge/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrAppointmentNotFound         = errors.New("appointment not found")
	ErrAppointmentAlreadyCancelled = errors.New("appointment is already cancelled")
	ErrAppointmentNotOwned         = errors.New("appointment does not belong to you")
	ErrAppointmentPast             = errors.New("cannot schedule an appointment in the past")
	ErrInvalidTimeFormat           = errors.New("time must be HH:MM")
	ErrInvalidAppointmentType      = errors.New("invalid appointment type")
)

const appointmentTimeLayout = "15:04"

type AppointmentUsecase interface {
	GetMyAppointments(ctx context.Context, patientEmail string) (*dto.AppointmentListResponse, error)
	ScheduleAppointment(ctx context.Context, patientEmail string, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	CancelAppointment(ctx context.Context, patientEmail string, appointmentID uuid.UUID) error
}

type appointmentUsecase struct {
	db                 *gorm.DB
	log                *logrus.Logger
	appointmentRepo    repository.AppointmentRepository
	trialRepo          repository.TrialRepository
	patientProfileRepo repository.PatientProfileRepository
}

func NewAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	trialRepo repository.TrialRepository,
	patientProfileRepo repository.PatientProfileRepository,
) AppointmentUsecase {
	return &appointmentUsecase{
		db:                 db,
		log:                log,
		appointmentRepo:    appointmentRepo,
		trialRepo:          trialRepo,
		patientProfileRepo: patientProfileRepo,
	}
}

// GetMyAppointments returns the patient's appointments, earliest first
func (u *appointmentUsecase) GetMyAppointments(ctx context.Context, patientEmail string) (*dto.AppointmentListResponse, error) {
	appointments, err := u.appointmentRepo.FindByPatient(ctx, u.db, patientEmail)
	if err != nil {
		u.log.Warnf("Failed to find appointments for patient %s: %+v", patientEmail, err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

func (u *appointmentUsecase) ScheduleAppointment(ctx context.Context, patientEmail string, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	if !entity.IsValidDate(req.Date) {
		return nil, ErrInvalidDateFormat
	}
	// both sides are YYYY-MM-DD so string order is date order
	if req.Date < entity.Today() {
		return nil, ErrAppointmentPast
	}
	if _, err := time.Parse(appointmentTimeLayout, req.Time); err != nil || len(req.Time) != len(appointmentTimeLayout) {
		return nil, ErrInvalidTimeFormat
	}

	apptType := entity.AppointmentType(req.Type)
	switch apptType {
	case entity.AppointmentTypeScreening, entity.AppointmentTypeFollowUp, entity.AppointmentTypeConsultation:
	default:
		return nil, ErrInvalidAppointmentType
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	exists, err := u.patientProfileRepo.Exists(ctx, tx, patientEmail)
	if err != nil {
		u.log.Warnf("Failed to check patient %s: %+v", patientEmail, err)
		return nil, err
	}
	if !exists {
		return nil, ErrPatientNotFound
	}

	var trialID *string
	if req.TrialID != nil && strings.TrimSpace(*req.TrialID) != "" {
		id := strings.TrimSpace(*req.TrialID)
		trialExists, err := u.trialRepo.Exists(ctx, tx, id)
		if err != nil {
			u.log.Warnf("Failed to check trial %s: %+v", id, err)
			return nil, err
		}
		if !trialExists {
			return nil, ErrTrialNotFound
		}
		trialID = &id
	}

	appointment := &entity.Appointment{
		PatientEmail: patientEmail,
		TrialID:      trialID,
		Date:         req.Date,
		Time:         req.Time,
		Type:         apptType,
		Doctor:       req.Doctor,
		Location:     req.Location,
		Notes:        req.Notes,
		Status:       entity.AppointmentStatusScheduled,
	}

	if err := u.appointmentRepo.Create(ctx, tx, appointment); err != nil {
		u.log.Warnf("Failed to create appointment: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	// Reload with trial info for the response
	full, err := u.appointmentRepo.FindByID(ctx, u.db, appointment.ID)
	if err != nil || full == nil {
		u.log.Warnf("Failed to reload appointment %s: %+v", appointment.ID, err)
		return converter.AppointmentToResponse(appointment), nil
	}

	u.log.Infof("Appointment scheduled: id=%s, patient=%s, date=%s %s", appointment.ID, patientEmail, req.Date, req.Time)
	return converter.AppointmentToResponse(full), nil
}

// CancelAppointment cancels with a conditional update, so two concurrent
// cancels cannot both succeed.
func (u *appointmentUsecase) CancelAppointment(ctx context.Context, patientEmail string, appointmentID uuid.UUID) error {
	appointment, err := u.appointmentRepo.FindByID(ctx, u.db, appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", appointmentID, err)
		return err
	}
	if appointment == nil {
		return ErrAppointmentNotFound
	}

	if appointment.PatientEmail != patientEmail {
		return ErrAppointmentNotOwned
	}

	if appointment.IsCancelled() {
		return ErrAppointmentAlreadyCancelled
	}

	affected, err := u.appointmentRepo.Cancel(ctx, u.db, appointmentID)
	if err != nil {
		u.log.Warnf("Failed to cancel appointment %s: %+v", appointmentID, err)
		return err
	}
	if affected == 0 {
		return ErrAppointmentAlreadyCancelled
	}

	u.log.Infof("Appointment cancelled: id=%s", appointmentID)
	return nil
}
