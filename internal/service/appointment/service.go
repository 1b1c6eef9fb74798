package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/jwalitptl/scheduling-api/internal/model"
	"github.com/jwalitptl/scheduling-api/internal/repository"
	"github.com/jwalitptl/scheduling-api/internal/service/event"
	apperrors "github.com/jwalitptl/scheduling-api/pkg/errors"
	"github.com/jwalitptl/scheduling-api/pkg/validator"
)

type Service struct {
	repo        repository.AppointmentRepository
	patients    repository.PatientRepository
	specialists repository.SpecialistRepository
	events      event.Emitter
}

func NewService(
	repo repository.AppointmentRepository,
	patients repository.PatientRepository,
	specialists repository.SpecialistRepository,
	events event.Emitter,
) *Service {
	return &Service{
		repo:        repo,
		patients:    patients,
		specialists: specialists,
		events:      events,
	}
}

// InvalidPK is the field message for a reference to a missing row.
func InvalidPK(id int64) string {
	return fmt.Sprintf("Invalid pk \"%d\" - object does not exist.", id)
}

func (s *Service) List(ctx context.Context) ([]*model.Appointment, error) {
	appointments, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	appointment, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("Appointment not found.", err)
		}
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	return appointment, nil
}

// Create books an appointment, filling in the default status and symptoms.
func (s *Service) Create(ctx context.Context, req *model.CreateAppointmentRequest) (*model.Appointment, error) {
	fields := map[string][]string{}

	date, err := model.ParseDate(req.Date)
	if err != nil {
		fields["date"] = []string{validator.MsgDateFormat}
	}
	clock, err := model.ParseClock(req.Time)
	if err != nil {
		fields["time"] = []string{validator.MsgTimeFormat}
	}

	if _, err := s.patients.Get(ctx, *req.Patient); err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("failed to get patient: %w", err)
		}
		fields["patient"] = []string{InvalidPK(*req.Patient)}
	}
	if _, err := s.specialists.Get(ctx, *req.Specialist); err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("failed to get specialist: %w", err)
		}
		fields["specialist"] = []string{InvalidPK(*req.Specialist)}
	}

	if len(fields) > 0 {
		return nil, apperrors.Validation(fields)
	}

	appointment := &model.Appointment{
		SymptomType:        model.DefaultSymptomType,
		SymptomDescription: model.DefaultSymptomDescription,
		Date:               date,
		Time:               clock,
		Status:             model.AppointmentStatusPending,
		SpecialistID:       *req.Specialist,
		PatientID:          *req.Patient,
	}
	if req.SymptomType != nil {
		appointment.SymptomType = *req.SymptomType
	}
	if req.SymptomDescription != nil {
		appointment.SymptomDescription = *req.SymptomDescription
	}
	if req.Status != nil {
		appointment.Status = *req.Status
	}

	if err := s.repo.Create(ctx, appointment); err != nil {
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}

	event.EmitBestEffort(ctx, s.events, model.EventAppointmentCreated, appointment)
	return appointment, nil
}
