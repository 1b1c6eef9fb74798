package medical

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
)

type Service struct {
	histories repository.MedicalHistoryRepository
	contacts  repository.EmergencyContactRepository
	users     repository.UserRepository
	events    event.Emitter
}

func NewService(
	histories repository.MedicalHistoryRepository,
	contacts repository.EmergencyContactRepository,
	users repository.UserRepository,
	events event.Emitter,
) *Service {
	return &Service{
		histories: histories,
		contacts:  contacts,
		users:     users,
		events:    events,
	}
}

func (s *Service) checkUser(ctx context.Context, id int64) error {
	if _, err := s.users.Get(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperrors.FieldError("user", fmt.Sprintf("Invalid pk \"%d\" - object does not exist.", id))
		}
		return fmt.Errorf("failed to get user: %w", err)
	}
	return nil
}

func (s *Service) ListHistories(ctx context.Context, filter model.MedicalFilter) ([]*model.MedicalHistory, error) {
	list, err := s.histories.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list medical histories: %w", err)
	}
	return list, nil
}

func (s *Service) GetHistory(ctx context.Context, id uuid.UUID) (*model.MedicalHistory, error) {
	h, err := s.histories.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("Medical history not found.", err)
		}
		return nil, fmt.Errorf("failed to get medical history: %w", err)
	}
	return h, nil
}

func (s *Service) CreateHistory(ctx context.Context, req *model.CreateMedicalHistoryRequest) (*model.MedicalHistory, error) {
	if err := s.checkUser(ctx, *req.User); err != nil {
		return nil, err
	}

	h := &model.MedicalHistory{
		UserID:        *req.User,
		PastDiagnoses: req.PastDiagnoses,
		Allergies:     req.Allergies,
		Medications:   req.Medications,
		Immunizations: req.Immunizations,
	}
	if err := s.histories.Create(ctx, h); err != nil {
		return nil, fmt.Errorf("failed to create medical history: %w", err)
	}

	event.EmitBestEffort(ctx, s.events, model.EventMedicalHistoryCreated, h)
	return h, nil
}

func (s *Service) ListContacts(ctx context.Context, filter model.MedicalFilter) ([]*model.EmergencyContact, error) {
	list, err := s.contacts.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list emergency contacts: %w", err)
	}
	return list, nil
}

func (s *Service) GetContact(ctx context.Context, id uuid.UUID) (*model.EmergencyContact, error) {
	c, err := s.contacts.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("Emergency contact not found.", err)
		}
		return nil, fmt.Errorf("failed to get emergency contact: %w", err)
	}
	return c, nil
}

func (s *Service) CreateContact(ctx context.Context, req *model.CreateEmergencyContactRequest) (*model.EmergencyContact, error) {
	if err := s.checkUser(ctx, *req.User); err != nil {
		return nil, err
	}

	c := &model.EmergencyContact{
		UserID:       *req.User,
		Name:         req.Name,
		PhoneNumber:  req.PhoneNumber,
		Relationship: req.Relationship,
	}
	if err := s.contacts.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to create emergency contact: %w", err)
	}

	event.EmitBestEffort(ctx, s.events, model.EventEmergencyContactCreated, c)
	return c, nil
}
