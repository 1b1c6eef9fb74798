package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/jwalitptl/scheduling-api/internal/model"
)

// ErrDuplicate wraps unique constraint violations reported by the database.
var ErrDuplicate = errors.New("duplicate record")

// All repository interfaces in one file
type (
	// UserRepository creates users together with their role profile
	UserRepository interface {
		Create(ctx context.Context, user *model.User) error
		Get(ctx context.Context, id int64) (*model.User, error)
		GetByEmail(ctx context.Context, email string) (*model.User, error)
		Update(ctx context.Context, user *model.User) error
		List(ctx context.Context) ([]*model.User, error)
	}

	PatientRepository interface {
		Get(ctx context.Context, userID int64) (*model.Patient, error)
		List(ctx context.Context) ([]*model.Patient, error)
	}

	SpecialistRepository interface {
		Get(ctx context.Context, userID int64) (*model.Specialist, error)
		List(ctx context.Context) ([]*model.Specialist, error)
	}

	SpecializationRepository interface {
		Get(ctx context.Context, id int64) (*model.Specialization, error)
		List(ctx context.Context) ([]*model.Specialization, error)
	}

	AppointmentRepository interface {
		Create(ctx context.Context, appointment *model.Appointment) error
		Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
		List(ctx context.Context) ([]*model.Appointment, error)
	}

	NotificationRepository interface {
		Create(ctx context.Context, notification *model.Notification) error
		Get(ctx context.Context, id uuid.UUID) (*model.Notification, error)
		List(ctx context.Context) ([]*model.Notification, error)
	}

	MedicalHistoryRepository interface {
		Create(ctx context.Context, history *model.MedicalHistory) error
		Get(ctx context.Context, id uuid.UUID) (*model.MedicalHistory, error)
		List(ctx context.Context, filter model.MedicalFilter) ([]*model.MedicalHistory, error)
	}

	EmergencyContactRepository interface {
		Create(ctx context.Context, contact *model.EmergencyContact) error
		Get(ctx context.Context, id uuid.UUID) (*model.EmergencyContact, error)
		List(ctx context.Context, filter model.MedicalFilter) ([]*model.EmergencyContact, error)
	}

	// OutboxRepository stores integration events until the relay publishes them
	OutboxRepository interface {
		Create(ctx context.Context, event *model.OutboxEvent) error
		// ProcessPending claims up to limit pending events, hands each to fn and
		// records processed or failed depending on its result.
		ProcessPending(ctx context.Context, limit int, fn func(context.Context, *model.OutboxEvent) error) (int, error)
		DeleteProcessedBefore(ctx context.Context, before time.Time) (int64, error)
	}
)
