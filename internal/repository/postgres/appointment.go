package postgres

import (
	"context"

	"github.com/google/uuid"

	"github.com/jwalitptl/scheduling-api/internal/model"
	"github.com/jwalitptl/scheduling-api/internal/repository"
)

const appointmentColumns = `appointment_id, symptom_type, symptom_description,
	date, time, status, specialist_id, patient_id`

type appointmentRepository struct {
	BaseRepository
}

func NewAppointmentRepository(base BaseRepository) repository.AppointmentRepository {
	return &appointmentRepository{base}
}

func (r *appointmentRepository) Create(ctx context.Context, appointment *model.Appointment) error {
	query := `
		INSERT INTO appointments (
			appointment_id, symptom_type, symptom_description,
			date, time, status, specialist_id, patient_id
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	appointment.ID = uuid.New()

	_, err := r.db.ExecContext(ctx, query,
		appointment.ID,
		appointment.SymptomType,
		appointment.SymptomDescription,
		appointment.Date,
		appointment.Time,
		appointment.Status,
		appointment.SpecialistID,
		appointment.PatientID,
	)
	if err != nil {
		return wrapErr("create appointment", err)
	}
	return nil
}

func (r *appointmentRepository) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments WHERE appointment_id = $1`

	var appointment model.Appointment
	if err := r.db.GetContext(ctx, &appointment, query, id); err != nil {
		return nil, wrapErr("get appointment", err)
	}
	return &appointment, nil
}

func (r *appointmentRepository) List(ctx context.Context) ([]*model.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments ORDER BY date, time`

	appointments := []*model.Appointment{}
	if err := r.db.SelectContext(ctx, &appointments, query); err != nil {
		return nil, wrapErr("list appointments", err)
	}
	return appointments, nil
}
