package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jwalitptl/scheduling-api/internal/model"
	"github.com/jwalitptl/scheduling-api/internal/repository"
)

// filterByUser appends the optional user filter to a select.
func filterByUser(query string, filter model.MedicalFilter) (string, []interface{}) {
	if filter.UserID == nil {
		return query + ` ORDER BY created_at`, nil
	}
	return query + ` WHERE user_id = $1 ORDER BY created_at`, []interface{}{*filter.UserID}
}

const medicalHistoryColumns = `id, user_id, past_diagnoses, allergies, medications,
	immunizations, created_at, updated_at`

type medicalHistoryRepository struct {
	BaseRepository
}

func NewMedicalHistoryRepository(base BaseRepository) repository.MedicalHistoryRepository {
	return &medicalHistoryRepository{base}
}

func (r *medicalHistoryRepository) Create(ctx context.Context, h *model.MedicalHistory) error {
	query := `
		INSERT INTO medical_histories (
			id, user_id, past_diagnoses, allergies, medications,
			immunizations, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	h.ID = uuid.New()
	h.Touch(time.Now().UTC())

	_, err := r.db.ExecContext(ctx, query,
		h.ID,
		h.UserID,
		h.PastDiagnoses,
		h.Allergies,
		h.Medications,
		h.Immunizations,
		h.CreatedAt,
		h.UpdatedAt,
	)
	if err != nil {
		return wrapErr("create medical history", err)
	}
	return nil
}

func (r *medicalHistoryRepository) Get(ctx context.Context, id uuid.UUID) (*model.MedicalHistory, error) {
	var h model.MedicalHistory
	err := r.db.GetContext(ctx, &h,
		`SELECT `+medicalHistoryColumns+` FROM medical_histories WHERE id = $1`, id)
	if err != nil {
		return nil, wrapErr("get medical history", err)
	}
	return &h, nil
}

func (r *medicalHistoryRepository) List(ctx context.Context, filter model.MedicalFilter) ([]*model.MedicalHistory, error) {
	query, args := filterByUser(`SELECT `+medicalHistoryColumns+` FROM medical_histories`, filter)

	list := []*model.MedicalHistory{}
	if err := r.db.SelectContext(ctx, &list, query, args...); err != nil {
		return nil, wrapErr("list medical histories", err)
	}
	return list, nil
}

const emergencyContactColumns = `id, user_id, name, phone_number, relationship,
	created_at, updated_at`

type emergencyContactRepository struct {
	BaseRepository
}

func NewEmergencyContactRepository(base BaseRepository) repository.EmergencyContactRepository {
	return &emergencyContactRepository{base}
}

func (r *emergencyContactRepository) Create(ctx context.Context, c *model.EmergencyContact) error {
	query := `
		INSERT INTO emergency_contacts (
			id, user_id, name, phone_number, relationship, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	c.ID = uuid.New()
	c.Touch(time.Now().UTC())

	_, err := r.db.ExecContext(ctx, query,
		c.ID,
		c.UserID,
		c.Name,
		c.PhoneNumber,
		c.Relationship,
		c.CreatedAt,
		c.UpdatedAt,
	)
	if err != nil {
		return wrapErr("create emergency contact", err)
	}
	return nil
}

func (r *emergencyContactRepository) Get(ctx context.Context, id uuid.UUID) (*model.EmergencyContact, error) {
	var c model.EmergencyContact
	err := r.db.GetContext(ctx, &c,
		`SELECT `+emergencyContactColumns+` FROM emergency_contacts WHERE id = $1`, id)
	if err != nil {
		return nil, wrapErr("get emergency contact", err)
	}
	return &c, nil
}

func (r *emergencyContactRepository) List(ctx context.Context, filter model.MedicalFilter) ([]*model.EmergencyContact, error) {
	query, args := filterByUser(`SELECT `+emergencyContactColumns+` FROM emergency_contacts`, filter)

	list := []*model.EmergencyContact{}
	if err := r.db.SelectContext(ctx, &list, query, args...); err != nil {
		return nil, wrapErr("list emergency contacts", err)
	}
	return list, nil
}
