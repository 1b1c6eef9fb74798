package postgres

import (
	"context"

	"github.com/jwalitptl/scheduling-api/internal/model"
	"github.com/jwalitptl/scheduling-api/internal/repository"
)

type patientRepository struct {
	BaseRepository
}

func NewPatientRepository(base BaseRepository) repository.PatientRepository {
	return &patientRepository{base}
}

func (r *patientRepository) Get(ctx context.Context, userID int64) (*model.Patient, error) {
	var patient model.Patient
	err := r.db.GetContext(ctx, &patient,
		`SELECT user_id, created_at, updated_at FROM patients WHERE user_id = $1`, userID)
	if err != nil {
		return nil, wrapErr("get patient", err)
	}
	return &patient, nil
}

func (r *patientRepository) List(ctx context.Context) ([]*model.Patient, error) {
	patients := []*model.Patient{}
	err := r.db.SelectContext(ctx, &patients,
		`SELECT user_id, created_at, updated_at FROM patients ORDER BY user_id`)
	if err != nil {
		return nil, wrapErr("list patients", err)
	}
	return patients, nil
}

type specialistRepository struct {
	BaseRepository
}

func NewSpecialistRepository(base BaseRepository) repository.SpecialistRepository {
	return &specialistRepository{base}
}

func (r *specialistRepository) Get(ctx context.Context, userID int64) (*model.Specialist, error) {
	var specialist model.Specialist
	err := r.db.GetContext(ctx, &specialist,
		`SELECT user_id, created_at, updated_at FROM specialists WHERE user_id = $1`, userID)
	if err != nil {
		return nil, wrapErr("get specialist", err)
	}
	return &specialist, nil
}

func (r *specialistRepository) List(ctx context.Context) ([]*model.Specialist, error) {
	specialists := []*model.Specialist{}
	err := r.db.SelectContext(ctx, &specialists,
		`SELECT user_id, created_at, updated_at FROM specialists ORDER BY user_id`)
	if err != nil {
		return nil, wrapErr("list specialists", err)
	}
	return specialists, nil
}

type specializationRepository struct {
	BaseRepository
}

func NewSpecializationRepository(base BaseRepository) repository.SpecializationRepository {
	return &specializationRepository{base}
}

const specializationColumns = `id, title, description, specialist_id, created_at, updated_at`

func (r *specializationRepository) Get(ctx context.Context, id int64) (*model.Specialization, error) {
	var s model.Specialization
	err := r.db.GetContext(ctx, &s,
		`SELECT `+specializationColumns+` FROM specializations WHERE id = $1`, id)
	if err != nil {
		return nil, wrapErr("get specialization", err)
	}
	return &s, nil
}

func (r *specializationRepository) List(ctx context.Context) ([]*model.Specialization, error) {
	list := []*model.Specialization{}
	err := r.db.SelectContext(ctx, &list,
		`SELECT `+specializationColumns+` FROM specializations ORDER BY id`)
	if err != nil {
		return nil, wrapErr("list specializations", err)
	}
	return list, nil
}
