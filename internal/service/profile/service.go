package profile

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/scheduling-api/internal/model"
	"github.com/jwalitptl/scheduling-api/internal/repository"
	"github.com/jwalitptl/scheduling-api/internal/service/event"
	apperrors "github.com/jwalitptl/scheduling-api/pkg/errors"
	"github.com/jwalitptl/scheduling-api/pkg/security"
	"github.com/jwalitptl/scheduling-api/pkg/validator"
)

const (
	msgUserNotFound           = "User not found."
	msgPatientNotFound        = "Patient not found."
	msgSpecialistNotFound     = "Specialist not found."
	msgNoSpecialists          = "No specialists found."
	msgSpecializationNotFound = "Specialization not found."
	msgIncorrectPassword      = "Incorrect password."
	msgInvalidUserType        = "Invalid user type."
)

type Service struct {
	users           repository.UserRepository
	patients        repository.PatientRepository
	specialists     repository.SpecialistRepository
	specializations repository.SpecializationRepository
	hasher          security.PasswordHasher
	events          event.Emitter
}

func NewService(
	users repository.UserRepository,
	patients repository.PatientRepository,
	specialists repository.SpecialistRepository,
	specializations repository.SpecializationRepository,
	hasher security.PasswordHasher,
	events event.Emitter,
) *Service {
	return &Service{
		users:           users,
		patients:        patients,
		specialists:     specialists,
		specializations: specializations,
		hasher:          hasher,
		events:          events,
	}
}

// notFound translates sql.ErrNoRows into a 404 carrying msg.
func notFound(err error, msg, op string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return apperrors.NotFound(msg, err)
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}

func (s *Service) ListUsers(ctx context.Context) ([]*model.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (s *Service) GetUser(ctx context.Context, id int64) (*model.User, error) {
	user, err := s.users.Get(ctx, id)
	if err != nil {
		return nil, notFound(err, msgUserNotFound, "get user")
	}
	return user, nil
}

// CreateUser registers a user and returns the Patient or Specialist profile
// created alongside it.
func (s *Service) CreateUser(ctx context.Context, req *model.CreateUserRequest) (interface{}, error) {
	dob, err := model.ParseDate(req.DateOfBirth)
	if err != nil {
		return nil, apperrors.FieldError("date_of_birth", validator.MsgDateFormat)
	}

	hash, err := s.hashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Email:         req.Email,
		PasswordHash:  hash,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		DateOfBirth:   dob,
		Gender:        req.Gender,
		PhoneNumber:   req.PhoneNumber,
		StreetAddress: req.StreetAddress,
		City:          req.City,
		Country:       req.Country,
		UserType:      req.UserType,
		IsActive:      true,
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	event.EmitBestEffort(ctx, s.events, model.EventUserCreated, user)

	if user.UserType == model.UserTypeSpecialist {
		return &model.Specialist{UserID: user.ID, Timestamps: user.Timestamps}, nil
	}
	return &model.Patient{UserID: user.ID, Timestamps: user.Timestamps}, nil
}

// hashPassword enforces bcrypt's byte limit, which the rune-counting max
// binding rule misses for multibyte input.
func (s *Service) hashPassword(password string) (string, error) {
	if len(password) > security.MaxPasswordBytes {
		return "", apperrors.FieldError("password",
			fmt.Sprintf("Ensure this field has no more than %d characters.", security.MaxPasswordBytes))
	}
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return "", apperrors.Internal(fmt.Errorf("failed to hash password: %w", err))
	}
	return hash, nil
}

// UpdateUser applies the supplied fields only; a new password is re-hashed.
func (s *Service) UpdateUser(ctx context.Context, id int64, req *model.UpdateUserRequest) (*model.User, error) {
	user, err := s.users.Get(ctx, id)
	if err != nil {
		return nil, notFound(err, msgUserNotFound, "get user")
	}

	if req.DateOfBirth != nil {
		dob, err := model.ParseDate(*req.DateOfBirth)
		if err != nil {
			return nil, apperrors.FieldError("date_of_birth", validator.MsgDateFormat)
		}
		user.DateOfBirth = dob
	}
	if req.Password != nil {
		hash, err := s.hashPassword(*req.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	setString(&user.Email, req.Email)
	setString(&user.FirstName, req.FirstName)
	setString(&user.LastName, req.LastName)
	setString(&user.Gender, req.Gender)
	setString(&user.PhoneNumber, req.PhoneNumber)
	setString(&user.UserType, req.UserType)
	if req.StreetAddress != nil {
		user.StreetAddress = req.StreetAddress
	}
	if req.City != nil {
		user.City = req.City
	}
	if req.Country != nil {
		user.Country = req.Country
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, notFound(err, msgUserNotFound, "update user")
	}

	event.EmitBestEffort(ctx, s.events, model.EventUserUpdated, user)
	return user, nil
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func (s *Service) ListPatients(ctx context.Context) ([]*model.Patient, error) {
	patients, err := s.patients.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	return patients, nil
}

func (s *Service) GetPatient(ctx context.Context, userID int64) (*model.Patient, error) {
	patient, err := s.patients.Get(ctx, userID)
	if err != nil {
		return nil, notFound(err, msgPatientNotFound, "get patient")
	}
	return patient, nil
}

// ListSpecialists reports an empty table as not found.
func (s *Service) ListSpecialists(ctx context.Context) ([]*model.Specialist, error) {
	specialists, err := s.specialists.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list specialists: %w", err)
	}
	if len(specialists) == 0 {
		return nil, apperrors.NotFound(msgNoSpecialists, nil)
	}
	return specialists, nil
}

func (s *Service) GetSpecialist(ctx context.Context, userID int64) (*model.Specialist, error) {
	specialist, err := s.specialists.Get(ctx, userID)
	if err != nil {
		return nil, notFound(err, msgSpecialistNotFound, "get specialist")
	}
	return specialist, nil
}

func (s *Service) ListSpecializations(ctx context.Context) ([]*model.Specialization, error) {
	list, err := s.specializations.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list specializations: %w", err)
	}
	return list, nil
}

func (s *Service) GetSpecialization(ctx context.Context, id int64) (*model.Specialization, error) {
	specialization, err := s.specializations.Get(ctx, id)
	if err != nil {
		return nil, notFound(err, msgSpecializationNotFound, "get specialization")
	}
	return specialization, nil
}

// Login checks the password and trusts the declared user_type; the stored
// role is only compared for logging.
func (s *Service) Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, notFound(err, msgUserNotFound, "get user by email")
	}

	if err := s.hasher.Compare(user.PasswordHash, req.Password); err != nil {
		if !errors.Is(err, security.ErrPasswordInvalid) {
			log.Ctx(ctx).Warn().Err(err).Int64("user_id", user.ID).Msg("stored password hash is unusable")
		}
		return nil, apperrors.BadRequest(msgIncorrectPassword, nil)
	}

	switch req.UserType {
	case model.UserTypePatient, model.UserTypeSpecialist:
	default:
		return nil, apperrors.BadRequest(msgInvalidUserType, nil)
	}

	if req.UserType != user.UserType {
		log.Ctx(ctx).Warn().
			Int64("user_id", user.ID).
			Str("declared_type", req.UserType).
			Str("stored_type", user.UserType).
			Msg("login user_type does not match stored role")
	}

	return &model.LoginResponse{UserInfo: model.UserInfo{ID: user.ID}}, nil
}
