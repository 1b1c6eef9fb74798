package profile

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jwalitptl/scheduling-api/internal/model"
	"github.com/jwalitptl/scheduling-api/internal/service/event"
	apperrors "github.com/jwalitptl/scheduling-api/pkg/errors"
	"github.com/jwalitptl/scheduling-api/pkg/security"
)

type mockUserRepo struct {
	CreateFn     func(ctx context.Context, user *model.User) error
	GetFn        func(ctx context.Context, id int64) (*model.User, error)
	GetByEmailFn func(ctx context.Context, email string) (*model.User, error)
	UpdateFn     func(ctx context.Context, user *model.User) error
	ListFn       func(ctx context.Context) ([]*model.User, error)
}

func (m *mockUserRepo) Create(ctx context.Context, user *model.User) error {
	return m.CreateFn(ctx, user)
}
func (m *mockUserRepo) Get(ctx context.Context, id int64) (*model.User, error) {
	return m.GetFn(ctx, id)
}
func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return m.GetByEmailFn(ctx, email)
}
func (m *mockUserRepo) Update(ctx context.Context, user *model.User) error {
	return m.UpdateFn(ctx, user)
}
func (m *mockUserRepo) List(ctx context.Context) ([]*model.User, error) {
	return m.ListFn(ctx)
}

type mockSpecialistRepo struct {
	specialists []*model.Specialist
}

func (m *mockSpecialistRepo) Get(_ context.Context, userID int64) (*model.Specialist, error) {
	for _, s := range m.specialists {
		if s.UserID == userID {
			return s, nil
		}
	}
	return nil, fmt.Errorf("failed to get specialist: %w", sql.ErrNoRows)
}
func (m *mockSpecialistRepo) List(context.Context) ([]*model.Specialist, error) {
	return append([]*model.Specialist{}, m.specialists...), nil
}

type mockPatientRepo struct{}

func (mockPatientRepo) Get(context.Context, int64) (*model.Patient, error) {
	return nil, sql.ErrNoRows
}
func (mockPatientRepo) List(context.Context) ([]*model.Patient, error) {
	return []*model.Patient{}, nil
}

type mockSpecializationRepo struct{}

func (mockSpecializationRepo) Get(context.Context, int64) (*model.Specialization, error) {
	return nil, sql.ErrNoRows
}
func (mockSpecializationRepo) List(context.Context) ([]*model.Specialization, error) {
	return []*model.Specialization{}, nil
}

type recordingEmitter struct {
	types []string
	err   error
}

func (r *recordingEmitter) Emit(_ context.Context, eventType string, _ interface{}) error {
	r.types = append(r.types, eventType)
	return r.err
}

func newTestService(users *mockUserRepo, specialists *mockSpecialistRepo, events *recordingEmitter) *Service {
	if specialists == nil {
		specialists = &mockSpecialistRepo{}
	}
	var emitter event.Emitter
	if events != nil {
		emitter = events
	}
	return NewService(users, mockPatientRepo{}, specialists, mockSpecializationRepo{},
		security.NewBcryptHasher(bcrypt.MinCost), emitter)
}

func createRequest(userType string) *model.CreateUserRequest {
	return &model.CreateUserRequest{
		Email:       "a@b.com",
		Password:    "p",
		FirstName:   "A",
		LastName:    "B",
		DateOfBirth: "1990-01-01",
		Gender:      model.GenderMale,
		PhoneNumber: "1",
		UserType:    userType,
	}
}

func TestService_CreateUserReturnsProfile(t *testing.T) {
	var stored *model.User
	users := &mockUserRepo{CreateFn: func(_ context.Context, u *model.User) error {
		u.ID = 1
		stored = u
		return nil
	}}
	events := &recordingEmitter{}
	svc := newTestService(users, nil, events)

	out, err := svc.CreateUser(context.Background(), createRequest(model.UserTypePatient))
	require.NoError(t, err)

	patient, ok := out.(*model.Patient)
	require.True(t, ok)
	assert.Equal(t, int64(1), patient.UserID)

	assert.NotEqual(t, "p", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("p")))
	assert.True(t, stored.IsActive)
	assert.Equal(t, []string{model.EventUserCreated}, events.types)

	out, err = svc.CreateUser(context.Background(), createRequest(model.UserTypeSpecialist))
	require.NoError(t, err)
	assert.IsType(t, &model.Specialist{}, out)
}

func TestService_CreateUserIgnoresOutboxFailure(t *testing.T) {
	users := &mockUserRepo{CreateFn: func(_ context.Context, u *model.User) error { return nil }}
	svc := newTestService(users, nil, &recordingEmitter{err: errors.New("outbox down")})

	_, err := svc.CreateUser(context.Background(), createRequest(model.UserTypePatient))
	assert.NoError(t, err)
}

type failingHasher struct{}

func (failingHasher) Hash(string) (string, error) { return "", security.ErrHashingFailed }

func (failingHasher) Compare(string, string) error { return security.ErrPasswordInvalid }

func TestService_CreateUserRejectsPasswordOverBcryptLimit(t *testing.T) {
	users := &mockUserRepo{CreateFn: func(context.Context, *model.User) error {
		t.Fatal("user must not be stored")
		return nil
	}}
	svc := newTestService(users, nil, nil)

	// 40 runes pass the binding rule but encode to 80 bytes.
	req := createRequest(model.UserTypePatient)
	req.Password = strings.Repeat("é", 40)

	_, err := svc.CreateUser(context.Background(), req)
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrValidation, appErr.Code)
	assert.Equal(t, []string{"Ensure this field has no more than 72 characters."}, appErr.Fields["password"])
}

func TestService_HashFailureIsInternal(t *testing.T) {
	users := &mockUserRepo{CreateFn: func(context.Context, *model.User) error { return nil }}
	svc := NewService(users, mockPatientRepo{}, &mockSpecialistRepo{}, mockSpecializationRepo{}, failingHasher{}, nil)

	_, err := svc.CreateUser(context.Background(), createRequest(model.UserTypePatient))
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrInternal, appErr.Code)
	assert.ErrorIs(t, err, security.ErrHashingFailed)
}

func TestService_GetUserNotFound(t *testing.T) {
	users := &mockUserRepo{GetFn: func(context.Context, int64) (*model.User, error) {
		return nil, fmt.Errorf("failed to get user: %w", sql.ErrNoRows)
	}}
	svc := newTestService(users, nil, nil)

	_, err := svc.GetUser(context.Background(), 42)
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrNotFound, appErr.Code)
	assert.Equal(t, "User not found.", appErr.Message)
}

func TestService_UpdateUserPartial(t *testing.T) {
	city := "Old"
	existing := &model.User{ID: 3, Email: "a@b.com", FirstName: "A", City: &city, PasswordHash: "old"}
	var saved *model.User
	users := &mockUserRepo{
		GetFn:    func(context.Context, int64) (*model.User, error) { return existing, nil },
		UpdateFn: func(_ context.Context, u *model.User) error { saved = u; return nil },
	}
	svc := newTestService(users, nil, &recordingEmitter{})

	name, pw := "Z", "new"
	_, err := svc.UpdateUser(context.Background(), 3, &model.UpdateUserRequest{FirstName: &name, Password: &pw})
	require.NoError(t, err)

	assert.Equal(t, "Z", saved.FirstName)
	assert.Equal(t, "a@b.com", saved.Email)
	assert.Equal(t, "Old", *saved.City)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(saved.PasswordHash), []byte("new")))
}

func TestService_ListSpecialistsEmptyIsNotFound(t *testing.T) {
	svc := newTestService(&mockUserRepo{}, &mockSpecialistRepo{}, nil)

	_, err := svc.ListSpecialists(context.Background())
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, "No specialists found.", appErr.Message)

	svc = newTestService(&mockUserRepo{}, &mockSpecialistRepo{specialists: []*model.Specialist{{UserID: 2}}}, nil)
	list, err := svc.ListSpecialists(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestService_Login(t *testing.T) {
	hasher := security.NewBcryptHasher(bcrypt.MinCost)
	hash, err := hasher.Hash("p")
	require.NoError(t, err)

	users := &mockUserRepo{GetByEmailFn: func(_ context.Context, email string) (*model.User, error) {
		if email != "a@b.com" {
			return nil, fmt.Errorf("failed to get user by email: %w", sql.ErrNoRows)
		}
		return &model.User{ID: 9, Email: email, PasswordHash: hash, UserType: model.UserTypePatient}, nil
	}}
	svc := newTestService(users, nil, nil)
	ctx := context.Background()

	tests := []struct {
		name    string
		req     model.LoginRequest
		code    apperrors.ErrorCode
		message string
	}{
		{"unknown email", model.LoginRequest{Email: "x@b.com", Password: "p", UserType: "Patient"}, apperrors.ErrNotFound, "User not found."},
		{"wrong password", model.LoginRequest{Email: "a@b.com", Password: "q", UserType: "Patient"}, apperrors.ErrBadRequest, "Incorrect password."},
		{"bad user type", model.LoginRequest{Email: "a@b.com", Password: "p", UserType: "Admin"}, apperrors.ErrBadRequest, "Invalid user type."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(ctx, &tt.req)
			appErr, ok := apperrors.As(err)
			require.True(t, ok)
			assert.Equal(t, tt.code, appErr.Code)
			assert.Equal(t, tt.message, appErr.Message)
		})
	}

	resp, err := svc.Login(ctx, &model.LoginRequest{Email: "a@b.com", Password: "p", UserType: "Patient"})
	require.NoError(t, err)
	assert.Equal(t, int64(9), resp.UserInfo.ID)

	// declared type is trusted even when it differs from the stored role
	resp, err = svc.Login(ctx, &model.LoginRequest{Email: "a@b.com", Password: "p", UserType: "Specialist"})
	require.NoError(t, err)
	assert.Equal(t, int64(9), resp.UserInfo.ID)
}
