package appointment

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/scheduling-api/internal/model"
	"github.com/jwalitptl/scheduling-api/internal/service/appointment"
)

type memAppointments struct {
	items map[uuid.UUID]*model.Appointment
}

func (m *memAppointments) Create(_ context.Context, a *model.Appointment) error {
	a.ID = uuid.New()
	m.items[a.ID] = a
	return nil
}

func (m *memAppointments) Get(_ context.Context, id uuid.UUID) (*model.Appointment, error) {
	if a, ok := m.items[id]; ok {
		return a, nil
	}
	return nil, sql.ErrNoRows
}

func (m *memAppointments) List(context.Context) ([]*model.Appointment, error) {
	out := []*model.Appointment{}
	for _, a := range m.items {
		out = append(out, a)
	}
	return out, nil
}

type onePatient struct{}

func (onePatient) Get(_ context.Context, id int64) (*model.Patient, error) {
	if id != 1 {
		return nil, sql.ErrNoRows
	}
	return &model.Patient{UserID: 1}, nil
}
func (onePatient) List(context.Context) ([]*model.Patient, error) { return nil, nil }

type oneSpecialist struct{}

func (oneSpecialist) Get(_ context.Context, id int64) (*model.Specialist, error) {
	if id != 2 {
		return nil, sql.ErrNoRows
	}
	return &model.Specialist{UserID: 2}, nil
}
func (oneSpecialist) List(context.Context) ([]*model.Specialist, error) { return nil, nil }

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := appointment.NewService(&memAppointments{items: map[uuid.UUID]*model.Appointment{}},
		onePatient{}, oneSpecialist{}, nil)

	r := gin.New()
	NewHandler(svc).RegisterRoutes(r.Group(""))
	return r
}

func do(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateAppointmentDefaultsToPending(t *testing.T) {
	r := setupRouter()

	w := do(r, http.MethodPost, "/appointments/appointments/create/",
		`{"patient":1,"specialist":2,"date":"2024-01-15","time":"10:00"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Pending", body["status"])
	assert.Equal(t, "General", body["symptom_type"])
	assert.Equal(t, "How Exactly do you feel", body["symptom_description"])
	assert.Equal(t, "2024-01-15", body["date"])
	assert.Equal(t, "10:00:00", body["time"])

	id, ok := body["appointment_id"].(string)
	require.True(t, ok)

	w = do(r, http.MethodGet, "/appointments/appointments/"+id+"/", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodGet, "/appointments/appointments/", "")
	require.Equal(t, http.StatusOK, w.Code)
	var list []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list, 1)
}

func TestCreateAppointmentValidation(t *testing.T) {
	r := setupRouter()

	tests := []struct {
		name  string
		body  string
		field string
		msg   string
	}{
		{"missing patient", `{"specialist":2,"date":"2024-01-15","time":"10:00"}`, "patient", "This field is required."},
		{"bad date", `{"patient":1,"specialist":2,"date":"15/01/2024","time":"10:00"}`, "date", "Date has wrong format. Use one of these formats instead: YYYY-MM-DD."},
		{"blank symptom type", `{"patient":1,"specialist":2,"date":"2024-01-15","time":"10:00","symptom_type":""}`, "symptom_type", "This field may not be blank."},
		{"bad status", `{"patient":1,"specialist":2,"date":"2024-01-15","time":"10:00","status":"Done"}`, "status", `"Done" is not a valid choice.`},
		{"unknown specialist", `{"patient":1,"specialist":5,"date":"2024-01-15","time":"10:00"}`, "specialist", `Invalid pk "5" - object does not exist.`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(r, http.MethodPost, "/appointments/appointments/", tt.body)
			require.Equal(t, http.StatusBadRequest, w.Code)

			var fields map[string][]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fields))
			assert.Equal(t, []string{tt.msg}, fields[tt.field])
		})
	}
}

func TestGetAppointmentNotFound(t *testing.T) {
	r := setupRouter()

	for _, path := range []string{"/appointments/appointments/" + uuid.NewString() + "/", "/appointments/appointments/not-a-uuid/"} {
		w := do(r, http.MethodGet, path, "")
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"message":"Appointment not found."}`, w.Body.String())
	}
}

func TestIndex(t *testing.T) {
	w := do(setupRouter(), http.MethodGet, "/appointments/", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Welcome to the appointments app."}`, w.Body.String())
}
