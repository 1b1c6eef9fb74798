package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/scheduling-api/internal/model"
	apperrors "github.com/jwalitptl/scheduling-api/pkg/errors"
)

type fakeService struct {
	created []*model.Notification
}

func (f *fakeService) List(context.Context) ([]*model.Notification, error) {
	return f.created, nil
}

func (f *fakeService) Get(context.Context, uuid.UUID) (*model.Notification, error) {
	return nil, apperrors.NotFound("Notification not found.", nil)
}

func (f *fakeService) Create(_ context.Context, req *model.CreateNotificationRequest) (*model.Notification, error) {
	n := &model.Notification{
		ID:               uuid.New(),
		SenderID:         *req.Sender,
		ReceiverID:       *req.Receiver,
		Content:          req.Content,
		NotificationType: req.NotificationType,
		SentAt:           time.Now().UTC(),
	}
	f.created = append(f.created, n)
	return n, nil
}

func setupRouter(svc Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
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

func TestCreateNotificationIgnoresClientReadState(t *testing.T) {
	svc := &fakeService{}
	r := setupRouter(svc)

	w := do(r, http.MethodPost, "/appointments/notifications/create/",
		`{"sender":1,"receiver":2,"content":"hello","notification_type":"email","is_read":true,"sent_at":"1999-01-01T00:00:00Z"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, false, body["is_read"])
	assert.NotEqual(t, "1999-01-01T00:00:00Z", body["sent_at"])
	assert.NotEmpty(t, body["sent_at"])
}

func TestCreateNotificationRequiresContent(t *testing.T) {
	r := setupRouter(&fakeService{})

	w := do(r, http.MethodPost, "/appointments/notifications/", `{"sender":1,"receiver":2}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var fields map[string][]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fields))
	assert.Equal(t, []string{"This field is required."}, fields["content"])
	assert.Equal(t, []string{"This field is required."}, fields["notification_type"])
}

func TestListAndGetNotifications(t *testing.T) {
	svc := &fakeService{}
	r := setupRouter(svc)

	require.Equal(t, http.StatusCreated, do(r, http.MethodPost, "/appointments/notifications/",
		`{"sender":1,"receiver":2,"content":"a","notification_type":"sms"}`).Code)

	w := do(r, http.MethodGet, "/appointments/notifications/", "")
	require.Equal(t, http.StatusOK, w.Code)
	var list []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list, 1)

	w = do(r, http.MethodGet, "/appointments/notifications/"+uuid.NewString()+"/", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"message":"Notification not found."}`, w.Body.String())
}
