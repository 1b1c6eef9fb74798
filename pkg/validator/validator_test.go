package validator

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/scheduling-api/pkg/errors"
)

type bookingRequest struct {
	Email  string  `json:"email" binding:"required,email"`
	Date   string  `json:"date" binding:"required,datetime=2006-01-02"`
	Time   string  `json:"time" binding:"required,clocktime"`
	Status string  `json:"status" binding:"omitempty,oneof=Pending Confirmed"`
	Ref    *int64  `json:"ref" binding:"required"`
	Note   *string `json:"note" binding:"omitempty,max=5"`
	Nick   *string `json:"nick" binding:"omitempty,notblank"`
}

func bind(t *testing.T, body string) map[string][]string {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body))
	c.Request.Header.Set("Content-Type", "application/json")

	var req bookingRequest
	err := BindJSON(c, &req)
	if err == nil {
		return nil
	}
	appErr, ok := errors.As(err)
	require.True(t, ok)
	require.Equal(t, errors.ErrValidation, appErr.Code)
	return appErr.Fields
}

func TestBindJSON(t *testing.T) {
	tests := []struct {
		name string
		body string
		want map[string][]string
	}{
		{
			name: "valid",
			body: `{"email":"a@b.co","date":"2024-05-01","time":"09:30","ref":1}`,
		},
		{
			name: "empty body reports required fields",
			body: ``,
			want: map[string][]string{
				"email": {"This field is required."},
				"date":  {"This field is required."},
				"time":  {"This field is required."},
				"ref":   {"This field is required."},
			},
		},
		{
			name: "format errors",
			body: `{"email":"nope","date":"01/05/2024","time":"25:00","status":"Lost","ref":1,"note":"too long"}`,
			want: map[string][]string{
				"email":  {"Enter a valid email address."},
				"date":   {MsgDateFormat},
				"time":   {MsgTimeFormat},
				"status": {`"Lost" is not a valid choice.`},
				"note":   {"Ensure this field has no more than 5 characters."},
			},
		},
		{
			name: "fractional seconds",
			body: `{"email":"a@b.co","date":"2024-05-01","time":"09:30:15.123456","ref":1}`,
		},
		{
			name: "blank optional string",
			body: `{"email":"a@b.co","date":"2024-05-01","time":"09:30","ref":1,"nick":"  "}`,
			want: map[string][]string{
				"nick": {"This field may not be blank."},
			},
		},
		{
			name: "wrong json type",
			body: `{"email":"a@b.co","date":"2024-05-01","time":"09:30","ref":"x"}`,
			want: map[string][]string{
				"ref": {"Incorrect type. Expected int64, but got string."},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, bind(t, tt.body))
		})
	}
}

func TestBindJSON_Malformed(t *testing.T) {
	fields := bind(t, `{"email":`)
	assert.Contains(t, fields, NonFieldKey)
}
