package profile

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/scheduling-api/internal/model"
	apperrors "github.com/jwalitptl/scheduling-api/pkg/errors"
	"github.com/jwalitptl/scheduling-api/pkg/httputil"
	"github.com/jwalitptl/scheduling-api/pkg/validator"
)

// Service is the subset of the profile service used over HTTP.
type Service interface {
	ListUsers(ctx context.Context) ([]*model.User, error)
	GetUser(ctx context.Context, id int64) (*model.User, error)
	CreateUser(ctx context.Context, req *model.CreateUserRequest) (interface{}, error)
	UpdateUser(ctx context.Context, id int64, req *model.UpdateUserRequest) (*model.User, error)
	ListPatients(ctx context.Context) ([]*model.Patient, error)
	GetPatient(ctx context.Context, userID int64) (*model.Patient, error)
	ListSpecialists(ctx context.Context) ([]*model.Specialist, error)
	GetSpecialist(ctx context.Context, userID int64) (*model.Specialist, error)
	ListSpecializations(ctx context.Context) ([]*model.Specialization, error)
	GetSpecialization(ctx context.Context, id int64) (*model.Specialization, error)
	Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error)
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	profiles := r.Group("/profiles")
	{
		profiles.GET("/", h.Index)
		profiles.GET("/users/", h.ListUsers)
		profiles.POST("/users/", h.CreateUser)
		profiles.POST("/user/add/", h.CreateUser)
		profiles.GET("/user/:id/", h.GetUser)
		profiles.PUT("/user/:id/", h.UpdateUser)
		profiles.PUT("/user/update/:id/", h.UpdateUser)

		profiles.GET("/patient/", h.ListPatients)
		profiles.GET("/patient/:id/", h.GetPatient)
		profiles.GET("/specialist/", h.ListSpecialists)
		profiles.GET("/specialist/:id/", h.GetSpecialist)
		profiles.GET("/specialization/", h.ListSpecializations)
		profiles.GET("/specialization/:id/", h.GetSpecialization)

		profiles.POST("/login/", h.Login)
	}
}

func (h *Handler) Index(c *gin.Context) {
	httputil.RespondWithMessage(c, http.StatusOK, "Welcome to the profiles app.")
}

func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.service.ListUsers(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, users)
}

func (h *Handler) GetUser(c *gin.Context) {
	id, ok := httputil.ParamInt64(c, "id")
	if !ok {
		httputil.RespondWithError(c, apperrors.NotFound("User not found.", nil))
		return
	}

	user, err := h.service.GetUser(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, user)
}

func (h *Handler) CreateUser(c *gin.Context) {
	var req model.CreateUserRequest
	if err := validator.BindJSON(c, &req); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	profile, err := h.service.CreateUser(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, profile)
}

func (h *Handler) UpdateUser(c *gin.Context) {
	id, ok := httputil.ParamInt64(c, "id")
	if !ok {
		httputil.RespondWithError(c, apperrors.NotFound("User not found.", nil))
		return
	}

	var req model.UpdateUserRequest
	if err := validator.BindJSON(c, &req); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	user, err := h.service.UpdateUser(c.Request.Context(), id, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, user)
}

func (h *Handler) ListPatients(c *gin.Context) {
	patients, err := h.service.ListPatients(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, patients)
}

func (h *Handler) GetPatient(c *gin.Context) {
	id, ok := httputil.ParamInt64(c, "id")
	if !ok {
		httputil.RespondWithError(c, apperrors.NotFound("Patient not found.", nil))
		return
	}

	patient, err := h.service.GetPatient(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, patient)
}

func (h *Handler) ListSpecialists(c *gin.Context) {
	specialists, err := h.service.ListSpecialists(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, specialists)
}

func (h *Handler) GetSpecialist(c *gin.Context) {
	id, ok := httputil.ParamInt64(c, "id")
	if !ok {
		httputil.RespondWithError(c, apperrors.NotFound("Specialist not found.", nil))
		return
	}

	specialist, err := h.service.GetSpecialist(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, specialist)
}

func (h *Handler) ListSpecializations(c *gin.Context) {
	list, err := h.service.ListSpecializations(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, list)
}

func (h *Handler) GetSpecialization(c *gin.Context) {
	id, ok := httputil.ParamInt64(c, "id")
	if !ok {
		httputil.RespondWithError(c, apperrors.NotFound("Specialization not found.", nil))
		return
	}

	specialization, err := h.service.GetSpecialization(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, specialization)
}

// Login reads the body leniently; absent fields fail the lookup instead of
// producing field errors.
func (h *Handler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength != 0 {
		httputil.RespondWithError(c, apperrors.Validation(validator.FieldErrors(err)))
		return
	}

	resp, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, resp)
}
