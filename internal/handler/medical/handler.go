package medical

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jwalitptl/scheduling-api/internal/model"
	apperrors "github.com/jwalitptl/scheduling-api/pkg/errors"
	"github.com/jwalitptl/scheduling-api/pkg/httputil"
	"github.com/jwalitptl/scheduling-api/pkg/validator"
)

type Service interface {
	ListHistories(ctx context.Context, filter model.MedicalFilter) ([]*model.MedicalHistory, error)
	GetHistory(ctx context.Context, id uuid.UUID) (*model.MedicalHistory, error)
	CreateHistory(ctx context.Context, req *model.CreateMedicalHistoryRequest) (*model.MedicalHistory, error)
	ListContacts(ctx context.Context, filter model.MedicalFilter) ([]*model.EmergencyContact, error)
	GetContact(ctx context.Context, id uuid.UUID) (*model.EmergencyContact, error)
	CreateContact(ctx context.Context, req *model.CreateEmergencyContactRequest) (*model.EmergencyContact, error)
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	medics := r.Group("/medics")
	{
		medics.GET("/history/", h.ListHistories)
		medics.POST("/history/", h.CreateHistory)
		medics.GET("/history/:id/", h.GetHistory)

		medics.GET("/contacts/", h.ListContacts)
		medics.POST("/contacts/", h.CreateContact)
		medics.GET("/contacts/:id/", h.GetContact)
	}
}

func bindFilter(c *gin.Context) (model.MedicalFilter, error) {
	var filter model.MedicalFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		return filter, apperrors.FieldError("user", "A valid integer is required.")
	}
	return filter, nil
}

func (h *Handler) ListHistories(c *gin.Context) {
	filter, err := bindFilter(c)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	list, err := h.service.ListHistories(c.Request.Context(), filter)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, list)
}

func (h *Handler) GetHistory(c *gin.Context) {
	id, ok := httputil.ParamUUID(c, "id")
	if !ok {
		httputil.RespondWithError(c, apperrors.NotFound("Medical history not found.", nil))
		return
	}

	history, err := h.service.GetHistory(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, history)
}

func (h *Handler) CreateHistory(c *gin.Context) {
	var req model.CreateMedicalHistoryRequest
	if err := validator.BindJSON(c, &req); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	history, err := h.service.CreateHistory(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, history)
}

func (h *Handler) ListContacts(c *gin.Context) {
	filter, err := bindFilter(c)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	list, err := h.service.ListContacts(c.Request.Context(), filter)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, list)
}

func (h *Handler) GetContact(c *gin.Context) {
	id, ok := httputil.ParamUUID(c, "id")
	if !ok {
		httputil.RespondWithError(c, apperrors.NotFound("Emergency contact not found.", nil))
		return
	}

	contact, err := h.service.GetContact(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, contact)
}

func (h *Handler) CreateContact(c *gin.Context) {
	var req model.CreateEmergencyContactRequest
	if err := validator.BindJSON(c, &req); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	contact, err := h.service.CreateContact(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, contact)
}
