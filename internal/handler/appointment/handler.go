package appointment

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jwalitptl/scheduling-api/internal/model"
	apperrors "github.com/jwalitptl/scheduling-api/pkg/errors"
	"github.com/jwalitptl/scheduling-api/pkg/httputil"
	"github.com/jwalitptl/scheduling-api/pkg/validator"
)

type Service interface {
	List(ctx context.Context) ([]*model.Appointment, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
	Create(ctx context.Context, req *model.CreateAppointmentRequest) (*model.Appointment, error)
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	appointments := r.Group("/appointments")
	{
		appointments.GET("/", h.Index)
		appointments.GET("/appointments/", h.ListAppointments)
		appointments.GET("/appointments/:id/", h.GetAppointment)
		appointments.POST("/appointments/", h.CreateAppointment)
		appointments.POST("/appointments/create/", h.CreateAppointment)
	}
}

func (h *Handler) Index(c *gin.Context) {
	httputil.RespondWithMessage(c, http.StatusOK, "Welcome to the appointments app.")
}

func (h *Handler) ListAppointments(c *gin.Context) {
	appointments, err := h.service.List(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, appointments)
}

func (h *Handler) GetAppointment(c *gin.Context) {
	id, ok := httputil.ParamUUID(c, "id")
	if !ok {
		httputil.RespondWithError(c, apperrors.NotFound("Appointment not found.", nil))
		return
	}

	appointment, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, appointment)
}

func (h *Handler) CreateAppointment(c *gin.Context) {
	var req model.CreateAppointmentRequest
	if err := validator.BindJSON(c, &req); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	appointment, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, appointment)
}
