package notification

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
	List(ctx context.Context) ([]*model.Notification, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Notification, error)
	Create(ctx context.Context, req *model.CreateNotificationRequest) (*model.Notification, error)
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts notifications under the appointments prefix.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	notifications := r.Group("/appointments/notifications")
	{
		notifications.GET("/", h.ListNotifications)
		notifications.GET("/:id/", h.GetNotification)
		notifications.POST("/", h.CreateNotification)
		notifications.POST("/create/", h.CreateNotification)
	}
}

func (h *Handler) ListNotifications(c *gin.Context) {
	list, err := h.service.List(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, list)
}

func (h *Handler) GetNotification(c *gin.Context) {
	id, ok := httputil.ParamUUID(c, "id")
	if !ok {
		httputil.RespondWithError(c, apperrors.NotFound("Notification not found.", nil))
		return
	}

	n, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, n)
}

func (h *Handler) CreateNotification(c *gin.Context) {
	var req model.CreateNotificationRequest
	if err := validator.BindJSON(c, &req); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	n, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, n)
}
