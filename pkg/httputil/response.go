package httputil

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/scheduling-api/pkg/errors"
)

// MessageResponse is the body used for informational and error replies.
type MessageResponse struct {
	Message string `json:"message"`
}

// RespondWithSuccess sends data as-is with 200.
func RespondWithSuccess(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// RespondWithCreated sends data as-is with 201.
func RespondWithCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// RespondWithMessage sends {"message": msg} with the given status.
func RespondWithMessage(c *gin.Context, status int, msg string) {
	c.JSON(status, MessageResponse{Message: msg})
}

// RespondWithError maps err onto a status code and body. Validation errors
// become a per-field map, everything that is not an AppError is a 500.
func RespondWithError(c *gin.Context, err error) {
	appErr, ok := errors.As(err)
	if !ok {
		log.Error().
			Err(err).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Str("request_id", c.GetString("request_id")).
			Msg("unhandled error")
		RespondWithMessage(c, http.StatusInternalServerError, "Internal server error.")
		return
	}

	switch appErr.Code {
	case errors.ErrNotFound:
		RespondWithMessage(c, http.StatusNotFound, appErr.Message)
	case errors.ErrValidation:
		c.JSON(http.StatusBadRequest, appErr.Fields)
	case errors.ErrBadRequest:
		RespondWithMessage(c, http.StatusBadRequest, appErr.Message)
	default:
		log.Error().
			Err(appErr.Err).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Str("request_id", c.GetString("request_id")).
			Msg("internal error")
		RespondWithMessage(c, http.StatusInternalServerError, "Internal server error.")
	}
}

// ParamInt64 reads a positive integer path parameter.
func ParamInt64(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// ParamUUID reads a UUID path parameter.
func ParamUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
