package responses

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"chat-server/internal/infrastructure/logger"
	"chat-server/internal/utils/platformerrors"
)

// ErrorResponse is the uniform error payload returned by every endpoint.
type ErrorResponse struct {
	Code          string `json:"code"`
	Error         string `json:"error"`
	Message       string `json:"message,omitempty"`
	ErrorInstance error  `json:"-"`
	RequestID     string `json:"request_id,omitempty"`
}

// HandleError maps a platform error onto its HTTP status and writes the
// uniform payload. Non-platform errors are treated as internal.
func HandleError(reqCtx *gin.Context, err error, message string) {
	log := logger.GetLogger()

	var platformErr *platformerrors.PlatformError
	if errors.As(err, &platformErr) {
		platformerrors.LogError(log, platformErr)
		status := platformerrors.ErrorTypeToHTTPStatus(platformErr.Type)
		reqCtx.AbortWithStatusJSON(status, ErrorResponse{
			Code:          platformErr.GetUUID(),
			Error:         string(platformErr.Type),
			Message:       message,
			ErrorInstance: platformErr,
			RequestID:     platformErr.GetRequestID(),
		})
		return
	}

	log.Error().Err(err).Str("message", message).Msg("unclassified handler error")
	reqCtx.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
		Code:          "00000000-0000-0000-0000-000000000000",
		Error:         string(platformerrors.ErrorTypeInternal),
		Message:       message,
		ErrorInstance: err,
	})
}

// HandleNewError creates a route-layer platform error and writes it out.
func HandleNewError(reqCtx *gin.Context, errorType platformerrors.ErrorType, message string, uuid string) {
	err := platformerrors.NewError(
		reqCtx.Request.Context(),
		platformerrors.LayerRoute,
		errorType,
		message,
		nil,
		uuid,
	)
	HandleError(reqCtx, err, message)
}
