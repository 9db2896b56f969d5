package response

import (
	"net/http"

	"venuebook/internal/shared/apperr"

	"github.com/gin-gonic/gin"
)

func RespondJSON(c *gin.Context, status string, code int, message string, data interface{}, errors interface{}) {
	c.JSON(code, StandardApiResponse{
		Status:     status,
		StatusCode: code,
		Message:    message,
		Data:       data,
		Errors:     errors,
	})
}

// RespondError writes err using the HTTP status of its apperr kind
func RespondError(c *gin.Context, err error) {
	code := StatusForKind(apperr.KindOf(err))
	if code >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	RespondJSON(c, StatusError, code, apperr.MessageOf(err), nil, gin.H{"kind": apperr.KindOf(err)})
}

// StatusForKind maps a failure kind to its HTTP status code
func StatusForKind(kind apperr.Kind) int {
	switch kind {
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindInvalidState, apperr.KindConflict:
		return http.StatusConflict
	case apperr.KindValidation:
		return http.StatusBadRequest
	case apperr.KindForbidden:
		return http.StatusForbidden
	case apperr.KindUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
