package httperr

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code      string `json:"error_code"`
	Message   string `json:"message"`
	Retryable bool   `json:"retryable,omitempty"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

// FromError renders err according to its kind. Unknown errors are treated
// as infrastructure failures and never leak their text.
func FromError(c *gin.Context, err error) {
	var be BusinessError
	if !errors.As(err, &be) {
		be = BusinessError{Kind: KindInfrastructure, Code: "internal_error", Message: "Service temporarily unavailable."}
	}

	message := be.Message
	if message == "" {
		message = defaultMessage(be.Kind)
	}

	c.JSON(StatusFor(be), HTTPError{
		Code:      be.Code,
		Message:   message,
		Retryable: be.Retryable(),
	})
}

func StatusFor(be BusinessError) int {
	switch be.Kind {
	case KindValidation:
		if strings.HasSuffix(be.Code, "_not_found") {
			return http.StatusNotFound
		}
		return http.StatusBadRequest
	case KindConflict:
		return http.StatusConflict
	case KindUnavailable:
		return http.StatusUnprocessableEntity
	}
	return http.StatusServiceUnavailable
}

func defaultMessage(k Kind) string {
	switch k {
	case KindValidation:
		return "Please fill in all required fields."
	case KindConflict:
		return "Someone just took that slot, please pick another."
	case KindUnavailable:
		return "This provider has no bookable hours."
	}
	return "Service temporarily unavailable."
}
