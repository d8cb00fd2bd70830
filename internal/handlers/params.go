package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/BruksfildServices01/booking-engine/internal/httperr"
)

func uintParam(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || v == 0 {
		httperr.BadRequest(c, "invalid_"+name, "Invalid identifier.")
		return 0, false
	}
	return uint(v), true
}

// bindError separates rule violations, reported under code, from bodies that
// are not JSON at all.
func bindError(c *gin.Context, err error, code, message string) {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		httperr.BadRequest(c, code, message)
		return
	}
	httperr.BadRequest(c, "invalid_request", "Malformed request body.")
}
