package validators

import (
	"errors"
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var hhmmPattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// IsHHMM reports whether s is a zero-padded 24h wall-clock time.
func IsHHMM(s string) bool {
	return hhmmPattern.MatchString(s)
}

// Register installs the custom binding rules on gin's validator. It is safe
// to call more than once.
func Register() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("validators: gin binding engine is not validator/v10")
	}

	return v.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
		return IsHHMM(fl.Field().String())
	})
}
