package validators

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const (
	TagClock = "clock"
	TagDate  = "date"
)

// IsClock accepts a 24h HH:MM time of day.
func IsClock(s string) bool {
	if len(s) != 5 {
		return false
	}
	_, err := time.Parse("15:04", s)
	return err == nil
}

// IsDate accepts a YYYY-MM-DD calendar date.
func IsDate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

// Register installs the scheduling tags on gin's validator.
func Register() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}
	return RegisterOn(v)
}

func RegisterOn(v *validator.Validate) error {
	if err := v.RegisterValidation(TagClock, func(fl validator.FieldLevel) bool {
		return IsClock(fl.Field().String())
	}); err != nil {
		return err
	}
	return v.RegisterValidation(TagDate, func(fl validator.FieldLevel) bool {
		return IsDate(fl.Field().String())
	})
}
