package request

import (
	"sync"

	"lab-seat-reservation/internal/domain/reservation"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// RegisterValidators adds the custom binding tags to gin's validator engine.
// Safe to call more than once.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("seatlabel", func(fl validator.FieldLevel) bool {
			return reservation.IsValidSeatLabel(fl.Field().String())
		})
	})
}
