package handlers

import (
	"fmt"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stayvelle/hotel-backend/internal/models"
)

// RegisterValidators adds the status and type tags used in request bodies to
// gin's validator engine. Call it once before serving.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}
	return registerTags(v)
}

func registerTags(v *validator.Validate) error {
	tags := map[string]validator.Func{
		"room_status": func(fl validator.FieldLevel) bool {
			return models.RoomStatus(fl.Field().String()).Valid()
		},
		"room_type": func(fl validator.FieldLevel) bool {
			return models.RoomType(fl.Field().String()).Valid()
		},
		"booking_status": func(fl validator.FieldLevel) bool {
			return models.BookingStatus(fl.Field().String()).Valid()
		},
		"task_status": func(fl validator.FieldLevel) bool {
			return models.TaskStatus(fl.Field().String()).Valid()
		},
	}
	for tag, fn := range tags {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("failed to register %s validation: %w", tag, err)
		}
	}
	return nil
}
