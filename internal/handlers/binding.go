package handlers

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"twentytwo/internal/models"
)

// The orderstatus tag lets binding reject unknown states before the
// handler runs; the handler keeps its own check for the error message.
func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("orderstatus", func(fl validator.FieldLevel) bool {
			return models.IsValidOrderStatus(fl.Field().String())
		})
	}
}
