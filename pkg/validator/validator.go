// Package validator wraps go-playground struct validation for the POS
// request types. Services call ValidateStruct before touching the store
// and surface the first failure to the client.
package validator

import (
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// ErrorResponse describes a single failed rule on a request field.
type ErrorResponse struct {
	FailedField string
	Tag         string
	Value       string
}

var (
	validate *validator.Validate
	once     sync.Once
)

func instance() *validator.Validate {
	once.Do(func() {
		validate = validator.New()
		// uuid_required rejects the zero UUID, which `required` alone
		// does not catch on a value field.
		validate.RegisterValidation("uuid_required", func(fl validator.FieldLevel) bool {
			id, ok := fl.Field().Interface().(uuid.UUID)
			return ok && id != uuid.Nil
		})
	})
	return validate
}

// ValidateStruct runs the tag rules on data and returns one entry per
// failed field, or nil when everything passes.
func ValidateStruct(data interface{}) []*ErrorResponse {
	err := instance().Struct(data)
	if err == nil {
		return nil
	}
	var errs []*ErrorResponse
	for _, fe := range err.(validator.ValidationErrors) {
		errs = append(errs, &ErrorResponse{
			FailedField: fe.StructNamespace(),
			Tag:         fe.Tag(),
			Value:       fe.Param(),
		})
	}
	return errs
}
