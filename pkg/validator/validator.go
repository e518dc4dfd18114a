// Package validator wraps go-playground/validator for the POS payloads.
// Services validate inbound requests and ledger snapshots before they
// reach a repository.
package validator

import (
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type ErrorResponse struct {
	FailedField string
	Tag         string
	Value       string
}

var validate = validator.New()

// uuidRequired rejects the zero uuid. The stock `required` tag cannot
// see through the uuid.UUID array type, so foreign keys on ledger rows
// carry this rule instead.
func uuidRequired(fl validator.FieldLevel) bool {
	id, ok := fl.Field().Interface().(uuid.UUID)
	return ok && id != uuid.Nil
}

func init() {
	validate.RegisterValidation("uuid_required", uuidRequired)
}

func ValidateStruct(data interface{}) []*ErrorResponse {
	var errors []*ErrorResponse
	err := validate.Struct(data)
	if err != nil {
		for _, err := range err.(validator.ValidationErrors) {
			var element ErrorResponse
			element.FailedField = err.StructNamespace()
			element.Tag = err.Tag()
			element.Value = err.Param()
			errors = append(errors, &element)
		}
	}
	return errors
}
