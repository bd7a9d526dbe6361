// internal/utils/validator.go
package utils

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

var (
	phoneRegex   = regexp.MustCompile(`^(\+91[\-\s]?)?[0]?(91)?[6789]\d{9}$`)
	pincodeRegex = regexp.MustCompile(`^[1-9][0-9]{5}$`)
)

func init() {
	validate = validator.New()
	validate.RegisterValidation("in_phone", validateIndianPhone)
	validate.RegisterValidation("in_pincode", validateIndianPincode)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func validateIndianPhone(fl validator.FieldLevel) bool {
	return phoneRegex.MatchString(fl.Field().String())
}

func validateIndianPincode(fl validator.FieldLevel) bool {
	return pincodeRegex.MatchString(fl.Field().String())
}

type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

func GetValidationErrors(err error) []ValidationError {
	var validationErrors []ValidationError

	if validationErrs, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrs {
			validationErrors = append(validationErrors, ValidationError{
				Field:   strings.ToLower(e.Field()),
				Tag:     e.Tag(),
				Message: getValidationMessage(e),
			})
		}
	}

	return validationErrors
}

func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "email":
		return "Invalid email format"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " cannot exceed " + e.Param()
	case "oneof":
		return e.Field() + " must be one of: " + e.Param()
	case "in_phone":
		return "Invalid Indian phone number"
	case "in_pincode":
		return "Invalid Indian pincode"
	default:
		return e.Field() + " is invalid"
	}
}
