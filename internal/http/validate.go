package httpserver

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// fieldError is one declarative rule violation reported to the client.
type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type validationResponse struct {
	Errors []fieldError `json:"errors"`
}

var (
	uppercaseRe = regexp.MustCompile(`[A-Z]`)
	specialRe   = regexp.MustCompile(`[!@#$&*]`)
)

var fieldMessages = map[string]string{
	"name":     "Name must be between 20 and 60 characters.",
	"email":    "Please include a valid email.",
	"password": "Password must be 8-16 characters and include one uppercase letter and one special character.",
	"address":  "Address must not exceed 400 characters.",
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("accountpassword", func(fl validator.FieldLevel) bool {
		password := fl.Field().String()
		if len(password) < 8 || len(password) > 16 {
			return false
		}
		return uppercaseRe.MatchString(password) && specialRe.MatchString(password)
	})
	return v
}

// validateStruct applies the declarative field rules, translating violations
// into the {field, message} shape clients render.
func validateStruct(payload interface{}) []fieldError {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}

	invalid, ok := err.(validator.ValidationErrors)
	if !ok {
		return []fieldError{{Field: "", Message: "Invalid request payload."}}
	}

	fieldErrors := make([]fieldError, 0, len(invalid))
	for _, fe := range invalid {
		message, ok := fieldMessages[fe.Field()]
		if !ok {
			message = "Invalid value."
		}
		fieldErrors = append(fieldErrors, fieldError{Field: fe.Field(), Message: message})
	}
	return fieldErrors
}
