package utils

import (
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"gameclub/models"
)

const (
	MinPublicationYear   = 1900
	PublicationYearSlack = 5
)

var (
	validate *validator.Validate

	phonePattern = regexp.MustCompile(`^\+?[0-9\s\-()]{5,20}$`)

	// now is swapped in tests that pin the current year.
	now = time.Now
)

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("pubyear", validatePublicationYear)
	_ = validate.RegisterValidation("pastyear", validatePastYear)
	_ = validate.RegisterValidation("phone", validatePhone)
	_ = validate.RegisterValidation("sessionstatus", validateSessionStatus)
}

// FieldError is a single message attached to a form field.
type FieldError struct {
	Field   string
	Message string
}

// FieldErrors keeps validation messages in the order they were found.
type FieldErrors []FieldError

func (e FieldErrors) Error() string {
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return strings.Join(parts, "; ")
}

func (e *FieldErrors) Add(field, message string) {
	*e = append(*e, FieldError{Field: field, Message: message})
}

// For returns the first message recorded for field.
func (e FieldErrors) For(field string) string {
	for _, fe := range e {
		if fe.Field == field {
			return fe.Message
		}
	}
	return ""
}

// ValidateStruct validates a struct and returns formatted errors, nil when valid.
func ValidateStruct(s interface{}) FieldErrors {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return FieldErrors{{Field: "", Message: err.Error()}}
	}
	out := make(FieldErrors, 0, len(validationErrors))
	for _, e := range validationErrors {
		out.Add(e.Field(), formatValidationError(e))
	}
	return out
}

// MaxPublicationYear is the latest year a game may be published in.
func MaxPublicationYear() int {
	return now().Year() + PublicationYearSlack
}

func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "email":
		return e.Field() + " must be a valid email"
	case "url":
		return e.Field() + " must be a valid URL"
	case "min":
		if e.Kind() == reflect.String {
			return e.Field() + " must be at least " + e.Param() + " characters"
		}
		return e.Field() + " must be at least " + e.Param()
	case "max":
		if e.Kind() == reflect.String {
			return e.Field() + " must be at most " + e.Param() + " characters"
		}
		return e.Field() + " must be at most " + e.Param()
	case "gte":
		return e.Field() + " must be greater than or equal to " + e.Param()
	case "lte":
		return e.Field() + " must be less than or equal to " + e.Param()
	case "gtefield":
		return e.Field() + " must be greater than or equal to " + e.Param()
	case "pubyear":
		return e.Field() + " must be between " + strconv.Itoa(MinPublicationYear) + " and " + strconv.Itoa(MaxPublicationYear())
	case "pastyear":
		return e.Field() + " cannot be later than " + strconv.Itoa(now().Year())
	case "phone":
		return e.Field() + " must be a valid phone number"
	case "sessionstatus":
		return e.Field() + " must be one of " + strings.Join(models.SessionStatusNames(), ", ")
	default:
		return e.Field() + " is invalid"
	}
}

func validatePublicationYear(fl validator.FieldLevel) bool {
	year := int(fl.Field().Int())
	return year >= MinPublicationYear && year <= MaxPublicationYear()
}

func validatePastYear(fl validator.FieldLevel) bool {
	return int(fl.Field().Int()) <= now().Year()
}

func validatePhone(fl validator.FieldLevel) bool {
	return phonePattern.MatchString(fl.Field().String())
}

func validateSessionStatus(fl validator.FieldLevel) bool {
	return models.SessionStatus(fl.Field().String()).Valid()
}
