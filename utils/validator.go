package utils

import (
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
)

type ValidationService struct {
	validator *validator.Validate
}

type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Value   string `json:"value"`
	Message string `json:"message"`
}

func NewValidationService() *ValidationService {
	v := validator.New()

	// Register custom validators
	v.RegisterValidation("phone", validatePhone)
	v.RegisterValidation("slug", validateSlug)
	v.RegisterValidation("location_code", validateLocationCode)
	v.RegisterValidation("notification_type", validateNotificationType)
	v.RegisterValidation("notification_priority", validateNotificationPriority)
	v.RegisterValidation("notification_category", validateNotificationCategory)

	return &ValidationService{
		validator: v,
	}
}

func (vs *ValidationService) ValidateStruct(s interface{}) []ValidationError {
	var validationErrors []ValidationError

	err := vs.validator.Struct(s)
	if err != nil {
		for _, err := range err.(validator.ValidationErrors) {
			validationErrors = append(validationErrors, ValidationError{
				Field:   err.Field(),
				Tag:     err.Tag(),
				Value:   fmt.Sprintf("%v", err.Value()),
				Message: vs.getErrorMessage(err),
			})
		}
	}

	return validationErrors
}

func (vs *ValidationService) getErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return "Invalid email format"
	case "url":
		return "Invalid URL format"
	case "phone":
		return "Invalid phone number format"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters long", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters long", fe.Field(), fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", fe.Field(), fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", fe.Field(), fe.Param())
	case "slug":
		return "Slug must contain only lowercase letters, digits and hyphens"
	case "location_code":
		return "Location code must be 2-10 uppercase letters or digits"
	case "notification_type":
		return "Notification type must be one of: warning, info, success, error"
	case "notification_priority":
		return "Notification priority must be one of: high, medium, low"
	case "notification_category":
		return "Notification category must be one of: system, marketing, security, updates, general"
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}

// Custom validation functions

func validatePhone(fl validator.FieldLevel) bool {
	phone := fl.Field().String()
	cleaned := regexp.MustCompile(`\D`).ReplaceAllString(phone, "")

	if len(cleaned) < 10 || len(cleaned) > 15 {
		return false
	}

	phoneRegex := regexp.MustCompile(`^\+?[1-9]\d{9,14}$`)
	return phoneRegex.MatchString(phone)
}

func validateSlug(fl validator.FieldLevel) bool {
	slugRegex := regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
	return slugRegex.MatchString(fl.Field().String())
}

func validateLocationCode(fl validator.FieldLevel) bool {
	codeRegex := regexp.MustCompile(`^[A-Z0-9]{2,10}$`)
	return codeRegex.MatchString(fl.Field().String())
}

func validateNotificationType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "warning", "info", "success", "error":
		return true
	}
	return false
}

func validateNotificationPriority(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "high", "medium", "low":
		return true
	}
	return false
}

func validateNotificationCategory(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "system", "marketing", "security", "updates", "general":
		return true
	}
	return false
}
