package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"referral-network-api/internal/api/middleware"
	"referral-network-api/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

func FormatValidationErrors(err error) map[string]string {
	errorsMap := make(map[string]string)
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		errorsMap["error"] = "Invalid validation error type"
		return errorsMap
	}
	for _, fieldError := range validationErrors {
		fieldName := fieldError.Field()
		errorsMap[fieldName] = fmt.Sprintf("Field validation for '%s' failed on the '%s' tag", fieldName, fieldError.Tag())
		switch fieldError.Tag() {
		case "required":
			errorsMap[fieldName] = fmt.Sprintf("Field '%s' is required", fieldName)
		case "email":
			errorsMap[fieldName] = fmt.Sprintf("Field '%s' must be a valid email address", fieldName)
		case "url":
			errorsMap[fieldName] = fmt.Sprintf("Field '%s' must be a valid URL", fieldName)
		case "min", "gte":
			errorsMap[fieldName] = fmt.Sprintf("Field '%s' must be at least %s", fieldName, fieldError.Param())
		case "max", "lte":
			errorsMap[fieldName] = fmt.Sprintf("Field '%s' must be at most %s", fieldName, fieldError.Param())
		case "gt":
			errorsMap[fieldName] = fmt.Sprintf("Field '%s' must be greater than %s", fieldName, fieldError.Param())
		case "oneof":
			errorsMap[fieldName] = fmt.Sprintf("Field '%s' must be one of: %s", fieldName, fieldError.Param())
		case "uuid":
			errorsMap[fieldName] = fmt.Sprintf("Field '%s' must be a valid UUID", fieldName)
		}
	}
	return errorsMap
}

// bindJSON decodes and validates the body, writing the 400 itself on failure.
func bindJSON(c *gin.Context, validate *validator.Validate, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return false
	}
	if err := validate.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": FormatValidationErrors(err)})
		return false
	}
	return true
}

// bindQuery is bindJSON for query strings.
func bindQuery(c *gin.Context, validate *validator.Validate, req interface{}) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return false
	}
	if err := validate.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": FormatValidationErrors(err)})
		return false
	}
	return true
}

// currentActor builds the service-level caller from the request context.
// The role is only present behind a capability gate.
func currentActor(c *gin.Context) (services.Actor, bool) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		log.Printf("Error getting user ID from context: %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return services.Actor{}, false
	}
	role, _ := middleware.GetRoleFromContext(c)
	return services.Actor{ID: userID, Email: middleware.GetEmailFromContext(c), Role: role}, true
}

// writeFieldErrors answers 400 with per-field details when err carries them.
func writeFieldErrors(c *gin.Context, err error) bool {
	var vErr *services.ValidationError
	if errors.As(err, &vErr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": vErr.Fields})
		return true
	}
	return false
}
