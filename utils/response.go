package utils

import (
	"backoffice/models"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Success responses

func SuccessResponse(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, models.APIResponse{
		Success:   true,
		Message:   message,
		Data:      data,
		Timestamp: time.Now(),
	})
}

func SuccessResponseWithPagination(c *gin.Context, message string, data interface{}, pagination *models.Pagination) {
	c.JSON(http.StatusOK, models.APIResponse{
		Success:    true,
		Message:    message,
		Data:       data,
		Pagination: pagination,
		Timestamp:  time.Now(),
	})
}

func CreatedResponse(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, models.APIResponse{
		Success:   true,
		Message:   message,
		Data:      data,
		Timestamp: time.Now(),
	})
}

// Error responses

func ErrorResponse(c *gin.Context, statusCode int, message string, details interface{}) {
	c.JSON(statusCode, models.APIResponse{
		Success: false,
		Message: message,
		Error: &models.APIError{
			Code:    errorCodeForStatus(statusCode),
			Message: message,
			Details: details,
		},
		Timestamp: time.Now(),
	})
}

func ValidationErrorResponse(c *gin.Context, validationErrors []ValidationError) {
	c.JSON(http.StatusBadRequest, models.APIResponse{
		Success: false,
		Message: "Validation failed",
		Error: &models.APIError{
			Code:    models.ErrCodeValidation,
			Message: "Validation failed",
			Details: validationErrors,
		},
		Timestamp: time.Now(),
	})
}

func BadRequestResponse(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusBadRequest, message, nil)
}

func UnauthorizedResponse(c *gin.Context, message string) {
	if message == "" {
		message = "Unauthorized access"
	}
	ErrorResponse(c, http.StatusUnauthorized, message, nil)
}

func ForbiddenResponse(c *gin.Context, message string) {
	if message == "" {
		message = "Access forbidden"
	}
	ErrorResponse(c, http.StatusForbidden, message, nil)
}

func NotFoundResponse(c *gin.Context, resource string) {
	ErrorResponse(c, http.StatusNotFound, resource+" not found", nil)
}

func TooManyRequestsResponse(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusTooManyRequests, message, nil)
}

func InternalServerErrorResponse(c *gin.Context, message string) {
	if message == "" {
		message = "Internal server error"
	}
	ErrorResponse(c, http.StatusInternalServerError, message, nil)
}

// ServiceErrorResponse maps a ServiceError (or any error) to an HTTP response.
func ServiceErrorResponse(c *gin.Context, err error) {
	if serviceErr, ok := GetServiceError(err); ok {
		status := serviceErr.StatusCode
		if status == 0 {
			status = http.StatusInternalServerError
		}
		c.JSON(status, models.APIResponse{
			Success: false,
			Message: serviceErr.Message,
			Error: &models.APIError{
				Code:    serviceErr.Code,
				Message: serviceErr.Message,
				Details: serviceErr.Details,
			},
			Timestamp: time.Now(),
		})
		return
	}
	InternalServerErrorResponse(c, "")
}

func errorCodeForStatus(statusCode int) string {
	switch statusCode {
	case http.StatusBadRequest:
		return models.ErrCodeValidation
	case http.StatusUnauthorized:
		return models.ErrCodeAuthentication
	case http.StatusForbidden:
		return models.ErrCodeAuthorization
	case http.StatusNotFound:
		return models.ErrCodeNotFound
	case http.StatusConflict:
		return models.ErrCodeConflict
	case http.StatusTooManyRequests:
		return models.ErrCodeRateLimit
	default:
		return models.ErrCodeInternal
	}
}

// CreatePagination builds the list response pagination block.
func CreatePagination(page, limit int, total int64) *models.Pagination {
	totalPages := int((total + int64(limit) - 1) / int64(limit))

	return &models.Pagination{
		CurrentPage:     page,
		TotalPages:      totalPages,
		TotalItems:      total,
		ItemsPerPage:    limit,
		HasNextPage:     page < totalPages,
		HasPreviousPage: page > 1,
	}
}
