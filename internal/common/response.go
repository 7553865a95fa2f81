package common

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// APIResponse standard API response structure
type APIResponse struct {
	Data  interface{} `json:"data"`
	Meta  *Meta       `json:"meta,omitempty"`
	Error *ErrorInfo  `json:"error,omitempty"`
}

// Meta pagination and additional metadata
type Meta struct {
	Page  int   `json:"page,omitempty"`
	Limit int   `json:"limit,omitempty"`
	Total int64 `json:"total,omitempty"`
}

// ErrorInfo error details
type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// SuccessResponse returns a successful JSON response
func SuccessResponse(c *gin.Context, data interface{}, meta *Meta) {
	c.JSON(http.StatusOK, APIResponse{
		Data: data,
		Meta: meta,
	})
}

// CreatedResponse returns a 201 JSON response
func CreatedResponse(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{Data: data})
}

// ErrorResponse returns an error JSON response
func ErrorResponse(c *gin.Context, status int, message string, err error) {
	errInfo := &ErrorInfo{
		Code:    getErrorCode(status),
		Message: message,
	}
	if err != nil {
		errInfo.Details = err.Error()
	}

	c.JSON(status, gin.H{
		"error": errInfo,
	})
}

// FailResponse maps a business error to an HTTP status and responds.
// The error kinds come from errors.go; handlers should not invent statuses.
func FailResponse(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrMemberNotFound):
		ErrorResponse(c, http.StatusNotFound, "not found", err)
	case errors.Is(err, ErrConcurrencyConflict), errors.Is(err, ErrStaleParent):
		ErrorResponse(c, http.StatusConflict, "conflict", err)
	case errors.Is(err, ErrAlreadyCreated), errors.Is(err, ErrAlreadyDeleted),
		errors.Is(err, ErrValidation), errors.Is(err, ErrInvalidInput),
		errors.Is(err, ErrMemberExists):
		ErrorResponse(c, http.StatusBadRequest, "invalid request", err)
	case errors.Is(err, ErrPermissionDenied), errors.Is(err, ErrForbidden):
		ErrorResponse(c, http.StatusForbidden, "forbidden", err)
	case errors.Is(err, ErrUnauthorized), errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, ErrInvalidToken), errors.Is(err, ErrExpiredToken):
		ErrorResponse(c, http.StatusUnauthorized, "unauthorized", err)
	default:
		ErrorResponse(c, http.StatusInternalServerError, "internal error", err)
	}
}

// getErrorCode generates error code from HTTP status
func getErrorCode(status int) string {
	switch status {
	case 400:
		return "BAD_REQUEST"
	case 401:
		return "UNAUTHORIZED"
	case 403:
		return "FORBIDDEN"
	case 404:
		return "NOT_FOUND"
	case 409:
		return "CONFLICT"
	case 500:
		return "INTERNAL_SERVER_ERROR"
	default:
		return "ERROR"
	}
}
