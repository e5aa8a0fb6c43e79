package common

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/karouieya6/enrollmentservice/internal/domain/enrollments"
	"github.com/karouieya6/enrollmentservice/internal/usecase"
)

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// APIResponse is the success envelope used on mutation and list-by-user
// routes: {"status": "success", "data": ...}.
type APIResponse struct {
	Status string `json:"status"`
	Data   any    `json:"data"`
}

func Success(data any) APIResponse {
	return APIResponse{Status: "success", Data: data}
}

type EnrollmentResponse struct {
	ID         int64  `json:"id"`
	UserID     int64  `json:"userId"`
	CourseID   int64  `json:"courseId"`
	EnrolledAt string `json:"enrolledAt"`
	Status     string `json:"status"`
}

type PageResponse struct {
	Items      []EnrollmentResponse `json:"items"`
	Page       int                  `json:"page"`
	Size       int                  `json:"size"`
	TotalItems int64                `json:"totalItems"`
	TotalPages int                  `json:"totalPages"`
}

func ToEnrollmentResponse(record enrollments.Enrollment) EnrollmentResponse {
	return EnrollmentResponse{
		ID:         record.ID,
		UserID:     record.UserID,
		CourseID:   record.CourseID,
		EnrolledAt: record.EnrolledAt.UTC().Format(time.RFC3339Nano),
		Status:     string(record.Status),
	}
}

func ToPageResponse(page usecase.EnrollmentPage) PageResponse {
	items := make([]EnrollmentResponse, 0, len(page.Items))
	for _, record := range page.Items {
		items = append(items, ToEnrollmentResponse(record))
	}
	return PageResponse{
		Items:      items,
		Page:       page.Page,
		Size:       page.Size,
		TotalItems: page.TotalItems,
		TotalPages: page.TotalPages,
	}
}

// ParseInt64Param reads a positive integer path parameter, writing a 400 on
// failure.
func ParseInt64Param(c *gin.Context, name string) (int64, bool) {
	raw := strings.TrimSpace(c.Param(name))
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || value <= 0 {
		WriteErrorCode(c, http.StatusBadRequest, "INVALID_ARGUMENT", name+" must be a positive integer")
		return 0, false
	}
	return value, true
}

// ParseInt64Query reads a required positive integer query parameter.
func ParseInt64Query(c *gin.Context, name string) (int64, bool) {
	raw := strings.TrimSpace(c.Query(name))
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || value <= 0 {
		WriteErrorCode(c, http.StatusBadRequest, "INVALID_ARGUMENT", name+" must be a positive integer")
		return 0, false
	}
	return value, true
}

// ParseIntQueryDefault reads an optional integer query parameter, returning
// def when absent and -1 when present but malformed.
func ParseIntQueryDefault(c *gin.Context, name string, def int) int {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return def
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return -1
	}
	return value
}

// WriteError maps a domain error to its HTTP status. Responses never leak
// internal state beyond the short code and message.
func WriteError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, enrollments.ErrUnauthorized):
		WriteErrorCode(c, http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized")
	case errors.Is(err, enrollments.ErrForbidden):
		WriteErrorCode(c, http.StatusForbidden, "FORBIDDEN", "forbidden")
	case errors.Is(err, enrollments.ErrNotFound):
		WriteErrorCode(c, http.StatusNotFound, "NOT_FOUND", "enrollment not found")
	case errors.Is(err, enrollments.ErrConflict):
		WriteErrorCode(c, http.StatusConflict, "CONFLICT", "user is already enrolled in this course")
	case errors.Is(err, enrollments.ErrInvalidInput):
		WriteErrorCode(c, http.StatusBadRequest, "INVALID_ARGUMENT", "invalid argument")
	case errors.Is(err, enrollments.ErrUpstreamUnavailable):
		WriteErrorCode(c, http.StatusBadGateway, "UPSTREAM_UNAVAILABLE", "identity service unavailable")
	default:
		WriteErrorCode(c, http.StatusInternalServerError, "INTERNAL", "internal error")
	}
}

func WriteErrorCode(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, ErrorResponse{Code: code, Message: message})
}
