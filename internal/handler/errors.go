package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"taskify/internal/domain"
	"taskify/internal/service"
)

// statusFor maps a service error to an HTTP status.
func statusFor(err error) int {
	switch domain.CodeOf(err) {
	case domain.CodeValidation, domain.CodeInvalidTransition, domain.CodeInvalidOperation:
		return http.StatusBadRequest
	case domain.CodeNotFound:
		return http.StatusNotFound
	case domain.CodeAlreadyExists:
		return http.StatusConflict
	}
	if errors.Is(err, service.ErrInvalidCredentials) {
		return http.StatusUnauthorized
	}
	return http.StatusInternalServerError
}

// respondError пишет {"error": ...}. Внутренние ошибки не раскрываются клиенту,
// но попадают в c.Errors для логгера запросов.
func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		c.AbortWithStatusJSON(status, gin.H{"error": "Internal server error"})
		return
	}
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}

func badRequest(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": msg})
}
