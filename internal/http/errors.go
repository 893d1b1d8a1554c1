package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"bilemo-api/internal/domain"
)

type violationResponse struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// abortWithError translates domain errors into status codes. Storage
// failures are logged and answered with a generic body.
func (h *Handler) abortWithError(c *gin.Context, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		violations := make([]violationResponse, len(verr.Violations))
		for i, v := range verr.Violations {
			violations[i] = violationResponse{Field: v.Field, Message: v.Message}
		}
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": verr.Error(), "violations": violations})
	case errors.Is(err, domain.ErrForbidden):
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": domain.ErrForbidden.Error()})
	case errors.Is(err, domain.ErrNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrInvalidCredentials), errors.Is(err, domain.ErrMissingScope):
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrInvalidRegistrationSecret), errors.Is(err, domain.ErrRegistrationClosed):
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrClientAlreadyExists):
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, context.DeadlineExceeded):
		h.logger.WithError(err).WithField("request_id", c.GetString(requestIDKey)).Warn("request timed out")
		c.AbortWithStatusJSON(http.StatusGatewayTimeout, gin.H{"error": "request timed out"})
	default:
		h.logger.WithError(err).WithField("request_id", c.GetString(requestIDKey)).Error("unhandled error")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
