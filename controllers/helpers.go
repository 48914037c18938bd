package controllers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	models "github.com/sarthakkanade/campus-events-go/models"
	services "github.com/sarthakkanade/campus-events-go/services"
	store "github.com/sarthakkanade/campus-events-go/store"
)

// actorFrom reads the authenticated identity set by the auth middleware.
// Writes the 401 itself when the context is broken.
func actorFrom(c *gin.Context) (services.Actor, bool) {
	uid := c.GetString("user_id")
	id, err := primitive.ObjectIDFromHex(uid)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid user id"})
		return services.Actor{}, false
	}
	return services.Actor{
		ID:   id,
		Name: c.GetString("name"),
		Role: models.Role(c.GetString("role")),
	}, true
}

// respondError maps domain error kinds to HTTP statuses in one place.
// Anything outside the taxonomy is a generic server fault; storage
// details never leak to the client.
func respondError(c *gin.Context, err error) {
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	var domainErr *services.Error
	if !errors.As(err, &domainErr) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}

	status := http.StatusBadRequest
	switch domainErr.Kind {
	case services.KindNotFound:
		status = http.StatusNotFound
	case services.KindUnauthorized:
		status = http.StatusForbidden
	case services.KindConflict:
		status = http.StatusConflict
	case services.KindInvalidState, services.KindCapacity,
		services.KindGateClosed, services.KindValidation:
		status = http.StatusBadRequest
	}

	body := gin.H{"error": domainErr.Message}
	if len(domainErr.Conflicts) > 0 {
		body["conflicts"] = domainErr.Conflicts
	}
	c.JSON(status, body)
}

// parseDate accepts RFC3339 or plain YYYY-MM-DD.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

// opCtx is the per-request timeout wrapped around every store call.
func opCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 5*time.Second)
}
