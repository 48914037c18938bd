package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	models "github.com/sarthakkanade/campus-events-go/models"
	store "github.com/sarthakkanade/campus-events-go/store"
)

// ---------------- SEARCH ----------------

// SearchUsers matches students and organizers by name or email. Admin
// accounts are hidden from search.
func SearchUsers(s *store.Stores) gin.HandlerFunc {
	return func(c *gin.Context) {
		q := c.Query("q")
		if q == "" {
			c.JSON(http.StatusOK, []models.User{})
			return
		}

		ctx, cancel := opCtx()
		defer cancel()

		users, err := s.Users.Search(ctx, q)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not search users"})
			return
		}
		c.JSON(http.StatusOK, users)
	}
}

// ---------------- PROFILE ----------------

// GetUserProfile returns a profile plus role-dependent related events:
// hosted events for organizers, attendance history for students. Admin
// profiles are private to everyone but themselves.
func GetUserProfile(s *store.Stores) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := actorFrom(c)
		if !ok {
			return
		}

		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
			return
		}

		ctx, cancel := opCtx()
		defer cancel()

		user, err := s.Users.ByID(ctx, id)
		if err != nil {
			respondError(c, err)
			return
		}

		isOwner := actor.ID == user.ID
		if user.Role == models.RoleAdmin && !isOwner {
			c.JSON(http.StatusForbidden, gin.H{"error": "this profile is private"})
			return
		}

		related := gin.H{}
		switch user.Role {
		case models.RoleOrganizer:
			events, err := s.Events.ListByOrganizer(ctx, user.ID)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch events"})
				return
			}
			related["events"] = events
		case models.RoleStudent:
			history, err := s.Events.ListByAttendee(ctx, user.ID)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch events"})
				return
			}
			related["history"] = history
		}

		c.JSON(http.StatusOK, gin.H{
			"user":        user,
			"relatedData": related,
			"isOwner":     isOwner,
		})
	}
}
