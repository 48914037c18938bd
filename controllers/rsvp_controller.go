package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	models "github.com/sarthakkanade/campus-events-go/models"
	services "github.com/sarthakkanade/campus-events-go/services"
	store "github.com/sarthakkanade/campus-events-go/store"
)

// ---------------- RSVP ----------------

// ToggleRSVP flips the caller's attendance. The capacity bound is
// enforced inside the store's atomic update, so two racing RSVPs on the
// last seat cannot both get in.
func ToggleRSVP(s *store.Stores) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := actorFrom(c)
		if !ok {
			return
		}
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
			return
		}

		var input struct {
			Note string `json:"note"`
		}
		_ = c.ShouldBindJSON(&input)

		ctx, cancel := opCtx()
		defer cancel()

		var status string
		updated, err := s.Events.Update(ctx, id, func(ev *models.Event) error {
			st, err := services.ToggleRSVP(ev, actor.ID, input.Note)
			status = st
			return err
		})
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    status,
			"attendees": updated.Attendees,
		})
	}
}

// ReviewAttendee lets the organizer settle a pending RSVP.
func ReviewAttendee(s *store.Stores) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := actorFrom(c)
		if !ok {
			return
		}
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
			return
		}
		targetID, err := primitive.ObjectIDFromHex(c.Param("userId"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
			return
		}

		var input struct {
			Decision string `json:"decision" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := opCtx()
		defer cancel()

		var reviewed models.Attendee
		_, err = s.Events.Update(ctx, id, func(ev *models.Event) error {
			att, err := services.ReviewAttendee(ev, targetID, models.AttendeeStatus(input.Decision), actor)
			if err != nil {
				return err
			}
			reviewed = *att
			return nil
		})
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, reviewed)
	}
}

// ---------------- CHECK-IN ----------------

// ScanTicket verifies a QR scan at the door and marks the student
// present. Duplicate scans of the same ticket are serialized by the
// store update, so exactly one reports success.
func ScanTicket(s *store.Stores) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := actorFrom(c); !ok {
			return
		}

		var input struct {
			EventID string `json:"eventId" binding:"required"`
			UserID  string `json:"userId" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		eventID, err := primitive.ObjectIDFromHex(input.EventID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
			return
		}
		scannedID, err := primitive.ObjectIDFromHex(input.UserID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
			return
		}

		ctx, cancel := opCtx()
		defer cancel()

		_, err = s.Events.Update(ctx, eventID, func(ev *models.Event) error {
			_, err := services.CheckIn(ev, scannedID)
			return err
		})
		if err != nil {
			respondError(c, err)
			return
		}

		studentName := ""
		if u, err := s.Users.ByID(ctx, scannedID); err == nil {
			studentName = u.Name
		}

		c.JSON(http.StatusOK, gin.H{
			"success":     true,
			"message":     "Check-in successful",
			"studentName": studentName,
		})
	}
}

// ---------------- FEEDBACK ----------------
func AddFeedback(s *store.Stores) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := actorFrom(c)
		if !ok {
			return
		}
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
			return
		}

		var input struct {
			Rating  int    `json:"rating" binding:"required"`
			Comment string `json:"comment"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := opCtx()
		defer cancel()

		updated, err := s.Events.Update(ctx, id, func(ev *models.Event) error {
			return services.AddFeedback(ev, actor.ID, input.Rating, input.Comment)
		})
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message":       "Feedback added",
			"averageRating": updated.AverageRating,
		})
	}
}
