package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	models "github.com/sarthakkanade/campus-events-go/models"
	services "github.com/sarthakkanade/campus-events-go/services"
	store "github.com/sarthakkanade/campus-events-go/store"
	utils "github.com/sarthakkanade/campus-events-go/utils"
)

type sessionInput struct {
	Date      string `json:"date" binding:"required"`
	StartTime string `json:"startTime" binding:"required"`
	EndTime   string `json:"endTime" binding:"required"`
	Location  string `json:"location"`
}

func parseSessions(in []sessionInput) ([]models.Session, error) {
	if in == nil {
		return nil, nil
	}
	out := make([]models.Session, len(in))
	for i, s := range in {
		d, err := parseDate(s.Date)
		if err != nil {
			return nil, err
		}
		out[i] = models.Session{Date: d, StartTime: s.StartTime, EndTime: s.EndTime, Location: s.Location}
	}
	return out, nil
}

// ---------------- CREATE ----------------
func CreateEvent(s *store.Stores) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := actorFrom(c)
		if !ok {
			return
		}

		var input struct {
			Title            string              `json:"title" binding:"required"`
			Description      string              `json:"description" binding:"required"`
			Date             string              `json:"date" binding:"required"`
			EndDate          *string             `json:"endDate"`
			StartTime        string              `json:"startTime" binding:"required"`
			EndTime          string              `json:"endTime" binding:"required"`
			Location         string              `json:"location" binding:"required"`
			EventType        string              `json:"eventType"`
			Category         string              `json:"category"`
			Capacity         int                 `json:"capacity"`
			RequiresApproval bool                `json:"requiresApproval"`
			Agenda           []models.AgendaItem `json:"agenda"`
			EventDates       []sessionInput      `json:"eventDates"`
			RequestNote      string              `json:"requestNote"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		date, err := parseDate(input.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date format, use RFC3339 or YYYY-MM-DD"})
			return
		}
		var endDate *time.Time
		if input.EndDate != nil && *input.EndDate != "" {
			parsed, err := parseDate(*input.EndDate)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid endDate format, use RFC3339 or YYYY-MM-DD"})
				return
			}
			endDate = &parsed
		}
		sessions, err := parseSessions(input.EventDates)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid session date, use RFC3339 or YYYY-MM-DD"})
			return
		}

		event := models.Event{
			Title:            input.Title,
			Description:      input.Description,
			Date:             date,
			EndDate:          endDate,
			StartTime:        input.StartTime,
			EndTime:          input.EndTime,
			Location:         input.Location,
			EventType:        models.EventType(input.EventType),
			Category:         input.Category,
			Capacity:         input.Capacity,
			RequiresApproval: input.RequiresApproval,
			Agenda:           input.Agenda,
			EventDates:       sessions,
			RequestNote:      input.RequestNote,
		}
		if err := services.PrepareCreate(&event, actor); err != nil {
			respondError(c, err)
			return
		}

		ctx, cancel := opCtx()
		defer cancel()
		if err := s.Events.Insert(ctx, &event); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create event"})
			return
		}

		c.JSON(http.StatusCreated, event)
	}
}

// ---------------- LIST ----------------

// ListEvents is public and only shows published events.
func ListEvents(s *store.Stores) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := opCtx()
		defer cancel()

		events, err := store.ListPublished(ctx, s.Events)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch events"})
			return
		}
		c.JSON(http.StatusOK, events)
	}
}

// ListPendingEvents is the admin review queue.
func ListPendingEvents(s *store.Stores) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := opCtx()
		defer cancel()

		events, err := s.Events.ListByStatus(ctx, models.StatusPending)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch events"})
			return
		}
		c.JSON(http.StatusOK, events)
	}
}

// ListMyEvents returns everything the calling organizer has proposed,
// whatever the status.
func ListMyEvents(s *store.Stores) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := actorFrom(c)
		if !ok {
			return
		}

		ctx, cancel := opCtx()
		defer cancel()

		events, err := s.Events.ListByOrganizer(ctx, actor.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch events"})
			return
		}
		c.JSON(http.StatusOK, events)
	}
}

// ---------------- GET ----------------
func GetEvent(s *store.Stores) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
			return
		}

		ctx, cancel := opCtx()
		defer cancel()

		event, err := s.Events.Get(ctx, id)
		if err != nil {
			respondError(c, err)
			return
		}

		organizerName := ""
		if u, err := s.Users.ByID(ctx, event.OrganizerID); err == nil {
			organizerName = u.Name
		}

		c.JSON(http.StatusOK, gin.H{"event": event, "organizer_name": organizerName})
	}
}

// ---------------- LIFECYCLE ----------------

// ApproveEvent publishes a pending event after the venue-conflict check.
// The check runs before any write: a non-empty conflict list aborts the
// approval with the full collision list and no state change.
func ApproveEvent(s *store.Stores) gin.HandlerFunc {
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

		ctx, cancel := opCtx()
		defer cancel()

		candidate, err := s.Events.Get(ctx, id)
		if err != nil {
			respondError(c, err)
			return
		}

		published, err := store.ListPublished(ctx, s.Events)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not check venue availability"})
			return
		}
		if conflicts := services.FindConflicts(candidate, published); len(conflicts) > 0 {
			respondError(c, services.VenueConflictError(conflicts))
			return
		}

		updated, err := s.Events.Update(ctx, id, func(ev *models.Event) error {
			return services.Transition(ev, actor, models.StatusApproved, "")
		})
		if err != nil {
			respondError(c, err)
			return
		}

		go notifyOrganizer(s, updated, "approved", "")

		c.JSON(http.StatusOK, updated)
	}
}

func RejectEvent(s *store.Stores) gin.HandlerFunc {
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
			Reason string `json:"reason"`
		}
		_ = c.ShouldBindJSON(&input)

		ctx, cancel := opCtx()
		defer cancel()

		updated, err := s.Events.Update(ctx, id, func(ev *models.Event) error {
			return services.Transition(ev, actor, models.StatusRejected, input.Reason)
		})
		if err != nil {
			respondError(c, err)
			return
		}

		go notifyOrganizer(s, updated, "rejected", updated.RejectionReason)

		c.JSON(http.StatusOK, updated)
	}
}

func CompleteEvent(s *store.Stores) gin.HandlerFunc {
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

		ctx, cancel := opCtx()
		defer cancel()

		updated, err := s.Events.Update(ctx, id, func(ev *models.Event) error {
			return services.Transition(ev, actor, models.StatusCompleted, "")
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}

// ---------------- UPDATE ----------------
func UpdateEvent(s *store.Stores) gin.HandlerFunc {
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
			Title       *string              `json:"title"`
			Description *string              `json:"description"`
			Date        *string              `json:"date"`
			EndDate     *string              `json:"endDate"`
			StartTime   *string              `json:"startTime"`
			EndTime     *string              `json:"endTime"`
			Location    *string              `json:"location"`
			Capacity    *int                 `json:"capacity"`
			Agenda      *[]models.AgendaItem `json:"agenda"`
			EventDates  *[]sessionInput      `json:"eventDates"`
			RequestNote *string              `json:"requestNote"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		edit := services.EventEdit{
			Title:       input.Title,
			Description: input.Description,
			StartTime:   input.StartTime,
			EndTime:     input.EndTime,
			Location:    input.Location,
			Capacity:    input.Capacity,
			Agenda:      input.Agenda,
			RequestNote: input.RequestNote,
		}
		if input.Date != nil {
			d, err := parseDate(*input.Date)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date format, use RFC3339 or YYYY-MM-DD"})
				return
			}
			edit.Date = &d
		}
		if input.EndDate != nil {
			d, err := parseDate(*input.EndDate)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid endDate format, use RFC3339 or YYYY-MM-DD"})
				return
			}
			edit.EndDate = &d
		}
		if input.EventDates != nil {
			sessions, err := parseSessions(*input.EventDates)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid session date, use RFC3339 or YYYY-MM-DD"})
				return
			}
			edit.EventDates = &sessions
		}

		ctx, cancel := opCtx()
		defer cancel()

		updated, err := s.Events.Update(ctx, id, func(ev *models.Event) error {
			return services.ApplyEdit(ev, actor, edit)
		})
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Event updated successfully",
			"event":   updated,
		})
	}
}

// ---------------- GATE ----------------
func ToggleGate(s *store.Stores) gin.HandlerFunc {
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

		ctx, cancel := opCtx()
		defer cancel()

		updated, err := s.Events.Update(ctx, id, func(ev *models.Event) error {
			return services.ToggleGate(ev, actor)
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"isGateOpen": updated.IsGateOpen})
	}
}

// ---------------- DELETE ----------------
func DeleteEvent(s *store.Stores) gin.HandlerFunc {
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

		ctx, cancel := opCtx()
		defer cancel()

		existing, err := s.Events.Get(ctx, id)
		if err != nil {
			respondError(c, err)
			return
		}
		if err := services.CanDelete(existing, actor); err != nil {
			respondError(c, err)
			return
		}

		if err := s.Events.Delete(ctx, id); err != nil {
			respondError(c, err)
			return
		}

		// Best effort, the event itself is already gone.
		for _, img := range existing.GalleryImages {
			utils.DeleteFromCloudinary(img)
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "event deleted successfully",
			"id":      id.Hex(),
		})
	}
}

// ---------------- GALLERY ----------------
func UploadGallery(s *store.Stores) gin.HandlerFunc {
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

		form, err := c.MultipartForm()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid form data"})
			return
		}

		var imageURLs []string
		for _, fileHeader := range form.File["images"] {
			file, err := fileHeader.Open()
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to open file"})
				return
			}
			url, err := utils.UploadToCloudinary(file, fileHeader)
			file.Close()
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{
					"error":   "image upload failed",
					"details": err.Error(),
					"file":    fileHeader.Filename,
				})
				return
			}
			imageURLs = append(imageURLs, url)
		}
		if len(imageURLs) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no images provided"})
			return
		}

		ctx, cancel := opCtx()
		defer cancel()

		updated, err := s.Events.Update(ctx, id, func(ev *models.Event) error {
			return services.AppendGallery(ev, actor, imageURLs)
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}
