package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	models "github.com/sarthakkanade/campus-events-go/models"
	services "github.com/sarthakkanade/campus-events-go/services"
	store "github.com/sarthakkanade/campus-events-go/store"
)

// ---------------- CREATE ----------------
func CreatePoll(s *store.Stores) gin.HandlerFunc {
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
			Question string   `json:"question" binding:"required"`
			Options  []string `json:"options" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := opCtx()
		defer cancel()

		updated, err := s.Events.Update(ctx, id, func(ev *models.Event) error {
			_, err := services.CreatePoll(ev, actor, input.Question, input.Options)
			return err
		})
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, updated.Polls)
	}
}

// ---------------- VOTE ----------------
func Vote(s *store.Stores) gin.HandlerFunc {
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
			PollID      string `json:"pollId" binding:"required"`
			OptionIndex *int   `json:"optionIndex" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		pollID, err := primitive.ObjectIDFromHex(input.PollID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid poll id"})
			return
		}

		ctx, cancel := opCtx()
		defer cancel()

		var voted models.Poll
		_, err = s.Events.Update(ctx, id, func(ev *models.Event) error {
			poll, err := services.Vote(ev, pollID, *input.OptionIndex, actor.ID)
			if err != nil {
				return err
			}
			voted = *poll
			return nil
		})
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, voted)
	}
}

// ---------------- CLOSE ----------------
func ClosePoll(s *store.Stores) gin.HandlerFunc {
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
		pollID, err := primitive.ObjectIDFromHex(c.Param("pollId"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid poll id"})
			return
		}

		ctx, cancel := opCtx()
		defer cancel()

		var closed models.Poll
		_, err = s.Events.Update(ctx, id, func(ev *models.Event) error {
			poll, err := services.ClosePoll(ev, pollID, actor)
			if err != nil {
				return err
			}
			closed = *poll
			return nil
		})
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, closed)
	}
}
