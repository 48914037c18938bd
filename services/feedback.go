package services

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sarthakkanade/campus-events-go/models"
)

// AddFeedback records a one-per-user rating on a completed event and
// recomputes the running average.
func AddFeedback(ev *models.Event, userID primitive.ObjectID, rating int, comment string) error {
	if ev.Status != models.StatusCompleted {
		return errInvalidState("Feedback opens once the event is completed")
	}
	if rating < 1 || rating > 5 {
		return errValidation("rating must be between 1 and 5")
	}
	for _, f := range ev.Feedback {
		if f.UserID == userID {
			return errConflict("You have already reviewed this event")
		}
	}

	ev.Feedback = append(ev.Feedback, models.Feedback{
		UserID:  userID,
		Rating:  rating,
		Comment: comment,
		Date:    time.Now(),
	})

	total := 0
	for _, f := range ev.Feedback {
		total += f.Rating
	}
	ev.AverageRating = float64(total) / float64(len(ev.Feedback))
	return nil
}
