package controllers

import (
	"context"
	"fmt"
	"log"
	"time"

	models "github.com/sarthakkanade/campus-events-go/models"
	store "github.com/sarthakkanade/campus-events-go/store"
	utils "github.com/sarthakkanade/campus-events-go/utils"
)

// notifyOrganizer emails the event's organizer about an admin decision.
// Fire-and-forget: a mail failure never fails the request.
func notifyOrganizer(s *store.Stores, ev *models.Event, decision, reason string) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	organizer, err := s.Users.ByID(ctx, ev.OrganizerID)
	if err != nil {
		log.Printf("notify: could not load organizer for event %s: %v", ev.ID.Hex(), err)
		return
	}

	subject := fmt.Sprintf("Your event %q was %s", ev.Title, decision)
	body := fmt.Sprintf("<p>Hi %s,</p><p>Your event <b>%s</b> has been %s.</p>",
		organizer.Name, ev.Title, decision)
	if reason != "" {
		body += fmt.Sprintf("<p>Reason: %s</p>", reason)
	}

	if err := utils.SendEmail(organizer.Email, subject, body); err != nil {
		log.Printf("notify: email to %s failed: %v", organizer.Email, err)
	}
}
