package services

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sarthakkanade/campus-events-go/models"
)

// CheckIn validates a scanned ticket and marks the attendee present.
// The precondition order is part of the contract: gate state first, then
// guest-list membership, then RSVP acceptance, then the duplicate-scan
// guard. Each failure is distinct so the scanner UI can tell the
// organizer exactly what went wrong at the door.
func CheckIn(ev *models.Event, scannedUserID primitive.ObjectID) (*models.Attendee, error) {
	if !ev.IsGateOpen {
		return nil, errGateClosed("Gates are closed for this event")
	}

	att := ev.Attendee(scannedUserID)
	if att == nil {
		return nil, errNotFound("Student has not RSVP'd for this event")
	}

	if att.Status != models.AttendeeAccepted {
		return nil, errUnauthorized("Access denied: RSVP is " + string(att.Status))
	}

	if att.MarkedPresent {
		return nil, errConflict("Student already checked in")
	}

	att.MarkedPresent = true
	return att, nil
}
