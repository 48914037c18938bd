package services

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sarthakkanade/campus-events-go/models"
)

// RSVP outcome statuses returned to the client.
const (
	RSVPNotAttending = "not_attending"
	RSVPPending      = "pending"
	RSVPAccepted     = "accepted"
)

// ToggleRSVP adds or removes userID from the guest list. A second toggle
// is always a cancel, regardless of whether the first one is still
// pending organizer approval. New RSVPs are bounded by capacity with no
// waitlist: a full event hard-rejects.
func ToggleRSVP(ev *models.Event, userID primitive.ObjectID, note string) (string, error) {
	if !ev.Status.IsApprovedFamily() {
		return "", errInvalidState("Cannot RSVP to a " + string(ev.Status) + " event")
	}

	for i := range ev.Attendees {
		if ev.Attendees[i].UserID == userID {
			ev.Attendees = append(ev.Attendees[:i], ev.Attendees[i+1:]...)
			return RSVPNotAttending, nil
		}
	}

	if len(ev.Attendees) >= ev.Capacity {
		return "", errCapacity("Event is full")
	}

	status := models.AttendeeAccepted
	if ev.RequiresApproval {
		status = models.AttendeePending
	}
	ev.Attendees = append(ev.Attendees, models.Attendee{
		UserID: userID,
		Status: status,
		Note:   note,
	})
	return string(status), nil
}

// ReviewAttendee settles a pending RSVP. Decisions are final: there is no
// un-reject, the student can only cancel and RSVP again.
func ReviewAttendee(ev *models.Event, targetUserID primitive.ObjectID, decision models.AttendeeStatus, actor Actor) (*models.Attendee, error) {
	if !actor.CanManage(ev) {
		return nil, errUnauthorized("Not authorized to review attendees")
	}
	if decision != models.AttendeeAccepted && decision != models.AttendeeRejected {
		return nil, errValidation("decision must be accepted or rejected")
	}

	att := ev.Attendee(targetUserID)
	if att == nil {
		return nil, errNotFound("Attendee not found")
	}
	if att.Status != models.AttendeePending {
		return nil, errConflict("Attendee already reviewed")
	}

	att.Status = decision
	return att, nil
}
