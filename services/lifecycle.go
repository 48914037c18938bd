package services

import (
	"time"

	"github.com/sarthakkanade/campus-events-go/models"
)

// transitionRule says who may move an event between two statuses. The
// whole lifecycle is this one table; nothing else mutates Status.
type transitionRule struct {
	adminAllowed  bool
	ownerAllowed  bool // owning organizer
	requireReason bool
}

type statusPair struct {
	from, to models.EventStatus
}

var transitions = map[statusPair]transitionRule{
	{models.StatusPending, models.StatusApproved}:        {adminAllowed: true},
	{models.StatusPending, models.StatusRejected}:        {adminAllowed: true, requireReason: true},
	{models.StatusRejected, models.StatusPending}:        {ownerAllowed: true},
	{models.StatusApproved, models.StatusCompleted}:      {adminAllowed: true, ownerAllowed: true},
	{models.StatusAdminApproved, models.StatusCompleted}: {adminAllowed: true, ownerAllowed: true},
}

// Transition moves ev to target if the lifecycle table allows it for this
// actor. Approval conflict checking is the caller's job and must happen
// before calling this with StatusApproved.
func Transition(ev *models.Event, actor Actor, target models.EventStatus, reason string) error {
	if target == models.StatusApproved && ev.Status.IsApprovedFamily() {
		return errConflict("Event already approved")
	}

	rule, ok := transitions[statusPair{ev.Status, target}]
	if !ok {
		return errInvalidState("Cannot move event from " + string(ev.Status) + " to " + string(target))
	}

	allowed := (rule.adminAllowed && actor.IsAdmin()) || (rule.ownerAllowed && actor.Owns(ev))
	if !allowed {
		return errUnauthorized("Not authorized for this transition")
	}

	if rule.requireReason && reason == "" {
		reason = "No reason provided"
	}

	ev.Status = target
	switch target {
	case models.StatusRejected:
		ev.RejectionReason = reason
	case models.StatusPending:
		ev.RejectionReason = ""
	}
	return nil
}

// PrepareCreate validates a freshly bound draft and stamps the lifecycle
// defaults. Notices skip review entirely: they are published on creation
// with an effectively unlimited seat bound.
func PrepareCreate(ev *models.Event, actor Actor) error {
	if actor.Role != models.RoleOrganizer && actor.Role != models.RoleAdmin {
		return errUnauthorized("Only organizers can create events")
	}
	if ev.Title == "" || ev.Description == "" || ev.Location == "" {
		return errValidation("title, description and location are required")
	}
	if ev.Date.IsZero() {
		return errValidation("date is required")
	}
	if err := validateTimes(ev.StartTime, ev.EndTime); err != nil {
		return err
	}
	for _, s := range ev.EventDates {
		if s.Date.IsZero() {
			return errValidation("every session needs a date")
		}
		if err := validateTimes(s.StartTime, s.EndTime); err != nil {
			return err
		}
	}

	if ev.EventType == "" {
		ev.EventType = models.TypeStandard
	}
	if ev.Category == "" {
		ev.Category = "Other"
	}

	ev.OrganizerID = actor.ID
	if ev.EventType == models.TypeNotice {
		ev.Status = models.StatusApproved
		ev.Capacity = models.NoticeCapacity
	} else {
		ev.Status = models.StatusPending
		if ev.Capacity <= 0 {
			ev.Capacity = models.DefaultCapacity
		}
	}

	ev.IsGateOpen = false
	ev.RejectionReason = ""
	ev.Attendees = []models.Attendee{}
	ev.Polls = []models.Poll{}
	ev.Feedback = []models.Feedback{}
	ev.GalleryImages = []string{}
	if ev.Agenda == nil {
		ev.Agenda = []models.AgendaItem{}
	}
	return nil
}

func validateTimes(start, end string) error {
	s, err := parseClock(start)
	if err != nil {
		return errValidation("startTime must be zero-padded HH:mm")
	}
	e, err := parseClock(end)
	if err != nil {
		return errValidation("endTime must be zero-padded HH:mm")
	}
	if e <= s {
		return errValidation("endTime must be after startTime")
	}
	return nil
}

// EventEdit carries the optional detail fields an organizer may change
// before an event goes live. Nil means "leave as is".
type EventEdit struct {
	Title       *string              `json:"title"`
	Description *string              `json:"description"`
	Date        *time.Time           `json:"date"`
	EndDate     *time.Time           `json:"endDate"`
	StartTime   *string              `json:"startTime"`
	EndTime     *string              `json:"endTime"`
	Location    *string              `json:"location"`
	Capacity    *int                 `json:"capacity"`
	Agenda      *[]models.AgendaItem `json:"agenda"`
	EventDates  *[]models.Session    `json:"eventDates"`
	RequestNote *string              `json:"requestNote"`
}

func (e *EventEdit) empty() bool {
	return e.Title == nil && e.Description == nil && e.Date == nil &&
		e.EndDate == nil && e.StartTime == nil && e.EndTime == nil &&
		e.Location == nil && e.Capacity == nil && e.Agenda == nil &&
		e.EventDates == nil && e.RequestNote == nil
}

// ApplyEdit rewrites event details. Organizers may only edit while the
// event is pending or rejected; a live schedule cannot be rewritten under
// attendees' feet. Admins edit unconditionally. Editing a rejected event
// as its organizer resubmits it: status returns to pending and the old
// rejection reason is cleared.
func ApplyEdit(ev *models.Event, actor Actor, edit EventEdit) error {
	if !actor.CanManage(ev) {
		return errUnauthorized("Not authorized to edit this event")
	}
	if edit.empty() {
		return errValidation("no fields to update")
	}

	editable := ev.Status == models.StatusPending || ev.Status == models.StatusRejected
	if !editable && !actor.IsAdmin() {
		return errInvalidState("Cannot edit a live event")
	}

	wasRejected := ev.Status == models.StatusRejected

	if edit.Title != nil {
		ev.Title = *edit.Title
	}
	if edit.Description != nil {
		ev.Description = *edit.Description
	}
	if edit.Date != nil {
		ev.Date = *edit.Date
	}
	if edit.EndDate != nil {
		ev.EndDate = edit.EndDate
	}
	if edit.StartTime != nil {
		ev.StartTime = *edit.StartTime
	}
	if edit.EndTime != nil {
		ev.EndTime = *edit.EndTime
	}
	if edit.Location != nil {
		ev.Location = *edit.Location
	}
	if edit.Capacity != nil && *edit.Capacity > 0 {
		ev.Capacity = *edit.Capacity
	}
	if edit.Agenda != nil {
		ev.Agenda = *edit.Agenda
	}
	if edit.EventDates != nil {
		ev.EventDates = *edit.EventDates
	}
	if edit.RequestNote != nil {
		ev.RequestNote = *edit.RequestNote
	}

	if err := validateTimes(ev.StartTime, ev.EndTime); err != nil {
		return err
	}
	for _, s := range ev.EventDates {
		if err := validateTimes(s.StartTime, s.EndTime); err != nil {
			return err
		}
	}

	if wasRejected && !actor.IsAdmin() {
		return Transition(ev, actor, models.StatusPending, "")
	}
	return nil
}

// ToggleGate flips the manual check-in gate. Deliberately independent of
// the scheduled time window: organizers open doors early or keep them
// shut as they see fit.
func ToggleGate(ev *models.Event, actor Actor) error {
	if !actor.CanManage(ev) {
		return errUnauthorized("Not authorized to control the gate")
	}
	ev.IsGateOpen = !ev.IsGateOpen
	return nil
}

// AppendGallery adds uploaded image URLs. Allowed at any status so
// organizers can publish photos during and after the event.
func AppendGallery(ev *models.Event, actor Actor, urls []string) error {
	if !actor.CanManage(ev) {
		return errUnauthorized("Not authorized to update the gallery")
	}
	ev.GalleryImages = append(ev.GalleryImages, urls...)
	return nil
}

// CanDelete reports whether the actor may delete the event. Deletion
// cascades to every nested sub-entity since the aggregate is one record.
func CanDelete(ev *models.Event, actor Actor) error {
	if !actor.CanManage(ev) {
		return errUnauthorized("Not authorized to delete this event")
	}
	return nil
}
