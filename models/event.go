package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type EventStatus string

const (
	StatusPending       EventStatus = "pending"
	StatusAdminApproved EventStatus = "admin_approved"
	StatusApproved      EventStatus = "approved"
	StatusRejected      EventStatus = "rejected"
	StatusCompleted     EventStatus = "completed"
)

// IsApprovedFamily reports whether the status counts as published.
// admin_approved is a legacy value kept readable for old documents.
func (s EventStatus) IsApprovedFamily() bool {
	return s == StatusApproved || s == StatusAdminApproved
}

type EventType string

const (
	TypeStandard EventType = "standard"
	TypeNotice   EventType = "notice"
)

type AttendeeStatus string

const (
	AttendeePending  AttendeeStatus = "pending"
	AttendeeAccepted AttendeeStatus = "accepted"
	AttendeeRejected AttendeeStatus = "rejected"
)

// NoticeCapacity is the sentinel seat bound for notices, which have no
// real RSVP semantics.
const NoticeCapacity = 1_000_000

const DefaultCapacity = 100

type Attendee struct {
	UserID        primitive.ObjectID `bson:"user" json:"user"`
	Status        AttendeeStatus     `bson:"status" json:"status"`
	Note          string             `bson:"note,omitempty" json:"note,omitempty"`
	MarkedPresent bool               `bson:"marked_present" json:"markedPresent"`
}

type AgendaItem struct {
	Title       string     `bson:"title" json:"title"`
	StartTime   string     `bson:"start_time,omitempty" json:"startTime,omitempty"`
	EndTime     string     `bson:"end_time,omitempty" json:"endTime,omitempty"`
	Description string     `bson:"description,omitempty" json:"description,omitempty"`
	Date        *time.Time `bson:"date,omitempty" json:"date,omitempty"`
}

type PollOption struct {
	Text  string `bson:"text" json:"text"`
	Votes int    `bson:"votes" json:"votes"`
}

type Poll struct {
	ID       primitive.ObjectID   `bson:"_id" json:"id"`
	Question string               `bson:"question" json:"question"`
	Options  []PollOption         `bson:"options" json:"options"`
	Active   bool                 `bson:"active" json:"active"`
	Voters   []primitive.ObjectID `bson:"voters" json:"voters"`
}

type Feedback struct {
	UserID  primitive.ObjectID `bson:"user" json:"user"`
	Rating  int                `bson:"rating" json:"rating"`
	Comment string             `bson:"comment,omitempty" json:"comment,omitempty"`
	Date    time.Time          `bson:"date" json:"date"`
}

// Session is one date + time-range block of an event. Location overrides
// the event's venue when set.
type Session struct {
	Date      time.Time `bson:"date" json:"date"`
	StartTime string    `bson:"start_time" json:"startTime"`
	EndTime   string    `bson:"end_time" json:"endTime"`
	Location  string    `bson:"location,omitempty" json:"location,omitempty"`
}

type Event struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OrganizerID primitive.ObjectID `bson:"organizer" json:"organizer"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`

	Date      time.Time  `bson:"date" json:"date"`
	EndDate   *time.Time `bson:"end_date,omitempty" json:"endDate,omitempty"`
	StartTime string     `bson:"start_time" json:"startTime"` // "HH:mm"
	EndTime   string     `bson:"end_time" json:"endTime"`     // "HH:mm"
	Location  string     `bson:"location" json:"location"`

	// Discontinuous multi-day sessions. When present these supersede the
	// primary date/start/end for calendar and conflict purposes.
	EventDates []Session `bson:"event_dates,omitempty" json:"eventDates,omitempty"`

	EventType EventType `bson:"event_type" json:"eventType"`
	Category  string    `bson:"category" json:"category"`

	Capacity         int  `bson:"capacity" json:"capacity"`
	RequiresApproval bool `bson:"requires_approval" json:"requiresApproval"`
	IsGateOpen       bool `bson:"is_gate_open" json:"isGateOpen"`

	Status          EventStatus `bson:"status" json:"status"`
	RequestNote     string      `bson:"request_note,omitempty" json:"requestNote,omitempty"`
	RejectionReason string      `bson:"rejection_reason,omitempty" json:"rejectionReason,omitempty"`

	Agenda        []AgendaItem `bson:"agenda" json:"agenda"`
	Polls         []Poll       `bson:"polls" json:"polls"`
	Attendees     []Attendee   `bson:"attendees" json:"attendees"`
	Feedback      []Feedback   `bson:"feedback" json:"feedback"`
	AverageRating float64      `bson:"average_rating" json:"averageRating"`
	GalleryImages []string     `bson:"gallery_images" json:"galleryImages"`

	// Version guards every read-modify-write against concurrent updates.
	Version   int64     `bson:"version" json:"-"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Sessions returns the full set of date/time blocks the event occupies.
// Events without explicit eventDates collapse to a single session built
// from the primary fields.
func (e *Event) Sessions() []Session {
	if len(e.EventDates) > 0 {
		out := make([]Session, len(e.EventDates))
		for i, s := range e.EventDates {
			if s.Location == "" {
				s.Location = e.Location
			}
			out[i] = s
		}
		return out
	}
	return []Session{{
		Date:      e.Date,
		StartTime: e.StartTime,
		EndTime:   e.EndTime,
		Location:  e.Location,
	}}
}

// Attendee returns the attendee record for userID, or nil.
func (e *Event) Attendee(userID primitive.ObjectID) *Attendee {
	for i := range e.Attendees {
		if e.Attendees[i].UserID == userID {
			return &e.Attendees[i]
		}
	}
	return nil
}

// PollByID returns the poll with the given id, or nil.
func (e *Event) PollByID(pollID primitive.ObjectID) *Poll {
	for i := range e.Polls {
		if e.Polls[i].ID == pollID {
			return &e.Polls[i]
		}
	}
	return nil
}
