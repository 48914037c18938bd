package services

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sarthakkanade/campus-events-go/models"
)

// Actor is the verified identity attached to a request by the auth
// middleware.
type Actor struct {
	ID   primitive.ObjectID
	Name string
	Role models.Role
}

func (a Actor) IsAdmin() bool { return a.Role == models.RoleAdmin }

// Owns reports whether the actor is the event's organizer.
func (a Actor) Owns(ev *models.Event) bool { return a.ID == ev.OrganizerID }

// CanManage reports whether the actor may run day-of and administrative
// operations on the event (owning organizer or any admin).
func (a Actor) CanManage(ev *models.Event) bool { return a.IsAdmin() || a.Owns(ev) }
