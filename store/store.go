package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sarthakkanade/campus-events-go/models"
)

// ErrNotFound is returned when a referenced document does not exist.
var ErrNotFound = errors.New("document not found")

// ErrContention is returned when an optimistic update keeps losing the
// version race. Callers treat it as a transient server fault.
var ErrContention = errors.New("concurrent update contention")

// Mutate is applied to a freshly loaded Event inside an atomic
// read-modify-write. Returning an error aborts the update with no state
// change.
type Mutate func(*models.Event) error

// EventStore is the single source of truth for events. Update must be
// atomic per document: two concurrent mutations of the same event are
// serialized, so a capacity-boundary RSVP pair or a duplicate ticket scan
// can never both land.
type EventStore interface {
	Insert(ctx context.Context, ev *models.Event) error
	Get(ctx context.Context, id primitive.ObjectID) (*models.Event, error)
	Update(ctx context.Context, id primitive.ObjectID, fn Mutate) (*models.Event, error)
	Delete(ctx context.Context, id primitive.ObjectID) error

	ListByStatus(ctx context.Context, statuses ...models.EventStatus) ([]*models.Event, error)
	ListByOrganizer(ctx context.Context, organizerID primitive.ObjectID) ([]*models.Event, error)
	ListByAttendee(ctx context.Context, userID primitive.ObjectID) ([]*models.Event, error)
}

// ListPublished returns every event in the approved family, the set that
// participates in venue-conflict checks and accepts RSVPs.
func ListPublished(ctx context.Context, s EventStore) ([]*models.Event, error) {
	return s.ListByStatus(ctx, models.StatusApproved, models.StatusAdminApproved)
}

type UserStore interface {
	Insert(ctx context.Context, u *models.User) error
	ByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	ByEmail(ctx context.Context, email string) (*models.User, error)
	Search(ctx context.Context, q string) ([]*models.User, error)
	UpdateProfile(ctx context.Context, id primitive.ObjectID, fn func(*models.User)) (*models.User, error)
}

// Stores bundles the collections handed to controllers.
type Stores struct {
	Events EventStore
	Users  UserStore
}
