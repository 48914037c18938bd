package store

import (
	"context"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sarthakkanade/campus-events-go/models"
)

// MemoryEventStore is the in-memory EventStore used by tests. A single
// mutex serializes updates, which satisfies the same per-document
// atomicity contract as the Mongo CAS loop.
type MemoryEventStore struct {
	mu     sync.Mutex
	events map[primitive.ObjectID]*models.Event
}

func NewMemoryEventStore() *MemoryEventStore {
	return &MemoryEventStore{events: make(map[primitive.ObjectID]*models.Event)}
}

func cloneEvent(ev *models.Event) *models.Event {
	raw, err := bson.Marshal(ev)
	if err != nil {
		panic(err)
	}
	var out models.Event
	if err := bson.Unmarshal(raw, &out); err != nil {
		panic(err)
	}
	return &out
}

func (s *MemoryEventStore) Insert(_ context.Context, ev *models.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ev.ID.IsZero() {
		ev.ID = primitive.NewObjectID()
	}
	ev.Version = 1
	s.events[ev.ID] = cloneEvent(ev)
	return nil
}

func (s *MemoryEventStore) Get(_ context.Context, id primitive.ObjectID) (*models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ev, ok := s.events[id]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneEvent(ev), nil
}

func (s *MemoryEventStore) Update(_ context.Context, id primitive.ObjectID, fn Mutate) (*models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ev, ok := s.events[id]
	if !ok {
		return nil, ErrNotFound
	}
	next := cloneEvent(ev)
	if err := fn(next); err != nil {
		return nil, err
	}
	next.Version = ev.Version + 1
	s.events[id] = next
	return cloneEvent(next), nil
}

func (s *MemoryEventStore) Delete(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.events[id]; !ok {
		return ErrNotFound
	}
	delete(s.events, id)
	return nil
}

func (s *MemoryEventStore) ListByStatus(_ context.Context, statuses ...models.EventStatus) ([]*models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []*models.Event{}
	for _, ev := range s.events {
		for _, st := range statuses {
			if ev.Status == st {
				out = append(out, cloneEvent(ev))
				break
			}
		}
	}
	return out, nil
}

func (s *MemoryEventStore) ListByOrganizer(_ context.Context, organizerID primitive.ObjectID) ([]*models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []*models.Event{}
	for _, ev := range s.events {
		if ev.OrganizerID == organizerID {
			out = append(out, cloneEvent(ev))
		}
	}
	return out, nil
}

func (s *MemoryEventStore) ListByAttendee(_ context.Context, userID primitive.ObjectID) ([]*models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []*models.Event{}
	for _, ev := range s.events {
		if ev.Attendee(userID) != nil {
			out = append(out, cloneEvent(ev))
		}
	}
	return out, nil
}

// MemoryUserStore mirrors MongoUserStore for tests.
type MemoryUserStore struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]*models.User
}

func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{users: make(map[primitive.ObjectID]*models.User)}
}

func cloneUser(u *models.User) *models.User {
	out := *u
	out.Interests = append([]string(nil), u.Interests...)
	return &out
}

func (s *MemoryUserStore) Insert(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	s.users[u.ID] = cloneUser(u)
	return nil
}

func (s *MemoryUserStore) ByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneUser(u), nil
}

func (s *MemoryUserStore) ByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryUserStore) Search(_ context.Context, q string) ([]*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	q = strings.ToLower(q)
	out := []*models.User{}
	for _, u := range s.users {
		if u.Role == models.RoleAdmin {
			continue
		}
		if strings.Contains(strings.ToLower(u.Name), q) || strings.Contains(strings.ToLower(u.Email), q) {
			out = append(out, cloneUser(u))
		}
	}
	return out, nil
}

func (s *MemoryUserStore) UpdateProfile(_ context.Context, id primitive.ObjectID, fn func(*models.User)) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	next := cloneUser(u)
	fn(next)
	s.users[id] = next
	return cloneUser(next), nil
}
