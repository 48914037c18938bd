package store

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sarthakkanade/campus-events-go/models"
)

func seedEvent(t *testing.T, s *MemoryEventStore) *models.Event {
	t.Helper()
	ev := &models.Event{
		Title:       "Tech Talk",
		Description: "desc",
		Location:    "Room X",
		StartTime:   "09:00",
		EndTime:     "11:00",
		Status:      models.StatusApproved,
		Capacity:    10,
	}
	require.NoError(t, s.Insert(context.Background(), ev))
	return ev
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	s := NewMemoryEventStore()
	ev := seedEvent(t, s)

	got, err := s.Get(context.Background(), ev.ID)
	require.NoError(t, err)
	assert.Equal(t, ev.Title, got.Title)
	assert.EqualValues(t, 1, got.Version)

	_, err = s.Get(context.Background(), primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreUpdateIsIsolated(t *testing.T) {
	s := NewMemoryEventStore()
	ev := seedEvent(t, s)
	ctx := context.Background()

	// A failing mutator must leave the stored document untouched.
	boom := errors.New("boom")
	_, err := s.Update(ctx, ev.ID, func(e *models.Event) error {
		e.Title = "mutated"
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := s.Get(ctx, ev.ID)
	require.NoError(t, err)
	assert.Equal(t, "Tech Talk", got.Title)
	assert.EqualValues(t, 1, got.Version)
}

func TestMemoryStoreUpdateBumpsVersion(t *testing.T) {
	s := NewMemoryEventStore()
	ev := seedEvent(t, s)
	ctx := context.Background()

	updated, err := s.Update(ctx, ev.ID, func(e *models.Event) error {
		e.Title = "renamed"
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "renamed", updated.Title)
	assert.EqualValues(t, 2, updated.Version)
}

func TestMemoryStoreConcurrentUpdatesAllLand(t *testing.T) {
	s := NewMemoryEventStore()
	ev := seedEvent(t, s)
	ctx := context.Background()

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Update(ctx, ev.ID, func(e *models.Event) error {
				e.Attendees = append(e.Attendees, models.Attendee{
					UserID: primitive.NewObjectID(),
					Status: models.AttendeeAccepted,
				})
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := s.Get(ctx, ev.ID)
	require.NoError(t, err)
	assert.Len(t, got.Attendees, n)
	assert.EqualValues(t, n+1, got.Version)
}

func TestMemoryStoreListByStatus(t *testing.T) {
	s := NewMemoryEventStore()
	ctx := context.Background()

	approved := seedEvent(t, s)
	legacy := &models.Event{Title: "Legacy", Status: models.StatusAdminApproved, StartTime: "09:00", EndTime: "10:00"}
	pending := &models.Event{Title: "Pending", Status: models.StatusPending, StartTime: "09:00", EndTime: "10:00"}
	require.NoError(t, s.Insert(ctx, legacy))
	require.NoError(t, s.Insert(ctx, pending))

	published, err := ListPublished(ctx, s)
	require.NoError(t, err)
	assert.Len(t, published, 2)
	for _, ev := range published {
		assert.NotEqual(t, "Pending", ev.Title)
	}
	_ = approved
}

func TestMemoryStoreListByAttendee(t *testing.T) {
	s := NewMemoryEventStore()
	ctx := context.Background()
	ev := seedEvent(t, s)
	user := primitive.NewObjectID()

	_, err := s.Update(ctx, ev.ID, func(e *models.Event) error {
		e.Attendees = append(e.Attendees, models.Attendee{UserID: user, Status: models.AttendeeAccepted})
		return nil
	})
	require.NoError(t, err)

	history, err := s.ListByAttendee(ctx, user)
	require.NoError(t, err)
	assert.Len(t, history, 1)

	none, err := s.ListByAttendee(ctx, primitive.NewObjectID())
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestMemoryStoreDelete(t *testing.T) {
	s := NewMemoryEventStore()
	ev := seedEvent(t, s)
	ctx := context.Background()

	require.NoError(t, s.Delete(ctx, ev.ID))
	_, err := s.Get(ctx, ev.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.Delete(ctx, ev.ID), ErrNotFound)
}
