package services

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sarthakkanade/campus-events-go/models"
	"github.com/sarthakkanade/campus-events-go/store"
)

func liveEvent() *models.Event {
	ev := pendingEvent()
	if err := Transition(ev, admin(), models.StatusApproved, ""); err != nil {
		panic(err)
	}
	return ev
}

func TestToggleRSVPJoinAndCancel(t *testing.T) {
	ev := liveEvent()
	user := primitive.NewObjectID()

	status, err := ToggleRSVP(ev, user, "")
	require.NoError(t, err)
	assert.Equal(t, RSVPAccepted, status)
	require.Len(t, ev.Attendees, 1)

	status, err = ToggleRSVP(ev, user, "")
	require.NoError(t, err)
	assert.Equal(t, RSVPNotAttending, status)
	assert.Empty(t, ev.Attendees)

	// Re-joining works and never duplicates the attendee.
	_, err = ToggleRSVP(ev, user, "")
	require.NoError(t, err)
	assert.Len(t, ev.Attendees, 1)
}

func TestToggleRSVPCapacity(t *testing.T) {
	ev := liveEvent()
	ev.Capacity = 1

	_, err := ToggleRSVP(ev, primitive.NewObjectID(), "")
	require.NoError(t, err)

	_, err = ToggleRSVP(ev, primitive.NewObjectID(), "")
	assert.Equal(t, KindCapacity, KindOf(err))
	assert.Len(t, ev.Attendees, 1)
}

func TestToggleRSVPCancelWorksWhenFull(t *testing.T) {
	ev := liveEvent()
	ev.Capacity = 1
	user := primitive.NewObjectID()

	_, err := ToggleRSVP(ev, user, "")
	require.NoError(t, err)

	// The existing attendee can still cancel even at capacity.
	status, err := ToggleRSVP(ev, user, "")
	require.NoError(t, err)
	assert.Equal(t, RSVPNotAttending, status)
}

func TestToggleRSVPApprovalGating(t *testing.T) {
	ev := liveEvent()
	ev.RequiresApproval = true

	status, err := ToggleRSVP(ev, primitive.NewObjectID(), "first-year, very keen")
	require.NoError(t, err)
	assert.Equal(t, RSVPPending, status)
	assert.Equal(t, models.AttendeePending, ev.Attendees[0].Status)
	assert.Equal(t, "first-year, very keen", ev.Attendees[0].Note)
}

func TestToggleRSVPCancelsPendingToo(t *testing.T) {
	ev := liveEvent()
	ev.RequiresApproval = true
	user := primitive.NewObjectID()

	_, err := ToggleRSVP(ev, user, "")
	require.NoError(t, err)

	status, err := ToggleRSVP(ev, user, "")
	require.NoError(t, err)
	assert.Equal(t, RSVPNotAttending, status)
	assert.Empty(t, ev.Attendees)
}

func TestToggleRSVPRequiresPublishedEvent(t *testing.T) {
	for _, st := range []models.EventStatus{models.StatusPending, models.StatusRejected, models.StatusCompleted} {
		ev := pendingEvent()
		ev.Status = st
		_, err := ToggleRSVP(ev, primitive.NewObjectID(), "")
		assert.Equal(t, KindInvalidState, KindOf(err), string(st))
	}
}

func TestReviewAttendee(t *testing.T) {
	ev := liveEvent()
	ev.RequiresApproval = true
	user := primitive.NewObjectID()
	_, err := ToggleRSVP(ev, user, "")
	require.NoError(t, err)

	att, err := ReviewAttendee(ev, user, models.AttendeeAccepted, organizerOf(ev))
	require.NoError(t, err)
	assert.Equal(t, models.AttendeeAccepted, att.Status)

	// Decisions are final.
	_, err = ReviewAttendee(ev, user, models.AttendeeRejected, organizerOf(ev))
	assert.Equal(t, KindConflict, KindOf(err))
}

func TestReviewAttendeeAuthorization(t *testing.T) {
	ev := liveEvent()
	ev.RequiresApproval = true
	user := primitive.NewObjectID()
	_, err := ToggleRSVP(ev, user, "")
	require.NoError(t, err)

	_, err = ReviewAttendee(ev, user, models.AttendeeAccepted, student())
	assert.Equal(t, KindUnauthorized, KindOf(err))

	_, err = ReviewAttendee(ev, user, "maybe", organizerOf(ev))
	assert.Equal(t, KindValidation, KindOf(err))

	_, err = ReviewAttendee(ev, primitive.NewObjectID(), models.AttendeeAccepted, organizerOf(ev))
	assert.Equal(t, KindNotFound, KindOf(err))
}

// Two first-time RSVPs racing for the last seat must resolve to exactly
// one success once updates go through the store's atomic read-modify-write.
func TestConcurrentRSVPAtCapacityBoundary(t *testing.T) {
	ev := liveEvent()
	ev.Capacity = 1

	events := store.NewMemoryEventStore()
	ctx := context.Background()
	require.NoError(t, events.Insert(ctx, ev))

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			user := primitive.NewObjectID()
			_, err := events.Update(ctx, ev.ID, func(e *models.Event) error {
				_, err := ToggleRSVP(e, user, "")
				return err
			})
			errs[i] = err
		}(i)
	}
	wg.Wait()

	var full, okCount int
	for _, err := range errs {
		if err == nil {
			okCount++
		} else if KindOf(err) == KindCapacity {
			full++
		}
	}
	assert.Equal(t, 1, okCount)
	assert.Equal(t, 1, full)

	final, err := events.Get(ctx, ev.ID)
	require.NoError(t, err)
	assert.Len(t, final.Attendees, 1)
}
