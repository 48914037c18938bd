package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sarthakkanade/campus-events-go/models"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func approvedEvent(title, location, date, start, end string) *models.Event {
	return &models.Event{
		ID:        primitive.NewObjectID(),
		Title:     title,
		Location:  location,
		Date:      day(date),
		StartTime: start,
		EndTime:   end,
		Status:    models.StatusApproved,
	}
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"09:30", 570, false},
		{"23:59", 1439, false},
		{"24:00", 0, true},
		{"12:60", 0, true},
		{"9:30", 0, true}, // must be zero-padded
		{"0930", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := parseClock(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestFindConflictsOverlap(t *testing.T) {
	existing := approvedEvent("Jazz Night", "Room X", "2025-01-10", "09:00", "11:00")

	overlapping := approvedEvent("Tech Talk", "Room X", "2025-01-10", "10:00", "12:00")
	conflicts := FindConflicts(overlapping, []*models.Event{existing})
	require.Len(t, conflicts, 1)
	assert.Equal(t, "Jazz Night", conflicts[0].Title)
}

func TestFindConflictsTouchingBoundary(t *testing.T) {
	existing := approvedEvent("Jazz Night", "Room X", "2025-01-10", "09:00", "11:00")

	// 11:00-13:00 touches 09:00-11:00 but does not overlap.
	adjacent := approvedEvent("Tech Talk", "Room X", "2025-01-10", "11:00", "13:00")
	assert.Empty(t, FindConflicts(adjacent, []*models.Event{existing}))
}

func TestFindConflictsDifferentVenueOrDay(t *testing.T) {
	existing := approvedEvent("Jazz Night", "Room X", "2025-01-10", "09:00", "11:00")

	otherRoom := approvedEvent("Tech Talk", "Room Y", "2025-01-10", "10:00", "12:00")
	assert.Empty(t, FindConflicts(otherRoom, []*models.Event{existing}))

	otherDay := approvedEvent("Tech Talk", "Room X", "2025-01-11", "10:00", "12:00")
	assert.Empty(t, FindConflicts(otherDay, []*models.Event{existing}))
}

func TestFindConflictsIgnoresUnpublished(t *testing.T) {
	pending := approvedEvent("Jazz Night", "Room X", "2025-01-10", "09:00", "11:00")
	pending.Status = models.StatusPending
	rejected := approvedEvent("Open Mic", "Room X", "2025-01-10", "09:00", "11:00")
	rejected.Status = models.StatusRejected

	candidate := approvedEvent("Tech Talk", "Room X", "2025-01-10", "10:00", "12:00")
	assert.Empty(t, FindConflicts(candidate, []*models.Event{pending, rejected}))
}

func TestFindConflictsExcludesSelf(t *testing.T) {
	ev := approvedEvent("Jazz Night", "Room X", "2025-01-10", "09:00", "11:00")
	assert.Empty(t, FindConflicts(ev, []*models.Event{ev}))
}

func TestFindConflictsReturnsAllCollisions(t *testing.T) {
	a := approvedEvent("A", "Room X", "2025-01-10", "09:00", "11:00")
	b := approvedEvent("B", "Room X", "2025-01-10", "10:30", "12:00")
	c := approvedEvent("C", "Room X", "2025-01-10", "13:00", "14:00")

	candidate := approvedEvent("D", "Room X", "2025-01-10", "10:00", "11:30")
	conflicts := FindConflicts(candidate, []*models.Event{a, b, c})
	assert.Len(t, conflicts, 2)
}

func TestFindConflictsMultiSession(t *testing.T) {
	existing := approvedEvent("Hack Week", "Lab 1", "2025-03-01", "09:00", "10:00")
	existing.EventDates = []models.Session{
		{Date: day("2025-03-01"), StartTime: "09:00", EndTime: "10:00"},
		{Date: day("2025-03-03"), StartTime: "14:00", EndTime: "16:00", Location: "Lab 2"},
	}

	// Collides only with the second session's overridden venue.
	candidate := approvedEvent("Robotics Demo", "Lab 2", "2025-03-03", "15:00", "17:00")
	conflicts := FindConflicts(candidate, []*models.Event{existing})
	require.Len(t, conflicts, 1)

	// Lab 2 on the first session's day is free.
	free := approvedEvent("Robotics Demo", "Lab 2", "2025-03-01", "09:00", "10:00")
	assert.Empty(t, FindConflicts(free, []*models.Event{existing}))
}

func TestVenueConflictErrorPayload(t *testing.T) {
	a := approvedEvent("A", "Room X", "2025-01-10", "09:00", "11:00")
	err := VenueConflictError([]*models.Event{a})

	assert.Equal(t, KindConflict, KindOf(err))
	require.Len(t, err.Conflicts, 1)
	assert.Equal(t, "A", err.Conflicts[0].Title)
	assert.Equal(t, "09:00-11:00", err.Conflicts[0].Time)
}
