package services

import (
	"fmt"
	"time"

	"github.com/sarthakkanade/campus-events-go/models"
)

// parseClock converts a zero-padded 24h "HH:mm" string to minutes since
// midnight. Times are compared numerically internally; the string form is
// only a wire/storage format.
func parseClock(s string) (int, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, fmt.Errorf("invalid time %q, want HH:mm", s)
	}
	for _, i := range []int{0, 1, 3, 4} {
		if s[i] < '0' || s[i] > '9' {
			return 0, fmt.Errorf("invalid time %q, want HH:mm", s)
		}
	}
	h := int(s[0]-'0')*10 + int(s[1]-'0')
	m := int(s[3]-'0')*10 + int(s[4]-'0')
	if h > 23 || m > 59 {
		return 0, fmt.Errorf("invalid time %q, out of range", s)
	}
	return h*60 + m, nil
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}

// sessionsOverlap reports whether two sessions collide: same venue, same
// calendar day, and overlapping time ranges under the half-open rule
// (a touching boundary is not an overlap). Unparseable times never match.
func sessionsOverlap(a, b models.Session) bool {
	if a.Location != b.Location || !sameDay(a.Date, b.Date) {
		return false
	}
	aStart, err := parseClock(a.StartTime)
	if err != nil {
		return false
	}
	aEnd, err := parseClock(a.EndTime)
	if err != nil {
		return false
	}
	bStart, err := parseClock(b.StartTime)
	if err != nil {
		return false
	}
	bEnd, err := parseClock(b.EndTime)
	if err != nil {
		return false
	}
	return aStart < bEnd && aEnd > bStart
}

// FindConflicts returns every published event that double-books a venue
// against any session of the candidate. Pending and rejected events never
// block; the candidate itself is excluded.
func FindConflicts(candidate *models.Event, published []*models.Event) []*models.Event {
	var conflicts []*models.Event
	sessions := candidate.Sessions()

	for _, other := range published {
		if other.ID == candidate.ID || !other.Status.IsApprovedFamily() {
			continue
		}
		if overlapsAny(sessions, other.Sessions()) {
			conflicts = append(conflicts, other)
		}
	}
	return conflicts
}

func overlapsAny(a, b []models.Session) bool {
	for _, sa := range a {
		for _, sb := range b {
			if sessionsOverlap(sa, sb) {
				return true
			}
		}
	}
	return false
}

// VenueConflictError builds the structured approval failure listing every
// collision, so the admin UI can show all of them at once.
func VenueConflictError(conflicts []*models.Event) *Error {
	infos := make([]ConflictInfo, len(conflicts))
	for i, ev := range conflicts {
		infos[i] = ConflictInfo{
			ID:       ev.ID.Hex(),
			Title:    ev.Title,
			Time:     ev.StartTime + "-" + ev.EndTime,
			Location: ev.Location,
		}
	}
	return &Error{
		Kind:      KindConflict,
		Message:   "Venue conflict detected",
		Conflicts: infos,
	}
}
