package workflow

import (
	"encoding/json"
	"time"
)

// Conflict describes one reason an allocation cannot proceed.  It is
// not an error: the allocator treats a non-empty conflict list as a
// normal negative outcome and bounces the event back to Pending.
//
// Type is "venue" for a schedule overlap with other active
// allocations and "resource" for an oversubscribed pool.
type Conflict struct {
	Type      string   `json:"type"`
	Events    []string `json:"events,omitempty"`    // titles of colliding events (venue conflicts)
	Resource  string   `json:"resource,omitempty"`  // resource name (resource conflicts)
	Requested int      `json:"requested,omitempty"` // quantity asked for
	Available int      `json:"available,omitempty"` // quantity currently in the pool
}

// Window is the schedule slice of an active allocation, paired with
// the title of the event holding it.  The repository layer loads
// these for the conflict scan.
type Window struct {
	EventID uint64
	Title   string
	Start   time.Time
	End     time.Time
}

// ResourceDemand is one resource request of the event under
// allocation together with the pool's current availability.
type ResourceDemand struct {
	ResourceID uint64
	Name       string
	Requested  int
	Available  int
}

// Overlaps reports whether two inclusive time intervals intersect.
// Touching endpoints count as an overlap (aStart <= bEnd && aEnd >= bStart).
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !aStart.After(bEnd) && !aEnd.Before(bStart)
}

// FindConflicts returns every reason the event may not be allocated
// for the given schedule window.  The scan over active allocations is
// global rather than scoped to a candidate venue: any other event
// running in an overlapping window conflicts, regardless of which
// venue it occupies.  That mirrors the system's single-event-per-slot
// policy; see DESIGN.md before changing it.
//
// Windows belonging to the event itself are ignored so a re-run of
// the allocator cannot collide with its own allocation.
func FindConflicts(eventID uint64, start, end time.Time, active []Window, demands []ResourceDemand) []Conflict {
	var conflicts []Conflict

	var colliding []string
	for _, w := range active {
		if w.EventID == eventID {
			continue
		}
		if Overlaps(w.Start, w.End, start, end) {
			colliding = append(colliding, w.Title)
		}
	}
	if len(colliding) > 0 {
		conflicts = append(conflicts, Conflict{Type: "venue", Events: colliding})
	}

	for _, d := range demands {
		if d.Requested > d.Available {
			conflicts = append(conflicts, Conflict{
				Type:      "resource",
				Resource:  d.Name,
				Requested: d.Requested,
				Available: d.Available,
			})
		}
	}
	return conflicts
}

// Describe serializes a conflict list into the modification_comments
// text stored on a bounced event, so the coordinator sees exactly
// what blocked the allocation.
func Describe(conflicts []Conflict) string {
	b, err := json.Marshal(conflicts)
	if err != nil {
		return "Conflicts detected"
	}
	return "Conflicts detected: " + string(b)
}
