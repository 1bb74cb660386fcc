package workflow

import (
	"strings"
	"testing"
	"time"
)

func ts(hour int) time.Time {
	return time.Date(2025, 3, 10, hour, 0, 0, 0, time.UTC)
}

func TestOverlapsInclusiveBounds(t *testing.T) {
	cases := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd time.Time
		want                       bool
	}{
		{"disjoint before", ts(8), ts(9), ts(10), ts(11), false},
		{"disjoint after", ts(12), ts(13), ts(10), ts(11), false},
		{"contained", ts(10), ts(11), ts(9), ts(12), true},
		{"partial", ts(9), ts(11), ts(10), ts(12), true},
		{"touching end", ts(8), ts(10), ts(10), ts(12), true}, // inclusive bounds: shared endpoint conflicts
		{"touching start", ts(12), ts(14), ts(10), ts(12), true},
		{"identical", ts(10), ts(12), ts(10), ts(12), true},
	}
	for _, c := range cases {
		if got := Overlaps(c.aStart, c.aEnd, c.bStart, c.bEnd); got != c.want {
			t.Errorf("%s: Overlaps = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestFindConflictsVenueOverlap(t *testing.T) {
	active := []Window{
		{EventID: 7, Title: "Robotics Expo", Start: ts(9), End: ts(12)},
		{EventID: 8, Title: "Career Fair", Start: ts(18), End: ts(20)},
	}
	got := FindConflicts(1, ts(11), ts(13), active, nil)
	if len(got) != 1 {
		t.Fatalf("conflicts = %d, want 1", len(got))
	}
	if got[0].Type != "venue" {
		t.Fatalf("conflict type = %q, want venue", got[0].Type)
	}
	if len(got[0].Events) != 1 || got[0].Events[0] != "Robotics Expo" {
		t.Fatalf("colliding events = %v, want [Robotics Expo]", got[0].Events)
	}
}

func TestFindConflictsIgnoresOwnAllocation(t *testing.T) {
	active := []Window{{EventID: 1, Title: "Same Event", Start: ts(9), End: ts(12)}}
	if got := FindConflicts(1, ts(10), ts(11), active, nil); len(got) != 0 {
		t.Fatalf("conflicts = %v, want none for the event's own window", got)
	}
}

func TestFindConflictsResourceShortfall(t *testing.T) {
	demands := []ResourceDemand{
		{ResourceID: 1, Name: "Projector", Requested: 3, Available: 5},
		{ResourceID: 2, Name: "Chairs", Requested: 400, Available: 250},
	}
	got := FindConflicts(1, ts(9), ts(10), nil, demands)
	if len(got) != 1 {
		t.Fatalf("conflicts = %d, want 1", len(got))
	}
	c := got[0]
	if c.Type != "resource" || c.Resource != "Chairs" || c.Requested != 400 || c.Available != 250 {
		t.Fatalf("unexpected resource conflict: %+v", c)
	}
}

func TestFindConflictsUnion(t *testing.T) {
	active := []Window{{EventID: 2, Title: "Hackathon", Start: ts(9), End: ts(17)}}
	demands := []ResourceDemand{{ResourceID: 1, Name: "Mics", Requested: 10, Available: 2}}
	got := FindConflicts(1, ts(10), ts(12), active, demands)
	if len(got) != 2 {
		t.Fatalf("conflicts = %d, want venue+resource union of 2", len(got))
	}
	if got[0].Type != "venue" || got[1].Type != "resource" {
		t.Fatalf("conflict order = %s,%s, want venue,resource", got[0].Type, got[1].Type)
	}
}

func TestFindConflictsNone(t *testing.T) {
	active := []Window{{EventID: 2, Title: "Hackathon", Start: ts(9), End: ts(10)}}
	demands := []ResourceDemand{{ResourceID: 1, Name: "Mics", Requested: 2, Available: 2}}
	if got := FindConflicts(1, ts(11), ts(12), active, demands); len(got) != 0 {
		t.Fatalf("conflicts = %v, want none", got)
	}
}

func TestDescribe(t *testing.T) {
	s := Describe([]Conflict{{Type: "resource", Resource: "Mics", Requested: 10, Available: 2}})
	if !strings.HasPrefix(s, "Conflicts detected: ") {
		t.Fatalf("Describe prefix missing: %q", s)
	}
	if !strings.Contains(s, `"resource":"Mics"`) || !strings.Contains(s, `"requested":10`) {
		t.Fatalf("Describe payload missing fields: %q", s)
	}
}
