package queue

import (
	"strings"
	"testing"
)

func TestFormatLine(t *testing.T) {
	n := Notification{
		Name:      AllocationConflict,
		EventID:   42,
		Title:     "Tech Symposium",
		Status:    "Pending",
		ActorID:   7,
		ActorRole: "Head",
		Detail:    `Conflicts detected: [{"type":"venue","events":["Career Fair"]}]`,
		EmittedAt: "2025-03-10T09:00:00Z",
	}
	line := formatLine(n)
	for _, want := range []string{
		"[2025-03-10T09:00:00Z]",
		"allocation_conflict",
		"event_id=42",
		`title="Tech Symposium"`,
		"status=Pending",
		"actor=7 (Head)",
		"Career Fair",
	} {
		if !strings.Contains(line, want) {
			t.Errorf("formatLine missing %q in %q", want, line)
		}
	}
	if !strings.HasSuffix(line, "\n") {
		t.Error("formatLine must end with a newline")
	}
}

func TestFormatLineOmitsEmptyFields(t *testing.T) {
	line := formatLine(Notification{Name: EventCreated, EventID: 1, EmittedAt: "2025-03-10T09:00:00Z"})
	for _, unwanted := range []string{"title=", "status=", "actor=", "venue=", "detail="} {
		if strings.Contains(line, unwanted) {
			t.Errorf("formatLine rendered empty field %q: %q", unwanted, line)
		}
	}
}
