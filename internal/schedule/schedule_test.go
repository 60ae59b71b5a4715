package schedule

import "testing"

func TestParseClock(t *testing.T) {
	got, err := ParseClock("9:00")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "09:00:00" {
		t.Fatalf("expected 09:00:00, got %s", got)
	}

	got, err = ParseClock("17:30:00")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "17:30:00" {
		t.Fatalf("expected 17:30:00, got %s", got)
	}

	if _, err := ParseClock("25:00"); err == nil {
		t.Fatalf("expected error for 25:00")
	}
}

func TestLabel(t *testing.T) {
	label, err := Label("10:00:00", "12:00:00")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if label != "10:00 AM - 12:00 PM" {
		t.Fatalf("expected %q, got %q", "10:00 AM - 12:00 PM", label)
	}

	label, err = Label("16:00:00", "19:00:00")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if label != "4:00 PM - 7:00 PM" {
		t.Fatalf("expected %q, got %q", "4:00 PM - 7:00 PM", label)
	}
}

func TestParseLabel(t *testing.T) {
	start, end, err := ParseLabel("10:00 AM - 12:00 PM")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if start != "10:00:00" || end != "12:00:00" {
		t.Fatalf("expected 10:00:00/12:00:00, got %s/%s", start, end)
	}

	start, end, err = ParseLabel("12:00 AM - 1:00 AM")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if start != "00:00:00" || end != "01:00:00" {
		t.Fatalf("expected 00:00:00/01:00:00, got %s/%s", start, end)
	}

	if _, _, err := ParseLabel("10:00 AM"); err == nil {
		t.Fatalf("expected error for label without separator")
	}
}

func TestAddHours(t *testing.T) {
	got, err := AddHours("10:00:00", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "11:00:00" {
		t.Fatalf("expected 11:00:00, got %s", got)
	}

	got, err = AddHours("22:00:00", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "24:00:00" {
		t.Fatalf("expected 24:00:00, got %s", got)
	}

	if _, err := AddHours("23:00:00", 2); err == nil {
		t.Fatalf("expected error for booking past midnight")
	}
	if _, err := AddHours("22:30:00", 2); err == nil {
		t.Fatalf("expected error for 22:30 + 2h")
	}
}

func TestOverlaps(t *testing.T) {
	// Touching boundaries are not an overlap.
	if Overlaps("09:00:00", "12:00:00", "12:00:00", "14:00:00") {
		t.Fatalf("[09,12) and [12,14) must not overlap")
	}
	if !Overlaps("11:00:00", "13:00:00", "09:00:00", "12:00:00") {
		t.Fatalf("[11,13) and [09,12) must overlap")
	}
	if !Overlaps("09:00:00", "17:00:00", "10:00:00", "11:00:00") {
		t.Fatalf("containment must overlap")
	}
}
