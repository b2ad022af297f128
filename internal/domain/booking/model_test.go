package booking

import "testing"

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"10:30", 630, false},
		{"23:59", 1439, false},
		{"24:00", 0, true},
		{"10:60", 0, true},
		{"1030", 0, true},
		{"ab:cd", 0, true},
	}
	for _, tt := range tests {
		got, err := parseClock(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseClock(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err == nil && got != tt.want {
			t.Errorf("parseClock(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestOverlaps(t *testing.T) {
	slots := BookedSlots{BookedTimes: []string{"10:00", "14:30"}, DurationMinutes: 20}

	tests := []struct {
		in   string
		want bool
	}{
		{"10:00", true},  // exact collision
		{"10:10", true},  // inside the window
		{"09:45", true},  // would run into 10:00
		{"10:20", false}, // starts as the window closes
		{"09:40", false},
		{"14:45", true},
		{"14:50", false},
		{"bogus", false}, // unparseable input is not flagged
	}
	for _, tt := range tests {
		if got := slots.Overlaps(tt.in); got != tt.want {
			t.Errorf("Overlaps(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestOverlapsDefaultDuration(t *testing.T) {
	// A response without duration_minutes falls back to the backend's
	// 20-minute window.
	slots := BookedSlots{BookedTimes: []string{"09:00"}}
	if !slots.Overlaps("09:10") {
		t.Error("09:10 should overlap 09:00 with the default window")
	}
	if slots.Overlaps("09:20") {
		t.Error("09:20 should not overlap 09:00")
	}
}

func TestValidDate(t *testing.T) {
	if !ValidDate("2026-09-01") {
		t.Error("2026-09-01 should be valid")
	}
	for _, bad := range []string{"01-09-2026", "2026/09/01", "tomorrow", ""} {
		if ValidDate(bad) {
			t.Errorf("ValidDate(%q) should be false", bad)
		}
	}
}
