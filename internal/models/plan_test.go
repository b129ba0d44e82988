package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDayEndJSON(t *testing.T) {
	tests := []struct {
		in   DayEnd
		want string
	}{
		{10, "10"},
		{EndOfCycle, `"END"`},
	}
	for _, tt := range tests {
		data, err := json.Marshal(tt.in)
		if err != nil {
			t.Fatalf("marshal %v failed: %v", tt.in, err)
		}
		if string(data) != tt.want {
			t.Errorf("marshal %v = %s, want %s", tt.in, data, tt.want)
		}

		var back DayEnd
		if err := json.Unmarshal(data, &back); err != nil {
			t.Fatalf("unmarshal %s failed: %v", data, err)
		}
		if back != tt.in {
			t.Errorf("round trip %v -> %v", tt.in, back)
		}
	}
}

func TestDayEndUnmarshalRejectsGarbage(t *testing.T) {
	var e DayEnd
	if err := json.Unmarshal([]byte(`"FOREVER"`), &e); err == nil {
		t.Error("expected an error for an unknown string")
	}
	if err := json.Unmarshal([]byte(`true`), &e); err == nil {
		t.Error("expected an error for a bool")
	}
}

func TestDayEndResolve(t *testing.T) {
	if got := EndOfCycle.Resolve(31); got != 31 {
		t.Errorf("sentinel resolve = %d, want 31", got)
	}
	if got := DayEnd(10).Resolve(31); got != 10 {
		t.Errorf("literal resolve = %d, want 10", got)
	}
}

func TestRuleContains(t *testing.T) {
	r := FastingRule{DayStart: 20, DayEnd: EndOfCycle}
	if !r.Contains(20, 28) || !r.Contains(28, 28) {
		t.Error("END rule should cover its range at cycle length 28")
	}
	if r.Contains(19, 28) {
		t.Error("day 19 is before the rule")
	}
	if !r.Contains(30, 32) {
		t.Error("END rule should stretch with a longer cycle")
	}
}

func TestDefaultPlanCoversFullCycle(t *testing.T) {
	plan := DefaultPlans()[0]
	for day := 1; day <= DefaultCycleLength; day++ {
		covered := false
		for _, r := range plan.Rules {
			if r.Contains(day, DefaultCycleLength) {
				covered = true
				break
			}
		}
		if !covered {
			t.Errorf("default plan does not cover day %d", day)
		}
	}
}

func TestWindowDays(t *testing.T) {
	tests := []struct {
		hours, want int
	}{
		{24, 1},
		{48, 2},
		{36, 2},
		{0, 1},
	}
	for _, tt := range tests {
		d := FastingTypeDef{WindowHours: tt.hours}
		if got := d.WindowDays(); got != tt.want {
			t.Errorf("WindowDays(%dh) = %d, want %d", tt.hours, got, tt.want)
		}
	}
}

func TestDaysBetween(t *testing.T) {
	a, _ := ParseDate("2024-03-01")
	b, _ := ParseDate("2024-03-06")
	if got := DaysBetween(a, b); got != 5 {
		t.Errorf("DaysBetween = %d, want 5", got)
	}
	if got := DaysBetween(b, a); got != -5 {
		t.Errorf("reverse DaysBetween = %d, want -5", got)
	}
	if got := DaysBetween(a, a); got != 0 {
		t.Errorf("same-day DaysBetween = %d, want 0", got)
	}
}

func TestDaysBetweenMixedLocations(t *testing.T) {
	start, _ := ParseDate("2024-03-01") // stored dates parse as UTC midnight
	east := time.FixedZone("UTC+5", 5*3600)
	west := time.FixedZone("UTC-7", -7*3600)

	// "Today" arrives as a local timestamp. Only the calendar date may count.
	if got := DaysBetween(start, time.Date(2024, 3, 15, 0, 0, 0, 0, east)); got != 14 {
		t.Errorf("east-of-UTC midnight = %d, want 14", got)
	}
	if got := DaysBetween(start, time.Date(2024, 3, 15, 23, 30, 0, 0, west)); got != 14 {
		t.Errorf("west-of-UTC evening = %d, want 14", got)
	}
	if got := DaysBetween(time.Date(2024, 3, 1, 23, 30, 0, 0, east), start); got != 0 {
		t.Errorf("same calendar day across zones = %d, want 0", got)
	}
}

func TestParseClock(t *testing.T) {
	got, err := ParseClock("20:30")
	if err != nil {
		t.Fatalf("ParseClock failed: %v", err)
	}
	if got != 20*60+30 {
		t.Errorf("ParseClock = %d, want %d", got, 20*60+30)
	}
	if _, err := ParseClock("8pm"); err == nil {
		t.Error("expected an error for a non HH:MM value")
	}
}
