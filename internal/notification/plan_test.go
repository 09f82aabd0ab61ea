package notification

import (
	"testing"
	"time"
)

func TestIdentifier(t *testing.T) {
	got := Identifier(time.Date(2025, 3, 6, 23, 59, 0, 0, time.UTC))
	if got != "dailyVerse_2025_3_6" {
		t.Errorf("Identifier = %q", got)
	}
}

func TestPlan(t *testing.T) {
	loc := time.FixedZone("KST", 9*60*60)

	tests := []struct {
		name      string
		now       time.Time
		first     time.Time
		wantCount int
	}{
		{"before reminder time", time.Date(2025, 3, 16, 8, 59, 0, 0, loc), time.Date(2025, 3, 16, 9, 0, 0, 0, loc), 7},
		{"exactly at reminder time", time.Date(2025, 3, 16, 9, 0, 0, 0, loc), time.Date(2025, 3, 17, 9, 0, 0, 0, loc), 6},
		{"later the same hour", time.Date(2025, 3, 16, 9, 30, 0, 0, loc), time.Date(2025, 3, 17, 9, 0, 0, 0, loc), 6},
		{"after the hour", time.Date(2025, 3, 16, 21, 0, 0, 0, loc), time.Date(2025, 3, 17, 9, 0, 0, 0, loc), 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Plan(tt.now, 9, 0, 7)
			if len(got) != tt.wantCount {
				t.Fatalf("len = %d, want %d", len(got), tt.wantCount)
			}
			if !got[0].Equal(tt.first) {
				t.Errorf("first = %v, want %v", got[0], tt.first)
			}
			last := got[len(got)-1]
			if want := time.Date(2025, 3, 22, 9, 0, 0, 0, loc); !last.Equal(want) {
				t.Errorf("last = %v, want %v", last, want)
			}
			for i := 1; i < len(got); i++ {
				if got[i].Sub(got[i-1]) != 24*time.Hour {
					t.Errorf("gap between %v and %v", got[i-1], got[i])
				}
			}
		})
	}
}

func TestPlan_CrossesMonthAndYear(t *testing.T) {
	got := Plan(time.Date(2025, 12, 28, 6, 0, 0, 0, time.UTC), 7, 15, 7)
	if len(got) != 7 {
		t.Fatalf("len = %d", len(got))
	}
	if Identifier(got[4]) != "dailyVerse_2026_1_1" {
		t.Errorf("fifth = %s", Identifier(got[4]))
	}
	if got[0].Hour() != 7 || got[0].Minute() != 15 {
		t.Errorf("fire time = %v", got[0])
	}
}

func TestCancelWindow(t *testing.T) {
	ids := CancelWindow(time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC))
	if len(ids) != 15 {
		t.Fatalf("len = %d, want 15", len(ids))
	}
	if ids[0] != "dailyVerse_2025_2_28" {
		t.Errorf("first = %s", ids[0])
	}
	if ids[1] != "dailyVerse_2025_3_1" {
		t.Errorf("today = %s", ids[1])
	}
	if ids[14] != "dailyVerse_2025_3_14" {
		t.Errorf("last = %s", ids[14])
	}
}
