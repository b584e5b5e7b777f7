package date

import (
	"testing"
	"time"
)

// TestTime asserts that time() is canonical and gives comparable times.
func TestTime(t *testing.T) {
	if New(2025, 7, 31).time() != New(2025, 7, 31).time() {
		t.Errorf("invalid time() function same day gives two different time")
	}
}

func TestNew_Normalizes(t *testing.T) {
	if got, want := New(2024, time.February, 30), New(2024, time.March, 1); got != want {
		t.Errorf("New(2024, 2, 30) = %v, want %v", got, want)
	}
}

func TestParseLayout(t *testing.T) {
	testCases := []struct {
		in      string
		layouts []string
		want    Date
		wantErr bool
	}{
		{"14/12/2025", []string{"02/01/2006"}, New(2025, time.December, 14), false},
		{"2025.03.07", []string{"2006.01.02"}, New(2025, time.March, 7), false},
		{"2025.03.07 13:45:10", []string{"2006.01.02"}, New(2025, time.March, 7), false},
		{"2025-03-07T10:00:00", []string{"2006-01-02"}, New(2025, time.March, 7), false},
		{"7/3/2025", []string{"2006-01-02", "2/1/2006"}, New(2025, time.March, 7), false},
		{"yesterday", []string{"2006-01-02"}, Date{}, true},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseLayout(tc.in, tc.layouts...)
			if (err != nil) != tc.wantErr {
				t.Fatalf("ParseLayout(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			}
			if got != tc.want {
				t.Errorf("ParseLayout(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestParse(t *testing.T) {
	today := Today()
	testCases := []struct {
		in   string
		want Date
	}{
		{"2025-7-1", New(2025, time.July, 1)},
		{"2025-07-01", New(2025, time.July, 1)},
		{"0d", today},
		{"-1d", today.Add(-1)},
		{"+2w", today.Add(14)},
		{"-1y", New(today.Year()-1, today.Month(), today.Day())},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := Parse(tc.in)
			if err != nil {
				t.Fatalf("Parse(%q) unexpected error: %v", tc.in, err)
			}
			if got != tc.want {
				t.Errorf("Parse(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
	if _, err := Parse("14/12/2025"); err == nil {
		t.Errorf("Parse(%q) expected an error", "14/12/2025")
	}
}

func TestDate_String(t *testing.T) {
	if got := (Date{}).String(); got != "" {
		t.Errorf("zero Date.String() = %q, want empty", got)
	}
	if got := New(2025, 1, 2).String(); got != "2025-01-02" {
		t.Errorf("Date.String() = %q, want %q", got, "2025-01-02")
	}
}
