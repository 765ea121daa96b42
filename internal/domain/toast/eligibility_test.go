package toast

import (
	"testing"
	"time"
)

func TestIsToastDay_LocalDayNotUTCDay(t *testing.T) {
	// 2025-06-02 01:00 UTC is a Monday, but in Los Angeles it is still
	// Sunday evening (2025-06-01 18:00 PDT). The local calendar decides.
	now := time.Date(2025, time.June, 2, 1, 0, 0, 0, time.UTC)

	if !IsToastDay("America/Los_Angeles", time.Sunday, now) {
		t.Error("expected Pacific user to be eligible: local date is Sunday")
	}
	if IsToastDay("UTC", time.Sunday, now) {
		t.Error("expected UTC user to be ineligible: UTC date is Monday")
	}
}

func TestIsToastDay_AheadOfUTC(t *testing.T) {
	// 2025-05-31 16:00 UTC is a Saturday, but Tokyo is already into Sunday.
	now := time.Date(2025, time.May, 31, 16, 0, 0, 0, time.UTC)

	if !IsToastDay("Asia/Tokyo", time.Sunday, now) {
		t.Error("expected Tokyo user to be eligible: local date is Sunday")
	}
	if IsToastDay("UTC", time.Sunday, now) {
		t.Error("expected UTC user to be ineligible: UTC date is Saturday")
	}
}

func TestIsToastDay_Table(t *testing.T) {
	// 2025-06-01 12:00 UTC is a Sunday everywhere near UTC.
	sundayNoon := time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name      string
		timezone  string
		preferred time.Weekday
		now       time.Time
		want      bool
	}{
		{"utc sunday match", "UTC", time.Sunday, sundayNoon, true},
		{"utc wrong day", "UTC", time.Wednesday, sundayNoon, false},
		{"europe still sunday", "Europe/Berlin", time.Sunday, sundayNoon, true},
		{"invalid tz falls back to utc", "Not/AZone", time.Sunday, sundayNoon, true},
		{"empty tz falls back to utc", "", time.Sunday, sundayNoon, true},
		{"invalid tz wrong day", "Not/AZone", time.Monday, sundayNoon, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsToastDay(tc.timezone, tc.preferred, tc.now); got != tc.want {
				t.Errorf("IsToastDay(%q, %v) = %v, want %v", tc.timezone, tc.preferred, got, tc.want)
			}
		})
	}
}

func TestWeeklyWindow(t *testing.T) {
	now := time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)
	start, end := WeeklyWindow(now)

	if !end.Equal(now) {
		t.Errorf("window end = %v, want %v", end, now)
	}
	if !start.Equal(now.AddDate(0, 0, -7)) {
		t.Errorf("window start = %v, want %v", start, now.AddDate(0, 0, -7))
	}
}
