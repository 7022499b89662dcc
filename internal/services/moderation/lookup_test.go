package moderation

import "testing"

func TestExtractUUID(t *testing.T) {
	tests := []struct {
		raw  string
		want string
		ok   bool
	}{
		{"8f14e45f-ceea-467a-9b7e-123456789abc", "8f14e45f-ceea-467a-9b7e-123456789abc", true},
		{"https://bazarhat.com/ads/8F14E45F-CEEA-467A-9B7E-123456789ABC?x=1", "8f14e45f-ceea-467a-9b7e-123456789abc", true},
		{"id: 8f14e45f-ceea-467a-9b7e-123456789abc trailing", "8f14e45f-ceea-467a-9b7e-123456789abc", true},
		{"blue-bicycle-mirpur", "", false},
		{"", "", false},
		{"8f14e45f-ceea-467a", "", false},
	}
	for _, tc := range tests {
		got, ok := ExtractUUID(tc.raw)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("ExtractUUID(%q) = (%q, %v), want (%q, %v)", tc.raw, got, ok, tc.want, tc.ok)
		}
	}
}

func TestExtractSlug(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"blue-bicycle-mirpur", "blue-bicycle-mirpur"},
		{"https://bazarhat.com/ads/blue-bicycle-mirpur", "blue-bicycle-mirpur"},
		{"https://bazarhat.com/ads/blue-bicycle-mirpur/", "blue-bicycle-mirpur"},
		{"https://bazarhat.com/ads/blue-bicycle-mirpur?ref=mail#top", "blue-bicycle-mirpur"},
		{"  spaced-slug  ", "spaced-slug"},
		{"", ""},
	}
	for _, tc := range tests {
		if got := ExtractSlug(tc.raw); got != tc.want {
			t.Fatalf("ExtractSlug(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}
