package dates

import (
	"testing"
	"time"
)

func TestNormalizeFormats(t *testing.T) {
	want := time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		raw  string
	}{
		{"iso", "2024-03-05"},
		{"iso datetime", "2024-03-05 14:30:00"},
		{"rfc3339", "2024-03-05T14:30:00Z"},
		{"iso slash", "2024/03/05"},
		{"day first slash", "05/03/2024"},
		{"day first slash short", "5/3/2024"},
		{"day first dash", "05-03-2024"},
		{"day first dot", "5.3.2024"},
		{"day first two digit year", "05/03/24"},
		{"padded whitespace", "  2024-03-05  "},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Normalize(tc.raw)
			if got == nil {
				t.Fatalf("Normalize(%q) = nil, want %s", tc.raw, want)
			}
			if !got.Equal(want) {
				t.Fatalf("Normalize(%q) = %s, want %s", tc.raw, got, want)
			}
		})
	}
}

func TestNormalizeSerial(t *testing.T) {
	// Excel serial 45292 is 2024-01-01.
	got := Normalize("45292")
	if got == nil || !got.Equal(time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("Normalize serial = %v, want 2024-01-01", got)
	}

	// Fractional part is time of day and gets truncated.
	got = Normalize("45292.75")
	if got == nil || !got.Equal(time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("Normalize fractional serial = %v, want 2024-01-01", got)
	}
}

func TestNormalizeUnparseable(t *testing.T) {
	for _, raw := range []string{"", "   ", "n/a", "soon", "2.1", "99999999", "13/13/2024", "2024-13-40"} {
		if got := Normalize(raw); got != nil {
			t.Errorf("Normalize(%q) = %s, want nil", raw, got)
		}
	}
}

func TestNormalizeTruncatesToDay(t *testing.T) {
	got := Normalize("2024-03-05T23:59:59Z")
	if got == nil || got.Hour() != 0 || got.Minute() != 0 {
		t.Fatalf("Normalize did not truncate to day: %v", got)
	}
}

func TestFormatRoundTrip(t *testing.T) {
	if Format(nil) != "" {
		t.Fatalf("Format(nil) = %q, want empty", Format(nil))
	}
	orig := Normalize("05/03/2024")
	back := Normalize(Format(orig))
	if !Equal(orig, back) {
		t.Fatalf("round trip mismatch: %v vs %v", orig, back)
	}
}

func TestEqual(t *testing.T) {
	a := Normalize("2024-03-05")
	b := Normalize("05/03/2024")
	if !Equal(a, b) {
		t.Fatalf("Equal(%v, %v) = false", a, b)
	}
	if Equal(a, nil) || !Equal(nil, nil) {
		t.Fatalf("nil handling wrong")
	}
}
