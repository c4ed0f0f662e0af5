package common

import "testing"

func TestShortName(t *testing.T) {
	tests := map[string]string{
		"London, GB":     "London",
		"  Phoenix ":     "Phoenix",
		"Sao Paulo,BR,x": "Sao Paulo",
		"":               "",
	}
	for in, want := range tests {
		if got := ShortName(in); got != want {
			t.Errorf("ShortName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestHasAny(t *testing.T) {
	if !HasAny("Geocoding: ZERO_RESULTS", "zero_results") {
		t.Error("expected case-insensitive match")
	}
	if HasAny("timeout", "ZERO_RESULTS", "no results") {
		t.Error("unexpected match")
	}
}
