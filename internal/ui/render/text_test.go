package render

import "testing"

func TestTruncate(t *testing.T) {
	if got := Truncate("shot01.mp4", 20); got != "shot01.mp4" {
		t.Errorf("Truncate = %q, want unchanged", got)
	}
	got := Truncate("a-very-long-clip-name.mp4", 10)
	if len([]rune(got)) > 10 {
		t.Errorf("Truncate = %q, wider than 10", got)
	}
}

func TestTruncateAndPad(t *testing.T) {
	got := TruncateAndPad("ab", 5)
	if got != "ab   " {
		t.Errorf("TruncateAndPad = %q, want %q", got, "ab   ")
	}
	if got := TruncateAndPad("anything", 0); got != "" {
		t.Errorf("zero width = %q, want empty", got)
	}
}

func TestSanitize(t *testing.T) {
	if got := Sanitize("clip\x00\x1bname"); got != "clipname" {
		t.Errorf("Sanitize = %q, want control chars stripped", got)
	}
	if got := Sanitize("plain"); got != "plain" {
		t.Errorf("Sanitize = %q, want unchanged", got)
	}
}
