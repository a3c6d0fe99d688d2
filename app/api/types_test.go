package api

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("Expected short string untouched, got %q", got)
	}
	if got := truncate("abcdef", 3); got != "abc" {
		t.Errorf("Expected abc, got %q", got)
	}
}

func TestTruncate_CyrillicStaysValid(t *testing.T) {
	s := strings.Repeat("яд", 100)

	got := truncate(s, 5)

	if got != "ядядя" {
		t.Errorf("Expected 5 characters, got %q", got)
	}
	if !utf8.ValidString(got) {
		t.Error("Expected truncated text to remain valid UTF-8")
	}
}
