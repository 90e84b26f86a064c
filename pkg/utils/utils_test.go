package utils

import (
	"testing"

	"github.com/mattn/go-runewidth"
)

func TestBuildHeaders(t *testing.T) {
	h := NewHTTPHelper().BuildHeaders(map[string]string{
		"x-rapidapi-key":  "secret",
		"x-rapidapi-host": "",
	})

	if got := h.Get("User-Agent"); got != UserAgent {
		t.Errorf("User-Agent = %q, want %q", got, UserAgent)
	}

	if got := h.Get("Accept"); got != "application/json" {
		t.Errorf("Accept = %q", got)
	}

	if got := h.Get("X-RapidAPI-Key"); got != "secret" {
		t.Errorf("key header = %q, want secret", got)
	}

	if _, ok := h["X-Rapidapi-Host"]; ok {
		t.Error("empty custom header should be skipped")
	}
}

func TestNormalizeWhitespace(t *testing.T) {
	s := NewStringHelper()

	if got := s.NormalizeWhitespace("  a \n\t b   c "); got != "a b c" {
		t.Errorf("NormalizeWhitespace = %q", got)
	}
}

func TestTruncateString(t *testing.T) {
	s := NewStringHelper()

	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"this is too long", 7, "this is..."},
		{"café crème", 4, "café..."},
	}

	for _, tt := range tests {
		if got := s.TruncateString(tt.in, tt.max); got != tt.want {
			t.Errorf("TruncateString(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}

func TestTruncateWidth(t *testing.T) {
	s := NewStringHelper()

	if got := s.TruncateWidth("short", 10); got != "short" {
		t.Errorf("TruncateWidth kept-as-is = %q", got)
	}

	got := s.TruncateWidth("日本語のタイトルです", 8)
	if w := runewidth.StringWidth(got); w > 8 {
		t.Errorf("TruncateWidth produced width %d (%q), want <= 8", w, got)
	}
}
