package normalizer

import (
	"strings"
	"testing"
)

func TestAffiliateURL(t *testing.T) {
	tests := []struct {
		name string
		base string
		tag  string
		want string
	}{
		{"empty base", "", "t-20", ""},
		{"empty tag", "https://a.co/dp/X", "", "https://a.co/dp/X"},
		{"no query", "https://a.co/dp/X", "t-20", "https://a.co/dp/X?tag=t-20"},
		{"existing query", "https://a.co/dp/X?th=1", "t-20", "https://a.co/dp/X?th=1&tag=t-20"},
		{"replaces tag", "https://a.co/dp/X?tag=old-20&th=1", "t-20", "https://a.co/dp/X?th=1&tag=t-20"},
		{"only old tag", "https://a.co/dp/X?tag=old-20", "t-20", "https://a.co/dp/X?tag=t-20"},
		{"keeps fragment", "https://a.co/dp/X?th=1#reviews", "t-20", "https://a.co/dp/X?th=1&tag=t-20#reviews"},
		{"similar key kept", "https://a.co/dp/X?tags=a", "t-20", "https://a.co/dp/X?tags=a&tag=t-20"},
		{"escapes tag", "https://a.co/dp/X", "a b&c", "https://a.co/dp/X?tag=a+b%26c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AffiliateURL(tt.base, tt.tag)
			if got != tt.want {
				t.Fatalf("AffiliateURL(%q, %q) = %q, want %q", tt.base, tt.tag, got, tt.want)
			}

			if tt.base != "" && tt.tag != "" && strings.Count(got, "tag=") != 1 {
				t.Errorf("tag must appear exactly once in %q", got)
			}
		})
	}
}

func TestASINFromURL(t *testing.T) {
	tests := map[string]string{
		"https://www.amazon.com/dp/B09B8V1LZ3":                      "B09B8V1LZ3",
		"https://www.amazon.com/Echo-Dot/dp/B09B8V1LZ3/ref=sr_1_1": "B09B8V1LZ3",
		"https://www.amazon.com/gp/product/B0C1H26C46?psc=1":        "B0C1H26C46",
		"https://www.amazon.com/dp/b09b8v1lz3":                      "",
		"https://www.amazon.com/dp/B09B8V1LZ3X":                     "",
		"https://www.amazon.com/s?k=echo":                           "",
		"":                                                          "",
	}

	for in, want := range tests {
		if got := ASINFromURL(in); got != want {
			t.Errorf("ASINFromURL(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestStripHTML(t *testing.T) {
	tests := map[string]string{
		"<p>Hello <b>world</b></p>":                   "Hello world",
		"Plain   text\n\twith  gaps":                  "Plain text with gaps",
		"Salt &amp; pepper":                           "Salt & pepper",
		"<div>Keep<script>alert(1)</script> me</div>": "Keep me",
		"   ":                                         "",
	}

	for in, want := range tests {
		if got := StripHTML(in); got != want {
			t.Errorf("StripHTML(%q) = %q, want %q", in, got, want)
		}
	}
}
