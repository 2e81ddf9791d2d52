package gather

import (
	"strings"
	"testing"
)

func TestSanitizeQuery(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "mpox outbreak", "mpox outbreak"},
		{"punctuation stripped", `"mpox" outbreak: what's next?`, "mpox outbreak what s next"},
		{"whitespace collapsed", "mpox   outbreak\t 2024", "mpox outbreak 2024"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeQuery(tt.input); got != tt.want {
				t.Errorf("SanitizeQuery(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSanitizeQuery_CapsLength(t *testing.T) {
	long := strings.Repeat("word ", 50)
	got := SanitizeQuery(long)
	if len(got) > 100 {
		t.Errorf("query length %d, want <= 100", len(got))
	}
	if strings.HasSuffix(got, " ") {
		t.Error("capped query should not end in whitespace")
	}
}

func TestAlternativeQuery(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"who declared mpox global emergency 2024", "who declared mpox"},
		{"mpox outbreak", "mpox outbreak"},
		{"mpox", "mpox"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := AlternativeQuery(tt.input); got != tt.want {
			t.Errorf("AlternativeQuery(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		same bool
	}{
		{"case insensitive host", "https://Example.com/Article", "https://example.com/Article", true},
		{"fragment dropped", "https://example.com/a#section", "https://example.com/a", true},
		{"trailing slash trimmed", "https://example.com/a/", "https://example.com/a", true},
		{"path case preserved", "https://example.com/Article", "https://example.com/article", false},
		{"different query differs", "https://example.com/a?p=1", "https://example.com/a?p=2", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeURL(tt.a) == NormalizeURL(tt.b); got != tt.same {
				t.Errorf("NormalizeURL equality(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.same)
			}
		})
	}
}

func TestHost(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"https://www.reuters.com/article", "reuters.com"},
		{"https://BBC.com/news", "bbc.com"},
		{"not a url at all\x7f://", ""},
	}

	for _, tt := range tests {
		if got := Host(tt.input); got != tt.want {
			t.Errorf("Host(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
