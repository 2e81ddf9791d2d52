package gather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestExtractReadableText(t *testing.T) {
	page := `<html><head><style>p { color: red }</style><script>var x = 1;</script></head>
	<body>
		<nav><p>Home | About | Contact navigation</p></nav>
		<article>
			<p>The WHO declared mpox a public health emergency of international concern.</p>
			<p>Cases have been reported in several countries this year.</p>
		</article>
		<footer><p>Copyright 2025 footer text here</p></footer>
	</body></html>`

	text := ExtractReadableText(page)

	if !strings.Contains(text, "WHO declared mpox") {
		t.Error("article prose missing from extracted text")
	}
	if strings.Contains(text, "navigation") || strings.Contains(text, "Copyright") {
		t.Error("chrome text leaked into extracted content")
	}
	if strings.Contains(text, "var x") || strings.Contains(text, "color: red") {
		t.Error("script/style content leaked into extracted content")
	}
}

func TestExtractReadableText_Cap(t *testing.T) {
	long := "<p>" + strings.Repeat("word ", 10_000) + "</p>"
	text := ExtractReadableText("<html><body>" + long + "</body></html>")

	if len(text) > maxArticleChars {
		t.Errorf("extracted %d chars, cap is %d", len(text), maxArticleChars)
	}
}

func TestFetch_BlockedDomain(t *testing.T) {
	f := NewArticleFetcher(testHTTPConfig(), []string{"blocked.example"}, nil, nil, time.Minute)

	if got := f.Fetch(context.Background(), "https://www.blocked.example/story"); got != "" {
		t.Errorf("blocked domain fetched: %q", got)
	}
}

func TestFetch_RobotsDisallow(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/robots.txt":
			_, _ = w.Write([]byte("User-agent: *\nDisallow: /private/\n"))
		case "/private/story":
			t.Error("fetched a robots-disallowed path")
		case "/public/story":
			_, _ = w.Write([]byte("<html><body><p>Public story body with enough text.</p></body></html>"))
		}
	}))
	defer server.Close()

	f := NewArticleFetcher(testHTTPConfig(), nil, nil, nil, time.Minute)

	if got := f.Fetch(context.Background(), server.URL+"/private/story"); got != "" {
		t.Errorf("disallowed path returned content: %q", got)
	}
	if got := f.Fetch(context.Background(), server.URL+"/public/story"); !strings.Contains(got, "Public story") {
		t.Errorf("allowed path returned %q", got)
	}
}

func TestFetch_NonHTMLStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusGone)
	}))
	defer server.Close()

	f := NewArticleFetcher(testHTTPConfig(), nil, nil, nil, time.Minute)

	if got := f.Fetch(context.Background(), server.URL+"/story"); got != "" {
		t.Errorf("error status returned content: %q", got)
	}
}
