package markup

import (
	"strings"
	"testing"
)

func TestToDisplayHTMLRendersEmphasisAndLists(t *testing.T) {
	html := ToDisplayHTML("**Squat** works your legs.\n\n- keep your back straight\n- go slow")

	if !strings.Contains(html, "<strong>Squat</strong>") {
		t.Fatalf("expected bold rendering, got %q", html)
	}
	if !strings.Contains(html, "<li>") {
		t.Fatalf("expected list rendering, got %q", html)
	}
}

func TestToDisplayHTMLNeutralizesEmbeddedHTML(t *testing.T) {
	html := ToDisplayHTML("hello <script>alert('x')</script> world <img src=x onerror=alert(1)>")

	if strings.Contains(html, "<script") {
		t.Fatalf("script tag survived sanitization: %q", html)
	}
	if strings.Contains(html, "<img") {
		t.Fatalf("img tag survived sanitization: %q", html)
	}
	if !strings.Contains(html, "hello") || !strings.Contains(html, "world") {
		t.Fatalf("surrounding text lost: %q", html)
	}
}

func TestToDisplayHTMLDisallowsLinks(t *testing.T) {
	html := ToDisplayHTML("see [here](https://example.com)")
	if strings.Contains(html, "<a ") || strings.Contains(html, "href") {
		t.Fatalf("anchor survived the allow-list: %q", html)
	}
}

func TestStripTagsRoundTrip(t *testing.T) {
	raw := "**Plank** strengthens the core. Keep your hips level."
	plain := StripTags(ToDisplayHTML(raw))

	for _, want := range []string{"Plank", "strengthens the core", "hips level"} {
		if !strings.Contains(plain, want) {
			t.Fatalf("expected %q in stripped text, got %q", want, plain)
		}
	}
	if strings.Contains(plain, "<") {
		t.Fatalf("stripped text still contains markup: %q", plain)
	}
}

func TestStripTagsUnescapesEntities(t *testing.T) {
	got := StripTags("<p>push &amp; pull</p>")
	if got != "push & pull" {
		t.Fatalf("expected %q, got %q", "push & pull", got)
	}
}

func TestToDisplayHTMLEmptyInput(t *testing.T) {
	if got := ToDisplayHTML(""); strings.TrimSpace(got) != "" {
		t.Fatalf("expected empty output for empty input, got %q", got)
	}
}
