package i18n

import "testing"

func TestPackForUnknownCode(t *testing.T) {
	if _, ok := PackFor("de"); ok {
		t.Fatal("expected unknown code to be rejected")
	}
}

func TestMustPackFallsBackToDefault(t *testing.T) {
	p := MustPack("nope")
	if p.Code != DefaultLang {
		t.Fatalf("expected fallback to %q, got %q", DefaultLang, p.Code)
	}
}

func TestPacksAreComplete(t *testing.T) {
	for _, code := range []string{"tr", "en"} {
		p, ok := PackFor(code)
		if !ok {
			t.Fatalf("missing pack for %q", code)
		}
		if p.NotReadyMessage == "" || p.ErrorMessage == "" || p.WelcomeMessage == "" {
			t.Fatalf("pack %q has empty required strings", code)
		}
	}
}

func TestKnown(t *testing.T) {
	if !Known("en") || !Known("tr") {
		t.Fatal("expected tr and en to be known")
	}
	if Known("") || Known("xx") {
		t.Fatal("expected unknown codes to be rejected")
	}
}
