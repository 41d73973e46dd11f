package analyzer

import "testing"

func TestDetectLanguage(t *testing.T) {
	r := NewRegistry(Overrides{})

	cases := map[string]string{
		"src/main.py":    "python",
		"SRC/MAIN.PY":    "python",
		"pkg/server.go":  "go",
		"web/app.js":     "javascript",
		"web/app.tsx":    "tsx",
		"Main.java":      "java",
		"lib.rs":         "rust",
		"style.css":      "css",
		"index.html":     "html",
		"notes.txt":      "",
		"Makefile":       "",
		"archive.tar.gz": "",
	}
	for path, want := range cases {
		if got := r.DetectLanguage(path); got != want {
			t.Errorf("DetectLanguage(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestRegistryDisabledLanguage(t *testing.T) {
	r := NewRegistry(Overrides{Disabled: map[string]bool{"css": true}})

	if _, ok := r.Grammar("css"); ok {
		t.Error("expected css grammar to be absent")
	}
	if got := r.DetectLanguage("style.css"); got != "" {
		t.Errorf("expected no detection for disabled language, got %q", got)
	}
	if _, ok := r.Grammar("python"); !ok {
		t.Error("expected python grammar to remain registered")
	}
}

func TestRegistryExtensionOverride(t *testing.T) {
	r := NewRegistry(Overrides{Extensions: map[string][]string{"python": {".py", ".pyw"}}})

	if got := r.DetectLanguage("script.pyw"); got != "python" {
		t.Errorf("expected .pyw to map to python, got %q", got)
	}
}

func TestKnownLanguage(t *testing.T) {
	if !KnownLanguage("python") {
		t.Error("expected python to be known")
	}
	if KnownLanguage("cobol") {
		t.Error("expected cobol to be unknown")
	}
}

func TestRegistryLanguagesSorted(t *testing.T) {
	langs := NewRegistry(Overrides{}).Languages()
	if len(langs) != 9 {
		t.Fatalf("expected 9 registered grammars, got %d: %v", len(langs), langs)
	}
	for i := 1; i < len(langs); i++ {
		if langs[i-1] >= langs[i] {
			t.Errorf("languages not sorted: %v", langs)
		}
	}
}
