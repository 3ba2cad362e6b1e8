package i18n

import (
	"testing"
	"testing/fstest"

	"golang.org/x/text/language"
)

func TestLoadEmbeddedCatalogs(t *testing.T) {
	bundle, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := bundle.Default().String(); got != "en" {
		t.Fatalf("default tag = %q, want en", got)
	}
	if len(bundle.Supported()) < 2 {
		t.Fatalf("expected at least en and kr, got %v", bundle.Supported())
	}
}

func TestResolve(t *testing.T) {
	bundle, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cases := []struct {
		name   string
		accept string
		want   string
	}{
		{"empty header", "", "en"},
		{"exact kr", "kr", "kr"},
		{"weighted list", "kr;q=0.9, en;q=0.8", "kr"},
		{"unknown falls back", "fr", "en"},
		{"garbage falls back", ";;;", "en"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := bundle.Resolve(tc.accept).String(); got != tc.want {
				t.Fatalf("Resolve(%q) = %q, want %q", tc.accept, got, tc.want)
			}
		})
	}
}

func TestMessageLocalization(t *testing.T) {
	bundle, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	en := bundle.Message(language.MustParse("en"), "user_create_success")
	if en != "User created" {
		t.Fatalf("unexpected english message: %q", en)
	}
	kr := bundle.Message(language.MustParse("kr"), "user_create_success")
	if kr == en {
		t.Fatalf("expected korean translation to differ from english")
	}
	if got := bundle.Message(language.MustParse("en"), "missing_key"); got != "missing_key" {
		t.Fatalf("expected key echoed for unknown message, got %q", got)
	}
}

func TestLoadFromFSValidation(t *testing.T) {
	t.Run("missing default locale", func(t *testing.T) {
		fsys := fstest.MapFS{
			"locales/kr.yaml": {Data: []byte("locale: kr\nmessages:\n  greeting: 안녕하세요\n")},
		}
		if _, err := LoadFromFS(fsys); err == nil {
			t.Fatalf("expected error without default locale")
		}
	})
	t.Run("missing messages", func(t *testing.T) {
		fsys := fstest.MapFS{
			"locales/en.yaml": {Data: []byte("locale: en\n")},
		}
		if _, err := LoadFromFS(fsys); err == nil {
			t.Fatalf("expected error for catalog without messages")
		}
	})
	t.Run("fallback to default for partial catalog", func(t *testing.T) {
		fsys := fstest.MapFS{
			"locales/en.yaml": {Data: []byte("locale: en\nmessages:\n  greeting: hello\n  extra: more\n")},
			"locales/kr.yaml": {Data: []byte("locale: kr\nmessages:\n  greeting: 안녕하세요\n")},
		}
		bundle, err := LoadFromFS(fsys)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := bundle.Message(language.MustParse("kr"), "extra"); got != "more" {
			t.Fatalf("expected fallback to default locale, got %q", got)
		}
	})
}
