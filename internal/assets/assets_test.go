package assets

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEmbeddedLoaderLoadStyle(t *testing.T) {
	loader := NewEmbeddedLoader()

	content, err := loader.LoadStyle("default")
	if err != nil {
		t.Fatalf("LoadStyle returned error: %v", err)
	}
	if !strings.Contains(content, `id="bi-article"`) {
		t.Error("default style missing the article block")
	}
}

func TestEmbeddedLoaderUnknownStyle(t *testing.T) {
	loader := NewEmbeddedLoader()

	_, err := loader.LoadStyle("nope")
	if !errors.Is(err, ErrStyleNotFound) {
		t.Fatalf("LoadStyle error = %v, want ErrStyleNotFound", err)
	}
}

func TestEmbeddedLoaderListStyles(t *testing.T) {
	loader := NewEmbeddedLoader()

	names, err := loader.ListStyles()
	if err != nil {
		t.Fatalf("ListStyles returned error: %v", err)
	}

	found := make(map[string]bool, len(names))
	for _, n := range names {
		found[n] = true
	}
	if !found["default"] || !found["compact"] {
		t.Errorf("ListStyles = %v, want default and compact", names)
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Errorf("ListStyles = %v, not sorted", names)
		}
	}
}

func TestEmbeddedStylesCoverCommonEntryTypes(t *testing.T) {
	loader := NewEmbeddedLoader()
	names, err := loader.ListStyles()
	if err != nil {
		t.Fatalf("ListStyles returned error: %v", err)
	}

	for _, name := range names {
		content, err := loader.LoadStyle(name)
		if err != nil {
			t.Fatalf("LoadStyle(%q) returned error: %v", name, err)
		}
		for _, entryType := range []string{"article", "book", "inproceedings", "misc"} {
			if !strings.Contains(content, `id="bi-`+entryType+`"`) {
				t.Errorf("style %q missing the %s block", name, entryType)
			}
		}
	}
}

func TestValidateStyleName(t *testing.T) {
	tests := []struct {
		name    string
		style   string
		wantErr bool
	}{
		{name: "simple name", style: "default", wantErr: false},
		{name: "name with dash", style: "my-style", wantErr: false},
		{name: "empty", style: "", wantErr: true},
		{name: "forward slash", style: "a/b", wantErr: true},
		{name: "backslash", style: `a\b`, wantErr: true},
		{name: "traversal", style: "..", wantErr: true},
		{name: "traversal in name", style: "..secret", wantErr: true},
		{name: "null byte", style: "a\x00b", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStyleName(tt.style)
			if tt.wantErr && !errors.Is(err, ErrInvalidStyleName) {
				t.Errorf("ValidateStyleName(%q) = %v, want ErrInvalidStyleName", tt.style, err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("ValidateStyleName(%q) = %v, want nil", tt.style, err)
			}
		})
	}
}

func writeStyle(t *testing.T, base, name, content string) {
	t.Helper()
	dir := filepath.Join(base, "styles")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, name+".html"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestFilesystemLoader(t *testing.T) {
	base := t.TempDir()
	writeStyle(t, base, "custom", `<p id="bi-article">{{title}}</p>`)

	loader, err := NewFilesystemLoader(base)
	if err != nil {
		t.Fatalf("NewFilesystemLoader returned error: %v", err)
	}

	content, err := loader.LoadStyle("custom")
	if err != nil {
		t.Fatalf("LoadStyle returned error: %v", err)
	}
	if !strings.Contains(content, "bi-article") {
		t.Errorf("LoadStyle = %q, want custom style content", content)
	}

	if _, err := loader.LoadStyle("missing"); !errors.Is(err, ErrStyleNotFound) {
		t.Errorf("LoadStyle(missing) = %v, want ErrStyleNotFound", err)
	}
	if _, err := loader.LoadStyle("../escape"); !errors.Is(err, ErrInvalidStyleName) {
		t.Errorf("LoadStyle(../escape) = %v, want ErrInvalidStyleName", err)
	}

	names, err := loader.ListStyles()
	if err != nil {
		t.Fatalf("ListStyles returned error: %v", err)
	}
	if len(names) != 1 || names[0] != "custom" {
		t.Errorf("ListStyles = %v, want [custom]", names)
	}
}

func TestFilesystemLoaderMissingStylesDir(t *testing.T) {
	loader, err := NewFilesystemLoader(t.TempDir())
	if err != nil {
		t.Fatalf("NewFilesystemLoader returned error: %v", err)
	}

	names, err := loader.ListStyles()
	if err != nil {
		t.Fatalf("ListStyles returned error: %v", err)
	}
	if len(names) != 0 {
		t.Errorf("ListStyles = %v, want empty", names)
	}
}

func TestNewFilesystemLoaderInvalidBase(t *testing.T) {
	t.Run("empty path", func(t *testing.T) {
		if _, err := NewFilesystemLoader(""); !errors.Is(err, ErrInvalidBasePath) {
			t.Errorf("error = %v, want ErrInvalidBasePath", err)
		}
	})

	t.Run("nonexistent path", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nope")
		if _, err := NewFilesystemLoader(path); !errors.Is(err, ErrInvalidBasePath) {
			t.Errorf("error = %v, want ErrInvalidBasePath", err)
		}
	})

	t.Run("path is a file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "file")
		if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := NewFilesystemLoader(path); !errors.Is(err, ErrInvalidBasePath) {
			t.Errorf("error = %v, want ErrInvalidBasePath", err)
		}
	})
}

func TestResolverEmbeddedOnly(t *testing.T) {
	resolver, err := NewResolver("")
	if err != nil {
		t.Fatalf("NewResolver returned error: %v", err)
	}

	if _, err := resolver.LoadStyle("default"); err != nil {
		t.Errorf("LoadStyle(default) = %v, want embedded style", err)
	}
	if _, err := resolver.LoadStyle("nope"); !errors.Is(err, ErrStyleNotFound) {
		t.Errorf("LoadStyle(nope) = %v, want ErrStyleNotFound", err)
	}
}

func TestResolverCustomFirstWithFallback(t *testing.T) {
	base := t.TempDir()
	writeStyle(t, base, "default", "custom override")
	writeStyle(t, base, "extra", "only custom")

	resolver, err := NewResolver(base)
	if err != nil {
		t.Fatalf("NewResolver returned error: %v", err)
	}

	// Custom directory shadows the embedded style of the same name.
	content, err := resolver.LoadStyle("default")
	if err != nil {
		t.Fatalf("LoadStyle returned error: %v", err)
	}
	if content != "custom override" {
		t.Errorf("LoadStyle(default) = %q, want custom override", content)
	}

	// Embedded styles remain reachable for names absent from the
	// custom directory.
	if _, err := resolver.LoadStyle("compact"); err != nil {
		t.Errorf("LoadStyle(compact) = %v, want embedded fallback", err)
	}

	names, err := resolver.ListStyles()
	if err != nil {
		t.Fatalf("ListStyles returned error: %v", err)
	}
	found := make(map[string]bool, len(names))
	for _, n := range names {
		found[n] = true
	}
	if !found["default"] || !found["compact"] || !found["extra"] {
		t.Errorf("ListStyles = %v, want merged custom and embedded names", names)
	}
	count := 0
	for _, n := range names {
		if n == "default" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("ListStyles = %v, duplicate names not merged", names)
	}
}

func TestResolverInvalidNameNotMaskedByFallback(t *testing.T) {
	base := t.TempDir()
	writeStyle(t, base, "any", "x")

	resolver, err := NewResolver(base)
	if err != nil {
		t.Fatalf("NewResolver returned error: %v", err)
	}

	if _, err := resolver.LoadStyle("../etc"); !errors.Is(err, ErrInvalidStyleName) {
		t.Errorf("LoadStyle(../etc) = %v, want ErrInvalidStyleName without fallback", err)
	}
}
