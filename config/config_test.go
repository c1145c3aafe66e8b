package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
[classpath]
entries = ["lib/foo.jar", "/opt/classes"]

[annotations]
nullable = ["androidx.annotation.Nullable"]

[log]
verbosity = 2
`)

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	t.Run("classpath", func(t *testing.T) {
		want := []string{filepath.Join(cfg.Dir, "lib/foo.jar"), "/opt/classes"}
		if got := cfg.ClasspathEntries(); !reflect.DeepEqual(got, want) {
			t.Errorf("ClasspathEntries() = %v, want %v", got, want)
		}
	})

	t.Run("annotations", func(t *testing.T) {
		if got := cfg.Annotations.Nullable; !reflect.DeepEqual(got, []string{"androidx.annotation.Nullable"}) {
			t.Errorf("Nullable = %v", got)
		}
		if got := cfg.Annotations.Deprecated; !reflect.DeepEqual(got, []string{"java.lang.Deprecated"}) {
			t.Errorf("Deprecated = %v, want default", got)
		}
		if got := cfg.Annotations.Incubating; !reflect.DeepEqual(got, []string{"org.gradle.api.Incubating"}) {
			t.Errorf("Incubating = %v, want default", got)
		}
	})

	t.Run("log", func(t *testing.T) {
		if cfg.Log.Verbosity != 2 {
			t.Errorf("Verbosity = %d, want 2", cfg.Log.Verbosity)
		}
	})
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"syntax", "[classpath\n", "parse error"},
		{"unknown key", "[classpath]\npaths = []\n", "unknown key classpath.paths"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeConfig(t, dir, tt.content)
			_, err := Load(dir)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Load() error = %v, want %q", err, tt.want)
			}
		})
	}
}

func TestFindAndLoad(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "[log]\nverbosity = 1\n")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	cfg, err := FindAndLoad(nested)
	if err != nil {
		t.Fatalf("FindAndLoad: %v", err)
	}
	if cfg.Log.Verbosity != 1 {
		t.Errorf("Verbosity = %d, want 1", cfg.Log.Verbosity)
	}
	abs, _ := filepath.Abs(root)
	if cfg.Dir != abs {
		t.Errorf("Dir = %q, want %q", cfg.Dir, abs)
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if len(cfg.Classpath.Entries) != 0 {
		t.Errorf("Entries = %v, want none", cfg.Classpath.Entries)
	}
	if len(cfg.Annotations.Nullable) != 2 {
		t.Errorf("Nullable = %v, want both defaults", cfg.Annotations.Nullable)
	}
}
