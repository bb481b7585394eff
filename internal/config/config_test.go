package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"golang.org/x/text/language"

	"github.com/dshills/ecmastr/internal/heap"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	if cfg.Space() != heap.Regular {
		t.Errorf("Space() = %s", cfg.Space())
	}
	if cfg.Locale() != language.AmericanEnglish {
		t.Errorf("Locale() = %s", cfg.Locale())
	}
	if cfg.Strings.MinTreeLength != 13 || cfg.Collation.StackBufferUnits != 128 {
		t.Errorf("defaults = %+v", cfg)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		path   string
		code   ValidationErrorCode
	}{
		{"max length zero", func(c *Config) { c.Strings.MaxLength = 0 }, "strings.max_length", ErrCodeOutOfRange},
		{"max length too big", func(c *Config) { c.Strings.MaxLength = 1 << 30 }, "strings.max_length", ErrCodeOutOfRange},
		{"tree threshold", func(c *Config) { c.Strings.MinTreeLength = 0 }, "strings.min_tree_length", ErrCodeOutOfRange},
		{"sliced threshold", func(c *Config) { c.Strings.MinSlicedLength = -1 }, "strings.min_sliced_length", ErrCodeOutOfRange},
		{"space", func(c *Config) { c.Strings.DefaultSpace = "young" }, "strings.default_space", ErrCodeInvalidEnum},
		{"locale", func(c *Config) { c.Collation.DefaultLocale = "not a locale" }, "collation.default_locale", ErrCodeInvalidLocale},
		{"fast locale", func(c *Config) { c.Collation.FastPathLocales = []string{"en", "x"} }, "collation.fast_path_locales[1]", ErrCodeInvalidLocale},
		{"tailored fast locale", func(c *Config) { c.Collation.FastPathLocales = []string{"en", "da", "cs"} }, "collation.fast_path_locales[1]", ErrCodeInvalidLocale},
		{"swedish fast locale", func(c *Config) { c.Collation.FastPathLocales = []string{"sv"} }, "collation.fast_path_locales[0]", ErrCodeInvalidLocale},
		{"buffer", func(c *Config) { c.Collation.StackBufferUnits = 0 }, "collation.stack_buffer_units", ErrCodeOutOfRange},
		{"page size", func(c *Config) { c.Heap.PageSize = -4 }, "heap.page_size", ErrCodeOutOfRange},
		{"max bytes", func(c *Config) { c.Heap.MaxBytes = -1 }, "heap.max_bytes", ErrCodeOutOfRange},
		{"log level", func(c *Config) { c.Log.Level = "chatty" }, "log", ErrCodeInvalidEnum},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if !errors.Is(err, ErrInvalidValue) {
				t.Fatalf("Validate() = %v, want ErrInvalidValue", err)
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("no *ValidationError in %v", err)
			}
			if verr.Path != tt.path || verr.Code != tt.code {
				t.Errorf("got %s (%s), want %s (%s)", verr.Path, verr.Code, tt.path, tt.code)
			}
		})
	}
}

func TestValidateJoinsErrors(t *testing.T) {
	cfg := Default()
	cfg.Strings.MinTreeLength = 0
	cfg.Heap.MaxBytes = -1
	err := cfg.Validate()
	joined, ok := err.(interface{ Unwrap() []error })
	if !ok || len(joined.Unwrap()) != 2 {
		t.Fatalf("Validate() = %v, want two joined errors", err)
	}
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "ecmastr.toml", `
[strings]
min_tree_length = 20
default_space = "old-shared"

[collation]
default_locale = "de-DE"
fast_path_locales = ["de", "en"]

[heap]
max_bytes = 1048576

[log]
level = "debug"
`)
	cfg, err := Load(path, WithEnvPrefix(""))
	if err != nil {
		t.Fatalf("Load() = %v", err)
	}
	if cfg.Strings.MinTreeLength != 20 || cfg.Space() != heap.OldShared {
		t.Errorf("strings = %+v", cfg.Strings)
	}
	if cfg.Strings.MinSlicedLength != 13 {
		t.Errorf("unset min_sliced_length = %d, want default", cfg.Strings.MinSlicedLength)
	}
	if cfg.Locale() != language.MustParse("de-DE") {
		t.Errorf("locale = %s", cfg.Locale())
	}
	if !reflect.DeepEqual(cfg.Collation.FastPathLocales, []string{"de", "en"}) {
		t.Errorf("fast_path_locales = %v", cfg.Collation.FastPathLocales)
	}
	if cfg.Heap.MaxBytes != 1<<20 || cfg.Log.Level != "debug" {
		t.Errorf("heap=%+v log=%+v", cfg.Heap, cfg.Log)
	}
}

func TestLoadYAMLWithUnusedKeys(t *testing.T) {
	path := writeFile(t, "ecmastr.yaml", `
collation:
  stack_buffer_units: "256"
  fast_pat_locales: [en]
extra:
  key: 1
`)
	cfg, err := Load(path, WithEnvPrefix(""))
	if err != nil {
		t.Fatalf("Load() = %v", err)
	}
	if cfg.Collation.StackBufferUnits != 256 {
		t.Errorf("stack_buffer_units = %d", cfg.Collation.StackBufferUnits)
	}
	want := []string{"collation.fast_pat_locales", "extra"}
	if !reflect.DeepEqual(cfg.Unused, want) {
		t.Errorf("Unused = %v, want %v", cfg.Unused, want)
	}
}

func TestLoadEnvOverlay(t *testing.T) {
	path := writeFile(t, "ecmastr.toml", `
[collation]
default_locale = "fr"
`)
	t.Setenv("ECMASTR_COLLATION_DEFAULT_LOCALE", "it-IT")
	t.Setenv("ECMASTR_COLLATION_FAST_PATH_LOCALES", "it, en")
	t.Setenv("ECMASTR_NO_FAST", "true")
	t.Setenv("ECMASTR_STRINGS_MIN_SLICED_LENGTH", "32")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() = %v", err)
	}
	if cfg.Collation.DefaultLocale != "it-IT" {
		t.Errorf("default_locale = %q, want env value", cfg.Collation.DefaultLocale)
	}
	if !reflect.DeepEqual(cfg.Collation.FastPathLocales, []string{"it", "en"}) {
		t.Errorf("fast_path_locales = %q", cfg.Collation.FastPathLocales)
	}
	if !cfg.Collation.DisableFastPath || cfg.Strings.MinSlicedLength != 32 {
		t.Errorf("collation=%+v strings=%+v", cfg.Collation, cfg.Strings)
	}
}

func TestLoadRejectsTailoredFastPathLocale(t *testing.T) {
	t.Setenv("ECMASTR_COLLATION_FAST_PATH_LOCALES", "en,da")
	_, err := Load("")
	if !errors.Is(err, ErrInvalidValue) {
		t.Fatalf("Load() = %v, want ErrInvalidValue", err)
	}
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Path != "collation.fast_path_locales[1]" {
		t.Errorf("error = %v", err)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"), WithEnvPrefix(""))
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Errorf("cfg = %+v, want defaults", cfg)
	}
}

func TestLoadErrors(t *testing.T) {
	t.Run("parse", func(t *testing.T) {
		path := writeFile(t, "bad.toml", "[strings\n")
		_, err := Load(path, WithEnvPrefix(""))
		var perr *ParseError
		if !errors.As(err, &perr) {
			t.Fatalf("Load() = %v, want *ParseError", err)
		}
	})
	t.Run("type", func(t *testing.T) {
		path := writeFile(t, "bad.toml", "[heap]\npage_size = \"big\"\n")
		if _, err := Load(path, WithEnvPrefix("")); !errors.Is(err, ErrTypeMismatch) {
			t.Fatalf("Load() = %v, want ErrTypeMismatch", err)
		}
	})
	t.Run("invalid", func(t *testing.T) {
		path := writeFile(t, "bad.yaml", "strings:\n  min_tree_length: 0\n")
		if _, err := Load(path, WithEnvPrefix("")); !errors.Is(err, ErrInvalidValue) {
			t.Fatalf("Load() = %v, want ErrInvalidValue", err)
		}
	})
	t.Run("format", func(t *testing.T) {
		path := writeFile(t, "cfg.ini", "x=1")
		if _, err := Load(path, WithEnvPrefix("")); err == nil {
			t.Fatal("Load() accepted an unsupported format")
		}
	})
}

func TestClone(t *testing.T) {
	cfg := Default()
	c := cfg.Clone()
	c.Collation.FastPathLocales[0] = "sv"
	if cfg.Collation.FastPathLocales[0] == "sv" {
		t.Error("Clone shares the fast-path slice")
	}
}
