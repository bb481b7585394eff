package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func notTerminal(io.Writer) bool { return false }

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    zerolog.Level
		wantErr bool
	}{
		{"", zerolog.InfoLevel, false},
		{"debug", zerolog.DebugLevel, false},
		{"WARN", zerolog.WarnLevel, false},
		{"error", zerolog.ErrorLevel, false},
		{"verbose", zerolog.NoLevel, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q) error = %v", tt.in, err)
			continue
		}
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidLevel) {
				t.Errorf("ParseLevel(%q) error = %v, want ErrInvalidLevel", tt.in, err)
			}
			continue
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"default", func(*Config) {}, nil},
		{"bad level", func(c *Config) { c.Level = "loud" }, ErrInvalidLevel},
		{"bad format", func(c *Config) { c.Format = "xml" }, ErrInvalidFormat},
		{"negative size", func(c *Config) { c.MaxSizeMB = -1 }, ErrInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == nil && err != nil {
				t.Fatalf("Validate() = %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultConfig()
	cfg.Level = "debug"
	logger, closer, err := New(cfg, WithOutput(&buf), WithTerminalCheck(notTerminal))
	if err != nil {
		t.Fatal(err)
	}
	defer closer.Close()

	logger.Debug().Str("locale", "en-US").Msg("slow path")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %q", buf.String())
	}
	if entry["level"] != "debug" || entry["locale"] != "en-US" || entry["message"] != "slow path" {
		t.Errorf("entry = %v", entry)
	}
	if _, ok := entry["time"]; !ok {
		t.Error("missing timestamp")
	}
}

func TestNewLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger, _, err := New(Config{Level: "warn", Format: FormatJSON}, WithOutput(&buf))
	if err != nil {
		t.Fatal(err)
	}
	logger.Info().Msg("hidden")
	if buf.Len() != 0 {
		t.Errorf("info written at warn level: %q", buf.String())
	}
	logger.Warn().Msg("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Errorf("warn not written: %q", buf.String())
	}
}

func TestNewConsole(t *testing.T) {
	var buf bytes.Buffer
	logger, _, err := New(Config{Level: "info", Format: FormatConsole}, WithOutput(&buf), WithTerminalCheck(notTerminal))
	if err != nil {
		t.Fatal(err)
	}
	logger.Info().Int("units", 3).Msg("flattened")

	out := buf.String()
	if strings.HasPrefix(out, "{") {
		t.Fatalf("console format wrote JSON: %q", out)
	}
	for _, want := range []string{"INF", "flattened", "units=", "3"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
}

func TestNewAutoOnTerminal(t *testing.T) {
	var buf bytes.Buffer
	isTerm := func(io.Writer) bool { return true }
	logger, _, err := New(Config{Format: FormatAuto}, WithOutput(&buf), WithTerminalCheck(isTerm))
	if err != nil {
		t.Fatal(err)
	}
	logger.Info().Msg("hello")
	if strings.HasPrefix(buf.String(), "{") {
		t.Errorf("auto format on a terminal wrote JSON: %q", buf.String())
	}
}

func TestNewFileSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ecmastr.log")
	var buf bytes.Buffer
	cfg := DefaultConfig()
	cfg.Format = FormatJSON
	cfg.File = path
	logger, closer, err := New(cfg, WithOutput(&buf))
	if err != nil {
		t.Fatal(err)
	}
	logger.Info().Msg("to both")
	if err := closer.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "to both") || !strings.Contains(buf.String(), "to both") {
		t.Errorf("file=%q main=%q", data, buf.String())
	}
}

func TestNewInvalid(t *testing.T) {
	_, closer, err := New(Config{Level: "nope"})
	if !errors.Is(err, ErrInvalidLevel) {
		t.Fatalf("err = %v", err)
	}
	if closer == nil {
		t.Fatal("nil closer on error")
	}
}

func TestIsTerminal(t *testing.T) {
	if IsTerminal(&bytes.Buffer{}) {
		t.Error("buffer reported as terminal")
	}
}
