package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gustfall.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c != Default() {
		t.Fatalf("config = %+v, want defaults", c)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
width = 800
debug = true
standard-zoom = 1.5

[anomaly-log]
every = "250ms"
n = 2
`)
	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Width != 800 || c.Height != Default().Height || !c.Debug || c.StandardZoom != 1.5 {
		t.Fatalf("config = %+v", c)
	}
	if c.AnomalyLog.Every.Duration != 250*time.Millisecond || c.AnomalyLog.N != 2 {
		t.Fatalf("anomaly-log = %+v", c.AnomalyLog)
	}
	if l := c.AnomalyLog.Limiter(); l.Burst() != 2 {
		t.Fatalf("limiter burst = %d, want 2", l.Burst())
	}
}

func TestLoadRejects(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"unknown key", "speed = 3\n"},
		{"bad syntax", "width = \n"},
		{"bad duration", "[anomaly-log]\nevery = \"soon\"\n"},
		{"zero width", "width = 0\n"},
		{"negative scale", "draw-scale = -1\n"},
		{"missing level", "level = \"/nonexistent/level.json\"\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tc.body)); err == nil {
				t.Fatalf("Load accepted %q", tc.body)
			}
		})
	}
}

func TestUnknownKeysAreListed(t *testing.T) {
	_, err := Load(writeConfig(t, "speed = 3\nfoo = true\n"))
	var unknown ErrUnknownKeys
	if !errors.As(err, &unknown) || len(unknown) != 2 {
		t.Fatalf("err = %v, want two unknown keys", err)
	}
}
