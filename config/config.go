// Package config holds runtime settings read from an optional TOML file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/milk9111/gustfall/common"
	"golang.org/x/time/rate"
)

type Config struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
	TPS    int    `toml:"tps"`
	Debug  bool   `toml:"debug"`

	StandardZoom float64 `toml:"standard-zoom"`
	// DrawScale is pixels per world unit.
	DrawScale float64 `toml:"draw-scale"`
	// LoadBudget is how many asset entries the loading screen resolves per frame.
	LoadBudget int `toml:"load-budget"`

	// Level is a Tiled JSON file played instead of the built-in sample.
	Level string `toml:"level"`

	AnomalyLog Limiter `toml:"anomaly-log"`
}

// Limiter is a token bucket: N events every Every.
type Limiter struct {
	Every duration `toml:"every"`
	N     int      `toml:"n"`
}

func (l *Limiter) Limiter() *rate.Limiter {
	if l.Every.Duration <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	return rate.NewLimiter(rate.Every(l.Every.Duration), l.N)
}

type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) (err error) {
	d.Duration, err = time.ParseDuration(string(text))
	return
}

func Default() Config {
	return Config{
		Width:        1280,
		Height:       720,
		Title:        "gustfall",
		TPS:          common.TicksPerSecond,
		StandardZoom: common.StandardZoom,
		DrawScale:    32,
		LoadBudget:   4,
		AnomalyLog: Limiter{
			Every: duration{time.Second},
			N:     5,
		},
	}
}

// ErrUnknownKeys lists keys in the file that no setting reads.
type ErrUnknownKeys []string

func (e ErrUnknownKeys) Error() string {
	return "config: unknown keys: " + strings.Join(e, ", ")
}

// Load decodes path over the defaults. A missing file yields the defaults.
func Load(path string) (Config, error) {
	c := Default()
	if path == "" {
		return c, nil
	}
	meta, err := toml.DecodeFile(path, &c)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		var unknown ErrUnknownKeys
		for _, key := range undecoded {
			unknown = append(unknown, key.String())
		}
		return Config{}, unknown
	}
	return c, c.Validate()
}

func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("config: window %dx%d must be positive", c.Width, c.Height)
	case c.TPS <= 0:
		return fmt.Errorf("config: tps %d must be positive", c.TPS)
	case c.StandardZoom <= 0:
		return fmt.Errorf("config: standard-zoom %v must be positive", c.StandardZoom)
	case c.DrawScale <= 0:
		return fmt.Errorf("config: draw-scale %v must be positive", c.DrawScale)
	}
	if c.Level != "" {
		if _, err := os.Stat(c.Level); err != nil {
			return fmt.Errorf("config: level: %w", err)
		}
	}
	return nil
}
