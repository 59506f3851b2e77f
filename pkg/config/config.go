// Package config loads blockfill settings from a TOML file.
//
// The file lives at $XDG_CONFIG_HOME/blockfill/config.toml, falling back to
// ~/.config/blockfill/config.toml. A missing file is not an error: every
// setting has a default, and keys absent from the file keep theirs.
//
//	[board]
//	size = 8
//	target_probability = 0.3
//	clear_columns = false
//
//	[game]
//	seed = 0
//	hint_duration = "1s"
//
//	[server]
//	addr = ":8080"
//	session_ttl = "30m"
//	max_sessions = 1000
//
//	[[pieces]]
//	name = "square"
//	color = "#4dabf7"
//	rows = ["##", "##"]
//
// When [[pieces]] is present it replaces the built-in catalog.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/blockfill/pkg/core/board"
	"github.com/matzehuels/blockfill/pkg/core/lines"
	"github.com/matzehuels/blockfill/pkg/core/shape"
	bferrors "github.com/matzehuels/blockfill/pkg/errors"
	"github.com/matzehuels/blockfill/pkg/game"
)

const appName = "blockfill"

// Default values.
const (
	DefaultHintDuration = time.Second
	DefaultAddr         = ":8080"
	DefaultSessionTTL   = 30 * time.Minute
	DefaultMaxSessions  = 1000
)

// Config is the full settings file.
type Config struct {
	Board  BoardConfig   `toml:"board"`
	Game   GameConfig    `toml:"game"`
	Server ServerConfig  `toml:"server"`
	Pieces []PieceConfig `toml:"pieces,omitempty"`
}

// BoardConfig controls board generation and clearing.
type BoardConfig struct {
	Size              int     `toml:"size"`
	TargetProbability float64 `toml:"target_probability"`
	ClearColumns      bool    `toml:"clear_columns"`
}

// GameConfig controls session behavior.
type GameConfig struct {
	Seed         uint64   `toml:"seed"`
	HintDuration Duration `toml:"hint_duration"`
}

// ServerConfig controls the HTTP API.
type ServerConfig struct {
	Addr        string   `toml:"addr"`
	SessionTTL  Duration `toml:"session_ttl"`
	MaxSessions int      `toml:"max_sessions"`
}

// PieceConfig is one custom catalog entry in text-row form.
type PieceConfig struct {
	Name  string   `toml:"name"`
	Color string   `toml:"color"`
	Rows  []string `toml:"rows"`
}

// Duration is a time.Duration written as a Go duration string ("1s", "30m").
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	d.Duration = v
	return nil
}

// MarshalText formats the duration.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Board: BoardConfig{
			Size:              board.DefaultSize,
			TargetProbability: board.DefaultTargetProbability,
		},
		Game: GameConfig{
			HintDuration: Duration{DefaultHintDuration},
		},
		Server: ServerConfig{
			Addr:        DefaultAddr,
			SessionTTL:  Duration{DefaultSessionTTL},
			MaxSessions: DefaultMaxSessions,
		},
	}
}

// Path returns the default config file location.
func Path() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// Load reads path on top of [Default]. A missing file yields the defaults.
// Unknown keys and invalid values are INVALID_CONFIG errors.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	return decode(string(data), cfg)
}

// Parse decodes TOML text on top of [Default].
func Parse(text string) (Config, error) {
	return decode(text, Default())
}

func decode(text string, cfg Config) (Config, error) {
	md, err := toml.Decode(text, &cfg)
	if err != nil {
		return cfg, bferrors.Wrap(bferrors.ErrCodeInvalidConfig, err, "decode config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, bferrors.New(bferrors.ErrCodeInvalidConfig, "unknown config keys: %s", strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks every setting.
func (c Config) Validate() error {
	if err := bferrors.ValidateBoardSize(c.Board.Size); err != nil {
		return err
	}
	if err := bferrors.ValidateProbability(c.Board.TargetProbability); err != nil {
		return err
	}
	if c.Game.HintDuration.Duration <= 0 {
		return bferrors.New(bferrors.ErrCodeInvalidConfig, "game.hint_duration must be positive")
	}
	if c.Server.SessionTTL.Duration <= 0 {
		return bferrors.New(bferrors.ErrCodeInvalidConfig, "server.session_ttl must be positive")
	}
	if c.Server.MaxSessions < 1 {
		return bferrors.New(bferrors.ErrCodeInvalidConfig, "server.max_sessions must be at least 1")
	}
	if _, err := c.Catalog(); err != nil {
		return err
	}
	return nil
}

// Catalog returns the configured pieces, or the built-in catalog when none
// are configured. Duplicate names are rejected.
func (c Config) Catalog() ([]shape.Shape, error) {
	if len(c.Pieces) == 0 {
		return shape.Catalog(), nil
	}
	out := make([]shape.Shape, 0, len(c.Pieces))
	seen := make(map[string]bool, len(c.Pieces))
	for i, p := range c.Pieces {
		s, err := shape.Parse(p.Name, p.Color, p.Rows)
		if err != nil {
			return nil, bferrors.Wrap(bferrors.ErrCodeInvalidConfig, err, "pieces[%d]", i)
		}
		if seen[p.Name] {
			return nil, bferrors.New(bferrors.ErrCodeInvalidConfig, "pieces[%d]: duplicate name %q", i, p.Name)
		}
		seen[p.Name] = true
		out = append(out, s)
	}
	return out, nil
}

// ClearMode maps board.clear_columns to a line clearing mode.
func (c Config) ClearMode() lines.Mode {
	if c.Board.ClearColumns {
		return lines.RowsAndColumns
	}
	return lines.Rows
}

// GameOptions builds session options from the settings. Logger and hooks are
// left for the caller.
func (c Config) GameOptions() (game.Options, error) {
	cat, err := c.Catalog()
	if err != nil {
		return game.Options{}, err
	}
	return game.Options{
		Size:              c.Board.Size,
		TargetProbability: game.Probability(c.Board.TargetProbability),
		Seed:              c.Game.Seed,
		Catalog:           cat,
		ClearMode:         c.ClearMode(),
	}, nil
}

// PiecesFrom converts shapes to their config form.
func PiecesFrom(shapes []shape.Shape) []PieceConfig {
	out := make([]PieceConfig, len(shapes))
	for i, s := range shapes {
		out[i] = PieceConfig{Name: s.Name(), Color: s.Color(), Rows: s.Pattern()}
	}
	return out
}

// Encode writes c as TOML.
func Encode(w io.Writer, c Config) error {
	return toml.NewEncoder(w).Encode(c)
}

// WriteFile writes c to path, creating parent directories. An existing file
// is only replaced when overwrite is set.
func WriteFile(path string, c Config, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists", path)
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create config: %w", err)
	}
	if err := Encode(f, c); err != nil {
		f.Close()
		return fmt.Errorf("encode config: %w", err)
	}
	return f.Close()
}
