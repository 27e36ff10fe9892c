// Package config provides configuration management for the pgnanki CLI.
//
// Values are layered with koanf: built-in defaults, then an optional
// pgnanki.yaml, then PGNANKI_* environment variables, then flags that were
// set explicitly on the command line.
package config

import (
	"github.com/leapstack-labs/pgnanki/internal/board"
	"github.com/leapstack-labs/pgnanki/internal/engine"
)

// Config holds all CLI configuration options.
type Config struct {
	StartMove    int    `koanf:"start_move" yaml:"start_move"`
	EndMove      int    `koanf:"end_move" yaml:"end_move"`
	IsBlack      bool   `koanf:"is_black" yaml:"is_black"`
	Verbose      bool   `koanf:"verbose" yaml:"verbose"`
	LightSquares string `koanf:"light_squares" yaml:"light_squares"`
	DarkSquares  string `koanf:"dark_squares" yaml:"dark_squares"`
	Highlight    string `koanf:"highlight" yaml:"highlight"`
	OutputDir    string `koanf:"output_dir" yaml:"output_dir"`
	MediaDir     string `koanf:"media_dir" yaml:"media_dir"`
	OutputFormat string `koanf:"output" yaml:"output"`
	LogLevel     string `koanf:"log_level" yaml:"log_level"`
}

// Default configuration values.
const (
	DefaultOutputDir = "."
	DefaultOutput    = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	DefaultLogLevel  = "warn"
	EnvPrefix        = "PGNANKI_"
)

// Defaults returns the built-in configuration.
func Defaults() *Config {
	return &Config{
		StartMove:    engine.DefaultStartMove,
		EndMove:      engine.DefaultEndMove,
		LightSquares: board.DefaultLight,
		DarkSquares:  board.DefaultDark,
		Highlight:    board.DefaultHighlight,
		OutputDir:    DefaultOutputDir,
		OutputFormat: DefaultOutput,
		LogLevel:     DefaultLogLevel,
	}
}

// RunConfig converts the CLI configuration into an engine run for one game.
func (c *Config) RunConfig(pgnPath, deckName string) engine.RunConfig {
	return engine.RunConfig{
		PGNPath:      pgnPath,
		DeckName:     deckName,
		StartMove:    c.StartMove,
		EndMove:      c.EndMove,
		IsBlack:      c.IsBlack,
		LightSquares: c.LightSquares,
		DarkSquares:  c.DarkSquares,
		Highlight:    c.Highlight,
		OutputDir:    c.OutputDir,
		MediaDir:     c.MediaDir,
		Verbose:      c.Verbose,
	}
}
