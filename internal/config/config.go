package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Transcription contains the speech-to-text provider settings.
type Transcription struct {
	Provider     string `toml:"provider"`
	APIKey       string `toml:"api_key"`
	Model        string `toml:"model"`
	ChunkMinutes int    `toml:"chunk_minutes"`
	Concurrency  int    `toml:"concurrency"`
}

// Captions contains the default caption styling settings.
type Captions struct {
	Theme           string  `toml:"theme"`
	WordsPerLine    int     `toml:"words_per_line"`
	MaxCharsPerLine int     `toml:"max_chars_per_line"`
	Animation       string  `toml:"animation"`
	Padding         float64 `toml:"padding"`
}

// Video contains the output dimensions used when no input video is probed.
type Video struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
}

// Config encapsulates all configuration values for subnow.
type Config struct {
	Transcription Transcription `toml:"transcription"`
	Captions      Captions      `toml:"captions"`
	Video         Video         `toml:"video"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Transcription: Transcription{
			Provider:     "openai",
			ChunkMinutes: 10,
			Concurrency:  3,
		},
		Captions: Captions{
			Theme:   "hormozi",
			Padding: 0.1,
		},
		Video: Video{
			Width:  1920,
			Height: 1080,
		},
	}
}

// DefaultConfigPath returns the default configuration file location.
func DefaultConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(dir, "subnow", "config.toml"), nil
}

// Load parses the configuration file at path, or the default location
// when path is empty. A missing file is not an error: the built-in
// defaults are returned.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			return cfg, err
		}
		path = defaultPath
	}

	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	decoder := toml.NewDecoder(file)
	if err := decoder.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Transcription.Provider {
	case "", "openai", "gemini":
	default:
		return fmt.Errorf("unknown transcription provider %q", c.Transcription.Provider)
	}
	if c.Transcription.ChunkMinutes < 0 {
		return fmt.Errorf("chunk_minutes must not be negative")
	}
	if c.Transcription.Concurrency < 0 {
		return fmt.Errorf("concurrency must not be negative")
	}
	if c.Captions.Padding < 0 {
		return fmt.Errorf("padding must not be negative")
	}
	if c.Video.Width < 0 || c.Video.Height < 0 {
		return fmt.Errorf("video dimensions must not be negative")
	}
	return nil
}
