/*
 * Altair8K - TOML settings loader.
 *
 * Copyright 2024, Richard Cornwell
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

// Package config loads the interpreter's settings from a TOML file:
// image size, an optional RND seed, an optional autoload program path,
// and logging options.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Settings is the typed result of parsing a settings file.
type Settings struct {
	// ImageSize is the byte size of the interpreter's image buffer.
	ImageSize int `toml:"image_size"`

	// RNDSeed, if non-zero, is applied as an initial RND(-x) reseed
	// before the REPL starts, for reproducible sessions.
	RNDSeed int32 `toml:"rnd_seed"`

	// AutoloadPath, if set, is a saved program image loaded at startup.
	AutoloadPath string `toml:"autoload_path"`

	// LogPath is where session log records are written; empty disables
	// file logging.
	LogPath string `toml:"log_path"`

	// Debug mirrors -d/--debug: also tee log records to stderr.
	Debug bool `toml:"debug"`
}

// Default returns the settings a freshly installed interpreter uses when
// no settings file is present.
func Default() Settings {
	return Settings{
		ImageSize: 8192,
		LogPath:   "altair8k.log",
	}
}

// Load reads and parses a TOML settings file at path, starting from
// Default() so a partial file only overrides what it names.
func Load(path string) (Settings, error) {
	s := Default()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return s, nil
	}
	if _, err := toml.DecodeFile(path, &s); err != nil {
		return Settings{}, fmt.Errorf("config: %w", err)
	}
	if s.ImageSize <= 0 {
		return Settings{}, fmt.Errorf("config: image_size must be positive, got %d", s.ImageSize)
	}
	return s, nil
}
