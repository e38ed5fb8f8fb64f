/*
 * Altair8K - Settings loader test cases.
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

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempConfig(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "altair8k.toml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	if err != nil {
		t.Fatal(err)
	}
	want := Default()
	if s != want {
		t.Errorf("got %+v want %+v", s, want)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeTempConfig(t, `
image_size = 16384
rnd_seed = 1234
autoload_path = "startup.bas"
log_path = "session.log"
debug = true
`)
	s, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if s.ImageSize != 16384 {
		t.Errorf("ImageSize = %d, want 16384", s.ImageSize)
	}
	if s.RNDSeed != 1234 {
		t.Errorf("RNDSeed = %d, want 1234", s.RNDSeed)
	}
	if s.AutoloadPath != "startup.bas" {
		t.Errorf("AutoloadPath = %q", s.AutoloadPath)
	}
	if s.LogPath != "session.log" {
		t.Errorf("LogPath = %q", s.LogPath)
	}
	if !s.Debug {
		t.Errorf("Debug = false, want true")
	}
}

func TestLoadPartialFileKeepsRemainingDefaults(t *testing.T) {
	path := writeTempConfig(t, `image_size = 32768`)
	s, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if s.ImageSize != 32768 {
		t.Errorf("ImageSize = %d, want 32768", s.ImageSize)
	}
	if s.LogPath != Default().LogPath {
		t.Errorf("LogPath = %q, want default %q", s.LogPath, Default().LogPath)
	}
}

func TestLoadRejectsNonPositiveImageSize(t *testing.T) {
	path := writeTempConfig(t, `image_size = 0`)
	if _, err := Load(path); err == nil {
		t.Error("expected an error for image_size = 0")
	}
}
