package suite

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"grun/internal/driver"
	"grun/internal/source"
)

// ManifestName is the optional per-suite configuration file.
const ManifestName = "grun.toml"

// DefaultPattern selects cases when the manifest does not.
const DefaultPattern = "*.py"

// GoldenExt is appended to a case path to find its expected dump.
const GoldenExt = ".tokens"

// Manifest configures a suite directory.
type Manifest struct {
	Grammar  string         `toml:"grammar"`
	Encoding string         `toml:"encoding"`
	Pattern  string         `toml:"pattern"`
	KeepWS   bool           `toml:"keep_ws"`
	Expect   map[string]int `toml:"expect"` // relative slash path -> exit code

	Path string `toml:"-"` // пустой, если манифеста нет
}

// DefaultManifest is used for directories without grun.toml.
func DefaultManifest() Manifest {
	return Manifest{
		Grammar:  driver.DefaultGrammar,
		Encoding: source.EncodingUTF8,
		Pattern:  DefaultPattern,
		Expect:   map[string]int{},
	}
}

// LoadManifest reads dir/grun.toml when present. Missing keys keep their
// defaults; a missing file is not an error.
func LoadManifest(dir string) (Manifest, error) {
	m := DefaultManifest()
	path := filepath.Join(dir, ManifestName)
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return m, nil
		}
		return m, fmt.Errorf("failed to stat %q: %w", path, err)
	}

	meta, err := toml.DecodeFile(path, &m)
	if err != nil {
		return m, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return m, fmt.Errorf("%s: unknown key %q", path, undecoded[0].String())
	}
	m.Path = path
	if m.Expect == nil {
		m.Expect = map[string]int{}
	}
	if err := m.Validate(); err != nil {
		return m, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Validate checks values that would otherwise fail late, per case.
func (m *Manifest) Validate() error {
	if m.Grammar == "" {
		m.Grammar = driver.DefaultGrammar
	}
	if m.Encoding == "" {
		m.Encoding = source.EncodingUTF8
	}
	if m.Pattern == "" {
		m.Pattern = DefaultPattern
	}
	if _, err := filepath.Match(m.Pattern, ""); err != nil {
		return fmt.Errorf("invalid pattern %q: %w", m.Pattern, err)
	}
	for rel, code := range m.Expect {
		if code < 0 {
			return fmt.Errorf("expect[%q]: exit code must be non-negative, got %d", rel, code)
		}
	}
	return nil
}

// Expected returns the exit code a case should produce.
func (m Manifest) Expected(rel string) int {
	return m.Expect[rel]
}
