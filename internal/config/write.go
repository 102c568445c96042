package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
)

// fileHeader is prepended to every generated rook.toml. Keys omitted from
// the file fall back to built-in defaults at load time, so the generated
// file is safe to prune by hand.
const fileHeader = `# rook.toml -- project configuration for rook.
# Any key removed from this file falls back to its built-in default.

`

// Encode renders cfg as TOML with the standard header comment.
func Encode(cfg *Config) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(fileHeader)
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteFile renders cfg as TOML and writes it to path, creating parent
// directories as needed. When force is false and the file already exists,
// it returns an error instead of overwriting.
func WriteFile(path string, cfg *Config, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("config file %s already exists", path)
	}

	data, err := Encode(cfg)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating directory for %s: %w", path, err)
		}
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	log.Debug("wrote config file", "path", path)
	return nil
}
