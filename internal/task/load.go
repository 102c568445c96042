package task

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/AbdelazizMoustafa10m/Rook/internal/jsonutil"
)

// taskFile is the envelope form of a JSON task file: {"tasks": [...]}.
type taskFile struct {
	Tasks []Task `json:"tasks"`
}

// Parse decodes a JSON task list from raw bytes. Two shapes are accepted: a
// top-level array of task objects, or an object carrying a "tasks" array.
// Input that is not directly valid JSON is passed through jsonutil.Extract
// first, so exports wrapped in markdown fences or surrounded by prose still
// load.
func Parse(data []byte) ([]Task, error) {
	raw := json.RawMessage(data)
	if !json.Valid(data) {
		extracted, err := jsonutil.Extract(string(data))
		if err != nil {
			return nil, fmt.Errorf("parsing task list: %w", err)
		}
		raw = extracted
	}

	// Bare-array shape.
	var tasks []Task
	if err := json.Unmarshal(raw, &tasks); err == nil {
		return tasks, nil
	}

	// Envelope shape.
	var envelope taskFile
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("parsing task list: %w", err)
	}
	if envelope.Tasks == nil {
		return nil, fmt.Errorf(`parsing task list: no "tasks" array found`)
	}
	return envelope.Tasks, nil
}

// LoadFile reads a JSON task file from disk and parses it. It enforces the
// same 1 MiB size limit as the markdown spec loader.
func LoadFile(path string) ([]Task, error) {
	raw, err := readLimited(path)
	if err != nil {
		return nil, err
	}

	tasks, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("loading task file %q: %w", path, err)
	}
	return tasks, nil
}

// LoadPath loads tasks from a single path. Directories are scanned for
// markdown task specs, ".md" files are parsed as a single spec, and
// everything else is decoded as a JSON task list.
func LoadPath(path string) ([]Task, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("reading task input %q: %w", path, err)
	}

	if info.IsDir() {
		return DiscoverSpecs(path)
	}
	if strings.EqualFold(filepath.Ext(path), ".md") {
		t, err := ParseSpecFile(path)
		if err != nil {
			return nil, err
		}
		return []Task{*t}, nil
	}
	return LoadFile(path)
}
