package task

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
		wantIDs []string
	}{
		{
			name:    "bare array",
			input:   `[{"id":"T001","status":"pending"},{"id":"T002","status":"done"}]`,
			wantIDs: []string{"T001", "T002"},
		},
		{
			name:    "tasks envelope",
			input:   `{"tasks":[{"id":"T001","status":"pending","dependencies":["T002"]}]}`,
			wantIDs: []string{"T001"},
		},
		{
			name:    "empty array",
			input:   `[]`,
			wantIDs: []string{},
		},
		{
			name:    "fenced json export",
			input:   "Here is the export:\n```json\n[{\"id\":\"T001\",\"status\":\"active\"}]\n```\nDone.",
			wantIDs: []string{"T001"},
		},
		{
			name:    "envelope embedded in prose",
			input:   `The tool printed {"tasks":[{"id":"T003","status":"blocked"}]} before exiting.`,
			wantIDs: []string{"T003"},
		},
		{
			name:    "object without tasks key",
			input:   `{"items":[{"id":"T001"}]}`,
			wantErr: true,
		},
		{
			name:    "not json at all",
			input:   "just some words",
			wantErr: true,
		},
		{
			name:    "empty input",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tasks, err := Parse([]byte(tt.input))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)

			ids := make([]string, 0, len(tasks))
			for _, tk := range tasks {
				ids = append(ids, tk.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestParse_FieldsRoundTrip(t *testing.T) {
	t.Parallel()

	input := `{"tasks":[{"id":"T010","title":"Wire the API","status":"active","dependencies":["T001","T004"]}]}`
	tasks, err := Parse([]byte(input))
	require.NoError(t, err)
	require.Len(t, tasks, 1)

	got := tasks[0]
	assert.Equal(t, "T010", got.ID)
	assert.Equal(t, "Wire the API", got.Title)
	assert.Equal(t, StatusActive, got.Status)
	assert.Equal(t, []string{"T001", "T004"}, got.Dependencies)
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "tasks.json")
	content := `{"tasks":[{"id":"T001","status":"done"},{"id":"T002","status":"pending","dependencies":["T001"]}]}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	tasks, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "T001", tasks[0].ID)
	assert.Equal(t, []string{"T001"}, tasks[1].Dependencies)
}

func TestLoadFile_NotFound(t *testing.T) {
	t.Parallel()

	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestLoadPath(t *testing.T) {
	t.Parallel()

	t.Run("json file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "tasks.json")
		require.NoError(t, os.WriteFile(path, []byte(`[{"id":"T001","status":"pending"}]`), 0o644))

		tasks, err := LoadPath(path)
		require.NoError(t, err)
		require.Len(t, tasks, 1)
		assert.Equal(t, "T001", tasks[0].ID)
	})

	t.Run("markdown spec file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "T005-single.md")
		require.NoError(t, os.WriteFile(path, []byte("# T005: Single\n\n| Status | active |\n"), 0o644))

		tasks, err := LoadPath(path)
		require.NoError(t, err)
		require.Len(t, tasks, 1)
		assert.Equal(t, "T005", tasks[0].ID)
		assert.Equal(t, StatusActive, tasks[0].Status)
		assert.Equal(t, path, tasks[0].SpecFile)
	})

	t.Run("directory of specs", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "T001-one.md"),
			[]byte("# T001: One\n"), 0o644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "T002-two.md"),
			[]byte("# T002: Two\n\n| Dependencies | T001 |\n"), 0o644))

		tasks, err := LoadPath(dir)
		require.NoError(t, err)
		require.Len(t, tasks, 2)
		assert.Equal(t, "T001", tasks[0].ID)
		assert.Equal(t, "T002", tasks[1].ID)
	})

	t.Run("missing path", func(t *testing.T) {
		t.Parallel()

		_, err := LoadPath(filepath.Join(t.TempDir(), "nope.json"))
		assert.Error(t, err)
	})
}
