package task

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTask_IsReady(t *testing.T) {
	tests := []struct {
		name      string
		deps      []string
		completed map[string]bool
		want      bool
	}{
		{
			name:      "no dependencies is always ready",
			deps:      nil,
			completed: map[string]bool{},
			want:      true,
		},
		{
			name:      "empty dependencies is always ready",
			deps:      []string{},
			completed: map[string]bool{},
			want:      true,
		},
		{
			name:      "all dependencies completed",
			deps:      []string{"T001", "T002"},
			completed: map[string]bool{"T001": true, "T002": true},
			want:      true,
		},
		{
			name:      "some dependencies not completed",
			deps:      []string{"T001", "T002"},
			completed: map[string]bool{"T001": true},
			want:      false,
		},
		{
			name:      "nil completed map with dependencies",
			deps:      []string{"T001"},
			completed: nil,
			want:      false,
		},
		{
			name:      "dependency explicitly set to false",
			deps:      []string{"T001"},
			completed: map[string]bool{"T001": false},
			want:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			task := &Task{
				ID:           "T999",
				Dependencies: tt.deps,
			}
			assert.Equal(t, tt.want, task.IsReady(tt.completed))
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		status TaskStatus
		want   StatusClass
	}{
		{name: "pending is pending-class", status: StatusPending, want: ClassPending},
		{name: "active is pending-class", status: StatusActive, want: ClassPending},
		{name: "blocked is pending-class", status: StatusBlocked, want: ClassPending},
		{name: "done is completed-class", status: StatusDone, want: ClassCompleted},
		{name: "completed is completed-class", status: StatusCompleted, want: ClassCompleted},
		{name: "empty string is pending-class", status: "", want: ClassPending},
		{name: "unknown value is pending-class", status: "in_review", want: ClassPending},
		{name: "uppercase DONE is pending-class", status: "DONE", want: ClassPending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Classify(tt.status))
		})
	}
}

func TestValidStatus(t *testing.T) {
	tests := []struct {
		name   string
		status TaskStatus
		want   bool
	}{
		{name: "pending is valid", status: StatusPending, want: true},
		{name: "active is valid", status: StatusActive, want: true},
		{name: "blocked is valid", status: StatusBlocked, want: true},
		{name: "done is valid", status: StatusDone, want: true},
		{name: "completed is valid", status: StatusCompleted, want: true},
		{name: "empty string is invalid", status: "", want: false},
		{name: "unknown status is invalid", status: "unknown", want: false},
		{name: "DONE uppercase is invalid", status: "DONE", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ValidStatus(tt.status))
		})
	}
}

func TestTaskStatus_StringValues(t *testing.T) {
	t.Parallel()

	// Verify that TaskStatus constants are string values, not iota.
	assert.Equal(t, TaskStatus("pending"), StatusPending)
	assert.Equal(t, TaskStatus("active"), StatusActive)
	assert.Equal(t, TaskStatus("blocked"), StatusBlocked)
	assert.Equal(t, TaskStatus("done"), StatusDone)
	assert.Equal(t, TaskStatus("completed"), StatusCompleted)
}

func TestTask_Completed(t *testing.T) {
	t.Parallel()

	done := Task{ID: "T001", Status: StatusDone}
	assert.True(t, done.Completed())

	pending := Task{ID: "T002", Status: StatusPending}
	assert.False(t, pending.Completed())

	unknown := Task{ID: "T003", Status: "weird"}
	assert.False(t, unknown.Completed())
}

func TestTask_JSONRoundTrip(t *testing.T) {
	t.Parallel()

	task := Task{
		ID:           "T004",
		Title:        "Central data types",
		Status:       StatusActive,
		Dependencies: []string{"T001", "T002", "T003"},
	}

	data, err := json.Marshal(task)
	require.NoError(t, err)

	var decoded Task
	err = json.Unmarshal(data, &decoded)
	require.NoError(t, err)

	assert.Equal(t, task, decoded)
}

func TestTask_JSONStructTags(t *testing.T) {
	t.Parallel()

	task := Task{
		ID:           "T001",
		Title:        "Test",
		Status:       StatusPending,
		Dependencies: []string{"T000"},
	}

	data, err := json.Marshal(task)
	require.NoError(t, err)

	raw := string(data)
	assert.Contains(t, raw, `"id"`)
	assert.Contains(t, raw, `"title"`)
	assert.Contains(t, raw, `"status"`)
	assert.Contains(t, raw, `"dependencies"`)
	assert.NotContains(t, raw, `"spec_file"`, "empty provenance must be omitted")
}

func TestTask_StatusSerializesAsString(t *testing.T) {
	t.Parallel()

	task := Task{
		ID:     "T001",
		Status: StatusCompleted,
	}

	data, err := json.Marshal(task)
	require.NoError(t, err)

	assert.Contains(t, string(data), `"status":"completed"`)
}
