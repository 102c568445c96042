// Package task defines the task model and loads task files from disk.
// It parses JSON task lists and markdown task specs, validates IDs and
// statuses, and fingerprints loaded sets for change detection.
package task

// TaskStatus represents the reported state of a task.
type TaskStatus string

const (
	// StatusPending indicates the task has not begun.
	StatusPending TaskStatus = "pending"

	// StatusActive indicates the task is currently being worked on.
	StatusActive TaskStatus = "active"

	// StatusBlocked indicates the task is waiting on unmet dependencies.
	StatusBlocked TaskStatus = "blocked"

	// StatusDone indicates the task has finished.
	StatusDone TaskStatus = "done"

	// StatusCompleted is an accepted alias for StatusDone.
	StatusCompleted TaskStatus = "completed"
)

// validStatuses is the set of all known TaskStatus values.
var validStatuses = map[TaskStatus]bool{
	StatusPending:   true,
	StatusActive:    true,
	StatusBlocked:   true,
	StatusDone:      true,
	StatusCompleted: true,
}

// StatusClass partitions statuses by whether they still contribute
// remaining work to a dependency chain.
type StatusClass int

const (
	// ClassPending covers pending, active, and blocked tasks, plus any
	// unrecognized status value.
	ClassPending StatusClass = iota

	// ClassCompleted covers done and completed tasks.
	ClassCompleted
)

// Classify maps a status onto its contribution class. Unrecognized values
// classify as pending; the graph builder reports them as warnings.
func Classify(s TaskStatus) StatusClass {
	switch s {
	case StatusDone, StatusCompleted:
		return ClassCompleted
	default:
		return ClassPending
	}
}

// Task is a single task record as supplied by the caller: an opaque id
// (canonically "T" followed by digits), a title, a status, and the ids of
// the tasks it depends on.
type Task struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Status       TaskStatus `json:"status"`
	Dependencies []string   `json:"dependencies"`
	SpecFile     string     `json:"spec_file,omitempty"`
}

// Completed reports whether the task's status classifies as completed.
func (t *Task) Completed() bool {
	return Classify(t.Status) == ClassCompleted
}

// IsReady returns true if all dependencies are in the completed set.
// A task with no dependencies is always ready.
func (t *Task) IsReady(completedTasks map[string]bool) bool {
	for _, dep := range t.Dependencies {
		if !completedTasks[dep] {
			return false
		}
	}
	return true
}

// ValidStatus returns true if the status is a known TaskStatus value.
func ValidStatus(s TaskStatus) bool {
	return validStatuses[s]
}

// ValidStatuses returns all valid task status values.
func ValidStatuses() []TaskStatus {
	return []TaskStatus{StatusPending, StatusActive, StatusBlocked, StatusDone, StatusCompleted}
}

// IsValid returns true if the status is a recognized value.
func (s TaskStatus) IsValid() bool {
	return validStatuses[s]
}
