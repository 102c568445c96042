package task

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// maxTaskFileSize is the maximum number of bytes read from a single task
// file, markdown or JSON. Files larger than this limit are rejected to
// prevent memory exhaustion.
const maxTaskFileSize = 1 << 20 // 1 MiB

// utf8BOM is the byte-order mark sequence prepended by some editors to UTF-8
// files. It is stripped before parsing so that regexes match reliably.
var utf8BOM = "\xef\xbb\xbf"

// Pre-compiled regexes for parsing task spec markdown files.
var (
	// reTitleLine matches "# T001: Some Title" or "# T001 - Some Title" at the start of a line.
	reTitleLine = regexp.MustCompile(`^#\s+(T\d+)(?::\s*|\s+-\s+)(.+)$`)

	// reMetaStatus matches "| Status | pending |" in a metadata table.
	reMetaStatus = regexp.MustCompile(`(?i)\|\s*Status\s*\|\s*([^|]+)\|`)

	// reMetaDeps matches "| Dependencies | T001, T003 |" in a metadata table.
	reMetaDeps = regexp.MustCompile(`(?i)\|\s*Dependencies\s*\|\s*([^|]+)\|`)

	// reTaskRef matches task ID references like "T001", "T123".
	reTaskRef = regexp.MustCompile(`T\d+`)

	// reTaskFilename matches task spec filenames like "T001-some-description.md".
	reTaskFilename = regexp.MustCompile(`^(T\d+)-[\w-]+\.md$`)
)

// ParseSpec parses raw markdown content of a task spec file into a Task.
// It returns an error if the content does not contain a valid task heading
// ("# TNNN: Title" or "# TNNN - Title"). A missing Status row defaults to
// pending; the status value is not validated here, since the analysis engine
// classifies unknown statuses itself and reports them as warnings.
func ParseSpec(content string) (*Task, error) {
	// Strip UTF-8 BOM if present.
	content = strings.TrimPrefix(content, utf8BOM)

	// Normalise Windows line endings.
	content = strings.ReplaceAll(content, "\r\n", "\n")

	t := &Task{
		Status:       StatusPending,
		Dependencies: []string{},
	}

	foundTitle := false
	for _, line := range strings.Split(content, "\n") {
		// --- Title line ---
		if !foundTitle {
			if m := reTitleLine.FindStringSubmatch(line); m != nil {
				t.ID = m[1]
				t.Title = strings.TrimSpace(m[2])
				foundTitle = true
				continue
			}
		}

		// --- Metadata table rows (only lines that start with "|") ---
		if !strings.HasPrefix(strings.TrimSpace(line), "|") {
			continue
		}

		if m := reMetaStatus.FindStringSubmatch(line); m != nil {
			if s := strings.TrimSpace(m[1]); s != "" {
				t.Status = TaskStatus(strings.ToLower(s))
			}
			continue
		}
		if m := reMetaDeps.FindStringSubmatch(line); m != nil {
			t.Dependencies = extractTaskRefs(m[1])
			continue
		}
	}

	if !foundTitle {
		return nil, fmt.Errorf("parsing task spec: no valid task heading found (expected '# TNNN: Title' or '# TNNN - Title')")
	}

	return t, nil
}

// ParseSpecFile reads a task spec file from disk and parses it.
// It enforces a 1 MiB size limit and delegates to ParseSpec.
func ParseSpecFile(path string) (*Task, error) {
	raw, err := readLimited(path)
	if err != nil {
		return nil, err
	}

	t, err := ParseSpec(string(raw))
	if err != nil {
		return nil, fmt.Errorf("parsing task file %q: %w", path, err)
	}
	t.SpecFile = path
	return t, nil
}

// readLimited reads a file enforcing the maxTaskFileSize limit. It reads at
// most maxTaskFileSize+1 bytes so oversized files are detected without
// loading them entirely into memory.
func readLimited(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening task file %q: %w", path, err)
	}
	defer f.Close() //nolint:errcheck

	limited := io.LimitReader(f, maxTaskFileSize+1)
	raw, err := io.ReadAll(limited)
	if err != nil {
		return nil, fmt.Errorf("reading task file %q: %w", path, err)
	}
	if int64(len(raw)) > maxTaskFileSize {
		return nil, fmt.Errorf("task file %q exceeds 1 MiB limit", path)
	}
	return raw, nil
}

// DiscoverSpecs scans dir recursively for files matching "TNNN-*.md",
// parses each one, and returns the tasks sorted by ID. An error is returned
// if any file cannot be parsed or if two files declare the same task ID.
func DiscoverSpecs(dir string) ([]Task, error) {
	matches, err := doublestar.FilepathGlob(filepath.Join(dir, "**", "T*.md"))
	if err != nil {
		return nil, fmt.Errorf("globbing task specs in %q: %w", dir, err)
	}

	// Filter using the strict filename regex to reject near-misses such as
	// "Title.md" or "T001.md" without a slug.
	var paths []string
	for _, p := range matches {
		base := filepath.Base(p)
		if reTaskFilename.MatchString(base) {
			paths = append(paths, p)
		}
	}
	sort.Strings(paths)

	seen := make(map[string]string, len(paths)) // id -> first path
	tasks := make([]Task, 0, len(paths))

	for _, p := range paths {
		t, err := ParseSpecFile(p)
		if err != nil {
			return nil, fmt.Errorf("discovering tasks: %w", err)
		}

		if first, dup := seen[t.ID]; dup {
			return nil, fmt.Errorf(
				"discovering tasks: duplicate task ID %q found in %q and %q",
				t.ID, first, p,
			)
		}
		seen[t.ID] = p
		tasks = append(tasks, *t)
	}

	// Sort lexicographically by ID; zero-padded IDs sort correctly.
	sort.Slice(tasks, func(i, j int) bool {
		return tasks[i].ID < tasks[j].ID
	})

	return tasks, nil
}

// ExpandPatterns resolves a mix of literal paths and doublestar glob
// patterns into a sorted, deduplicated list of file paths. Literal paths
// are kept even when the file does not exist so the caller can surface a
// useful open error; a glob pattern that matches nothing is an error.
func ExpandPatterns(patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var paths []string

	for _, pat := range patterns {
		if !strings.ContainsAny(pat, "*?[{") {
			if !seen[pat] {
				seen[pat] = true
				paths = append(paths, pat)
			}
			continue
		}

		matches, err := doublestar.FilepathGlob(pat)
		if err != nil {
			return nil, fmt.Errorf("expanding pattern %q: %w", pat, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("pattern %q matched no files", pat)
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				paths = append(paths, m)
			}
		}
	}

	sort.Strings(paths)
	return paths, nil
}

// extractTaskRefs returns all TNNN references found in s.
// If s is "None" (case-insensitive) or contains no task references,
// an empty (non-nil) slice is returned.
func extractTaskRefs(s string) []string {
	trimmed := strings.TrimSpace(s)
	if strings.EqualFold(trimmed, "none") {
		return []string{}
	}

	refs := reTaskRef.FindAllString(trimmed, -1)
	if refs == nil {
		return []string{}
	}
	return refs
}
