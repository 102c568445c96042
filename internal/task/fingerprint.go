package task

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Fingerprint returns a stable 64-bit digest of the analysis-relevant fields
// of a task collection: id, status, and dependencies. Record order and
// dependency order do not affect the digest. Titles and provenance do not
// participate, so rewording a task leaves its fingerprint unchanged.
func Fingerprint(tasks []Task) uint64 {
	lines := make([]string, 0, len(tasks))
	for _, t := range tasks {
		deps := append([]string(nil), t.Dependencies...)
		sort.Strings(deps)
		lines = append(lines, t.ID+"|"+string(t.Status)+"|"+strings.Join(deps, ","))
	}
	sort.Strings(lines)

	h := xxhash.New()
	for _, line := range lines {
		_, _ = h.WriteString(line)
		_, _ = h.WriteString("\n")
	}
	return h.Sum64()
}

// FingerprintString returns the digest formatted as 16 lowercase hex digits.
func FingerprintString(tasks []Task) string {
	return fmt.Sprintf("%016x", Fingerprint(tasks))
}
