// Package stacktrace trims raw goroutine stacks down to this repository's
// internal frames so panic logs stay readable.
package stacktrace

import "strings"

// InternalPaths extracts "internal/..." file:line frames from a raw stack.
func InternalPaths(stack []byte) []string {
	lines := strings.Split(string(stack), "\n")
	paths := make([]string, 0, len(lines))

	for i := 0; i+1 < len(lines); i++ {
		line := strings.TrimSpace(lines[i+1])
		if !strings.Contains(line, "/internal/") {
			continue
		}

		idx := strings.Index(line, ".go:")
		if idx == -1 {
			continue
		}

		end := strings.Index(line[idx:], " ")
		if end == -1 {
			end = len(line)
		} else {
			end += idx
		}

		frame := line[:end]
		if cut := strings.Index(frame, "/internal/"); cut != -1 {
			paths = append(paths, frame[cut+1:])
		}
	}

	return paths
}
