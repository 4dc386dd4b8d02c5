package repo

import "strings"

// fileHeaderPrefixes are the unified-diff header lines that survive filtering
// unconditionally.
var fileHeaderPrefixes = []string{"diff --git", "index ", "+++ ", "--- "}

// FilterDiff reduces a unified diff to its file headers, hunk headers and the
// added/removed/context lines inside each hunk. Everything else (mode lines,
// similarity scores, "no newline" markers) is dropped. The function is total
// and idempotent: filtering already-filtered output is a no-op.
func FilterDiff(text string) string {
	if text == "" {
		return ""
	}

	var b strings.Builder
	inHunk := false

	for _, line := range strings.Split(text, "\n") {
		switch {
		case strings.HasPrefix(line, "diff --git"):
			inHunk = false
			b.WriteString(line)
			b.WriteByte('\n')
		case isFileHeader(line):
			b.WriteString(line)
			b.WriteByte('\n')
		case strings.HasPrefix(line, "@@"):
			inHunk = true
			b.WriteString(line)
			b.WriteByte('\n')
		case inHunk && isHunkLine(line):
			b.WriteString(line)
			b.WriteByte('\n')
		}
	}

	return b.String()
}

func isFileHeader(line string) bool {
	for _, prefix := range fileHeaderPrefixes {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}

func isHunkLine(line string) bool {
	if line == "" {
		return false
	}
	switch line[0] {
	case '+', '-', ' ':
		return true
	}
	return false
}
