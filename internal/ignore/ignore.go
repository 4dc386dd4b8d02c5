// Package ignore compiles gitignore-style patterns into match predicates that
// decide which changed files are eligible for remote summarization. Matching
// never affects the changelog listing itself.
package ignore

import (
	"bufio"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// FileName is the project-level ignore file, resolved against the repository root.
const FileName = ".clogignore"

// DefaultPatterns is the built-in rule set used when no project-level ignore
// file exists: logs, temp files, build artifacts, lockfiles.
var DefaultPatterns = []string{
	"*.log",
	"*.tmp",
	"*.temp",
	"node_modules/**",
	".git/**",
	"dist/**",
	"build/**",
	"*.min.js",
	"*.min.css",
	"package-lock.json",
	"yarn.lock",
}

// RuleSet is an ordered set of compiled ignore patterns. A path is ignored if
// it matches any pattern; order carries no precedence and negation is not
// supported.
type RuleSet struct {
	rules []*regexp.Regexp
}

// Compile builds a RuleSet from gitignore-style patterns. A pattern that does
// not compile is skipped; compilation of the set as a whole never fails.
func Compile(patterns []string) *RuleSet {
	rs := &RuleSet{}
	for _, p := range patterns {
		re, err := compilePattern(p)
		if err != nil {
			continue
		}
		rs.rules = append(rs.rules, re)
	}
	return rs
}

// compilePattern translates one gitignore-style pattern into a regexp:
// dot and slash are escaped, `*` matches any run of characters, `?` matches a
// single character. A trailing `/**` or bare trailing `/` matches the
// directory and everything beneath it, a leading `/` anchors at the start of
// the path, and any other pattern matches wherever a path segment begins.
func compilePattern(pattern string) (*regexp.Regexp, error) {
	anchored := strings.HasPrefix(pattern, "/")
	pattern = strings.TrimPrefix(pattern, "/")

	dirPattern := false
	switch {
	case strings.HasSuffix(pattern, "/**"):
		pattern = strings.TrimSuffix(pattern, "/**")
		dirPattern = true
	case strings.HasSuffix(pattern, "/"):
		pattern = strings.TrimSuffix(pattern, "/")
		dirPattern = true
	}

	body := strings.NewReplacer(
		".", `\.`,
		"/", `\/`,
		"*", ".*",
		"?", ".",
	).Replace(pattern)

	var expr strings.Builder
	if anchored {
		expr.WriteString("^")
	} else {
		expr.WriteString("(^|/)")
	}
	expr.WriteString(body)
	if dirPattern {
		expr.WriteString("(/.*)?$")
	} else {
		expr.WriteString("($|/)")
	}

	return regexp.Compile(expr.String())
}

// Ignored reports whether path matches any pattern in the set. Paths are
// repository-relative with forward slashes.
func (rs *RuleSet) Ignored(path string) bool {
	for _, re := range rs.rules {
		if re.MatchString(path) {
			return true
		}
	}
	return false
}

// Len returns the number of compiled patterns in the set.
func (rs *RuleSet) Len() int {
	return len(rs.rules)
}

// Load reads the project-level ignore file under root and compiles it. Blank
// lines and `#` comments are excluded. When the file does not exist, the
// built-in defaults are compiled instead.
func Load(root string) *RuleSet {
	file, err := os.Open(filepath.Join(root, FileName))
	if err != nil {
		return Compile(DefaultPatterns)
	}
	defer file.Close()

	var patterns []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, line)
	}

	return Compile(patterns)
}
