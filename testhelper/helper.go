package testhelper

import (
	"fmt"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
	"testing"
)

var (
	leadingWhiteSpaces = regexp.MustCompile(`^(\s+)`)
	leadingTabs        = regexp.MustCompile(`^(\t+)`)
)

func replaceTab(match string) string {
	numTabs := strings.Count(match, "\t")
	return strings.Repeat("    ", numTabs)
}

// TrimIndent strips the indentation of the first content line from every line
// of a raw string literal. The blank first and last lines are dropped and the
// result ends with a newline.
func TrimIndent(t *testing.T, src string) string {
	t.Helper()

	lines := strings.Split(src, "\n")
	if len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}

	if len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}

	var indent string
	if len(lines) > 0 {
		indent = leadingWhiteSpaces.FindString(lines[0])
	}

	for i, line := range lines {
		line = strings.TrimPrefix(line, indent)
		lines[i] = leadingTabs.ReplaceAllStringFunc(line, replaceTab)
	}

	return strings.Join(lines, "\n") + "\n"
}

// GetCaller returns " (file:line)" of the calling test table entry, to be
// appended to case names so failures point at the fixture.
func GetCaller(t *testing.T) string {
	t.Helper()

	_, file, line, ok := runtime.Caller(1)
	if !ok {
		return ""
	}

	return fmt.Sprintf(" (%s:%d)", filepath.Base(file), line)
}
