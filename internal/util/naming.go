// Package util holds small helpers shared by the handlers and the CLI.
package util

import (
	"path/filepath"
	"regexp"
	"strings"
)

const maxFilenameLength = 100

var (
	unsafeCharsRegexp      = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1F]`)
	repeatUnderscoreRegexp = regexp.MustCompile(`_+`)
)

// SanitizeFilename strips path components and special characters from a
// user-supplied filename and caps its length while preserving the extension.
// An empty or fully-stripped input becomes "unnamed_file".
func SanitizeFilename(filename string) string {
	filename = strings.ReplaceAll(filename, "\\", "_")
	filename = strings.ReplaceAll(filename, "/", "_")
	filename = unsafeCharsRegexp.ReplaceAllString(filename, "_")
	filename = repeatUnderscoreRegexp.ReplaceAllString(filename, "_")
	filename = strings.Trim(filename, "_. ")

	if filename == "" {
		return "unnamed_file"
	}

	ext := filepath.Ext(filename)
	name := strings.TrimSuffix(filename, ext)
	// A suspiciously long extension is treated as part of the name.
	if len(ext) > 10 {
		name = filename
		ext = ""
	}

	maxNameLength := maxFilenameLength - len(ext)
	if maxNameLength < 1 {
		maxNameLength = 1
	}
	if len(name) > maxNameLength {
		name = name[:maxNameLength]
	}
	return name + ext
}

// CountLines returns the number of non-empty lines in code.
func CountLines(code string) int {
	count := 0
	for _, line := range strings.Split(code, "\n") {
		if strings.TrimSpace(line) != "" {
			count++
		}
	}
	return count
}
