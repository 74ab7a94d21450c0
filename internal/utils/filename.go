package utils

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	// Characters invalid in filenames on most filesystems
	invalidFilenameChars = regexp.MustCompile(`[<>:"/\\|?*]`)
	controlChars         = regexp.MustCompile(`[\r\n\t]`)
	multipleSpaces       = regexp.MustCompile(`\s+`)
)

// MaxFilenameBytes leaves room for an extension and a collision suffix
// under the common 255 byte limit.
const MaxFilenameBytes = 200

// SanitizeFilename turns a book title into a safe file name stem.
// Invalid characters become underscores and the result is cut on a rune
// boundary so multi-byte titles stay valid UTF-8.
func SanitizeFilename(filename string) string {
	filename = invalidFilenameChars.ReplaceAllString(filename, "_")
	filename = controlChars.ReplaceAllString(filename, " ")
	filename = multipleSpaces.ReplaceAllString(filename, " ")
	filename = strings.TrimSpace(filename)

	// Leading dots would hide the file or form "..".
	filename = strings.TrimLeft(filename, ".")

	if len(filename) > MaxFilenameBytes {
		cut := MaxFilenameBytes
		for cut > 0 && !utf8.RuneStart(filename[cut]) {
			cut--
		}
		filename = strings.TrimSpace(filename[:cut])
	}

	if filename == "" {
		filename = "Untitled"
	}

	return filename
}
