package results

import (
	"errors"
	"path/filepath"
	"strings"
	"unicode"
)

// MaxTitleRunes caps the title part of generated file names.
const MaxTitleRunes = 30

var ErrInvalidName = errors.New("invalid filename")

// SafeTitle keeps letters, digits, spaces, hyphens and underscores of
// title, trims it and caps it at MaxTitleRunes. The result is never empty.
func SafeTitle(title string) string {
	kept := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' || r == '-' || r == '_' {
			return r
		}
		return -1
	}, title)

	runes := []rune(strings.TrimSpace(kept))
	if len(runes) > MaxTitleRunes {
		runes = runes[:MaxTitleRunes]
	}
	safe := strings.TrimSpace(string(runes))
	if safe == "" {
		return "untitled"
	}
	return safe
}

// BaseName is the common prefix of every file written for a job.
func BaseName(title, jobID string) string {
	return SafeTitle(title) + "_" + jobID
}

// Resolve maps a client-supplied file name to a path directly inside dir.
// Names with parent segments or separators are rejected before any
// filesystem access.
func Resolve(dir, name string) (string, error) {
	if name == "" || name == "." || strings.Contains(name, "..") ||
		strings.ContainsAny(name, `/\`) || strings.ContainsRune(name, 0) ||
		filepath.IsAbs(name) || filepath.VolumeName(name) != "" {
		return "", ErrInvalidName
	}
	return filepath.Join(dir, name), nil
}
