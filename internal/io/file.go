package ioutils

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"regexp"
	"runtime"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	invalidChars   = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)
	trailingDots   = regexp.MustCompile(`\.+$`)
	repeatedSpaces = regexp.MustCompile(`\s+`)
)

// WriteFile writes data to path, creating the file or truncating an
// existing one. The file is created with mode 0644.
//
// The write is not atomic: an interrupted write leaves a partial file.
func WriteFile(ctx context.Context, path string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// FileExists reports whether something already exists at path.
//
// Any stat error other than "not exist" is treated as existing so callers
// never overwrite a path they could not inspect.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil || !errors.Is(err, fs.ErrNotExist)
}

// SanitizeFileName makes name usable as a single path component.
//
// Outside Windows only what the file system itself rejects is touched:
// "/" and NUL become "_". On Windows the name is also NFC normalized,
// reserved characters (<>:"\|?* and control chars) become "_", trailing
// dots and whitespace are removed and runs of whitespace are collapsed.
//
// "", "." and ".." become "_" everywhere.
//
// Example (Linux):
//
//	SanitizeFileName("Episode 1/2: Intro") // Returns "Episode 1_2: Intro"
//	SanitizeFileName("2023-01-02_-Ep1")    // Returns "2023-01-02_-Ep1"
func SanitizeFileName(name string) string {
	if runtime.GOOS == "windows" {
		name = sanitizeWindows(name)
	} else {
		name = posixInvalid.Replace(name)
	}
	switch name {
	case "", ".", "..":
		return "_"
	}
	return name
}

var posixInvalid = strings.NewReplacer("/", "_", "\x00", "_")

func sanitizeWindows(name string) string {
	name = norm.NFC.String(name)
	name = invalidChars.ReplaceAllString(name, "_")
	name = trailingDots.ReplaceAllString(name, "")
	name = repeatedSpaces.ReplaceAllString(name, " ")
	return strings.TrimRight(name, " ")
}

// EnsureDir creates a directory and all parent directories if they don't exist.
//
// Directories are created with mode 0755 (rwxr-xr-x).
// If the directory already exists, no error is returned.
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}
