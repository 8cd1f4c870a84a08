// Package validation guards filesystem access driven by parsed user
// input: book names become data file paths, so they are checked for
// traversal and injection patterns before any file probe.
package validation

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

const (
	// MaxBookNameLength is the maximum allowed book name length.
	MaxBookNameLength = 64
	// MaxPathLength is the maximum allowed path length.
	MaxPathLength = 4096
)

// Common validation errors.
var (
	ErrInvalidBookName  = errors.New("invalid book name")
	ErrPathTooLong      = errors.New("path too long")
	ErrInvalidCharacter = errors.New("invalid character in path")
	ErrEmptyPath        = errors.New("path cannot be empty")
)

// ValidateBookName checks that a book name is safe to append to a data
// directory path. Book names reach here from the reference parser, but
// the data layer does not trust its callers with filesystem access.
func ValidateBookName(name string) error {
	if name == "" {
		return ErrInvalidBookName
	}
	if len(name) > MaxBookNameLength {
		return fmt.Errorf("%w: too long", ErrInvalidBookName)
	}
	if name == "." || name == ".." {
		return fmt.Errorf("%w: reserved name", ErrInvalidBookName)
	}
	if strings.ContainsAny(name, "/\\") {
		return fmt.Errorf("%w: path separator not allowed", ErrInvalidBookName)
	}
	if strings.Contains(name, "\x00") {
		return fmt.Errorf("%w: null byte not allowed", ErrInvalidBookName)
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return fmt.Errorf("%w: control character not allowed", ErrInvalidBookName)
		}
	}
	return nil
}

// ValidatePath checks a standalone path for length limits and
// injection characters without anchoring it to a base directory.
func ValidatePath(path string) error {
	if path == "" {
		return ErrEmptyPath
	}
	if len(path) > MaxPathLength {
		return ErrPathTooLong
	}
	if strings.Contains(path, "\x00") {
		return fmt.Errorf("%w: null byte not allowed", ErrInvalidCharacter)
	}
	for _, r := range path {
		if unicode.IsControl(r) {
			return fmt.Errorf("%w: control character not allowed", ErrInvalidCharacter)
		}
	}
	return nil
}
