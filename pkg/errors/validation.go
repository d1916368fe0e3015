package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidateTileID validates a tile identifier.
// IDs end up in SVG element ids and cache keys, so they are kept to a
// conservative character set:
//   - No empty IDs
//   - No control characters or whitespace
//   - Maximum length of 128 characters
func ValidateTileID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidTile, "tile id cannot be empty")
	}

	if len(id) > 128 {
		return New(ErrCodeInvalidTile, "tile id too long (max 128 characters)")
	}

	for _, r := range id {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidTile, "tile id contains invalid characters: %q", id)
		}
	}

	if !tileIDRegex.MatchString(id) {
		return New(ErrCodeInvalidTile, "invalid tile id: %q", id)
	}

	return nil
}

var tileIDRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._:-]*$`)

// ValidateSettingKey validates a settings key.
// Keys are lower snake case, matching the system settings naming.
func ValidateSettingKey(key string) error {
	if key == "" {
		return New(ErrCodeInvalidKey, "setting key cannot be empty")
	}
	if !settingKeyRegex.MatchString(key) {
		return New(ErrCodeInvalidKey, "invalid setting key: %q", key)
	}
	return nil
}

var settingKeyRegex = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// ValidatePath validates a user-supplied file path for safety.
// It prevents path traversal attacks and ensures reasonable path length.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No path traversal sequences (..)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	return nil
}

// ValidateURL validates a backend URL string.
// It ensures the URL has one of the allowed schemes.
func ValidateURL(rawURL string, schemes ...string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	for _, s := range schemes {
		if strings.HasPrefix(rawURL, s+"://") {
			return nil
		}
	}
	return New(ErrCodeInvalidInput, "URL must use one of the schemes: %s", strings.Join(schemes, ", "))
}
