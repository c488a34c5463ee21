package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// maxNameLength bounds family, device and tile-type names.
const maxNameLength = 128

// ValidateName validates a database name component (family, device or
// tile type) for safety. Names become path segments and cache keys, so the
// rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - No path separators or traversal sequences
//   - Maximum length of 128 characters
func ValidateName(kind, name string) error {
	if name == "" {
		return New(ErrCodeInvalidName, "%s name cannot be empty", kind)
	}

	if len(name) > maxNameLength {
		return New(ErrCodeInvalidName, "%s name too long (max %d characters)", kind, maxNameLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidName, "%s name contains invalid control characters", kind)
		}
	}

	dangerousPatterns := []string{
		"..",
		"/",
		"\\",
		"\x00",
	}

	for _, pattern := range dangerousPatterns {
		if strings.Contains(name, pattern) {
			return New(ErrCodeInvalidName, "%s name contains invalid characters: %q", kind, pattern)
		}
	}

	return nil
}

// familyRegex matches device family names such as "LIFCL" or "LFD2NX".
var familyRegex = regexp.MustCompile(`^[A-Z][A-Z0-9]*$`)

// ValidateFamily validates a device family name.
func ValidateFamily(name string) error {
	if err := ValidateName("family", name); err != nil {
		return err
	}
	if !familyRegex.MatchString(name) {
		return New(ErrCodeInvalidName, "invalid family name: %q", name)
	}
	return nil
}

// deviceRegex matches device names such as "LIFCL-40" or "LFD2NX-17".
var deviceRegex = regexp.MustCompile(`^[A-Z][A-Z0-9]*-[A-Z0-9]+$`)

// ValidateDevice validates a device name.
func ValidateDevice(name string) error {
	if err := ValidateName("device", name); err != nil {
		return err
	}
	if !deviceRegex.MatchString(name) {
		return New(ErrCodeInvalidName, "invalid device name: %q", name)
	}
	return nil
}

// tileTypeRegex matches tile-type names such as "PLC", "CIB_T" or "TAP_PLC_1S".
var tileTypeRegex = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// ValidateTileTypeName validates a tile-type name.
func ValidateTileTypeName(name string) error {
	if err := ValidateName("tile type", name); err != nil {
		return err
	}
	if !tileTypeRegex.MatchString(name) {
		return New(ErrCodeInvalidName, "invalid tile type name: %q", name)
	}
	return nil
}
