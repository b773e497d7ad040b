package identity

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidAddress is returned when an address has no usable domain part.
var ErrInvalidAddress = errors.New("invalid email address")

// Key returns the lookup key for a record: the lowercased primary identifier
// if present, otherwise the lowercased secondary identifier. It returns an
// empty string when both are empty.
func Key(primary, secondary string) string {
	if primary != "" {
		return strings.ToLower(primary)
	}
	return strings.ToLower(secondary)
}

// Domain returns the part of address after the first "@".
func Domain(address string) (string, error) {
	i := strings.Index(address, "@")
	if i < 0 || i == len(address)-1 {
		return "", fmt.Errorf("%w: %q", ErrInvalidAddress, address)
	}
	return address[i+1:], nil
}

// ParseDisplayName splits a display name into given and family name.
//
// Supported shapes: "Last, First", "First Last", "First Middle Last" (everything
// but the last word is the given name) and a single word (given name only).
func ParseDisplayName(display string) (given, family string) {
	trimmed := strings.TrimSpace(display)
	if trimmed == "" {
		return "", ""
	}

	if strings.Contains(trimmed, ",") {
		parts := strings.Split(trimmed, ",")
		family = strings.TrimSpace(parts[0])
		if len(parts) > 1 {
			given = strings.TrimSpace(parts[1])
		}
		return given, family
	}

	words := strings.Fields(trimmed)
	switch len(words) {
	case 1:
		return words[0], ""
	case 2:
		return words[0], words[1]
	default:
		return strings.Join(words[:len(words)-1], " "), words[len(words)-1]
	}
}
