package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatFormID renders a form ID the way plugin tooling prints it, as eight
// upper-case hex digits.
func FormatFormID(id uint32) string {
	return fmt.Sprintf("%08X", id)
}

// ParseFormID parses a hex form ID. A leading "0x" or "0X" is optional.
func ParseFormID(s string) (uint32, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if s == "" {
		return 0, fmt.Errorf("empty form id")
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid form id %q: %w", s, err)
	}
	return uint32(v), nil
}

// ToBool converts query and environment style values to bool.
// It handles bool, "1", "true" and "yes".
func ToBool(val any) bool {
	switch v := val.(type) {
	case bool:
		return v
	case string:
		s := strings.ToLower(strings.TrimSpace(v))
		return s == "1" || s == "true" || s == "yes"
	case []byte:
		return ToBool(string(v))
	default:
		return false
	}
}
