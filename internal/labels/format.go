package labels

import (
	"strings"

	"github.com/google/uuid"
)

// DefaultBaseURL is the web origin encoded into QR payloads when the caller
// does not supply one.
const DefaultBaseURL = "https://boxtrack.app"

const maxDisplayIDLen = 12

// FormatBoxID shortens a raw box identifier for printing. A leading "box_" or
// "box-" (any case) is dropped, a canonical UUID is cut to its first group,
// anything else longer than 12 characters is truncated, and the result is
// upper-cased.
func FormatBoxID(id string) string {
	s := id
	if len(s) >= 4 && strings.EqualFold(s[:3], "box") && (s[3] == '_' || s[3] == '-') {
		s = s[4:]
	}
	if isCanonicalUUID(s) {
		s = s[:8]
	} else if r := []rune(s); len(r) > maxDisplayIDLen {
		s = string(r[:maxDisplayIDLen])
	}
	return strings.ToUpper(s)
}

// isCanonicalUUID accepts only the 8-4-4-4-12 hex form, not the braced,
// urn: or dash-less forms uuid.Parse also understands.
func isCanonicalUUID(s string) bool {
	if len(s) != 36 {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}

// GenerateBoxURL returns the URL a box label's QR code points to.
func GenerateBoxURL(id, baseURL string) string {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return baseURL + "/box/" + id
}
