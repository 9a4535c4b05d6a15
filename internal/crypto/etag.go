package crypto

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/crypto/blake2b"
)

// ETag returns a strong HTTP entity tag for a rendered document: the first
// 16 bytes of its BLAKE2b-256 digest, hex encoded and quoted.
func ETag(data []byte) string {
	sum := blake2b.Sum256(data)
	return `"` + hex.EncodeToString(sum[:16]) + `"`
}

// RequestETag returns the entity tag for the JSON encoding of key. key must
// hold every input that shapes the response, so equal keys name equal
// documents even when their bytes differ.
func RequestETag(key any) (string, error) {
	data, err := json.Marshal(key)
	if err != nil {
		return "", fmt.Errorf("etag: %w", err)
	}
	return ETag(data), nil
}

// MatchesETag reports whether an If-None-Match header value names tag.
func MatchesETag(header, tag string) bool {
	if header == "" {
		return false
	}
	if header == "*" {
		return true
	}
	for _, candidate := range splitETags(header) {
		if candidate == tag || candidate == "W/"+tag {
			return true
		}
	}
	return false
}

func splitETags(header string) []string {
	var tags []string
	start := 0
	inQuote := false
	for i := 0; i < len(header); i++ {
		switch header[i] {
		case '"':
			inQuote = !inQuote
		case ',':
			if !inQuote {
				tags = append(tags, strings.TrimSpace(header[start:i]))
				start = i + 1
			}
		}
	}
	return append(tags, strings.TrimSpace(header[start:]))
}
