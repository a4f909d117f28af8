// Package util provides content hashing and slug derivation helpers.
package util

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"strings"
)

func ContentHash(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}

func ContentHashString(content string) string {
	return ContentHash([]byte(content))
}

var (
	slugStrip    = regexp.MustCompile(`[^\w\s]`)
	slugSpaceRun = regexp.MustCompile(`\s+`)
)

// Slugify derives a URL-safe slug from a title: non-word characters are
// stripped, whitespace runs collapse to single hyphens, everything is
// lowercased. "Hello, World!" becomes "hello-world".
func Slugify(title string) string {
	s := strings.ToLower(title)
	s = slugStrip.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)
	return slugSpaceRun.ReplaceAllString(s, "-")
}
