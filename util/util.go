package util

import (
	_ "embed"
	"encoding/json"
	"fmt"
	rnd "math/rand"
	"strings"
	"time"
)

//go:embed version.txt
var embeddedVersion string

func GetVersion() string {
	return strings.TrimSpace(embeddedVersion)
}

func GetNameAndVersion() string {
	return fmt.Sprintf("%s / %s", Name, GetVersion())
}

func RandomString(length int) string {
	rnd.Seed(time.Now().UnixNano())
	b := make([]byte, length)
	rnd.Read(b)
	return fmt.Sprintf("%x", b)[:length]
}

func DateTimeFormat() string {
	return "2006-01-02 15:04:05 CEST"
}

func PrettyPrint(i interface{}) string {
	s, _ := json.MarshalIndent(i, "", " ")
	return string(s)
}

// TruncateSlug derives a short username-like slug from an identifier URL,
// keeping only the trailing path segment cut to maxLen characters.
func TruncateSlug(identifier string, maxLen int) string {
	trimmed := strings.TrimRight(identifier, "/")
	if idx := strings.LastIndex(trimmed, "/"); idx >= 0 {
		trimmed = trimmed[idx+1:]
	}
	if len(trimmed) > maxLen {
		trimmed = trimmed[:maxLen]
	}
	return trimmed
}

// TrimTrailingSlash normalizes an identifier by dropping a single trailing slash.
func TrimTrailingSlash(s string) string {
	return strings.TrimSuffix(s, "/")
}
