package ingest

import (
	"fmt"
	"strings"
	"time"
)

// maxNameLen caps the sanitized display name inside a derived filename.
// Existing assets in the store were named under this cap, so it must not
// change.
const maxNameLen = 30

// unknown is the literal placeholder for a missing id, name, or date.
const unknown = "unknown"

// SanitizeName makes a display name safe for a filename: path separators
// become "-", spaces become "_", and the result is truncated to 30
// characters.
func SanitizeName(name string) string {
	r := strings.NewReplacer("/", "-", "\\", "-", " ", "_")
	s := r.Replace(name)
	if runes := []rune(s); len(runes) > maxNameLen {
		s = string(runes[:maxNameLen])
	}
	return s
}

// DateString formats a millisecond epoch timestamp as YYYY-MM-DD in local
// time. ok=false (missing timestamp) yields "unknown".
func DateString(epochMS int64, ok bool) string {
	if !ok {
		return unknown
	}
	return time.UnixMilli(epochMS).Format("2006-01-02")
}

// Filename derives the deterministic asset filename
// {businessID}_{sanitizedName}_{date}.{ext}. Empty id or name fall back to
// "unknown".
func Filename(businessID, name, dateStr, ext string) string {
	if businessID == "" {
		businessID = unknown
	}
	if name == "" {
		name = unknown
	}
	return fmt.Sprintf("%s_%s_%s.%s", businessID, SanitizeName(name), dateStr, ext)
}
