package lark

// Bitable field values arrive as loosely typed JSON: text fields may be a
// plain string or a list of {text} segments, numbers are float64. These
// helpers centralize the coercions the sync jobs rely on.

// StringField returns the field as a string, or "" when absent or not a
// string.
func StringField(fields map[string]any, name string) string {
	s, _ := fields[name].(string)
	return s
}

// TextField resolves a field that holds either a plain string or a list of
// rich-text segments carrying a "text" attribute. Returns the first
// non-empty text, or "".
func TextField(fields map[string]any, name string) string {
	switch v := fields[name].(type) {
	case string:
		return v
	case []any:
		for _, seg := range v {
			if m, ok := seg.(map[string]any); ok {
				if s, ok := m["text"].(string); ok && s != "" {
					return s
				}
			}
		}
	}
	return ""
}

// EpochMillis returns a millisecond-epoch date field. JSON decoding yields
// float64; int64 is accepted for values built in-process.
func EpochMillis(fields map[string]any, name string) (int64, bool) {
	switch v := fields[name].(type) {
	case float64:
		return int64(v), true
	case int64:
		return v, true
	case int:
		return int64(v), true
	}
	return 0, false
}

// AttachmentValue builds the field value Bitable expects for an uploaded
// asset reference.
func AttachmentValue(fileToken string) []any {
	return []any{map[string]any{"file_token": fileToken}}
}
