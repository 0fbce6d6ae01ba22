package logger

import (
	"log/slog"
	"strings"
)

// authSchemes are Authorization header schemes whose credential part is masked.
var authSchemes = []string{
	"Token ",
	"Bearer ",
}

// Key patterns whose values are fully redacted.
var sensitiveKeyPatterns = []string{
	"password",
	"secret",
	"token",
	"authorization",
	"credential",
	"cookie",
}

const redactedValue = "***REDACTED***"

// redactSensitive masks credentials carried by an attribute.
func redactSensitive(a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindString {
		strVal := a.Value.String()

		// Header-style values keep their scheme so logs stay readable.
		for _, scheme := range authSchemes {
			if strings.HasPrefix(strVal, scheme) {
				return slog.String(a.Key, scheme+maskValue(strVal[len(scheme):]))
			}
		}

		if strVal != "" && IsSensitiveKey(a.Key) {
			return slog.String(a.Key, redactedValue)
		}
	}

	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		newAttrs := make([]slog.Attr, len(attrs))
		for i, attr := range attrs {
			newAttrs[i] = redactSensitive(attr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(newAttrs...)}
	}

	return a
}

// maskValue keeps the first and last 3 characters of long values.
func maskValue(value string) string {
	if len(value) <= 8 {
		return "***"
	}
	return value[:3] + "..." + value[len(value)-3:]
}

// RedactToken masks a raw token for display, e.g. in `config show`.
func RedactToken(token string) string {
	if token == "" {
		return ""
	}
	return maskValue(token)
}

// IsSensitiveKey checks if a key name suggests sensitive content.
func IsSensitiveKey(key string) bool {
	keyLower := strings.ToLower(key)
	for _, pattern := range sensitiveKeyPatterns {
		if strings.Contains(keyLower, pattern) {
			return true
		}
	}
	return false
}
