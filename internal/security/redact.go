package security

import "strings"

var sensitiveSubstrings = []string{
	"token",
	"password",
	"authorization",
	"apikey",
	"api-key",
	"api_key",
	"access_key",
	"private_key",
	"credential",
	"auth",
	"passwd",
	"signature",
	"cookie",
	"session",
	"jwt",
	"bearer",
	"secret",
}

var allowList = map[string]struct{}{
	"content-type": {},
	"accept":       {},
	"user-agent":   {},
}

// RedactHeaders returns a copy of headers with sensitive values replaced.
func RedactHeaders(headers map[string]string) map[string]string {
	if headers == nil {
		return nil
	}
	redacted := make(map[string]string, len(headers))
	for key, value := range headers {
		if IsSensitiveKey(key) {
			redacted[key] = "***"
			continue
		}
		redacted[key] = value
	}
	return redacted
}

// IsSensitiveKey reports whether a header or field name may carry a secret.
func IsSensitiveKey(key string) bool {
	lower := strings.ToLower(strings.TrimSpace(key))
	if _, ok := allowList[lower]; ok {
		return false
	}
	for _, part := range sensitiveSubstrings {
		if strings.Contains(lower, part) {
			return true
		}
	}
	return false
}
