package sanitizer

import (
	"net"
	"strings"
	"unicode"
)

// NormalizeText strips control characters, collapses runs of whitespace to a
// single space and trims the result.
func NormalizeText(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(s))
	lastWasSpace := false

	for _, r := range s {
		switch {
		case unicode.IsSpace(r):
			if !lastWasSpace {
				b.WriteRune(' ')
				lastWasSpace = true
			}
		case unicode.IsControl(r):
			// dropped
		default:
			b.WriteRune(r)
			lastWasSpace = false
		}
	}

	return strings.TrimSpace(b.String())
}

// NormalizeEmail lowercases a trimmed address. It does not validate; that is
// the validator's job.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// EmailDomain returns the part after the last '@', lowercased, or "".
func EmailDomain(email string) string {
	email = NormalizeEmail(email)
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return ""
	}
	return email[at+1:]
}

// ClientIP extracts the caller address: the first X-Forwarded-For entry when
// present, otherwise the remote address with any port removed.
func ClientIP(forwardedFor, remoteAddr string) string {
	if forwardedFor != "" {
		first := strings.TrimSpace(strings.Split(forwardedFor, ",")[0])
		if first != "" {
			return first
		}
	}
	if host, _, err := net.SplitHostPort(remoteAddr); err == nil {
		return host
	}
	return remoteAddr
}
