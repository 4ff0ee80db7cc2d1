// Package noise classifies volatile ("noisy") parts of a request: values
// shaped like timestamps or tokens, field names conventionally bound to
// volatile data, and well-known volatile header names. All checks are pure
// and total; the tables are fixed at process start.
package noise

import (
	"regexp"
	"time"

	"github.com/Krishnan9074/IdempotentCheck/internal/domain"
)

// maxEpochSeconds is 9999-12-31T23:59:59Z. A number outside [0, max] is not
// treated as a plausible Unix timestamp.
const maxEpochSeconds = 253402300799

// timestampLayouts are tried in order; the first match wins.
var timestampLayouts = []string{
	"2006-01-02T15:04:05.999999999Z",
	"2006-01-02T15:04:05Z",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// KeyPattern associates a noise category with a key-name regex.
type KeyPattern struct {
	Category string
	Pattern  *regexp.Regexp
}

// keyPatterns is ordered: the first matching category is reported.
var keyPatterns = []KeyPattern{
	{"timestamp", regexp.MustCompile(`(?i)(timestamp|time|date|created_at|updated_at)`)},
	{"token", regexp.MustCompile(`(?i)(token|auth|bearer|jwt)`)},
	{"id", regexp.MustCompile(`(?i)(id|uuid|guid)`)},
	{"random", regexp.MustCompile(`(?i)(random|rand|nonce)`)},
	{"hash", regexp.MustCompile(`(?i)(hash|md5|sha|digest)`)},
	{"session", regexp.MustCompile(`(?i)(session|sid)`)},
	{"cache", regexp.MustCompile(`(?i)(cache|etag)`)},
}

var (
	jwtShape    = regexp.MustCompile(`^[A-Za-z0-9\-_=]+\.[A-Za-z0-9\-_=]+\.?[A-Za-z0-9\-_.+/=]*$`)
	opaqueShape = regexp.MustCompile(`^[A-Za-z0-9\-_=]+$`)
)

// noisyHeaders is an exact, case-sensitive membership set. A lowercase
// "authorization" deliberately does not match.
var noisyHeaders = map[string]struct{}{
	"Authorization":     {},
	"X-Request-ID":      {},
	"X-Correlation-ID":  {},
	"X-Timestamp":       {},
	"X-Request-Time":    {},
	"X-Response-Time":   {},
	"ETag":              {},
	"Last-Modified":     {},
	"If-Modified-Since": {},
	"If-None-Match":     {},
	"Cache-Control":     {},
}

// IsTimestamp reports whether a scalar value forms a plausible point in
// time: a number in the Unix-epoch range, or a string matching one of the
// known date/time layouts.
func IsTimestamp(v domain.Value) bool {
	switch v.Kind() {
	case domain.KindNumber:
		f, err := v.Float()
		if err != nil {
			return false
		}
		return f >= 0 && f <= maxEpochSeconds
	case domain.KindString:
		return IsTimestampString(v.Str())
	default:
		return false
	}
}

// IsTimestampString checks a string against the layout list in order.
func IsTimestampString(s string) bool {
	for _, layout := range timestampLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}

// IsToken reports whether a value looks like a token. Only strings qualify:
// a JWT-like three-segment shape is checked first, then a single run of
// URL-safe base64 characters. The opaque branch is a permissive heuristic
// and matches ordinary alphanumeric identifiers too; treat the result as a
// hint, not proof.
func IsToken(v domain.Value) bool {
	if v.Kind() != domain.KindString {
		return false
	}
	return IsTokenString(v.Str())
}

// IsTokenString is the string form of IsToken.
func IsTokenString(s string) bool {
	if jwtShape.MatchString(s) {
		return true
	}
	return opaqueShape.MatchString(s)
}

// KeyCategory returns the noise category a field name falls under, by
// case-insensitive substring match against the fixed pattern table.
func KeyCategory(name string) (string, bool) {
	for _, kp := range keyPatterns {
		if kp.Pattern.MatchString(name) {
			return kp.Category, true
		}
	}
	return "", false
}

// IsNoisyHeader reports whether the header name is in the fixed set of
// well-known volatile headers. Matching is exact, including case.
func IsNoisyHeader(name string) bool {
	_, ok := noisyHeaders[name]
	return ok
}
