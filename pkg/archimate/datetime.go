package archimate

import (
	"regexp"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// compactOffset matches a trailing "+hhmm"/"-hhmm" zone offset.
var compactOffset = regexp.MustCompile(`([+-]\d{2})(\d{2})$`)

// NormalizeDateTime returns s as an ISO 8601 timestamp with a colon in its
// zone offset ("+0200" becomes "+02:00"). Timestamps that are not RFC 3339
// after that rewrite are parsed leniently and re-emitted in RFC 3339.
func NormalizeDateTime(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	if fixed := compactOffset.ReplaceAllString(s, "$1:$2"); fixed != s {
		if _, err := time.Parse(time.RFC3339Nano, fixed); err == nil {
			return fixed, true
		}
	}
	if _, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return s, true
	}
	t, err := dateparse.ParseStrict(s)
	if err != nil {
		return "", false
	}
	return t.Format(time.RFC3339), true
}
