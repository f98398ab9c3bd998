package provision

import (
	"net/url"
	"regexp"
	"strings"
)

const masked = "***"

var (
	// userinfo password of a URL that net/url rejects, up to the last '@'.
	urlPasswordRe = regexp.MustCompile(`(://[^:/@]*):.*@`)
	// password query parameter of a URL.
	queryPasswordRe = regexp.MustCompile(`(?i)(^|&)(password=)[^&]*`)
	// password=... in key=value connection strings, optionally single-quoted.
	kvPasswordRe = regexp.MustCompile(`(?i)\bpassword\s*=\s*('(?:[^'\\]|\\.)*'|\S+)`)
)

// MaskURL hides the password of a URL or key=value connection string so the
// result can be logged.
func MaskURL(databaseURL string) string {
	if !strings.Contains(databaseURL, "://") {
		return kvPasswordRe.ReplaceAllString(databaseURL, "password="+masked)
	}

	u, err := url.Parse(databaseURL)
	if err != nil {
		s := urlPasswordRe.ReplaceAllString(databaseURL, "${1}:"+masked+"@")
		if i := strings.IndexByte(s, '?'); i >= 0 {
			s = s[:i+1] + maskQuery(s[i+1:])
		}
		return s
	}
	u.RawQuery = maskQuery(u.RawQuery)
	// Redacted writes the password as "xxxxx"; net/url would escape "***".
	return strings.Replace(u.Redacted(), ":xxxxx@", ":"+masked+"@", 1)
}

func maskQuery(rawQuery string) string {
	return queryPasswordRe.ReplaceAllString(rawQuery, "${1}${2}"+masked)
}
