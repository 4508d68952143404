package detection

import (
	"net/url"
	"strings"
	"unicode"
)

// NormalizeText collapses every run of whitespace (spaces, tabs, newlines and
// the \x1c-\x1f separators) to a single space and trims the ends
func NormalizeText(text string) string {
	return strings.Join(strings.FieldsFunc(text, isSpace), " ")
}

func isSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}

// HasSchemeAndHost reports whether rawURL has a scheme and a non-empty
// authority. Nothing else is checked: percent escapes, ports and stray
// characters in the host are left to the rules.
func HasSchemeAndHost(rawURL string) bool {
	_, authority, ok := splitURL(rawURL)
	return ok && authority != ""
}

// splitURL cuts rawURL into its scheme and the authority between "//" and the
// first '/', '?' or '#'. ok is false without a valid scheme followed by "//".
func splitURL(rawURL string) (scheme, authority string, ok bool) {
	scheme, rest, found := strings.Cut(rawURL, ":")
	if !found || !validScheme(scheme) {
		return "", "", false
	}
	rest, found = strings.CutPrefix(rest, "//")
	if !found {
		return "", "", false
	}
	if i := strings.IndexAny(rest, "/?#"); i >= 0 {
		rest = rest[:i]
	}
	return strings.ToLower(scheme), rest, true
}

func validScheme(scheme string) bool {
	if scheme == "" {
		return false
	}
	for i, r := range scheme {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && (r >= '0' && r <= '9' || r == '+' || r == '-' || r == '.'):
		default:
			return false
		}
	}
	return true
}

// extractHost returns the lowercased host of rawURL without port or userinfo.
// URLs that net/url rejects (bad escapes, non-numeric ports, spaces) fall back
// to the raw authority so host rules still see them.
func extractHost(rawURL string) string {
	if parsed, err := url.Parse(rawURL); err == nil {
		return strings.ToLower(parsed.Hostname())
	}

	_, authority, ok := splitURL(rawURL)
	if !ok {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(hostFromAuthority(authority)))
}

// hostFromAuthority strips userinfo and port from an authority
func hostFromAuthority(authority string) string {
	if i := strings.LastIndex(authority, "@"); i >= 0 {
		authority = authority[i+1:]
	}
	if strings.HasPrefix(authority, "[") {
		host, _, found := strings.Cut(authority[1:], "]")
		if !found {
			return ""
		}
		return host
	}
	host, _, _ := strings.Cut(authority, ":")
	return host
}

// findKeywords returns every keyword contained in text, in list order.
// text and keywords are expected to be lowercase already.
func findKeywords(text string, keywords []string) []string {
	var found []string
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			found = append(found, keyword)
		}
	}
	return found
}

// firstContained returns the first keyword contained in text
func firstContained(text string, keywords []string) (string, bool) {
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return keyword, true
		}
	}
	return "", false
}
