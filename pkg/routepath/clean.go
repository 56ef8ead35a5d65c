// Package routepath cleans paths reported by browser clients before they
// reach the router.
package routepath

import (
	"errors"
	"strings"
)

// Path errors.
var (
	ErrNotRelative          = errors.New("routepath: path must start with a single /")
	ErrBackslash            = errors.New("routepath: path contains backslash")
	ErrNullByte             = errors.New("routepath: path contains null byte")
	ErrInvalidPercentEscape = errors.New("routepath: invalid percent escape")
	ErrEscapesRoot          = errors.New("routepath: path escapes root via ..")
)

// Clean returns the canonical form of a client path:
//   - query string and fragment are dropped
//   - repeated slashes collapse (/a//b → /a/b)
//   - "." segments are removed and ".." segments resolved
//   - a trailing slash is removed, except for the root
//
// Absolute and scheme-relative URLs, backslashes, NUL bytes, malformed
// percent escapes, and ".." above the root are rejected.
func Clean(input string) (string, error) {
	p := input
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}

	if !strings.HasPrefix(p, "/") || strings.HasPrefix(p, "//") {
		return "", ErrNotRelative
	}
	if strings.ContainsRune(p, '\\') {
		return "", ErrBackslash
	}
	if strings.ContainsRune(p, 0) || strings.Contains(strings.ToUpper(p), "%00") {
		return "", ErrNullByte
	}
	if !validEscapes(p) {
		return "", ErrInvalidPercentEscape
	}

	var out []string
	for _, seg := range strings.Split(p, "/") {
		switch seg {
		case "", ".":
		case "..":
			if len(out) == 0 {
				return "", ErrEscapesRoot
			}
			out = out[:len(out)-1]
		default:
			out = append(out, seg)
		}
	}
	return "/" + strings.Join(out, "/"), nil
}

// validEscapes reports whether every % in p starts a two-digit hex escape.
func validEscapes(p string) bool {
	for i := 0; i < len(p); i++ {
		if p[i] != '%' {
			continue
		}
		if i+2 >= len(p) || !isHex(p[i+1]) || !isHex(p[i+2]) {
			return false
		}
		i += 2
	}
	return true
}

func isHex(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}
