package router

import "strings"

// Params holds path parameters keyed by name.
type Params map[string]string

// MatcherKind discriminates the matcher variants.
type MatcherKind uint8

const (
	KindStatic MatcherKind = iota
	KindParameterized
)

// String returns the string representation of the MatcherKind.
func (k MatcherKind) String() string {
	switch k {
	case KindStatic:
		return "static"
	case KindParameterized:
		return "parameterized"
	default:
		return "unknown"
	}
}

// Matcher decides whether a path matches a route pattern.
// The set of implementations is closed: *StaticMatcher and *ParamMatcher.
type Matcher interface {
	// Match reports whether path matches the pattern.
	Match(path string) bool

	// Pattern returns the pattern the matcher was built from.
	Pattern() string

	// Kind returns the matcher variant.
	Kind() MatcherKind

	matcher()
}

// NewMatcher builds the matcher for pattern: a ParamMatcher if any segment is
// a named parameter, a StaticMatcher otherwise.
func NewMatcher(pattern string) Matcher {
	segments := splitPath(pattern)
	for _, seg := range segments {
		if isParamSegment(seg) {
			return newParamMatcher(pattern, segments)
		}
	}
	return &StaticMatcher{pattern: pattern, segments: segments}
}

// StaticMatcher matches a single exact path.
type StaticMatcher struct {
	pattern  string
	segments []string
}

// Match implements Matcher.
func (m *StaticMatcher) Match(path string) bool {
	candidate := splitPath(path)
	if len(candidate) != len(m.segments) {
		return false
	}
	for i, seg := range m.segments {
		if candidate[i] != seg {
			return false
		}
	}
	return true
}

// Pattern implements Matcher.
func (m *StaticMatcher) Pattern() string { return m.pattern }

// Kind implements Matcher.
func (m *StaticMatcher) Kind() MatcherKind { return KindStatic }

func (m *StaticMatcher) matcher() {}

// segment is one component of a parameterized pattern.
type segment struct {
	literal string
	param   string // non-empty for parameter segments
}

// ParamMatcher matches patterns with named parameter segments.
type ParamMatcher struct {
	pattern  string
	segments []segment
}

func newParamMatcher(pattern string, parts []string) *ParamMatcher {
	m := &ParamMatcher{
		pattern:  pattern,
		segments: make([]segment, len(parts)),
	}
	for i, part := range parts {
		if isParamSegment(part) {
			m.segments[i] = segment{param: part[1:]}
		} else {
			m.segments[i] = segment{literal: part}
		}
	}
	return m
}

// Match implements Matcher.
func (m *ParamMatcher) Match(path string) bool {
	candidate := splitPath(path)
	if len(candidate) != len(m.segments) {
		return false
	}
	for i, seg := range m.segments {
		if seg.param == "" && candidate[i] != seg.literal {
			return false
		}
	}
	return true
}

// ExtractParams returns the parameter values of path keyed by parameter name.
// It must only be called after Match(path) returned true.
func (m *ParamMatcher) ExtractParams(path string) Params {
	params := make(Params)
	for i, part := range splitPath(path) {
		if i >= len(m.segments) {
			break
		}
		if name := m.segments[i].param; name != "" {
			params[name] = part
		}
	}
	return params
}

// ParamNames returns the parameter names in pattern order.
func (m *ParamMatcher) ParamNames() []string {
	var names []string
	for _, seg := range m.segments {
		if seg.param != "" {
			names = append(names, seg.param)
		}
	}
	return names
}

// Pattern implements Matcher.
func (m *ParamMatcher) Pattern() string { return m.pattern }

// Kind implements Matcher.
func (m *ParamMatcher) Kind() MatcherKind { return KindParameterized }

func (m *ParamMatcher) matcher() {}

// extractParams returns the path parameters m yields for path; static
// matchers yield none.
func extractParams(m Matcher, path string) Params {
	switch m := m.(type) {
	case *ParamMatcher:
		return m.ExtractParams(path)
	default:
		return Params{}
	}
}

// splitPath splits a path into its non-empty segments.
func splitPath(path string) []string {
	parts := strings.Split(path, "/")
	segments := parts[:0]
	for _, part := range parts {
		if part != "" {
			segments = append(segments, part)
		}
	}
	return segments
}

// isParamSegment reports whether seg names a parameter. A bare ":" is literal.
func isParamSegment(seg string) bool {
	return len(seg) > 1 && seg[0] == ':'
}
