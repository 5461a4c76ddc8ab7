package analysis

import "strings"

// HeaderComment returns the leading JSDoc-style "/** ... */" block comment
// of content, if the file starts with one (possibly preceded by
// whitespace). Used by the file_header rule's CSS and TypeScript/JavaScript
// dispatch (§4.8). No
// library in the pack parses CSS, so this is a stdlib-only, hand-written
// scanner — the one standard-library exception named in SPEC_FULL.md's
// DOMAIN STACK section.
func HeaderComment(content string) (string, bool) {
	trimmed := strings.TrimLeft(content, " \t\r\n")
	if !strings.HasPrefix(trimmed, "/**") {
		return "", false
	}
	end := strings.Index(trimmed, "*/")
	if end == -1 {
		return "", false
	}
	return trimmed[:end+2], true
}

// HeaderFields parses "Field: value" lines out of a CSS header comment
// block, mirroring the convention used across the other language
// dispatches of file_header.
func HeaderFields(block string) map[string]string {
	fields := map[string]string{}
	for _, line := range strings.Split(block, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimPrefix(line, "/**")
		line = strings.TrimSuffix(line, "*/")
		line = strings.TrimSpace(strings.TrimPrefix(line, "*"))
		key, value, ok := strings.Cut(line, ":")
		if ok {
			fields[strings.TrimSpace(key)] = strings.TrimSpace(value)
		}
	}
	return fields
}
