package codeparse

import "strings"

// stylePair is one key/value from an inline style object, value kept raw.
type stylePair struct {
	key   string
	value string
}

// parseStyleText converts the raw text of a style expression into pairs.
// It tolerates object literals with or without outer braces, quoted keys and
// values, and trailing commas. A pair without a colon is skipped rather than
// failing the document; a bare identifier expression (style={styles.box})
// yields no pairs at all.
func parseStyleText(raw string) []stylePair {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "{") && strings.HasSuffix(s, "}") {
		s = strings.TrimSpace(s[1 : len(s)-1])
	}
	if s == "" {
		return nil
	}

	var pairs []stylePair
	for _, part := range splitTopLevel(s, ',') {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		idx := topLevelIndex(part, ':')
		if idx < 0 {
			continue
		}
		key := cleanKey(part[:idx])
		value := unquote(strings.TrimSpace(part[idx+1:]))
		if key == "" {
			continue
		}
		pairs = append(pairs, stylePair{key: key, value: value})
	}
	return pairs
}

// splitTopLevel splits on sep, ignoring separators nested in brackets or quotes.
func splitTopLevel(s string, sep byte) []string {
	var out []string
	depth := 0
	var quote byte
	start := 0
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if quote != 0 {
			if ch == quote {
				quote = 0
			}
			continue
		}
		switch ch {
		case '\'', '"', '`':
			quote = ch
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		case sep:
			if depth == 0 {
				out = append(out, s[start:i])
				start = i + 1
			}
		}
	}
	out = append(out, s[start:])
	return out
}

// topLevelIndex finds the first unnested, unquoted occurrence of sep.
func topLevelIndex(s string, sep byte) int {
	depth := 0
	var quote byte
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if quote != 0 {
			if ch == quote {
				quote = 0
			}
			continue
		}
		switch ch {
		case '\'', '"', '`':
			quote = ch
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		case sep:
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func cleanKey(s string) string {
	key := unquote(strings.TrimSpace(s))
	for i := 0; i < len(key); i++ {
		ch := key[i]
		if !isNameChar(ch) {
			return ""
		}
	}
	return key
}

func unquote(s string) string {
	if len(s) >= 2 {
		if (s[0] == '\'' && s[len(s)-1] == '\'') || (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '`' && s[len(s)-1] == '`') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
