package classifier

import "strings"

// javaTokens maps SimpleDateFormat letters, longest run first, to Go layout
// elements.
var javaTokens = []struct {
	java   string
	layout string
}{
	{"yyyy", "2006"},
	{"yy", "06"},
	{"MMMM", "January"},
	{"MMM", "Jan"},
	{"MM", "01"},
	{"M", "1"},
	{"dd", "02"},
	{"d", "2"},
	{"EEEE", "Monday"},
	{"EEE", "Mon"},
	{"E", "Mon"},
	{"HH", "15"},
	{"H", "15"},
	{"hh", "03"},
	{"h", "3"},
	{"mm", "04"},
	{"m", "4"},
	{"ss", "05"},
	{"s", "5"},
	{"SSS", "000"},
	{"SS", "00"},
	{"S", "0"},
	{"a", "PM"},
	{"XXX", "Z07:00"},
	{"XX", "Z0700"},
	{"X", "Z07"},
	{"ZZZ", "-0700"},
	{"Z", "-0700"},
	{"zzz", "MST"},
	{"z", "MST"},
}

// layoutFromPattern converts a date pattern to a Go time layout. Patterns
// that already look like Go layouts are returned unchanged.
func layoutFromPattern(pattern string) string {
	if isGoLayout(pattern) {
		return pattern
	}

	var b strings.Builder
	for i := 0; i < len(pattern); {
		c := pattern[i]
		if c == '\'' {
			end := strings.IndexByte(pattern[i+1:], '\'')
			if end < 0 {
				b.WriteString(pattern[i+1:])
				break
			}
			if end == 0 {
				b.WriteByte('\'')
			} else {
				b.WriteString(pattern[i+1 : i+1+end])
			}
			i += end + 2
			continue
		}

		matched := false
		for _, tok := range javaTokens {
			if strings.HasPrefix(pattern[i:], tok.java) {
				b.WriteString(tok.layout)
				i += len(tok.java)
				matched = true
				break
			}
		}
		if !matched {
			b.WriteByte(c)
			i++
		}
	}
	return b.String()
}

func isGoLayout(pattern string) bool {
	for _, marker := range []string{"2006", "15:04", "01/02", "Z07:00"} {
		if strings.Contains(pattern, marker) {
			return true
		}
	}
	return false
}

// unquote strips one pair of matching surrounding quotes.
func unquote(raw string) string {
	raw = strings.TrimSpace(raw)
	if len(raw) >= 2 {
		first, last := raw[0], raw[len(raw)-1]
		if first == last && (first == '"' || first == '\'' || first == '`') {
			return raw[1 : len(raw)-1]
		}
	}
	return raw
}
