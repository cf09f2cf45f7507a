package scanner

import (
	"regexp"
	"strings"
)

var multiDiscRegex = regexp.MustCompile(`(?i)cd\d+`)

// IsMultiDisc reports whether name belongs to a multi-part release (cd1, CD2, ...)
func IsMultiDisc(name string) bool {
	return multiDiscRegex.MatchString(name)
}

// HasLooseYear reports whether name holds a 4-digit number that is not
// wrapped in parentheses and not touching a dot.
//
// Runs are found left to right without overlap: a run may not start right
// after "(" nor end right before ")". A run with a dot on either side is
// treated as part of a dotted title ("2001.A.Space.Odyssey") or release tag
// and does not count.
func HasLooseYear(name string) bool {
	for _, span := range fourDigitRuns(name) {
		start, end := span[0], span[1]
		lo := max(0, start-1)
		hi := min(len(name), end+1)
		if !strings.Contains(name[lo:hi], ".") {
			return true
		}
	}
	return false
}

// fourDigitRuns returns [start, end) spans of 4-digit runs that are not
// directly preceded by "(" or followed by ")".
func fourDigitRuns(s string) [][2]int {
	var spans [][2]int
	for i := 0; i+4 <= len(s); {
		if allDigits(s[i:i+4]) &&
			(i == 0 || s[i-1] != '(') &&
			(i+4 == len(s) || s[i+4] != ')') {
			spans = append(spans, [2]int{i, i + 4})
			i += 4
			continue
		}
		i++
	}
	return spans
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
