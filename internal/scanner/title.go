package scanner

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	knownExtRegex    = regexp.MustCompile(`\.(mp4|mkv|avi|webm|ts|sub|srt|idx)$`)
	langSuffixRegex  = regexp.MustCompile(`\.en$`)
	editionRegex     = regexp.MustCompile(`\(\d{4}\)\{([^}]+)\}`)
	yearEditionRegex = regexp.MustCompile(`\(\d{4}\)(\{[^}]+\})?`)
	parenYearRegex   = regexp.MustCompile(`\(\d{4}\)`)
)

// ExtractTitle turns a base filename into a search title.
//
// A trailing known extension and a trailing ".en" are dropped, an edition
// written as "(YYYY){Edition}" is captured, every "(YYYY)" with its optional
// edition is removed, and dots become spaces. Edition is empty when absent.
func ExtractTitle(name string) (title, edition string) {
	name = knownExtRegex.ReplaceAllString(name, "")
	name = langSuffixRegex.ReplaceAllString(name, "")

	if m := editionRegex.FindStringSubmatch(name); m != nil {
		edition = m[1]
	}

	name = yearEditionRegex.ReplaceAllString(name, "")
	name = strings.ReplaceAll(name, ".", " ")

	return strings.TrimSpace(name), edition
}

// SearchQuery normalizes a title to NFC before it is sent to TMDB.
// Filenames read from some filesystems arrive in decomposed form.
func SearchQuery(title string) string {
	return norm.NFC.String(title)
}

// HasParenthesizedYear reports whether name already carries a "(YYYY)" stamp
func HasParenthesizedYear(name string) bool {
	return parenYearRegex.MatchString(name)
}
