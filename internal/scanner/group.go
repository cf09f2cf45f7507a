package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Nomadcxx/yearstamp/internal/ui"
)

// Suffixes of files the renamer handles. Only English subtitles are picked up.
var allowedSuffixes = []string{".mp4", ".mkv", ".avi", ".webm", ".ts", ".sub", "en.srt", "en.idx", ".en.srt"}

// Subtitle suffixes kept whole when a year is inserted. VobSub pairs
// (.en.idx + .en.sub) keep ".en" in the base so both halves share one stem.
var compoundSuffixes = []string{".en.srt"}

// FileGroup is a movie file and its subtitle siblings sharing one base name
type FileGroup struct {
	Base  string
	Files []string
}

// SkipReason explains why a file was left out of every group
type SkipReason string

const (
	SkipMultiDisc SkipReason = "multi-disc file"
	SkipLooseYear SkipReason = "4-digit year in name"
	SkipStamped   SkipReason = "already has a year"
	SkipNoTitle   SkipReason = "no title left after stripping extension"
)

// SkippedFile records a file excluded before lookup
type SkippedFile struct {
	Name   string
	Reason SkipReason
}

// Scan is the outcome of grouping one directory
type Scan struct {
	Groups  []FileGroup // sorted by base name
	Skipped []SkippedFile
}

// GroupFiles lists the regular files in dir and groups the eligible ones
func GroupFiles(dir string, console *ui.Console) (*Scan, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var names []string
	for _, entry := range entries {
		if isRegularFile(dir, entry) {
			names = append(names, entry.Name())
		}
	}

	return GroupNames(names, console), nil
}

// isRegularFile follows symlinks the way a plain stat would
func isRegularFile(dir string, entry os.DirEntry) bool {
	if entry.Type()&os.ModeSymlink != 0 {
		info, err := os.Stat(filepath.Join(dir, entry.Name()))
		return err == nil && info.Mode().IsRegular()
	}
	return entry.Type().IsRegular()
}

// GroupNames applies the suffix filter, the multi-disc and year guards, and
// buckets survivors by base name. Groups in which any member already has a
// "(YYYY)" stamp are dropped whole.
func GroupNames(names []string, console *ui.Console) *Scan {
	scan := &Scan{}
	groups := make(map[string][]string)

	for _, name := range names {
		if !hasAllowedSuffix(name) {
			continue
		}

		if IsMultiDisc(name) {
			console.Infof("Skipping multi-CD file: %s", name)
			scan.Skipped = append(scan.Skipped, SkippedFile{Name: name, Reason: SkipMultiDisc})
			continue
		}

		if HasLooseYear(name) {
			console.Infof("Skipping file with 4-digit year: %s", name)
			scan.Skipped = append(scan.Skipped, SkippedFile{Name: name, Reason: SkipLooseYear})
			continue
		}

		base := BaseName(name)
		if base == "" {
			console.Debugf("Skipping file without a title: %s", name)
			scan.Skipped = append(scan.Skipped, SkippedFile{Name: name, Reason: SkipNoTitle})
			continue
		}

		groups[base] = append(groups[base], name)
	}

	bases := make([]string, 0, len(groups))
	for base := range groups {
		bases = append(bases, base)
	}
	sort.Strings(bases)

	for _, base := range bases {
		files := groups[base]
		if anyStamped(files) {
			console.Debugf("Already stamped, skipping group: %s", base)
			for _, f := range files {
				scan.Skipped = append(scan.Skipped, SkippedFile{Name: f, Reason: SkipStamped})
			}
			continue
		}
		scan.Groups = append(scan.Groups, FileGroup{Base: base, Files: files})
	}

	return scan
}

func hasAllowedSuffix(name string) bool {
	for _, suffix := range allowedSuffixes {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}
	return false
}

func anyStamped(files []string) bool {
	for _, f := range files {
		if HasParenthesizedYear(f) {
			return true
		}
	}
	return false
}

// BaseName strips the last extension, and for .srt subtitles also a
// trailing ".en", so that "Foo.en.srt" groups with "Foo.mkv".
func BaseName(name string) string {
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	if ext == ".srt" && strings.HasSuffix(base, ".en") {
		base = strings.TrimSuffix(base, ".en")
	}
	return base
}

// TargetSuffix is the part of name that follows the inserted year
func TargetSuffix(name string) string {
	for _, suffix := range compoundSuffixes {
		if strings.HasSuffix(name, suffix) {
			return suffix
		}
	}
	return filepath.Ext(name)
}

// StampedName builds "base.(year){edition}suffix"
func StampedName(base, year, edition, suffix string) string {
	var editionStr string
	if edition != "" {
		editionStr = "{" + edition + "}"
	}
	return fmt.Sprintf("%s.(%s)%s%s", base, year, editionStr, suffix)
}
