package scanner

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestGroupNames(t *testing.T) {
	names := []string{
		"Foo.Bar.en.srt",
		"Foo.Bar.mkv",
		"Heat.mp4",
		"Heat.en.idx",
		"notes.txt",
		"Heat.fr.srt",
		"Movie.cd1.avi",
		"Movie.CD2.avi",
		"Movie 1999 rip.mkv",
		"2001.A.Space.Odyssey.mkv",
		"Done.(1999).mkv",
		"Done.(1999).en.srt",
		".mkv",
	}

	scan := GroupNames(names, nil)

	want := []FileGroup{
		{Base: "2001.A.Space.Odyssey", Files: []string{"2001.A.Space.Odyssey.mkv"}},
		{Base: "Foo.Bar", Files: []string{"Foo.Bar.en.srt", "Foo.Bar.mkv"}},
		{Base: "Heat", Files: []string{"Heat.mp4"}},
		{Base: "Heat.en", Files: []string{"Heat.en.idx"}},
	}
	if !reflect.DeepEqual(scan.Groups, want) {
		t.Fatalf("GroupNames groups =\n%+v\nwant\n%+v", scan.Groups, want)
	}

	reasons := make(map[string]SkipReason)
	for _, s := range scan.Skipped {
		reasons[s.Name] = s.Reason
	}

	expectSkip := map[string]SkipReason{
		"Movie.cd1.avi":      SkipMultiDisc,
		"Movie.CD2.avi":      SkipMultiDisc,
		"Movie 1999 rip.mkv": SkipLooseYear,
		"Done.(1999).mkv":    SkipStamped,
		"Done.(1999).en.srt": SkipStamped,
		".mkv":               SkipNoTitle,
	}
	for name, reason := range expectSkip {
		if reasons[name] != reason {
			t.Errorf("%s: skip reason = %q, want %q", name, reasons[name], reason)
		}
	}

	// Files outside the allow-list are ignored silently
	for _, ignored := range []string{"notes.txt", "Heat.fr.srt"} {
		if _, ok := reasons[ignored]; ok {
			t.Errorf("%s should be ignored, not skipped", ignored)
		}
	}
}

func TestGroupNamesStampedGroupDoesNotHideOthers(t *testing.T) {
	scan := GroupNames([]string{"Up.(2009).mkv", "Up.(2009).en.srt", "Up.mkv"}, nil)

	if len(scan.Groups) != 1 || scan.Groups[0].Base != "Up" {
		t.Fatalf("expected only the unstamped group, got %+v", scan.Groups)
	}
	if len(scan.Skipped) != 2 {
		t.Errorf("expected both stamped files to be skipped, got %+v", scan.Skipped)
	}
}

func TestBaseNameAndTargetSuffix(t *testing.T) {
	tests := []struct {
		name       string
		wantBase   string
		wantSuffix string
	}{
		{"Foo.Bar.mkv", "Foo.Bar", ".mkv"},
		{"Foo.Bar.en.srt", "Foo.Bar", ".en.srt"},
		{"Foo.Bar.en.idx", "Foo.Bar.en", ".idx"},
		{"Fooen.srt", "Fooen", ".srt"},
		{"Foo.en.sub", "Foo.en", ".sub"},
		{"Foo.Bar.ts", "Foo.Bar", ".ts"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BaseName(tt.name); got != tt.wantBase {
				t.Errorf("BaseName(%q) = %q, want %q", tt.name, got, tt.wantBase)
			}
			if got := TargetSuffix(tt.name); got != tt.wantSuffix {
				t.Errorf("TargetSuffix(%q) = %q, want %q", tt.name, got, tt.wantSuffix)
			}
			if BaseName(tt.name)+TargetSuffix(tt.name) != tt.name {
				t.Errorf("base and suffix of %q do not rebuild the name", tt.name)
			}
		})
	}
}

func TestGroupFilesReadsRegularFilesOnly(t *testing.T) {
	tmpDir := t.TempDir()

	if err := os.WriteFile(filepath.Join(tmpDir, "Heat.mkv"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(tmpDir, "Folder.mkv"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink(filepath.Join(tmpDir, "Heat.mkv"), filepath.Join(tmpDir, "Link.mkv")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	scan, err := GroupFiles(tmpDir, nil)
	if err != nil {
		t.Fatalf("GroupFiles() error = %v", err)
	}

	var bases []string
	for _, g := range scan.Groups {
		bases = append(bases, g.Base)
	}
	if !reflect.DeepEqual(bases, []string{"Heat", "Link"}) {
		t.Errorf("expected Heat and Link groups, got %v", bases)
	}

	if _, err := GroupFiles(filepath.Join(tmpDir, "missing"), nil); err == nil {
		t.Error("expected error for missing directory")
	}
}
