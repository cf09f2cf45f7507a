package scanner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/time/rate"

	"github.com/Nomadcxx/yearstamp/internal/tmdb"
	"github.com/Nomadcxx/yearstamp/internal/ui"
)

// Status is the final state of one file
type Status string

const (
	StatusRenamed   Status = "renamed"
	StatusDryRun    Status = "dry-run"
	StatusDeclined  Status = "declined"
	StatusCollision Status = "collision"
	StatusFailed    Status = "failed"
	StatusNoYear    Status = "no year"
	StatusSkipped   Status = "skipped"
)

// RenameResult tracks a single file decision
type RenameResult struct {
	OldName string
	NewName string
	Status  Status
	Detail  string
}

// Summary collects every decision made during a run
type Summary struct {
	Directory string
	Results   []RenameResult
	Aborted   bool // user answered "q"
}

// Count returns how many results have the given status
func (s *Summary) Count(status Status) int {
	n := 0
	for _, r := range s.Results {
		if r.Status == status {
			n++
		}
	}
	return n
}

func (s *Summary) add(r RenameResult) {
	s.Results = append(s.Results, r)
}

// Renamer stamps release years into the filenames of one directory
type Renamer struct {
	dir      string
	finder   tmdb.YearFinder
	console  *ui.Console
	approver ui.Approver
	limiter  *rate.Limiter
	dryRun   bool
}

// Option configures a Renamer
type Option func(*Renamer)

// WithApprover enables interactive mode; every rename is confirmed first
func WithApprover(a ui.Approver) Option {
	return func(r *Renamer) {
		r.approver = a
	}
}

// WithDryRun reports renames without touching the filesystem
func WithDryRun(dryRun bool) Option {
	return func(r *Renamer) {
		r.dryRun = dryRun
	}
}

// WithDelay sets the minimum spacing between two lookups
func WithDelay(d time.Duration) Option {
	return func(r *Renamer) {
		r.limiter = newLimiter(d)
	}
}

func newLimiter(d time.Duration) *rate.Limiter {
	if d <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(d), 1)
}

// NewRenamer creates a renamer for dir
func NewRenamer(dir string, finder tmdb.YearFinder, console *ui.Console, opts ...Option) *Renamer {
	r := &Renamer{
		dir:     dir,
		finder:  finder,
		console: console,
		limiter: newLimiter(250 * time.Millisecond),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run groups the directory and processes every group in order.
//
// Per-title lookup failures and per-file rename errors are recorded in the
// summary and do not stop the run. A "q" answer stops immediately and sets
// Summary.Aborted; files renamed so far stay renamed. An error is returned
// only when the directory cannot be used or ctx is cancelled.
func (r *Renamer) Run(ctx context.Context) (*Summary, error) {
	summary := &Summary{Directory: r.dir}

	if err := ValidateDirectory(r.dir); err != nil {
		return summary, err
	}

	scan, err := GroupFiles(r.dir, r.console)
	if err != nil {
		return summary, err
	}

	for _, skipped := range scan.Skipped {
		summary.add(RenameResult{OldName: skipped.Name, Status: StatusSkipped, Detail: string(skipped.Reason)})
	}

	r.console.Debugf("Found %d groups in %s", len(scan.Groups), r.dir)

	for _, group := range scan.Groups {
		if err := r.limiter.Wait(ctx); err != nil {
			return summary, fmt.Errorf("run interrupted: %w", err)
		}

		quit, err := r.processGroup(ctx, group, summary)
		if err != nil {
			return summary, err
		}
		if quit {
			r.console.Infof("Quitting...")
			summary.Aborted = true
			return summary, nil
		}
	}

	return summary, nil
}

// processGroup looks up one title and renames every file of the group
func (r *Renamer) processGroup(ctx context.Context, group FileGroup, summary *Summary) (bool, error) {
	title, edition := ExtractTitle(group.Base)
	r.console.Debugf("Looking up %q for %s", title, group.Base)

	lookup := r.finder.FindYear(ctx, SearchQuery(title))
	if lookup.Outcome == tmdb.OutcomeFailed {
		r.console.Warnf("Error searching for %s: %v", title, lookup.Err)
	}
	if lookup.Outcome != tmdb.OutcomeFound {
		r.console.Warnf("Could not find year for base name: %s", group.Base)
		detail := lookup.Outcome.String()
		if lookup.Err != nil {
			detail = lookup.Err.Error()
		}
		for _, name := range group.Files {
			summary.add(RenameResult{OldName: name, Status: StatusNoYear, Detail: detail})
		}
		return false, nil
	}

	for _, name := range group.Files {
		quit, err := r.renameFile(ctx, name, group.Base, lookup.Year, edition, summary)
		if err != nil || quit {
			return quit, err
		}
	}
	return false, nil
}

// renameFile applies the collision check, the optional prompt, and the rename
func (r *Renamer) renameFile(ctx context.Context, name, base, year, edition string, summary *Summary) (bool, error) {
	suffix := TargetSuffix(name)
	newName := StampedName(base, year, edition, suffix)

	if r.exists(newName) {
		r.console.Warnf("%s already exists, skipping...", newName)
		summary.add(RenameResult{OldName: name, NewName: newName, Status: StatusCollision, Detail: "target exists"})
		return false, nil
	}

	if r.approver != nil {
		approval, err := r.approver.Approve(ctx, name, newName)
		if err != nil {
			return false, err
		}

		switch approval.Decision {
		case ui.DecisionQuit:
			return true, nil
		case ui.DecisionNo:
			r.console.Infof("Skipping...")
			summary.add(RenameResult{OldName: name, NewName: newName, Status: StatusDeclined})
			return false, nil
		}

		if approval.Year != "" && approval.Year != year {
			newName = StampedName(base, approval.Year, edition, suffix)
			if r.exists(newName) {
				r.console.Warnf("%s already exists, skipping...", newName)
				summary.add(RenameResult{OldName: name, NewName: newName, Status: StatusCollision, Detail: "target exists"})
				return false, nil
			}
		}
	}

	if r.dryRun {
		r.console.OKf("Would rename: %s -> %s", name, newName)
		summary.add(RenameResult{OldName: name, NewName: newName, Status: StatusDryRun})
		return false, nil
	}

	oldPath := filepath.Join(r.dir, name)
	newPath := filepath.Join(r.dir, newName)
	if err := os.Rename(oldPath, newPath); err != nil {
		r.console.Failf("Error renaming %s: %v", name, err)
		summary.add(RenameResult{OldName: name, NewName: newName, Status: StatusFailed, Detail: err.Error()})
		return false, nil
	}

	r.console.OKf("Renamed: %s -> %s", name, newName)
	summary.add(RenameResult{OldName: name, NewName: newName, Status: StatusRenamed})
	return false, nil
}

func (r *Renamer) exists(name string) bool {
	_, err := os.Lstat(filepath.Join(r.dir, name))
	return err == nil
}
