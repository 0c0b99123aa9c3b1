package vcs

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/devolutions-sync/cirup/internal/cirerr"
)

const gitDefaultBranch = "master"

// gitDefaultLogFormat is the pretty-format string spec §6 fixes for git
// log when the caller doesn't supply one: short hash, author date
// (ISO 8601), author name, subject.
const gitDefaultLogFormat = "%h - %aI - %an - %s"

// Git is the git-backed Collaborator, grounded on cirup_core's Vcs
// (vcs.rs) with two REDESIGN FLAG deviations: InitRepo fails fast on a
// pending rebase/merge instead of running "rebase --abort", and Pull
// fast-forwards instead of discarding local history with reset --hard.
type Git struct {
	localPath  string
	remotePath string
}

func (g *Git) run(args ...string) (string, error) {
	return run("git", g.localPath, args...)
}

func (g *Git) isRepo() bool {
	return isDir(g.localPath) && isDir(filepath.Join(g.localPath, ".git"))
}

// InitRepo clones remotePath into localPath if it isn't a repo yet.
// If it is, a rebase or merge left mid-flight is a hard error: the
// original aborted it silently, which can discard work in progress.
func (g *Git) InitRepo() error {
	if !g.isRepo() {
		_, err := run("git", "", "clone", g.remotePath, "--branch", gitDefaultBranch, g.localPath)
		return err
	}

	gitDir := filepath.Join(g.localPath, ".git")
	if pendingRebase(gitDir) {
		return &cirerr.ValidationError{
			Subject: "repository state",
			Reason:  "a rebase or merge is in progress in " + g.localPath + "; resolve it before continuing",
		}
	}
	return nil
}

func (g *Git) CurrentRevision() (string, error) {
	if err := g.InitRepo(); err != nil {
		return "", err
	}
	out, err := g.run("rev-parse", "--short", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// Pull fast-forwards onto origin's default branch. Unlike the original's
// reset --hard sequence, a divergent history is surfaced as an error
// rather than silently discarded.
func (g *Git) Pull() error {
	if err := g.InitRepo(); err != nil {
		return err
	}
	if _, err := g.run("fetch"); err != nil {
		return err
	}
	if _, err := g.run("merge", "--ff-only", "origin/"+gitDefaultBranch); err != nil {
		return err
	}
	return nil
}

// Log renders history for filespec between old (exclusive unless
// inclusive) and new, using gitDefaultLogFormat when format is empty.
func (g *Git) Log(filespec, format string, old, new string, inclusive bool, limit int) (string, error) {
	if format == "" {
		format = gitDefaultLogFormat
	}

	args := []string{"log", "--pretty=format:" + format}
	if limit > 0 {
		args = append(args, "--max-count", strconv.Itoa(limit))
	}

	rangeArg := g.revisionRange(old, new, inclusive)
	if rangeArg != "" {
		args = append(args, rangeArg)
	}
	args = append(args, filespec)

	return g.run(args...)
}

func (g *Git) revisionRange(old, new string, inclusive bool) string {
	if old == "" {
		return ""
	}
	if new == "" {
		new = "HEAD"
	}
	suffix := ""
	if inclusive {
		suffix = "^"
	}
	return fmt.Sprintf("%s%s..%s", old, suffix, new)
}

func (g *Git) Diff(filespec, old, new string) (string, error) {
	args := []string{"diff", old}
	if new != "" {
		args = append(args, new)
	}
	args = append(args, filespec)
	return g.run(args...)
}

func (g *Git) Show(filespec, rev, outPath string) error {
	if rev == "" {
		rev = "HEAD"
	}
	return runToFile("git", g.localPath, outPath, "show", rev+":"+filespec)
}

func (g *Git) Push() error {
	return &cirerr.Unsupported{Operation: "push", Plugin: "git"}
}
