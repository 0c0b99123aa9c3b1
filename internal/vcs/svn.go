package vcs

import (
	"strconv"
	"strings"

	"github.com/devolutions-sync/cirup/internal/cirerr"
)

// SVN is the minimal svn-backed Collaborator spec §6 calls for: enough
// of the same surface as Git to drive pull-only sync jobs against a
// Subversion working copy.
type SVN struct {
	localPath  string
	remotePath string
}

func (s *SVN) run(args ...string) (string, error) {
	return run("svn", s.localPath, args...)
}

func (s *SVN) isCheckout() bool {
	return isDir(s.localPath) && isDir(s.localPath+"/.svn")
}

func (s *SVN) InitRepo() error {
	if !s.isCheckout() {
		_, err := run("svn", "", "co", "--non-interactive", s.remotePath, s.localPath)
		return err
	}
	return nil
}

func (s *SVN) CurrentRevision() (string, error) {
	if err := s.InitRepo(); err != nil {
		return "", err
	}
	out, err := s.run("info", "--show-item", "revision")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// Pull dry-runs a merge from the working copy's base to HEAD to detect
// conflicts before updating, the svn analogue of git's ff-only guard.
func (s *SVN) Pull() error {
	if err := s.InitRepo(); err != nil {
		return err
	}
	if _, err := s.run("merge", "--dry-run", "-r", "BASE:HEAD", "."); err != nil {
		return err
	}
	_, err := s.run("update")
	return err
}

func (s *SVN) Log(filespec, format string, old, new string, inclusive bool, limit int) (string, error) {
	if new == "" {
		new = "HEAD"
	}
	if old == "" {
		old = "1"
	}
	args := []string{"log", "--revision", new + ":" + old, "--xml"}
	if limit > 0 {
		args = append(args, "--limit", strconv.Itoa(limit))
	}
	args = append(args, filespec)
	return s.run(args...)
}

func (s *SVN) Diff(filespec, old, new string) (string, error) {
	if new == "" {
		new = "HEAD"
	}
	return s.run("diff", "--revision", old+":"+new, filespec)
}

func (s *SVN) Show(filespec, rev, outPath string) error {
	args := []string{"cat"}
	if rev != "" {
		args = append(args, "--revision", rev)
	}
	args = append(args, filespec)
	return runToFile("svn", s.localPath, outPath, args...)
}

func (s *SVN) Push() error {
	return &cirerr.Unsupported{Operation: "push", Plugin: "svn"}
}
