// Package vcs implements the narrow VCS collaborator contract the sync
// pipeline depends on (spec §4.9): init/current-revision/pull/log/diff/
// show, with push explicitly unsupported. Grounded on cirup_core's
// vcs.rs for the git command surface and on the teacher's gitutil
// package (apps/cli/internal/gitutil) for the os/exec calling
// convention used throughout this package.
package vcs

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/devolutions-sync/cirup/internal/cirerr"
	"github.com/devolutions-sync/cirup/internal/config"
)

// Collaborator is the capability set the sync pipeline consumes.
type Collaborator interface {
	InitRepo() error
	CurrentRevision() (string, error)
	Pull() error
	Log(filespec, format string, old, new string, inclusive bool, limit int) (string, error)
	Diff(filespec, old, new string) (string, error)
	Show(filespec, rev, outPath string) error
	Push() error
}

// New builds the collaborator named by cfg.Plugin ("git" or "svn").
func New(cfg config.VCSConfig) (Collaborator, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Plugin)) {
	case "git", "":
		return &Git{localPath: cfg.LocalPath, remotePath: cfg.RemotePath}, nil
	case "svn":
		return &SVN{localPath: cfg.LocalPath, remotePath: cfg.RemotePath}, nil
	default:
		return nil, &cirerr.ConfigError{Field: "vcs.plugin", Underlying: errUnknownPlugin(cfg.Plugin)}
	}
}

type errUnknownPlugin string

func (e errUnknownPlugin) Error() string { return "unknown vcs plugin '" + string(e) + "'" }

// run executes name with args in dir, returning combined output and
// wrapping a non-zero exit as a SubprocessError.
func run(name, dir string, args ...string) (string, error) {
	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	err := cmd.Run()
	if err != nil {
		exitCode := -1
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		}
		return out.String(), &cirerr.SubprocessError{
			Command:  name,
			Args:     args,
			ExitCode: exitCode,
			Output:   out.String(),
		}
	}
	return out.String(), nil
}

// runToFile executes name with args in dir, redirecting stdout to
// outPath, as git show/svn cat require for materialising a blob.
func runToFile(name, dir, outPath string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Dir = dir

	f, err := os.Create(outPath)
	if err != nil {
		return &cirerr.IOError{Op: "create", Path: outPath, Underlying: err}
	}
	defer f.Close()

	var stderr bytes.Buffer
	cmd.Stdout = f
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		exitCode := -1
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		}
		return &cirerr.SubprocessError{
			Command:  name,
			Args:     args,
			ExitCode: exitCode,
			Output:   stderr.String(),
		}
	}
	return nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func pendingRebase(gitDir string) bool {
	_, errMerge := os.Stat(filepath.Join(gitDir, "rebase-merge"))
	_, errApply := os.Stat(filepath.Join(gitDir, "rebase-apply"))
	_, errMergeHead := os.Stat(filepath.Join(gitDir, "MERGE_HEAD"))
	return errMerge == nil || errApply == nil || errMergeHead == nil
}
