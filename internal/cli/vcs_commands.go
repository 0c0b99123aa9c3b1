package cli

import (
	"fmt"
	"os"

	"github.com/devolutions-sync/cirup/internal/cirerr"
	"github.com/devolutions-sync/cirup/internal/vcs"
)

func cmdVCSLog(args []string) error {
	fs, g := newFlagSet("vcs-log")
	limit := fs.Int("limit", 0, "maximum number of log entries")
	format := fs.String("format", "", "git --pretty format string")
	inclusive := fs.Bool("inclusive", false, "include --old-commit itself in the range")
	if err := fs.Parse(args); err != nil {
		return err
	}
	applyVerbosity(g)
	if fs.NArg() != 1 {
		return fmt.Errorf("vcs-log: expected <filespec>")
	}
	if *g.configPath == "" {
		return &cirerr.ConfigError{Field: "config", Underlying: fmt.Errorf("vcs-log requires --config")}
	}

	cfg, err := loadConfig(*g.configPath)
	if err != nil {
		return err
	}
	collaborator, err := vcs.New(cfg.VCS)
	if err != nil {
		return err
	}

	out, err := collaborator.Log(fs.Arg(0), *format, *g.oldCommit, *g.newCommit, *inclusive, *limit)
	if err != nil {
		return err
	}
	fmt.Print(out)
	return nil
}

func cmdVCSDiff(args []string) error {
	fs, g := newFlagSet("vcs-diff")
	if err := fs.Parse(args); err != nil {
		return err
	}
	applyVerbosity(g)
	if fs.NArg() != 1 {
		return fmt.Errorf("vcs-diff: expected <filespec>")
	}
	if *g.configPath == "" {
		return &cirerr.ConfigError{Field: "config", Underlying: fmt.Errorf("vcs-diff requires --config")}
	}
	if *g.oldCommit == "" {
		return &cirerr.ValidationError{Subject: "vcs-diff", Reason: "--old-commit is required"}
	}

	cfg, err := loadConfig(*g.configPath)
	if err != nil {
		return err
	}
	collaborator, err := vcs.New(cfg.VCS)
	if err != nil {
		return err
	}

	out, err := collaborator.Diff(fs.Arg(0), *g.oldCommit, *g.newCommit)
	if err != nil {
		return err
	}
	fmt.Fprint(os.Stdout, out)
	return nil
}
