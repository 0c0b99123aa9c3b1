package cli

import (
	"flag"
	"fmt"

	"github.com/devolutions-sync/cirup/internal/config"
	"github.com/devolutions-sync/cirup/internal/logger"
)

// globalFlags is the set of flags every verb accepts, matching them as
// pointers so each command's FlagSet can register them alongside its own
// positional arguments.
type globalFlags struct {
	configPath *string
	verbose    *int
	oldCommit  *string
	newCommit  *string
	showChanges *bool
}

func newFlagSet(name string) (*flag.FlagSet, *globalFlags) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	g := &globalFlags{
		configPath:  fs.String("config", "", "path to cirup.toml"),
		verbose:     new(int),
		oldCommit:   fs.String("old-commit", "", "old revision"),
		newCommit:   fs.String("new-commit", "", "new revision"),
		showChanges: fs.Bool("show-changes", false, "report changed values instead of missing keys"),
	}
	fs.BoolFunc("verbose", "increase logging verbosity (repeatable)", func(string) error {
		*g.verbose++
		return nil
	})
	return fs, g
}

// loadConfig resolves --config into a validated Config, falling back to
// the local-managed default when no path was given.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return defaultConfig(), nil
	}
	return config.Load(path)
}

// Run dispatches args[0] to the matching verb, mirroring the teacher's
// flat Run(args) switch.
func Run(args []string) error {
	if len(args) == 0 {
		return usage()
	}

	verb, rest := args[0], args[1:]
	switch verb {
	case "file-print":
		return cmdFilePrint(rest)
	case "file-convert":
		return cmdFileConvert(rest)
	case "file-sort":
		return cmdFileSort(rest)
	case "file-diff":
		return cmdFileDiff(rest)
	case "file-merge":
		return cmdFileMerge(rest)
	case "file-intersect":
		return cmdFileIntersect(rest)
	case "file-subtract":
		return cmdFileSubtract(rest)
	case "diff-with-base":
		return cmdDiffWithBase(rest)
	case "vcs-log":
		return cmdVCSLog(rest)
	case "vcs-diff":
		return cmdVCSDiff(rest)
	case "pull":
		return cmdPull(rest)
	case "push":
		return cmdPush(rest)
	case "help", "-h", "--help":
		return usage()
	default:
		return fmt.Errorf("unknown command: %s\nrun 'cirup help' for usage", verb)
	}
}

func usage() error {
	fmt.Println(`cirup: localization resource sync

usage:
  cirup file-print <file> [--out path]
  cirup file-convert <file> <out-file>
  cirup file-sort <file> [--out path]
  cirup file-diff <file1> <file2> [--show-changes] [--out path]
  cirup file-merge <file1> <file2> [--out path]
  cirup file-intersect <file1> <file2> [--out path]
  cirup file-subtract <file1> <file2> [--out path]
  cirup diff-with-base <old> <new> <base>
  cirup vcs-log <filespec> --config path [--limit N] [--format F] [--old-commit R] [--new-commit R]
  cirup vcs-diff <filespec> --config path --old-commit R [--new-commit R]
  cirup pull --config path [--old-commit R] [--new-commit R] [--show-changes]
  cirup push --config path [--old-commit R] [--new-commit R]

global flags:
  --config path        cirup.toml to load
  --verbose            increase logging verbosity (repeatable)
  --old-commit rev      old revision bound
  --new-commit rev      new revision bound
  --show-changes        diff reports changed values, not just additions`)
	return nil
}

func applyVerbosity(g *globalFlags) {
	logger.SetLevel(logger.FromVerbosity(*g.verbose))
}
