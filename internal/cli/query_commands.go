package cli

import (
	"fmt"

	"github.com/devolutions-sync/cirup/internal/backend"
	"github.com/devolutions-sync/cirup/internal/query"
)

func cmdFilePrint(args []string) error {
	fs, g := newFlagSet("file-print")
	out := fs.String("out", "", "write result through the format codec instead of printing")
	if err := fs.Parse(args); err != nil {
		return err
	}
	applyVerbosity(g)
	if fs.NArg() != 1 {
		return fmt.Errorf("file-print: expected <file>")
	}

	cfg, err := loadConfig(*g.configPath)
	if err != nil {
		return err
	}
	b, err := buildBackend(cfg)
	if err != nil {
		return err
	}
	defer b.Close()

	q, err := query.Print(b, fs.Arg(0))
	if err != nil {
		return err
	}
	return q.RunInteractive(*out)
}

func cmdFileConvert(args []string) error {
	fs, g := newFlagSet("file-convert")
	if err := fs.Parse(args); err != nil {
		return err
	}
	applyVerbosity(g)
	if fs.NArg() != 2 {
		return fmt.Errorf("file-convert: expected <file> <out-file>")
	}

	cfg, err := loadConfig(*g.configPath)
	if err != nil {
		return err
	}
	b, err := buildBackend(cfg)
	if err != nil {
		return err
	}
	defer b.Close()

	q, err := query.Convert(b, fs.Arg(0))
	if err != nil {
		return err
	}
	return q.RunInteractive(fs.Arg(1))
}

func cmdFileSort(args []string) error {
	fs, g := newFlagSet("file-sort")
	out := fs.String("out", "", "write result through the format codec instead of printing")
	if err := fs.Parse(args); err != nil {
		return err
	}
	applyVerbosity(g)
	if fs.NArg() != 1 {
		return fmt.Errorf("file-sort: expected <file>")
	}

	cfg, err := loadConfig(*g.configPath)
	if err != nil {
		return err
	}
	b, err := buildBackend(cfg)
	if err != nil {
		return err
	}
	defer b.Close()

	q, err := query.Sort(b, fs.Arg(0))
	if err != nil {
		return err
	}
	return q.RunInteractive(*out)
}

func cmdFileDiff(args []string) error {
	fs, g := newFlagSet("file-diff")
	out := fs.String("out", "", "write result through the format codec instead of printing")
	if err := fs.Parse(args); err != nil {
		return err
	}
	applyVerbosity(g)
	if fs.NArg() != 2 {
		return fmt.Errorf("file-diff: expected <file1> <file2>")
	}

	cfg, err := loadConfig(*g.configPath)
	if err != nil {
		return err
	}
	b, err := buildBackend(cfg)
	if err != nil {
		return err
	}
	defer b.Close()

	var q *query.Query
	if *g.showChanges {
		q, err = query.Change(b, fs.Arg(0), fs.Arg(1))
	} else {
		q, err = query.Diff(b, fs.Arg(0), fs.Arg(1))
	}
	if err != nil {
		return err
	}
	return q.RunInteractive(*out)
}

func cmdFileMerge(args []string) error {
	return runTwoFileQuery("file-merge", args, query.Merge)
}

func cmdFileIntersect(args []string) error {
	return runTwoFileQuery("file-intersect", args, query.Intersect)
}

func cmdFileSubtract(args []string) error {
	return runTwoFileQuery("file-subtract", args, query.Subtract)
}

type twoFileQueryCtor func(b backend.QueryBackend, fileOne, fileTwo string) (*query.Query, error)

func runTwoFileQuery(name string, args []string, ctor twoFileQueryCtor) error {
	fs, g := newFlagSet(name)
	out := fs.String("out", "", "write result through the format codec instead of printing")
	if err := fs.Parse(args); err != nil {
		return err
	}
	applyVerbosity(g)
	if fs.NArg() != 2 {
		return fmt.Errorf("%s: expected <file1> <file2>", name)
	}

	cfg, err := loadConfig(*g.configPath)
	if err != nil {
		return err
	}
	b, err := buildBackend(cfg)
	if err != nil {
		return err
	}
	defer b.Close()

	q, err := ctor(b, fs.Arg(0), fs.Arg(1))
	if err != nil {
		return err
	}
	return q.RunInteractive(*out)
}

func cmdDiffWithBase(args []string) error {
	fs, g := newFlagSet("diff-with-base")
	if err := fs.Parse(args); err != nil {
		return err
	}
	applyVerbosity(g)
	if fs.NArg() != 3 {
		return fmt.Errorf("diff-with-base: expected <old> <new> <base>")
	}

	cfg, err := loadConfig(*g.configPath)
	if err != nil {
		return err
	}
	b, err := buildBackend(cfg)
	if err != nil {
		return err
	}
	defer b.Close()

	q, err := query.DiffWithBase(b, fs.Arg(0), fs.Arg(1), fs.Arg(2))
	if err != nil {
		return err
	}
	return q.RunTripleInteractive()
}
