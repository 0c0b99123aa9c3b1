package cli

import (
	"fmt"

	"github.com/devolutions-sync/cirup/internal/cirerr"
	"github.com/devolutions-sync/cirup/internal/sync"
	"github.com/devolutions-sync/cirup/internal/vcs"
)

func cmdPull(args []string) error {
	fs, g := newFlagSet("pull")
	if err := fs.Parse(args); err != nil {
		return err
	}
	applyVerbosity(g)
	if *g.configPath == "" {
		return &cirerr.ConfigError{Field: "config", Underlying: fmt.Errorf("pull requires --config")}
	}

	pipeline, err := buildPipeline(*g.configPath)
	if err != nil {
		return err
	}
	defer pipeline.Backend.Close()

	return pipeline.Pull(*g.oldCommit, *g.newCommit, *g.showChanges)
}

func cmdPush(args []string) error {
	fs, g := newFlagSet("push")
	if err := fs.Parse(args); err != nil {
		return err
	}
	applyVerbosity(g)
	if *g.configPath == "" {
		return &cirerr.ConfigError{Field: "config", Underlying: fmt.Errorf("push requires --config")}
	}

	pipeline, err := buildPipeline(*g.configPath)
	if err != nil {
		return err
	}
	defer pipeline.Backend.Close()

	return pipeline.Push(*g.oldCommit, *g.newCommit)
}

func buildPipeline(configPath string) (*sync.Pipeline, error) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return nil, err
	}

	collaborator, err := vcs.New(cfg.VCS)
	if err != nil {
		return nil, err
	}

	b, err := buildBackend(cfg)
	if err != nil {
		return nil, err
	}

	return sync.New(cfg, collaborator, b), nil
}
