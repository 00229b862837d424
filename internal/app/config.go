package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vk/vsgen/internal/codegen"
	"github.com/vk/vsgen/internal/notify"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	GraphPath   string // .hcl/.json file or directory
	ModulesPath string // extra kind manifests

	Entry        string
	ModuleName   string
	OutDir       string
	FunctionName string
	ImportScope  codegen.ImportScope

	Check     bool
	Watch     bool
	ListKinds bool

	NotifyURL       string
	HealthcheckPort int

	LogFormat string
	LogLevel  string
}

// NewConfig validates cfg and fills in derived defaults.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.ListKinds {
		return &cfg, nil
	}
	if cfg.GraphPath == "" {
		return nil, errors.New("GraphPath is a required configuration field and cannot be empty")
	}
	info, err := os.Stat(cfg.GraphPath)
	if err != nil {
		return nil, fmt.Errorf("graph path: %w", err)
	}
	if cfg.OutDir == "" {
		if info.IsDir() {
			cfg.OutDir = cfg.GraphPath
		} else {
			cfg.OutDir = filepath.Dir(cfg.GraphPath)
		}
	}
	if cfg.FunctionName == "" {
		cfg.FunctionName = codegen.DefaultFunctionName
	}
	if cfg.NotifyURL != "" {
		if _, err := notify.ParseConfig(cfg.NotifyURL); err != nil {
			return nil, err
		}
	}
	if cfg.Check && cfg.Watch {
		return nil, errors.New("check and watch cannot be combined")
	}
	if cfg.HealthcheckPort > 0 && !cfg.Watch {
		return nil, errors.New("the health check server is only available in watch mode")
	}
	return &cfg, nil
}
