package main

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"stacks/internal/classify"
	"stacks/internal/config"
	"stacks/internal/desktop"
	"stacks/internal/logging"
	"stacks/internal/stacker"
)

type commandContext struct {
	configFlag   *string
	dirFlag      *string
	logLevelFlag *string

	configOnce sync.Once
	config     *config.Config
	configPath string
	configErr  error

	providerOnce sync.Once
	provider     desktop.Provider
	providerErr  error

	loggerOnce sync.Once
	log        *slog.Logger
	logClose   func() error
	loggerErr  error
}

func newCommandContext(configFlag, dirFlag, logLevelFlag *string) *commandContext {
	return &commandContext{
		configFlag:   configFlag,
		dirFlag:      dirFlag,
		logLevelFlag: logLevelFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, resolved, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if c.logLevelFlag != nil && strings.TrimSpace(*c.logLevelFlag) != "" {
			cfg.Logging.Level = strings.ToLower(strings.TrimSpace(*c.logLevelFlag))
			if err := cfg.Validate(); err != nil {
				c.configErr = err
				return
			}
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configPath = resolved
	})
	return c.config, c.configErr
}

// desktopProvider returns the XDG provider with configured folder and
// directory overrides applied.
func (c *commandContext) desktopProvider() (desktop.Provider, error) {
	c.providerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.providerErr = err
			return
		}
		base, err := desktop.NewXDG()
		if err != nil {
			c.providerErr = err
			return
		}
		c.provider = desktop.WithOverrides(base, desktop.Overrides{
			DesktopDir: cfg.Paths.DesktopDir,
			Folders: desktop.SpecialFolders{
				Pictures: cfg.Folders.Pictures,
				Videos:   cfg.Folders.Videos,
				Music:    cfg.Folders.Music,
			},
		})
	})
	return c.provider, c.providerErr
}

func (c *commandContext) classifier() (*classify.Classifier, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	provider, err := c.desktopProvider()
	if err != nil {
		return nil, err
	}
	opts := classify.Options{
		Others:     cfg.Folders.Others,
		Extensions: cfg.Classify.Extensions,
	}
	if cfg.Classify.ContentSniffing {
		opts.Sniffer = classify.ContentSniffer{}
	}
	return classify.New(provider, opts), nil
}

// targetDir resolves the directory to organize: --dir, then the configured
// or environment-provided desktop directory.
func (c *commandContext) targetDir() (string, error) {
	if c.dirFlag != nil && strings.TrimSpace(*c.dirFlag) != "" {
		expanded, err := config.ExpandPath(strings.TrimSpace(*c.dirFlag))
		if err != nil {
			return "", fmt.Errorf("resolve --dir: %w", err)
		}
		return filepath.Abs(expanded)
	}
	provider, err := c.desktopProvider()
	if err != nil {
		return "", err
	}
	dir, err := provider.DesktopDir()
	if err != nil {
		return "", fmt.Errorf("resolve desktop directory: %w", err)
	}
	return dir, nil
}

// logger builds the configured logger once per command context. The log
// file stays open until closeLogger.
func (c *commandContext) logger(cmd *cobra.Command) (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		logger, closeLog, err := logging.NewFromConfig(cfg, cmd.ErrOrStderr())
		if err != nil {
			c.loggerErr = fmt.Errorf("init logger: %w", err)
			return
		}
		c.log = logger
		c.logClose = closeLog
	})
	return c.log, c.loggerErr
}

func (c *commandContext) closeLogger() error {
	if c.logClose == nil {
		return nil
	}
	closeLog := c.logClose
	c.logClose = nil
	return closeLog()
}

// runContext tags the command context with a fresh run identifier.
func runContext(cmd *cobra.Command) context.Context {
	return logging.WithRunID(cmd.Context(), uuid.NewString())
}

func (c *commandContext) newStacker(cmd *cobra.Command) (*stacker.Stacker, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := c.logger(cmd)
	if err != nil {
		return nil, err
	}
	provider, err := c.desktopProvider()
	if err != nil {
		return nil, err
	}
	classifier, err := c.classifier()
	if err != nil {
		return nil, err
	}
	target, err := c.targetDir()
	if err != nil {
		return nil, err
	}
	return stacker.New(target, classifier, provider, stacker.Options{
		Ignore: cfg.Stack.Ignore,
		Logger: logger,
	}), nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
