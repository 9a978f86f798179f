package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeFolders()
	c.normalizeClassify()
	c.normalizeStack()
	if err := c.normalizeLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.DesktopDir) == "" {
		if value, ok := os.LookupEnv("STACKS_DESKTOP_DIR"); ok {
			c.Paths.DesktopDir = strings.TrimSpace(value)
		}
	}
	if c.Paths.DesktopDir, err = expandPath(strings.TrimSpace(c.Paths.DesktopDir)); err != nil {
		return fmt.Errorf("paths.desktop_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.StateDir) == "" || c.Paths.StateDir == defaultStateDir {
		c.Paths.StateDir = defaultStateDirectory()
	}
	if c.Paths.StateDir, err = expandPath(strings.TrimSpace(c.Paths.StateDir)); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeFolders() {
	c.Folders.Others = strings.TrimSpace(c.Folders.Others)
	if c.Folders.Others == "" {
		c.Folders.Others = defaultOthersFolder
	}
	c.Folders.Pictures = strings.TrimSpace(c.Folders.Pictures)
	c.Folders.Videos = strings.TrimSpace(c.Folders.Videos)
	c.Folders.Music = strings.TrimSpace(c.Folders.Music)
}

func (c *Config) normalizeClassify() {
	if len(c.Classify.Extensions) == 0 {
		c.Classify.Extensions = nil
		return
	}
	exts := make(map[string]string, len(c.Classify.Extensions))
	for ext, mimeType := range c.Classify.Extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		mimeType = strings.ToLower(strings.TrimSpace(mimeType))
		if ext == "" || mimeType == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		exts[ext] = mimeType
	}
	c.Classify.Extensions = exts
}

func (c *Config) normalizeStack() {
	if len(c.Stack.Ignore) == 0 {
		return
	}
	patterns := make([]string, 0, len(c.Stack.Ignore))
	seen := make(map[string]struct{}, len(c.Stack.Ignore))
	for _, pattern := range c.Stack.Ignore {
		pattern = strings.TrimSpace(pattern)
		if pattern == "" {
			continue
		}
		if _, exists := seen[pattern]; exists {
			continue
		}
		seen[pattern] = struct{}{}
		patterns = append(patterns, pattern)
	}
	c.Stack.Ignore = patterns
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if value, ok := os.LookupEnv("STACKS_LOG_LEVEL"); ok && strings.TrimSpace(value) != "" {
		c.Logging.Level = strings.ToLower(strings.TrimSpace(value))
	}
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	var err error
	if c.Logging.File, err = expandPath(strings.TrimSpace(c.Logging.File)); err != nil {
		return fmt.Errorf("logging.file: %w", err)
	}
	return nil
}
