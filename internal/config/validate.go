package config

import (
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateFolders(); err != nil {
		return err
	}
	if err := c.validateClassify(); err != nil {
		return err
	}
	if err := c.validateStack(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if c.Paths.StateDir == "" {
		return errors.New("paths.state_dir must be set")
	}
	if c.Paths.DesktopDir != "" && isWithin(c.Paths.StateDir, c.Paths.DesktopDir) {
		return fmt.Errorf("paths.state_dir %q must not be inside paths.desktop_dir %q", c.Paths.StateDir, c.Paths.DesktopDir)
	}
	return nil
}

func (c *Config) validateFolders() error {
	names := map[string]string{
		"folders.others":   c.Folders.Others,
		"folders.pictures": c.Folders.Pictures,
		"folders.videos":   c.Folders.Videos,
		"folders.music":    c.Folders.Music,
	}
	for key, name := range names {
		if name == "" {
			continue
		}
		if name == "." || name == ".." || strings.ContainsAny(name, "/\x00") {
			return fmt.Errorf("%s: %q is not a valid folder name", key, name)
		}
	}
	return nil
}

func (c *Config) validateClassify() error {
	for ext, mimeType := range c.Classify.Extensions {
		if strings.ContainsAny(ext, `/\`) {
			return fmt.Errorf("classify.extensions: %q is not a file extension", ext)
		}
		if !strings.Contains(mimeType, "/") {
			return fmt.Errorf("classify.extensions[%q]: %q is not a MIME type", ext, mimeType)
		}
	}
	return nil
}

func (c *Config) validateStack() error {
	for _, pattern := range c.Stack.Ignore {
		if _, err := path.Match(pattern, ""); err != nil {
			return fmt.Errorf("stack.ignore: invalid pattern %q: %w", pattern, err)
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
}

func isWithin(child, parent string) bool {
	rel, err := filepath.Rel(parent, child)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
