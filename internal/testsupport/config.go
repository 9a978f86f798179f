package testsupport

import (
	"path/filepath"
	"testing"

	"stacks/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// The desktop directory is created; the state directory is left for
// EnsureDirectories or the run lock to create.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.DesktopDir = filepath.Join(base, "Desktop")
	cfgVal.Paths.StateDir = filepath.Join(base, "state")
	cfgVal.Classify.ContentSniffing = false

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	MkdirAll(t, cfgVal.Paths.DesktopDir)
	return builder.cfg
}

// WithIgnore sets stack.ignore patterns.
func WithIgnore(patterns ...string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Stack.Ignore = patterns
	}
}

// WithOthers overrides the fallback folder name.
func WithOthers(name string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Folders.Others = name
	}
}
