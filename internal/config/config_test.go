package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"stacks/internal/config"
)

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("XDG_STATE_HOME", "")
	t.Setenv("STACKS_DESKTOP_DIR", "")
	t.Setenv("STACKS_LOG_LEVEL", "")
	t.Chdir(t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved != filepath.Join(tempHome, ".config", "stacks", "config.toml") {
		t.Fatalf("unexpected resolved path: %q", resolved)
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantState := filepath.Join(tempHome, ".local", "state", "stacks")
	if cfg.Paths.StateDir != wantState {
		t.Fatalf("unexpected state dir: got %q want %q", cfg.Paths.StateDir, wantState)
	}
	if cfg.Paths.DesktopDir != "" {
		t.Fatalf("expected empty desktop dir override, got %q", cfg.Paths.DesktopDir)
	}
	if cfg.Folders.Others != "Others" {
		t.Fatalf("unexpected others folder: %q", cfg.Folders.Others)
	}
	if !cfg.Classify.ContentSniffing {
		t.Fatal("expected content sniffing enabled by default")
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "warn" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	info, err := os.Stat(cfg.Paths.StateDir)
	if err != nil || !info.IsDir() {
		t.Fatalf("expected state dir to exist: %v", err)
	}
}

func TestLoadCustomPath(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "stacks.toml")
	t.Setenv("STACKS_DESKTOP_DIR", "")
	t.Setenv("STACKS_LOG_LEVEL", "")

	type payload struct {
		Paths struct {
			DesktopDir string `toml:"desktop_dir"`
			StateDir   string `toml:"state_dir"`
		} `toml:"paths"`
		Folders struct {
			Others string `toml:"others"`
			Videos string `toml:"videos"`
		} `toml:"folders"`
		Classify struct {
			ContentSniffing bool              `toml:"content_sniffing"`
			Extensions      map[string]string `toml:"extensions"`
		} `toml:"classify"`
		Stack struct {
			Ignore []string `toml:"ignore"`
		} `toml:"stack"`
	}
	custom := payload{}
	custom.Paths.DesktopDir = filepath.Join(tempDir, "desk")
	custom.Paths.StateDir = filepath.Join(tempDir, "state")
	custom.Folders.Others = "  Misc "
	custom.Folders.Videos = "Filme"
	custom.Classify.Extensions = map[string]string{"HEIC": " Image/HEIC "}
	custom.Stack.Ignore = []string{"*.desktop", " ", "*.desktop"}

	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != configPath {
		t.Fatalf("expected custom config to be used, got %q exists=%v", resolved, exists)
	}
	if cfg.Paths.DesktopDir != custom.Paths.DesktopDir {
		t.Fatalf("unexpected desktop dir: %q", cfg.Paths.DesktopDir)
	}
	if cfg.Folders.Others != "Misc" {
		t.Fatalf("expected trimmed others folder, got %q", cfg.Folders.Others)
	}
	if cfg.Folders.Videos != "Filme" {
		t.Fatalf("unexpected videos folder: %q", cfg.Folders.Videos)
	}
	if cfg.Classify.ContentSniffing {
		t.Fatal("expected content sniffing disabled")
	}
	if got := cfg.Classify.Extensions[".heic"]; got != "image/heic" {
		t.Fatalf("expected normalized extension mapping, got %v", cfg.Classify.Extensions)
	}
	if len(cfg.Stack.Ignore) != 1 || cfg.Stack.Ignore[0] != "*.desktop" {
		t.Fatalf("expected deduplicated ignore list, got %v", cfg.Stack.Ignore)
	}
}

func TestLoadDesktopDirFromEnv(t *testing.T) {
	desk := t.TempDir()
	t.Setenv("STACKS_DESKTOP_DIR", desk)
	t.Setenv("STACKS_LOG_LEVEL", "debug")

	cfg, _, _, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Paths.DesktopDir != desk {
		t.Fatalf("expected desktop dir from env, got %q", cfg.Paths.DesktopDir)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("expected log level from env, got %q", cfg.Logging.Level)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Setenv("STACKS_DESKTOP_DIR", "")
	t.Setenv("STACKS_LOG_LEVEL", "")
	base := t.TempDir()

	cases := []struct {
		name    string
		body    string
		wantErr string
	}{
		{
			name:    "folder with slash",
			body:    "[folders]\nothers = \"a/b\"\n",
			wantErr: "folders.others",
		},
		{
			name:    "bad mime type",
			body:    "[classify.extensions]\n\".foo\" = \"nonsense\"\n",
			wantErr: "classify.extensions",
		},
		{
			name:    "bad glob",
			body:    "[stack]\nignore = [\"[\"]\n",
			wantErr: "stack.ignore",
		},
		{
			name:    "bad level",
			body:    "[logging]\nlevel = \"loud\"\n",
			wantErr: "logging.level",
		},
		{
			name:    "state inside desktop",
			body:    "[paths]\ndesktop_dir = \"" + filepath.ToSlash(base) + "\"\nstate_dir = \"" + filepath.ToSlash(filepath.Join(base, "state")) + "\"\n",
			wantErr: "paths.state_dir",
		},
		{
			name:    "unknown key",
			body:    "[paths]\ndesktop = \"x\"\n",
			wantErr: "parse config",
		},
	}

	for i, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(base, "case"+string(rune('a'+i))+".toml")
			if err := os.WriteFile(path, []byte(tc.body), 0o644); err != nil {
				t.Fatalf("write config: %v", err)
			}
			_, _, _, err := config.Load(path)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("expected error mentioning %q, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestCreateSampleIsLoadable(t *testing.T) {
	t.Setenv("STACKS_DESKTOP_DIR", "")
	t.Setenv("STACKS_LOG_LEVEL", "")
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_STATE_HOME", "")
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample returned error: %v", err)
	}
	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("sample config should load: %v", err)
	}
	if !exists {
		t.Fatal("expected sample config to exist")
	}
	if cfg.Folders.Others != "Others" {
		t.Fatalf("unexpected others folder from sample: %q", cfg.Folders.Others)
	}
}

func TestExpandPathTilde(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	got, err := config.ExpandPath("~/Desktop")
	if err != nil {
		t.Fatalf("ExpandPath returned error: %v", err)
	}
	if got != filepath.Join(home, "Desktop") {
		t.Fatalf("unexpected expansion: %q", got)
	}
}
