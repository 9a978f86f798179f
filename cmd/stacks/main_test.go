package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"stacks/internal/runlock"
	"stacks/internal/testsupport"
)

type cliTestEnv struct {
	testsupport.XDGEnv
	stateDir   string
	configPath string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	xdg := testsupport.IsolateXDG(t)
	xdg.InstallApp(t, "evince", "Document Viewer", "application/pdf")
	return &cliTestEnv{
		XDGEnv:     xdg,
		stateDir:   filepath.Join(xdg.StateHome, "stacks"),
		configPath: filepath.Join(xdg.Base, "config.toml"),
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd, closeLogs := newRootCommand()
	defer func() {
		if err := closeLogs(); err != nil {
			t.Errorf("close logs: %v", err)
		}
	}()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected output to contain %q, got:\n%s", needle, haystack)
	}
}

func requireExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected %s to exist: %v", path, err)
	}
}

func TestRootWithoutActionReportsArgumentMissing(t *testing.T) {
	env := setupCLITestEnv(t)

	for _, args := range [][]string{nil, {"--bogus"}, {"somewhere"}} {
		out, _, err := runCLI(t, args, env.configPath)
		if !errors.Is(err, errArgumentMissing) {
			t.Fatalf("args %v: expected errArgumentMissing, got %v", args, err)
		}
		if out != "Error: Argument missing.\n" {
			t.Fatalf("args %v: unexpected output %q", args, out)
		}
	}
}

func TestRootRejectsStackAndUnstackTogether(t *testing.T) {
	env := setupCLITestEnv(t)
	_, _, err := runCLI(t, []string{"--stack", "--unstack"}, env.configPath)
	if err == nil || errors.Is(err, errArgumentMissing) {
		t.Fatalf("expected mutually exclusive flag error, got %v", err)
	}
}

func TestStackAndUnstackFlagsRoundTrip(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.WriteFile(t, filepath.Join(env.Desktop, "paper.pdf"), "pdf")
	testsupport.WriteFile(t, filepath.Join(env.Desktop, "cat.png"), "png")
	testsupport.WriteFile(t, filepath.Join(env.Desktop, "MyStuff", "diary.txt"), "secret")

	out, _, err := runCLI(t, []string{"--stack"}, env.configPath)
	if err != nil {
		t.Fatalf("--stack: %v", err)
	}
	if out != "" {
		t.Fatalf("successful stack should be quiet, got %q", out)
	}
	requireExists(t, filepath.Join(env.Desktop, "Document Viewer", "paper.pdf"))
	requireExists(t, filepath.Join(env.Desktop, "Pictures", "cat.png"))
	requireExists(t, filepath.Join(env.Desktop, "MyStuff", "diary.txt"))

	if _, _, err := runCLI(t, []string{"--unstack"}, env.configPath); err != nil {
		t.Fatalf("--unstack: %v", err)
	}
	requireExists(t, filepath.Join(env.Desktop, "paper.pdf"))
	requireExists(t, filepath.Join(env.Desktop, "cat.png"))
	requireExists(t, filepath.Join(env.Desktop, "MyStuff", "diary.txt"))
	for _, folder := range []string{"Document Viewer", "Pictures"} {
		if _, err := os.Stat(filepath.Join(env.Desktop, folder)); !os.IsNotExist(err) {
			t.Fatalf("expected %s removed after unstack, stat err = %v", folder, err)
		}
	}
}

func TestStackSubcommandVerboseWithDirFlag(t *testing.T) {
	env := setupCLITestEnv(t)
	target := filepath.Join(env.Base, "downloads")
	testsupport.WriteFile(t, filepath.Join(target, "paper.pdf"), "pdf")
	testsupport.WriteFile(t, filepath.Join(target, "Document Viewer", "paper.pdf"), "older")

	out, _, err := runCLI(t, []string{"stack", "--dir", target, "-v"}, env.configPath)
	if err != nil {
		t.Fatalf("stack: %v", err)
	}
	requireContains(t, out, "paper.pdf -> "+filepath.Join("Document Viewer", "paper(1).pdf")+" (renamed)")
	requireContains(t, out, "1 moved (1 renamed), 0 skipped, 0 failed")
	requireExists(t, filepath.Join(target, "Document Viewer", "paper(1).pdf"))
}

func TestStackFailsWhenLockHeld(t *testing.T) {
	env := setupCLITestEnv(t)
	lock, err := runlock.Acquire(env.stateDir, env.Desktop)
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	defer lock.Release()

	_, _, err = runCLI(t, []string{"--stack"}, env.configPath)
	if !errors.Is(err, runlock.ErrLocked) {
		t.Fatalf("expected ErrLocked, got %v", err)
	}
}

func TestStackFailsPreflightForMissingDirectory(t *testing.T) {
	env := setupCLITestEnv(t)
	_, _, err := runCLI(t, []string{"stack", "--dir", filepath.Join(env.Base, "nope")}, env.configPath)
	if err == nil || !strings.Contains(err.Error(), "does not exist") {
		t.Fatalf("expected preflight failure, got %v", err)
	}
}

func TestPlanClassifyFoldersAndApps(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.WriteFile(t, filepath.Join(env.Desktop, "paper.pdf"), "pdf")
	testsupport.WriteFile(t, filepath.Join(env.Desktop, "Pictures", "old.png"), "png")

	out, _, err := runCLI(t, []string{"plan"}, env.configPath)
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	requireContains(t, out, filepath.Join("Document Viewer", "paper.pdf"))
	requireContains(t, out, "New folders: Document Viewer")
	requireExists(t, filepath.Join(env.Desktop, "paper.pdf"))

	out, _, err = runCLI(t, []string{"classify", "song.mp3", "paper.pdf"}, env.configPath)
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	requireContains(t, out, "Music")
	requireContains(t, out, "Document Viewer")

	out, _, err = runCLI(t, []string{"folders"}, env.configPath)
	if err != nil {
		t.Fatalf("folders: %v", err)
	}
	requireContains(t, out, "Pictures")
	requireContains(t, out, "builtin")

	out, _, err = runCLI(t, []string{"apps"}, env.configPath)
	if err != nil {
		t.Fatalf("apps: %v", err)
	}
	requireContains(t, out, "Document Viewer")
}

func TestCheckCommand(t *testing.T) {
	env := setupCLITestEnv(t)
	out, _, err := runCLI(t, []string{"check"}, env.configPath)
	if err != nil {
		t.Fatalf("check: %v\n%s", err, out)
	}
	requireContains(t, out, "Target directory:")
	requireContains(t, out, "[OK]")
	requireContains(t, out, "1 installed")
}

func TestConfigInitAndValidate(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"config", "validate"}, env.configPath)
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "Config file did not exist; defaults were used")
	requireContains(t, out, "Configuration valid")

	out, _, err = runCLI(t, []string{"config", "init", "--path", env.configPath}, "")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	requireExists(t, env.configPath)

	if _, _, err := runCLI(t, []string{"config", "init", "--path", env.configPath}, ""); err == nil {
		t.Fatal("expected refusal to overwrite existing config")
	}

	out, _, err = runCLI(t, []string{"config", "validate"}, env.configPath)
	if err != nil {
		t.Fatalf("config validate sample: %v", err)
	}
	requireContains(t, out, "Config path: "+env.configPath)
}

func TestConfigValidateRejectsUnknownKeys(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.WriteFile(t, env.configPath, "[paths]\nnot_a_key = 1\n")
	if _, _, err := runCLI(t, []string{"config", "validate"}, env.configPath); err == nil {
		t.Fatal("expected unknown key to fail validation")
	}
}

func TestLoggerBuiltOncePerCommand(t *testing.T) {
	env := setupCLITestEnv(t)
	logPath := filepath.Join(env.Base, "logs", "stacks.log")
	testsupport.WriteFile(t, env.configPath, fmt.Sprintf("[logging]\nlevel = \"info\"\nfile = %q\n", logPath))

	configFlag, dirFlag, levelFlag := env.configPath, "", ""
	ctx := newCommandContext(&configFlag, &dirFlag, &levelFlag)
	cmd := &cobra.Command{}
	cmd.SetErr(io.Discard)

	first, err := ctx.logger(cmd)
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	if _, err := ctx.newStacker(cmd); err != nil {
		t.Fatalf("newStacker: %v", err)
	}
	second, err := ctx.logger(cmd)
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	if first != second {
		t.Fatal("expected the cached logger to be reused")
	}

	first.Info("cached logger")
	if err := ctx.closeLogger(); err != nil {
		t.Fatalf("closeLogger: %v", err)
	}
	if err := ctx.closeLogger(); err != nil {
		t.Fatalf("second closeLogger should be a no-op: %v", err)
	}
	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	requireContains(t, string(data), "cached logger")
}

func TestStackWritesRunToLogFile(t *testing.T) {
	env := setupCLITestEnv(t)
	logPath := filepath.Join(env.Base, "stacks.log")
	testsupport.WriteFile(t, env.configPath, fmt.Sprintf("[logging]\nlevel = \"info\"\nfile = %q\n", logPath))
	testsupport.WriteFile(t, filepath.Join(env.Desktop, "cat.png"), "png")

	if _, _, err := runCLI(t, []string{"--stack"}, env.configPath); err != nil {
		t.Fatalf("--stack: %v", err)
	}
	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if got := strings.Count(string(data), "run started"); got != 1 {
		t.Fatalf("expected one run started line, got %d in:\n%s", got, data)
	}
	requireContains(t, string(data), "run finished")
}

func TestUnstackPrintsNotFoundForVanishedFolder(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.WriteFile(t, filepath.Join(env.Desktop, "Others", "sub", "a.txt"), "a")
	testsupport.WriteFile(t, filepath.Join(env.Desktop, "Videos", "clip.mp4"), "mp4")
	if err := os.Symlink(filepath.Join(env.Desktop, "Others", "sub"), filepath.Join(env.Desktop, "Pictures")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	out, _, err := runCLI(t, []string{"--unstack"}, env.configPath)
	if err != nil {
		t.Fatalf("--unstack: %v", err)
	}
	requireContains(t, out, "Pictures not found.")
	requireExists(t, filepath.Join(env.Desktop, "clip.mp4"))
	requireExists(t, filepath.Join(env.Desktop, "sub", "a.txt"))
}
