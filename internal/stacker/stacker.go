package stacker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"stacks/internal/classify"
	"stacks/internal/desktop"
	"stacks/internal/folders"
	"stacks/internal/logging"
	"stacks/internal/mover"
)

// Options configures a Stacker.
type Options struct {
	// Ignore lists path.Match patterns of root entry names that are never
	// moved by Stack.
	Ignore []string
	Logger *slog.Logger
}

// Stacker organizes the directory at Root.
type Stacker struct {
	root       string
	classifier *classify.Classifier
	folders    *folders.Manager
	ignore     []string
	logger     *slog.Logger
}

// New returns a Stacker for root.
func New(root string, classifier *classify.Classifier, provider desktop.Provider, opts Options) *Stacker {
	return &Stacker{
		root:       root,
		classifier: classifier,
		folders:    folders.New(root, classifier, provider),
		ignore:     opts.Ignore,
		logger:     logging.NewComponentLogger(opts.Logger, "stacker"),
	}
}

// Root returns the directory being organized.
func (s *Stacker) Root() string { return s.root }

// Folders returns the folder manager bound to the root.
func (s *Stacker) Folders() *folders.Manager { return s.folders }

func (s *Stacker) phase(ctx context.Context, name string) *slog.Logger {
	logger := logging.WithContext(ctx, s.logger).With(logging.String(logging.FieldPhase, name))
	logger.Debug("entering phase")
	return logger
}

// Stack moves every regular file in the root into its category folder and
// removes category folders that are left empty. Per-file failures are
// recorded in the report; the returned error joins them.
func (s *Stacker) Stack(ctx context.Context) (*Report, error) {
	report := &Report{Root: s.root}

	logger := s.phase(ctx, "listing")
	entries, ignored, err := s.listRoot(s.root)
	if err != nil {
		return report, err
	}
	for _, name := range ignored {
		report.add(Event{Type: EventSkipped, Name: name, Reason: "ignored"})
	}

	logger = s.phase(ctx, "classifying")
	categories := map[string]string{}
	var needed []string
	seen := map[string]struct{}{}
	for _, e := range entries {
		if e.isDir {
			continue
		}
		category := s.classifier.Classify(filepath.Join(s.root, e.name))
		categories[e.name] = category
		if _, ok := seen[category]; !ok {
			seen[category] = struct{}{}
			needed = append(needed, category)
		}
		logger.Debug("classified", logging.String("file", e.name), logging.String("category", category))
	}

	logger = s.phase(ctx, "folder_creation")
	ready, created, createErr := s.folders.Create(needed)
	for _, name := range created {
		report.add(Event{Type: EventFolderCreated, Name: name, Folder: name})
	}
	readySet := make(map[string]struct{}, len(ready))
	for _, name := range ready {
		readySet[name] = struct{}{}
	}
	var failures []error
	if createErr != nil {
		logging.WarnWithContext(logger, "category folder unavailable", "folder_create_failed",
			"remove or rename the file blocking the folder name", logging.Error(createErr))
		failures = append(failures, createErr)
	}

	logger = s.phase(ctx, "moving")
	entries, _, err = s.listRoot(s.root)
	if err != nil {
		failures = append(failures, err)
		entries = nil
	}
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			failures = append(failures, err)
			break
		}
		if !e.regular {
			if !e.isDir {
				report.add(Event{Type: EventSkipped, Name: e.name, Reason: "not a regular file"})
			}
			continue
		}
		category, ok := categories[e.name]
		if !ok {
			report.add(Event{Type: EventSkipped, Name: e.name, Reason: "appeared during run"})
			continue
		}
		if _, ok := readySet[category]; !ok {
			report.add(Event{Type: EventSkipped, Name: e.name, Folder: category, Reason: "folder unavailable"})
			continue
		}
		if err := s.move(logger, report, e.name, s.root, s.folders.Path(category), category); err != nil {
			failures = append(failures, err)
		}
	}

	s.phase(ctx, "cleanup")
	for _, name := range ready {
		s.removeIfEmpty(report, name, false)
	}

	return report, errors.Join(failures...)
}

// move relocates fromDir/name into toDir and records the outcome.
func (s *Stacker) move(logger *slog.Logger, report *Report, name, fromDir, toDir, folder string) error {
	src := filepath.Join(fromDir, name)
	dst := filepath.Join(toDir, name)
	final, err := mover.Move(src, dst)
	if err != nil {
		logging.WarnWithContext(logger, "move failed", "move_failed",
			"check permissions on the file and its destination",
			logging.String("source", src), logging.String("destination", dst), logging.Error(err))
		report.add(Event{Type: EventMoveFailed, Name: report.rel(src), Folder: folder, Err: err})
		return fmt.Errorf("move %s: %w", report.rel(src), err)
	}
	ev := Event{Type: EventMoved, Name: report.rel(src), Folder: folder, Target: report.rel(final)}
	if final != dst {
		ev.Type = EventRenamed
	}
	report.add(ev)
	logger.Debug("moved", logging.String("source", ev.Name), logging.String("target", ev.Target))
	return nil
}

// removeIfEmpty prunes a category folder. When reportNonEmpty is set, a
// folder that still has entries is reported.
func (s *Stacker) removeIfEmpty(report *Report, name string, reportNonEmpty bool) {
	err := s.folders.RemoveIfEmpty(name)
	switch {
	case err == nil:
		report.add(Event{Type: EventFolderRemoved, Name: name, Folder: name})
	case errors.Is(err, folders.ErrNotEmpty):
		if reportNonEmpty {
			report.add(Event{Type: EventFolderNotEmpty, Name: name, Folder: name, Err: err})
		}
	default:
		s.logger.Debug("folder not removed", logging.String("folder", name), logging.Error(err))
		if reportNonEmpty {
			report.add(Event{Type: EventFolderNotEmpty, Name: name, Folder: name, Err: err})
		}
	}
}
