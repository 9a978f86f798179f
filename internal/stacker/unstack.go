package stacker

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"stacks/internal/logging"
)

// Unstack moves every entry of each eligible category folder back into the
// root and removes the folders it emptied. Folders that vanished are
// reported as missing; folders that could not be emptied are reported as
// not empty. Move failures are recorded and joined into the returned error.
func (s *Stacker) Unstack(ctx context.Context) (*Report, error) {
	report := &Report{Root: s.root}

	logger := s.phase(ctx, "enumerating")
	eligible := s.folders.ToUnstack()
	logger.Debug("folders to unstack", logging.Any("folders", eligible))

	var failures []error
	for _, folder := range eligible {
		if err := ctx.Err(); err != nil {
			failures = append(failures, err)
			break
		}

		logger = s.phase(ctx, "entering").With(logging.String("folder", folder))
		dir := s.folders.Path(folder)
		dirents, err := os.ReadDir(dir)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				report.add(Event{Type: EventFolderMissing, Name: folder, Folder: folder, Err: fmt.Errorf("%w: %s", ErrFolderMissing, folder)})
				continue
			}
			logging.WarnWithContext(logger, "folder unreadable", "folder_unreadable", "check folder permissions", logging.Error(err))
			report.add(Event{Type: EventFolderNotEmpty, Name: folder, Folder: folder, Err: err})
			continue
		}

		logger = s.phase(ctx, "moving").With(logging.String("folder", folder))
		interrupted := false
		for _, d := range dirents {
			if err := ctx.Err(); err != nil {
				failures = append(failures, err)
				interrupted = true
				break
			}
			if err := s.move(logger, report, d.Name(), dir, s.root, folder); err != nil {
				failures = append(failures, err)
			}
		}

		s.phase(ctx, "removing").Debug("removing folder", logging.String("folder", folder))
		s.removeIfEmpty(report, folder, true)
		if interrupted {
			break
		}
	}
	return report, errors.Join(failures...)
}
