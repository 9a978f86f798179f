package stacker

import (
	"context"
	"path/filepath"

	"stacks/internal/classify"
	"stacks/internal/logging"
	"stacks/internal/mover"
)

// PlannedMove is one move Stack would perform.
type PlannedMove struct {
	Name           string
	Classification classify.Classification
	// Target is the destination relative to the root, after collision
	// renaming against existing entries and earlier planned moves.
	Target  string
	Renamed bool
}

// Plan is the predicted outcome of Stack.
type Plan struct {
	Moves []PlannedMove
	// NewFolders are category folders Stack would create.
	NewFolders []string
	// Blocked are categories whose name is taken by a non-directory.
	Blocked []string
	Skipped []string
}

// Plan predicts Stack without touching the filesystem.
func (s *Stacker) Plan(ctx context.Context) (*Plan, error) {
	logger := s.phase(ctx, "planning")
	entries, ignored, err := s.listRoot(s.root)
	if err != nil {
		return nil, err
	}

	plan := &Plan{Skipped: ignored}
	namer := mover.NewNamer()
	seen := map[string]struct{}{}
	blocked := map[string]struct{}{}
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return plan, err
		}
		if e.isDir {
			continue
		}
		if !e.regular {
			plan.Skipped = append(plan.Skipped, e.name)
			continue
		}
		c := s.classifier.Describe(filepath.Join(s.root, e.name))
		if _, ok := seen[c.Category]; !ok {
			seen[c.Category] = struct{}{}
			switch {
			case s.folders.Exists(c.Category):
			case exists(s.folders.Path(c.Category)):
				blocked[c.Category] = struct{}{}
				plan.Blocked = append(plan.Blocked, c.Category)
			default:
				plan.NewFolders = append(plan.NewFolders, c.Category)
			}
		}
		if _, ok := blocked[c.Category]; ok {
			plan.Skipped = append(plan.Skipped, e.name)
			continue
		}
		dst := filepath.Join(s.folders.Path(c.Category), e.name)
		final := namer.Target(dst)
		rel, err := filepath.Rel(s.root, final)
		if err != nil {
			rel = final
		}
		plan.Moves = append(plan.Moves, PlannedMove{
			Name:           e.name,
			Classification: c,
			Target:         rel,
			Renamed:        final != dst,
		})
	}
	logger.Debug("plan ready", logging.Int("moves", len(plan.Moves)), logging.Int("new_folders", len(plan.NewFolders)))
	return plan, nil
}
