package workflow

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/samzong/gitwrap/internal/git"
	"github.com/samzong/gitwrap/internal/stringsutil"
)

// StageFlow applies the staging policy for a path set and a tri-state all.
type StageFlow struct {
	repo     Repository
	prompter Prompter
	logger   zerolog.Logger
	errOut   io.Writer
}

func NewStageFlow(repo Repository, prompter Prompter, logger zerolog.Logger, errWriter io.Writer) *StageFlow {
	if prompter == nil {
		prompter = NonInteractivePrompter{}
	}
	if errWriter == nil {
		errWriter = os.Stderr
	}
	return &StageFlow{
		repo:     repo,
		prompter: prompter,
		logger:   logger,
		errOut:   errWriter,
	}
}

// Stage stages the explicit paths, then everything pending when all is True.
// With no paths and all Unset, an interactive session is asked whether to
// stage everything; a non-interactive one stages nothing.
func (s *StageFlow) Stage(paths []string, all Tristate, force bool) ([]string, error) {
	var staged []string

	if len(paths) > 0 {
		added, err := s.repo.Add(paths, force)
		staged = append(staged, added...)
		if err != nil {
			return staged, err
		}
	}

	stageAll, err := s.resolveAll(paths, all)
	if err != nil {
		return staged, err
	}
	if stageAll {
		added, err := s.stageEverything(force)
		staged = append(staged, added...)
		if err != nil {
			return staged, err
		}
	}

	return stringsutil.UniqueStrings(staged), nil
}

func (s *StageFlow) resolveAll(paths []string, all Tristate) (bool, error) {
	if value, set := all.Bool(); set {
		return value, nil
	}
	if len(paths) > 0 {
		return false, nil
	}

	pending, err := s.pendingPaths()
	if err != nil {
		return false, err
	}
	if len(pending) == 0 {
		return false, nil
	}

	if !s.prompter.Interactive() {
		s.logger.Info().Int("pending", len(pending)).Msg("all not set; staging nothing in a non-interactive session")
		return false, nil
	}

	ok, err := s.prompter.Confirm(fmt.Sprintf("Stage all %d changed path(s)?", len(pending)))
	if err != nil {
		return false, fmt.Errorf("failed to confirm staging: %w", err)
	}
	s.logger.Debug().Bool("confirmed", ok).Msg("asked to stage everything")
	return ok, nil
}

func (s *StageFlow) pendingPaths() ([]string, error) {
	entries, err := s.repo.Status()
	if err != nil {
		return nil, err
	}
	return stringsutil.UniqueStrings(git.PathsWithStatus(entries, git.StatusUnstaged, git.StatusUntracked)), nil
}

func (s *StageFlow) stageEverything(force bool) ([]string, error) {
	pending, err := s.pendingPaths()
	if err != nil {
		return nil, err
	}
	if len(pending) == 0 {
		return nil, nil
	}
	return s.repo.Add(pending, force)
}
