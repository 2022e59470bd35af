package workflow

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/samzong/gitwrap/internal/formatter"
	"github.com/samzong/gitwrap/internal/git"
)

var ErrMissingMessage = errors.New("commit message is required")

// Outcome is how a commit run ended when it did not fail.
type Outcome string

const (
	OutcomeCommitted     Outcome = "committed"
	OutcomeNothingStaged Outcome = "nothing-staged"
	OutcomeAborted       Outcome = "aborted"
)

// CommitResult describes a finished commit run. Hash is empty unless Outcome
// is OutcomeCommitted.
type CommitResult struct {
	Outcome   Outcome   `yaml:"outcome"`
	Hash      string    `yaml:"hash,omitempty"`
	ShortHash string    `yaml:"short,omitempty"`
	When      time.Time `yaml:"date,omitempty"`
	Message   string    `yaml:"message,omitempty"`
	Staged    []string  `yaml:"staged,omitempty"`
}

// Hint renders "[<short-sha>] <date>: <message>".
func (r *CommitResult) Hint() string {
	if r.Outcome != OutcomeCommitted {
		return ""
	}
	return formatter.CommitHint(r.ShortHash, r.When, r.Message)
}

type CommitOptions struct {
	Logger    zerolog.Logger
	ErrWriter io.Writer
	Prompter  Prompter
}

type CommitFlow struct {
	repo     Repository
	prompter Prompter
	stager   *StageFlow
	logger   zerolog.Logger
	errOut   io.Writer
}

func NewCommitFlow(repo Repository, opts CommitOptions) *CommitFlow {
	if opts.ErrWriter == nil {
		opts.ErrWriter = os.Stderr
	}
	if opts.Prompter == nil {
		opts.Prompter = NonInteractivePrompter{}
	}
	f := &CommitFlow{
		repo:   repo,
		logger: opts.Logger,
		errOut: opts.ErrWriter,
	}
	f.SetPrompter(opts.Prompter)
	return f
}

func (f *CommitFlow) SetPrompter(p Prompter) {
	f.prompter = p
	f.stager = NewStageFlow(f.repo, p, f.logger, f.errOut)
}

// Run stages as needed and commits everything staged. Nothing staged and a
// cancelled message prompt are reported through the result's Outcome, not as
// errors. Staging done before a failure or cancel is kept.
func (f *CommitFlow) Run(paths []string, all Tristate, force bool, message string) (*CommitResult, error) {
	message = strings.TrimSpace(message)
	interactive := f.prompter.Interactive()
	if message == "" && !interactive {
		return nil, ErrMissingMessage
	}

	nStaged, err := f.countStaged()
	if err != nil {
		return nil, err
	}

	result := &CommitResult{}
	if len(paths) > 0 || nStaged == 0 {
		f.logger.Debug().
			Strs("paths", paths).
			Str("all", all.String()).
			Bool("force", force).
			Int("already_staged", nStaged).
			Msg("staging before commit")

		staged, err := f.stager.Stage(paths, all, force)
		result.Staged = staged
		if len(staged) > 0 {
			f.printStaged(staged)
		}
		if err != nil {
			return nil, err
		}

		if nStaged, err = f.countStaged(); err != nil {
			return nil, err
		}
	}

	if nStaged == 0 {
		fmt.Fprintln(f.errOut, "Warning: nothing staged for commit")
		f.logger.Info().Msg("nothing staged for commit")
		result.Outcome = OutcomeNothingStaged
		return result, nil
	}

	if message == "" && interactive {
		text, ok, err := f.prompter.RequestText("Commit message")
		if err != nil {
			return nil, fmt.Errorf("failed to read commit message: %w", err)
		}
		if !ok {
			f.logger.Info().Int("staged", nStaged).Msg("commit aborted by user")
			result.Outcome = OutcomeAborted
			return result, nil
		}
		message = strings.TrimSpace(text)
	}
	if message == "" {
		return nil, ErrMissingMessage
	}

	info, err := f.repo.Commit(formatter.FormatCommitMessage(message))
	if err != nil {
		return nil, err
	}

	result.Outcome = OutcomeCommitted
	result.Hash = info.Hash
	result.ShortHash = info.ShortHash
	result.When = info.When
	result.Message = info.Message

	fmt.Fprintln(f.errOut, "Commit:")
	fmt.Fprintln(f.errOut, formatter.Bullet(result.Hint()))
	f.logger.Info().Str("hash", info.Hash).Int("paths", nStaged).Msg("committed")
	return result, nil
}

func (f *CommitFlow) countStaged() (int, error) {
	entries, err := f.repo.Status()
	if err != nil {
		return 0, err
	}
	return git.CountStatus(entries, git.StatusStaged), nil
}

func (f *CommitFlow) printStaged(paths []string) {
	fmt.Fprintln(f.errOut, "Staged these paths:")
	for _, p := range paths {
		fmt.Fprintln(f.errOut, formatter.Bullet(p))
	}
}
