package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/samzong/gitwrap/internal/config"
	"github.com/samzong/gitwrap/internal/git"
	"github.com/samzong/gitwrap/internal/gitutil"
	"github.com/samzong/gitwrap/internal/logging"
	"github.com/samzong/gitwrap/internal/workflow"
)

var (
	cfgFile     string
	repoPath    string
	verbose     bool
	quiet       bool
	interactive string
	outputFmt   string

	appConfig *config.Config
	logger    = zerolog.Nop()
	logCloser io.Closer

	// isStdinTerminal is a function to check if stdin is a terminal.
	// It can be overridden in tests.
	isStdinTerminal = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd = &cobra.Command{
		Use:   "gitwrap",
		Short: "gitwrap - a scriptable Git front end",
		Long: `gitwrap is a Git front end that behaves the same in a terminal and in scripts. ` +
			`Interactive sessions get prompts for missing input; scripted runs never block ` +
			`and fail with a clear error instead.`,
		Version:            fmt.Sprintf("%s (built at %s)", Version, BuildTime),
		PersistentPreRunE:  setup,
		PersistentPostRunE: teardown,
		SilenceErrors:      true,
		SilenceUsage:       true,
	}
)

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// SetContext sets the context used by command execution.
func SetContext(ctx context.Context) {
	rootCmd.SetContext(ctx)
}

// RootCmd returns the root command, used by the man page generator.
func RootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "",
		"Configuration file path (default is $XDG_CONFIG_HOME/gitwrap/config.yaml)")
	flags.StringVarP(&repoPath, "repo", "C", "", "Run as if started in this directory")
	flags.BoolVarP(&verbose, "verbose", "V", false, "Show debug logs")
	flags.BoolVarP(&quiet, "quiet", "q", false, "Only log errors")
	flags.StringVar(&interactive, "interactive", "",
		"Prompt for missing input: auto, always or never (default from config)")
	flags.StringVarP(&outputFmt, "output", "o", "", "Output format: table or yaml (default from config)")
}

func setup(cmd *cobra.Command, _ []string) error {
	if err := config.InitConfig(cfgFile); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	if cmd.Flags().Changed("interactive") {
		cfg.Interactive = interactive
	}
	if cmd.Flags().Changed("output") {
		cfg.Output = outputFmt
	}
	// config subcommands stay usable so a bad setting can be repaired.
	invalid := cfg.Validate()
	if invalid != nil && !isConfigCommand(cmd) {
		return handleErrors(invalid)
	}
	appConfig = cfg

	l, closer, err := logging.New(logging.Options{
		Verbose: verbose,
		Quiet:   quiet,
		Console: errWriter(),
		File:    cfg.LogFile,
	})
	logger = l
	logCloser = closer
	if err != nil {
		logger.Warn().Err(err).Msg("file logging disabled")
	}
	if invalid != nil {
		logger.Warn().Err(invalid).Msg("configuration is invalid")
		appConfig = cfg.Repaired()
	}
	logger.Debug().
		Str("command", cmd.CommandPath()).
		Str("interactive", cfg.Interactive).
		Str("output", cfg.Output).
		Msg("starting")
	return nil
}

func isConfigCommand(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c == configCmd {
			return true
		}
	}
	return false
}

func teardown(_ *cobra.Command, _ []string) error {
	if logCloser == nil {
		return nil
	}
	err := logCloser.Close()
	logCloser = nil
	return err
}

func currentConfig() *config.Config {
	if appConfig == nil {
		return config.MustGetConfig()
	}
	return appConfig
}

// isInteractive resolves the interactive mode against the terminal state.
func isInteractive() bool {
	switch currentConfig().Interactive {
	case config.InteractiveAlways:
		return true
	case config.InteractiveNever:
		return false
	default:
		return isStdinTerminal()
	}
}

// newPrompter picks the prompter for this run. useEditor only affects the
// line prompter; forms have their own multi-line editor.
func newPrompter(cmd *cobra.Command, useEditor bool) workflow.Prompter {
	if !isInteractive() {
		return workflow.NonInteractivePrompter{}
	}
	if currentConfig().PromptStyle == config.PromptStyleForm && !useEditor {
		return &workflow.FormPrompter{Accessible: os.Getenv("ACCESSIBLE") != ""}
	}
	return &workflow.InteractivePrompter{
		ErrWriter: errWriter(),
		Stdin:     cmd.InOrStdin(),
		UseEditor: useEditor,
	}
}

func clientOptions() git.Options {
	cfg := currentConfig()
	return git.Options{
		Logger: logger,
		Identity: git.Identity{
			Name:  cfg.AuthorName,
			Email: cfg.AuthorEmail,
		},
		DefaultBranch: cfg.DefaultBranch,
	}
}

func openRepo() (*git.Client, error) {
	return git.Open(repoPath, clientOptions())
}

// repoPaths makes command-line paths absolute against the directory the
// command runs in, so they resolve the same from any subdirectory.
func repoPaths(args []string) ([]string, error) {
	if len(args) == 0 {
		return nil, nil
	}
	base := repoPath
	if base == "" {
		base = "."
	}
	base, err := filepath.Abs(base)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve working directory: %w", err)
	}

	paths := make([]string, len(args))
	for i, arg := range args {
		if filepath.IsAbs(arg) {
			paths[i] = arg
			continue
		}
		paths[i] = filepath.Join(base, arg)
	}
	return paths, nil
}

var errorHints = []struct {
	err  error
	hint string
}{
	{git.ErrNotRepository, "run 'gitwrap init' to create a repository here"},
	{git.ErrMissingIdentity, "run 'gitwrap config set author_name <name>' and 'gitwrap config set author_email <email>'"},
	{git.ErrPathIgnored, "use --force to stage ignored paths"},
	{git.ErrDirtyWorktree, "use --force to discard local changes"},
	{git.ErrUntrackedOverwrite, "move or remove those files, or use --force to overwrite them"},
	{git.ErrNoCommits, "create a first commit with 'gitwrap commit'"},
	{workflow.ErrMissingMessage, "pass -m <message>, or run in a terminal to be prompted"},
	{gitutil.ErrInvalidBranchName, "branch names follow git check-ref-format rules"},
	{config.ErrInvalidInteractive, "use --interactive auto, always or never"},
	{config.ErrInvalidOutput, "use --output table or yaml"},
}

func handleErrors(err error) error {
	if err == nil {
		return nil
	}
	for _, h := range errorHints {
		if errors.Is(err, h.err) {
			return fmt.Errorf("%w\nHint: %s", err, h.hint)
		}
	}
	return err
}
