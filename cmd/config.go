package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/samzong/gitwrap/internal/config"
	"github.com/samzong/gitwrap/internal/formatter"
	"github.com/samzong/gitwrap/internal/git"
)

var (
	configGlobal bool
	configGit    bool

	configCmd = &cobra.Command{
		Use:   "config",
		Short: "Read and write gitwrap settings and git config",
		Long: `Manage gitwrap settings and repository git config.

Keys without a dot are gitwrap settings stored in the gitwrap config file:
  ` + fmt.Sprint(config.Keys()) + `

Dotted keys such as user.name or branch.main.remote are git config.

Examples:
  gitwrap config set interactive never
  gitwrap config set user.email jimmy@example.com
  gitwrap config get user.name --global
  gitwrap config list --git`,
	}

	configGetCmd = &cobra.Command{
		Use:   "get <key>",
		Short: "Print a value",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return handleErrors(runConfigGet(args[0]))
		},
	}

	configSetCmd = &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a value",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			return handleErrors(runConfigSet(args[0], args[1]))
		},
	}

	configUnsetCmd = &cobra.Command{
		Use:   "unset <key>",
		Short: "Remove a value, or reset a gitwrap setting to its default",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return handleErrors(runConfigUnset(args[0]))
		},
	}

	configListCmd = &cobra.Command{
		Use:   "list",
		Short: "List gitwrap settings, or git config with --git",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return handleErrors(runConfigList())
		},
	}
)

func init() {
	configGetCmd.Flags().BoolVar(&configGlobal, "global", false, "Also consult the global git config")
	configListCmd.Flags().BoolVar(&configGlobal, "global", false, "Also include the global git config")
	configListCmd.Flags().BoolVar(&configGit, "git", false, "List git config instead of gitwrap settings")

	configCmd.AddCommand(configGetCmd, configSetCmd, configUnsetCmd, configListCmd)
	rootCmd.AddCommand(configCmd)
}

func gitScope() git.ConfigScope {
	if configGlobal {
		return git.ScopeGlobal
	}
	return git.ScopeLocal
}

func runConfigGet(key string) error {
	if config.IsValidKey(key) {
		fmt.Fprintln(outWriter(), config.Value(key))
		return nil
	}

	client, err := openRepo()
	if err != nil {
		return err
	}
	value, err := client.ConfigGet(key, gitScope())
	if err != nil {
		return err
	}
	fmt.Fprintln(outWriter(), value)
	return nil
}

func runConfigSet(key, value string) error {
	if config.IsValidKey(key) {
		if err := config.ValidateValue(key, value); err != nil {
			return err
		}
		config.SetConfigValue(key, value)
		if err := config.SaveConfig(); err != nil {
			return err
		}
		logger.Debug().Str("key", key).Msg("saved setting")
		return nil
	}

	client, err := openRepo()
	if err != nil {
		return err
	}
	return client.ConfigSet(key, value)
}

func runConfigUnset(key string) error {
	if config.IsValidKey(key) {
		config.ResetConfigValue(key)
		return config.SaveConfig()
	}

	client, err := openRepo()
	if err != nil {
		return err
	}
	return client.ConfigUnset(key)
}

func runConfigList() error {
	var entries []git.ConfigEntry
	if configGit {
		client, err := openRepo()
		if err != nil {
			return err
		}
		if entries, err = client.ConfigList(gitScope()); err != nil {
			return err
		}
	} else {
		for _, key := range config.Keys() {
			entries = append(entries, git.ConfigEntry{Key: key, Value: config.Value(key)})
		}
	}
	if entries == nil {
		entries = []git.ConfigEntry{}
	}

	return render(entries, func(w io.Writer) error {
		return formatter.WriteConfigTable(w, entries)
	})
}
