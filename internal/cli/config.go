package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quibraries/quibraries/internal/config"
)

// configCommand creates the configuration management command.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
		Long: `Manage the configuration file.

Settings are read from built-in defaults, then the config file, then the
environment (LIBRARIES_API_KEY, QUIBRARIES_BASE_URL, QUIBRARIES_TIMEOUT,
QUIBRARIES_PER_PAGE, QUIBRARIES_OUTPUT), then command-line flags. Later
sources win.`,
		// Config commands must work even when the current file is invalid.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	cmd.AddCommand(c.configPathCommand())
	cmd.AddCommand(c.configInitCommand())
	cmd.AddCommand(c.configShowCommand())

	return cmd
}

// configPathCommand creates the "config path" subcommand.
func (c *CLI) configPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := c.configPath()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}

// configInitCommand creates the "config init" subcommand.
func (c *CLI) configInitCommand() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the default settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := c.configPath()
			if err != nil {
				return err
			}
			if err := config.WriteSample(path, force); err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			printSuccess(w, "Wrote %s", path)
			printDetail(w, "Add your API key from %s", apiKeyURL)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}

// configShowCommand creates the "config show" subcommand.
func (c *CLI) configShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective settings (API key masked)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.setup(cmd, args); err != nil {
				return err
			}
			path, err := c.configPath()
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			printKeyValue(w, "file", path)
			printKeyValue(w, "api_key", maskKey(c.cfg.APIKey))
			printKeyValue(w, "base_url", c.cfg.BaseURL)
			printKeyValue(w, "timeout", c.cfg.Timeout.String())
			printKeyValue(w, "per_page", perPageText(c.cfg.PerPage))
			printKeyValue(w, "output", c.cfg.Output)
			return nil
		},
	}
}

// configPath returns --config when set, else the default location.
func (c *CLI) configPath() (string, error) {
	if c.flags.configPath != "" {
		return c.flags.configPath, nil
	}
	return config.DefaultPath()
}

// maskKey hides all but the last four characters of an API key.
func maskKey(key string) string {
	switch {
	case key == "":
		return "(not set)"
	case len(key) <= 4:
		return strings.Repeat("*", len(key))
	}
	return strings.Repeat("*", len(key)-4) + key[len(key)-4:]
}

func perPageText(n int) string {
	if n == 0 {
		return "API default"
	}
	return fmt.Sprint(n)
}
