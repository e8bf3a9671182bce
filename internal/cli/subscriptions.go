package cli

import (
	"github.com/spf13/cobra"

	"github.com/quibraries/quibraries/internal/config"
	"github.com/quibraries/quibraries/pkg/integrations/librariesio"
)

// subscriptionsCommand creates the release subscription commands.
func (c *CLI) subscriptionsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "subscriptions",
		Aliases: []string{"subs"},
		Short:   "Manage release notifications for projects",
	}

	list, _ := c.opCommand("list", "List the projects you are subscribed to", librariesio.OpSubscriptions)

	cmd.AddCommand(list)
	cmd.AddCommand(c.subscribeCommand())
	cmd.AddCommand(c.subscriptionCheckCommand())
	cmd.AddCommand(c.subscriptionUpdateCommand())
	cmd.AddCommand(c.unsubscribeCommand())

	return cmd
}

// subscribeCommand creates the "subscriptions add" subcommand.
func (c *CLI) subscribeCommand() *cobra.Command {
	var prerelease bool
	cmd := &cobra.Command{
		Use:   "add <platform> <project>",
		Short: "Subscribe to new releases of a project",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := c.newClient()
			if err != nil {
				return err
			}
			res, err := client.Subscribe(cmd.Context(), args[0], args[1], prerelease)
			if err != nil {
				return err
			}
			return c.confirm(cmd, res, "Subscribed to %s/%s", args[0], args[1])
		},
	}
	cmd.Flags().BoolVar(&prerelease, "prerelease", false, "also notify about prerelease versions")
	return cmd
}

// subscriptionCheckCommand creates the "subscriptions check" subcommand.
func (c *CLI) subscriptionCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check <platform> <project>",
		Short: "Check whether you are subscribed to a project",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := c.newClient()
			if err != nil {
				return err
			}
			ok, err := client.IsSubscribed(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if c.cfg.Output != config.OutputTable {
				return writeJSON(w, map[string]bool{"subscribed": ok})
			}
			if ok {
				printSuccess(w, "Subscribed to %s/%s", args[0], args[1])
			} else {
				printInfo(w, "Not subscribed to %s/%s", args[0], args[1])
			}
			return nil
		},
	}
}

// subscriptionUpdateCommand creates the "subscriptions update" subcommand.
func (c *CLI) subscriptionUpdateCommand() *cobra.Command {
	var prerelease bool
	cmd := &cobra.Command{
		Use:   "update <platform> <project> --prerelease=<bool>",
		Short: "Change whether prereleases trigger notifications",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := c.newClient()
			if err != nil {
				return err
			}
			res, err := client.UpdateSubscription(cmd.Context(), args[0], args[1], prerelease)
			if err != nil {
				return err
			}
			return c.confirm(cmd, res, "Updated subscription to %s/%s (prerelease: %t)", args[0], args[1], prerelease)
		},
	}
	cmd.Flags().BoolVar(&prerelease, "prerelease", false, "notify about prerelease versions")
	cmd.MarkFlagRequired("prerelease")
	return cmd
}

// unsubscribeCommand creates the "subscriptions remove" subcommand.
func (c *CLI) unsubscribeCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "remove <platform> <project>",
		Aliases: []string{"rm"},
		Short:   "Stop release notifications for a project",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := c.newClient()
			if err != nil {
				return err
			}
			if err := client.Unsubscribe(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if c.cfg.Output != config.OutputTable {
				return writeJSON(w, map[string]bool{"subscribed": false})
			}
			printSuccess(w, "Unsubscribed from %s/%s", args[0], args[1])
			return nil
		},
	}
}

// confirm prints res as JSON, or a one-line status in table mode.
func (c *CLI) confirm(cmd *cobra.Command, res librariesio.Result, format string, args ...any) error {
	w := cmd.OutOrStdout()
	if c.cfg.Output != config.OutputTable {
		return writeJSON(w, res)
	}
	printSuccess(w, format, args...)
	return nil
}
