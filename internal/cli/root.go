package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/quibraries/quibraries/internal/config"
	"github.com/quibraries/quibraries/pkg/integrations/librariesio"
)

// globalFlags holds the persistent flags shared by every command.
// Only flags the user actually set override the loaded configuration.
type globalFlags struct {
	configPath string
	apiKey     string
	baseURL    string
	timeout    time.Duration
	perPage    int
	output     string
	all        bool
}

func (c *CLI) registerFlags(root *cobra.Command) {
	f := root.PersistentFlags()
	f.StringVar(&c.flags.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/quibraries/config.toml)")
	f.StringVar(&c.flags.apiKey, "api-key", "", "libraries.io API key (overrides LIBRARIES_API_KEY)")
	f.StringVar(&c.flags.baseURL, "base-url", "", "API root URL")
	f.DurationVar(&c.flags.timeout, "timeout", 0, "per-request timeout (e.g. 5s)")
	f.IntVar(&c.flags.perPage, "per-page", 0, fmt.Sprintf("results per page, 1-%d", librariesio.MaxPerPage))
	f.StringVarP(&c.flags.output, "output", "o", "", "output format: "+strings.Join(config.Outputs, ", "))
	f.BoolVar(&c.flags.all, "all", false, "fetch every page of a paginated result")

	root.RegisterFlagCompletionFunc("output", cobra.FixedCompletions(config.Outputs, cobra.ShellCompDirectiveNoFileComp))
}

// setup resolves the configuration (defaults, file, environment, flags)
// and attaches the logger to the command context.
func (c *CLI) setup(cmd *cobra.Command, args []string) error {
	cfg, path, exists, err := config.Load(c.flags.configPath)
	if err != nil {
		return err
	}
	c.Logger.Debug("config", "path", path, "exists", exists)

	f := cmd.Flags()
	if f.Changed("api-key") {
		cfg.APIKey = strings.TrimSpace(c.flags.apiKey)
	}
	if f.Changed("base-url") {
		cfg.BaseURL = strings.TrimSuffix(c.flags.baseURL, "/")
	}
	if f.Changed("timeout") {
		cfg.Timeout = c.flags.timeout
	}
	if f.Changed("per-page") {
		cfg.PerPage = c.flags.perPage
	}
	if f.Changed("output") {
		cfg.Output = strings.ToLower(c.flags.output)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	c.cfg = *cfg
	cmd.SetContext(withLogger(cmd.Context(), c.Logger))
	return nil
}

// =============================================================================
// Query Execution
// =============================================================================

// query runs op and writes the result. With --all, paginated operations are
// walked to the end and printed as a single list.
func (c *CLI) query(cmd *cobra.Command, op librariesio.Operation, args librariesio.Args) error {
	client, err := c.newClient()
	if err != nil {
		return err
	}
	if args.PerPage == 0 {
		args.PerPage = c.cfg.PerPage
	}

	ctx := cmd.Context()
	var res librariesio.Result
	if c.flags.all && op.Paged() {
		res, err = c.collect(ctx, client, op, args)
	} else {
		err = c.withSpinner(ctx, "Querying libraries.io...", func() error {
			res, err = client.Do(ctx, op, args)
			return err
		})
	}
	if err != nil {
		return err
	}
	return c.render(cmd.OutOrStdout(), res)
}

// collect walks every page of op with a Pager.
func (c *CLI) collect(ctx context.Context, client *librariesio.Client, op librariesio.Operation, args librariesio.Args) (librariesio.Result, error) {
	pager, err := client.Paginate(op, args)
	if err != nil {
		return librariesio.Result{}, err
	}

	prog := newProgress(loggerFromContext(ctx))
	var (
		all   []librariesio.Record
		pages int
	)
	err = c.withSpinner(ctx, "Fetching all pages...", func() error {
		for page, err := range pager.All(ctx) {
			if err != nil {
				return err
			}
			pages++
			all = append(all, page...)
			loggerFromContext(ctx).Debug("page", "number", pager.PageNumber()-1, "records", len(page))
		}
		return nil
	})
	if err != nil {
		return librariesio.Result{}, err
	}
	prog.done(fmt.Sprintf("Fetched %d records in %d pages", len(all), pages))
	return librariesio.ListResult(all), nil
}

// withSpinner runs fn behind a spinner when stderr is a terminal.
func (c *CLI) withSpinner(ctx context.Context, msg string, fn func() error) error {
	if !c.spinners {
		return fn()
	}
	s := newSpinner(ctx, os.Stderr, msg)
	s.Start()
	defer s.Stop()
	return fn()
}

// addPageFlag registers --page on a command that lists results.
func addPageFlag(cmd *cobra.Command, page *int) {
	cmd.Flags().IntVar(page, "page", 0, "page number to fetch (first page with --all)")
}
