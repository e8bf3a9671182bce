package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/quibraries/quibraries/internal/config"
	"github.com/quibraries/quibraries/pkg/errors"
	"github.com/quibraries/quibraries/pkg/integrations/librariesio"
)

// opCommand creates a command that runs op with its identifying arguments
// taken positionally, in path order. The returned Args is the template the
// command starts from; callers may bind extra flags to it.
func (c *CLI) opCommand(use, short string, op librariesio.Operation) (*cobra.Command, *librariesio.Args) {
	params := positional(op)
	base := &librariesio.Args{}

	cmd := &cobra.Command{
		Use:   strings.TrimSpace(use + " " + placeholders(params)),
		Short: short,
		Args:  cobra.ExactArgs(len(params)),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := bindArgs(*base, params, args)
			if err != nil {
				return err
			}
			return c.query(cmd, op, a)
		},
	}
	if op.Paged() {
		addPageFlag(cmd, &base.Page)
	}
	return cmd, base
}

// positional returns the arguments of op given on the command line.
// Version is optional and set by flag instead.
func positional(op librariesio.Operation) []string {
	return slices.DeleteFunc(op.Params(), func(p string) bool { return p == "version" })
}

func placeholders(params []string) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = "<" + p + ">"
	}
	return strings.Join(parts, " ")
}

func bindArgs(a librariesio.Args, params, values []string) (librariesio.Args, error) {
	if len(values) != len(params) {
		return a, errors.New(errors.ErrCodeInvalidArgument, "want %d arguments (%s), got %d",
			len(params), placeholders(params), len(values))
	}
	for i, p := range params {
		if err := a.Set(p, values[i]); err != nil {
			return a, err
		}
	}
	return a, nil
}

// =============================================================================
// Platforms
// =============================================================================

func (c *CLI) platformsCommand() *cobra.Command {
	cmd, _ := c.opCommand("platforms", "List supported package managers", librariesio.OpPlatforms)
	return cmd
}

// =============================================================================
// Project
// =============================================================================

func (c *CLI) projectCommand() *cobra.Command {
	cmd, _ := c.opCommand("project", "Show a project and its versions", librariesio.OpProject)
	cmd.Example = `  quibraries project pypi requests
  quibraries project dependencies npm react --version 18.2.0
  quibraries project dependents cargo serde --all -o table`

	deps, depsArgs := c.opCommand("dependencies", "List the dependencies of a project version", librariesio.OpProjectDependencies)
	deps.Flags().StringVar(&depsArgs.Version, "version", "", "project version (default \"latest\")")

	dependents, _ := c.opCommand("dependents", "List packages that depend on a project", librariesio.OpProjectDependents)
	repos, _ := c.opCommand("dependent-repos", "List repositories that depend on a project", librariesio.OpProjectDependentRepositories)
	contributors, _ := c.opCommand("contributors", "List users who contributed to a project", librariesio.OpProjectContributors)
	sourcerank, _ := c.opCommand("sourcerank", "Show the SourceRank breakdown of a project", librariesio.OpProjectSourceRank)
	usage, _ := c.opCommand("usage", "Show how dependents pin versions of a project", librariesio.OpProjectUsage)

	cmd.AddCommand(c.projectInfoCommand(), deps, dependents, repos, contributors, sourcerank, usage)
	return cmd
}

// projectInfoCommand fetches a project, its SourceRank and its latest
// dependencies concurrently on one client.
func (c *CLI) projectInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info <platform> <project>",
		Short: "Summarize a project, its SourceRank and dependencies",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := c.newClient()
			if err != nil {
				return err
			}
			platform, name := args[0], args[1]

			var project, rank, deps librariesio.Result
			prog := newProgress(loggerFromContext(cmd.Context()))
			err = c.withSpinner(cmd.Context(), "Fetching "+name+"...", func() error {
				g, ctx := errgroup.WithContext(cmd.Context())
				g.Go(func() (err error) {
					project, err = client.Project(ctx, platform, name)
					return err
				})
				g.Go(func() (err error) {
					rank, err = client.ProjectSourceRank(ctx, platform, name)
					return err
				})
				g.Go(func() (err error) {
					deps, err = client.ProjectDependencies(ctx, platform, name, "")
					return err
				})
				return g.Wait()
			})
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Fetched %s/%s", platform, name))

			w := cmd.OutOrStdout()
			if c.cfg.Output != config.OutputTable {
				return writeJSON(w, map[string]librariesio.Result{
					"project":      project,
					"sourcerank":   rank,
					"dependencies": deps,
				})
			}

			rec, _ := project.Single()
			printTitle(w, fmt.Sprintf("%s (%s)", cellText(rec["name"]), cellText(rec["platform"])))
			for _, k := range []string{"description", "latest_release_number", "licenses", "homepage", "repository_url", "rank", "stars", "dependents_count"} {
				if v, ok := rec[k]; ok && cellText(v) != "" {
					printKeyValue(w, k, cellText(v))
				}
			}
			fmt.Fprintln(w)
			printTitle(w, "SourceRank")
			if r, ok := rank.Single(); ok {
				fmt.Fprintln(w, recordTable(r))
			}
			printTitle(w, "Dependencies")
			if d, ok := deps.Single(); ok {
				if list, ok := d["dependencies"].([]any); ok && len(list) > 0 {
					fmt.Fprintln(w, listTable(asRecords(list)))
					return nil
				}
			}
			printInfo(w, "No dependencies")
			return nil
		},
	}
}

// asRecords keeps the object elements of a decoded JSON array.
func asRecords(list []any) []librariesio.Record {
	out := make([]librariesio.Record, 0, len(list))
	for _, v := range list {
		if m, ok := v.(map[string]any); ok {
			out = append(out, librariesio.Record(m))
		}
	}
	return out
}

// =============================================================================
// Search
// =============================================================================

func (c *CLI) searchCommand() *cobra.Command {
	var (
		page      int
		sort      string
		platforms []string
		languages []string
		licenses  []string
		keywords  []string
	)

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search projects by keyword",
		Long: `Search projects by keyword, optionally sorted and filtered.

Without a query, --platforms is required and lists projects on that platform.`,
		Example: `  quibraries search "http client" --languages Go --sort stars
  quibraries search --platforms cargo --sort dependents_count`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := librariesio.Args{
				Sort: librariesio.Sort(sort),
				Page: page,
				Filters: map[librariesio.Filter][]string{
					librariesio.FilterPlatforms: platforms,
					librariesio.FilterLanguages: languages,
					librariesio.FilterLicenses:  licenses,
					librariesio.FilterKeywords:  keywords,
				},
			}

			op := librariesio.OpProjectSearch
			switch {
			case len(args) == 1:
				a.Query = args[0]
			case len(platforms) > 0:
				op = librariesio.OpPlatformSearch
				a.Platform = platforms[0]
			default:
				return errors.New(errors.ErrCodeInvalidArgument, "a query or --platforms is required")
			}
			return c.query(cmd, op, a)
		},
	}

	sorts := make([]string, len(librariesio.Sorts))
	for i, s := range librariesio.Sorts {
		sorts[i] = string(s)
	}

	f := cmd.Flags()
	addPageFlag(cmd, &page)
	f.StringVar(&sort, "sort", "", "sort field: "+strings.Join(sorts, ", "))
	f.StringSliceVar(&platforms, "platforms", nil, "filter by package manager")
	f.StringSliceVar(&languages, "languages", nil, "filter by language")
	f.StringSliceVar(&licenses, "licenses", nil, "filter by license")
	f.StringSliceVar(&keywords, "keywords", nil, "filter by keyword")
	cmd.RegisterFlagCompletionFunc("sort", cobra.FixedCompletions(sorts, cobra.ShellCompDirectiveNoFileComp))

	return cmd
}
