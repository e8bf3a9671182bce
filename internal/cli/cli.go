package cli

import (
	"io"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/quibraries/quibraries/internal/config"
	"github.com/quibraries/quibraries/pkg/buildinfo"
	"github.com/quibraries/quibraries/pkg/errors"
	"github.com/quibraries/quibraries/pkg/integrations/librariesio"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "quibraries"

	// apiKeyURL is where users obtain an API key.
	apiKeyURL = "https://libraries.io/account"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// HTTPClient overrides the transport used by API commands. Nil uses
	// a client built from the configured timeout.
	HTTPClient *http.Client

	cfg      config.Config
	flags    globalFlags
	spinners bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger:   newLogger(w, level),
		cfg:      config.Default(),
		spinners: isatty.IsTerminal(os.Stderr.Fd()),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:               appName,
		Short:             "Quibraries queries the libraries.io API",
		Long:              `Quibraries is a CLI for the libraries.io API: look up packages, repositories and users across dozens of package managers, search projects and manage release subscriptions.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
	}

	root.SetVersionTemplate(buildinfo.Template())
	c.registerFlags(root)

	// Register all subcommands
	root.AddCommand(c.platformsCommand())
	root.AddCommand(c.projectCommand())
	root.AddCommand(c.searchCommand())
	root.AddCommand(c.repoCommand())
	root.AddCommand(c.ownerCommand())
	root.AddCommand(c.userCommand())
	root.AddCommand(c.subscriptionsCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Client Factory
// =============================================================================

// newClient creates an API client from the resolved configuration.
func (c *CLI) newClient() (*librariesio.Client, error) {
	if c.cfg.APIKey == "" {
		return nil, errors.New(errors.ErrCodeConfiguration,
			"no API key: set LIBRARIES_API_KEY, pass --api-key or add api_key to the config file (get one at %s)", apiKeyURL)
	}
	opts := append(c.cfg.Options(), librariesio.WithLogger(c.Logger))
	if c.HTTPClient != nil {
		opts = append(opts, librariesio.WithHTTPClient(c.HTTPClient))
	}
	return librariesio.NewClient(c.cfg.APIKey, opts...)
}

// ReportError prints err to w, with a hint when the cause is a common
// setup mistake.
func (c *CLI) ReportError(w io.Writer, err error) {
	printError(w, "%v", err)
	switch {
	case errors.IsUnauthorized(err):
		printWarning(w, "the API key was rejected; check it at %s", apiKeyURL)
	case errors.Is(err, errors.ErrCodeTimeout):
		printWarning(w, "the request timed out; raise --timeout or the timeout setting")
	}
}
