package cli

import (
	"github.com/spf13/cobra"

	"github.com/quibraries/quibraries/pkg/integrations/librariesio"
)

func (c *CLI) repoCommand() *cobra.Command {
	cmd, _ := c.opCommand("repo", "Show a repository", librariesio.OpRepository)
	cmd.Example = `  quibraries repo github psf requests
  quibraries repo dependencies github psf requests -o table`

	deps, _ := c.opCommand("dependencies", "List dependencies declared in a repository's manifests", librariesio.OpRepositoryDependencies)
	projects, _ := c.opCommand("projects", "List projects published from a repository", librariesio.OpRepositoryProjects)

	cmd.AddCommand(deps, projects)
	return cmd
}

func (c *CLI) ownerCommand() *cobra.Command {
	cmd, _ := c.opCommand("owner", "List repositories of a user or organisation", librariesio.OpOwnerRepositories)
	cmd.Example = `  quibraries owner github pallets --all`
	return cmd
}

func (c *CLI) userCommand() *cobra.Command {
	cmd, _ := c.opCommand("user", "Show a user or organisation", librariesio.OpUser)
	cmd.Example = `  quibraries user github octocat
  quibraries user repositories github octocat --per-page 100 --all`

	repos, _ := c.opCommand("repositories", "List repositories a user owns", librariesio.OpUserRepositories)
	projects, _ := c.opCommand("projects", "List packages a user maintains", librariesio.OpUserProjects)
	projectContrib, _ := c.opCommand("project-contributions", "List packages a user contributed to", librariesio.OpUserProjectContributions)
	repoContrib, _ := c.opCommand("repository-contributions", "List repositories a user contributed to", librariesio.OpUserRepositoryContributions)
	deps, _ := c.opCommand("dependencies", "List packages a user's repositories depend on", librariesio.OpUserDependencies)

	cmd.AddCommand(repos, projects, projectContrib, repoContrib, deps)
	return cmd
}
