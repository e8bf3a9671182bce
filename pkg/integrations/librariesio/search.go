package librariesio

import "context"

// ListOptions selects one page of a list endpoint.
// Zero values let the API apply its defaults (page 1, 30 per page).
type ListOptions struct {
	Page    int
	PerPage int
}

// SearchOptions refines a project search.
type SearchOptions struct {
	Sort    Sort
	Filters map[Filter][]string
	ListOptions
}

func (o ListOptions) apply(a Args) Args {
	a.Page, a.PerPage = o.Page, o.PerPage
	return a
}

func (o SearchOptions) apply(a Args) Args {
	a.Sort, a.Filters = o.Sort, o.Filters
	return o.ListOptions.apply(a)
}

// Platforms lists the package managers libraries.io supports.
func (c *Client) Platforms(ctx context.Context) (Result, error) {
	return c.Do(ctx, OpPlatforms, Args{})
}

// Project returns information about a project and its versions.
func (c *Client) Project(ctx context.Context, platform, name string) (Result, error) {
	return c.Do(ctx, OpProject, Args{Platform: platform, Project: name})
}

// ProjectDependencies returns the dependencies of one version of a project.
// An empty version means [DefaultVersion].
func (c *Client) ProjectDependencies(ctx context.Context, platform, name, version string) (Result, error) {
	return c.Do(ctx, OpProjectDependencies, Args{Platform: platform, Project: name, Version: version})
}

// ProjectDependents returns packages that depend on any version of a project.
func (c *Client) ProjectDependents(ctx context.Context, platform, name string, opts ListOptions) (Result, error) {
	return c.Do(ctx, OpProjectDependents, opts.apply(Args{Platform: platform, Project: name}))
}

// ProjectDependentRepositories returns repositories that depend on a project.
func (c *Client) ProjectDependentRepositories(ctx context.Context, platform, name string, opts ListOptions) (Result, error) {
	return c.Do(ctx, OpProjectDependentRepositories, opts.apply(Args{Platform: platform, Project: name}))
}

// ProjectContributors returns the users who contributed to a project.
func (c *Client) ProjectContributors(ctx context.Context, platform, name string, opts ListOptions) (Result, error) {
	return c.Do(ctx, OpProjectContributors, opts.apply(Args{Platform: platform, Project: name}))
}

// ProjectSourceRank returns the breakdown of a project's SourceRank score.
func (c *Client) ProjectSourceRank(ctx context.Context, platform, name string) (Result, error) {
	return c.Do(ctx, OpProjectSourceRank, Args{Platform: platform, Project: name})
}

// ProjectUsage returns how dependents pin versions of a project.
func (c *Client) ProjectUsage(ctx context.Context, platform, name string) (Result, error) {
	return c.Do(ctx, OpProjectUsage, Args{Platform: platform, Project: name})
}

// ProjectSearch searches projects by keyword, with optional sort and filters.
func (c *Client) ProjectSearch(ctx context.Context, query string, opts SearchOptions) (Result, error) {
	return c.Do(ctx, OpProjectSearch, opts.apply(Args{Query: query}))
}

// SearchByPlatform lists projects on one platform. A platforms entry in
// opts.Filters takes precedence over platform.
func (c *Client) SearchByPlatform(ctx context.Context, platform string, opts SearchOptions) (Result, error) {
	return c.Do(ctx, OpPlatformSearch, opts.apply(Args{Platform: platform}))
}

// Repository returns information about a repository.
func (c *Client) Repository(ctx context.Context, host, owner, repo string) (Result, error) {
	return c.Do(ctx, OpRepository, Args{Host: host, Owner: owner, Repo: repo})
}

// RepositoryDependencies returns the dependencies declared in a repository's manifests.
func (c *Client) RepositoryDependencies(ctx context.Context, host, owner, repo string) (Result, error) {
	return c.Do(ctx, OpRepositoryDependencies, Args{Host: host, Owner: owner, Repo: repo})
}

// RepositoryProjects returns the projects published from a repository.
func (c *Client) RepositoryProjects(ctx context.Context, host, owner, repo string, opts ListOptions) (Result, error) {
	return c.Do(ctx, OpRepositoryProjects, opts.apply(Args{Host: host, Owner: owner, Repo: repo}))
}

// OwnerRepositories returns the repositories owned by a user or organisation.
func (c *Client) OwnerRepositories(ctx context.Context, host, owner string, opts ListOptions) (Result, error) {
	return c.Do(ctx, OpOwnerRepositories, opts.apply(Args{Host: host, Owner: owner}))
}

// User returns information about a user or organisation.
func (c *Client) User(ctx context.Context, host, user string) (Result, error) {
	return c.Do(ctx, OpUser, Args{Host: host, User: user})
}

// UserRepositories returns the repositories a user owns.
func (c *Client) UserRepositories(ctx context.Context, host, user string, opts ListOptions) (Result, error) {
	return c.Do(ctx, OpUserRepositories, opts.apply(Args{Host: host, User: user}))
}

// UserProjects returns the packages a user maintains.
func (c *Client) UserProjects(ctx context.Context, host, user string, opts ListOptions) (Result, error) {
	return c.Do(ctx, OpUserProjects, opts.apply(Args{Host: host, User: user}))
}

// UserProjectContributions returns the packages a user has contributed to.
func (c *Client) UserProjectContributions(ctx context.Context, host, user string, opts ListOptions) (Result, error) {
	return c.Do(ctx, OpUserProjectContributions, opts.apply(Args{Host: host, User: user}))
}

// UserRepositoryContributions returns the repositories a user has contributed to.
func (c *Client) UserRepositoryContributions(ctx context.Context, host, user string, opts ListOptions) (Result, error) {
	return c.Do(ctx, OpUserRepositoryContributions, opts.apply(Args{Host: host, User: user}))
}

// UserDependencies returns the packages a user's repositories depend on.
func (c *Client) UserDependencies(ctx context.Context, host, user string, opts ListOptions) (Result, error) {
	return c.Do(ctx, OpUserDependencies, opts.apply(Args{Host: host, User: user}))
}
