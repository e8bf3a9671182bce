package librariesio

import (
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/quibraries/quibraries/pkg/errors"
	"github.com/quibraries/quibraries/pkg/integrations"
)

// Operation names one libraries.io endpoint.
type Operation string

// Search API operations.
const (
	OpPlatforms                    Operation = "platforms"
	OpProject                      Operation = "project"
	OpProjectDependencies          Operation = "project-dependencies"
	OpProjectDependents            Operation = "project-dependents"
	OpProjectDependentRepositories Operation = "project-dependent-repositories"
	OpProjectContributors          Operation = "project-contributors"
	OpProjectSourceRank            Operation = "project-sourcerank"
	OpProjectUsage                 Operation = "project-usage"
	OpProjectSearch                Operation = "project-search"
	OpPlatformSearch               Operation = "platform-search"
	OpRepository                   Operation = "repository"
	OpRepositoryDependencies       Operation = "repository-dependencies"
	OpRepositoryProjects           Operation = "repository-projects"
	OpOwnerRepositories            Operation = "owner-repositories"
	OpUser                         Operation = "user"
	OpUserRepositories             Operation = "user-repositories"
	OpUserProjects                 Operation = "user-projects"
	OpUserProjectContributions     Operation = "user-project-contributions"
	OpUserRepositoryContributions  Operation = "user-repository-contributions"
	OpUserDependencies             Operation = "user-dependencies"
)

// Subscriptions API operations.
const (
	OpSubscriptions      Operation = "subscriptions"
	OpSubscribe          Operation = "subscribe"
	OpSubscription       Operation = "subscription"
	OpUpdateSubscription Operation = "update-subscription"
	OpUnsubscribe        Operation = "unsubscribe"
)

// Sort selects the ordering of search results.
type Sort string

// Sort fields accepted by the search endpoint.
const (
	SortRank                     Sort = "rank"
	SortStars                    Sort = "stars"
	SortDependentsCount          Sort = "dependents_count"
	SortDependentReposCount      Sort = "dependent_repos_count"
	SortLatestReleasePublishedAt Sort = "latest_release_published_at"
	SortContributionsCount       Sort = "contributions_count"
	SortCreatedAt                Sort = "created_at"
)

// Sorts lists every supported sort field.
var Sorts = []Sort{
	SortRank, SortStars, SortDependentsCount, SortDependentReposCount,
	SortLatestReleasePublishedAt, SortContributionsCount, SortCreatedAt,
}

// Filter is a search filter key; its values are sent comma-separated.
type Filter string

// Filters accepted by the search endpoint.
const (
	FilterLanguages Filter = "languages"
	FilterLicenses  Filter = "licenses"
	FilterKeywords  Filter = "keywords"
	FilterPlatforms Filter = "platforms"
)

const (
	// DefaultVersion is requested when a dependencies lookup names no version.
	DefaultVersion = "latest"

	// MaxPerPage is the largest page size the API accepts.
	MaxPerPage = 100

	// DefaultPerPage is the page size the API uses when none is sent.
	DefaultPerPage = 30
)

// Args carries every argument an operation may need.
// Each operation reads only the fields its endpoint uses.
type Args struct {
	Host     string // Repository host (e.g., "github")
	Owner    string // Repository owner login
	Repo     string // Repository name
	User     string // User or organisation login
	Platform string // Package manager (e.g., "pypi")
	Project  string // Project name on Platform
	Version  string // Project version; DefaultVersion when empty

	Query   string              // Search keywords ("q")
	Sort    Sort                // Search sort field
	Filters map[Filter][]string // Search filters

	IncludePrerelease bool // Subscription setting

	Page    int // 1-based; 0 omits the parameter
	PerPage int // 1..MaxPerPage; 0 omits the parameter
}

type field int

const (
	fieldHost field = iota
	fieldOwner
	fieldRepo
	fieldUser
	fieldPlatform
	fieldProject
	fieldVersion
	fieldQuery
)

var fieldNames = [...]string{"host", "owner", "repo", "user", "platform", "project", "version", "query"}

func (f field) String() string { return fieldNames[f] }

func (a Args) get(f field) string {
	switch f {
	case fieldHost:
		return a.Host
	case fieldOwner:
		return a.Owner
	case fieldRepo:
		return a.Repo
	case fieldUser:
		return a.User
	case fieldPlatform:
		return a.Platform
	case fieldProject:
		return a.Project
	case fieldVersion:
		if a.Version == "" {
			return DefaultVersion
		}
		return a.Version
	case fieldQuery:
		return a.Query
	}
	return ""
}

// route describes how one operation maps onto the API.
type route struct {
	method   string
	prefix   []string // fixed leading segments
	path     []field  // identifying arguments, in path order
	required []field  // validated but not part of the path
	tail     string   // fixed trailing segment
	paged    bool
	search   bool
	prerel   bool // sends include_prerelease
}

var routes = map[Operation]route{
	OpPlatforms: {method: http.MethodGet, prefix: []string{"platforms"}},

	OpProject:                      {method: http.MethodGet, path: []field{fieldPlatform, fieldProject}},
	OpProjectDependencies:          {method: http.MethodGet, path: []field{fieldPlatform, fieldProject, fieldVersion}, tail: "dependencies"},
	OpProjectDependents:            {method: http.MethodGet, path: []field{fieldPlatform, fieldProject}, tail: "dependents", paged: true},
	OpProjectDependentRepositories: {method: http.MethodGet, path: []field{fieldPlatform, fieldProject}, tail: "dependent_repositories", paged: true},
	OpProjectContributors:          {method: http.MethodGet, path: []field{fieldPlatform, fieldProject}, tail: "contributors", paged: true},
	OpProjectSourceRank:            {method: http.MethodGet, path: []field{fieldPlatform, fieldProject}, tail: "sourcerank"},
	OpProjectUsage:                 {method: http.MethodGet, path: []field{fieldPlatform, fieldProject}, tail: "usage"},
	OpProjectSearch:                {method: http.MethodGet, prefix: []string{"search"}, required: []field{fieldQuery}, paged: true, search: true},
	OpPlatformSearch:               {method: http.MethodGet, prefix: []string{"search"}, required: []field{fieldPlatform}, paged: true, search: true},

	OpRepository:             {method: http.MethodGet, path: []field{fieldHost, fieldOwner, fieldRepo}},
	OpRepositoryDependencies: {method: http.MethodGet, path: []field{fieldHost, fieldOwner, fieldRepo}, tail: "dependencies"},
	OpRepositoryProjects:     {method: http.MethodGet, path: []field{fieldHost, fieldOwner, fieldRepo}, tail: "projects", paged: true},
	OpOwnerRepositories:      {method: http.MethodGet, path: []field{fieldHost, fieldOwner}, tail: "repositories", paged: true},

	OpUser:                        {method: http.MethodGet, path: []field{fieldHost, fieldUser}},
	OpUserRepositories:            {method: http.MethodGet, path: []field{fieldHost, fieldUser}, tail: "repositories", paged: true},
	OpUserProjects:                {method: http.MethodGet, path: []field{fieldHost, fieldUser}, tail: "projects", paged: true},
	OpUserProjectContributions:    {method: http.MethodGet, path: []field{fieldHost, fieldUser}, tail: "project-contributions", paged: true},
	OpUserRepositoryContributions: {method: http.MethodGet, path: []field{fieldHost, fieldUser}, tail: "repository-contributions", paged: true},
	OpUserDependencies:            {method: http.MethodGet, path: []field{fieldHost, fieldUser}, tail: "dependencies", paged: true},

	OpSubscriptions:      {method: http.MethodGet, prefix: []string{"subscriptions"}, paged: true},
	OpSubscribe:          {method: http.MethodPost, prefix: []string{"subscriptions"}, path: []field{fieldPlatform, fieldProject}, prerel: true},
	OpSubscription:       {method: http.MethodGet, prefix: []string{"subscriptions"}, path: []field{fieldPlatform, fieldProject}},
	OpUpdateSubscription: {method: http.MethodPut, prefix: []string{"subscriptions"}, path: []field{fieldPlatform, fieldProject}, prerel: true},
	OpUnsubscribe:        {method: http.MethodDelete, prefix: []string{"subscriptions"}, path: []field{fieldPlatform, fieldProject}},
}

// Paged reports whether op returns a list that can be walked page by page.
func (op Operation) Paged() bool { return routes[op].paged }

// Params returns the names of the identifying arguments op needs, in path
// order ("host", "owner", "repo", "user", "platform", "project", "version",
// "query"). Version is optional.
func (op Operation) Params() []string {
	rt := routes[op]
	names := make([]string, 0, len(rt.path)+len(rt.required))
	for _, f := range slices.Concat(rt.path, rt.required) {
		names = append(names, f.String())
	}
	return names
}

// Set assigns value to the argument called name, as returned by
// [Operation.Params].
func (a *Args) Set(name, value string) error {
	switch name {
	case "host":
		a.Host = value
	case "owner":
		a.Owner = value
	case "repo":
		a.Repo = value
	case "user":
		a.User = value
	case "platform":
		a.Platform = value
	case "project":
		a.Project = value
	case "version":
		a.Version = value
	case "query":
		a.Query = value
	default:
		return errors.New(errors.ErrCodeInvalidArgument, "unknown argument %q", name)
	}
	return nil
}

// PagedOperations returns every paginated operation, sorted by name.
func PagedOperations() []Operation {
	var ops []Operation
	for op, rt := range routes {
		if rt.paged {
			ops = append(ops, op)
		}
	}
	slices.Sort(ops)
	return ops
}

// Request is a fully built, immutable request descriptor.
// Segments are kept raw and escaped on output, so values round-trip.
type Request struct {
	op       Operation
	method   string
	segments []string
	query    url.Values
}

// Op returns the operation the request was built for.
func (r Request) Op() Operation { return r.op }

// Method returns the HTTP method.
func (r Request) Method() string { return r.method }

// Segments returns a copy of the unescaped path segments.
func (r Request) Segments() []string { return slices.Clone(r.segments) }

// Path returns the percent-encoded path, starting with "/".
func (r Request) Path() string { return integrations.JoinPath(r.segments...) }

// Query returns a copy of the query parameters, without the credential.
func (r Request) Query() url.Values {
	q := make(url.Values, len(r.query))
	for k, v := range r.query {
		q[k] = slices.Clone(v)
	}
	return q
}

// String returns the encoded path and query string.
func (r Request) String() string {
	if enc := r.query.Encode(); enc != "" {
		return r.Path() + "?" + enc
	}
	return r.Path()
}

// URL returns the absolute URL of the request against base, without the
// credential.
func (r Request) URL(base string) string {
	return strings.TrimSuffix(base, "/") + r.String()
}

// Build turns an operation and its arguments into a Request.
//
// Identifying arguments are validated first; a missing one yields an
// [errors.ErrCodeInvalidArgument] error. Path values and query values are
// stored raw and percent-encoded (reserved characters included) only when
// the request is rendered, so decoding reproduces the input exactly.
//
// For [OpPlatformSearch] an explicit FilterPlatforms entry in Args.Filters
// takes precedence over Args.Platform. All other filters pass through.
func Build(op Operation, a Args) (Request, error) {
	rt, ok := routes[op]
	if !ok {
		return Request{}, errors.New(errors.ErrCodeInvalidArgument, "unknown operation %q", op)
	}

	for _, f := range slices.Concat(rt.path, rt.required) {
		if f == fieldVersion {
			continue
		}
		if err := errors.ValidateIdentifier(f.String(), a.get(f)); err != nil {
			return Request{}, err
		}
	}
	if a.Version != "" {
		if err := errors.ValidateIdentifier("version", a.Version); err != nil {
			return Request{}, err
		}
	}

	segments := slices.Clone(rt.prefix)
	for _, f := range rt.path {
		segments = append(segments, a.get(f))
	}
	if rt.tail != "" {
		segments = append(segments, rt.tail)
	}

	query := url.Values{}
	if rt.search {
		if err := searchParams(op, a, query); err != nil {
			return Request{}, err
		}
	}
	if rt.paged {
		pageParams(a, query)
	}
	if rt.prerel {
		query.Set("include_prerelease", strconv.FormatBool(a.IncludePrerelease))
	}

	return Request{op: op, method: rt.method, segments: segments, query: query}, nil
}

func searchParams(op Operation, a Args, q url.Values) error {
	if a.Query != "" {
		q.Set("q", a.Query)
	}
	if a.Sort != "" {
		if !slices.Contains(Sorts, a.Sort) {
			return errors.New(errors.ErrCodeInvalidArgument, "unknown sort field %q", a.Sort)
		}
		q.Set("sort", string(a.Sort))
	}
	if op == OpPlatformSearch {
		q.Set(string(FilterPlatforms), a.Platform)
	}
	for f, values := range a.Filters {
		if len(values) == 0 {
			continue
		}
		q.Set(string(f), strings.Join(values, ","))
	}
	return nil
}

// pageParams clamps page to >= 1 and per_page to 1..MaxPerPage.
// Zero values are omitted so the API applies its defaults.
func pageParams(a Args, q url.Values) {
	if a.Page != 0 {
		q.Set("page", strconv.Itoa(max(a.Page, 1)))
	}
	if a.PerPage != 0 {
		q.Set("per_page", strconv.Itoa(min(max(a.PerPage, 1), MaxPerPage)))
	}
}
