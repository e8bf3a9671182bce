package librariesio

import (
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/quibraries/quibraries/pkg/errors"
)

func TestBuildPaths(t *testing.T) {
	tests := []struct {
		name   string
		op     Operation
		args   Args
		method string
		path   string
	}{
		{"platforms", OpPlatforms, Args{}, http.MethodGet, "/platforms"},
		{"project", OpProject, Args{Platform: "pypi", Project: "requests"}, http.MethodGet, "/pypi/requests"},
		{"dependencies default version", OpProjectDependencies, Args{Platform: "npm", Project: "react"}, http.MethodGet, "/npm/react/latest/dependencies"},
		{"dependencies explicit version", OpProjectDependencies, Args{Platform: "npm", Project: "react", Version: "18.2.0"}, http.MethodGet, "/npm/react/18.2.0/dependencies"},
		{"dependents", OpProjectDependents, Args{Platform: "pypi", Project: "six"}, http.MethodGet, "/pypi/six/dependents"},
		{"dependent repositories", OpProjectDependentRepositories, Args{Platform: "pypi", Project: "six"}, http.MethodGet, "/pypi/six/dependent_repositories"},
		{"contributors", OpProjectContributors, Args{Platform: "pypi", Project: "six"}, http.MethodGet, "/pypi/six/contributors"},
		{"sourcerank", OpProjectSourceRank, Args{Platform: "pypi", Project: "six"}, http.MethodGet, "/pypi/six/sourcerank"},
		{"usage", OpProjectUsage, Args{Platform: "pypi", Project: "six"}, http.MethodGet, "/pypi/six/usage"},
		{"search", OpProjectSearch, Args{Query: "grunt"}, http.MethodGet, "/search"},
		{"platform search", OpPlatformSearch, Args{Platform: "cargo"}, http.MethodGet, "/search"},
		{"repository", OpRepository, Args{Host: "github", Owner: "psf", Repo: "requests"}, http.MethodGet, "/github/psf/requests"},
		{"repository dependencies", OpRepositoryDependencies, Args{Host: "github", Owner: "psf", Repo: "requests"}, http.MethodGet, "/github/psf/requests/dependencies"},
		{"repository projects", OpRepositoryProjects, Args{Host: "github", Owner: "psf", Repo: "requests"}, http.MethodGet, "/github/psf/requests/projects"},
		{"owner repositories", OpOwnerRepositories, Args{Host: "gitlab", Owner: "gitlab-org"}, http.MethodGet, "/gitlab/gitlab-org/repositories"},
		{"user", OpUser, Args{Host: "github", User: "octocat"}, http.MethodGet, "/github/octocat"},
		{"user repositories", OpUserRepositories, Args{Host: "github", User: "octocat"}, http.MethodGet, "/github/octocat/repositories"},
		{"user projects", OpUserProjects, Args{Host: "github", User: "octocat"}, http.MethodGet, "/github/octocat/projects"},
		{"user project contributions", OpUserProjectContributions, Args{Host: "github", User: "octocat"}, http.MethodGet, "/github/octocat/project-contributions"},
		{"user repository contributions", OpUserRepositoryContributions, Args{Host: "github", User: "octocat"}, http.MethodGet, "/github/octocat/repository-contributions"},
		{"user dependencies", OpUserDependencies, Args{Host: "github", User: "octocat"}, http.MethodGet, "/github/octocat/dependencies"},
		{"subscriptions", OpSubscriptions, Args{}, http.MethodGet, "/subscriptions"},
		{"subscribe", OpSubscribe, Args{Platform: "npm", Project: "lodash"}, http.MethodPost, "/subscriptions/npm/lodash"},
		{"subscription", OpSubscription, Args{Platform: "npm", Project: "lodash"}, http.MethodGet, "/subscriptions/npm/lodash"},
		{"update subscription", OpUpdateSubscription, Args{Platform: "npm", Project: "lodash"}, http.MethodPut, "/subscriptions/npm/lodash"},
		{"unsubscribe", OpUnsubscribe, Args{Platform: "npm", Project: "lodash"}, http.MethodDelete, "/subscriptions/npm/lodash"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := Build(tt.op, tt.args)
			if err != nil {
				t.Fatalf("Build() error: %v", err)
			}
			if req.Op() != tt.op {
				t.Errorf("Op() = %q, want %q", req.Op(), tt.op)
			}
			if req.Method() != tt.method {
				t.Errorf("Method() = %s, want %s", req.Method(), tt.method)
			}
			if req.Path() != tt.path {
				t.Errorf("Path() = %q, want %q", req.Path(), tt.path)
			}
		})
	}
}

func TestBuildMissingArgs(t *testing.T) {
	tests := []struct {
		name  string
		op    Operation
		args  Args
		field string
	}{
		{"project without platform", OpProject, Args{Project: "requests"}, "platform"},
		{"project without name", OpProject, Args{Platform: "pypi"}, "project"},
		{"whitespace project", OpProject, Args{Platform: "pypi", Project: "  "}, "project"},
		{"repository without repo", OpRepository, Args{Host: "github", Owner: "psf"}, "repo"},
		{"repository without host", OpRepository, Args{Owner: "psf", Repo: "requests"}, "host"},
		{"owner without owner", OpOwnerRepositories, Args{Host: "github"}, "owner"},
		{"user without user", OpUserProjects, Args{Host: "github"}, "user"},
		{"search without query", OpProjectSearch, Args{}, "query"},
		{"platform search without platform", OpPlatformSearch, Args{Query: "x"}, "platform"},
		{"subscribe without project", OpSubscribe, Args{Platform: "npm"}, "project"},
		{"blank version", OpProjectDependencies, Args{Platform: "npm", Project: "react", Version: " "}, "version"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(tt.op, tt.args)
			if !errors.Is(err, errors.ErrCodeInvalidArgument) {
				t.Fatalf("Build() error = %v, want INVALID_ARGUMENT", err)
			}
			if !strings.Contains(err.Error(), tt.field) {
				t.Errorf("Build() error = %q, should name %q", err, tt.field)
			}
		})
	}
}

func TestBuildUnknownOperation(t *testing.T) {
	if _, err := Build("nope", Args{}); !errors.Is(err, errors.ErrCodeInvalidArgument) {
		t.Errorf("Build() error = %v, want INVALID_ARGUMENT", err)
	}
}

func TestBuildEncodingRoundTrip(t *testing.T) {
	values := []string{
		"@babel/core",
		"a b",
		"c++",
		"what?#frag",
		"x&y=z",
		"100%",
		"ünïcödé",
	}

	for _, v := range values {
		t.Run(v, func(t *testing.T) {
			req, err := Build(OpProject, Args{Platform: "npm", Project: v})
			if err != nil {
				t.Fatalf("Build() error: %v", err)
			}

			u, err := url.Parse(req.URL(DefaultBaseURL))
			if err != nil {
				t.Fatalf("url.Parse(%q) error: %v", req.URL(DefaultBaseURL), err)
			}
			if u.RawQuery != "" || u.Fragment != "" {
				t.Errorf("value %q leaked into query/fragment: %q", v, req.URL(DefaultBaseURL))
			}
			want := "/api/npm/" + v
			if u.Path != want {
				t.Errorf("decoded path = %q, want %q", u.Path, want)
			}

			search, err := Build(OpProjectSearch, Args{Query: v})
			if err != nil {
				t.Fatalf("Build() error: %v", err)
			}
			q, err := url.ParseQuery(strings.TrimPrefix(search.String(), "/search?"))
			if err != nil {
				t.Fatalf("ParseQuery() error: %v", err)
			}
			if got := q.Get("q"); got != v {
				t.Errorf("decoded q = %q, want %q", got, v)
			}
		})
	}
}

func TestBuildSearchParams(t *testing.T) {
	req, err := Build(OpProjectSearch, Args{
		Query: "http client",
		Sort:  SortStars,
		Filters: map[Filter][]string{
			FilterLanguages: {"Go", "Rust"},
			FilterLicenses:  {"MIT"},
			FilterKeywords:  nil,
		},
	})
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	q := req.Query()
	want := map[string]string{
		"q":         "http client",
		"sort":      "stars",
		"languages": "Go,Rust",
		"licenses":  "MIT",
	}
	for k, v := range want {
		if got := q.Get(k); got != v {
			t.Errorf("query %s = %q, want %q", k, got, v)
		}
	}
	if q.Has("keywords") {
		t.Error("empty filter should be omitted")
	}
	if q.Has("page") || q.Has("per_page") {
		t.Error("zero page options should be omitted")
	}
}

func TestBuildUnknownSort(t *testing.T) {
	_, err := Build(OpProjectSearch, Args{Query: "x", Sort: "popularity"})
	if !errors.Is(err, errors.ErrCodeInvalidArgument) {
		t.Errorf("Build() error = %v, want INVALID_ARGUMENT", err)
	}
}

func TestBuildPlatformFilterPrecedence(t *testing.T) {
	tests := []struct {
		name    string
		filters map[Filter][]string
		want    string
	}{
		{"positional only", nil, "pypi"},
		{"named filter wins", map[Filter][]string{FilterPlatforms: {"npm"}}, "npm"},
		{"named filter list", map[Filter][]string{FilterPlatforms: {"npm", "bower"}}, "npm,bower"},
		{"empty named filter ignored", map[Filter][]string{FilterPlatforms: {}}, "pypi"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := Build(OpPlatformSearch, Args{Platform: "pypi", Filters: tt.filters})
			if err != nil {
				t.Fatalf("Build() error: %v", err)
			}
			if got := req.Query()["platforms"]; len(got) != 1 || got[0] != tt.want {
				t.Errorf("platforms = %v, want [%s]", got, tt.want)
			}
		})
	}
}

func TestBuildPageClamping(t *testing.T) {
	tests := []struct {
		page, perPage   int
		wantPage        string
		wantPerPage     string
		hasPage, hasPer bool
	}{
		{0, 0, "", "", false, false},
		{1, 30, "1", "30", true, true},
		{-3, 500, "1", "100", true, true},
		{7, -1, "7", "1", true, true},
		{2, 100, "2", "100", true, true},
	}

	for _, tt := range tests {
		req, err := Build(OpUserRepositories, Args{Host: "github", User: "u", Page: tt.page, PerPage: tt.perPage})
		if err != nil {
			t.Fatalf("Build() error: %v", err)
		}
		q := req.Query()
		if q.Has("page") != tt.hasPage || q.Get("page") != tt.wantPage {
			t.Errorf("page %d: got %q (present %v), want %q", tt.page, q.Get("page"), q.Has("page"), tt.wantPage)
		}
		if q.Has("per_page") != tt.hasPer || q.Get("per_page") != tt.wantPerPage {
			t.Errorf("per_page %d: got %q (present %v), want %q", tt.perPage, q.Get("per_page"), q.Has("per_page"), tt.wantPerPage)
		}
	}
}

func TestBuildUnpagedIgnoresPage(t *testing.T) {
	req, err := Build(OpProject, Args{Platform: "pypi", Project: "x", Page: 3, PerPage: 10})
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if len(req.Query()) != 0 {
		t.Errorf("Query() = %v, want empty for a single-record endpoint", req.Query())
	}
}

func TestBuildIncludePrerelease(t *testing.T) {
	for _, want := range []bool{true, false} {
		req, err := Build(OpSubscribe, Args{Platform: "npm", Project: "x", IncludePrerelease: want})
		if err != nil {
			t.Fatalf("Build() error: %v", err)
		}
		got := req.Query().Get("include_prerelease")
		if (want && got != "true") || (!want && got != "false") {
			t.Errorf("include_prerelease = %q, want %v", got, want)
		}
	}
}

func TestRequestImmutable(t *testing.T) {
	filters := map[Filter][]string{FilterLanguages: {"Go"}}
	req, err := Build(OpProjectSearch, Args{Query: "x", Filters: filters})
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	before := req.String()

	req.Query().Set("q", "changed")
	segs := req.Segments()
	segs[0] = "changed"
	filters[FilterLanguages][0] = "Rust"

	if req.String() != before {
		t.Errorf("Request changed after build: %q, was %q", req.String(), before)
	}
}

func TestOperationPaged(t *testing.T) {
	if OpProject.Paged() {
		t.Error("OpProject.Paged() = true")
	}
	if !OpUserRepositories.Paged() {
		t.Error("OpUserRepositories.Paged() = false")
	}
	if Operation("nope").Paged() {
		t.Error("unknown operation should not be paged")
	}
}

func TestOperationParams(t *testing.T) {
	tests := []struct {
		op   Operation
		want string
	}{
		{OpPlatforms, ""},
		{OpProject, "platform,project"},
		{OpProjectDependencies, "platform,project,version"},
		{OpRepositoryProjects, "host,owner,repo"},
		{OpUserRepositories, "host,user"},
		{OpProjectSearch, "query"},
		{OpUnsubscribe, "platform,project"},
	}

	for _, tt := range tests {
		if got := strings.Join(tt.op.Params(), ","); got != tt.want {
			t.Errorf("%s.Params() = %q, want %q", tt.op, got, tt.want)
		}
	}
}

func TestArgsSet(t *testing.T) {
	var a Args
	for _, name := range OpRepository.Params() {
		if err := a.Set(name, name+"-value"); err != nil {
			t.Fatalf("Set(%q) error: %v", name, err)
		}
	}
	if a.Host != "host-value" || a.Owner != "owner-value" || a.Repo != "repo-value" {
		t.Errorf("Set() produced %+v", a)
	}
	if err := a.Set("colour", "blue"); !errors.Is(err, errors.ErrCodeInvalidArgument) {
		t.Errorf("Set(unknown) error = %v, want INVALID_ARGUMENT", err)
	}
}

func TestPagedOperations(t *testing.T) {
	ops := PagedOperations()
	if len(ops) == 0 {
		t.Fatal("PagedOperations() is empty")
	}
	for i, op := range ops {
		if !op.Paged() {
			t.Errorf("%s is not paged", op)
		}
		if i > 0 && ops[i-1] >= op {
			t.Errorf("PagedOperations() not sorted at %d: %v", i, ops)
		}
	}
}
