// Package librariesio provides a client for the libraries.io API.
//
// # Overview
//
// libraries.io indexes packages from dozens of package managers together
// with the repositories they come from. This package exposes its search
// API (platforms, projects, repositories, owners, users) and its
// subscriptions API behind one [Client]:
//
//	client, err := librariesio.NewClient(os.Getenv("LIBRARIES_API_KEY"))
//	if err != nil {
//	    return err
//	}
//	res, err := client.Project(ctx, "pypi", "requests")
//
// # Results
//
// Responses are passed through verbatim as [Record] maps. Whether a call
// yields one record or a list is decided by the response itself, so every
// method returns a [Result]; use [Result.Single], [Result.List] or
// [Result.Records] to read it.
//
// # Pagination
//
// List endpoints accept [ListOptions] for a single page. To walk all pages
// lazily, ask for a [Pager]:
//
//	pager, err := client.Paginate(librariesio.OpUserRepositories, librariesio.Args{
//	    Host: "github", User: "octocat", PerPage: 100,
//	})
//	for page, err := range pager.All(ctx) {
//	    ...
//	}
//
// The Pager stops at the first empty page. It is not safe for concurrent
// use; the Client is.
//
// # Errors
//
// All errors are coded, see [github.com/quibraries/quibraries/pkg/errors].
// Missing identifiers fail with INVALID_ARGUMENT before any request is
// sent. Non-2xx responses return a *RemoteError carrying the status code
// and body. Nothing is cached and nothing is retried.
package librariesio
