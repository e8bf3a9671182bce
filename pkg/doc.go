// Package pkg holds the importable libraries of quibraries.
//
// # Packages
//
// [integrations/librariesio] - Client for the libraries.io API: request
// building, typed lookups, search, subscriptions, response normalization
// and page-by-page iteration.
//
// [integrations] - Shared HTTP transport: credential handling, redaction,
// path escaping and error classification.
//
// [errors] - Coded errors (CONFIGURATION, INVALID_ARGUMENT, NETWORK_ERROR,
// TIMEOUT, REMOTE_ERROR, MALFORMED_RESPONSE) and input validation.
//
// [buildinfo] - Version information set at link time.
//
// # Quick Start
//
//	client, err := librariesio.NewClient(os.Getenv("LIBRARIES_API_KEY"))
//	if err != nil {
//	    return err
//	}
//	res, err := client.Project(ctx, "pypi", "requests")
//
// [integrations/librariesio]: https://pkg.go.dev/github.com/quibraries/quibraries/pkg/integrations/librariesio
// [integrations]: https://pkg.go.dev/github.com/quibraries/quibraries/pkg/integrations
// [errors]: https://pkg.go.dev/github.com/quibraries/quibraries/pkg/errors
// [buildinfo]: https://pkg.go.dev/github.com/quibraries/quibraries/pkg/buildinfo
package pkg
