// Package integrations provides the HTTP transport shared by API clients.
//
// # Overview
//
// [Client] issues authenticated requests against one REST API root and
// returns raw response bodies. API-specific request building and response
// decoding live in subpackages:
//
//   - [librariesio]: libraries.io search and subscription APIs
//
// # Transport Contract
//
// A [Client] is configured once through [Config] and is immutable
// afterwards, so one instance may be shared by any number of goroutines:
//
//	tr := integrations.NewClient(integrations.Config{
//	    BaseURL:    "https://libraries.io/api",
//	    Credential: integrations.Credential{Param: "api_key", Value: key},
//	})
//	body, err := tr.Do(ctx, http.MethodGet, "/platforms", nil)
//
// Each call performs exactly one HTTP round trip. There is no caching and no
// retry; failures surface immediately as coded errors from
// [github.com/quibraries/quibraries/pkg/errors]:
//
//   - TIMEOUT and NETWORK_ERROR for transport failures
//   - *RemoteError (REMOTE_ERROR) for non-2xx responses, body included
//
// The credential never appears in logs or error messages; it is replaced
// with "REDACTED".
//
// # Adding a New API
//
//  1. Create a subpackage: pkg/integrations/<api>/
//  2. Build escaped paths with [JoinPath] and query values with url.Values
//  3. Wrap a [Client] and decode the bytes returned by [Client.Do]
//
// [librariesio]: github.com/quibraries/quibraries/pkg/integrations/librariesio
package integrations
