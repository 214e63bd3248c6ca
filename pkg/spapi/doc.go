// Package spapi provides types, interfaces, and helpers for working with the
// Stackplane control-plane API (v2).
//
// # Overview
//
// The spapi package defines the domain types (e.g., Organization, Project,
// Workspace, Run, Variable) and the interfaces for resource-oriented clients
// (e.g., OrganizationsClient, WorkspacesClient). A concrete implementation of
// these clients is provided by the spclient package, which wires
// configuration, transport, and authentication. Most consumers should import
// spclient to construct a client and then interact with the resource client
// interfaces exposed here.
//
// Getting a client
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/stackplane-io/spapi/pkg/spapi"
//	  "github.com/stackplane-io/spapi/pkg/spclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//	  cli, err := spclient.New(ctx, &spapi.Config{Address: "https://app.stackplane.io", Token: "..."})
//	  if err != nil { log.Fatal(err) }
//
//	  // List the first page of workspaces in an organization
//	  workspaces, err := cli.Workspaces().List(ctx, "acme", spapi.NewQueryParams().WithPageSize(50))
//	  if err != nil { log.Fatal(err) }
//	  _ = workspaces
//	}
//
// # Queries and pagination
//
// Use QueryParams to express common list options (page[number], page[size],
// filter, search, include, sort). The package also provides helpers for
// iterating or collecting paginated results:
//
//	it := spapi.NewPageIterator(ctx, cli.Organizations(), "/api/v2/organizations", nil)
//	for it.HasNext() {
//	  org, err := it.Next()
//	  if err != nil { break }
//	  _ = org
//	}
//
// Iteration is lazy: pages are fetched one at a time as items are consumed,
// and the sequence ends when the server returns a page shorter than the
// requested page size.
//
// # Errors
//
// API failures are represented by APIError, a tagged value carrying one of a
// closed set of kinds (auth, not_found, rate_limited, validation, server,
// generic) together with the HTTP status and the raw JSON:API error objects
// from the response body. Helpers such as IsNotFound, IsAuth, and
// IsRateLimited make it easy to branch on common cases without inspecting
// status codes.
//
// # Interceptors and caching
//
// The package includes generic building blocks such as request/response
// interceptors (for logging, extra headers, metrics) and a pluggable Cache
// abstraction with in-memory and NATS KV backends. The spclient package
// composes these pieces for a sensible default client; applications with
// advanced needs can also use these primitives directly.
package spapi
