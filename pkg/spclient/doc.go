// Package spclient provides the primary entry point for constructing a
// Stackplane API client that implements the spapi.Client interface.
//
// It layers configuration, HTTP transport, retries, and response caching on
// top of the resource interfaces and types defined in the spapi package. Most
// applications should import spclient to build a client, then use the
// returned spapi.Client to access resource-specific clients, for example
// Organizations(), Workspaces(), Runs(), etc.
//
// Quick start
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
//
//	  cli, err := spclient.New(ctx, &spapi.Config{
//	    Address: "https://app.stackplane.io",
//	    Token:   "sp-token...",
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  workspaces, err := cli.Workspaces().ListAll(ctx, "acme",
//	    spapi.NewQueryParams().WithPageSize(100))
//	  if err != nil { log.Fatal(err) }
//	  _ = workspaces
//	}
//
// # TLS and development mode
//
// For local development, you can set Config.SkipTLSVerify=true. This is gated
// by the environment variable SPAPI_DEV_MODE to avoid accidental insecure
// usage in production environments.
//
// # Helpers
//
// The package also provides convenience constructors NewWithToken and
// NewWithAddress that wrap New with the appropriate configuration.
package spclient
