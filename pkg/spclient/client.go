// Package spclient provides the main entry point for creating Stackplane API clients.
package spclient

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/stackplane-io/spapi/internal/client"
	"github.com/stackplane-io/spapi/pkg/spapi"
)

// New creates a new Stackplane API client from the given configuration.
func New(ctx context.Context, config *spapi.Config) (spapi.Client, error) {
	if config == nil {
		return nil, spapi.ErrConfigRequired
	}

	if config.Address == "" {
		return nil, spapi.ErrAddressRequired
	}

	// Normalize the address
	address := strings.TrimSuffix(config.Address, "/")
	if !strings.HasPrefix(address, "http://") && !strings.HasPrefix(address, "https://") {
		address = "https://" + address
	}

	config.Address = address

	// Only allow insecure TLS in explicit development environments
	if config.SkipTLSVerify && !isDevelopmentEnvironment() {
		return nil, fmt.Errorf("%w (set SPAPI_DEV_MODE=true)", spapi.ErrSkipTLSOnlyInDev)
	}

	// Use the internal client implementation
	client, err := client.New(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return client, nil
}

// isDevelopmentEnvironment checks if we're in a development environment.
func isDevelopmentEnvironment() bool {
	devMode := os.Getenv("SPAPI_DEV_MODE")

	return devMode == "true" || devMode == "1"
}

// NewWithAddress creates a new client with just an API address (no auth).
func NewWithAddress(ctx context.Context, address string) (spapi.Client, error) {
	return New(ctx, &spapi.Config{
		Address: address,
	})
}

// NewWithToken creates a new client with an API address and bearer token.
func NewWithToken(ctx context.Context, address, token string) (spapi.Client, error) {
	return New(ctx, &spapi.Config{
		Address: address,
		Token:   token,
	})
}
