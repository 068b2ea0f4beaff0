// Command hft-service runs the price-aggregate HTTP service: the Symbol
// Registry and Aggregate Index core (internal/registry, internal/aggregate)
// exposed over HTTP (internal/httpapi), configured via environment
// variables or a config file (internal/config), and logging structured
// events through zap (internal/logging).
//
// Architecture:
//
//	┌─────────────────────────────────────────┐
//	│              hft-service                 │
//	├─────────────────────────────────────────┤
//	│  HTTP API:                              │
//	│    GET  /health      - Liveness check   │
//	│    POST /add_batch/  - Append points    │
//	│    GET  /stats/      - Suffix-window    │
//	│                        statistics       │
//	│    GET  /metrics     - Prometheus       │
//	├─────────────────────────────────────────┤
//	│  Components:                            │
//	│    registry.Registry - sharded core     │
//	│    httpapi.Server     - HTTP handlers   │
//	└─────────────────────────────────────────┘
//
// Configuration: see internal/config; recognised environment variables use
// the APP_ prefix with "__" as section separator (e.g. APP_SERVER__PORT).
//
// Example usage:
//
//	APP_SERVER__PORT=8080 ./hft-service serve
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "hft-service",
		Short: "Range-aggregate price index service",
	}
	root.AddCommand(newServeCmd())
	root.AddCommand(newVersionCmd())
	return root
}

// version is set at the package level rather than via ldflags for
// simplicity; this is a reference implementation, not a distributed
// artifact with a release pipeline.
const version = "0.1.0"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the service version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), version)
			return nil
		},
	}
}
