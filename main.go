// =============================================================================
// Sales Analytics CLI - Main Entry Point
// =============================================================================
//
// This is the main entry point for the sales analytics CLI. It initializes
// the Cobra CLI framework and delegates command execution to the cmd
// package.
//
// USAGE:
//   salescli process       - Run the full analytics pipeline
//   salescli validate      - Validate configuration without processing
//   salescli version       - Display the application version
//
// ARCHITECTURE:
//   - cmd/           : CLI command definitions (Cobra)
//   - internal/      : Core pipeline logic (not for external import)
//   - pkg/           : Shared utilities
//
// =============================================================================

package main

import (
	"github.com/rgupta-dev/sales-analytics/cmd"
)

func main() {
	cmd.Execute()
}
