// =============================================================================
// EFT Viewer - Main Entry Point
// =============================================================================
//
// This is the main entry point for the EFT Viewer CLI application. It hands
// control to the Cobra commands in the cmd package.
//
// USAGE:
//   eftview decode [files...]  - Decode EFT files and report their records
//   eftview fields [id...]     - Print field labels
//   eftview version            - Display the application version
//
// ARCHITECTURE:
//   - cmd/       : CLI command definitions (Cobra)
//   - internal/  : Decoding, data model, reports and configuration
//   - pkg/utils  : Input discovery, output naming and run logs
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/eft-viewer/cmd"
)

func main() {
	cmd.Execute()
}
