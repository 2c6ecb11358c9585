// =============================================================================
// C Struct to Rust Converter - Main Entry Point
// =============================================================================
//
// USAGE:
//   structconv <file>         - Convert one header, print it, write <file>_rust
//   structconv batch [dir]    - Convert every matching header in a directory
//   structconv rules          - List the substitution rules in order
//   structconv version        - Display the application version
//
// ARCHITECTURE:
//   - cmd/           : CLI command definitions (Cobra)
//   - internal/      : rewrite rules, file conversion, config, logging, report
//   - pkg/           : shared file utilities
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/c-struct-to-rust/cmd"
)

func main() {
	cmd.Execute()
}
