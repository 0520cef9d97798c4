// flags.go defines constants for all CLI flag names.
//
// Using constants instead of string literals prevents typos and enables
// compile-time checking when flag names are used in both Flags().Type()
// definitions and GetType() calls.
//
// Naming convention: Flag<PascalCaseName> where name matches the kebab-case
// CLI flag (e.g., "dry-run" -> FlagDryRun).

package extension

// Flag name constants for CLI commands.
const (
	// Boolean flags

	FlagClear      = "clear"       // Clear tags before importing
	FlagDryRun     = "dry-run"     // Preview without making changes
	FlagExact      = "exact"       // Match tags only, no substring union
	FlagInitial    = "initial"     // Reconcile once before watching
	FlagKeep       = "keep"        // Keep the source file after import
	FlagNoScan     = "no-scan"     // Register a directory without scanning it
	FlagRaw        = "raw"         // Output without colour
	FlagRecursive  = "recursive"   // Walk directories recursively
	FlagReverse    = "reverse"     // Reverse listing order
	FlagSkipHidden = "skip-hidden" // Skip dot files and directories while scanning
	FlagStartup    = "startup"     // Prune before scanning
	FlagTags       = "tags"        // Show tags alongside paths
	FlagTree       = "tree"        // Display paths as a directory tree
	FlagUntagged   = "untagged"    // Only paths with no tags

	// String flags

	FlagDebounce = "debounce" // Quiet period before a watch batch runs
	FlagTag      = "tag"      // Only list paths carrying this tag
)
