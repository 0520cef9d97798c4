// Package all imports all core fusen extensions.
// Import this package to register all built-in commands.
package all

import (
	// Core extensions - each registers itself via init()
	_ "github.com/jpl-au/fusen/extension/catalog"
	_ "github.com/jpl-au/fusen/extension/core"
	_ "github.com/jpl-au/fusen/extension/scan"
	_ "github.com/jpl-au/fusen/extension/search"
	_ "github.com/jpl-au/fusen/extension/transfer"
)
