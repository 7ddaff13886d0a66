// Package constants provides shared constants used throughout the racepatch
// codebase: default plugin names, numeric tolerances and file permissions.
package constants

// Plugin names used when no configuration overrides them
const (
	// DefaultHeightSource is the plugin that sets individual character heights
	DefaultHeightSource = "Heights_of_Skyrim.esp"

	// DefaultSkeletonSource is the plugin that changes race heights and skeleton models
	DefaultSkeletonSource = "FK's Diverse Racial Skeletons.esp"

	// DefaultPatchName is the name of the generated override plugin
	DefaultPatchName = "HeightOfSkyrimPatch.esp"
)

// Reconciliation constants
const (
	// HeightTolerance is the absolute difference below which two height
	// multipliers are considered equal
	HeightTolerance = 1e-5

	// DefaultHeightChangeMultiplier scales the height source's character
	// deviation when the character's race height was also changed
	DefaultHeightChangeMultiplier = 0.5

	// BaselineHeight is the neutral height multiplier
	BaselineHeight = 1.0
)

// File layout constants
const (
	// PluginFileExt is appended to a plugin name to get its record file
	PluginFileExt = ".yaml"

	// DefaultLoadOrderFile is the load order file looked up in the data directory
	DefaultLoadOrderFile = "plugins.txt"

	// GeneratorName is written into generated patch headers
	GeneratorName = "racepatch"
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)
