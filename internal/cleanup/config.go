package cleanup

// Config is the table of filesystem targets and policy switches driving
// the pipeline. All paths are relative to the project root. The step list
// itself is fixed; everything variable about a run lives here.
type Config struct {
	// Manifest is the project metadata document.
	Manifest string

	// Lockfile is the package manager's lock file.
	Lockfile string

	// ReadmeName is matched case-insensitively against root entries.
	ReadmeName string

	// ReadmeContent replaces the readme's contents.
	ReadmeContent string

	// TestConfig is the test-runner configuration file.
	TestConfig string

	// TestDirs are removed recursively when tests are dropped.
	TestDirs []string

	// TestDevDependencies are removed from devDependencies by exact name.
	TestDevDependencies []string

	// TestScripts are removed from the scripts mapping.
	TestScripts []string

	// TSConfig is the compiler configuration file; TestTypeEntry is the
	// type-declaration entry dropped from its compilerOptions.types list.
	TSConfig      string
	TestTypeEntry string

	// SampleSource is the template's demo source file.
	SampleSource string

	// EnvExample is renamed to EnvFile when present.
	EnvExample string
	EnvFile    string

	// CleanupScript is the template's bundled cleanup script. Its
	// presence gates the "remove cleanup script?" prompt.
	CleanupScript string

	// StrictInstall makes an install failure abort the pipeline instead
	// of being logged and skipped.
	StrictInstall bool
}

// DefaultConfig returns the target table for the Node/TypeScript starter
// template this tool ships with.
func DefaultConfig() Config {
	return Config{
		Manifest:            "package.json",
		Lockfile:            "package-lock.json",
		ReadmeName:          "readme.md",
		ReadmeContent:       "# My Project\n\n",
		TestConfig:          "jest.config.js",
		TestDirs:            []string{"test", "tests", "src/tests"},
		TestDevDependencies: []string{"jest", "ts-jest", "@types/jest"},
		TestScripts:         []string{"test", "test:watch"},
		TSConfig:            "tsconfig.json",
		TestTypeEntry:       "jest",
		SampleSource:        "src/example.ts",
		EnvExample:          ".env.example",
		EnvFile:             ".env",
		CleanupScript:       "scripts/cleanup.mjs",
	}
}
