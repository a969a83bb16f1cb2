package domain

import "maps"

// ExitAlreadyProvided is the exit status returned when a recipe is already inlined.
const ExitAlreadyProvided = -1

// Config holds the tunables of the reconcilers.
type Config struct {
	// RecipeType is the package type treated as a recipe.
	RecipeType string

	// RuntimePackage is the pseudo dependency that is never inlined or unpacked.
	RuntimePackage string

	// Sentinel stands in for an empty list of required packages after unpacking.
	Sentinel string

	// Aliases maps shorthand recipe names to full package names.
	Aliases map[string]string

	// SolverCommand is the argv prefix used to invoke the package solver.
	SolverCommand []string

	// SolverEnv is appended to the solver process environment.
	SolverEnv map[string]string
}

// DefaultConfig returns the configuration used when no config file is present.
func DefaultConfig() Config {
	return Config{
		RecipeType:     "recipe",
		RuntimePackage: "php",
		Sentinel:       "silverstripe/recipe-plugin",
		Aliases: map[string]string{
			"core": "silverstripe/recipe-core",
		},
		SolverCommand: []string{"composer"},
		SolverEnv:     map[string]string{},
	}
}

// Alias returns the expansion of a shorthand name.
func (c Config) Alias(token string) (string, bool) {
	name, ok := c.Aliases[token]
	return name, ok
}

// Clone returns a deep copy of the config.
func (c Config) Clone() Config {
	out := c
	out.Aliases = maps.Clone(c.Aliases)
	out.SolverCommand = append([]string(nil), c.SolverCommand...)
	out.SolverEnv = maps.Clone(c.SolverEnv)
	return out
}

// Project is the resolved layout of one invocation.
type Project struct {
	Root         string
	ManifestPath string
	LockPath     string
	VendorDir    string
	PublicDir    string
	Config       Config
}

// SolveOptions controls a solver update or install run.
type SolveOptions struct {
	// FromLock installs exactly what the lock snapshot pins instead of updating.
	FromLock           bool
	DevMode            bool
	SkipAutoloader     bool
	SkipScripts        bool
	SkipSuggestions    bool
	IgnorePlatformReqs bool

	// Packages limits an update to the named packages.
	Packages []string
}
