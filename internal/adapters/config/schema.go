package config

// Recipefile represents the structure of the recipe.yaml configuration file.
type Recipefile struct {
	RecipeType     string            `yaml:"recipe-type"`
	RuntimePackage string            `yaml:"runtime-package"`
	Sentinel       string            `yaml:"sentinel"`
	PublicDir      string            `yaml:"public-dir"`
	VendorDir      string            `yaml:"vendor-dir"`
	Aliases        map[string]string `yaml:"aliases"`
	Solver         SolverDTO         `yaml:"solver"`
}

// SolverDTO configures how the package solver is invoked.
type SolverDTO struct {
	Command []string          `yaml:"command"`
	Env     map[string]string `yaml:"env"`
}
