package domain

import (
	"path/filepath"
	"strings"
)

const (
	// ManifestFileName is the default name of the project manifest.
	ManifestFileName = "composer.json"

	// ManifestEnvVar overrides the manifest file name, matching the solver's own behavior.
	ManifestEnvVar = "COMPOSER"

	// ConfigFileName is the name of the optional project configuration file.
	ConfigFileName = "recipe.yaml"

	// DefaultVendorDir is the directory packages are installed into.
	DefaultVendorDir = "vendor"

	// DefaultPublicDir is the name of the public web root below the project root.
	DefaultPublicDir = "public"

	// InstalledFileName is the local package repository index below the vendor directory.
	InstalledFileName = "installed.json"

	// MetadataDirName is the solver's metadata directory below the vendor directory.
	MetadataDirName = "composer"

	// TemplateSuffix is stripped from template files when they are materialized.
	TemplateSuffix = ".tmpl"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// Keys under the manifest's extra section.
const (
	ExtraProjectFiles          = "project-files"
	ExtraPublicFiles           = "public-files"
	ExtraProjectFilesInstalled = "project-files-installed"
	ExtraPublicFilesInstalled  = "public-files-installed"
	ExtraDependenciesInstalled = "project-dependencies-installed"
)

// LockPathFor returns the lock file path belonging to a manifest path.
// "composer.json" maps to "composer.lock", any other name gets ".lock" in place of ".json".
func LockPathFor(manifestPath string) string {
	ext := filepath.Ext(manifestPath)
	if strings.EqualFold(ext, ".json") {
		return strings.TrimSuffix(manifestPath, ext) + ".lock"
	}
	return manifestPath + ".lock"
}

// InstalledIndexPath returns the path of the local package repository index.
func InstalledIndexPath(vendorDir string) string {
	return filepath.Join(vendorDir, MetadataDirName, InstalledFileName)
}
