// Package materializer copies recipe template files into a project exactly once.
package materializer

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"go.trai.ch/recipe/internal/core/domain"
	"go.trai.ch/recipe/internal/core/ports"
	"go.trai.ch/zerr"
)

// Categories of installed files.
const (
	CategoryProject = "project"
	CategoryPublic  = "public"
)

// FileSet describes one batch of files to install.
type FileSet struct {
	Recipe          string
	SourceRoot      string
	DestinationRoot string
	Patterns        []string
	Category        string
}

// Materializer installs recipe files.
type Materializer struct {
	tree   ports.FileTree
	logger ports.Logger
}

// New creates a Materializer.
func New(tree ports.FileTree, logger ports.Logger) *Materializer {
	return &Materializer{tree: tree, logger: logger}
}

// InstallFiles copies every file of set that is not yet in the destination and
// not recorded in ledger. Existing destination files are never overwritten.
// It returns the updated ledger and whether any file was written.
func (m *Materializer) InstallFiles(set FileSet, ledger domain.FileLedger) (domain.FileLedger, bool, error) {
	ledger = domain.NewFileLedger(ledger...)
	if len(set.Patterns) == 0 || !m.tree.IsDir(set.SourceRoot) {
		return ledger, false, nil
	}

	sourceRoot := filepath.ToSlash(filepath.Clean(set.SourceRoot))
	matcher, err := CompilePatterns(sourceRoot, set.Patterns)
	if err != nil {
		return ledger, false, zerr.With(zerr.Wrap(err, "invalid file pattern"), "recipe", set.Recipe)
	}

	header := false
	written := false
	for rel, err := range m.tree.WalkFiles(set.SourceRoot) {
		if err != nil {
			return ledger, written, err
		}
		if !matcher.MatchString(sourceRoot + "/" + rel) {
			continue
		}

		if !header {
			m.logger.Info(fmt.Sprintf("Installing %s files for recipe %s:", set.Category, set.Recipe))
			header = true
		}

		target := stripTemplateSuffix(rel)
		source := filepath.Join(set.SourceRoot, filepath.FromSlash(rel))
		destination := filepath.Join(set.DestinationRoot, filepath.FromSlash(target))

		switch {
		case m.tree.Exists(destination):
			same, err := m.tree.SameContent(destination, source)
			if err != nil {
				return ledger, written, err
			}
			if same {
				m.logger.Info(fmt.Sprintf("  - Skipping %s (existing, but unchanged)", target))
			} else {
				m.logger.Info(fmt.Sprintf("  - Skipping %s (existing and modified in project)", target))
			}
		case ledger.Contains(target):
			m.logger.Info(fmt.Sprintf("  - Skipping %s (previously installed)", target))
		default:
			m.logger.Info(fmt.Sprintf("  - Copying %s", target))
			if err := m.tree.Copy(source, destination); err != nil {
				return ledger, written, err
			}
			written = true
		}

		ledger = ledger.Add(target)
	}

	return ledger, written, nil
}

// InstallPackage installs the project and public files declared by pkg and
// records the ledgers on manifest. The caller saves the manifest.
func (m *Materializer) InstallPackage(project *domain.Project, manifest *domain.Manifest, pkg *domain.Package) error {
	if !pkg.IsRecipe(project.Config.RecipeType) {
		return nil
	}

	if err := m.installInto(manifest, domain.ExtraProjectFilesInstalled, FileSet{
		Recipe:          pkg.Name,
		SourceRoot:      pkg.InstallPath,
		DestinationRoot: project.Root,
		Patterns:        pkg.ProjectFilePatterns(),
		Category:        CategoryProject,
	}); err != nil {
		return err
	}

	publicRoot := project.Root
	if candidate := filepath.Join(project.Root, project.PublicDir); project.PublicDir != "" && m.tree.IsDir(candidate) {
		publicRoot = candidate
	}

	return m.installInto(manifest, domain.ExtraPublicFilesInstalled, FileSet{
		Recipe:          pkg.Name,
		SourceRoot:      filepath.Join(pkg.InstallPath, domain.DefaultPublicDir),
		DestinationRoot: publicRoot,
		Patterns:        pkg.PublicFilePatterns(),
		Category:        CategoryPublic,
	})
}

func (m *Materializer) installInto(manifest *domain.Manifest, key string, set FileSet) error {
	if len(set.Patterns) == 0 {
		return nil
	}

	ledger, written, err := m.InstallFiles(set, manifest.FileLedger(key))
	if err != nil {
		return err
	}
	if !written {
		return nil
	}
	return manifest.SetFileLedger(key, ledger)
}

func stripTemplateSuffix(rel string) string {
	if path.Ext(rel) == domain.TemplateSuffix {
		return strings.TrimSuffix(rel, domain.TemplateSuffix)
	}
	return rel
}
