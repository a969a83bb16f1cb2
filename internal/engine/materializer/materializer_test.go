package materializer_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/recipe/internal/adapters/fs"
	"go.trai.ch/recipe/internal/core/domain"
	"go.trai.ch/recipe/internal/core/ports/mocks"
	"go.trai.ch/recipe/internal/engine/materializer"
	"go.uber.org/mock/gomock"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), domain.DirPerm))
	require.NoError(t, os.WriteFile(path, []byte(content), domain.FilePerm))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path) //nolint:gosec // Test path
	require.NoError(t, err)
	return string(data)
}

func newMaterializer(t *testing.T) (*materializer.Materializer, *mocks.MockLogger) {
	t.Helper()
	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)
	return materializer.New(fs.NewTree(fs.NewWalker()), logger), logger
}

func TestInstallFiles_TemplateSuffix(t *testing.T) {
	m, logger := newMaterializer(t)
	src, dst := t.TempDir(), t.TempDir()
	writeFile(t, filepath.Join(src, "a.php.tmpl"), "<?php // a")

	gomock.InOrder(
		logger.EXPECT().Info("Installing project files for recipe sample/blog:"),
		logger.EXPECT().Info("  - Copying a.php"),
	)

	ledger, written, err := m.InstallFiles(materializer.FileSet{
		Recipe:          "sample/blog",
		SourceRoot:      src,
		DestinationRoot: dst,
		Patterns:        []string{"*.php"},
		Category:        materializer.CategoryProject,
	}, nil)
	require.NoError(t, err)

	assert.True(t, written)
	assert.Equal(t, domain.FileLedger{"a.php"}, ledger)
	assert.Equal(t, "<?php // a", readFile(t, filepath.Join(dst, "a.php")))
	assert.NoFileExists(t, filepath.Join(dst, "a.php.tmpl"))
}

func TestInstallFiles_Outcomes(t *testing.T) {
	m, logger := newMaterializer(t)
	src, dst := t.TempDir(), t.TempDir()

	writeFile(t, filepath.Join(src, "app", "src", "Page.php"), "page")
	writeFile(t, filepath.Join(src, "app", "src", "Controller.php"), "controller")
	writeFile(t, filepath.Join(src, "app", "_config", "theme.yml"), "theme")
	writeFile(t, filepath.Join(src, "deleted.txt"), "deleted")
	writeFile(t, filepath.Join(src, "README.md"), "not matched")

	writeFile(t, filepath.Join(dst, "app", "src", "Page.php"), "page")
	writeFile(t, filepath.Join(dst, "app", "src", "Controller.php"), "customised")

	gomock.InOrder(
		logger.EXPECT().Info("Installing project files for recipe sample/blog:"),
		logger.EXPECT().Info("  - Copying app/_config/theme.yml"),
		logger.EXPECT().Info("  - Skipping app/src/Controller.php (existing and modified in project)"),
		logger.EXPECT().Info("  - Skipping app/src/Page.php (existing, but unchanged)"),
		logger.EXPECT().Info("  - Skipping deleted.txt (previously installed)"),
	)

	ledger, written, err := m.InstallFiles(materializer.FileSet{
		Recipe:          "sample/blog",
		SourceRoot:      src,
		DestinationRoot: dst,
		Patterns:        []string{"app/*", "deleted.txt"},
		Category:        materializer.CategoryProject,
	}, domain.NewFileLedger("deleted.txt", "app/src/Controller.php", "zzz/gone.php"))
	require.NoError(t, err)

	assert.True(t, written)
	assert.Equal(t, domain.FileLedger{
		"app/_config/theme.yml",
		"app/src/Controller.php",
		"app/src/Page.php",
		"deleted.txt",
		"zzz/gone.php",
	}, ledger)

	assert.Equal(t, "customised", readFile(t, filepath.Join(dst, "app", "src", "Controller.php")))
	assert.NoFileExists(t, filepath.Join(dst, "deleted.txt"))
	assert.NoFileExists(t, filepath.Join(dst, "README.md"))
}

func TestInstallFiles_NothingWritten(t *testing.T) {
	m, logger := newMaterializer(t)
	src, dst := t.TempDir(), t.TempDir()
	writeFile(t, filepath.Join(src, "a.php"), "a")
	writeFile(t, filepath.Join(dst, "a.php"), "a")

	logger.EXPECT().Info(gomock.Any()).Times(2)

	ledger, written, err := m.InstallFiles(materializer.FileSet{
		Recipe:          "sample/blog",
		SourceRoot:      src,
		DestinationRoot: dst,
		Patterns:        []string{"*.php"},
		Category:        materializer.CategoryProject,
	}, nil)
	require.NoError(t, err)
	assert.False(t, written)
	assert.Equal(t, domain.FileLedger{"a.php"}, ledger)
}

func TestInstallFiles_DanglingDestination(t *testing.T) {
	m, logger := newMaterializer(t)
	src, dst := t.TempDir(), t.TempDir()
	writeFile(t, filepath.Join(src, "a.php"), "a")
	writeFile(t, filepath.Join(src, "b.php"), "b")
	require.NoError(t, os.Symlink(filepath.Join(dst, "gone.php"), filepath.Join(dst, "a.php")))

	gomock.InOrder(
		logger.EXPECT().Info("Installing project files for recipe sample/blog:"),
		logger.EXPECT().Info("  - Skipping a.php (existing and modified in project)"),
		logger.EXPECT().Info("  - Copying b.php"),
	)

	ledger, written, err := m.InstallFiles(materializer.FileSet{
		Recipe:          "sample/blog",
		SourceRoot:      src,
		DestinationRoot: dst,
		Patterns:        []string{"*.php"},
		Category:        materializer.CategoryProject,
	}, nil)
	require.NoError(t, err)

	assert.True(t, written)
	assert.Equal(t, domain.FileLedger{"a.php", "b.php"}, ledger)
	assert.Equal(t, "b", readFile(t, filepath.Join(dst, "b.php")))
}

func TestInstallFiles_NoMatchesNoHeader(t *testing.T) {
	m, _ := newMaterializer(t)
	src := t.TempDir()
	writeFile(t, filepath.Join(src, "a.txt"), "a")

	ledger, written, err := m.InstallFiles(materializer.FileSet{
		Recipe:          "sample/blog",
		SourceRoot:      src,
		DestinationRoot: t.TempDir(),
		Patterns:        []string{"*.php"},
		Category:        materializer.CategoryProject,
	}, nil)
	require.NoError(t, err)
	assert.False(t, written)
	assert.Empty(t, ledger)
}

func TestInstallFiles_MissingSourceRoot(t *testing.T) {
	m, _ := newMaterializer(t)

	_, written, err := m.InstallFiles(materializer.FileSet{
		Recipe:          "sample/blog",
		SourceRoot:      filepath.Join(t.TempDir(), "public"),
		DestinationRoot: t.TempDir(),
		Patterns:        []string{"*"},
		Category:        materializer.CategoryPublic,
	}, nil)
	require.NoError(t, err)
	assert.False(t, written)
}

func TestInstallFiles_CopyFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	tree := mocks.NewMockFileTree(ctrl)
	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Info(gomock.Any()).AnyTimes()

	tree.EXPECT().IsDir("/recipe").Return(true)
	tree.EXPECT().WalkFiles("/recipe").Return(func(yield func(string, error) bool) {
		yield("a.php", nil)
	})
	tree.EXPECT().Exists(filepath.Join("/project", "a.php")).Return(false)
	tree.EXPECT().Copy(filepath.Join("/recipe", "a.php"), filepath.Join("/project", "a.php")).Return(domain.ErrFileCopyFailed)

	m := materializer.New(tree, logger)
	_, _, err := m.InstallFiles(materializer.FileSet{
		Recipe:          "sample/blog",
		SourceRoot:      "/recipe",
		DestinationRoot: "/project",
		Patterns:        []string{"*.php"},
		Category:        materializer.CategoryProject,
	}, nil)
	require.ErrorIs(t, err, domain.ErrFileCopyFailed)
}

func TestInstallPackage(t *testing.T) {
	m, logger := newMaterializer(t)
	logger.EXPECT().Info(gomock.Any()).AnyTimes()

	root := t.TempDir()
	recipePath := filepath.Join(root, "vendor", "sample", "blog")
	writeFile(t, filepath.Join(recipePath, "app", "Blog.php"), "blog")
	writeFile(t, filepath.Join(recipePath, "public", "favicon.ico"), "icon")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "public"), domain.DirPerm))

	pkg := &domain.Package{
		Name:        "sample/blog",
		Type:        "recipe",
		InstallPath: recipePath,
		Extra: map[string]json.RawMessage{
			domain.ExtraProjectFiles: json.RawMessage(`["app/*"]`),
			domain.ExtraPublicFiles:  json.RawMessage(`["*.ico"]`),
		},
	}
	project := &domain.Project{Root: root, PublicDir: "public", Config: domain.DefaultConfig()}
	manifest, err := domain.ParseManifest(filepath.Join(root, "composer.json"), []byte(`{"require": {}}`))
	require.NoError(t, err)

	require.NoError(t, m.InstallPackage(project, manifest, pkg))

	assert.Equal(t, "blog", readFile(t, filepath.Join(root, "app", "Blog.php")))
	assert.Equal(t, "icon", readFile(t, filepath.Join(root, "public", "favicon.ico")))
	assert.Equal(t, domain.FileLedger{"app/Blog.php"}, manifest.FileLedger(domain.ExtraProjectFilesInstalled))
	assert.Equal(t, domain.FileLedger{"favicon.ico"}, manifest.FileLedger(domain.ExtraPublicFilesInstalled))
	assert.True(t, manifest.Changed())

	// A second run writes nothing and records no edits.
	manifest.Commit(manifest.Raw)
	require.NoError(t, m.InstallPackage(project, manifest, pkg))
	assert.False(t, manifest.Changed())
}

func TestInstallPackage_PublicFallsBackToRoot(t *testing.T) {
	m, logger := newMaterializer(t)
	logger.EXPECT().Info(gomock.Any()).AnyTimes()

	root := t.TempDir()
	recipePath := filepath.Join(root, "vendor", "sample", "blog")
	writeFile(t, filepath.Join(recipePath, "public", "index.php"), "index")

	pkg := &domain.Package{
		Name:        "sample/blog",
		Type:        "recipe",
		InstallPath: recipePath,
		Extra:       map[string]json.RawMessage{domain.ExtraPublicFiles: json.RawMessage(`["index.php"]`)},
	}
	project := &domain.Project{Root: root, PublicDir: "public", Config: domain.DefaultConfig()}
	manifest, err := domain.ParseManifest(filepath.Join(root, "composer.json"), []byte(`{}`))
	require.NoError(t, err)

	require.NoError(t, m.InstallPackage(project, manifest, pkg))
	assert.Equal(t, "index", readFile(t, filepath.Join(root, "index.php")))
}

func TestInstallPackage_NotARecipe(t *testing.T) {
	m, _ := newMaterializer(t)
	manifest, err := domain.ParseManifest("composer.json", []byte(`{}`))
	require.NoError(t, err)

	pkg := &domain.Package{Name: "vendor/lib", Type: "library"}
	require.NoError(t, m.InstallPackage(&domain.Project{Config: domain.DefaultConfig()}, manifest, pkg))
	assert.False(t, manifest.Changed())
}

func TestCompilePatterns(t *testing.T) {
	re, err := materializer.CompilePatterns("/srv/recipe (1)", []string{"app/*.php", ".env.example", "public/*"})
	require.NoError(t, err)

	assert.True(t, re.MatchString("/srv/recipe (1)/app/Page.php"))
	assert.True(t, re.MatchString("/srv/recipe (1)/app/src/deep/Page.php"))
	assert.True(t, re.MatchString("/srv/recipe (1)/.env.example"))
	assert.True(t, re.MatchString("/srv/recipe (1)/public/css/site.css"))
	assert.False(t, re.MatchString("/srv/recipe (1)/app/.php"))
	assert.False(t, re.MatchString("/srv/recipe (1)/xenvxexample"))
	assert.False(t, re.MatchString("/srv/recipe (1)/other/app/Page.php"))
	assert.False(t, re.MatchString("/srv/other/app/Page.php"))
}
